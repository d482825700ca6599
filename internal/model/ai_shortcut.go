package model

import (
	"time"
)

// AIShortcut AI 写作助手的快捷指令，保存常用提示词
type AIShortcut struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Prompt      string    `gorm:"size:1000;not null" json:"prompt"`
	Description string    `gorm:"size:200" json:"description"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (AIShortcut) TableName() string {
	return "ai_shortcuts"
}
