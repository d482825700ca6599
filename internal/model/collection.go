package model

import (
	"time"
)

// DefaultCollectionColor 未指定颜色时的默认值
const DefaultCollectionColor = "#409EFF"

// Collection 文章合集，用于把文章归类到专栏
type Collection struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	Color       string    `gorm:"size:9" json:"color"` // 十六进制颜色值
	Icon        string    `gorm:"size:50" json:"icon"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"` // 数值越小越靠前
	IsEnabled   bool      `gorm:"not null;default:true" json:"is_enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Collection) TableName() string {
	return "collections"
}
