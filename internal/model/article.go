package model

import (
	"time"
)

const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
)

type Article struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       int64     `gorm:"not null;index" json:"user_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Content      string    `gorm:"type:longtext" json:"content"`
	Summary      string    `gorm:"size:500" json:"summary"`
	Category     string    `gorm:"size:50;index" json:"category"`
	CollectionID string    `gorm:"size:36;index" json:"collection_id"`
	Status       string    `gorm:"size:20;not null;default:draft" json:"status"` // draft, published
	Tags         string    `gorm:"type:text" json:"-"`                           // JSON 数组
	Images       string    `gorm:"type:text" json:"-"`                           // JSON 数组
	WordCount    int       `gorm:"default:0" json:"word_count"`
	ReadTime     int       `gorm:"default:0" json:"read_time"` // 预计阅读分钟数
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Article) TableName() string {
	return "articles"
}
