package model

import (
	"time"
)

type Image struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	UserID       int64     `gorm:"not null;index" json:"user_id"`
	OriginalName string    `gorm:"size:255;not null" json:"original_name"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	URL          string    `gorm:"size:500;not null" json:"url"`
	FileSize     int64     `gorm:"not null" json:"file_size"`
	MimeType     string    `gorm:"size:100" json:"mime_type"`
	ArticleID    string    `gorm:"size:36;index" json:"article_id,omitempty"`
	Status       string    `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Image) TableName() string {
	return "images"
}
