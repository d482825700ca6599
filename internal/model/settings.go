package model

import (
	"time"
)

// Settings 用户编辑器设置，每个用户一条
type Settings struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	UserID             int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	EditorTheme        string    `gorm:"size:50;default:vs-dark" json:"editor_theme"`
	EditorFontSize     int       `gorm:"default:14" json:"editor_font_size"`
	EditorFontFamily   string    `gorm:"size:100;default:'Consolas, Monaco, monospace'" json:"editor_font_family"`
	EditorTabSize      int       `gorm:"default:4" json:"editor_tab_size"`
	EditorWordWrap     bool      `gorm:"default:true" json:"editor_word_wrap"`
	EditorLineNumbers  bool      `gorm:"default:true" json:"editor_line_numbers"`
	EditorAutoSave     bool      `gorm:"default:true" json:"editor_auto_save"`
	EditorAutoSaveWait int       `gorm:"default:3000" json:"editor_auto_save_wait"` // 毫秒
	ImageCompress      bool      `gorm:"default:true" json:"image_compress"`
	ImageQuality       int       `gorm:"default:80" json:"image_quality"`
	ExportFormat       string    `gorm:"size:20;default:markdown" json:"export_format"`
	Language           string    `gorm:"size:10;default:zh-CN" json:"language"`
	Theme              string    `gorm:"size:20;default:light" json:"theme"`
	Notifications      bool      `gorm:"default:true" json:"notifications"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}
