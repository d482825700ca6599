package dto

// UpdateSettingsRequest 部分更新，nil 字段保持原值
type UpdateSettingsRequest struct {
	EditorTheme        *string `json:"editor_theme"`
	EditorFontSize     *int    `json:"editor_font_size"`
	EditorFontFamily   *string `json:"editor_font_family"`
	EditorTabSize      *int    `json:"editor_tab_size"`
	EditorWordWrap     *bool   `json:"editor_word_wrap"`
	EditorLineNumbers  *bool   `json:"editor_line_numbers"`
	EditorAutoSave     *bool   `json:"editor_auto_save"`
	EditorAutoSaveWait *int    `json:"editor_auto_save_wait"`
	ImageCompress      *bool   `json:"image_compress"`
	ImageQuality       *int    `json:"image_quality"`
	ExportFormat       *string `json:"export_format"`
	Language           *string `json:"language"`
	Theme              *string `json:"theme"`
	Notifications      *bool   `json:"notifications"`
}
