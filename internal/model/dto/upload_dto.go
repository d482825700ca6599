package dto

// Base64UploadRequest 编辑器粘贴图片走 base64 上传
type Base64UploadRequest struct {
	Data      string `json:"data" binding:"required"` // data URL 或纯 base64
	FileName  string `json:"file_name"`
	ArticleID string `json:"article_id"`
}

type UploadResult struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
}
