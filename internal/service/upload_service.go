package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/config"
	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/pkg/oss"
	"github.com/chengzhang/writing_go_server/internal/repository"
)

var (
	ErrFileTooLarge    = errors.New("文件大小超出限制")
	ErrInvalidFileType = errors.New("不支持的文件类型")
	ErrInvalidBase64   = errors.New("图片数据格式错误")
	ErrImageNotFound   = errors.New("图片不存在")
)

const defaultMaxUploadSize = 10 << 20 // 10MB

var defaultAllowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

type UploadService struct {
	ossClient *oss.Client
	imageRepo *repository.ImageRepository
	maxSize   int64
	allowed   []string
}

func NewUploadService(ossClient *oss.Client, imageRepo *repository.ImageRepository, cfg *config.Config) *UploadService {
	maxSize := int64(defaultMaxUploadSize)
	allowed := defaultAllowedExtensions
	if cfg != nil {
		if cfg.Upload.MaxSize > 0 {
			maxSize = cfg.Upload.MaxSize
		}
		if len(cfg.Upload.AllowedExtensions) > 0 {
			allowed = cfg.Upload.AllowedExtensions
		}
	}
	return &UploadService{
		ossClient: ossClient,
		imageRepo: imageRepo,
		maxSize:   maxSize,
		allowed:   allowed,
	}
}

// UploadImage 上传图片文件到 OSS 并记录元数据
func (s *UploadService) UploadImage(userID int64, fileName string, data []byte, articleID string) (*dto.UploadResult, error) {
	if err := s.validate(fileName, int64(len(data))); err != nil {
		return nil, err
	}

	url, err := s.ossClient.UploadImage(userID, fileName, data)
	if err != nil {
		return nil, err
	}

	image := &model.Image{
		ID:           strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID:       userID,
		OriginalName: fileName,
		FileName:     path.Base(url),
		URL:          url,
		FileSize:     int64(len(data)),
		MimeType:     mimeTypeByExt(path.Ext(fileName)),
		ArticleID:    articleID,
		Status:       "active",
	}
	if err := s.imageRepo.Create(image); err != nil {
		return nil, err
	}

	return &dto.UploadResult{
		ID:       image.ID,
		URL:      image.URL,
		FileName: image.OriginalName,
		FileSize: image.FileSize,
	}, nil
}

// UploadBase64 编辑器粘贴图片：解析 data URL 后走普通上传
func (s *UploadService) UploadBase64(userID int64, req *dto.Base64UploadRequest) (*dto.UploadResult, error) {
	raw := req.Data
	ext := ".png"

	// data:image/png;base64,xxxx
	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, ";base64,")
		if idx < 0 {
			return nil, ErrInvalidBase64
		}
		mimeType := raw[len("data:"):idx]
		if e := extByMimeType(mimeType); e != "" {
			ext = e
		}
		raw = raw[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, ErrInvalidBase64
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = fmt.Sprintf("paste%s", ext)
	}
	return s.UploadImage(userID, fileName, data, req.ArticleID)
}

// ListImages 分页查询用户图片
func (s *UploadService) ListImages(userID int64, page, pageSize int) ([]*model.Image, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.imageRepo.ListByUserID(userID, page, pageSize)
}

// DeleteImage 删除图片记录并清理 OSS 对象
func (s *UploadService) DeleteImage(userID int64, id string) error {
	image, err := s.imageRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	if image.UserID != userID {
		return ErrNoPermission
	}

	if err := s.imageRepo.Delete(id); err != nil {
		return err
	}
	// OSS 删除失败不阻塞，对象留待人工清理
	_ = s.ossClient.Delete(objectKeyFromURL(image.URL))
	return nil
}

func (s *UploadService) validate(fileName string, size int64) error {
	if size > s.maxSize {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(path.Ext(fileName))
	for _, allowed := range s.allowed {
		if ext == allowed {
			return nil
		}
	}
	return ErrInvalidFileType
}

func mimeTypeByExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func extByMimeType(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}

// objectKeyFromURL 从访问 URL 还原 OSS 对象 key
func objectKeyFromURL(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	if idx := strings.Index(url, "/"); idx >= 0 {
		return url[idx+1:]
	}
	return url
}
