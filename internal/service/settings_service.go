package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/repository"
)

type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings 获取用户设置，没有则创建一条默认设置
func (s *SettingsService) GetSettings(userID int64) (*model.Settings, error) {
	settings, err := s.settingsRepo.GetByUserID(userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = defaultSettings(userID)
	if err := s.settingsRepo.Create(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings 部分更新，只覆盖请求里出现的字段
func (s *SettingsService) UpdateSettings(userID int64, req *dto.UpdateSettingsRequest) (*model.Settings, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	if req.EditorTheme != nil {
		settings.EditorTheme = *req.EditorTheme
	}
	if req.EditorFontSize != nil {
		settings.EditorFontSize = *req.EditorFontSize
	}
	if req.EditorFontFamily != nil {
		settings.EditorFontFamily = *req.EditorFontFamily
	}
	if req.EditorTabSize != nil {
		settings.EditorTabSize = *req.EditorTabSize
	}
	if req.EditorWordWrap != nil {
		settings.EditorWordWrap = *req.EditorWordWrap
	}
	if req.EditorLineNumbers != nil {
		settings.EditorLineNumbers = *req.EditorLineNumbers
	}
	if req.EditorAutoSave != nil {
		settings.EditorAutoSave = *req.EditorAutoSave
	}
	if req.EditorAutoSaveWait != nil {
		settings.EditorAutoSaveWait = *req.EditorAutoSaveWait
	}
	if req.ImageCompress != nil {
		settings.ImageCompress = *req.ImageCompress
	}
	if req.ImageQuality != nil {
		settings.ImageQuality = *req.ImageQuality
	}
	if req.ExportFormat != nil {
		settings.ExportFormat = *req.ExportFormat
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// ResetSettings 恢复默认设置
func (s *SettingsService) ResetSettings(userID int64) (*model.Settings, error) {
	existing, err := s.settingsRepo.GetByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings := defaultSettings(userID)
	if err == nil {
		settings.ID = existing.ID
		settings.CreatedAt = existing.CreatedAt
	}
	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func defaultSettings(userID int64) *model.Settings {
	return &model.Settings{
		UserID:             userID,
		EditorTheme:        "vs-dark",
		EditorFontSize:     14,
		EditorFontFamily:   "Consolas, Monaco, monospace",
		EditorTabSize:      4,
		EditorWordWrap:     true,
		EditorLineNumbers:  true,
		EditorAutoSave:     true,
		EditorAutoSaveWait: 3000,
		ImageCompress:      true,
		ImageQuality:       80,
		ExportFormat:       "markdown",
		Language:           "zh-CN",
		Theme:              "light",
		Notifications:      true,
	}
}
