package repository

import (
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) GetByUserID(userID int64) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) Create(settings *model.Settings) error {
	return r.db.Create(settings).Error
}

func (r *SettingsRepository) Save(settings *model.Settings) error {
	return r.db.Save(settings).Error
}

func (r *SettingsRepository) DeleteByUserID(userID int64) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Settings{}).Error
}
