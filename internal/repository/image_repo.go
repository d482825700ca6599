package repository

import (
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(image *model.Image) error {
	return r.db.Create(image).Error
}

func (r *ImageRepository) GetByID(id string) (*model.Image, error) {
	var image model.Image
	err := r.db.Where("id = ?", id).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ListByUserID 按上传时间倒序分页查询
func (r *ImageRepository) ListByUserID(userID int64, page, pageSize int) ([]*model.Image, int64, error) {
	var total int64
	query := r.db.Model(&model.Image{}).Where("user_id = ? AND status = ?", userID, "active")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var images []*model.Image
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&images).Error
	return images, total, err
}

func (r *ImageRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Image{}).Error
}
