package repository

import (
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
)

type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) Create(collection *model.Collection) error {
	return r.db.Create(collection).Error
}

func (r *CollectionRepository) GetByID(id string) (*model.Collection, error) {
	var collection model.Collection
	err := r.db.Where("id = ?", id).First(&collection).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// ListByUserID 查询用户全部合集，按排序值升序
func (r *CollectionRepository) ListByUserID(userID int64) ([]*model.Collection, error) {
	var collections []*model.Collection
	err := r.db.Where("user_id = ?", userID).
		Order("sort_order ASC, created_at ASC").Find(&collections).Error
	return collections, err
}

// ListEnabledByUserID 查询用户启用中的合集
func (r *CollectionRepository) ListEnabledByUserID(userID int64) ([]*model.Collection, error) {
	var collections []*model.Collection
	err := r.db.Where("user_id = ? AND is_enabled = ?", userID, true).
		Order("sort_order ASC, created_at ASC").Find(&collections).Error
	return collections, err
}

// ExistsByName 合集名称查重，excludeID 非空时排除指定合集（用于改名）
func (r *CollectionRepository) ExistsByName(userID int64, name, excludeID string) (bool, error) {
	query := r.db.Model(&model.Collection{}).Where("user_id = ? AND name = ?", userID, name)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// MaxSortOrder 返回用户当前最大排序值，没有合集时为0
func (r *CollectionRepository) MaxSortOrder(userID int64) (int, error) {
	var maxOrder *int
	err := r.db.Model(&model.Collection{}).Where("user_id = ?", userID).
		Select("MAX(sort_order)").Scan(&maxOrder).Error
	if err != nil || maxOrder == nil {
		return 0, err
	}
	return *maxOrder, nil
}

func (r *CollectionRepository) Save(collection *model.Collection) error {
	return r.db.Save(collection).Error
}

func (r *CollectionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Collection{}).Error
}
