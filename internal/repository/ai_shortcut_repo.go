package repository

import (
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
)

type AIShortcutRepository struct {
	db *gorm.DB
}

func NewAIShortcutRepository(db *gorm.DB) *AIShortcutRepository {
	return &AIShortcutRepository{db: db}
}

func (r *AIShortcutRepository) Create(shortcut *model.AIShortcut) error {
	return r.db.Create(shortcut).Error
}

func (r *AIShortcutRepository) GetByID(id int64) (*model.AIShortcut, error) {
	var shortcut model.AIShortcut
	err := r.db.Where("id = ?", id).First(&shortcut).Error
	if err != nil {
		return nil, err
	}
	return &shortcut, nil
}

// ListActiveByUserID 查询启用中的快捷指令，按排序值和创建时间升序
func (r *AIShortcutRepository) ListActiveByUserID(userID int64) ([]*model.AIShortcut, error) {
	var shortcuts []*model.AIShortcut
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("sort_order ASC, created_at ASC").Find(&shortcuts).Error
	return shortcuts, err
}

// SearchByName 按名称模糊搜索
func (r *AIShortcutRepository) SearchByName(userID int64, name string) ([]*model.AIShortcut, error) {
	var shortcuts []*model.AIShortcut
	err := r.db.Where("user_id = ? AND name LIKE ?", userID, "%"+name+"%").
		Order("sort_order ASC, created_at ASC").Find(&shortcuts).Error
	return shortcuts, err
}

// ExistsByName 名称查重，excludeID 大于0时排除指定指令（用于改名）
func (r *AIShortcutRepository) ExistsByName(userID int64, name string, excludeID int64) (bool, error) {
	query := r.db.Model(&model.AIShortcut{}).Where("user_id = ? AND name = ?", userID, name)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *AIShortcutRepository) CountByUserID(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.AIShortcut{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// MaxSortOrder 返回用户当前最大排序值，没有指令时为0
func (r *AIShortcutRepository) MaxSortOrder(userID int64) (int, error) {
	var maxOrder *int
	err := r.db.Model(&model.AIShortcut{}).Where("user_id = ?", userID).
		Select("MAX(sort_order)").Scan(&maxOrder).Error
	if err != nil || maxOrder == nil {
		return 0, err
	}
	return *maxOrder, nil
}

func (r *AIShortcutRepository) Save(shortcut *model.AIShortcut) error {
	return r.db.Save(shortcut).Error
}

func (r *AIShortcutRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.AIShortcut{}).Error
}

// BatchDelete 批量删除用户自己的指令，返回删除条数
func (r *AIShortcutRepository) BatchDelete(userID int64, ids []int64) (int64, error) {
	result := r.db.Where("user_id = ? AND id IN ?", userID, ids).Delete(&model.AIShortcut{})
	return result.RowsAffected, result.Error
}
