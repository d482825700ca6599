package repository

import (
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
)

type PointTransactionRepository struct {
	db *gorm.DB
}

func NewPointTransactionRepository(db *gorm.DB) *PointTransactionRepository {
	return &PointTransactionRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *PointTransactionRepository) WithTx(tx *gorm.DB) *PointTransactionRepository {
	return &PointTransactionRepository{db: tx}
}

// Create 追加一条流水。流水只增不改。
func (r *PointTransactionRepository) Create(transaction *model.PointTransaction) error {
	return r.db.Create(transaction).Error
}

// ListByUserID 按时间倒序分页查询流水
func (r *PointTransactionRepository) ListByUserID(userID int64, page, pageSize int) ([]*model.PointTransaction, int64, error) {
	var total int64
	query := r.db.Model(&model.PointTransaction{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []*model.PointTransaction
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(pageSize).Find(&transactions).Error
	return transactions, total, err
}

// ListAllByUserID 按时间正序返回用户全部流水（审计回放用）
func (r *PointTransactionRepository) ListAllByUserID(userID int64) ([]*model.PointTransaction, error) {
	var transactions []*model.PointTransaction
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&transactions).Error
	return transactions, err
}

func (r *PointTransactionRepository) CountByUserID(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.PointTransaction{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
