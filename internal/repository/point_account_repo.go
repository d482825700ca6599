package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chengzhang/writing_go_server/internal/model"
)

type PointAccountRepository struct {
	db *gorm.DB
}

func NewPointAccountRepository(db *gorm.DB) *PointAccountRepository {
	return &PointAccountRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *PointAccountRepository) WithTx(tx *gorm.DB) *PointAccountRepository {
	return &PointAccountRepository{db: tx}
}

func (r *PointAccountRepository) Create(account *model.PointAccount) error {
	return r.db.Create(account).Error
}

func (r *PointAccountRepository) GetByUserID(userID int64) (*model.PointAccount, error) {
	var account model.PointAccount
	err := r.db.Where("user_id = ?", userID).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByUserIDForUpdate 在事务内加行锁读取账户。
// SQLite（测试数据库）不支持 FOR UPDATE，仅对 MySQL 加锁。
func (r *PointAccountRepository) GetByUserIDForUpdate(userID int64) (*model.PointAccount, error) {
	query := r.db
	if r.db.Dialector.Name() == "mysql" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var account model.PointAccount
	err := query.Where("user_id = ?", userID).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *PointAccountRepository) Save(account *model.PointAccount) error {
	return r.db.Save(account).Error
}
