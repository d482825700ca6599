package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *SubscriptionRepository) WithTx(tx *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: tx}
}

func (r *SubscriptionRepository) Create(subscription *model.Subscription) error {
	return r.db.Create(subscription).Error
}

func (r *SubscriptionRepository) GetByID(id int64) (*model.Subscription, error) {
	var subscription model.Subscription
	err := r.db.Where("id = ?", id).First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// GetActive 查询有效订阅：status=active 且未到期。
// 过期在查询时判定，不依赖后台任务改状态。
func (r *SubscriptionRepository) GetActive(userID int64, now time.Time) (*model.Subscription, error) {
	var subscription model.Subscription
	err := r.db.Where("user_id = ? AND status = ? AND end_date > ?",
		userID, model.SubscriptionStatusActive, now).First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// ListByUserID 查询用户全部订阅，新的在前
func (r *SubscriptionRepository) ListByUserID(userID int64) ([]*model.Subscription, error) {
	var subscriptions []*model.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&subscriptions).Error
	return subscriptions, err
}

func (r *SubscriptionRepository) Update(subscription *model.Subscription) error {
	return r.db.Save(subscription).Error
}
