package model

import (
	"time"
)

// 订阅状态
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription 会员订阅
// 同一用户同一时刻至多一条 status=active 且 end_date 未到期的记录
type Subscription struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	PlanType  string    `gorm:"size:50;not null" json:"plan_type"`
	PlanName  string    `gorm:"size:100;not null" json:"plan_name"`
	Price     float64   `gorm:"type:decimal(10,2)" json:"price"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`
	Status    string    `gorm:"size:20;default:active;index" json:"status"` // active, expired, cancelled
	AutoRenew int       `gorm:"default:0" json:"auto_renew"`                // 0-否 1-是
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
