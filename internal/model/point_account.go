package model

import (
	"time"
)

// PointAccount 积分账户，每个用户一条
// 不变式：balance == total_earned - total_spent，且 balance >= 0
type PointAccount struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	Balance     int64     `gorm:"not null;default:0" json:"balance"`
	TotalEarned int64     `gorm:"not null;default:0" json:"total_earned"`
	TotalSpent  int64     `gorm:"not null;default:0" json:"total_spent"`
	Level       int       `gorm:"not null;default:1" json:"level"` // 1-5，由累计获得积分决定
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PointAccount) TableName() string {
	return "point_accounts"
}
