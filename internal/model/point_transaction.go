package model

import (
	"time"
)

// 交易类型
const (
	TransactionTypeEarn  = "earn"
	TransactionTypeSpend = "spend"
)

// 交易来源
const (
	SourceSubscription   = "subscription"
	SourceDailySign      = "daily_sign"
	SourceArticlePublish = "article_publish"
	SourceServiceConsume = "service_consume"
)

// PointTransaction 积分流水，只追加，不修改不删除
type PointTransaction struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"not null;index" json:"user_id"`
	Type         string    `gorm:"size:20;not null" json:"type"`   // earn-获得 spend-消费
	Amount       int64     `gorm:"not null" json:"amount"`         // 正数为获得，负数为消费
	BalanceAfter int64     `gorm:"not null" json:"balance_after"`  // 交易后余额快照
	Source       string    `gorm:"size:50;not null" json:"source"` // subscription/daily_sign/article_publish/service_consume
	SourceID     string    `gorm:"size:100" json:"source_id,omitempty"`
	Description  string    `gorm:"size:255" json:"description"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (PointTransaction) TableName() string {
	return "point_transactions"
}
