package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	nano := time.Now().UnixNano()
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", nano%100000),
		Email:        fmt.Sprintf("test_%d@example.com", nano),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Nickname:     "测试用户",
		Status:       1,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithStatus 设置账号状态
func WithStatus(status int) func(*model.User) {
	return func(u *model.User) {
		u.Status = status
	}
}

// TestAccount 创建测试积分账户
func TestAccount(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.PointAccount)) *model.PointAccount {
	t.Helper()

	account := &model.PointAccount{
		UserID: userID,
		Level:  1,
	}

	for _, opt := range opts {
		opt(account)
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("Failed to create test point account: %v", err)
	}

	return account
}

// WithBalance 设置余额（同时计入累计获得，保持恒等式成立）
func WithBalance(balance int64) func(*model.PointAccount) {
	return func(a *model.PointAccount) {
		a.Balance = balance
		a.TotalEarned = balance
	}
}

// TestSubscription 创建测试订阅
func TestSubscription(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	now := time.Now()
	subscription := &model.Subscription{
		UserID:    userID,
		PlanType:  "happy_island_6y",
		PlanName:  "幸福岛6年会员",
		Price:     3999.00,
		StartDate: now,
		EndDate:   now.AddDate(6, 0, 0),
		Status:    model.SubscriptionStatusActive,
	}

	for _, opt := range opts {
		opt(subscription)
	}

	if err := db.Create(subscription).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return subscription
}

// WithEndDate 设置到期时间
func WithEndDate(endDate time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.EndDate = endDate
	}
}

// WithSubscriptionStatus 设置订阅状态
func WithSubscriptionStatus(status string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = status
	}
}

// TestArticle 创建测试文章
func TestArticle(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Article)) *model.Article {
	t.Helper()

	nano := time.Now().UnixNano()
	article := &model.Article{
		ID:        fmt.Sprintf("test-article-%d", nano),
		UserID:    userID,
		Title:     fmt.Sprintf("测试文章 %d", nano%10000),
		Content:   "这是一篇测试文章的正文内容。",
		Status:    model.ArticleStatusDraft,
		Tags:      "[]",
		Images:    "[]",
		WordCount: 13,
		ReadTime:  1,
	}

	for _, opt := range opts {
		opt(article)
	}

	if err := db.Create(article).Error; err != nil {
		t.Fatalf("Failed to create test article: %v", err)
	}

	return article
}

// TestCollection 创建测试合集
func TestCollection(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Collection)) *model.Collection {
	t.Helper()

	nano := time.Now().UnixNano()
	collection := &model.Collection{
		ID:        fmt.Sprintf("test-collection-%d", nano),
		UserID:    userID,
		Name:      fmt.Sprintf("测试合集 %d", nano%10000),
		Color:     model.DefaultCollectionColor,
		SortOrder: 1,
		IsEnabled: true,
	}

	for _, opt := range opts {
		opt(collection)
	}

	if err := db.Create(collection).Error; err != nil {
		t.Fatalf("Failed to create test collection: %v", err)
	}

	return collection
}

// WithCollectionName 设置合集名称
func WithCollectionName(name string) func(*model.Collection) {
	return func(c *model.Collection) {
		c.Name = name
	}
}

// WithCollectionEnabled 设置合集启用状态
func WithCollectionEnabled(enabled bool) func(*model.Collection) {
	return func(c *model.Collection) {
		c.IsEnabled = enabled
	}
}

// WithTitle 设置文章标题
func WithTitle(title string) func(*model.Article) {
	return func(a *model.Article) {
		a.Title = title
	}
}

// WithCategory 设置文章分类
func WithCategory(category string) func(*model.Article) {
	return func(a *model.Article) {
		a.Category = category
	}
}

// WithArticleStatus 设置文章状态
func WithArticleStatus(status string) func(*model.Article) {
	return func(a *model.Article) {
		a.Status = status
	}
}

// WithArticleCollection 把文章挂到指定合集
func WithArticleCollection(collectionID string) func(*model.Article) {
	return func(a *model.Article) {
		a.CollectionID = collectionID
	}
}
