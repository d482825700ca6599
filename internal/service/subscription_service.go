package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/config"
	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/pkg/userlock"
	"github.com/chengzhang/writing_go_server/internal/repository"
)

var (
	ErrAlreadyMember         = errors.New("您已经是会员了")
	ErrInvalidPlan           = errors.New("不支持的会员类型")
	ErrSubscriptionNotFound  = errors.New("订阅记录不存在")
	ErrSubscriptionNotActive = errors.New("订阅已失效，无需取消")
)

// 内置套餐，配置文件没有 plans 段时使用
var defaultPlans = []config.PlanConfig{
	{
		PlanType:      "happy_island_6y",
		PlanName:      "幸福岛6年会员",
		Price:         3999.00,
		DurationYears: 6,
		PointGrant:    46000,
	},
}

// SubscriptionService 会员订阅。购买记录和赠送积分在同一个事务里提交，
// 任何一步失败整体回滚。
type SubscriptionService struct {
	db               *gorm.DB
	subscriptionRepo *repository.SubscriptionRepository
	pointService     *PointService
	locker           *userlock.Locker
	plans            []config.PlanConfig
}

func NewSubscriptionService(
	db *gorm.DB,
	subscriptionRepo *repository.SubscriptionRepository,
	pointService *PointService,
	locker *userlock.Locker,
	cfg *config.Config,
) *SubscriptionService {
	plans := defaultPlans
	if cfg != nil && len(cfg.Plans) > 0 {
		plans = cfg.Plans
	}
	return &SubscriptionService{
		db:               db,
		subscriptionRepo: subscriptionRepo,
		pointService:     pointService,
		locker:           locker,
		plans:            plans,
	}
}

// ListPlans 返回可购买的套餐列表
func (s *SubscriptionService) ListPlans() []*dto.PlanItem {
	items := make([]*dto.PlanItem, 0, len(s.plans))
	for _, p := range s.plans {
		items = append(items, &dto.PlanItem{
			PlanType:      p.PlanType,
			PlanName:      p.PlanName,
			Price:         p.Price,
			DurationYears: p.DurationYears,
			PointGrant:    p.PointGrant,
		})
	}
	return items
}

// CreateSubscription 购买会员：同一用户最多一条有效订阅，
// 创建订阅和赠送积分原子完成。
func (s *SubscriptionService) CreateSubscription(userID int64, planType string) (*model.Subscription, error) {
	plan, ok := s.findPlan(planType)
	if !ok {
		return nil, ErrInvalidPlan
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	now := time.Now()
	subscription := &model.Subscription{
		UserID:    userID,
		PlanType:  plan.PlanType,
		PlanName:  plan.PlanName,
		Price:     plan.Price,
		StartDate: now,
		EndDate:   now.AddDate(plan.DurationYears, 0, 0),
		Status:    model.SubscriptionStatusActive,
	}

	var granted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 先锁账户行再查重：另一个进程的购买会在这里排队，
		// 不会双方都通过查重检查
		if err := s.pointService.LockAccountTx(tx, userID); err != nil {
			return err
		}

		_, err := s.subscriptionRepo.WithTx(tx).GetActive(userID, now)
		if err == nil {
			return ErrAlreadyMember
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := s.subscriptionRepo.WithTx(tx).Create(subscription); err != nil {
			return err
		}

		newBalance, err := s.pointService.GrantPointsTx(tx,
			userID,
			plan.PointGrant,
			model.SourceSubscription,
			strconv.FormatInt(subscription.ID, 10),
			fmt.Sprintf("购买%s赠送积分", plan.PlanName),
		)
		if err != nil {
			return err
		}
		granted = newBalance
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.pointService.notify(userID, plan.PointGrant, granted,
		model.SourceSubscription, fmt.Sprintf("购买%s赠送积分", plan.PlanName))
	return subscription, nil
}

// CancelSubscription 取消订阅。已赠送的积分不回收，只终止会员身份。
func (s *SubscriptionService) CancelSubscription(userID, subscriptionID int64) (*model.Subscription, error) {
	unlock := s.locker.Lock(userID)
	defer unlock()

	subscription, err := s.subscriptionRepo.GetByID(subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	if subscription.UserID != userID {
		return nil, ErrSubscriptionNotFound
	}
	if subscription.Status != model.SubscriptionStatusActive {
		return nil, ErrSubscriptionNotActive
	}

	subscription.Status = model.SubscriptionStatusCancelled
	if err := s.subscriptionRepo.Update(subscription); err != nil {
		return nil, err
	}
	return subscription, nil
}

// GetActiveSubscription 查询当前有效订阅，没有返回 nil 不报错
func (s *SubscriptionService) GetActiveSubscription(userID int64) (*model.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetActive(userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return subscription, nil
}

// GetUserSubscriptions 查询用户全部订阅记录
func (s *SubscriptionService) GetUserSubscriptions(userID int64) ([]*model.Subscription, error) {
	return s.subscriptionRepo.ListByUserID(userID)
}

// IsMember 判断用户当前是否会员
func (s *SubscriptionService) IsMember(userID int64) (bool, error) {
	subscription, err := s.GetActiveSubscription(userID)
	if err != nil {
		return false, err
	}
	return subscription != nil, nil
}

// GetMembershipInfo 组装会员状态摘要
func (s *SubscriptionService) GetMembershipInfo(userID int64) (*dto.MembershipInfo, error) {
	subscription, err := s.GetActiveSubscription(userID)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return &dto.MembershipInfo{IsMember: false}, nil
	}

	days := int(time.Until(subscription.EndDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &dto.MembershipInfo{
		IsMember:      true,
		PlanType:      subscription.PlanType,
		PlanName:      subscription.PlanName,
		EndDate:       subscription.EndDate.Format("2006-01-02"),
		DaysRemaining: days,
	}, nil
}

func (s *SubscriptionService) findPlan(planType string) (config.PlanConfig, bool) {
	for _, p := range s.plans {
		if p.PlanType == planType {
			return p, true
		}
	}
	return config.PlanConfig{}, false
}
