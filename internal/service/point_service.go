package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/config"
	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/pkg/pubsub"
	"github.com/chengzhang/writing_go_server/internal/pkg/userlock"
	"github.com/chengzhang/writing_go_server/internal/repository"
)

var (
	ErrInvalidAmount       = errors.New("积分数量必须大于0")
	ErrAccountNotFound     = errors.New("积分账户不存在")
	ErrInsufficientBalance = errors.New("积分余额不足")
)

// DefaultCheckinReward 每日签到默认奖励
const DefaultCheckinReward = 10

// 等级阈值：按累计获得积分划分，消费不降级
var levelThresholds = []struct {
	earned int64
	level  int
}{
	{200000, 5},
	{100000, 4},
	{50000, 3},
	{10000, 2},
}

// PointService 积分账本。账户更新和流水追加始终在同一个事务里提交，
// 同一用户的变更操作按用户串行（进程内互斥锁 + MySQL 行锁）。
type PointService struct {
	db              *gorm.DB
	accountRepo     *repository.PointAccountRepository
	transactionRepo *repository.PointTransactionRepository
	locker          *userlock.Locker
	publisher       *pubsub.Publisher // 可为 nil（未接 Redis 时不推送）
	cfg             *config.Config
}

func NewPointService(
	db *gorm.DB,
	accountRepo *repository.PointAccountRepository,
	transactionRepo *repository.PointTransactionRepository,
	locker *userlock.Locker,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *PointService {
	return &PointService{
		db:              db,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		locker:          locker,
		publisher:       publisher,
		cfg:             cfg,
	}
}

// GetAccount 获取积分账户
func (s *PointService) GetAccount(userID int64) (*model.PointAccount, error) {
	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetBalance 获取余额，账户不存在返回 0（不创建账户）
func (s *PointService) GetBalance(userID int64) (int64, error) {
	account, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return account.Balance, nil
}

// GetTransactions 分页查询积分流水，新的在前
func (s *PointService) GetTransactions(userID int64, page, pageSize int) ([]*model.PointTransaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.transactionRepo.ListByUserID(userID, page, pageSize)
}

// GrantPoints 发放积分，返回新余额。账户不存在时自动创建。
func (s *PointService) GrantPoints(userID, points int64, source, sourceID, description string) (int64, error) {
	if points <= 0 {
		return 0, ErrInvalidAmount
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	var newBalance int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		newBalance, err = s.grantTx(tx, userID, points, source, sourceID, description)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.notify(userID, points, newBalance, source, description)
	return newBalance, nil
}

// LockAccountTx 在事务内锁定用户的账户行，作为同一用户写操作的跨进程串行点。
// 账户尚未创建时没有行可锁，此时只由进程内互斥锁保护。
func (s *PointService) LockAccountTx(tx *gorm.DB, userID int64) error {
	_, err := s.accountRepo.WithTx(tx).GetByUserIDForUpdate(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// GrantPointsTx 在调用方事务内发放积分。调用方负责持有该用户的锁。
func (s *PointService) GrantPointsTx(tx *gorm.DB, userID, points int64, source, sourceID, description string) (int64, error) {
	if points <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.grantTx(tx, userID, points, source, sourceID, description)
}

// SpendPoints 消费积分，返回新余额。余额不足拒绝，不扣到负数。
func (s *PointService) SpendPoints(userID, points int64, source, description string) (int64, error) {
	if points <= 0 {
		return 0, ErrInvalidAmount
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	var newBalance int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		accountRepo := s.accountRepo.WithTx(tx)

		account, err := accountRepo.GetByUserIDForUpdate(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		if account.Balance < points {
			return ErrInsufficientBalance
		}

		account.Balance -= points
		account.TotalSpent += points
		// 等级由累计获得积分决定，消费不重算

		if err := accountRepo.Save(account); err != nil {
			return err
		}

		transaction := &model.PointTransaction{
			UserID:       userID,
			Type:         model.TransactionTypeSpend,
			Amount:       -points, // 负数表示消费
			BalanceAfter: account.Balance,
			Source:       source,
			Description:  description,
		}
		if err := s.transactionRepo.WithTx(tx).Create(transaction); err != nil {
			return err
		}

		newBalance = account.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

// DailyCheckin 每日签到，固定发放签到奖励。
// 当前行为与来源系统一致：不做“当日已签到”判断，每次调用都发放。
func (s *PointService) DailyCheckin(userID int64) (*dto.CheckinResult, error) {
	reward := int64(DefaultCheckinReward)
	if s.cfg != nil && s.cfg.Points.CheckinReward > 0 {
		reward = s.cfg.Points.CheckinReward
	}

	newBalance, err := s.GrantPoints(userID, reward, model.SourceDailySign, "", "每日签到")
	if err != nil {
		return nil, err
	}

	return &dto.CheckinResult{
		PointsEarned:   reward,
		NewBalance:     newBalance,
		ContinuousDays: 1, // 简化版：固定为1
	}, nil
}

func (s *PointService) grantTx(tx *gorm.DB, userID, points int64, source, sourceID, description string) (int64, error) {
	accountRepo := s.accountRepo.WithTx(tx)

	account, err := accountRepo.GetByUserIDForUpdate(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		// 首次发放时自动建户
		account = &model.PointAccount{
			UserID: userID,
			Level:  1,
		}
		if err := accountRepo.Create(account); err != nil {
			return 0, err
		}
	}

	account.Balance += points
	account.TotalEarned += points
	account.Level = levelForTotalEarned(account.TotalEarned)

	if err := accountRepo.Save(account); err != nil {
		return 0, err
	}

	transaction := &model.PointTransaction{
		UserID:       userID,
		Type:         model.TransactionTypeEarn,
		Amount:       points,
		BalanceAfter: account.Balance,
		Source:       source,
		SourceID:     sourceID,
		Description:  description,
	}
	if err := s.transactionRepo.WithTx(tx).Create(transaction); err != nil {
		return 0, err
	}

	return account.Balance, nil
}

// notify 推送积分变动，失败只记日志不影响主流程
func (s *PointService) notify(userID, amount, balance int64, source, description string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishPointsChanged(context.Background(), &pubsub.PointsMessage{
		UserID:      userID,
		Amount:      amount,
		Balance:     balance,
		Source:      source,
		Description: description,
	})
	if err != nil {
		log.Printf("Failed to publish points change for user %d: %v", userID, err)
	}
}

func levelForTotalEarned(totalEarned int64) int {
	for _, t := range levelThresholds {
		if totalEarned >= t.earned {
			return t.level
		}
	}
	return 1
}
