package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/config"
	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/pkg/userlock"
	"github.com/chengzhang/writing_go_server/internal/repository"
	"github.com/chengzhang/writing_go_server/internal/testutil"
)

func setupPointService(t *testing.T) (*PointService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	accountRepo := repository.NewPointAccountRepository(db)
	transactionRepo := repository.NewPointTransactionRepository(db)

	cfg := &config.Config{
		Points: config.PointsConfig{CheckinReward: 10},
	}

	service := NewPointService(db, accountRepo, transactionRepo, userlock.New(), nil, cfg)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestPointService_GrantPoints_CreatesAccount(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	newBalance, err := service.GrantPoints(user.ID, 100, model.SourceArticlePublish, "", "发布文章奖励")
	require.NoError(t, err)
	assert.Equal(t, int64(100), newBalance)

	account, err := service.GetAccount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), account.Balance)
	assert.Equal(t, int64(100), account.TotalEarned)
	assert.Equal(t, int64(0), account.TotalSpent)
	assert.Equal(t, 1, account.Level)
}

func TestPointService_GrantPoints_AppendsTransaction(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.GrantPoints(user.ID, 50, model.SourceDailySign, "", "每日签到")
	require.NoError(t, err)

	transactions, total, err := service.GetTransactions(user.ID, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	tx := transactions[0]
	assert.Equal(t, model.TransactionTypeEarn, tx.Type)
	assert.Equal(t, int64(50), tx.Amount)
	assert.Equal(t, int64(50), tx.BalanceAfter)
	assert.Equal(t, model.SourceDailySign, tx.Source)
}

func TestPointService_GrantPoints_InvalidAmount(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.GrantPoints(user.ID, 0, model.SourceDailySign, "", "")
	assert.Equal(t, ErrInvalidAmount, err)

	_, err = service.GrantPoints(user.ID, -10, model.SourceDailySign, "", "")
	assert.Equal(t, ErrInvalidAmount, err)
}

func TestPointService_SpendPoints_Success(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	_, err := service.GrantPoints(user.ID, 200, model.SourceArticlePublish, "", "")
	require.NoError(t, err)

	newBalance, err := service.SpendPoints(user.ID, 80, model.SourceServiceConsume, "AI润色")
	require.NoError(t, err)
	assert.Equal(t, int64(120), newBalance)

	account, err := service.GetAccount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), account.Balance)
	assert.Equal(t, int64(200), account.TotalEarned)
	assert.Equal(t, int64(80), account.TotalSpent)
	// 恒等式：余额 = 累计获得 - 累计消费
	assert.Equal(t, account.TotalEarned-account.TotalSpent, account.Balance)
}

func TestPointService_SpendPoints_RecordsNegativeAmount(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	_, err := service.GrantPoints(user.ID, 100, model.SourceArticlePublish, "", "")
	require.NoError(t, err)

	_, err = service.SpendPoints(user.ID, 30, model.SourceServiceConsume, "")
	require.NoError(t, err)

	transactions, _, err := service.GetTransactions(user.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	// 新的在前
	spend := transactions[0]
	assert.Equal(t, model.TransactionTypeSpend, spend.Type)
	assert.Equal(t, int64(-30), spend.Amount)
	assert.Equal(t, int64(70), spend.BalanceAfter)
}

func TestPointService_SpendPoints_InsufficientBalance(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	_, err := service.GrantPoints(user.ID, 100, model.SourceArticlePublish, "", "")
	require.NoError(t, err)

	_, err = service.SpendPoints(user.ID, 150, model.SourceServiceConsume, "")
	assert.Equal(t, ErrInsufficientBalance, err)

	// 失败的消费不留流水，余额不变
	account, err := service.GetAccount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), account.Balance)

	_, total, err := service.GetTransactions(user.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestPointService_SpendPoints_AccountNotFound(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.SpendPoints(user.ID, 10, model.SourceServiceConsume, "")
	assert.Equal(t, ErrAccountNotFound, err)
}

func TestPointService_Level_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		earned int64
		level  int
	}{
		{"零积分1级", 0, 1},
		{"阈值之下1级", 9999, 1},
		{"1万积分2级", 10000, 2},
		{"5万积分3级", 50000, 3},
		{"10万积分4级", 100000, 4},
		{"20万积分5级", 200000, 5},
		{"超过最高阈值5级", 500000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.level, levelForTotalEarned(tt.earned))
		})
	}
}

func TestPointService_Level_UpgradesOnGrant(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.GrantPoints(user.ID, 9999, model.SourceArticlePublish, "", "")
	require.NoError(t, err)
	account, _ := service.GetAccount(user.ID)
	assert.Equal(t, 1, account.Level)

	_, err = service.GrantPoints(user.ID, 1, model.SourceArticlePublish, "", "")
	require.NoError(t, err)
	account, _ = service.GetAccount(user.ID)
	assert.Equal(t, 2, account.Level)
}

func TestPointService_Level_NotRecomputedOnSpend(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	_, err := service.GrantPoints(user.ID, 10000, model.SourceArticlePublish, "", "")
	require.NoError(t, err)

	_, err = service.SpendPoints(user.ID, 9999, model.SourceServiceConsume, "")
	require.NoError(t, err)

	// 等级由累计获得决定，消费后不降级
	account, err := service.GetAccount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.Balance)
	assert.Equal(t, 2, account.Level)
}

func TestPointService_Ledger_ReplayMatchesBalance(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.GrantPoints(user.ID, 300, model.SourceArticlePublish, "", "")
	require.NoError(t, err)
	_, err = service.SpendPoints(user.ID, 120, model.SourceServiceConsume, "")
	require.NoError(t, err)
	_, err = service.GrantPoints(user.ID, 50, model.SourceDailySign, "", "")
	require.NoError(t, err)
	_, err = service.SpendPoints(user.ID, 30, model.SourceServiceConsume, "")
	require.NoError(t, err)

	transactionRepo := repository.NewPointTransactionRepository(db)
	transactions, err := transactionRepo.ListAllByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 4)

	// 从零回放流水，每一步的快照都要对上
	var running int64
	for _, tx := range transactions {
		running += tx.Amount
		assert.Equal(t, running, tx.BalanceAfter)
	}

	account, err := service.GetAccount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, running, account.Balance)
	assert.Equal(t, int64(200), account.Balance)
}

func TestPointService_DailyCheckin(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	result, err := service.DailyCheckin(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.PointsEarned)
	assert.Equal(t, int64(10), result.NewBalance)
	assert.Equal(t, 1, result.ContinuousDays)

	transactions, _, err := service.GetTransactions(user.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, model.SourceDailySign, transactions[0].Source)
}

func TestPointService_DailyCheckin_RepeatedCallsBothGrant(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.DailyCheckin(user.ID)
	require.NoError(t, err)
	result, err := service.DailyCheckin(user.ID)
	require.NoError(t, err)

	// 当前不做当日去重，重复签到重复发放
	assert.Equal(t, int64(20), result.NewBalance)
}

func TestPointService_GetBalance_NoAccount(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	balance, err := service.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestPointService_GetAccount_NotFound(t *testing.T) {
	service, _, cleanup := setupPointService(t)
	defer cleanup()

	_, err := service.GetAccount(99999)
	assert.Equal(t, ErrAccountNotFound, err)
}

func TestPointService_ConcurrentSpend_OnlyOneSucceeds(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	_, err := service.GrantPoints(user.ID, 100, model.SourceArticlePublish, "", "")
	require.NoError(t, err)

	// 余额100，两个并发消费各60，只允许成功一笔
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = service.SpendPoints(user.ID, 60, model.SourceServiceConsume, "")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, e := range errs {
		if e == nil {
			succeeded++
		} else {
			assert.Equal(t, ErrInsufficientBalance, e)
		}
	}
	assert.Equal(t, 1, succeeded)

	account, err := service.GetAccount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), account.Balance)
	assert.GreaterOrEqual(t, account.Balance, int64(0))
}

func TestPointService_GetTransactions_NewestFirst(t *testing.T) {
	service, db, cleanup := setupPointService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	for i := 1; i <= 3; i++ {
		_, err := service.GrantPoints(user.ID, int64(i*10), model.SourceArticlePublish, "", "")
		require.NoError(t, err)
	}

	transactions, total, err := service.GetTransactions(user.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, transactions, 2)
	assert.Equal(t, int64(30), transactions[0].Amount)
	assert.Equal(t, int64(20), transactions[1].Amount)
}
