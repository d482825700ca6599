package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/testutil"
)

func TestSubscriptionRepository_GetActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)
	user := testutil.TestUser(t, db)

	_, err := repo.GetActive(user.ID, time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	created := testutil.TestSubscription(t, db, user.ID)
	found, err := repo.GetActive(user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestSubscriptionRepository_GetActive_SkipsExpiredEndDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)
	user := testutil.TestUser(t, db)

	// status 还是 active，但 end_date 已过，按时点判定失效
	testutil.TestSubscription(t, db, user.ID,
		testutil.WithEndDate(time.Now().Add(-time.Minute)))

	_, err := repo.GetActive(user.ID, time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubscriptionRepository_GetActive_SkipsCancelled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)
	user := testutil.TestUser(t, db)

	testutil.TestSubscription(t, db, user.ID,
		testutil.WithSubscriptionStatus(model.SubscriptionStatusCancelled))

	_, err := repo.GetActive(user.ID, time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubscriptionRepository_ListByUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)
	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)

	testutil.TestSubscription(t, db, user.ID,
		testutil.WithSubscriptionStatus(model.SubscriptionStatusExpired))
	testutil.TestSubscription(t, db, user.ID)
	testutil.TestSubscription(t, db, other.ID)

	subscriptions, err := repo.ListByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, subscriptions, 2)
}
