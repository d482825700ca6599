package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/testutil"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	user := testutil.TestUser(t, db, testutil.WithEmail("findme@example.com"))

	found, err := repo.GetByEmail("findme@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	testutil.TestUser(t, db,
		testutil.WithUsername("existing"),
		testutil.WithEmail("existing@example.com"))

	exists, err := repo.ExistsByEmail("existing@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail("missing@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByUsername("existing")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername("missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	user := testutil.TestUser(t, db)

	user.Nickname = "新昵称"
	require.NoError(t, repo.Update(user))

	found, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "新昵称", found.Nickname)
}
