package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/repository"
	"github.com/chengzhang/writing_go_server/internal/testutil"
)

func setupCollectionService(t *testing.T) (*CollectionService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewCollectionService(
		repository.NewCollectionRepository(db),
		repository.NewArticleRepository(db),
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestCollectionService_CreateCollection(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	item, err := service.CreateCollection(user.ID, &dto.CollectionRequest{
		Name:        "技术随笔",
		Description: "日常技术笔记",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "技术随笔", item.Name)
	// 未指定时使用默认颜色，启用状态默认为 true
	assert.Equal(t, model.DefaultCollectionColor, item.Color)
	assert.True(t, item.IsEnabled)
	assert.Equal(t, 1, item.SortOrder)
}

func TestCollectionService_CreateCollection_SortOrderAppends(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	first, err := service.CreateCollection(user.ID, &dto.CollectionRequest{Name: "合集一"})
	require.NoError(t, err)
	second, err := service.CreateCollection(user.ID, &dto.CollectionRequest{Name: "合集二"})
	require.NoError(t, err)

	assert.Equal(t, first.SortOrder+1, second.SortOrder)
}

func TestCollectionService_CreateCollection_DuplicateName(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.CreateCollection(user.ID, &dto.CollectionRequest{Name: "技术随笔"})
	require.NoError(t, err)

	_, err = service.CreateCollection(user.ID, &dto.CollectionRequest{Name: "技术随笔"})
	assert.Equal(t, ErrCollectionNameExists, err)
}

func TestCollectionService_CreateCollection_SameNameDifferentUsers(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)

	_, err := service.CreateCollection(user.ID, &dto.CollectionRequest{Name: "技术随笔"})
	require.NoError(t, err)

	// 名称查重只在同一用户内生效
	_, err = service.CreateCollection(other.ID, &dto.CollectionRequest{Name: "技术随笔"})
	require.NoError(t, err)
}

func TestCollectionService_UpdateCollection(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, user.ID, testutil.WithCollectionName("旧名字"))

	item, err := service.UpdateCollection(user.ID, collection.ID, &dto.CollectionRequest{
		Name:        "新名字",
		Description: "更新后的描述",
		Color:       "#FF0000",
		SortOrder:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, "新名字", item.Name)
	assert.Equal(t, "#FF0000", item.Color)
	assert.Equal(t, 5, item.SortOrder)
}

func TestCollectionService_UpdateCollection_RenameToExistingName(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestCollection(t, db, user.ID, testutil.WithCollectionName("已占用"))
	collection := testutil.TestCollection(t, db, user.ID, testutil.WithCollectionName("原名"))

	_, err := service.UpdateCollection(user.ID, collection.ID, &dto.CollectionRequest{Name: "已占用"})
	assert.Equal(t, ErrCollectionNameExists, err)
}

func TestCollectionService_UpdateCollection_KeepOwnName(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, user.ID, testutil.WithCollectionName("保持不变"))

	// 名称不变时不触发查重
	_, err := service.UpdateCollection(user.ID, collection.ID, &dto.CollectionRequest{
		Name:        "保持不变",
		Description: "只改描述",
	})
	require.NoError(t, err)
}

func TestCollectionService_GetCollection_NotFound(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.GetCollection(user.ID, "nonexistent")
	assert.Equal(t, ErrCollectionNotFound, err)
}

func TestCollectionService_GetCollection_OtherUsersCollection(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, owner.ID)

	_, err := service.GetCollection(other.ID, collection.ID)
	assert.Equal(t, ErrNoPermission, err)
}

func TestCollectionService_ListCollections_EnabledOnly(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestCollection(t, db, user.ID, testutil.WithCollectionName("启用中"))
	testutil.TestCollection(t, db, user.ID,
		testutil.WithCollectionName("已禁用"),
		testutil.WithCollectionEnabled(false))

	all, err := service.ListCollections(user.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	enabled, err := service.ListCollections(user.ID, true)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "启用中", enabled[0].Name)
}

func TestCollectionService_GetCollectionStats(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, user.ID)
	testutil.TestArticle(t, db, user.ID, testutil.WithArticleCollection(collection.ID))
	testutil.TestArticle(t, db, user.ID, testutil.WithArticleCollection(collection.ID))
	testutil.TestArticle(t, db, user.ID) // 未挂合集的不计入

	stats, err := service.GetCollectionStats(user.ID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(2), stats[0].ArticleCount)
}

func TestCollectionService_DeleteCollection(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, user.ID)

	require.NoError(t, service.DeleteCollection(user.ID, collection.ID))

	_, err := service.GetCollection(user.ID, collection.ID)
	assert.Equal(t, ErrCollectionNotFound, err)
}

func TestCollectionService_DeleteCollection_WithArticles(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, user.ID)
	testutil.TestArticle(t, db, user.ID, testutil.WithArticleCollection(collection.ID))

	// 合集下还有文章时拒绝删除
	err := service.DeleteCollection(user.ID, collection.ID)
	assert.Equal(t, ErrCollectionInUse, err)

	_, err = service.GetCollection(user.ID, collection.ID)
	require.NoError(t, err)
}

func TestCollectionService_ToggleStatus(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, user.ID)

	item, err := service.ToggleStatus(user.ID, collection.ID, false)
	require.NoError(t, err)
	assert.False(t, item.IsEnabled)

	item, err = service.ToggleStatus(user.ID, collection.ID, true)
	require.NoError(t, err)
	assert.True(t, item.IsEnabled)
}

func TestCollectionService_UpdateSortOrder(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, user.ID)

	item, err := service.UpdateSortOrder(user.ID, collection.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, item.SortOrder)
}

func TestCollectionService_CheckName(t *testing.T) {
	service, db, cleanup := setupCollectionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, user.ID, testutil.WithCollectionName("技术随笔"))

	exists, err := service.CheckName(user.ID, "技术随笔", "")
	require.NoError(t, err)
	assert.True(t, exists)

	// 改名场景下排除自身
	exists, err = service.CheckName(user.ID, "技术随笔", collection.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = service.CheckName(user.ID, "未使用的名字", "")
	require.NoError(t, err)
	assert.False(t, exists)
}
