package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/repository"
	"github.com/chengzhang/writing_go_server/internal/testutil"
)

func setupArticleService(t *testing.T) (*ArticleService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewArticleService(repository.NewArticleRepository(db))

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestArticleService_CreateArticle(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	item, err := service.CreateArticle(user.ID, &dto.ArticleRequest{
		Title:    "第一篇文章",
		Content:  "这是正文内容，一共二十个字左右的中文句子。",
		Category: "随笔",
		Tags:     []string{"生活", "记录"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, model.ArticleStatusDraft, item.Status) // 缺省存草稿
	assert.Equal(t, []string{"生活", "记录"}, item.Tags)
	assert.Greater(t, item.WordCount, 0)
	assert.Greater(t, item.ReadTime, 0)
	assert.NotEmpty(t, item.Summary) // 没给摘要时自动生成
}

func TestArticleService_CreateArticle_PublishedStatus(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	item, err := service.CreateArticle(user.ID, &dto.ArticleRequest{
		Title:  "发布文章",
		Status: model.ArticleStatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ArticleStatusPublished, item.Status)
}

func TestArticleService_UpdateArticle_RecomputesWordCount(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	article := testutil.TestArticle(t, db, user.ID)

	item, err := service.UpdateArticle(user.ID, article.ID, &dto.ArticleRequest{
		Title:   "更新后的标题",
		Content: "新正文",
	})
	require.NoError(t, err)
	assert.Equal(t, "更新后的标题", item.Title)
	assert.Equal(t, 3, item.WordCount)
}

func TestArticleService_GetArticle_OtherUsersArticle(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	article := testutil.TestArticle(t, db, owner.ID)

	_, err := service.GetArticle(other.ID, article.ID)
	assert.Equal(t, ErrNoPermission, err)
}

func TestArticleService_GetArticle_NotFound(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.GetArticle(user.ID, "missing-id")
	assert.Equal(t, ErrArticleNotFound, err)
}

func TestArticleService_DeleteArticle(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	article := testutil.TestArticle(t, db, user.ID)

	err := service.DeleteArticle(user.ID, article.ID)
	require.NoError(t, err)

	_, err = service.GetArticle(user.ID, article.ID)
	assert.Equal(t, ErrArticleNotFound, err)
}

func TestArticleService_BatchDelete_SkipsOthersArticles(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	mine := testutil.TestArticle(t, db, owner.ID)
	notMine := testutil.TestArticle(t, db, other.ID)

	result, err := service.BatchDelete(owner.ID, []string{mine.ID, notMine.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeletedCount)
	assert.ElementsMatch(t, []string{notMine.ID, "missing"}, result.FailedIDs)
}

func TestArticleService_ListArticles_KeywordFilter(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestArticle(t, db, user.ID, testutil.WithTitle("Go 并发模式"))
	testutil.TestArticle(t, db, user.ID, testutil.WithTitle("旅行日记"))

	items, total, err := service.ListArticles(user.ID, &dto.ArticleQuery{Keyword: "并发"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Title, "并发")
	assert.Empty(t, items[0].Content) // 列表不带正文
}

func TestArticleService_ListArticles_CategoryAndStatus(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestArticle(t, db, user.ID,
		testutil.WithCategory("技术"),
		testutil.WithArticleStatus(model.ArticleStatusPublished))
	testutil.TestArticle(t, db, user.ID, testutil.WithCategory("技术"))
	testutil.TestArticle(t, db, user.ID, testutil.WithCategory("生活"))

	_, total, err := service.ListArticles(user.ID, &dto.ArticleQuery{Category: "技术"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = service.ListArticles(user.ID, &dto.ArticleQuery{
		Category: "技术",
		Status:   model.ArticleStatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestArticleService_ListArticles_CollectionFilter(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, user.ID)
	testutil.TestArticle(t, db, user.ID, testutil.WithArticleCollection(collection.ID))
	testutil.TestArticle(t, db, user.ID)

	items, total, err := service.ListArticles(user.ID, &dto.ArticleQuery{
		CollectionID: collection.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, collection.ID, items[0].CollectionID)
}

func TestArticleService_CreateArticle_InCollection(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	collection := testutil.TestCollection(t, db, user.ID)

	item, err := service.CreateArticle(user.ID, &dto.ArticleRequest{
		Title:        "挂在合集下的文章",
		Content:      "正文。",
		CollectionID: collection.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, collection.ID, item.CollectionID)
}

func TestArticleService_ListCategories(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestArticle(t, db, user.ID, testutil.WithCategory("技术"))
	testutil.TestArticle(t, db, user.ID, testutil.WithCategory("技术"))
	testutil.TestArticle(t, db, user.ID, testutil.WithCategory("生活"))

	categories, err := service.ListCategories(user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"技术", "生活"}, categories)
}

func TestArticleService_GetStats(t *testing.T) {
	service, db, cleanup := setupArticleService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestArticle(t, db, user.ID,
		testutil.WithArticleStatus(model.ArticleStatusPublished))
	testutil.TestArticle(t, db, user.ID)

	stats, err := service.GetStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalArticles)
	assert.Equal(t, int64(1), stats.PublishedArticles)
	assert.Equal(t, int64(1), stats.DraftArticles)
	assert.Equal(t, int64(26), stats.TotalWords)
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"空内容", "", 0},
		{"纯中文", "你好世界", 4},
		{"纯英文", "hello world again", 3},
		{"中英混排", "Go语言很好用", 6},
		{"标点不计数", "你好，世界！", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countWords(tt.content))
		})
	}
}

func TestGenerateSummary(t *testing.T) {
	short := generateSummary("# 标题\n\n这是**加粗**的正文。")
	assert.NotContains(t, short, "#")
	assert.NotContains(t, short, "*")

	long := generateSummary(strings.Repeat("长", 300))
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.LessOrEqual(t, len([]rune(long)), 203)
}
