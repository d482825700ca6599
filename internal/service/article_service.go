package service

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/repository"
)

var (
	ErrArticleNotFound = errors.New("文章不存在")
	ErrNoPermission    = errors.New("无权操作该文章")
)

// 按每分钟300字估算阅读时间
const wordsPerMinute = 300

type ArticleService struct {
	articleRepo *repository.ArticleRepository
}

func NewArticleService(articleRepo *repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// CreateArticle 创建文章，字数、摘要、阅读时长由服务端计算
func (s *ArticleService) CreateArticle(userID int64, req *dto.ArticleRequest) (*dto.ArticleItem, error) {
	status := req.Status
	if status != model.ArticleStatusPublished {
		status = model.ArticleStatusDraft
	}

	summary := req.Summary
	if summary == "" {
		summary = generateSummary(req.Content)
	}

	wordCount := countWords(req.Content)
	article := &model.Article{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        req.Title,
		Content:      req.Content,
		Summary:      summary,
		Category:     req.Category,
		CollectionID: req.CollectionID,
		Status:       status,
		Tags:         marshalStrings(req.Tags),
		Images:       marshalStrings(req.Images),
		WordCount:    wordCount,
		ReadTime:     readTime(wordCount),
	}

	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}
	return toArticleItem(article, true), nil
}

// GetArticle 获取文章详情，只能看自己的
func (s *ArticleService) GetArticle(userID int64, id string) (*dto.ArticleItem, error) {
	article, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	return toArticleItem(article, true), nil
}

// UpdateArticle 更新文章，重新计算字数和阅读时长
func (s *ArticleService) UpdateArticle(userID int64, id string, req *dto.ArticleRequest) (*dto.ArticleItem, error) {
	article, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}

	article.Title = req.Title
	article.Content = req.Content
	article.Category = req.Category
	article.CollectionID = req.CollectionID
	if req.Status == model.ArticleStatusDraft || req.Status == model.ArticleStatusPublished {
		article.Status = req.Status
	}
	article.Summary = req.Summary
	if article.Summary == "" {
		article.Summary = generateSummary(req.Content)
	}
	article.Tags = marshalStrings(req.Tags)
	article.Images = marshalStrings(req.Images)
	article.WordCount = countWords(req.Content)
	article.ReadTime = readTime(article.WordCount)

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}
	return toArticleItem(article, true), nil
}

// DeleteArticle 删除文章
func (s *ArticleService) DeleteArticle(userID int64, id string) error {
	if _, err := s.getOwned(userID, id); err != nil {
		return err
	}
	return s.articleRepo.Delete(id)
}

// BatchDelete 批量删除，逐条校验归属，失败的记入 FailedIDs
func (s *ArticleService) BatchDelete(userID int64, ids []string) (*dto.BatchDeleteResult, error) {
	result := &dto.BatchDeleteResult{FailedIDs: []string{}}
	for _, id := range ids {
		if _, err := s.getOwned(userID, id); err != nil {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		if err := s.articleRepo.Delete(id); err != nil {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.DeletedCount++
	}
	return result, nil
}

// ListArticles 分页查询，列表不返回正文
func (s *ArticleService) ListArticles(userID int64, q *dto.ArticleQuery) ([]*dto.ArticleItem, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 || q.Size > 100 {
		q.Size = 10
	}

	articles, total, err := s.articleRepo.List(userID, q)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.ArticleItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, toArticleItem(a, false))
	}
	return items, total, nil
}

// ListCategories 获取用户的分类列表
func (s *ArticleService) ListCategories(userID int64) ([]string, error) {
	return s.articleRepo.ListCategories(userID)
}

// GetStats 写作统计
func (s *ArticleService) GetStats(userID int64) (*dto.ArticleStats, error) {
	total, err := s.articleRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	published, err := s.articleRepo.CountByStatus(userID, model.ArticleStatusPublished)
	if err != nil {
		return nil, err
	}
	draft, err := s.articleRepo.CountByStatus(userID, model.ArticleStatusDraft)
	if err != nil {
		return nil, err
	}
	words, err := s.articleRepo.SumWordCount(userID)
	if err != nil {
		return nil, err
	}
	return &dto.ArticleStats{
		TotalArticles:     total,
		PublishedArticles: published,
		DraftArticles:     draft,
		TotalWords:        words,
	}, nil
}

func (s *ArticleService) getOwned(userID int64, id string) (*model.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if article.UserID != userID {
		return nil, ErrNoPermission
	}
	return article, nil
}

// countWords 统计字数：中日韩按字算，其余按空白分词算
func countWords(content string) int {
	count := 0
	inWord := false
	for _, r := range content {
		switch {
		case unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r):
			count++
			inWord = false
		case unicode.IsSpace(r) || unicode.IsPunct(r):
			inWord = false
		default:
			if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}

func readTime(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	return minutes
}

// generateSummary 截取正文前200个字符作为摘要
func generateSummary(content string) string {
	text := strings.TrimSpace(content)
	// 去掉常见的 Markdown 标记
	replacer := strings.NewReplacer("#", "", "*", "", "`", "", ">", "")
	text = strings.TrimSpace(replacer.Replace(text))

	const maxLen = 200
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen]) + "..."
}

func marshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalStrings(data string) []string {
	if data == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return []string{}
	}
	return values
}

func toArticleItem(article *model.Article, withContent bool) *dto.ArticleItem {
	item := &dto.ArticleItem{
		ID:           article.ID,
		Title:        article.Title,
		Summary:      article.Summary,
		Category:     article.Category,
		CollectionID: article.CollectionID,
		Status:       article.Status,
		Tags:         unmarshalStrings(article.Tags),
		Images:       unmarshalStrings(article.Images),
		WordCount:    article.WordCount,
		ReadTime:     article.ReadTime,
		CreatedAt:    article.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    article.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if withContent {
		item.Content = article.Content
	}
	return item
}
