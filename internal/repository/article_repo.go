package repository

import (
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(article *model.Article) error {
	return r.db.Create(article).Error
}

func (r *ArticleRepository) GetByID(id string) (*model.Article, error) {
	var article model.Article
	err := r.db.Where("id = ?", id).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepository) Update(article *model.Article) error {
	return r.db.Save(article).Error
}

func (r *ArticleRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Article{}).Error
}

func (r *ArticleRepository) ExistsByID(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Article{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List 按条件分页查询
func (r *ArticleRepository) List(userID int64, q *dto.ArticleQuery) ([]*model.Article, int64, error) {
	query := r.db.Model(&model.Article{}).Where("user_id = ?", userID)

	if q.Keyword != "" {
		keyword := "%" + q.Keyword + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", keyword, keyword)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.CollectionID != "" {
		query = query.Where("collection_id = ?", q.CollectionID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 排序字段白名单，避免拼接注入
	sortBy := "updated_at"
	switch q.SortBy {
	case "created_at", "updated_at", "title", "word_count":
		sortBy = q.SortBy
	}
	order := sortBy + " DESC"
	if q.SortOrder == "asc" {
		order = sortBy + " ASC"
	}

	var articles []*model.Article
	offset := (q.Page - 1) * q.Size
	err := query.Order(order).Offset(offset).Limit(q.Size).Find(&articles).Error
	return articles, total, err
}

// ListCategories 返回用户用过的全部分类
func (r *ArticleRepository) ListCategories(userID int64) ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Article{}).
		Where("user_id = ? AND category != ''", userID).
		Distinct().Pluck("category", &categories).Error
	return categories, err
}

func (r *ArticleRepository) CountByUserID(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Article{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *ArticleRepository) CountByStatus(userID int64, status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Article{}).Where("user_id = ? AND status = ?", userID, status).Count(&count).Error
	return count, err
}

// CountByCollectionID 统计合集下的文章数
func (r *ArticleRepository) CountByCollectionID(collectionID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Article{}).Where("collection_id = ?", collectionID).Count(&count).Error
	return count, err
}

// SumWordCount 统计用户全部文章的总字数
func (r *ArticleRepository) SumWordCount(userID int64) (int64, error) {
	var total *int64
	err := r.db.Model(&model.Article{}).Where("user_id = ?", userID).
		Select("SUM(word_count)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
