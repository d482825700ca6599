package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/chengzhang/writing_go_server/internal/api/middleware"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/pkg/response"
	"github.com/chengzhang/writing_go_server/internal/service"
)

type ArticleHandler struct {
	articleService *service.ArticleService
}

func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
	}
}

// Create 创建文章
// POST /api/v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.articleService.CreateArticle(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "创建成功", item)
}

// Get 文章详情
// GET /api/v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	item, err := h.articleService.GetArticle(userID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, item)
}

// Update 更新文章
// PUT /api/v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.articleService.UpdateArticle(userID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "更新成功", item)
}

// Delete 删除文章
// DELETE /api/v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.articleService.DeleteArticle(userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// BatchDelete 批量删除文章
// POST /api/v1/articles/batch-delete
func (h *ArticleHandler) BatchDelete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.articleService.BatchDelete(userID, req.IDs)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// List 文章列表
// GET /api/v1/articles?keyword=&category=&status=&page=1&size=10
func (h *ArticleHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var q dto.ArticleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	items, total, err := h.articleService.ListArticles(userID, &q)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, q.Page, q.Size, items)
}

// ListCategories 分类列表
// GET /api/v1/articles/categories
func (h *ArticleHandler) ListCategories(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	categories, err := h.articleService.ListCategories(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, categories)
}

// GetStats 写作统计
// GET /api/v1/articles/stats
func (h *ArticleHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	stats, err := h.articleService.GetStats(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, stats)
}

func (h *ArticleHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrArticleNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
