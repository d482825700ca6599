package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chengzhang/writing_go_server/internal/api/middleware"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/pkg/response"
	"github.com/chengzhang/writing_go_server/internal/service"
)

type CollectionHandler struct {
	collectionService *service.CollectionService
}

func NewCollectionHandler(collectionService *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
	}
}

// Create 创建合集
// POST /api/v1/collections
func (h *CollectionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.collectionService.CreateCollection(userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "合集创建成功", item)
}

// List 合集列表
// GET /api/v1/collections?enabled=true
func (h *CollectionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	enabledOnly, _ := strconv.ParseBool(c.Query("enabled"))
	items, err := h.collectionService.ListCollections(userID, enabledOnly)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// GetStats 启用中的合集及文章数
// GET /api/v1/collections/stats
func (h *CollectionHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.collectionService.GetCollectionStats(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// CheckName 检查合集名称是否可用
// GET /api/v1/collections/check-name?name=xxx&exclude_id=yyy
func (h *CollectionHandler) CheckName(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	name := c.Query("name")
	if name == "" {
		response.ParamError(c, "合集名称不能为空")
		return
	}

	exists, err := h.collectionService.CheckName(userID, name, c.Query("exclude_id"))
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"exists": exists})
}

// Get 合集详情
// GET /api/v1/collections/:id
func (h *CollectionHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	item, err := h.collectionService.GetCollection(userID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, item)
}

// Update 更新合集
// PUT /api/v1/collections/:id
func (h *CollectionHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.collectionService.UpdateCollection(userID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "合集更新成功", item)
}

// Delete 删除合集
// DELETE /api/v1/collections/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.collectionService.DeleteCollection(userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "合集删除成功", nil)
}

// ToggleStatus 启用/禁用合集
// PATCH /api/v1/collections/:id/status?enabled=true
func (h *CollectionHandler) ToggleStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	enabled, err := strconv.ParseBool(c.Query("enabled"))
	if err != nil {
		response.ParamError(c, "无效的启用状态")
		return
	}

	item, err := h.collectionService.ToggleStatus(userID, c.Param("id"), enabled)
	if err != nil {
		h.handleError(c, err)
		return
	}

	message := "合集禁用成功"
	if enabled {
		message = "合集启用成功"
	}
	response.SuccessWithMessage(c, message, item)
}

// UpdateSort 更新合集排序
// PATCH /api/v1/collections/:id/sort?sort_order=3
func (h *CollectionHandler) UpdateSort(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	sortOrder, err := strconv.Atoi(c.Query("sort_order"))
	if err != nil || sortOrder < 0 {
		response.ParamError(c, "无效的排序值")
		return
	}

	item, err := h.collectionService.UpdateSortOrder(userID, c.Param("id"), sortOrder)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "合集排序更新成功", item)
}

func (h *CollectionHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCollectionNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrCollectionNameExists):
		response.DuplicateError(c, err.Error())
	case errors.Is(err, service.ErrCollectionInUse):
		response.DuplicateError(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
