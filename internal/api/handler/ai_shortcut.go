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

type AIShortcutHandler struct {
	shortcutService *service.AIShortcutService
}

func NewAIShortcutHandler(shortcutService *service.AIShortcutService) *AIShortcutHandler {
	return &AIShortcutHandler{
		shortcutService: shortcutService,
	}
}

// ListActive 启用中的快捷指令，新用户自动初始化内置指令
// GET /api/v1/ai-shortcuts
func (h *AIShortcutHandler) ListActive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	shortcuts, err := h.shortcutService.ListActive(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, shortcuts)
}

// Search 按名称搜索快捷指令
// GET /api/v1/ai-shortcuts/search?name=xxx
func (h *AIShortcutHandler) Search(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	shortcuts, err := h.shortcutService.Search(userID, c.Query("name"))
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, shortcuts)
}

// Get 快捷指令详情
// GET /api/v1/ai-shortcuts/:id
func (h *AIShortcutHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的指令ID")
		return
	}

	shortcut, err := h.shortcutService.GetShortcut(userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, shortcut)
}

// Create 新建快捷指令
// POST /api/v1/ai-shortcuts
func (h *AIShortcutHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.AIShortcutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	shortcut, err := h.shortcutService.CreateShortcut(userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", shortcut)
}

// Update 更新快捷指令
// PUT /api/v1/ai-shortcuts/:id
func (h *AIShortcutHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的指令ID")
		return
	}

	var req dto.AIShortcutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	shortcut, err := h.shortcutService.UpdateShortcut(userID, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "更新成功", shortcut)
}

// Delete 删除快捷指令
// DELETE /api/v1/ai-shortcuts/:id
func (h *AIShortcutHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的指令ID")
		return
	}

	if err := h.shortcutService.DeleteShortcut(userID, id); err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// BatchDelete 批量删除快捷指令
// POST /api/v1/ai-shortcuts/batch-delete
func (h *AIShortcutHandler) BatchDelete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.ShortcutBatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	deleted, err := h.shortcutService.BatchDelete(userID, req.IDs)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"deleted_count": deleted})
}

// UpdateSort 调整指令排序
// PUT /api/v1/ai-shortcuts/:id/sort?sort_order=3
func (h *AIShortcutHandler) UpdateSort(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的指令ID")
		return
	}

	sortOrder, err := strconv.Atoi(c.Query("sort_order"))
	if err != nil || sortOrder < 0 {
		response.ParamError(c, "无效的排序值")
		return
	}

	shortcut, err := h.shortcutService.UpdateSortOrder(userID, id, sortOrder)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "排序更新成功", shortcut)
}

// Toggle 切换指令启用状态
// PUT /api/v1/ai-shortcuts/:id/toggle
func (h *AIShortcutHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的指令ID")
		return
	}

	shortcut, err := h.shortcutService.ToggleActive(userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "状态已更新", shortcut)
}

func (h *AIShortcutHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShortcutNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrShortcutNameExists):
		response.DuplicateError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
