package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chengzhang/writing_go_server/internal/api/middleware"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/pkg/response"
	"github.com/chengzhang/writing_go_server/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// UploadImage 上传图片（multipart 表单）
// POST /api/v1/upload/image
func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ParamError(c, "请选择要上传的文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	result, err := h.uploadService.UploadImage(userID, fileHeader.Filename, data, c.PostForm("article_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "上传成功", result)
}

// UploadBase64 上传 base64 图片（编辑器粘贴）
// POST /api/v1/upload/image/base64
func (h *UploadHandler) UploadBase64(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.Base64UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.uploadService.UploadBase64(userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "上传成功", result)
}

// ListImages 图片列表
// GET /api/v1/images?page=1&size=20
func (h *UploadHandler) ListImages(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	images, total, err := h.uploadService.ListImages(userID, page, size)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, size, images)
}

// DeleteImage 删除图片
// DELETE /api/v1/images/:id
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.uploadService.DeleteImage(userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

func (h *UploadHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrInvalidFileType):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrInvalidBase64):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrImageNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
