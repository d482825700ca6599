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

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// ListPlans 套餐列表
// GET /api/v1/plans
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	response.Success(c, h.subscriptionService.ListPlans())
}

// Create 购买会员
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	subscription, err := h.subscriptionService.CreateSubscription(userID, req.PlanType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlan):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrAlreadyMember):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "购买成功", subscription)
}

// Cancel 取消订阅
// POST /api/v1/subscriptions/:id/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的订阅ID")
		return
	}

	subscription, err := h.subscriptionService.CancelSubscription(userID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubscriptionNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrSubscriptionNotActive):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "取消成功", subscription)
}

// GetActive 查询当前有效订阅
// GET /api/v1/subscriptions/active
func (h *SubscriptionHandler) GetActive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	subscription, err := h.subscriptionService.GetActiveSubscription(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, subscription)
}

// List 查询全部订阅记录
// GET /api/v1/subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	subscriptions, err := h.subscriptionService.GetUserSubscriptions(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, subscriptions)
}

// GetMembership 会员状态摘要
// GET /api/v1/subscriptions/membership
func (h *SubscriptionHandler) GetMembership(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.subscriptionService.GetMembershipInfo(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}
