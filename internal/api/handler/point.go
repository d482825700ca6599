package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chengzhang/writing_go_server/internal/api/middleware"
	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/pkg/response"
	"github.com/chengzhang/writing_go_server/internal/service"
)

type PointHandler struct {
	pointService *service.PointService
}

func NewPointHandler(pointService *service.PointService) *PointHandler {
	return &PointHandler{
		pointService: pointService,
	}
}

// GetBalance 查询积分余额
// GET /api/v1/points/balance
func (h *PointHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	account, err := h.pointService.GetAccount(userID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			// 未建户按零余额返回
			response.Success(c, &dto.BalanceInfo{Level: 1})
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, &dto.BalanceInfo{
		Balance:     account.Balance,
		TotalEarned: account.TotalEarned,
		TotalSpent:  account.TotalSpent,
		Level:       account.Level,
	})
}

// GetTransactions 查询积分流水
// GET /api/v1/points/transactions?page=1&size=20
func (h *PointHandler) GetTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	transactions, total, err := h.pointService.GetTransactions(userID, page, size)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, size, transactions)
}

// Spend 消费积分
// POST /api/v1/points/spend
func (h *PointHandler) Spend(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	source := req.Service
	if source == "" {
		source = model.SourceServiceConsume
	}

	newBalance, err := h.pointService.SpendPoints(userID, req.Points, source, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrAccountNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInsufficientBalance):
			response.BalanceError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, &dto.SpendResult{
		NewBalance:  newBalance,
		PointsSpent: req.Points,
	})
}

// Checkin 每日签到
// POST /api/v1/points/checkin
func (h *PointHandler) Checkin(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	result, err := h.pointService.DailyCheckin(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "签到成功", result)
}
