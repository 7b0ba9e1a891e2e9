package controller

import (
	"bookquiz_backend/internal/service"
	"bookquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Service *service.PaymentService
}

func NewPaymentController(svc *service.PaymentService) *PaymentController {
	return &PaymentController{Service: svc}
}

type PreparePaymentRequest struct {
	BookID      uint   `json:"bookId" binding:"required"`
	ApprovalURL string `json:"approvalUrl" binding:"required"`
	CancelURL   string `json:"cancelUrl" binding:"required"`
	FailURL     string `json:"failUrl" binding:"required"`
}

type ApprovePaymentRequest struct {
	PGToken string `json:"pgToken" binding:"required"`
}

// @Summary 发起支付
// @Tags 支付
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body PreparePaymentRequest true "支付信息"
// @Success 201 {object} util.Response
// @Router /api/payments [post]
func (c *PaymentController) PreparePayment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PreparePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	payment, redirectURL, err := c.Service.PreparePayment(user.UserID, req.BookID, req.ApprovalURL, req.CancelURL, req.FailURL)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"payment":     payment,
		"redirectUrl": redirectURL,
	})
}

// @Summary 确认支付
// @Tags 支付
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param orderId path string true "订单ID"
// @Param body body ApprovePaymentRequest true "网关回传 token"
// @Success 200 {object} util.Response
// @Router /api/payments/{orderId}/approve [post]
func (c *PaymentController) ApprovePayment(ctx *gin.Context) {
	var req ApprovePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	payment, err := c.Service.ApprovePayment(ctx.Param("orderId"), req.PGToken)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, payment)
}

// @Summary 取消支付
// @Tags 支付
// @Produce json
// @Security ApiKeyAuth
// @Param orderId path string true "订单ID"
// @Success 200 {object} util.Response
// @Router /api/payments/{orderId}/cancel [post]
func (c *PaymentController) CancelPayment(ctx *gin.Context) {
	payment, err := c.Service.CancelPayment(ctx.Param("orderId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, payment)
}

// @Summary 我的支付记录
// @Tags 支付
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/payments [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := util.ParsePageLimit(ctx.Query("page"), ctx.Query("limit"))
	payments, total, err := c.Service.ListPayments(user.UserID, page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  payments,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
