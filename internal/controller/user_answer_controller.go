package controller

import (
	"bookquiz_backend/internal/service"
	"bookquiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserAnswerController struct {
	Service *service.UserAnswerService
}

func NewUserAnswerController(svc *service.UserAnswerService) *UserAnswerController {
	return &UserAnswerController{Service: svc}
}

// @Summary 提交答案
// @Description 记录一次答题尝试；尝试序号冲突时返回 409 与冲突序号
// @Tags 答题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.UserAnswerRequest true "提交内容"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/answers [post]
func (c *UserAnswerController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UserAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.CreateUserAnswer(user.UserID, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary 更正答案
// @Description 窄更正通道：替换提交值并重新判题，不产生新的尝试
// @Tags 答题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "答题记录ID"
// @Param body body service.UserAnswerRequest true "更正内容"
// @Success 200 {object} util.Response
// @Router /api/answers/{id} [put]
func (c *UserAnswerController) UpdateAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.UserAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.UpdateUserAnswer(uint(id), user.UserID, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 获取某题的答题记录（按尝试序号倒序）
// @Tags 答题
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/answers [get]
func (c *UserAnswerController) GetAnswersByQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	if quizID == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	answers, err := c.Service.GetUserAnswersByQuiz(user.UserID, quizID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, answers)
}

// @Summary 获取某题的答题概要
// @Description bestAttempt 为答对的最小尝试序号；从未答对时为总尝试次数
// @Tags 答题
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/answers/summary [get]
func (c *UserAnswerController) GetQuizSummary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	if quizID == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	summary, err := c.Service.GetUserQuizSummary(user.UserID, quizID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary 我的答题统计
// @Tags 答题
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/answers/stats [get]
func (c *UserAnswerController) GetStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.Service.GetUserAnswerStats(user.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 我的答题记录列表
// @Tags 答题
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/answers [get]
func (c *UserAnswerController) ListAnswers(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := util.ParsePageLimit(ctx.Query("page"), ctx.Query("limit"))
	answers, total, err := c.Service.ListUserAnswers(user.UserID, page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  answers,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
