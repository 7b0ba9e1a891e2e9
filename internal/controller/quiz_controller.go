package controller

import (
	"bookquiz_backend/internal/model"
	"bookquiz_backend/internal/service"
	"bookquiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary 创建题目
// @Tags 题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizRequest true "题目信息，type 决定题型"
// @Success 201 {object} util.Response
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.CreateQuiz(req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, quiz.Response())
}

// @Summary 更新题目（题型不可变更）
// @Tags 题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param body body service.QuizRequest true "题目信息"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.UpdateQuiz(uint(id), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz.Response())
}

// @Summary 删除题目
// @Tags 题目
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.DeleteQuiz(uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 获取题目详情
// @Tags 题目
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	quiz, err := c.Service.GetQuiz(uint(id))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz.Response())
}

// @Summary 按图书获取题目列表
// @Tags 题目
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "图书ID"
// @Success 200 {object} util.Response
// @Router /api/books/{id}/quizzes [get]
func (c *QuizController) GetQuizzesByBook(ctx *gin.Context) {
	bookID := util.MustParseUint(ctx.Param("id"))
	if bookID == 0 {
		util.BadRequest(ctx, "invalid book id")
		return
	}

	quizzes, err := c.Service.GetQuizzesByBook(bookID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// @Summary 题目搜索（按题型/标题过滤）
// @Tags 题目
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "题型 MULTIPLE_CHOICE/SUBJECTIVE/TRUE_FALSE"
// @Param title query string false "标题关键字"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/quizzes [get]
func (c *QuizController) SearchQuizzes(ctx *gin.Context) {
	quizType := model.QuizType(ctx.Query("type"))
	title := ctx.Query("title")
	page, limit := util.ParsePageLimit(ctx.Query("page"), ctx.Query("limit"))

	quizzes, total, err := c.Service.SearchQuizzes(quizType, title, page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  quizzes,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 判题（只评估，不记录）
// @Tags 题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param body body service.UserAnswerRequest true "提交值，type 必须与题目一致"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/evaluate [post]
func (c *QuizController) EvaluateAnswer(ctx *gin.Context) {
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

	result, err := c.Service.EvaluateAnswer(uint(id), service.AnswerValue{
		Type:          req.Type,
		SelectedIndex: req.SelectedIndex,
		Text:          req.AnswerText,
		Bool:          req.AnswerBool,
	})
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
