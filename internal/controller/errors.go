package controller

import (
	"bookquiz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// handleServiceError 业务错误 → HTTP 状态码的统一映射。
// NotFound 类 404；前置校验类 400；尝试序号冲突 409（带冲突序号）；其余 500
func handleServiceError(ctx *gin.Context, err error) {
	var dup *util.DuplicateAttemptError
	if errors.As(err, &dup) {
		util.Conflict(ctx, "attempt number already recorded, resubmit to retry", gin.H{
			"attemptNumber": dup.AttemptNumber,
			"quizId":        dup.QuizID,
		})
		return
	}

	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrBookNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrAnswerNotFound),
		errors.Is(err, util.ErrPaymentNotFound):
		util.Error(ctx, 404, err.Error())
	case errors.Is(err, util.ErrUnknownQuizType),
		errors.Is(err, util.ErrQuizTypeMismatch),
		errors.Is(err, util.ErrInvalidAnswerType),
		errors.Is(err, util.ErrInvalidOptions),
		errors.Is(err, util.ErrInvalidCorrectIndex),
		errors.Is(err, util.ErrMissingAnswerText),
		errors.Is(err, util.ErrMissingAnswerBool):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(ctx, 409, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
