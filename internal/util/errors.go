package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrEmailRegistered = errors.New("该邮箱已被注册")
	ErrBookNotFound    = errors.New("book not found")
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrAnswerNotFound  = errors.New("answer not found")
	ErrPaymentNotFound = errors.New("payment not found")

	ErrUnknownQuizType   = errors.New("unknown quiz type")
	ErrQuizTypeMismatch  = errors.New("quiz type does not match")
	ErrInvalidAnswerType = errors.New("submitted answer does not match quiz type")

	ErrInvalidOptions      = errors.New("multiple choice quiz requires at least two options")
	ErrInvalidCorrectIndex = errors.New("correct answer index out of option bounds")
	ErrMissingAnswerText   = errors.New("subjective quiz requires a correct answer text")
	ErrMissingAnswerBool   = errors.New("true/false quiz requires a boolean answer")

	ErrPermissionDenied = errors.New("permission denied")
)

// DuplicateAttemptError 并发或重复提交撞上了已存在的
// (user, quiz, attemptNumber)，携带冲突的尝试序号供调用方重试
type DuplicateAttemptError struct {
	UserID        uint
	QuizID        uint
	AttemptNumber int
}

func (e *DuplicateAttemptError) Error() string {
	return fmt.Sprintf("attempt %d already recorded for user %d on quiz %d", e.AttemptNumber, e.UserID, e.QuizID)
}
