package service

import (
	"bookquiz_backend/internal/model"
	"fmt"
	"strings"
)

// SubjectiveStrategy 主观题判题：两侧去首尾空白后比较，
// 未开启大小写敏感时双方都转小写，命中任一参考答案即算对
type SubjectiveStrategy struct{}

func (s *SubjectiveStrategy) Type() model.QuizType {
	return model.QuizTypeSubjective
}

// Validate 非空校验 + 字数上限（MaxWords > 0 时生效）。
// 校验失败不直接判错，对错另由 IsCorrect 给出
func (s *SubjectiveStrategy) Validate(quiz *model.Quiz, answer AnswerValue) bool {
	if answer.Text == nil {
		return false
	}
	trimmed := strings.TrimSpace(*answer.Text)
	if trimmed == "" {
		return false
	}
	if quiz.MaxWords > 0 && len(strings.Fields(trimmed)) > quiz.MaxWords {
		return false
	}
	return true
}

func (s *SubjectiveStrategy) IsCorrect(quiz *model.Quiz, answer AnswerValue) bool {
	if answer.Text == nil {
		return false
	}

	submitted := strings.TrimSpace(*answer.Text)
	if !quiz.CaseSensitive {
		submitted = strings.ToLower(submitted)
	}

	for _, candidate := range quiz.PossibleAnswers() {
		expected := strings.TrimSpace(candidate)
		if !quiz.CaseSensitive {
			expected = strings.ToLower(expected)
		}
		if submitted == expected {
			return true
		}
	}
	return false
}

func (s *SubjectiveStrategy) Score(quiz *model.Quiz, answer AnswerValue) float64 {
	if s.IsCorrect(quiz, answer) {
		return 1.0
	}
	return 0.0
}

func (s *SubjectiveStrategy) Feedback(quiz *model.Quiz, answer AnswerValue, score float64) string {
	if score == 1.0 {
		return "Correct!"
	}
	return fmt.Sprintf("Incorrect. The correct answer is %q", quiz.CorrectAnswerText)
}
