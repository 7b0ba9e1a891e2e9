package service

import (
	"bookquiz_backend/internal/model"
	"fmt"
)

// MultipleChoiceStrategy 选择题判题：序号精确相等
type MultipleChoiceStrategy struct{}

func (s *MultipleChoiceStrategy) Type() model.QuizType {
	return model.QuizTypeMultipleChoice
}

func (s *MultipleChoiceStrategy) Validate(quiz *model.Quiz, answer AnswerValue) bool {
	if answer.SelectedIndex == nil {
		return false
	}
	idx := *answer.SelectedIndex
	return idx >= 0 && idx < len(quiz.Options)
}

func (s *MultipleChoiceStrategy) IsCorrect(quiz *model.Quiz, answer AnswerValue) bool {
	if answer.SelectedIndex == nil || quiz.CorrectAnswerIndex == nil {
		return false
	}
	return *answer.SelectedIndex == *quiz.CorrectAnswerIndex
}

func (s *MultipleChoiceStrategy) Score(quiz *model.Quiz, answer AnswerValue) float64 {
	if s.IsCorrect(quiz, answer) {
		return 1.0
	}
	return 0.0
}

func (s *MultipleChoiceStrategy) Feedback(quiz *model.Quiz, answer AnswerValue, score float64) string {
	if score == 1.0 {
		return "Correct!"
	}
	if quiz.CorrectAnswerIndex == nil || *quiz.CorrectAnswerIndex >= len(quiz.Options) {
		return "Incorrect."
	}
	// 对用户展示 1 起始的选项编号
	idx := *quiz.CorrectAnswerIndex
	return fmt.Sprintf("Incorrect. The correct answer is option %d: %s", idx+1, quiz.Options[idx])
}
