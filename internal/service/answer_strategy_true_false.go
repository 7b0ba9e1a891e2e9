package service

import (
	"bookquiz_backend/internal/model"
	"fmt"
)

// TrueFalseStrategy 判断题判题：严格布尔相等
type TrueFalseStrategy struct{}

func (s *TrueFalseStrategy) Type() model.QuizType {
	return model.QuizTypeTrueFalse
}

// Validate 判断题没有结构性约束，恒为 true
func (s *TrueFalseStrategy) Validate(quiz *model.Quiz, answer AnswerValue) bool {
	return true
}

func (s *TrueFalseStrategy) IsCorrect(quiz *model.Quiz, answer AnswerValue) bool {
	if answer.Bool == nil || quiz.CorrectAnswerBool == nil {
		return false
	}
	return *answer.Bool == *quiz.CorrectAnswerBool
}

func (s *TrueFalseStrategy) Score(quiz *model.Quiz, answer AnswerValue) float64 {
	if s.IsCorrect(quiz, answer) {
		return 1.0
	}
	return 0.0
}

func (s *TrueFalseStrategy) Feedback(quiz *model.Quiz, answer AnswerValue, score float64) string {
	if score == 1.0 {
		return "Correct!"
	}
	if quiz.CorrectAnswerBool == nil {
		return "Incorrect."
	}
	return fmt.Sprintf("Incorrect. The correct answer is %t", *quiz.CorrectAnswerBool)
}
