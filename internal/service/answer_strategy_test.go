package service

import (
	"bookquiz_backend/internal/model"
	"bookquiz_backend/internal/util"
	"bookquiz_backend/pkg/logger"
	"errors"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func mcQuiz(options []string, correct int) *model.Quiz {
	return &model.Quiz{
		Type:               model.QuizTypeMultipleChoice,
		Options:            options,
		CorrectAnswerIndex: intPtr(correct),
	}
}

func subjectiveQuiz(answer string, alternates []string, caseSensitive bool, maxWords int) *model.Quiz {
	return &model.Quiz{
		Type:              model.QuizTypeSubjective,
		CorrectAnswerText: answer,
		AlternateAnswers:  alternates,
		CaseSensitive:     caseSensitive,
		MaxWords:          maxWords,
	}
}

func tfQuiz(answer bool) *model.Quiz {
	return &model.Quiz{
		Type:              model.QuizTypeTrueFalse,
		CorrectAnswerBool: boolPtr(answer),
	}
}

func mcAnswer(idx int) AnswerValue {
	return AnswerValue{Type: model.QuizTypeMultipleChoice, SelectedIndex: intPtr(idx)}
}

func textAnswer(text string) AnswerValue {
	return AnswerValue{Type: model.QuizTypeSubjective, Text: strPtr(text)}
}

func boolAnswer(v bool) AnswerValue {
	return AnswerValue{Type: model.QuizTypeTrueFalse, Bool: boolPtr(v)}
}

func TestMultipleChoiceStrategy_Correct(t *testing.T) {
	s := &MultipleChoiceStrategy{}
	quiz := mcQuiz([]string{"Paris", "Rome", "Berlin"}, 0)

	answer := mcAnswer(0)
	if !s.Validate(quiz, answer) {
		t.Error("index 0 should be structurally valid")
	}
	if !s.IsCorrect(quiz, answer) {
		t.Error("index 0 should be correct")
	}
	if got := s.Score(quiz, answer); got != 1.0 {
		t.Errorf("score = %v, want 1.0", got)
	}
	if got := s.Feedback(quiz, answer, 1.0); got != "Correct!" {
		t.Errorf("feedback = %q, want %q", got, "Correct!")
	}
}

func TestMultipleChoiceStrategy_Incorrect(t *testing.T) {
	s := &MultipleChoiceStrategy{}
	quiz := mcQuiz([]string{"Paris", "Rome", "Berlin"}, 0)

	answer := mcAnswer(1)
	if s.IsCorrect(quiz, answer) {
		t.Error("index 1 should be incorrect")
	}
	if got := s.Score(quiz, answer); got != 0.0 {
		t.Errorf("score = %v, want 0.0", got)
	}

	// 错误反馈需要披露正确选项文本和 1 起始的编号
	feedback := s.Feedback(quiz, answer, 0.0)
	if !strings.Contains(feedback, "Paris") {
		t.Errorf("feedback %q should reveal the correct option text", feedback)
	}
	if !strings.Contains(feedback, "option 1") {
		t.Errorf("feedback %q should use 1-based option numbering", feedback)
	}
}

func TestMultipleChoiceStrategy_ValidateBounds(t *testing.T) {
	s := &MultipleChoiceStrategy{}
	quiz := mcQuiz([]string{"a", "b", "c"}, 1)

	tests := []struct {
		name  string
		index int
		want  bool
	}{
		{"first option", 0, true},
		{"last option", 2, true},
		{"negative", -1, false},
		{"past end", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Validate(quiz, mcAnswer(tt.index)); got != tt.want {
				t.Errorf("Validate(%d) = %v, want %v", tt.index, got, tt.want)
			}
		})
	}
}

func TestSubjectiveStrategy_CaseInsensitiveTrimmed(t *testing.T) {
	s := &SubjectiveStrategy{}
	quiz := subjectiveQuiz("Paris", []string{"paris "}, false, 0)

	// 首尾空白和大小写差异都不影响判定
	for _, submitted := range []string{"  PARIS  ", "paris", "Paris", " pArIs"} {
		if !s.IsCorrect(quiz, textAnswer(submitted)) {
			t.Errorf("submission %q should match after normalization", submitted)
		}
	}

	if s.IsCorrect(quiz, textAnswer("London")) {
		t.Error("wrong answer should not match")
	}
}

func TestSubjectiveStrategy_CaseSensitive(t *testing.T) {
	s := &SubjectiveStrategy{}
	quiz := subjectiveQuiz("Paris", nil, true, 0)

	if !s.IsCorrect(quiz, textAnswer("  Paris ")) {
		t.Error("trimming still applies in case-sensitive mode")
	}
	if s.IsCorrect(quiz, textAnswer("paris")) {
		t.Error("case difference should fail in case-sensitive mode")
	}
}

func TestSubjectiveStrategy_MatchesAnyAlternate(t *testing.T) {
	s := &SubjectiveStrategy{}
	quiz := subjectiveQuiz("장미", []string{"장미꽃", "rose"}, false, 0)

	for _, submitted := range []string{"장미", "장미꽃", "ROSE"} {
		if !s.IsCorrect(quiz, textAnswer(submitted)) {
			t.Errorf("submission %q should match one of the possible answers", submitted)
		}
	}
}

func TestSubjectiveStrategy_ValidateWordCount(t *testing.T) {
	s := &SubjectiveStrategy{}
	quiz := subjectiveQuiz("the capital", nil, false, 2)

	if !s.Validate(quiz, textAnswer("two words")) {
		t.Error("two words within limit should validate")
	}
	// 超出字数上限：validate 失败，但与对错判定互相独立
	over := textAnswer("The capital city")
	if s.Validate(quiz, over) {
		t.Error("three words should exceed maxWords=2")
	}
	if s.IsCorrect(quiz, over) {
		t.Error("word-count overflow does not make a wrong answer right")
	}

	correct := textAnswer("the capital")
	if !s.Validate(quiz, correct) || !s.IsCorrect(quiz, correct) {
		t.Error("in-limit correct answer should pass both signals")
	}
}

func TestSubjectiveStrategy_ValidateBlank(t *testing.T) {
	s := &SubjectiveStrategy{}
	quiz := subjectiveQuiz("Paris", nil, false, 0)

	for _, submitted := range []string{"", "   ", "\t\n"} {
		if s.Validate(quiz, textAnswer(submitted)) {
			t.Errorf("blank submission %q should not validate", submitted)
		}
	}
}

func TestTrueFalseStrategy(t *testing.T) {
	s := &TrueFalseStrategy{}
	quiz := tfQuiz(true)

	if !s.Validate(quiz, boolAnswer(false)) {
		t.Error("true/false has no structural constraint, validate is always true")
	}
	if !s.IsCorrect(quiz, boolAnswer(true)) {
		t.Error("matching bool should be correct")
	}
	if s.IsCorrect(quiz, boolAnswer(false)) {
		t.Error("mismatching bool should be incorrect")
	}
	if got := s.Score(quiz, boolAnswer(false)); got != 0.0 {
		t.Errorf("score = %v, want 0.0", got)
	}
	if !strings.Contains(s.Feedback(quiz, boolAnswer(false), 0.0), "true") {
		t.Error("incorrect feedback should reveal the correct boolean")
	}
}

func TestScoreIsAlwaysBinary(t *testing.T) {
	registry := NewStrategyRegistry()

	cases := []struct {
		quiz   *model.Quiz
		answer AnswerValue
	}{
		{mcQuiz([]string{"a", "b"}, 1), mcAnswer(0)},
		{mcQuiz([]string{"a", "b"}, 1), mcAnswer(1)},
		{subjectiveQuiz("x", nil, false, 0), textAnswer("x")},
		{subjectiveQuiz("x", nil, false, 0), textAnswer("y")},
		{tfQuiz(true), boolAnswer(true)},
		{tfQuiz(true), boolAnswer(false)},
	}

	for _, c := range cases {
		result, err := registry.Evaluate(c.quiz, c.answer)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if result.Score != 0.0 && result.Score != 1.0 {
			t.Errorf("score = %v, must be exactly 0.0 or 1.0", result.Score)
		}
		if (result.Score == 1.0) != result.IsCorrect {
			t.Errorf("score %v inconsistent with isCorrect %v", result.Score, result.IsCorrect)
		}
	}
}

func TestStrategyRegistry_Get(t *testing.T) {
	registry := NewStrategyRegistry()

	for _, quizType := range []model.QuizType{
		model.QuizTypeMultipleChoice,
		model.QuizTypeSubjective,
		model.QuizTypeTrueFalse,
	} {
		s, err := registry.Get(quizType)
		if err != nil {
			t.Fatalf("Get(%s): %v", quizType, err)
		}
		if s.Type() != quizType {
			t.Errorf("strategy type = %s, want %s", s.Type(), quizType)
		}
	}

	if _, err := registry.Get("ESSAY"); !errors.Is(err, util.ErrUnknownQuizType) {
		t.Errorf("unknown kind should return ErrUnknownQuizType, got %v", err)
	}
}
