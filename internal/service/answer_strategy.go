package service

import (
	"bookquiz_backend/internal/model"
	"bookquiz_backend/internal/util"
)

// AnswerValue 带题型标签的提交值，只有与 Type 匹配的字段有值。
// 先对标签和形状做显式校验，再进入比对，避免运行时断言失败。
type AnswerValue struct {
	Type          model.QuizType
	SelectedIndex *int
	Text          *string
	Bool          *bool
}

// MatchesType 提交值的形状是否与题型一致
func (v AnswerValue) MatchesType(t model.QuizType) bool {
	if v.Type != t {
		return false
	}
	switch t {
	case model.QuizTypeMultipleChoice:
		return v.SelectedIndex != nil
	case model.QuizTypeSubjective:
		return v.Text != nil
	case model.QuizTypeTrueFalse:
		return v.Bool != nil
	}
	return false
}

// EvaluationResult 一次判题的完整结果。
// Valid 与 IsCorrect 互相独立：主观题超出字数上限时 Valid=false，
// 但不影响 IsCorrect 的判定，两个信号都交给调用方
type EvaluationResult struct {
	Valid     bool    `json:"valid"`
	IsCorrect bool    `json:"isCorrect"`
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback"`
}

// AnswerStrategy 每种题型一套判题算法
type AnswerStrategy interface {
	Type() model.QuizType
	// Validate 结构性校验（选项序号在界内、文本非空等），与对错无关
	Validate(quiz *model.Quiz, answer AnswerValue) bool
	// IsCorrect 判定对错
	IsCorrect(quiz *model.Quiz, answer AnswerValue) bool
	// Score 二元计分，只会是 1.0 或 0.0
	Score(quiz *model.Quiz, answer AnswerValue) float64
	// Feedback 生成反馈文本，仅答错时披露正确答案
	Feedback(quiz *model.Quiz, answer AnswerValue, score float64) string
}

// StrategyRegistry 题型 → 判题策略的不可变映射，启动时构造一次，
// 之后只读，可被任意并发查询
type StrategyRegistry struct {
	strategies map[model.QuizType]AnswerStrategy
}

func NewStrategyRegistry() *StrategyRegistry {
	r := &StrategyRegistry{
		strategies: make(map[model.QuizType]AnswerStrategy, 3),
	}
	for _, s := range []AnswerStrategy{
		&MultipleChoiceStrategy{},
		&SubjectiveStrategy{},
		&TrueFalseStrategy{},
	} {
		r.strategies[s.Type()] = s
	}
	return r
}

func (r *StrategyRegistry) Get(t model.QuizType) (AnswerStrategy, error) {
	s, ok := r.strategies[t]
	if !ok {
		return nil, util.ErrUnknownQuizType
	}
	return s, nil
}

// Evaluate 用对应题型的策略跑一遍完整判题
func (r *StrategyRegistry) Evaluate(quiz *model.Quiz, answer AnswerValue) (*EvaluationResult, error) {
	s, err := r.Get(quiz.Type)
	if err != nil {
		return nil, err
	}

	score := s.Score(quiz, answer)
	return &EvaluationResult{
		Valid:     s.Validate(quiz, answer),
		IsCorrect: s.IsCorrect(quiz, answer),
		Score:     score,
		Feedback:  s.Feedback(quiz, answer, score),
	}, nil
}
