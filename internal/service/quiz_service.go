package service

import (
	"bookquiz_backend/internal/model"
	"bookquiz_backend/internal/util"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// QuizStore 题目持久化的窄接口，由 repository.QuizRepository 实现
type QuizStore interface {
	Create(quiz *model.Quiz) error
	Update(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	DeleteByID(id uint) error
	FindByBookID(bookID uint) ([]model.Quiz, error)
	Search(quizType model.QuizType, title string, page, limit int) ([]model.Quiz, int64, error)
}

// BookChecker 创建题目时确认所属图书存在
type BookChecker interface {
	ExistsByID(id uint) (bool, error)
}

type QuizService struct {
	Quizzes  QuizStore
	Books    BookChecker
	Registry *StrategyRegistry
}

func NewQuizService(quizzes QuizStore, books BookChecker, registry *StrategyRegistry) *QuizService {
	return &QuizService{
		Quizzes:  quizzes,
		Books:    books,
		Registry: registry,
	}
}

// QuizRequest 创建/更新题目的载荷，type 字段选择题型，
// 只允许携带该题型的字段
type QuizRequest struct {
	BookID      uint           `json:"bookId"`
	Type        model.QuizType `json:"type" binding:"required"`
	Title       string         `json:"title" binding:"required"`
	Explanation string         `json:"explanation"`
	Hint        string         `json:"hint"`

	// 选择题
	Options            []string `json:"options"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex"`

	// 主观题
	CorrectAnswerText string   `json:"correctAnswerText"`
	AlternateAnswers  []string `json:"alternateAnswers"`
	CaseSensitive     bool     `json:"caseSensitive"`
	MaxWords          int      `json:"maxWords"`

	// 判断题
	CorrectAnswerBool *bool `json:"correctAnswerBool"`
}

// validatePayload 持久化之前的结构性前置校验
func (s *QuizService) validatePayload(req *QuizRequest) error {
	if !req.Type.IsValid() {
		return util.ErrUnknownQuizType
	}

	switch req.Type {
	case model.QuizTypeMultipleChoice:
		if len(req.Options) < 2 {
			return util.ErrInvalidOptions
		}
		if req.CorrectAnswerIndex == nil ||
			*req.CorrectAnswerIndex < 0 ||
			*req.CorrectAnswerIndex >= len(req.Options) {
			return util.ErrInvalidCorrectIndex
		}
	case model.QuizTypeSubjective:
		if strings.TrimSpace(req.CorrectAnswerText) == "" {
			return util.ErrMissingAnswerText
		}
	case model.QuizTypeTrueFalse:
		if req.CorrectAnswerBool == nil {
			return util.ErrMissingAnswerBool
		}
	}
	return nil
}

// applyPayload 只写入当前题型的字段，其余列保持零值
func applyPayload(quiz *model.Quiz, req *QuizRequest) {
	quiz.Title = req.Title
	quiz.Explanation = req.Explanation
	quiz.Hint = req.Hint

	switch req.Type {
	case model.QuizTypeMultipleChoice:
		quiz.Options = req.Options
		quiz.CorrectAnswerIndex = req.CorrectAnswerIndex
	case model.QuizTypeSubjective:
		quiz.CorrectAnswerText = req.CorrectAnswerText
		quiz.AlternateAnswers = req.AlternateAnswers
		quiz.CaseSensitive = req.CaseSensitive
		quiz.MaxWords = req.MaxWords
	case model.QuizTypeTrueFalse:
		quiz.CorrectAnswerBool = req.CorrectAnswerBool
	}
}

func (s *QuizService) CreateQuiz(req QuizRequest) (*model.Quiz, error) {
	if err := s.validatePayload(&req); err != nil {
		return nil, err
	}

	exists, err := s.Books.ExistsByID(req.BookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrBookNotFound
	}

	quiz := &model.Quiz{
		BookID: req.BookID,
		Type:   req.Type,
	}
	applyPayload(quiz, &req)

	if err := s.Quizzes.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// UpdateQuiz 题型不可变更：载荷的 type 与存量不一致时拒绝，记录保持原样
func (s *QuizService) UpdateQuiz(id uint, req QuizRequest) (*model.Quiz, error) {
	quiz, err := s.GetQuiz(id)
	if err != nil {
		return nil, err
	}

	if req.Type != quiz.Type {
		return nil, util.ErrQuizTypeMismatch
	}
	if err := s.validatePayload(&req); err != nil {
		return nil, err
	}

	// 所属图书创建后不可变，忽略载荷中的 bookId
	applyPayload(quiz, &req)

	if err := s.Quizzes.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(id uint) error {
	if _, err := s.GetQuiz(id); err != nil {
		return err
	}
	return s.Quizzes.DeleteByID(id)
}

func (s *QuizService) GetQuiz(id uint) (*model.Quiz, error) {
	quiz, err := s.Quizzes.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) GetQuizzesByBook(bookID uint) ([]model.QuizResponse, error) {
	quizzes, err := s.Quizzes.FindByBookID(bookID)
	if err != nil {
		return nil, err
	}
	res := make([]model.QuizResponse, len(quizzes))
	for i := range quizzes {
		res[i] = quizzes[i].Response()
	}
	return res, nil
}

func (s *QuizService) SearchQuizzes(quizType model.QuizType, title string, page, limit int) ([]model.QuizResponse, int64, error) {
	if quizType != "" && !quizType.IsValid() {
		return nil, 0, util.ErrUnknownQuizType
	}

	quizzes, total, err := s.Quizzes.Search(quizType, title, page, limit)
	if err != nil {
		return nil, 0, err
	}
	res := make([]model.QuizResponse, len(quizzes))
	for i := range quizzes {
		res[i] = quizzes[i].Response()
	}
	return res, total, nil
}

// EvaluateAnswer 只判题不落库：加载题目，校验提交值形状，
// 经策略注册表分发到对应算法
func (s *QuizService) EvaluateAnswer(quizID uint, answer AnswerValue) (*EvaluationResult, error) {
	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	if !answer.MatchesType(quiz.Type) {
		return nil, util.ErrInvalidAnswerType
	}

	return s.Registry.Evaluate(quiz, answer)
}
