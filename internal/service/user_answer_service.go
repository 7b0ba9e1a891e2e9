package service

import (
	"bookquiz_backend/internal/model"
	"bookquiz_backend/internal/util"
	"bookquiz_backend/pkg/logger"
	"bookquiz_backend/pkg/monitoring"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserAnswerStore 答题记录持久化的窄接口，由 repository.UserAnswerRepository 实现。
// Create 必须把唯一索引冲突区分为 gorm.ErrDuplicatedKey
type UserAnswerStore interface {
	Create(answer *model.UserAnswer) error
	Update(answer *model.UserAnswer) error
	FindByID(id uint) (*model.UserAnswer, error)
	FindByUserAndQuiz(userID, quizID uint) ([]model.UserAnswer, error)
	CountByUserAndQuiz(userID, quizID uint) (int64, error)
	CountCorrectByUserAndQuiz(userID, quizID uint) (int64, error)
	FindByUser(userID uint, page, limit int) ([]model.UserAnswer, int64, error)
	CountByUser(userID uint) (int64, error)
	CountCorrectByUser(userID uint) (int64, error)
}

// UserGetter 提交前确认用户存在
type UserGetter interface {
	FindByID(id uint) (*model.User, error)
}

// QuizEvaluator 答题记录对题目子系统的依赖面
type QuizEvaluator interface {
	GetQuiz(id uint) (*model.Quiz, error)
	EvaluateAnswer(quizID uint, answer AnswerValue) (*EvaluationResult, error)
}

type UserAnswerService struct {
	Answers UserAnswerStore
	Users   UserGetter
	Quiz    QuizEvaluator
}

func NewUserAnswerService(answers UserAnswerStore, users UserGetter, quiz QuizEvaluator) *UserAnswerService {
	return &UserAnswerService{
		Answers: answers,
		Users:   users,
		Quiz:    quiz,
	}
}

// UserAnswerRequest 答题提交载荷，type 标签决定读取哪个值字段
type UserAnswerRequest struct {
	QuizID uint           `json:"quizId" binding:"required"`
	Type   model.QuizType `json:"type" binding:"required"`

	SelectedIndex *int    `json:"selectedIndex"`
	AnswerText    *string `json:"answerText"`
	AnswerBool    *bool   `json:"answerBool"`

	// 可选的显式尝试序号，缺省时按已有次数+1 计算
	AttemptNumber *int `json:"attemptNumber"`
}

func (req *UserAnswerRequest) answerValue() AnswerValue {
	return AnswerValue{
		Type:          req.Type,
		SelectedIndex: req.SelectedIndex,
		Text:          req.AnswerText,
		Bool:          req.AnswerBool,
	}
}

// UserAnswerResult 提交后的响应：落库记录 + 判题结果
type UserAnswerResult struct {
	Answer     *model.UserAnswer `json:"answer"`
	Evaluation *EvaluationResult `json:"evaluation"`
}

// CreateUserAnswer 记录一次答题。尝试序号按“已有次数+1”乐观计算，
// 并发提交算出同一序号时由数据库唯一索引裁决：恰有一个写入成功，
// 另一个拿到 DuplicateAttemptError，由调用方决定是否换序号重试
func (s *UserAnswerService) CreateUserAnswer(userID uint, req UserAnswerRequest) (*UserAnswerResult, error) {
	if _, err := s.Users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	quiz, err := s.Quiz.GetQuiz(req.QuizID)
	if err != nil {
		return nil, err
	}

	if req.Type != quiz.Type {
		return nil, util.ErrQuizTypeMismatch
	}

	evaluation, err := s.Quiz.EvaluateAnswer(quiz.ID, req.answerValue())
	if err != nil {
		return nil, err
	}

	attemptNumber := 0
	if req.AttemptNumber != nil {
		attemptNumber = *req.AttemptNumber
	} else {
		count, err := s.Answers.CountByUserAndQuiz(userID, quiz.ID)
		if err != nil {
			return nil, err
		}
		attemptNumber = int(count) + 1
	}

	answer := &model.UserAnswer{
		UserID:        userID,
		QuizID:        quiz.ID,
		AttemptNumber: attemptNumber,
		Type:          quiz.Type,
		SelectedIndex: req.SelectedIndex,
		AnswerText:    req.AnswerText,
		AnswerBool:    req.AnswerBool,
		IsCorrect:     evaluation.IsCorrect,
		SubmittedAt:   time.Now(),
	}

	if err := s.Answers.Create(answer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			monitoring.DuplicateAttemptCounter.Inc()
			return nil, &util.DuplicateAttemptError{
				UserID:        userID,
				QuizID:        quiz.ID,
				AttemptNumber: attemptNumber,
			}
		}
		logger.Log.Error("failed to persist user answer",
			zap.Uint("userId", userID),
			zap.Uint("quizId", quiz.ID),
			zap.Int("attempt", attemptNumber),
			zap.Error(err))
		return nil, err
	}

	monitoring.ObserveAnswer(string(quiz.Type), evaluation.IsCorrect)

	return &UserAnswerResult{Answer: answer, Evaluation: evaluation}, nil
}

// UpdateUserAnswer 窄更正通道：替换已有记录的提交值并重新判题，
// 不产生新的尝试、不改变尝试序号
func (s *UserAnswerService) UpdateUserAnswer(id, userID uint, req UserAnswerRequest) (*UserAnswerResult, error) {
	answer, err := s.Answers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAnswerNotFound
		}
		return nil, err
	}
	if answer.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	if req.Type != answer.Type {
		return nil, util.ErrQuizTypeMismatch
	}

	evaluation, err := s.Quiz.EvaluateAnswer(answer.QuizID, req.answerValue())
	if err != nil {
		return nil, err
	}

	answer.SelectedIndex = req.SelectedIndex
	answer.AnswerText = req.AnswerText
	answer.AnswerBool = req.AnswerBool
	answer.IsCorrect = evaluation.IsCorrect

	if err := s.Answers.Update(answer); err != nil {
		return nil, err
	}
	return &UserAnswerResult{Answer: answer, Evaluation: evaluation}, nil
}

// GetUserAnswersByQuiz 按尝试序号倒序
func (s *UserAnswerService) GetUserAnswersByQuiz(userID, quizID uint) ([]model.UserAnswer, error) {
	return s.Answers.FindByUserAndQuiz(userID, quizID)
}

func (s *UserAnswerService) GetAttemptCount(userID, quizID uint) (int64, error) {
	return s.Answers.CountByUserAndQuiz(userID, quizID)
}

func (s *UserAnswerService) HasCorrectAnswer(userID, quizID uint) (bool, error) {
	count, err := s.Answers.CountCorrectByUserAndQuiz(userID, quizID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UserQuizSummary 单个用户在单道题上的答题概要
type UserQuizSummary struct {
	QuizID        uint `json:"quizId"`
	TotalAttempts int  `json:"totalAttempts"`
	HasCorrect    bool `json:"hasCorrect"`
	// BestAttempt 答对的最小尝试序号（第几次做对）；从未答对时为总尝试次数
	BestAttempt int `json:"bestAttempt"`
}

func (s *UserAnswerService) GetUserQuizSummary(userID, quizID uint) (*UserQuizSummary, error) {
	answers, err := s.Answers.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}

	summary := &UserQuizSummary{
		QuizID:        quizID,
		TotalAttempts: len(answers),
	}

	best := 0
	for _, a := range answers {
		if !a.IsCorrect {
			continue
		}
		if best == 0 || a.AttemptNumber < best {
			best = a.AttemptNumber
		}
	}

	if best > 0 {
		summary.HasCorrect = true
		summary.BestAttempt = best
	} else {
		summary.BestAttempt = summary.TotalAttempts
	}

	return summary, nil
}

// UserAnswerStats 用户全量答题统计
type UserAnswerStats struct {
	TotalAttempts  int64   `json:"totalAttempts"`
	CorrectAnswers int64   `json:"correctAnswers"`
	Accuracy       float64 `json:"accuracy"`
}

// GetUserAnswerStats 正确率 = 答对次数 / 总次数，无记录时为 0
func (s *UserAnswerService) GetUserAnswerStats(userID uint) (*UserAnswerStats, error) {
	total, err := s.Answers.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	correct, err := s.Answers.CountCorrectByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &UserAnswerStats{
		TotalAttempts:  total,
		CorrectAnswers: correct,
	}
	if total > 0 {
		stats.Accuracy = float64(correct) / float64(total)
	}
	return stats, nil
}

func (s *UserAnswerService) ListUserAnswers(userID uint, page, limit int) ([]model.UserAnswer, int64, error) {
	return s.Answers.FindByUser(userID, page, limit)
}
