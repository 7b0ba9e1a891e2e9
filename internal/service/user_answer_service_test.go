package service

import (
	"bookquiz_backend/internal/model"
	"bookquiz_backend/internal/util"
	"errors"
	"sort"
	"sync"
	"testing"

	"gorm.io/gorm"
)

// fakeAnswerStore 内存实现，唯一索引 (userId, quizId, attemptNumber)
// 冲突时返回 gorm.ErrDuplicatedKey，与数据库行为一致。
// countGate 非空时 CountByUserAndQuiz 会等所有并发方都读完计数再返回，
// 用来确定性地复现两次提交算出同一序号的竞争
type fakeAnswerStore struct {
	mu        sync.Mutex
	answers   []model.UserAnswer
	nextID    uint
	countGate *sync.WaitGroup
}

func newFakeAnswerStore() *fakeAnswerStore {
	return &fakeAnswerStore{nextID: 1}
}

func (f *fakeAnswerStore) Create(answer *model.UserAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.answers {
		if a.UserID == answer.UserID && a.QuizID == answer.QuizID && a.AttemptNumber == answer.AttemptNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	answer.ID = f.nextID
	f.nextID++
	f.answers = append(f.answers, *answer)
	return nil
}

func (f *fakeAnswerStore) Update(answer *model.UserAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, a := range f.answers {
		if a.ID == answer.ID {
			f.answers[i] = *answer
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAnswerStore) FindByID(id uint) (*model.UserAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.answers {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAnswerStore) FindByUserAndQuiz(userID, quizID uint) ([]model.UserAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.UserAnswer
	for _, a := range f.answers {
		if a.UserID == userID && a.QuizID == quizID {
			res = append(res, a)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].AttemptNumber > res[j].AttemptNumber })
	return res, nil
}

func (f *fakeAnswerStore) CountByUserAndQuiz(userID, quizID uint) (int64, error) {
	f.mu.Lock()
	var count int64
	for _, a := range f.answers {
		if a.UserID == userID && a.QuizID == quizID {
			count++
		}
	}
	gate := f.countGate
	f.mu.Unlock()

	if gate != nil {
		gate.Done()
		gate.Wait()
	}
	return count, nil
}

func (f *fakeAnswerStore) CountCorrectByUserAndQuiz(userID, quizID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, a := range f.answers {
		if a.UserID == userID && a.QuizID == quizID && a.IsCorrect {
			count++
		}
	}
	return count, nil
}

func (f *fakeAnswerStore) FindByUser(userID uint, page, limit int) ([]model.UserAnswer, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.UserAnswer
	for _, a := range f.answers {
		if a.UserID == userID {
			res = append(res, a)
		}
	}
	return res, int64(len(res)), nil
}

func (f *fakeAnswerStore) CountByUser(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, a := range f.answers {
		if a.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAnswerStore) CountCorrectByUser(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, a := range f.answers {
		if a.UserID == userID && a.IsCorrect {
			count++
		}
	}
	return count, nil
}

type fakeUserGetter struct {
	ids map[uint]bool
}

func (f *fakeUserGetter) FindByID(id uint) (*model.User, error) {
	if !f.ids[id] {
		return nil, gorm.ErrRecordNotFound
	}
	user := &model.User{Nickname: "tester", Role: model.Reader}
	user.ID = id
	return user, nil
}

// newAnswerService 搭一套带一道选择题（正确答案序号 0）的完整服务
func newAnswerService(t *testing.T) (*UserAnswerService, *fakeAnswerStore, uint) {
	t.Helper()

	quizSvc, _ := newQuizService(1)
	quiz, err := quizSvc.CreateQuiz(mcRequest(1))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	store := newFakeAnswerStore()
	users := &fakeUserGetter{ids: map[uint]bool{1: true}}
	return NewUserAnswerService(store, users, quizSvc), store, quiz.ID
}

func mcSubmission(quizID uint, idx int) UserAnswerRequest {
	return UserAnswerRequest{
		QuizID:        quizID,
		Type:          model.QuizTypeMultipleChoice,
		SelectedIndex: intPtr(idx),
	}
}

func TestCreateUserAnswer_AttemptSequencing(t *testing.T) {
	svc, _, quizID := newAnswerService(t)

	first, err := svc.CreateUserAnswer(1, mcSubmission(quizID, 1))
	if err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if first.Answer.AttemptNumber != 1 {
		t.Errorf("first attempt number = %d, want 1", first.Answer.AttemptNumber)
	}
	if first.Answer.IsCorrect {
		t.Error("option 1 should be recorded as incorrect")
	}

	second, err := svc.CreateUserAnswer(1, mcSubmission(quizID, 0))
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}
	if second.Answer.AttemptNumber != 2 {
		t.Errorf("second attempt number = %d, want 2", second.Answer.AttemptNumber)
	}
	if !second.Answer.IsCorrect {
		t.Error("option 0 should be recorded as correct")
	}
	if second.Evaluation == nil || !second.Evaluation.IsCorrect {
		t.Error("evaluation should accompany the stored record")
	}
}

func TestCreateUserAnswer_ExplicitAttemptNumber(t *testing.T) {
	svc, _, quizID := newAnswerService(t)

	req := mcSubmission(quizID, 0)
	req.AttemptNumber = intPtr(7)

	res, err := svc.CreateUserAnswer(1, req)
	if err != nil {
		t.Fatalf("CreateUserAnswer: %v", err)
	}
	if res.Answer.AttemptNumber != 7 {
		t.Errorf("attempt number = %d, want explicit 7", res.Answer.AttemptNumber)
	}

	// 同一序号再次提交必须拿到 DuplicateAttemptError
	_, err = svc.CreateUserAnswer(1, req)
	var dup *util.DuplicateAttemptError
	if !errors.As(err, &dup) {
		t.Fatalf("duplicate submission error = %v, want DuplicateAttemptError", err)
	}
	if dup.AttemptNumber != 7 || dup.QuizID != quizID || dup.UserID != 1 {
		t.Errorf("duplicate error = %+v, want userId=1 quizId=%d attempt=7", dup, quizID)
	}
}

// 两个并发提交读到同样的已有次数、算出同一尝试序号时，
// 唯一索引保证恰有一个写入成功
func TestCreateUserAnswer_ConcurrentSameAttempt(t *testing.T) {
	svc, store, quizID := newAnswerService(t)

	gate := &sync.WaitGroup{}
	gate.Add(2)
	store.countGate = gate

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.CreateUserAnswer(1, mcSubmission(quizID, 0))
			results <- err
		}()
	}

	var dupErrs, okCount int
	for i := 0; i < 2; i++ {
		err := <-results
		if err == nil {
			okCount++
			continue
		}
		var dup *util.DuplicateAttemptError
		if !errors.As(err, &dup) {
			t.Fatalf("unexpected error: %v", err)
		}
		if dup.AttemptNumber != 1 {
			t.Errorf("contended attempt number = %d, want 1", dup.AttemptNumber)
		}
		dupErrs++
	}

	if okCount != 1 || dupErrs != 1 {
		t.Fatalf("got %d successes and %d duplicates, want exactly one of each", okCount, dupErrs)
	}

	store.countGate = nil
	if count, _ := store.CountByUserAndQuiz(1, quizID); count != 1 {
		t.Errorf("stored records = %d, want 1", count)
	}
}

func TestCreateUserAnswer_UnknownUserAndQuiz(t *testing.T) {
	svc, _, quizID := newAnswerService(t)

	if _, err := svc.CreateUserAnswer(99, mcSubmission(quizID, 0)); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("unknown user error = %v, want ErrUserNotFound", err)
	}
	if _, err := svc.CreateUserAnswer(1, mcSubmission(404, 0)); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("unknown quiz error = %v, want ErrQuizNotFound", err)
	}
}

func TestCreateUserAnswer_TypeMismatch(t *testing.T) {
	svc, store, quizID := newAnswerService(t)

	req := UserAnswerRequest{
		QuizID:     quizID,
		Type:       model.QuizTypeSubjective,
		AnswerText: strPtr("B-612"),
	}
	if _, err := svc.CreateUserAnswer(1, req); !errors.Is(err, util.ErrQuizTypeMismatch) {
		t.Errorf("mismatched submission error = %v, want ErrQuizTypeMismatch", err)
	}
	if len(store.answers) != 0 {
		t.Error("rejected submission must not be persisted")
	}
}

func TestUpdateUserAnswer_Correction(t *testing.T) {
	svc, store, quizID := newAnswerService(t)

	created, err := svc.CreateUserAnswer(1, mcSubmission(quizID, 1))
	if err != nil {
		t.Fatalf("CreateUserAnswer: %v", err)
	}

	updated, err := svc.UpdateUserAnswer(created.Answer.ID, 1, mcSubmission(quizID, 0))
	if err != nil {
		t.Fatalf("UpdateUserAnswer: %v", err)
	}
	if !updated.Answer.IsCorrect {
		t.Error("corrected answer should be re-evaluated as correct")
	}
	// 更正不产生新的尝试
	if updated.Answer.AttemptNumber != created.Answer.AttemptNumber {
		t.Errorf("attempt number changed %d -> %d, must stay fixed",
			created.Answer.AttemptNumber, updated.Answer.AttemptNumber)
	}
	if len(store.answers) != 1 {
		t.Errorf("stored records = %d, correction must not append", len(store.answers))
	}
}

func TestUpdateUserAnswer_OwnershipAndType(t *testing.T) {
	svc, _, quizID := newAnswerService(t)

	created, err := svc.CreateUserAnswer(1, mcSubmission(quizID, 1))
	if err != nil {
		t.Fatalf("CreateUserAnswer: %v", err)
	}

	if _, err := svc.UpdateUserAnswer(created.Answer.ID, 2, mcSubmission(quizID, 0)); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("foreign user error = %v, want ErrPermissionDenied", err)
	}

	wrongKind := UserAnswerRequest{QuizID: quizID, Type: model.QuizTypeTrueFalse, AnswerBool: boolPtr(true)}
	if _, err := svc.UpdateUserAnswer(created.Answer.ID, 1, wrongKind); !errors.Is(err, util.ErrQuizTypeMismatch) {
		t.Errorf("kind switch error = %v, want ErrQuizTypeMismatch", err)
	}

	if _, err := svc.UpdateUserAnswer(404, 1, mcSubmission(quizID, 0)); !errors.Is(err, util.ErrAnswerNotFound) {
		t.Errorf("missing record error = %v, want ErrAnswerNotFound", err)
	}
}

func TestGetUserQuizSummary(t *testing.T) {
	svc, _, quizID := newAnswerService(t)

	// 第 1、2 次答错，第 3 次答对，第 4 次又答对
	for _, idx := range []int{1, 2, 0, 0} {
		if _, err := svc.CreateUserAnswer(1, mcSubmission(quizID, idx)); err != nil {
			t.Fatalf("CreateUserAnswer(%d): %v", idx, err)
		}
	}

	summary, err := svc.GetUserQuizSummary(1, quizID)
	if err != nil {
		t.Fatalf("GetUserQuizSummary: %v", err)
	}
	if summary.TotalAttempts != 4 {
		t.Errorf("totalAttempts = %d, want 4", summary.TotalAttempts)
	}
	if !summary.HasCorrect {
		t.Error("hasCorrect should be true")
	}
	// 最优成绩是第一次答对的序号，不是最后一次
	if summary.BestAttempt != 3 {
		t.Errorf("bestAttempt = %d, want 3", summary.BestAttempt)
	}
}

func TestGetUserQuizSummary_NeverCorrect(t *testing.T) {
	svc, _, quizID := newAnswerService(t)

	for i := 0; i < 2; i++ {
		if _, err := svc.CreateUserAnswer(1, mcSubmission(quizID, 1)); err != nil {
			t.Fatalf("CreateUserAnswer: %v", err)
		}
	}

	summary, err := svc.GetUserQuizSummary(1, quizID)
	if err != nil {
		t.Fatalf("GetUserQuizSummary: %v", err)
	}
	if summary.HasCorrect {
		t.Error("hasCorrect should be false")
	}
	if summary.BestAttempt != 2 {
		t.Errorf("bestAttempt = %d, want totalAttempts when never correct", summary.BestAttempt)
	}
}

func TestGetUserAnswerStats(t *testing.T) {
	svc, _, quizID := newAnswerService(t)

	empty, err := svc.GetUserAnswerStats(1)
	if err != nil {
		t.Fatalf("GetUserAnswerStats: %v", err)
	}
	if empty.Accuracy != 0 || empty.TotalAttempts != 0 {
		t.Errorf("empty stats = %+v, want zeros", empty)
	}

	for _, idx := range []int{0, 1, 0, 2} {
		if _, err := svc.CreateUserAnswer(1, mcSubmission(quizID, idx)); err != nil {
			t.Fatalf("CreateUserAnswer: %v", err)
		}
	}

	stats, err := svc.GetUserAnswerStats(1)
	if err != nil {
		t.Fatalf("GetUserAnswerStats: %v", err)
	}
	if stats.TotalAttempts != 4 || stats.CorrectAnswers != 2 {
		t.Errorf("stats = %+v, want 4 attempts / 2 correct", stats)
	}
	if stats.Accuracy != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", stats.Accuracy)
	}
}
