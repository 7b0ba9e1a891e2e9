package repository

import (
	"bookquiz_backend/internal/model"

	"gorm.io/gorm"
)

type UserAnswerRepository struct {
	DB *gorm.DB
}

func NewUserAnswerRepository(db *gorm.DB) *UserAnswerRepository {
	return &UserAnswerRepository{DB: db}
}

// Create 写入一次答题记录。(user_id, quiz_id, attempt_number) 撞唯一索引时
// 返回 gorm.ErrDuplicatedKey（TranslateError 开启），由服务层转换为业务错误
func (r *UserAnswerRepository) Create(answer *model.UserAnswer) error {
	return r.DB.Create(answer).Error
}

func (r *UserAnswerRepository) Update(answer *model.UserAnswer) error {
	return r.DB.Save(answer).Error
}

func (r *UserAnswerRepository) FindByID(id uint) (*model.UserAnswer, error) {
	var a model.UserAnswer
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *UserAnswerRepository) FindByUserAndQuiz(userID, quizID uint) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number desc").
		Find(&answers).Error
	return answers, err
}

func (r *UserAnswerRepository) CountByUserAndQuiz(userID, quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}

func (r *UserAnswerRepository) CountCorrectByUserAndQuiz(userID, quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).
		Where("user_id = ? AND quiz_id = ? AND is_correct = ?", userID, quizID, true).
		Count(&count).Error
	return count, err
}

func (r *UserAnswerRepository) FindByUser(userID uint, page, limit int) ([]model.UserAnswer, int64, error) {
	var answers []model.UserAnswer
	var total int64

	query := r.DB.Model(&model.UserAnswer{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&answers).Error
	return answers, total, err
}

func (r *UserAnswerRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *UserAnswerRepository) CountCorrectByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&count).Error
	return count, err
}
