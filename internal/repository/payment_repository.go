package repository

import (
	"bookquiz_backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.DB.Create(payment).Error
}

func (r *PaymentRepository) Update(payment *model.Payment) error {
	return r.DB.Save(payment).Error
}

func (r *PaymentRepository) FindByOrderID(orderID string) (*model.Payment, error) {
	var p model.Payment
	if err := r.DB.Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) FindByUser(userID uint, page, limit int) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	query := r.DB.Model(&model.Payment{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&payments).Error
	return payments, total, err
}
