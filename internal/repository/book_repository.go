package repository

import (
	"bookquiz_backend/internal/model"

	"gorm.io/gorm"
)

type BookRepository struct {
	DB *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{DB: db}
}

func (r *BookRepository) Create(book *model.Book) error {
	return r.DB.Create(book).Error
}

func (r *BookRepository) Update(book *model.Book) error {
	return r.DB.Save(book).Error
}

func (r *BookRepository) FindByID(id uint) (*model.Book, error) {
	var b model.Book
	if err := r.DB.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookRepository) ExistsByID(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *BookRepository) DeleteByID(id uint) error {
	return r.DB.Delete(&model.Book{}, id).Error
}

func (r *BookRepository) List(title, author string, page, limit int) ([]model.Book, int64, error) {
	var books []model.Book
	var total int64

	query := r.DB.Model(&model.Book{})
	if title != "" {
		query = query.Where("title LIKE ?", "%"+title+"%")
	}
	if author != "" {
		query = query.Where("author LIKE ?", "%"+author+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&books).Error
	return books, total, err
}
