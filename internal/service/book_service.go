package service

import (
	"bookquiz_backend/internal/model"
	"bookquiz_backend/internal/util"
	"bookquiz_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	bookListCacheKeyFmt = "bookquiz:books:%s:%s:%d:%d"
	bookListCacheTTL    = 5 * time.Minute
)

// BookStore 图书持久化的窄接口，由 repository.BookRepository 实现
type BookStore interface {
	Create(book *model.Book) error
	Update(book *model.Book) error
	FindByID(id uint) (*model.Book, error)
	DeleteByID(id uint) error
	List(title, author string, page, limit int) ([]model.Book, int64, error)
}

type BookService struct {
	Books BookStore
	RDB   *redis.Client
}

func NewBookService(books BookStore, rdb *redis.Client) *BookService {
	return &BookService{Books: books, RDB: rdb}
}

type BookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Translator  string `json:"translator"`
	Illustrator string `json:"illustrator"`
	Publisher   string `json:"publisher"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	Price       int    `json:"price"`
}

type bookListPage struct {
	Books []model.Book `json:"books"`
	Total int64        `json:"total"`
}

// ListBooks 列表走 Redis 短缓存，写操作时整体失效
func (s *BookService) ListBooks(title, author string, page, limit int) ([]model.Book, int64, error) {
	ctx := context.Background()
	key := fmt.Sprintf(bookListCacheKeyFmt, title, author, page, limit)

	if s.RDB != nil {
		if cached, err := s.RDB.Get(ctx, key).Result(); err == nil {
			var p bookListPage
			if json.Unmarshal([]byte(cached), &p) == nil {
				return p.Books, p.Total, nil
			}
		}
	}

	books, total, err := s.Books.List(title, author, page, limit)
	if err != nil {
		return nil, 0, err
	}

	if s.RDB != nil {
		if data, err := json.Marshal(bookListPage{Books: books, Total: total}); err == nil {
			s.RDB.Set(ctx, key, data, bookListCacheTTL)
		}
	}

	return books, total, nil
}

func (s *BookService) invalidateListCache() {
	if s.RDB == nil {
		return
	}
	ctx := context.Background()
	iter := s.RDB.Scan(ctx, 0, "bookquiz:books:*", 100).Iterator()
	for iter.Next(ctx) {
		s.RDB.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Log.Warn("book cache invalidation failed", zap.Error(err))
	}
}

func (s *BookService) GetBook(id uint) (*model.Book, error) {
	book, err := s.Books.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *BookService) CreateBook(req BookRequest) (*model.Book, error) {
	book := &model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Translator:  req.Translator,
		Illustrator: req.Illustrator,
		Publisher:   req.Publisher,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Price:       req.Price,
	}
	if err := s.Books.Create(book); err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return book, nil
}

func (s *BookService) UpdateBook(id uint, req BookRequest) (*model.Book, error) {
	book, err := s.GetBook(id)
	if err != nil {
		return nil, err
	}

	book.Title = req.Title
	book.Author = req.Author
	book.Translator = req.Translator
	book.Illustrator = req.Illustrator
	book.Publisher = req.Publisher
	book.Description = req.Description
	if req.CoverImage != "" {
		book.CoverImage = req.CoverImage
	}
	book.Price = req.Price

	if err := s.Books.Update(book); err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return book, nil
}

func (s *BookService) DeleteBook(id uint) error {
	if _, err := s.GetBook(id); err != nil {
		return err
	}
	if err := s.Books.DeleteByID(id); err != nil {
		return err
	}
	s.invalidateListCache()
	return nil
}

func (s *BookService) SetCoverImage(id uint, url string) (*model.Book, error) {
	book, err := s.GetBook(id)
	if err != nil {
		return nil, err
	}
	book.CoverImage = url
	if err := s.Books.Update(book); err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return book, nil
}
