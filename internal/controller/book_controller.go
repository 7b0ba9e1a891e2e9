package controller

import (
	"bookquiz_backend/internal/model"
	"bookquiz_backend/internal/service"
	"bookquiz_backend/internal/util"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type BookController struct {
	Service *service.BookService
	Storage *service.StorageService
}

func NewBookController(svc *service.BookService, storage *service.StorageService) *BookController {
	return &BookController{Service: svc, Storage: storage}
}

// @Summary 图书列表
// @Tags 图书
// @Produce json
// @Param title query string false "标题关键字"
// @Param author query string false "作者关键字"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/books [get]
func (c *BookController) ListBooks(ctx *gin.Context) {
	title := ctx.Query("title")
	author := ctx.Query("author")
	page, limit := util.ParsePageLimit(ctx.Query("page"), ctx.Query("limit"))

	books, total, err := c.Service.ListBooks(title, author, page, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  books,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 图书详情
// @Tags 图书
// @Produce json
// @Param id path int true "图书ID"
// @Success 200 {object} util.Response
// @Router /api/books/{id} [get]
func (c *BookController) GetBook(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	book, err := c.Service.GetBook(uint(id))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, book)
}

// @Summary 创建图书
// @Tags 图书
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.BookRequest true "图书信息"
// @Success 201 {object} util.Response
// @Router /api/admin/books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	var req service.BookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	book, err := c.Service.CreateBook(req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, book)
}

// @Summary 更新图书
// @Tags 图书
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "图书ID"
// @Param body body service.BookRequest true "图书信息"
// @Success 200 {object} util.Response
// @Router /api/admin/books/{id} [put]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.BookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	book, err := c.Service.UpdateBook(uint(id), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, book)
}

// @Summary 删除图书
// @Tags 图书
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "图书ID"
// @Success 200 {object} util.Response
// @Router /api/admin/books/{id} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.DeleteBook(uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 上传图书封面
// @Tags 图书
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "图书ID"
// @Param file formData file true "封面图片"
// @Success 200 {object} util.Response
// @Router /api/admin/books/{id}/cover [post]
func (c *BookController) UploadCover(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedImageExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported image type")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("covers/%d/%s%s", id, model.GenerateUUID(), ext)
	contentType := file.Header.Get("Content-Type")
	url, err := c.Storage.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	book, err := c.Service.SetCoverImage(uint(id), url)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, book)
}
