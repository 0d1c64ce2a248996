package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/humaira228/DeenOasis/internal/application/book"
	"github.com/humaira228/DeenOasis/internal/interface/http/dto"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
	"github.com/humaira228/DeenOasis/pkg/response"
)

// BookHandler 图书HTTP处理器
// 列表/详情/最近上架对所有人开放,增删改仅管理员
type BookHandler struct {
	manageUseCase *appbook.ManageBookUseCase
	listUseCase   *appbook.ListBooksUseCase
	recentUseCase *appbook.RecentBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	manageUseCase *appbook.ManageBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	recentUseCase *appbook.RecentBooksUseCase,
) *BookHandler {
	return &BookHandler{
		manageUseCase: manageUseCase,
		listUseCase:   listUseCase,
		recentUseCase: recentUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询,最新上架在前
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码(默认1)"
// @Param        page_size query int false "每页数量(默认20,最大100)"
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RecentBooks 最近上架图书(首页)
// @Summary      最近上架图书
// @Description  Redis缓存,缓存不可用时降级直查数据库
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse}
// @Router       /api/v1/recent-books [get]
func (h *BookHandler) RecentBooks(c *gin.Context) {
	result, err := h.recentUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDetail}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的图书ID")
		return
	}

	result, err := h.manageUseCase.GetBook(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddBook 上架图书(管理员)
// @Summary      上架图书
// @Description  音译字段由标题/作者自动派生,供搜索使用
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDetail}
// @Failure      403 {object} response.Response "没有操作权限"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.AddBook(c.Request.Context(), appbook.AddBookRequest{
		URL:         req.URL,
		Title:       req.Title,
		Author:      req.Author,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		Language:    req.Language,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBook 更新图书(管理员)
// @Summary      更新图书
// @Description  空字符串/负数字段表示不修改
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDetail}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的图书ID")
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.UpdateBook(c.Request.Context(), appbook.UpdateBookRequest{
		ID:          id,
		URL:         req.URL,
		Title:       req.Title,
		Author:      req.Author,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		Language:    req.Language,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBook 下架图书(管理员)
// @Summary      下架图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "下架成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的图书ID")
		return
	}

	if err := h.manageUseCase.DeleteBook(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "图书已下架", nil)
}

// parseUintParam 解析路径参数为uint
func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
