package book

import (
	"context"

	"github.com/humaira228/DeenOasis/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 列表项不返回description字段,减少数据传输量
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int // 页码(从1开始)
	PageSize int // 每页数量
}

// BookListItem 列表项DTO(不含description)
type BookListItem struct {
	ID        uint   `json:"id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Price     int64  `json:"price"` // 价格(分)
	Stock     int    `json:"stock"`
	Language  string `json:"language"`
	CreatedAt string `json:"created_at"`
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List       []BookListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	// 2. 调用领域服务查询
	books, total, err := uc.bookService.ListBooks(ctx, book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	// 3. 转换为DTO
	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = toBookListItem(b)
	}

	// 4. 计算总页数
	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// toBookListItem 领域实体 → 列表项DTO
func toBookListItem(b *book.Book) BookListItem {
	return BookListItem{
		ID:        b.ID,
		URL:       b.URL,
		Title:     b.Title,
		Author:    b.Author,
		Price:     b.Price,
		Stock:     b.Stock,
		Language:  b.Language,
		CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
