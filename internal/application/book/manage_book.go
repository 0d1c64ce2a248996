package book

import (
	"context"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	"github.com/humaira228/DeenOasis/internal/infrastructure/persistence/redis"
	"github.com/humaira228/DeenOasis/pkg/logger"
)

// ManageBookUseCase 图书管理用例(管理员)
// 设计说明:
// 1. 增删改都会让"最近上架"缓存失效,下次读取回源MySQL
// 2. 缓存失效失败不阻断主流程,只记录日志(TTL兜底)
type ManageBookUseCase struct {
	bookService book.Service
	bookCache   *redis.BookCache
}

// NewManageBookUseCase 创建图书管理用例
func NewManageBookUseCase(bookService book.Service, bookCache *redis.BookCache) *ManageBookUseCase {
	return &ManageBookUseCase{
		bookService: bookService,
		bookCache:   bookCache,
	}
}

// AddBookRequest 上架图书请求
type AddBookRequest struct {
	URL         string
	Title       string
	Author      string
	Price       int64 // 价格(分)
	Stock       int
	Description string
	Language    string
}

// UpdateBookRequest 更新图书请求
// Price/Stock为负数表示不修改,字符串为空表示不修改
type UpdateBookRequest struct {
	ID          uint
	URL         string
	Title       string
	Author      string
	Price       int64
	Stock       int
	Description string
	Language    string
}

// BookDetail 图书详情DTO
type BookDetail struct {
	ID          uint   `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Price       int64  `json:"price"` // 价格(分)
	Stock       int    `json:"stock"`
	Description string `json:"description"`
	Language    string `json:"language"`
	CreatedAt   string `json:"created_at"`
}

// AddBook 上架图书
// 音译字段在领域服务中由标题/作者自动派生
func (uc *ManageBookUseCase) AddBook(ctx context.Context, req AddBookRequest) (*BookDetail, error) {
	b, err := uc.bookService.AddBook(ctx, req.URL, req.Title, req.Author, req.Price, req.Stock, req.Description, req.Language)
	if err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx)
	return toBookDetail(b), nil
}

// UpdateBook 更新图书
func (uc *ManageBookUseCase) UpdateBook(ctx context.Context, req UpdateBookRequest) (*BookDetail, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.ID, req.URL, req.Title, req.Author, req.Price, req.Stock, req.Description, req.Language)
	if err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx)
	return toBookDetail(b), nil
}

// DeleteBook 下架图书
func (uc *ManageBookUseCase) DeleteBook(ctx context.Context, id uint) error {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	uc.invalidateCache(ctx)
	return nil
}

// GetBook 查询图书详情
func (uc *ManageBookUseCase) GetBook(ctx context.Context, id uint) (*BookDetail, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookDetail(b), nil
}

// invalidateCache 让最近上架缓存失效
func (uc *ManageBookUseCase) invalidateCache(ctx context.Context) {
	if err := uc.bookCache.Invalidate(ctx); err != nil {
		logger.Get().Warn().Err(err).Msg("图书缓存失效失败,等待TTL过期")
	}
}

// toBookDetail 领域实体 → 详情DTO
func toBookDetail(b *book.Book) *BookDetail {
	return &BookDetail{
		ID:          b.ID,
		URL:         b.URL,
		Title:       b.Title,
		Author:      b.Author,
		Price:       b.Price,
		Stock:       b.Stock,
		Description: b.Description,
		Language:    b.Language,
		CreatedAt:   b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
