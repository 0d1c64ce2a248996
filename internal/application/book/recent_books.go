package book

import (
	"context"
	"errors"
	"time"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	"github.com/humaira228/DeenOasis/internal/infrastructure/persistence/redis"
	"github.com/humaira228/DeenOasis/pkg/circuitbreaker"
	"github.com/humaira228/DeenOasis/pkg/logger"
)

// 首页展示的最近上架数量
const recentBooksLimit = 4

// RecentBooksUseCase 最近上架图书查询用例(首页)
// 设计说明:
// 1. 读路径:Redis缓存 → 未命中回源MySQL并回填
// 2. Redis访问经过熔断器,故障时快速失败直查数据库
// 3. 熔断器OPEN期间不再访问Redis,避免慢调用拖垮首页
type RecentBooksUseCase struct {
	bookService book.Service
	bookCache   *redis.BookCache
	breaker     *circuitbreaker.CircuitBreaker
}

// NewRecentBooksUseCase 创建最近上架查询用例
func NewRecentBooksUseCase(bookService book.Service, bookCache *redis.BookCache) *RecentBooksUseCase {
	breaker := circuitbreaker.NewCircuitBreaker("recent_books_cache", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &RecentBooksUseCase{
		bookService: bookService,
		bookCache:   bookCache,
		breaker:     breaker,
	}
}

// Execute 查询最近上架图书
func (uc *RecentBooksUseCase) Execute(ctx context.Context) (*ListBooksResponse, error) {
	// 1. 先读缓存(经过熔断器)
	var cached []*book.Book
	err := uc.breaker.Execute(func() error {
		var cacheErr error
		cached, cacheErr = uc.bookCache.GetRecentBooks(ctx)
		if errors.Is(cacheErr, redis.ErrCacheMiss) {
			// 未命中是正常路径,不计入熔断失败
			return nil
		}
		return cacheErr
	})

	if err == nil && cached != nil {
		return toRecentResponse(cached), nil
	}

	if err != nil {
		// Redis故障或熔断器OPEN,降级直查数据库
		logger.Get().Warn().Err(err).Msg("最近上架缓存不可用,降级直查数据库")
	}

	// 2. 回源MySQL
	books, dbErr := uc.bookService.ListRecentBooks(ctx, recentBooksLimit)
	if dbErr != nil {
		return nil, dbErr
	}

	// 3. 回填缓存(仅在Redis可用时)
	if err == nil {
		if setErr := uc.bookCache.SetRecentBooks(ctx, books); setErr != nil {
			logger.Get().Warn().Err(setErr).Msg("回填图书缓存失败")
		}
	}

	return toRecentResponse(books), nil
}

// toRecentResponse 组装响应,复用列表项DTO
func toRecentResponse(books []*book.Book) *ListBooksResponse {
	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = toBookListItem(b)
	}
	return &ListBooksResponse{
		List:     list,
		Total:    int64(len(list)),
		Page:     1,
		PageSize: recentBooksLimit,
	}
}
