package search

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	"github.com/humaira228/DeenOasis/internal/domain/search"
	"github.com/humaira228/DeenOasis/pkg/metrics"
	"github.com/humaira228/DeenOasis/pkg/tracing"
)

// SearchBooksUseCase 图书搜索用例
// 设计说明:
// 1. 打分排序在search.Engine中完成,用例层负责DTO转换与观测
// 2. 搜索是只读路径,不需要事务
type SearchBooksUseCase struct {
	engine search.Engine
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(engine search.Engine) *SearchBooksUseCase {
	return &SearchBooksUseCase{engine: engine}
}

// SearchResult 搜索结果项DTO
type SearchResult struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Price    int64  `json:"price"` // 价格(分)
	Stock    int    `json:"stock"`
	Language string `json:"language"`
}

// SearchResponse 搜索响应DTO
type SearchResponse struct {
	Query string         `json:"query"`
	Total int            `json:"total"`
	List  []SearchResult `json:"list"`
}

// Execute 执行搜索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, query string) (*SearchResponse, error) {
	ctx, span := startSearchSpan(ctx, query)
	defer span.End()

	start := time.Now()
	books, err := uc.engine.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	recordSearch(len(books), time.Since(start))
	span.SetAttributes(attribute.Int("search.results", len(books)))

	list := make([]SearchResult, len(books))
	for i, b := range books {
		list[i] = toSearchResult(b)
	}

	return &SearchResponse{
		Query: query,
		Total: len(list),
		List:  list,
	}, nil
}

// startSearchSpan 开启搜索链路追踪Span
func startSearchSpan(ctx context.Context, query string) (context.Context, trace.Span) {
	ctx, span := tracing.StartSpan(ctx, "application/search", "SearchBooks")
	span.SetAttributes(attribute.String("search.query", query))
	return ctx, span
}

// recordSearch 上报搜索指标,未初始化时跳过(单元测试场景)
func recordSearch(resultCount int, elapsed time.Duration) {
	if metrics.SearchesTotal == nil {
		return
	}

	result := "hit"
	if resultCount == 0 {
		result = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(result).Inc()
	metrics.SearchDuration.Observe(elapsed.Seconds())
}

// toSearchResult 领域实体 → 搜索结果DTO
func toSearchResult(b *book.Book) SearchResult {
	return SearchResult{
		ID:       b.ID,
		URL:      b.URL,
		Title:    b.Title,
		Author:   b.Author,
		Price:    b.Price,
		Stock:    b.Stock,
		Language: b.Language,
	}
}
