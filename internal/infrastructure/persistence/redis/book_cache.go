package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
	"github.com/humaira228/DeenOasis/pkg/metrics"
)

// 最近上架图书缓存
// Key设计:books:recent,整体JSON存储,TTL到期后由下一次查询回填
const (
	recentBooksKey = "books:recent"
	recentBooksTTL = 5 * time.Minute
)

// ErrCacheMiss 缓存未命中(Key不存在或已过期)
var ErrCacheMiss = errors.New("cache miss")

// BookCache 图书缓存
// 设计说明:
// 1. 首页"最近上架"列表读多写少,适合整体缓存
// 2. 图书增删改后调用Invalidate,下次读取回源MySQL
// 3. Redis故障时由应用层熔断器降级为直查数据库
type BookCache struct {
	client *redis.Client
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client) *BookCache {
	return &BookCache{client: client}
}

// GetRecentBooks 读取最近上架图书缓存
// 未命中返回ErrCacheMiss,由调用方回源并回填
func (c *BookCache) GetRecentBooks(ctx context.Context) ([]*book.Book, error) {
	data, err := c.client.Get(ctx, recentBooksKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			recordCacheRequest("miss")
			return nil, ErrCacheMiss
		}
		recordCacheRequest("error")
		return nil, apperrors.Wrap(err, "读取图书缓存失败")
	}

	var books []*book.Book
	if err := json.Unmarshal(data, &books); err != nil {
		// 缓存数据损坏,当作未命中处理,由回源覆盖
		recordCacheRequest("miss")
		return nil, ErrCacheMiss
	}

	recordCacheRequest("hit")
	return books, nil
}

// recordCacheRequest 上报缓存命中指标,未初始化时跳过(单元测试场景)
func recordCacheRequest(result string) {
	if metrics.CacheRequestsTotal != nil {
		metrics.CacheRequestsTotal.WithLabelValues("recent_books", result).Inc()
	}
}

// SetRecentBooks 回填最近上架图书缓存
func (c *BookCache) SetRecentBooks(ctx context.Context, books []*book.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return apperrors.Wrap(err, "序列化图书缓存失败")
	}

	if err := c.client.Set(ctx, recentBooksKey, data, recentBooksTTL).Err(); err != nil {
		return apperrors.Wrap(err, "写入图书缓存失败")
	}

	return nil
}

// Invalidate 删除缓存(图书增删改后调用)
func (c *BookCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, recentBooksKey).Err(); err != nil {
		return apperrors.Wrap(err, "删除图书缓存失败")
	}
	return nil
}
