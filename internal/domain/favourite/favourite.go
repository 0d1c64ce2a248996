// Package favourite 收藏夹领域
// 收藏夹是User聚合下的图书引用集合(set语义):
// 重复收藏是no-op,移除未收藏的图书也是no-op
package favourite

import (
	"context"
	"time"
)

// Favourite 收藏记录
type Favourite struct {
	ID        uint
	UserID    uint
	BookID    uint
	CreatedAt time.Time
}

// Repository 收藏夹仓储接口
type Repository interface {
	// Add 收藏图书(set语义,已收藏时no-op)
	// 由user_id+book_id唯一索引+INSERT IGNORE语义保证
	Add(ctx context.Context, userID, bookID uint) error

	// Remove 取消收藏(未收藏时no-op)
	Remove(ctx context.Context, userID, bookID uint) error

	// ListByUserID 查询用户收藏,最近收藏的在前
	ListByUserID(ctx context.Context, userID uint) ([]*Favourite, error)
}
