package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 设计说明:
// 1. Upsert必须是服务端原子操作(INSERT ... ON DUPLICATE KEY UPDATE),
//    不能在请求内读-改-写:两个并发加购同一user+book会丢失更新
// 2. Clear/Remove支持通过context传递事务(下单Saga使用)
type Repository interface {
	// Upsert 新增或合并购物车条目(原子)
	// 已存在user_id+book_id记录时,服务端执行quantity递增
	Upsert(ctx context.Context, item *Item) error

	// RemoveByBookID 移除指定图书的条目
	// 条目不存在时是no-op,不报错
	RemoveByBookID(ctx context.Context, userID, bookID uint) error

	// ListByUserID 查询用户购物车,最近加入的在前
	ListByUserID(ctx context.Context, userID uint) ([]*Item, error)

	// ClearByUserID 清空用户购物车(下单成功后调用)
	ClearByUserID(ctx context.Context, userID uint) error
}
