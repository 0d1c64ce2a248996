package cart

import (
	"time"
)

// Item 购物车条目
// 设计说明:
// 1. 购物车归User聚合所有,无独立生命周期
// 2. 持久化为独立表(user_id+book_id唯一索引),
//    因为"同书合并加购"需要服务端原子增量,嵌在User行内无法做到
// 3. 同一用户对同一本书最多一条记录(合并加购不变式)
type Item struct {
	ID        uint
	UserID    uint // 所属用户ID
	BookID    uint // 图书ID
	Quantity  int  // 数量(>=1)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem 创建购物车条目(工厂方法)
func NewItem(userID, bookID uint, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	now := time.Now()
	return &Item{
		UserID:    userID,
		BookID:    bookID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
