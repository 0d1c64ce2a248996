package cart

import (
	"context"

	"github.com/humaira228/DeenOasis/internal/domain/book"
)

// Manager 购物车领域服务
// 设计说明:
// 1. 封装购物车的业务规则(数量校验、图书存在性校验)
// 2. 合并语义由Repository的原子Upsert保证,Manager不做读-改-写
type Manager interface {
	// AddItem 加购(合并语义)
	// 业务规则:
	// - quantity>=1
	// - 图书必须存在
	// - 同一本书重复加购时数量累加,购物车内仍只有一条记录
	AddItem(ctx context.Context, userID, bookID uint, quantity int) error

	// RemoveItem 移除条目(不存在时no-op)
	RemoveItem(ctx context.Context, userID, bookID uint) error

	// ListItems 查询购物车条目,最近加入的在前
	ListItems(ctx context.Context, userID uint) ([]*Item, error)

	// Clear 清空购物车
	Clear(ctx context.Context, userID uint) error
}

type manager struct {
	repo     Repository
	bookRepo book.Repository
}

// NewManager 创建购物车领域服务
func NewManager(repo Repository, bookRepo book.Repository) Manager {
	return &manager{repo: repo, bookRepo: bookRepo}
}

// AddItem 加购
func (m *manager) AddItem(ctx context.Context, userID, bookID uint, quantity int) error {
	// 1. 构造条目(内部校验quantity>=1)
	item, err := NewItem(userID, bookID, quantity)
	if err != nil {
		return err
	}

	// 2. 图书存在性校验
	if _, err := m.bookRepo.FindByID(ctx, bookID); err != nil {
		return err // ErrBookNotFound
	}

	// 3. 原子合并写入
	return m.repo.Upsert(ctx, item)
}

// RemoveItem 移除条目
func (m *manager) RemoveItem(ctx context.Context, userID, bookID uint) error {
	return m.repo.RemoveByBookID(ctx, userID, bookID)
}

// ListItems 查询购物车条目
func (m *manager) ListItems(ctx context.Context, userID uint) ([]*Item, error) {
	return m.repo.ListByUserID(ctx, userID)
}

// Clear 清空购物车
func (m *manager) Clear(ctx context.Context, userID uint) error {
	return m.repo.ClearByUserID(ctx, userID)
}
