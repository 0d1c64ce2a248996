package cart

import (
	"context"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	"github.com/humaira228/DeenOasis/internal/domain/cart"
	"github.com/humaira228/DeenOasis/pkg/metrics"
)

// CartUseCase 购物车用例
// 设计说明:
// 1. 加购/删除委托给cart.Manager(合并语义在仓储层保证)
// 2. 查询购物车时批量解析图书数据(FindByIDs避免N+1)
// 3. 图书已下架的条目仍然展示,但标记不可购买
type CartUseCase struct {
	cartManager cart.Manager
	bookRepo    book.Repository
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(cartManager cart.Manager, bookRepo book.Repository) *CartUseCase {
	return &CartUseCase{
		cartManager: cartManager,
		bookRepo:    bookRepo,
	}
}

// CartItemView 购物车条目DTO(含图书数据)
type CartItemView struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	Price     int64  `json:"price"` // 价格(分)
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"` // price * quantity
	Available bool   `json:"available"`
}

// CartResponse 购物车响应DTO
type CartResponse struct {
	Items []CartItemView `json:"items"`
	Total int64          `json:"total"` // 可购买条目小计之和(分)
}

// AddItem 加购图书
// 重复加购同一本书时数量合并,不产生重复条目
func (uc *CartUseCase) AddItem(ctx context.Context, userID, bookID uint, quantity int) error {
	if err := uc.cartManager.AddItem(ctx, userID, bookID, quantity); err != nil {
		return err
	}
	recordCartOperation("add")
	return nil
}

// RemoveItem 从购物车移除图书(幂等)
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, bookID uint) error {
	if err := uc.cartManager.RemoveItem(ctx, userID, bookID); err != nil {
		return err
	}
	recordCartOperation("remove")
	return nil
}

// GetCart 查询购物车(含图书数据解析)
func (uc *CartUseCase) GetCart(ctx context.Context, userID uint) (*CartResponse, error) {
	// 1. 查询购物车条目,最近加购在前
	items, err := uc.cartManager.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &CartResponse{Items: []CartItemView{}}, nil
	}

	// 2. 批量解析图书数据
	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.BookID
	}

	bookMap, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 3. 组装DTO,已下架图书标记不可购买且不计入总价
	views := make([]CartItemView, len(items))
	var total int64
	for i, item := range items {
		view := CartItemView{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}

		if b, ok := bookMap[item.BookID]; ok {
			view.Title = b.Title
			view.Author = b.Author
			view.URL = b.URL
			view.Price = b.Price
			view.Subtotal = b.Price * int64(item.Quantity)
			view.Available = true
			total += view.Subtotal
		}

		views[i] = view
	}

	return &CartResponse{
		Items: views,
		Total: total,
	}, nil
}

// recordCartOperation 上报购物车操作指标,未初始化时跳过
func recordCartOperation(operation string) {
	if metrics.CartOperationsTotal != nil {
		metrics.CartOperationsTotal.WithLabelValues(operation).Inc()
	}
}
