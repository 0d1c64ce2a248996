package order

import (
	"context"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	"github.com/humaira228/DeenOasis/internal/domain/order"
	"github.com/humaira228/DeenOasis/internal/domain/user"
)

// OrderHistoryUseCase 订单历史查询用例
// 设计说明:
// 1. 用户只能查询自己的订单,管理员通过ListAll查询全部
// 2. 订单明细批量解析图书数据(FindByIDs避免N+1)
// 3. 管理员视图额外解析下单用户数据(发货需要联系方式)
type OrderHistoryUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	userRepo  user.Repository
}

// NewOrderHistoryUseCase 创建订单历史查询用例
func NewOrderHistoryUseCase(orderRepo order.Repository, bookRepo book.Repository, userRepo user.Repository) *OrderHistoryUseCase {
	return &OrderHistoryUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		userRepo:  userRepo,
	}
}

// OrderItemView 订单明细DTO(含图书数据)
type OrderItemView struct {
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	URL      string `json:"url"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"` // 下单时价格(分)
}

// OrderView 订单DTO
// Username/Email只在管理员视图填充
type OrderView struct {
	ID             uint            `json:"id"`
	OrderNo        string          `json:"order_no"`
	UserID         uint            `json:"user_id"`
	Username       string          `json:"username,omitempty"`
	Email          string          `json:"email,omitempty"`
	Contact        string          `json:"contact,omitempty"`
	Address        string          `json:"address,omitempty"`
	Delivery       string          `json:"delivery"`
	RentalDuration int             `json:"rental_duration"`
	Total          int64           `json:"total"` // 总价(分)
	Status         string          `json:"status"`
	Items          []OrderItemView `json:"items"`
	CreatedAt      string          `json:"created_at"`
}

// OrderListResponse 订单列表响应DTO
type OrderListResponse struct {
	List     []OrderView `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// ListByUser 查询用户订单历史,最新下单在前
func (uc *OrderHistoryUseCase) ListByUser(ctx context.Context, userID uint, page, pageSize int) (*OrderListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	list, err := uc.toOrderViews(ctx, orders, false)
	if err != nil {
		return nil, err
	}

	return &OrderListResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// ListAll 查询全部订单(管理员发货视图),最新下单在前
// 每个订单附带下单用户的联系信息
func (uc *OrderHistoryUseCase) ListAll(ctx context.Context, page, pageSize int) (*OrderListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	orders, total, err := uc.orderRepo.ListAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list, err := uc.toOrderViews(ctx, orders, true)
	if err != nil {
		return nil, err
	}

	return &OrderListResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// toOrderViews 订单实体 → DTO,批量解析图书数据
// withUsers为真时(管理员视图)同时批量解析下单用户数据
func (uc *OrderHistoryUseCase) toOrderViews(ctx context.Context, orders []*order.Order, withUsers bool) ([]OrderView, error) {
	// 收集所有订单涉及的图书ID
	idSet := make(map[uint]struct{})
	for _, o := range orders {
		for _, item := range o.Items {
			idSet[item.BookID] = struct{}{}
		}
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	bookMap, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	userMap, err := uc.resolveUsers(ctx, orders, withUsers)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, len(orders))
	for i, o := range orders {
		items := make([]OrderItemView, len(o.Items))
		for j, item := range o.Items {
			view := OrderItemView{
				BookID:   item.BookID,
				Quantity: item.Quantity,
				Price:    item.Price,
			}
			// 图书已下架时仍保留订单明细,标题等字段为空
			if b, ok := bookMap[item.BookID]; ok {
				view.Title = b.Title
				view.Author = b.Author
				view.URL = b.URL
			}
			items[j] = view
		}

		view := OrderView{
			ID:             o.ID,
			OrderNo:        o.OrderNo,
			UserID:         o.UserID,
			Delivery:       string(o.Delivery),
			RentalDuration: o.RentalDuration,
			Total:          o.Total,
			Status:         string(o.Status),
			Items:          items,
			CreatedAt:      o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		// 用户已注销时保留订单,用户字段为空
		if u, ok := userMap[o.UserID]; ok {
			view.Username = u.Username
			view.Email = u.Email
			view.Contact = u.Contact
			view.Address = u.Address
		}
		views[i] = view
	}

	return views, nil
}

// resolveUsers 批量解析订单的下单用户,非管理员视图返回空map
func (uc *OrderHistoryUseCase) resolveUsers(ctx context.Context, orders []*order.Order, withUsers bool) (map[uint]*user.User, error) {
	if !withUsers {
		return map[uint]*user.User{}, nil
	}

	idSet := make(map[uint]struct{})
	for _, o := range orders {
		idSet[o.UserID] = struct{}{}
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	return uc.userRepo.FindByIDs(ctx, ids)
}

// normalizePage 分页参数默认值与范围限制
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
