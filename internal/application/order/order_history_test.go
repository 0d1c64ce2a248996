package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	"github.com/humaira228/DeenOasis/internal/domain/order"
	"github.com/humaira228/DeenOasis/internal/domain/user"
)

// fakeOrderRepo 只实现列表查询,其余方法不会被历史查询用例调用
type fakeOrderRepo struct {
	order.Repository
	orders []*order.Order
}

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context, page, pageSize int) ([]*order.Order, int64, error) {
	return r.orders, int64(len(r.orders)), nil
}

// fakeHistoryBookRepo 按ID返回图书,缺失的ID静默跳过
type fakeHistoryBookRepo struct {
	book.Repository
	books map[uint]*book.Book
}

func (r *fakeHistoryBookRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	result := make(map[uint]*book.Book)
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			result[id] = b
		}
	}
	return result, nil
}

// fakeHistoryUserRepo 按ID返回用户并记录是否被调用
type fakeHistoryUserRepo struct {
	user.Repository
	users  map[uint]*user.User
	called bool
}

func (r *fakeHistoryUserRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	r.called = true
	result := make(map[uint]*user.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

func newHistoryFixture() (*OrderHistoryUseCase, *fakeHistoryUserRepo) {
	orderRepo := &fakeOrderRepo{orders: []*order.Order{
		{
			ID:      1,
			OrderNo: "DO20260829000001",
			UserID:  100,
			Status:  order.StatusPlaced,
			Total:   50000,
			Items: []order.Item{
				{BookID: 1, Quantity: 2, Price: 25000},
			},
			CreatedAt: time.Now(),
		},
		{
			ID:      2,
			OrderNo: "DO20260829000002",
			UserID:  200,
			Status:  order.StatusDelivered,
			Total:   8000,
			Items: []order.Item{
				{BookID: 2, Quantity: 1, Price: 8000},
			},
			CreatedAt: time.Now(),
		},
	}}

	bookRepo := &fakeHistoryBookRepo{books: map[uint]*book.Book{
		1: {ID: 1, Title: "Gitanjali", Author: "Rabindranath Tagore"},
		2: {ID: 2, Title: "Kabuliwala", Author: "Rabindranath Tagore"},
	}}

	userRepo := &fakeHistoryUserRepo{users: map[uint]*user.User{
		100: {ID: 100, Username: "humaira", Email: "humaira@test.local", Contact: "01912345678", Address: "Dhanmondi, Dhaka"},
		200: {ID: 200, Username: "rahim", Email: "rahim@test.local"},
	}}

	return NewOrderHistoryUseCase(orderRepo, bookRepo, userRepo), userRepo
}

// TestOrderHistory_ListAll_ResolvesUsers 管理员视图每个订单附带下单用户数据
func TestOrderHistory_ListAll_ResolvesUsers(t *testing.T) {
	uc, userRepo := newHistoryFixture()

	result, err := uc.ListAll(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, result.List, 2)
	require.True(t, userRepo.called)

	first := result.List[0]
	assert.Equal(t, uint(100), first.UserID)
	assert.Equal(t, "humaira", first.Username)
	assert.Equal(t, "humaira@test.local", first.Email)
	assert.Equal(t, "01912345678", first.Contact)
	assert.Equal(t, "Dhanmondi, Dhaka", first.Address)

	// 图书数据同样被解析
	require.Len(t, first.Items, 1)
	assert.Equal(t, "Gitanjali", first.Items[0].Title)

	assert.Equal(t, "rahim", result.List[1].Username)
}

// TestOrderHistory_ListAll_MissingUser 用户已注销时订单保留,用户字段为空
func TestOrderHistory_ListAll_MissingUser(t *testing.T) {
	uc, userRepo := newHistoryFixture()
	delete(userRepo.users, 200)

	result, err := uc.ListAll(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, result.List, 2)

	assert.Equal(t, uint(200), result.List[1].UserID)
	assert.Empty(t, result.List[1].Username)
	assert.Empty(t, result.List[1].Email)
}

// TestOrderHistory_ListByUser_NoUserLookup 用户视图只看自己的订单,不解析用户数据
func TestOrderHistory_ListByUser_NoUserLookup(t *testing.T) {
	uc, userRepo := newHistoryFixture()

	result, err := uc.ListByUser(context.Background(), 100, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.List, 1)

	assert.False(t, userRepo.called, "用户视图不应触发用户批量查询")
	assert.Empty(t, result.List[0].Username)
	assert.Equal(t, "Gitanjali", result.List[0].Items[0].Title)
}
