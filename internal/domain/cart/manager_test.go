package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humaira228/DeenOasis/internal/domain/book"
)

// fakeCartRepo 内存仓储,Upsert模拟MySQL的ON DUPLICATE KEY UPDATE合并语义
type fakeCartRepo struct {
	items []*Item
}

func (r *fakeCartRepo) Upsert(ctx context.Context, item *Item) error {
	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.BookID == item.BookID {
			existing.Quantity += item.Quantity
			return nil
		}
	}
	r.items = append(r.items, item)
	return nil
}

func (r *fakeCartRepo) RemoveByBookID(ctx context.Context, userID, bookID uint) error {
	out := r.items[:0]
	for _, item := range r.items {
		if item.UserID == userID && item.BookID == bookID {
			continue
		}
		out = append(out, item)
	}
	r.items = out
	return nil
}

func (r *fakeCartRepo) ListByUserID(ctx context.Context, userID uint) ([]*Item, error) {
	// 最近加入的在前
	var out []*Item
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *fakeCartRepo) ClearByUserID(ctx context.Context, userID uint) error {
	out := r.items[:0]
	for _, item := range r.items {
		if item.UserID != userID {
			out = append(out, item)
		}
	}
	r.items = out
	return nil
}

// fakeBookRepo 只实现FindByID,其余方法不会被Manager调用
type fakeBookRepo struct {
	book.Repository
	existing map[uint]bool
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	if !r.existing[id] {
		return nil, book.ErrBookNotFound
	}
	return &book.Book{ID: id}, nil
}

func newTestManager(bookIDs ...uint) (Manager, *fakeCartRepo) {
	existing := make(map[uint]bool)
	for _, id := range bookIDs {
		existing[id] = true
	}
	repo := &fakeCartRepo{}
	return NewManager(repo, &fakeBookRepo{existing: existing}), repo
}

// TestManager_AddItem_Merge 同一本书两次加购(2+3)合并为一条数量5的记录
func TestManager_AddItem_Merge(t *testing.T) {
	m, repo := newTestManager(1)
	ctx := context.Background()

	require.NoError(t, m.AddItem(ctx, 100, 1, 2))
	require.NoError(t, m.AddItem(ctx, 100, 1, 3))

	require.Len(t, repo.items, 1)
	assert.Equal(t, 5, repo.items[0].Quantity)
}

// TestManager_AddItem_InvalidQuantity 数量必须>=1
func TestManager_AddItem_InvalidQuantity(t *testing.T) {
	m, repo := newTestManager(1)

	for _, quantity := range []int{0, -1} {
		err := m.AddItem(context.Background(), 100, 1, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Empty(t, repo.items)
}

// TestManager_AddItem_BookNotFound 加购不存在的图书报错
func TestManager_AddItem_BookNotFound(t *testing.T) {
	m, _ := newTestManager(1)

	err := m.AddItem(context.Background(), 100, 999, 1)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

// TestManager_RemoveItem_AbsentIsNoop 移除不在购物车的图书是no-op
func TestManager_RemoveItem_AbsentIsNoop(t *testing.T) {
	m, repo := newTestManager(1)
	ctx := context.Background()

	require.NoError(t, m.AddItem(ctx, 100, 1, 2))
	require.NoError(t, m.RemoveItem(ctx, 100, 999))

	assert.Len(t, repo.items, 1)
}

// TestManager_ListItems_NewestFirst 购物车按最近加入排序
func TestManager_ListItems_NewestFirst(t *testing.T) {
	m, _ := newTestManager(1, 2, 3)
	ctx := context.Background()

	require.NoError(t, m.AddItem(ctx, 100, 1, 1))
	require.NoError(t, m.AddItem(ctx, 100, 2, 1))
	require.NoError(t, m.AddItem(ctx, 100, 3, 1))

	items, err := m.ListItems(ctx, 100)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, uint(3), items[0].BookID)
	assert.Equal(t, uint(2), items[1].BookID)
	assert.Equal(t, uint(1), items[2].BookID)
}

// TestManager_Clear 清空后购物车为空,不影响其他用户
func TestManager_Clear(t *testing.T) {
	m, _ := newTestManager(1, 2)
	ctx := context.Background()

	require.NoError(t, m.AddItem(ctx, 100, 1, 1))
	require.NoError(t, m.AddItem(ctx, 200, 2, 1))

	require.NoError(t, m.Clear(ctx, 100))

	items, err := m.ListItems(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, items)

	others, err := m.ListItems(ctx, 200)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
