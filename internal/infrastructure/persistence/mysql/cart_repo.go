package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/humaira228/DeenOasis/internal/domain/cart"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 合并语义靠(user_id, book_id)唯一索引+ON DUPLICATE KEY UPDATE保证,
// 并发加购同一本书不会产生重复行
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// Upsert 加购(原子合并)
// 已存在同一(user_id, book_id)行时数量累加,否则插入新行
func (r *cartRepository) Upsert(ctx context.Context, item *cart.Item) error {
	model := &CartItemModel{
		UserID:   item.UserID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}

	// INSERT ... ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)
	err := getDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", item.Quantity),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "加入购物车失败")
	}

	item.ID = model.ID
	return nil
}

// RemoveByBookID 从购物车移除图书
// 不存在时静默成功,保证删除操作幂等
func (r *cartRepository) RemoveByBookID(ctx context.Context, userID, bookID uint) error {
	err := getDB(ctx, r.db).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&CartItemModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "移除购物车项失败")
	}
	return nil
}

// ListByUserID 查询用户购物车,最近加购在前
func (r *cartRepository) ListByUserID(ctx context.Context, userID uint) ([]*cart.Item, error) {
	var models []CartItemModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	items := make([]*cart.Item, len(models))
	for i := range models {
		items[i] = toCartItemEntity(&models[i])
	}
	return items, nil
}

// ClearByUserID 清空用户购物车
// 下单事务内调用,通过getDB参与事务
func (r *cartRepository) ClearByUserID(ctx context.Context, userID uint) error {
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Delete(&CartItemModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

// toCartItemEntity GORM模型 → 领域实体
func toCartItemEntity(model *CartItemModel) *cart.Item {
	return &cart.Item{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
