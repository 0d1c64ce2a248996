package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/humaira228/DeenOasis/internal/domain/favourite"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
)

// favouriteRepository 收藏仓储实现(MySQL)
// 集合语义:同一(user_id, book_id)只保留一条,重复添加不报错
type favouriteRepository struct {
	db *gorm.DB
}

// NewFavouriteRepository 创建收藏仓储
func NewFavouriteRepository(db *gorm.DB) favourite.Repository {
	return &favouriteRepository{db: db}
}

// Add 添加收藏
// 已收藏时通过ON CONFLICT DO NOTHING静默成功
func (r *favouriteRepository) Add(ctx context.Context, userID, bookID uint) error {
	model := &FavouriteModel{
		UserID: userID,
		BookID: bookID,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoNothing: true,
	}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "添加收藏失败")
	}
	return nil
}

// Remove 取消收藏,未收藏时静默成功
func (r *favouriteRepository) Remove(ctx context.Context, userID, bookID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&FavouriteModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "取消收藏失败")
	}
	return nil
}

// ListByUserID 查询用户收藏,最近收藏在前
func (r *favouriteRepository) ListByUserID(ctx context.Context, userID uint) ([]*favourite.Favourite, error) {
	var models []FavouriteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询收藏列表失败")
	}

	favourites := make([]*favourite.Favourite, len(models))
	for i := range models {
		favourites[i] = &favourite.Favourite{
			ID:        models[i].ID,
			UserID:    models[i].UserID,
			BookID:    models[i].BookID,
			CreatedAt: models[i].CreatedAt,
		}
	}
	return favourites, nil
}
