package favourite

import (
	"context"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	"github.com/humaira228/DeenOasis/internal/domain/favourite"
)

// FavouriteUseCase 收藏用例
// 设计说明:集合语义(重复添加/删除均幂等)由仓储层保证,
// 用例层负责图书存在性检查与数据解析
type FavouriteUseCase struct {
	favouriteRepo favourite.Repository
	bookRepo      book.Repository
}

// NewFavouriteUseCase 创建收藏用例
func NewFavouriteUseCase(favouriteRepo favourite.Repository, bookRepo book.Repository) *FavouriteUseCase {
	return &FavouriteUseCase{
		favouriteRepo: favouriteRepo,
		bookRepo:      bookRepo,
	}
}

// FavouriteView 收藏条目DTO
type FavouriteView struct {
	BookID  uint   `json:"book_id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	URL     string `json:"url"`
	Price   int64  `json:"price"` // 价格(分)
	AddedAt string `json:"added_at"`
}

// Add 收藏图书
func (uc *FavouriteUseCase) Add(ctx context.Context, userID, bookID uint) error {
	// 图书必须存在才能收藏
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return err
	}
	return uc.favouriteRepo.Add(ctx, userID, bookID)
}

// Remove 取消收藏(幂等)
func (uc *FavouriteUseCase) Remove(ctx context.Context, userID, bookID uint) error {
	return uc.favouriteRepo.Remove(ctx, userID, bookID)
}

// List 查询收藏列表(含图书数据解析)
func (uc *FavouriteUseCase) List(ctx context.Context, userID uint) ([]FavouriteView, error) {
	favourites, err := uc.favouriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(favourites) == 0 {
		return []FavouriteView{}, nil
	}

	ids := make([]uint, len(favourites))
	for i, f := range favourites {
		ids[i] = f.BookID
	}

	bookMap, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 已下架图书不再展示
	views := make([]FavouriteView, 0, len(favourites))
	for _, f := range favourites {
		b, ok := bookMap[f.BookID]
		if !ok {
			continue
		}
		views = append(views, FavouriteView{
			BookID:  f.BookID,
			Title:   b.Title,
			Author:  b.Author,
			URL:     b.URL,
			Price:   b.Price,
			AddedAt: f.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return views, nil
}
