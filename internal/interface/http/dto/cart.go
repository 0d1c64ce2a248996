package dto

// AddToCartRequest 加购请求
// 重复加购同一本书时数量合并;省略quantity时默认为1
type AddToCartRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"omitempty,min=1" example:"2"`
}

// FavouriteRequest 收藏/取消收藏请求
type FavouriteRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
}
