package handler

import (
	"github.com/gin-gonic/gin"

	appfavourite "github.com/humaira228/DeenOasis/internal/application/favourite"
	"github.com/humaira228/DeenOasis/internal/interface/http/dto"
	"github.com/humaira228/DeenOasis/internal/interface/http/middleware"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
	"github.com/humaira228/DeenOasis/pkg/response"
)

// FavouriteHandler 收藏HTTP处理器
type FavouriteHandler struct {
	favouriteUseCase *appfavourite.FavouriteUseCase
}

// NewFavouriteHandler 创建收藏处理器
func NewFavouriteHandler(favouriteUseCase *appfavourite.FavouriteUseCase) *FavouriteHandler {
	return &FavouriteHandler{favouriteUseCase: favouriteUseCase}
}

// AddFavourite 收藏图书
// @Summary      收藏图书
// @Description  重复收藏同一本书不会产生重复条目
// @Tags         收藏
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.FavouriteRequest true "收藏信息"
// @Success      200 {object} response.Response "收藏成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/favourites [post]
func (h *FavouriteHandler) AddFavourite(c *gin.Context) {
	var req dto.FavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.favouriteUseCase.Add(c.Request.Context(), userID, req.BookID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "已收藏", nil)
}

// RemoveFavourite 取消收藏
// @Summary      取消收藏
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response "取消成功"
// @Router       /api/v1/favourites/{bookId} [delete]
func (h *FavouriteHandler) RemoveFavourite(c *gin.Context) {
	bookID, err := parseUintParam(c, "bookId")
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的图书ID")
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.favouriteUseCase.Remove(c.Request.Context(), userID, bookID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "已取消收藏", nil)
}

// ListFavourites 查询收藏列表
// @Summary      查询收藏列表
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appfavourite.FavouriteView}
// @Router       /api/v1/favourites [get]
func (h *FavouriteHandler) ListFavourites(c *gin.Context) {
	userID := middleware.GetUserID(c)

	result, err := h.favouriteUseCase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
