package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/humaira228/DeenOasis/internal/application/cart"
	"github.com/humaira228/DeenOasis/internal/interface/http/dto"
	"github.com/humaira228/DeenOasis/internal/interface/http/middleware"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
	"github.com/humaira228/DeenOasis/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 所有接口都要求登录,用户ID从JWT中提取而非请求参数
type CartHandler struct {
	cartUseCase *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.CartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// AddToCart 加入购物车
// @Summary      加入购物车
// @Description  重复加购同一本书时数量合并;省略quantity时默认为1
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddToCartRequest true "加购信息"
// @Success      200 {object} response.Response "加购成功"
// @Failure      400 {object} response.Response "数量非法"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/add-to-cart [put]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	// 省略quantity时默认加购1本
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	userID := middleware.GetUserID(c)
	if err := h.cartUseCase.AddItem(c.Request.Context(), userID, req.BookID, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "已加入购物车", nil)
}

// RemoveFromCart 从购物车移除图书
// @Summary      从购物车移除图书
// @Description  移除整个条目(不是减一),条目不存在时同样返回成功
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response "移除成功"
// @Router       /api/v1/remove-from-cart/{bookId} [put]
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	bookID, err := parseUintParam(c, "bookId")
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的图书ID")
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.cartUseCase.RemoveItem(c.Request.Context(), userID, bookID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "已从购物车移除", nil)
}

// GetUserCart 查询购物车
// @Summary      查询购物车
// @Description  返回条目及图书数据,最近加购在前;已下架图书标记不可购买
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Router       /api/v1/get-user-cart [get]
func (h *CartHandler) GetUserCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	result, err := h.cartUseCase.GetCart(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
