package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/humaira228/DeenOasis/internal/application/order"
	"github.com/humaira228/DeenOasis/internal/interface/http/dto"
	"github.com/humaira228/DeenOasis/internal/interface/http/middleware"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
	"github.com/humaira228/DeenOasis/pkg/response"
)

// OrderHandler 订单HTTP处理器
// 下单/历史查询要求登录,全部订单/状态更新仅管理员
type OrderHandler struct {
	placeOrderUseCase   *apporder.PlaceOrderUseCase
	historyUseCase      *apporder.OrderHistoryUseCase
	updateStatusUseCase *apporder.UpdateStatusUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrderUseCase *apporder.PlaceOrderUseCase,
	historyUseCase *apporder.OrderHistoryUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrderUseCase:   placeOrderUseCase,
		historyUseCase:      historyUseCase,
		updateStatusUseCase: updateStatusUseCase,
	}
}

// PlaceOrder 下单
// @Summary      下单
// @Description  以当前购物车内容创建订单,扣减库存并清空购物车;空购物车不允许下单
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "下单信息"
// @Success      200 {object} response.Response{data=apporder.PlaceOrderResponse}
// @Failure      400 {object} response.Response "购物车为空/库存不足/租期非法"
// @Router       /api/v1/place-order [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	result, err := h.placeOrderUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:         userID,
		Delivery:       req.Delivery,
		RentalDuration: req.RentalDuration,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetOrderHistory 查询订单历史
// @Summary      查询订单历史
// @Description  用户自己的订单,最新下单在前
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码(默认1)"
// @Param        page_size query int false "每页数量(默认20)"
// @Success      200 {object} response.Response{data=apporder.OrderListResponse}
// @Router       /api/v1/get-order-history [get]
func (h *OrderHandler) GetOrderHistory(c *gin.Context) {
	var query dto.OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	result, err := h.historyUseCase.ListByUser(c.Request.Context(), userID, query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetAllOrders 查询全部订单(管理员)
// @Summary      查询全部订单
// @Description  管理员发货视图,最新下单在前
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码(默认1)"
// @Param        page_size query int false "每页数量(默认20)"
// @Success      200 {object} response.Response{data=apporder.OrderListResponse}
// @Failure      403 {object} response.Response "没有操作权限"
// @Router       /api/v1/get-all-orders [get]
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	var query dto.OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.historyUseCase.ListAll(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateStatus 更新订单状态(管理员)
// @Summary      更新订单状态
// @Description  只允许前向流转:Order Placed → Out for Delivery → Delivered;终态不可变更
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.OrderView}
// @Failure      400 {object} response.Response "非法状态流转"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/update-status/{id} [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的订单ID")
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		OrderID:  orderID,
		Status:   req.Status,
		Operator: middleware.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
