package dto

// PlaceOrderRequest 下单请求
// 订单明细来自购物车,前端只传配送范围和租期
type PlaceOrderRequest struct {
	Delivery       string `json:"delivery" binding:"required,oneof=inside outside" example:"inside"`
	RentalDuration int    `json:"rental_duration" binding:"required" example:"7"` // 7/10/20
}

// UpdateOrderStatusRequest 订单状态更新请求(管理员)
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Out for Delivery"`
}

// OrderListQuery 订单列表查询参数
type OrderListQuery struct {
	Page     int `form:"page" example:"1"`
	PageSize int `form:"page_size" example:"20"`
}
