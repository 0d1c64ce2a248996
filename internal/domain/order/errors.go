package order

import (
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidStatus 未定义的订单状态
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "未定义的订单状态")

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态不允许此操作")

	// ErrEmptyItems 订单明细为空
	ErrEmptyItems = apperrors.New(apperrors.ErrCodeEmptyCart, "订单明细不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidDelivery 配送范围不合法
	ErrInvalidDelivery = apperrors.New(apperrors.ErrCodeInvalidParams, "配送范围必须是inside或outside")

	// ErrInvalidRentalDuration 租期不合法
	ErrInvalidRentalDuration = apperrors.New(apperrors.ErrCodeInvalidParams, "租期必须是7、10或20天")

	// ErrInvalidTotal 订单金额不合法
	ErrInvalidTotal = apperrors.New(apperrors.ErrCodeInvalidParams, "订单金额不能为负数")
)
