package cart

import (
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrInvalidQuantity 加购数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "加购数量必须大于0")
)
