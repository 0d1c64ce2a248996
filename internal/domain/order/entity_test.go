package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, status Status) *Order {
	t.Helper()
	o, err := NewOrder("ORD1699248000123456", 1,
		[]Item{{BookID: 1, Quantity: 1, Price: 1000}},
		DeliveryInside, 7, 1000)
	require.NoError(t, err)
	o.Status = status
	return o
}

// TestNewOrder_Validation 测试工厂方法的业务规则校验
func TestNewOrder_Validation(t *testing.T) {
	items := []Item{{BookID: 1, Quantity: 2, Price: 500}}

	tests := []struct {
		name           string
		items          []Item
		delivery       Delivery
		rentalDuration int
		total          int64
		wantErr        error
	}{
		{"正常创建", items, DeliveryInside, 7, 1000, nil},
		{"空明细", nil, DeliveryInside, 7, 1000, ErrEmptyItems},
		{"数量为0", []Item{{BookID: 1, Quantity: 0, Price: 500}}, DeliveryInside, 7, 0, ErrInvalidQuantity},
		{"非法配送范围", items, Delivery("express"), 7, 1000, ErrInvalidDelivery},
		{"非法租期", items, DeliveryOutside, 15, 1000, ErrInvalidRentalDuration},
		{"负金额", items, DeliveryOutside, 20, -1, ErrInvalidTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrder("ORD1", 1, tt.items, tt.delivery, tt.rentalDuration, tt.total)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, o)
				return
			}
			require.NoError(t, err)
			// 新订单初始状态固定为"Order Placed"
			assert.Equal(t, StatusPlaced, o.Status)
		})
	}
}

// TestOrder_StatusMachine 测试前向状态机
func TestOrder_StatusMachine(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"下单→配送中", StatusPlaced, StatusOutForDelivery, true},
		{"下单→已取消", StatusPlaced, StatusCanceled, true},
		{"配送中→已送达", StatusOutForDelivery, StatusDelivered, true},
		{"配送中→已取消", StatusOutForDelivery, StatusCanceled, true},
		{"下单→已送达(跳级)", StatusPlaced, StatusDelivered, false},
		{"已送达→下单(回退)", StatusDelivered, StatusPlaced, false},
		{"已送达→已取消(终态)", StatusDelivered, StatusCanceled, false},
		{"已取消→配送中(终态)", StatusCanceled, StatusOutForDelivery, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrder(t, tt.from)
			err := o.TransitionTo(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, o.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
				// 转换失败时状态保持不变
				assert.Equal(t, tt.from, o.Status)
			}
		})
	}
}

// TestOrder_TransitionTo_UndefinedStatus 测试未定义状态值
func TestOrder_TransitionTo_UndefinedStatus(t *testing.T) {
	o := newTestOrder(t, StatusPlaced)
	err := o.TransitionTo(Status("Shipped"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, StatusPlaced, o.Status)
}

// TestOrder_CalculateTotal 测试订单金额计算
func TestOrder_CalculateTotal(t *testing.T) {
	o, err := NewOrder("ORD2", 1, []Item{
		{BookID: 1, Quantity: 2, Price: 500},
		{BookID: 2, Quantity: 1, Price: 1200},
	}, DeliveryOutside, 10, 2200)
	require.NoError(t, err)

	assert.Equal(t, int64(2200), o.CalculateTotal())
}

// TestStatus_IsTerminal 测试终态判断
func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPlaced.IsTerminal())
	assert.False(t, StatusOutForDelivery.IsTerminal())
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
}
