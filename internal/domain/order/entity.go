package order

import (
	"time"
)

// Status 订单状态
// 设计说明:
// 1. 状态值直接使用对外展示的字符串(与API响应一致,避免映射表)
// 2. 定义为类型别名,便于添加状态机方法
type Status string

const (
	StatusPlaced         Status = "Order Placed"     // 已下单
	StatusOutForDelivery Status = "Out for Delivery" // 配送中
	StatusDelivered      Status = "Delivered"        // 已送达(终态)
	StatusCanceled       Status = "Canceled"         // 已取消(终态)
)

// IsValid 校验状态值合法性
func (s Status) IsValid() bool {
	switch s {
	case StatusPlaced, StatusOutForDelivery, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal 是否为终态
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// Delivery 配送范围
type Delivery string

const (
	DeliveryInside  Delivery = "inside"  // 同城配送
	DeliveryOutside Delivery = "outside" // 跨城配送
)

// IsValid 校验配送范围合法性
func (d Delivery) IsValid() bool {
	return d == DeliveryInside || d == DeliveryOutside
}

// validRentalDurations 允许的租期(天)
var validRentalDurations = map[int]bool{7: true, 10: true, 20: true}

// IsValidRentalDuration 校验租期合法性
func IsValidRentalDuration(days int) bool {
	return validRentalDurations[days]
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,Item是子实体
// 2. 创建后UserID和Items不可变,只有Status可流转
// 3. Total价格冗余存储(下单时快照,防止后续改价影响历史订单)
type Order struct {
	ID             uint
	OrderNo        string   // 订单号(业务主键,全局唯一)
	UserID         uint     // 买家用户ID(创建后不可变)
	Delivery       Delivery // 配送范围
	RentalDuration int      // 租期(天):7/10/20
	Total          int64    // 订单总金额(分),冗余字段
	Status         Status   // 订单状态
	Items          []Item   // 订单明细(创建后不可变)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Item 订单明细项
// 设计说明:
// 1. 不是独立聚合根,必须通过Order访问
// 2. Price字段记录"下单时的价格"(历史价格快照)
// 3. 不直接关联Book对象,只保存BookID(避免跨聚合引用)
type Item struct {
	ID       uint
	OrderID  uint  // 所属订单ID
	BookID   uint  // 图书ID
	Quantity int   // 购买数量(>=1)
	Price    int64 // 下单时的单价(分)
}

// NewOrder 创建新订单(工厂方法)
// 业务规则:
// - items非空(空明细返回ErrEmptyItems)
// - 每项quantity>=1
// - delivery ∈ {inside, outside}
// - rentalDuration ∈ {7, 10, 20}
// - 初始状态为"Order Placed"
func NewOrder(orderNo string, userID uint, items []Item, delivery Delivery, rentalDuration int, total int64) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}
	if !delivery.IsValid() {
		return nil, ErrInvalidDelivery
	}
	if !IsValidRentalDuration(rentalDuration) {
		return nil, ErrInvalidRentalDuration
	}
	if total < 0 {
		return nil, ErrInvalidTotal
	}

	now := time.Now()
	return &Order{
		OrderNo:        orderNo,
		UserID:         userID,
		Delivery:       delivery,
		RentalDuration: rentalDuration,
		Total:          total,
		Status:         StatusPlaced,
		Items:          items,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// CanTransitionTo 检查是否可以转换到目标状态
// 状态机只允许前向流转,防止非法状态跳转:
// Order Placed → Out for Delivery → Delivered
// Canceled只能从非终态到达;Delivered/Canceled是终态
func (o *Order) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusPlaced:         {StatusOutForDelivery, StatusCanceled},
		StatusOutForDelivery: {StatusDelivered, StatusCanceled},
		StatusDelivered:      {}, // 终态
		StatusCanceled:       {}, // 终态
	}

	allowedTargets, exists := transitions[o.Status]
	if !exists {
		return false
	}

	for _, allowed := range allowedTargets {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换
// 先检查合法性,转换成功更新UpdatedAt(审计追踪)
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel 取消订单(领域行为,Saga补偿时使用)
func (o *Order) Cancel() error {
	return o.TransitionTo(StatusCanceled)
}

// CalculateTotal 计算订单总金额
// 用于创建订单时校验调用方传递的total
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
