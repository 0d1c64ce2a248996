package order

import (
	"context"
	"time"

	"github.com/humaira228/DeenOasis/internal/domain/order"
	"github.com/humaira228/DeenOasis/pkg/logger"
	"github.com/humaira228/DeenOasis/pkg/mq"
)

// UpdateStatusUseCase 订单状态更新用例(管理员)
// 状态机校验在领域实体中:只允许前向流转,终态不可变更
type UpdateStatusUseCase struct {
	orderRepo order.Repository
	publisher *mq.Publisher
}

// NewUpdateStatusUseCase 创建状态更新用例
// publisher可以为nil(测试环境或MQ未部署)
func NewUpdateStatusUseCase(orderRepo order.Repository, publisher *mq.Publisher) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderRepo: orderRepo, publisher: publisher}
}

// OrderStatusChangedEvent order.status_changed事件载荷
type OrderStatusChangedEvent struct {
	OrderID   uint   `json:"order_id"`
	OrderNo   string `json:"order_no"`
	UserID    uint   `json:"user_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedAt string `json:"changed_at"`
}

// UpdateStatusRequest 状态更新请求DTO
type UpdateStatusRequest struct {
	OrderID  uint
	Status   string // 目标状态
	Operator uint   // 操作人用户ID(审计日志用)
}

// Execute 执行状态更新
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*OrderView, error) {
	// 1. 查找订单
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	// 2. 状态机流转(非法状态/非法流转由领域实体拒绝)
	from := o.Status
	if err := o.TransitionTo(order.Status(req.Status)); err != nil {
		return nil, err
	}

	// 3. 持久化
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	logger.Get().Info().
		Uint("order_id", o.ID).
		Str("from", string(from)).
		Str("to", string(o.Status)).
		Uint("operator", req.Operator).
		Msg("订单状态更新")

	// 4. 发布order.status_changed事件(尽最大努力,失败不回滚状态)
	uc.publishStatusChanged(ctx, o, from)

	return &OrderView{
		ID:             o.ID,
		OrderNo:        o.OrderNo,
		UserID:         o.UserID,
		Delivery:       string(o.Delivery),
		RentalDuration: o.RentalDuration,
		Total:          o.Total,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// publishStatusChanged 发布order.status_changed事件
// 发布失败只记录日志,状态已经落库
func (uc *UpdateStatusUseCase) publishStatusChanged(ctx context.Context, o *order.Order, from order.Status) {
	if uc.publisher == nil {
		return
	}

	event := OrderStatusChangedEvent{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		From:      string(from),
		To:        string(o.Status),
		ChangedAt: time.Now().Format(time.RFC3339),
	}

	if err := uc.publisher.Publish(ctx, "order.status_changed", event); err != nil {
		logger.Get().Error().
			Err(err).
			Str("order_no", o.OrderNo).
			Msg("发布order.status_changed事件失败")
	}
}
