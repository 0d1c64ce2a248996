package order

import (
	"context"
	"fmt"
	"time"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	"github.com/humaira228/DeenOasis/internal/domain/cart"
	"github.com/humaira228/DeenOasis/internal/domain/order"
	"github.com/humaira228/DeenOasis/internal/infrastructure/persistence/mysql"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
	"github.com/humaira228/DeenOasis/pkg/logger"
	"github.com/humaira228/DeenOasis/pkg/metrics"
	"github.com/humaira228/DeenOasis/pkg/mq"
	"github.com/humaira228/DeenOasis/pkg/saga"
	"github.com/humaira228/DeenOasis/pkg/tracing"
)

// 下单Saga整体超时时间
const placeOrderTimeout = 30 * time.Second

// PlaceOrderUseCase 下单用例(整个系统最核心的用例)
//
// 流程编排(Saga):
//
//	步骤1 创建订单:本地事务内锁定库存→校验→扣减→订单落库
//	       补偿:取消订单并恢复库存(幂等,已取消则跳过)
//	步骤2 清空购物车:失败时触发步骤1补偿
//
// 订单落库后,尽最大努力发布order.placed事件到RabbitMQ,
// 发布失败不回滚订单(消息属于通知性质,非事务的一部分)
type PlaceOrderUseCase struct {
	orderRepo   order.Repository
	bookRepo    book.Repository
	cartManager cart.Manager
	txManager   *mysql.TxManager
	publisher   *mq.Publisher
}

// NewPlaceOrderUseCase 创建下单用例
// publisher可以为nil(测试环境或MQ未部署)
func NewPlaceOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	cartManager cart.Manager,
	txManager *mysql.TxManager,
	publisher *mq.Publisher,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orderRepo:   orderRepo,
		bookRepo:    bookRepo,
		cartManager: cartManager,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// PlaceOrderRequest 下单请求DTO
// 订单明细来自用户购物车,不由前端传递(防止改价攻击)
type PlaceOrderRequest struct {
	UserID         uint   // 买家用户ID(从JWT中提取)
	Delivery       string // 配送范围:inside | outside
	RentalDuration int    // 租期(天):7/10/20
}

// PlaceOrderResponse 下单响应DTO
type PlaceOrderResponse struct {
	OrderID   uint   `json:"order_id"`
	OrderNo   string `json:"order_no"`
	Total     int64  `json:"total"` // 总价(分)
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// OrderPlacedEvent order.placed事件载荷
type OrderPlacedEvent struct {
	OrderID  uint   `json:"order_id"`
	OrderNo  string `json:"order_no"`
	UserID   uint   `json:"user_id"`
	Total    int64  `json:"total"`
	PlacedAt string `json:"placed_at"`
}

// Execute 执行下单
//
// 防止超卖的关键:SELECT FOR UPDATE锁定图书行后再校验库存,
// 并发下单同一本书时后到的事务必须等待前一个COMMIT
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "application/order", "PlaceOrder")
	defer span.End()

	start := time.Now()

	// 1. 读取购物车,空购物车不允许下单
	items, err := uc.cartManager.ListItems(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	// 2. 编排Saga
	var placed *order.Order

	s := saga.NewSaga(placeOrderTimeout)
	s.AddStep("创建订单", uc.createOrderAction(req, items, &placed), uc.cancelOrderCompensate(&placed))
	s.AddStep("清空购物车", func(ctx context.Context) error {
		return uc.cartManager.Clear(ctx, req.UserID)
	}, nil)

	if err := s.Execute(ctx); err != nil {
		recordOrderFailure()
		return nil, err
	}

	recordOrderSuccess(time.Since(start))

	// 3. 发布order.placed事件(尽最大努力)
	uc.publishOrderPlaced(ctx, placed)

	return &PlaceOrderResponse{
		OrderID:   placed.ID,
		OrderNo:   placed.OrderNo,
		Total:     placed.Total,
		Status:    string(placed.Status),
		CreatedAt: placed.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// createOrderAction 步骤1:本地事务内创建订单并扣减库存
func (uc *PlaceOrderUseCase) createOrderAction(req PlaceOrderRequest, items []*cart.Item, placed **order.Order) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
			// 锁定库存(悲观锁,防止并发超卖)
			// LockByID执行:SELECT * FROM books WHERE id = ? FOR UPDATE
			bookMap := make(map[uint]*book.Book, len(items))
			for _, item := range items {
				b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
				if err != nil {
					return err
				}

				// 必须在锁定后校验,否则并发扣减会导致超卖
				if b.Stock < item.Quantity {
					return fmt.Errorf("图书《%s》库存不足,当前库存:%d,需要:%d: %w",
						b.Title, b.Stock, item.Quantity, book.ErrInsufficientStock)
				}

				bookMap[item.BookID] = b
			}

			// 计算订单金额,使用锁定时的数据库价格(防止改价攻击)
			var total int64
			orderItems := make([]order.Item, len(items))
			for i, item := range items {
				b := bookMap[item.BookID]
				orderItems[i] = order.Item{
					BookID:   item.BookID,
					Quantity: item.Quantity,
					Price:    b.Price,
				}
				total += b.Price * int64(item.Quantity)
			}

			// 创建订单(校验配送范围与租期)
			newOrder, err := order.NewOrder(
				order.GenerateOrderNo(),
				req.UserID,
				orderItems,
				order.Delivery(req.Delivery),
				req.RentalDuration,
				total,
			)
			if err != nil {
				return err
			}

			if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
				return err
			}

			// 扣减库存(原子操作,WHERE stock + ? >= 0兜底)
			for _, item := range items {
				if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, -item.Quantity); err != nil {
					return err
				}
			}

			*placed = newOrder
			return nil
		})
	}
}

// cancelOrderCompensate 步骤1补偿:取消订单并恢复库存
// 幂等:订单已取消时直接返回,不重复恢复库存
func (uc *PlaceOrderUseCase) cancelOrderCompensate(placed **order.Order) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if *placed == nil {
			// 事务未提交,无需补偿
			return nil
		}

		recordCompensation()

		return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
			o, err := uc.orderRepo.FindByID(txCtx, (*placed).ID)
			if err != nil {
				return err
			}

			if o.Status == order.StatusCanceled {
				return nil
			}

			if err := o.Cancel(); err != nil {
				return err
			}
			if err := uc.orderRepo.Update(txCtx, o); err != nil {
				return err
			}

			// 恢复库存
			for _, item := range o.Items {
				if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, item.Quantity); err != nil {
					return err
				}
			}

			return nil
		})
	}
}

// publishOrderPlaced 发布order.placed事件
// 发布失败只记录日志,订单已经落库,不能因消息失败回滚
func (uc *PlaceOrderUseCase) publishOrderPlaced(ctx context.Context, o *order.Order) {
	if uc.publisher == nil {
		return
	}

	event := OrderPlacedEvent{
		OrderID:  o.ID,
		OrderNo:  o.OrderNo,
		UserID:   o.UserID,
		Total:    o.Total,
		PlacedAt: o.CreatedAt.Format(time.RFC3339),
	}

	if err := uc.publisher.Publish(ctx, "order.placed", event); err != nil {
		logger.Get().Error().
			Err(err).
			Str("order_no", o.OrderNo).
			Msg("发布order.placed事件失败")
	}
}

// =========================================
// 指标上报(未初始化时跳过,单元测试场景)
// =========================================

func recordOrderSuccess(elapsed time.Duration) {
	if metrics.OrdersPlacedTotal == nil {
		return
	}
	metrics.OrdersPlacedTotal.Inc()
	metrics.OrderPlacementDuration.Observe(elapsed.Seconds())
	metrics.SagaExecutionsTotal.WithLabelValues("success").Inc()
}

func recordOrderFailure() {
	if metrics.OrdersFailedTotal == nil {
		return
	}
	metrics.OrdersFailedTotal.Inc()
	metrics.SagaExecutionsTotal.WithLabelValues("failure").Inc()
}

func recordCompensation() {
	if metrics.SagaCompensationsTotal != nil {
		metrics.SagaCompensationsTotal.Inc()
	}
}
