// Package saga 实现通用的Saga事务编排
//
// Saga模式核心思想：
// 1. 将跨聚合的长事务拆分为多个本地短事务
// 2. 每个短事务有对应的补偿操作
// 3. 如果某步失败，按逆序执行已完成步骤的补偿操作
//
// 在下单流程中的应用：
// - 步骤1"创建订单"在本地事务中落库，天然持久、可安全重试
// - 步骤2"更新用户聚合"（清空购物车）失败时，补偿操作将订单取消
// - Saga保证"最终一致性"，而非"强一致性"
package saga

import (
	"context"
	"fmt"
	"time"

	"github.com/humaira228/DeenOasis/pkg/logger"
)

// Step 表示Saga中的一个步骤
//
// 设计要点：
// 1. Action是正向操作（如创建订单、清空购物车）
// 2. Compensate是补偿操作（如取消订单），必须幂等（允许重试）
// 3. 最后一步通常无需补偿，Compensate可以为nil
type Step struct {
	Name       string                          // 步骤名称（用于日志和调试）
	Action     func(ctx context.Context) error // 正向操作
	Compensate func(ctx context.Context) error // 补偿操作
}

// Saga 表示一个Saga事务
type Saga struct {
	steps    []Step        // 所有步骤
	executed []Step        // 已执行的步骤（用于补偿）
	timeout  time.Duration // 整体超时时间
}

// NewSaga 创建一个新的Saga事务
//
// 示例：
//
//	s := saga.NewSaga(30 * time.Second)
//	s.AddStep("创建订单", createOrder, cancelOrder)
//	s.AddStep("清空购物车", clearCart, nil)
//	err := s.Execute(ctx)
func NewSaga(timeout time.Duration) *Saga {
	return &Saga{
		steps:   make([]Step, 0),
		timeout: timeout,
	}
}

// AddStep 添加一个Saga步骤
// 步骤顺序很重要：按添加顺序执行，按逆序补偿
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行Saga事务
//
// 执行流程：
// 1. 按顺序执行每个步骤的Action
// 2. 如果某步失败，逆序执行已完成步骤的Compensate
// 3. 超时时同样触发补偿流程
func (s *Saga) Execute(ctx context.Context) error {
	// 创建带超时的Context
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		select {
		case <-ctx.Done():
			// 超时，触发补偿（使用新Context，避免补偿也超时）
			s.compensate(context.Background())
			return fmt.Errorf("saga超时: %w", ctx.Err())
		default:
		}

		// 执行正向操作
		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.compensate(context.Background())
				return fmt.Errorf("步骤[%d:%s]执行失败: %w", i, step.Name, err)
			}
		}

		// 记录已执行的步骤（用于补偿）
		s.executed = append(s.executed, step)
	}

	return nil
}

// compensate 执行补偿流程
//
// 补偿原则：
// 1. 按逆序执行已完成步骤的Compensate
// 2. 即使某个Compensate失败，也继续执行后续补偿（尽最大努力）
// 3. 补偿失败记录日志，留待人工介入
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]

		if step.Compensate != nil {
			if err := step.Compensate(ctx); err != nil {
				// 补偿失败：记录日志，继续执行后续补偿
				logger.Get().Error().
					Err(err).
					Str("step", step.Name).
					Msg("saga补偿失败，需人工介入")
			}
		}
	}

	s.executed = nil
}
