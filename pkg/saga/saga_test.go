package saga

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestSaga_Execute_Success 测试所有步骤成功的场景
func TestSaga_Execute_Success(t *testing.T) {
	executed := make([]string, 0)

	saga := NewSaga(5 * time.Second)

	// 步骤1：创建订单
	saga.AddStep("创建订单",
		func(ctx context.Context) error {
			executed = append(executed, "创建订单")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "取消订单")
			return nil
		},
	)

	// 步骤2：清空购物车（最后一步无需补偿）
	saga.AddStep("清空购物车",
		func(ctx context.Context) error {
			executed = append(executed, "清空购物车")
			return nil
		},
		nil,
	)

	err := saga.Execute(context.Background())
	if err != nil {
		t.Fatalf("Saga执行失败: %v", err)
	}

	// 验证执行顺序
	if len(executed) != 2 {
		t.Errorf("期望执行2个步骤，实际执行%d个", len(executed))
	}

	if executed[0] != "创建订单" || executed[1] != "清空购物车" {
		t.Errorf("执行顺序错误: %v", executed)
	}
}

// TestSaga_Execute_FailureAndCompensate 测试步骤失败触发补偿
func TestSaga_Execute_FailureAndCompensate(t *testing.T) {
	executed := make([]string, 0)

	saga := NewSaga(5 * time.Second)

	// 步骤1：扣减库存（成功）
	saga.AddStep("扣减库存",
		func(ctx context.Context) error {
			executed = append(executed, "扣减库存")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "恢复库存")
			return nil
		},
	)

	// 步骤2：创建订单（成功）
	saga.AddStep("创建订单",
		func(ctx context.Context) error {
			executed = append(executed, "创建订单")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "取消订单")
			return nil
		},
	)

	// 步骤3：清空购物车（失败）
	saga.AddStep("清空购物车",
		func(ctx context.Context) error {
			executed = append(executed, "清空购物车")
			return errors.New("购物车服务不可用") // 模拟失败
		},
		nil,
	)

	err := saga.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga应该失败但返回成功")
	}

	// 验证执行顺序：正向3步 + 补偿2步（逆序）
	// 期望：扣减库存 → 创建订单 → 清空购物车（失败） → 取消订单 → 恢复库存
	expected := []string{"扣减库存", "创建订单", "清空购物车", "取消订单", "恢复库存"}

	if len(executed) != len(expected) {
		t.Errorf("期望执行%d个步骤，实际执行%d个: %v", len(expected), len(executed), executed)
	}

	for i, step := range expected {
		if executed[i] != step {
			t.Errorf("步骤%d期望'%s'，实际'%s'", i, step, executed[i])
		}
	}
}

// TestSaga_Execute_Timeout 测试超时触发补偿
func TestSaga_Execute_Timeout(t *testing.T) {
	executed := make([]string, 0)

	saga := NewSaga(100 * time.Millisecond)

	// 步骤1：快速执行
	saga.AddStep("创建订单",
		func(ctx context.Context) error {
			executed = append(executed, "创建订单")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "取消订单")
			return nil
		},
	)

	// 步骤2：慢速执行（超过超时时间）
	saga.AddStep("清空购物车",
		func(ctx context.Context) error {
			select {
			case <-time.After(200 * time.Millisecond):
				executed = append(executed, "清空购物车")
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		nil,
	)

	err := saga.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga应该超时但返回成功")
	}

	// 验证触发了补偿
	if len(executed) < 2 {
		t.Errorf("超时后应该触发补偿，实际执行: %v", executed)
	}

	if executed[len(executed)-1] != "取消订单" {
		t.Errorf("期望最后一步是补偿，实际: %v", executed)
	}
}

// TestSaga_CompensateIdempotency 测试补偿的幂等性
func TestSaga_CompensateIdempotency(t *testing.T) {
	compensateLog := make(map[string]bool)

	// 幂等的补偿函数：按订单号记录幂等键
	createIdempotentCompensate := func(orderNo string) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			idempotencyKey := "compensate-order-" + orderNo

			if compensateLog[idempotencyKey] {
				// 已执行过，直接返回成功
				return nil
			}

			compensateLog[idempotencyKey] = true
			return nil
		}
	}

	saga := NewSaga(5 * time.Second)
	saga.AddStep("创建订单",
		func(ctx context.Context) error {
			return nil
		},
		createIdempotentCompensate("ORD20260829001"),
	)

	// 第一次执行补偿
	saga.executed = saga.steps
	saga.compensate(context.Background())

	if len(compensateLog) != 1 {
		t.Errorf("期望记录1条幂等日志，实际%d条", len(compensateLog))
	}

	// 第二次执行补偿（模拟重试）
	saga.executed = saga.steps
	saga.compensate(context.Background())

	if len(compensateLog) != 1 {
		t.Errorf("幂等性失败：期望记录1条日志，实际%d条", len(compensateLog))
	}
}
