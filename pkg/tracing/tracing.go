// Package tracing 提供基于OpenTelemetry的分布式追踪
//
// 核心概念：
// - Trace（追踪）：一个完整的请求链路（如一次下单的全过程）
// - Span（跨度）：一个操作单元（如扣减库存、发布消息）
// - SpanContext：跨服务传递的元数据（TraceID/SpanID/ParentSpanID）
//
// 使用方式：
//
//	shutdown, err := tracing.InitTracer("bookstore-api", "localhost:4317")
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "order", "PlaceOrder")
//	defer span.End()
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - endpoint: OTLP gRPC端点（如 localhost:4317）
//
// 返回关闭函数，程序退出前调用，确保最后一批Span被刷新。
//
// 设计要点：
// 1. 使用OTLP协议而非Jaeger原生协议（厂商中立，可切换Zipkin/Datadog）
// 2. 采样策略：AlwaysSample适合开发环境，
//    生产环境建议sdktrace.TraceIDRatioBased(0.01)
// 3. BatchSpanProcessor批量发送Span（默认每2秒或512个发送一次）
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. 创建OTLP gRPC Exporter
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Resource（服务标识属性，附加到所有Span）
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. 创建Tracer Provider
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 4. 设置全局TracerProvider
	// 业务代码无需传递Provider，直接用otel.Tracer()获取
	otel.SetTracerProvider(tp)

	// 5. 设置上下文传播器
	// W3C Trace Context（traceparent头）+ Baggage（自定义键值对）
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 如果ctx包含父Span，新Span自动成为子Span；否则成为根Span。
// 必须使用返回的ctx调用下游函数，否则无法构建调用树。
//
// Span命名用操作名（PlaceOrder、SearchBooks），
// 动态值放属性：span.SetAttributes(attribute.Int("user_id", 123))
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于在日志中关联追踪）
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
