package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查找图书(用于购物车/订单明细的图书数据解析)
	// 返回map便于按ID关联,缺失的ID不报错,由调用方决定如何处理
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表,最新上架在前
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListRecent 查询最近上架的图书(首页展示,结果会被Redis缓存)
	ListRecent(ctx context.Context, limit int) ([]*Book, error)

	// SearchCandidates 搜索候选集查询
	// 命中条件:title/author/language包含q(大小写不敏感),
	// 或音译字段包含t。打分和排序由search.Engine完成
	SearchCandidates(ctx context.Context, q, t string) ([]*Book, error)

	// LockByID 悲观锁查询图书(用于订单创建时锁定库存)
	// 使用SELECT FOR UPDATE锁定行,防止并发超卖
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 更新库存(原子操作)
	// delta为正数表示增加,负数表示减少
	// 内部会检查库存是否充足,不足则返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int // 页码(从1开始)
	PageSize int // 每页数量
}
