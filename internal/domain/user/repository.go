package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 这样domain层不依赖任何外部框架（GORM、sqlx等）
// 4. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建用户
	// 用户名/邮箱/电话的唯一性由数据库UNIQUE索引保证,
	// 冲突时返回对应的Duplicate业务错误
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找用户
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername 根据用户名查找用户
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByIDs 批量查找用户(用于管理员订单视图的用户数据解析)
	// 返回map便于按ID关联,缺失的ID不报错,由调用方决定如何处理
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error

	// Delete 删除用户（软删除）
	// 订单记录不级联删除(弱引用,保留审计)
	Delete(ctx context.Context, id uint) error
}
