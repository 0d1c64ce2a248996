package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/humaira228/DeenOasis/internal/domain/user"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
)

// userRepository 用户仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如邮箱重复），转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 用户名/邮箱/电话的唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT），
// 捕获Duplicate Entry错误后根据冲突的索引转换为对应业务错误
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	// 1. 领域实体 → GORM模型
	model := &UserModel{
		Username: u.Username,
		Email:    u.Email,
		Contact:  u.Contact,
		Password: u.Password,
		Address:  u.Address,
		Role:     string(u.Role),
	}

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return duplicateUserError(err)
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	// 3. 回填自增ID（GORM自动填充）
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// FindByUsername 根据用户名查找用户
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// FindByIDs 批量查找用户
// 用一条IN查询避免N+1,返回map便于按ID关联
func (r *userRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	result := make(map[uint]*user.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询用户失败")
	}

	for i := range models {
		result[models[i].ID] = toUserEntity(&models[i])
	}
	return result, nil
}

// Update 更新用户信息
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := &UserModel{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Contact:  u.Contact,
		Password: u.Password,
		Address:  u.Address,
		Role:     string(u.Role),
	}

	// 使用Save更新所有字段
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return duplicateUserError(err)
		}
		return apperrors.Wrap(err, "更新用户失败")
	}

	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除用户（软删除）
// 订单记录不级联删除(弱引用,保留审计)
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&UserModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除用户失败")
	}

	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// =========================================
// 辅助函数：模型转换
// =========================================

// toUserEntity GORM模型 → 领域实体
// Repository的重要职责之一，隔离infrastructure层与domain层
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Username:  model.Username,
		Email:     model.Email,
		Contact:   model.Contact,
		Password:  model.Password,
		Address:   model.Address,
		Role:      user.Role(model.Role),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// duplicateUserError 根据冲突的唯一索引判断是哪个字段重复
// MySQL错误信息形如:Duplicate entry 'x' for key 'users.idx_users_email'
func duplicateUserError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return apperrors.ErrEmailDuplicate
	case strings.Contains(msg, "username"):
		return apperrors.ErrUsernameDuplicate
	case strings.Contains(msg, "contact"):
		return apperrors.ErrContactDuplicate
	default:
		return apperrors.ErrUsernameDuplicate
	}
}
