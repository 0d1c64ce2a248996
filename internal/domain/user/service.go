package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, username, email, contact, password, address string) (*User, error)

	// Login 用户登录(邮箱+密码)
	Login(ctx context.Context, email, password string) (*User, error)

	// GetByID 查询用户信息
	GetByID(ctx context.Context, id uint) (*User, error)

	// UpdateAddress 更新收货地址
	UpdateAddress(ctx context.Context, id uint, address string) (*User, error)

	// ChangePassword 修改密码(需验证旧密码)
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 业务规则：
// 1. 用户名2-50个字符
// 2. 邮箱格式校验
// 3. 联系电话为11位数字
// 4. 密码强度校验（8-20位，包含字母和数字）
// 5. 密码bcrypt加密（cost=12）
// 6. 用户名/邮箱/电话唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, username, email, contact, password, address string) (*User, error) {
	// 1. 用户名校验
	if len(username) < 2 || len(username) > 50 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "用户名长度应为2-50个字符")
	}

	// 2. 邮箱格式校验
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	// 3. 联系电话校验
	if !isValidContact(contact) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "联系电话必须是11位数字")
	}

	// 4. 密码强度校验
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	// 5. 密码加密
	// bcrypt自动加盐，每次加密结果都不同（即使密码相同）
	// cost=12是推荐值，平衡安全性与性能
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 6. 创建用户实体
	u := NewUser(username, email, contact, string(hashedPassword), address)

	// 7. 持久化到数据库
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return u, nil
}

// Login 用户登录
// 业务规则：
// 1. 邮箱必须存在
// 2. 密码必须正确
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	// 1. 根据邮箱查找用户
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err // Repository已转换为ErrUserNotFound
	}

	// 2. 验证密码
	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err // 返回ErrInvalidPassword
	}

	return u, nil
}

// GetByID 查询用户信息
func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateAddress 更新收货地址
func (s *service) UpdateAddress(ctx context.Context, id uint, address string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.UpdateAddress(address)

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword 修改密码
// 业务规则：
// 1. 旧密码必须正确
// 2. 新密码必须满足强度要求
func (s *service) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 1. 验证旧密码
	if err := s.ValidatePassword(u.Password, oldPassword); err != nil {
		return err
	}

	// 2. 新密码强度校验
	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	// 3. 加密并更新
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return apperrors.Wrap(err, "密码加密失败")
	}
	u.ChangePassword(string(hashedPassword))

	return s.repo.Update(ctx, u)
}

// ValidatePassword 验证密码
// 说明：登录时使用，验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

// isValidEmail 邮箱格式校验
// 简单的正则校验，生产环境可使用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// isValidContact 联系电话校验：11位数字
func isValidContact(contact string) bool {
	matched, _ := regexp.MatchString(`^[0-9]{11}$`, contact)
	return matched
}

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}

	return nil
}
