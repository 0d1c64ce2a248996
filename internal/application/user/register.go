package user

import (
	"context"

	"github.com/humaira228/DeenOasis/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 设计说明:
// 1. Application层负责用例编排,领域规则(唯一性、密码强度)在领域服务中
// 2. 注册成功后不自动登录,客户端需再调用登录接口
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
	}
}

// Execute 执行注册
// 返回:RegisterResponse(应用层DTO,不是领域实体)
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	// 1. 调用领域服务执行注册
	u, err := uc.userService.Register(ctx, req.Username, req.Email, req.Contact, req.Password, req.Address)
	if err != nil {
		return nil, err
	}

	// 2. 领域实体 → 应用层DTO
	// 不直接返回领域实体,领域模型变更不影响API契约
	return &RegisterResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Contact:  u.Contact,
		Address:  u.Address,
		Role:     string(u.Role),
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Email    string
	Contact  string
	Password string
	Address  string
}

// RegisterResponse 注册响应(不返回密码字段)
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}
