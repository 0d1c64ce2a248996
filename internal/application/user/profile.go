package user

import (
	"context"

	"github.com/humaira228/DeenOasis/internal/domain/user"
)

// ProfileUseCase 用户资料用例
// 查询资料、更新收货地址、修改密码
type ProfileUseCase struct {
	userService user.Service
}

// NewProfileUseCase 创建资料用例
func NewProfileUseCase(userService user.Service) *ProfileUseCase {
	return &ProfileUseCase{userService: userService}
}

// GetProfile 查询用户资料
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Contact:  u.Contact,
		Address:  u.Address,
		Role:     string(u.Role),
	}, nil
}

// UpdateAddress 更新收货地址
func (uc *ProfileUseCase) UpdateAddress(ctx context.Context, userID uint, address string) (*UserInfo, error) {
	u, err := uc.userService.UpdateAddress(ctx, userID, address)
	if err != nil {
		return nil, err
	}

	return &UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Contact:  u.Contact,
		Address:  u.Address,
		Role:     string(u.Role),
	}, nil
}

// ChangePassword 修改密码
// 旧密码验证与新密码强度校验在领域服务中完成
func (uc *ProfileUseCase) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	return uc.userService.ChangePassword(ctx, userID, oldPassword, newPassword)
}
