package dto

// RegisterRequest 注册请求
// binding tag负责格式校验,业务规则(唯一性、密码强度)在领域服务中
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50" example:"humaira"`
	Email    string `json:"email" binding:"required,email" example:"humaira@example.com"`
	Contact  string `json:"contact" binding:"required,len=11" example:"01712345678"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"passw0rd123"`
	Address  string `json:"address" binding:"max=255" example:"Dhanmondi, Dhaka"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"humaira@example.com"`
	Password string `json:"password" binding:"required" example:"passw0rd123"`
}

// UpdateAddressRequest 更新收货地址请求
type UpdateAddressRequest struct {
	Address string `json:"address" binding:"required,max=255" example:"Gulshan, Dhaka"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=20"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"` // Access Token过期时间(秒)
}
