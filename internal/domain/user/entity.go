package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleUser  Role = "user"  // 普通用户
	RoleAdmin Role = "admin" // 管理员
)

// IsValid 校验角色合法性
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，包含用户的核心属性
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
// 4. 购物车和收藏夹归User聚合所有,但因需要原子增量更新,
//    持久化为独立表,通过cart/favourite仓储访问
type User struct {
	ID        uint
	Username  string // 用户名(唯一)
	Email     string // 邮箱(唯一)
	Contact   string // 联系电话(唯一,11位数字)
	Password  string // bcrypt哈希值
	Address   string // 收货地址
	Role      Role   // 角色(user/admin)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, email, contact, hashedPassword, address string) *User {
	now := time.Now()
	return &User{
		Username:  username,
		Email:     email,
		Contact:   contact,
		Password:  hashedPassword,
		Address:   address,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UpdateAddress 更新收货地址（领域行为）
func (u *User) UpdateAddress(address string) {
	u.Address = address
	u.UpdatedAt = time.Now()
}

// ChangePassword 更换密码（领域行为）
// hashedPassword必须是bcrypt加密后的新密码
func (u *User) ChangePassword(hashedPassword string) {
	u.Password = hashedPassword
	u.UpdatedAt = time.Now()
}
