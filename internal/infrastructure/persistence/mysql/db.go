package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/humaira228/DeenOasis/internal/infrastructure/config"
	"github.com/humaira228/DeenOasis/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.Get().Info().Msg("数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&CartItemModel{},
		&FavouriteModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. 用户名/邮箱/电话三个唯一索引保证注册时的唯一性(原子,无SELECT窗口)
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Username  string         `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Contact   string         `gorm:"uniqueIndex;size:20;not null;comment:联系电话"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Address   string         `gorm:"size:500;comment:收货地址"`
	Role      string         `gorm:"size:10;not null;default:user;comment:角色(user/admin)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. 音译字段与title/author同步维护,加索引支撑搜索候选集查询
// 3. 软删除:被订单引用的图书删除后订单明细仍可追溯BookID
type BookModel struct {
	ID                   uint           `gorm:"primaryKey"`
	URL                  string         `gorm:"size:500;comment:封面图片URL"`
	Title                string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	TransliteratedTitle  string         `gorm:"index:idx_translit;size:200;comment:书名音译(小写罗马化)"`
	Author               string         `gorm:"index:idx_search;size:100;not null;comment:作者"`
	TransliteratedAuthor string         `gorm:"index:idx_translit;size:100;comment:作者音译(小写罗马化)"`
	Price                int64          `gorm:"not null;comment:价格(分)"`
	Stock                int            `gorm:"default:0;comment:可售库存"`
	Description          string         `gorm:"type:text;comment:图书描述"`
	Language             string         `gorm:"size:50;comment:语言"`
	CreatedAt            time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt            time.Time      `gorm:"comment:更新时间"`
	DeletedAt            gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// CartItemModel GORM购物车条目模型
// 设计说明:
// 1. user_id+book_id复合唯一索引是合并加购语义的基石:
//    重复加购走INSERT ... ON DUPLICATE KEY UPDATE,服务端原子累加数量
// 2. 不做软删除:移除/清空是真删除,购物车无审计需求
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// FavouriteModel GORM收藏模型
// user_id+book_id唯一索引+DoNothing冲突策略实现set语义
type FavouriteModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_book_fav;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_user_book_fav;not null;comment:图书ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (FavouriteModel) TableName() string {
	return "favourites"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引(业务主键)
// 3. Status直接存展示字符串("Order Placed"等),与API响应一致
// 4. 订单不软删除:删除用户不级联删除订单(审计要求)
type OrderModel struct {
	ID             uint             `gorm:"primaryKey"`
	OrderNo        string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID         uint             `gorm:"index;not null;comment:买家用户ID"`
	Delivery       string           `gorm:"size:10;not null;comment:配送范围(inside/outside)"`
	RentalDuration int              `gorm:"not null;comment:租期(天)"`
	Total          int64            `gorm:"not null;comment:订单总金额(分)"`
	Status         string           `gorm:"index;size:20;not null;default:'Order Placed';comment:订单状态"`
	Items          []OrderItemModel `gorm:"foreignKey:OrderID"` // 一对多关联
	CreatedAt      time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt      time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 记录下单时的价格快照(Price字段)
type OrderItemModel struct {
	ID       uint  `gorm:"primaryKey"`
	OrderID  uint  `gorm:"index;not null;comment:订单ID"`
	BookID   uint  `gorm:"index;not null;comment:图书ID"`
	Quantity int   `gorm:"not null;comment:购买数量"`
	Price    int64 `gorm:"not null;comment:下单时单价(分)"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}
