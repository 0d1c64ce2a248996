//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式:
//
//	wire gen ./cmd/api
//
// Wire在编译期生成wire_gen.go,零运行时开销、类型安全、
// 编译期检测循环依赖
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/humaira228/DeenOasis/internal/application/book"
	appcart "github.com/humaira228/DeenOasis/internal/application/cart"
	appfavourite "github.com/humaira228/DeenOasis/internal/application/favourite"
	apporder "github.com/humaira228/DeenOasis/internal/application/order"
	appsearch "github.com/humaira228/DeenOasis/internal/application/search"
	appuser "github.com/humaira228/DeenOasis/internal/application/user"
	"github.com/humaira228/DeenOasis/internal/domain/book"
	"github.com/humaira228/DeenOasis/internal/domain/cart"
	"github.com/humaira228/DeenOasis/internal/domain/search"
	"github.com/humaira228/DeenOasis/internal/domain/user"
	"github.com/humaira228/DeenOasis/internal/infrastructure/config"
	"github.com/humaira228/DeenOasis/internal/infrastructure/persistence/mysql"
	"github.com/humaira228/DeenOasis/internal/infrastructure/persistence/redis"
	"github.com/humaira228/DeenOasis/internal/interface/http/handler"
	"github.com/humaira228/DeenOasis/internal/interface/http/middleware"
	"github.com/humaira228/DeenOasis/pkg/jwt"
	"github.com/humaira228/DeenOasis/pkg/mq"
)

// infrastructureSet 基础设施层:配置、MySQL、Redis、MQ
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	providePublisher,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewCartRepository,
	mysql.NewFavouriteRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
)

// domainSet 领域层
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	cart.NewManager,
	search.NewEngine,
)

// applicationSet 应用层
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewProfileUseCase,
	appbook.NewManageBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewRecentBooksUseCase,
	appsearch.NewSearchBooksUseCase,
	appcart.NewCartUseCase,
	appfavourite.NewFavouriteUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewOrderHistoryUseCase,
	apporder.NewUpdateStatusUseCase,
)

// middlewareSet 中间件层
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideBookCache,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewSearchHandler,
	handler.NewCartHandler,
	handler.NewFavouriteHandler,
	handler.NewOrderHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideBookCache 从Redis客户端创建图书缓存
func provideBookCache(client *goredis.Client) *redis.BookCache {
	return redis.NewBookCache(client)
}

// providePublisher 创建订单事件发布器
// MQ未配置或不可用时返回nil,下单用例会跳过事件发布
func providePublisher(cfg *config.Config) *mq.Publisher {
	if cfg.MQ.URL == "" {
		return nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil
	}
	return publisher
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	searchHandler *handler.SearchHandler,
	cartHandler *handler.CartHandler,
	favouriteHandler *handler.FavouriteHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	registerRoutes(r, userHandler, bookHandler, searchHandler, cartHandler, favouriteHandler, orderHandler, authMiddleware)

	return r
}

// InitializeApp 初始化整个应用
// Wire会分析依赖链并在wire_gen.go中生成组装代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)

	return nil, nil
}
