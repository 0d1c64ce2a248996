package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/humaira228/DeenOasis/pkg/logger"
	"github.com/humaira228/DeenOasis/pkg/metrics"
	"github.com/humaira228/DeenOasis/pkg/mq"
	"github.com/humaira228/DeenOasis/pkg/response"
	"github.com/humaira228/DeenOasis/pkg/tracing"
)

// main 主程序入口
// 依赖注入链:Repository ← Service ← UseCase ← Handler
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger.Init(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		EnableCaller: cfg.Log.EnableCaller,
	})
	log := logger.Get()

	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)).
		Str("redis", cfg.Redis.Addr()).
		Msg("配置加载成功")

	// 3. 初始化指标与链路追踪
	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("deenoasis-api", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("初始化链路追踪失败")
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn().Err(err).Msg("关闭链路追踪失败")
			}
		}()
	}

	// 4. 初始化数据库和Redis
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化数据库失败")
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化Redis失败")
	}

	// 5. 初始化消息队列(非致命:MQ未部署时下单仍可用,只是不发事件)
	var publisher *mq.Publisher
	if cfg.MQ.URL != "" {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Warn().Err(err).Msg("连接RabbitMQ失败,订单事件发布不可用")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// 6. 依赖注入(手动组装)

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	favouriteRepo := mysql.NewFavouriteRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	bookCache := redis.NewBookCache(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	cartManager := cart.NewManager(cartRepo, bookRepo)
	searchEngine := search.NewEngine(bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	profileUseCase := appuser.NewProfileUseCase(userService)
	manageBookUseCase := appbook.NewManageBookUseCase(bookService, bookCache)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	recentBooksUseCase := appbook.NewRecentBooksUseCase(bookService, bookCache)
	searchUseCase := appsearch.NewSearchBooksUseCase(searchEngine)
	cartUseCase := appcart.NewCartUseCase(cartManager, bookRepo)
	favouriteUseCase := appfavourite.NewFavouriteUseCase(favouriteRepo, bookRepo)
	placeOrderUseCase := apporder.NewPlaceOrderUseCase(orderRepo, bookRepo, cartManager, txManager, publisher)
	orderHistoryUseCase := apporder.NewOrderHistoryUseCase(orderRepo, bookRepo, userRepo)
	updateStatusUseCase := apporder.NewUpdateStatusUseCase(orderRepo, publisher)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, profileUseCase)
	bookHandler := handler.NewBookHandler(manageBookUseCase, listBooksUseCase, recentBooksUseCase)
	searchHandler := handler.NewSearchHandler(searchUseCase)
	cartHandler := handler.NewCartHandler(cartUseCase)
	favouriteHandler := handler.NewFavouriteHandler(favouriteUseCase)
	orderHandler := handler.NewOrderHandler(placeOrderUseCase, orderHistoryUseCase, updateStatusUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	registerRoutes(r, userHandler, bookHandler, searchHandler, cartHandler, favouriteHandler, orderHandler, authMiddleware)

	// 8. 启动服务(支持优雅关停)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("服务启动成功")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("启动服务失败")
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("收到退出信号,开始优雅关停")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("服务关停失败")
	}

	log.Info().Msg("服务已退出")
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	searchHandler *handler.SearchHandler,
	cartHandler *handler.CartHandler,
	favouriteHandler *handler.FavouriteHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(生产环境建议禁用或加访问控制)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 公开接口
		v1.POST("/register", userHandler.Register)
		v1.POST("/login", userHandler.Login)
		v1.GET("/search-books", searchHandler.SearchBooks)
		v1.GET("/books", bookHandler.ListBooks)
		v1.GET("/books/:id", bookHandler.GetBook)
		v1.GET("/recent-books", bookHandler.RecentBooks)

		// 需要登录
		authorized := v1.Group("")
		authorized.Use(authMiddleware.RequireAuth())
		{
			authorized.POST("/logout", userHandler.Logout)
			authorized.GET("/profile", userHandler.GetProfile)
			authorized.PUT("/update-address", userHandler.UpdateAddress)
			authorized.PUT("/change-password", userHandler.ChangePassword)

			authorized.PUT("/add-to-cart", cartHandler.AddToCart)
			authorized.PUT("/remove-from-cart/:bookId", cartHandler.RemoveFromCart)
			authorized.GET("/get-user-cart", cartHandler.GetUserCart)

			authorized.POST("/favourites", favouriteHandler.AddFavourite)
			authorized.DELETE("/favourites/:bookId", favouriteHandler.RemoveFavourite)
			authorized.GET("/favourites", favouriteHandler.ListFavourites)

			authorized.POST("/place-order", orderHandler.PlaceOrder)
			authorized.GET("/get-order-history", orderHandler.GetOrderHistory)
		}

		// 管理员接口
		admin := v1.Group("")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole("admin"))
		{
			admin.POST("/books", bookHandler.AddBook)
			admin.PUT("/books/:id", bookHandler.UpdateBook)
			admin.DELETE("/books/:id", bookHandler.DeleteBook)

			admin.GET("/get-all-orders", orderHandler.GetAllOrders)
			admin.PUT("/update-status/:id", orderHandler.UpdateStatus)
		}
	}
}
