package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-system/config"
	"blog-system/internal/handler"
	"blog-system/internal/model"
	"blog-system/internal/repository"
	"blog-system/internal/service"
	dbPkg "blog-system/pkg/db"
	"blog-system/pkg/logger"
	"blog-system/pkg/session"
	"blog-system/pkg/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== 博客系统启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.String("upload_dir", cfg.Upload.Dir),
		zap.Duration("session_lifetime", cfg.Session.Lifetime),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 初始化数据库连接
	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	// 3.1 自动迁移表结构
	if err := dbPkg.AutoMigrate(&model.User{}, &model.Post{}, &model.FriendRequest{}, &model.Notification{}); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 3.2 初始化会话服务（Redis）
	sessions, err := session.NewService(cfg.Session, cfg.Redis)
	if err != nil {
		log.Fatal("会话服务初始化失败", zap.Error(err))
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			log.Error("关闭Redis连接失败", zap.Error(err))
		}
	}()
	log.Info("会话服务初始化成功")

	// 3.3 初始化上传保存器
	uploads, err := upload.NewSaver(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatal("上传目录初始化失败", zap.Error(err))
	}

	// 3.4 初始化业务服务
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	requestRepo := repository.NewFriendRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	txRunner := service.NewGormTxRunner(db)
	unread := service.NewRedisUnreadCounter(sessions)

	userSvc := service.NewUserService(userRepo, postRepo, requestRepo)
	postSvc := service.NewPostService(postRepo)
	friendSvc := service.NewFriendService(txRunner, userRepo, requestRepo, unread)
	notificationSvc := service.NewNotificationService(notificationRepo, unread)

	userHandler := handler.NewUserHandler(userSvc, postSvc, notificationSvc, sessions, uploads)
	postHandler := handler.NewPostHandler(postSvc, userSvc)
	friendHandler := handler.NewFriendHandler(friendSvc, userSvc)

	// 4. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	router := gin.New()

	// 使用中间件
	router.Use(logger.LoggerMiddleware())      // 自定义日志中间件
	router.Use(logger.ErrorLoggerMiddleware()) // 错误日志中间件
	router.Use(sessions.LoadUser())            // 会话加载
	router.Use(handler.NotificationInject(notificationSvc))

	// 6. 绑定路由
	setupRoutes(router, sessions, userHandler, postHandler, friendHandler)

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	// 设置关闭超时
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 关闭HTTP服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupRoutes 绑定全部路由
func setupRoutes(
	router *gin.Engine,
	sessions *session.Service,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	friendHandler *handler.FriendHandler,
) {
	// 健康检查
	// 完整url为：http://localhost:8080/health
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		} else if err := sessions.HealthCheck(); err != nil {
			status = "redis-down"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 公开路由（无需登录）
	router.GET("/register", userHandler.RegisterPage)
	router.POST("/register", userHandler.Register)
	router.GET("/login", userHandler.LoginPage)
	router.POST("/login", userHandler.Login)
	router.GET("/logout", userHandler.Logout)
	router.GET("/user/:username", userHandler.UserPosts)

	// 需要登录的路由
	auth := router.Group("")
	auth.Use(sessions.RequireLogin())
	{
		auth.GET("/", postHandler.Home)

		// 帖子
		auth.GET("/create", postHandler.CreatePage)
		auth.POST("/create", postHandler.Create)
		auth.GET("/edit/:id", postHandler.EditPage)
		auth.POST("/edit/:id", postHandler.Edit)
		// 删除沿用GET路由，与既有页面链接保持一致
		auth.GET("/delete/:id", postHandler.Delete)

		// 好友
		auth.POST("/send_request/:receiver_id", friendHandler.SendRequest)
		auth.GET("/accept_request/:request_id", friendHandler.Accept)
		auth.GET("/reject_request/:request_id", friendHandler.Reject)
		auth.GET("/friends", friendHandler.Friends)
		auth.GET("/friend_requests", friendHandler.FriendRequests)
		auth.GET("/search", friendHandler.SearchPage)
		auth.POST("/search", friendHandler.Search)

		// 个人资料
		auth.GET("/profile", userHandler.Profile)
		auth.GET("/edit_profile", userHandler.EditProfilePage)
		auth.POST("/edit_profile", userHandler.EditProfile)
	}
}
