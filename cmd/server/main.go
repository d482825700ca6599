package main

import (
	"context"
	"fmt"
	"log"

	"github.com/chengzhang/writing_go_server/config"
	"github.com/chengzhang/writing_go_server/internal/api"
	"github.com/chengzhang/writing_go_server/internal/api/handler"
	"github.com/chengzhang/writing_go_server/internal/database"
	"github.com/chengzhang/writing_go_server/internal/pkg/oss"
	"github.com/chengzhang/writing_go_server/internal/pkg/pubsub"
	"github.com/chengzhang/writing_go_server/internal/pkg/userlock"
	"github.com/chengzhang/writing_go_server/internal/pkg/ws"
	"github.com/chengzhang/writing_go_server/internal/repository"
	"github.com/chengzhang/writing_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS
	ossClient, err := oss.NewClient(&cfg.OSS)
	if err != nil {
		log.Fatalf("Failed to create OSS client: %v", err)
	}

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()

	// 积分变动消息：Redis 发布，订阅后转发到用户的 WebSocket 连接
	publisher := pubsub.NewPublisher(rdb)
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.PointsMessage) {
			if err := wsHub.SendToUser(msg.UserID, &ws.Message{
				Type: msg.Type,
				Data: msg,
			}); err != nil {
				log.Printf("Failed to push points message to user %d: %v", msg.UserID, err)
			}
		})
		if err != nil && err != context.Canceled {
			log.Printf("Points subscriber stopped: %v", err)
		}
	}()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewPointAccountRepository(db)
	transactionRepo := repository.NewPointTransactionRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	shortcutRepo := repository.NewAIShortcutRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// 初始化 Service
	locker := userlock.New()
	pointService := service.NewPointService(db, accountRepo, transactionRepo, locker, publisher, cfg)
	subscriptionService := service.NewSubscriptionService(db, subscriptionRepo, pointService, locker, cfg)
	authService := service.NewAuthService(db, userRepo, accountRepo, subscriptionService, cfg)
	articleService := service.NewArticleService(articleRepo)
	collectionService := service.NewCollectionService(collectionRepo, articleRepo)
	aiShortcutService := service.NewAIShortcutService(shortcutRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	uploadService := service.NewUploadService(ossClient, imageRepo, cfg)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	pointHandler := handler.NewPointHandler(pointService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	articleHandler := handler.NewArticleHandler(articleService)
	collectionHandler := handler.NewCollectionHandler(collectionService)
	aiShortcutHandler := handler.NewAIShortcutHandler(aiShortcutService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		pointHandler,
		subscriptionHandler,
		articleHandler,
		collectionHandler,
		aiShortcutHandler,
		settingsHandler,
		uploadHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
