package api

import (
	"github.com/gin-gonic/gin"

	"github.com/chengzhang/writing_go_server/config"
	"github.com/chengzhang/writing_go_server/internal/api/handler"
	"github.com/chengzhang/writing_go_server/internal/api/middleware"
)

type Router struct {
	authHandler         *handler.AuthHandler
	pointHandler        *handler.PointHandler
	subscriptionHandler *handler.SubscriptionHandler
	articleHandler      *handler.ArticleHandler
	collectionHandler   *handler.CollectionHandler
	aiShortcutHandler   *handler.AIShortcutHandler
	settingsHandler     *handler.SettingsHandler
	uploadHandler       *handler.UploadHandler
	websocketHandler    *handler.WebSocketHandler
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	pointHandler *handler.PointHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	articleHandler *handler.ArticleHandler,
	collectionHandler *handler.CollectionHandler,
	aiShortcutHandler *handler.AIShortcutHandler,
	settingsHandler *handler.SettingsHandler,
	uploadHandler *handler.UploadHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		pointHandler:        pointHandler,
		subscriptionHandler: subscriptionHandler,
		articleHandler:      articleHandler,
		collectionHandler:   collectionHandler,
		aiShortcutHandler:   aiShortcutHandler,
		settingsHandler:     settingsHandler,
		uploadHandler:       uploadHandler,
		websocketHandler:    websocketHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 套餐
		api.GET("/plans", r.subscriptionHandler.ListPlans)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			authenticated.GET("/user/info", r.authHandler.GetUserInfo)

			// 积分
			points := authenticated.Group("/points")
			{
				points.GET("/balance", r.pointHandler.GetBalance)
				points.GET("/transactions", r.pointHandler.GetTransactions)
				points.POST("/spend", r.pointHandler.Spend)
				points.POST("/checkin", r.pointHandler.Checkin)
			}

			// 会员订阅
			subscriptions := authenticated.Group("/subscriptions")
			{
				subscriptions.POST("", r.subscriptionHandler.Create)
				subscriptions.GET("", r.subscriptionHandler.List)
				subscriptions.GET("/active", r.subscriptionHandler.GetActive)
				subscriptions.GET("/membership", r.subscriptionHandler.GetMembership)
				subscriptions.POST("/:id/cancel", r.subscriptionHandler.Cancel)
			}

			// 文章
			articles := authenticated.Group("/articles")
			{
				articles.POST("", r.articleHandler.Create)
				articles.GET("", r.articleHandler.List)
				articles.GET("/categories", r.articleHandler.ListCategories)
				articles.GET("/stats", r.articleHandler.GetStats)
				articles.POST("/batch-delete", r.articleHandler.BatchDelete)
				articles.GET("/:id", r.articleHandler.Get)
				articles.PUT("/:id", r.articleHandler.Update)
				articles.DELETE("/:id", r.articleHandler.Delete)
			}

			// 合集
			collections := authenticated.Group("/collections")
			{
				collections.POST("", r.collectionHandler.Create)
				collections.GET("", r.collectionHandler.List)
				collections.GET("/stats", r.collectionHandler.GetStats)
				collections.GET("/check-name", r.collectionHandler.CheckName)
				collections.GET("/:id", r.collectionHandler.Get)
				collections.PUT("/:id", r.collectionHandler.Update)
				collections.DELETE("/:id", r.collectionHandler.Delete)
				collections.PATCH("/:id/status", r.collectionHandler.ToggleStatus)
				collections.PATCH("/:id/sort", r.collectionHandler.UpdateSort)
			}

			// AI 快捷指令
			shortcuts := authenticated.Group("/ai-shortcuts")
			{
				shortcuts.GET("", r.aiShortcutHandler.ListActive)
				shortcuts.GET("/search", r.aiShortcutHandler.Search)
				shortcuts.POST("", r.aiShortcutHandler.Create)
				shortcuts.POST("/batch-delete", r.aiShortcutHandler.BatchDelete)
				shortcuts.GET("/:id", r.aiShortcutHandler.Get)
				shortcuts.PUT("/:id", r.aiShortcutHandler.Update)
				shortcuts.DELETE("/:id", r.aiShortcutHandler.Delete)
				shortcuts.PUT("/:id/sort", r.aiShortcutHandler.UpdateSort)
				shortcuts.PUT("/:id/toggle", r.aiShortcutHandler.Toggle)
			}

			// 设置
			settings := authenticated.Group("/settings")
			{
				settings.GET("", r.settingsHandler.Get)
				settings.PUT("", r.settingsHandler.Update)
				settings.POST("/reset", r.settingsHandler.Reset)
			}

			// 图片上传
			authenticated.POST("/upload/image", r.uploadHandler.UploadImage)
			authenticated.POST("/upload/image/base64", r.uploadHandler.UploadBase64)
			authenticated.GET("/images", r.uploadHandler.ListImages)
			authenticated.DELETE("/images/:id", r.uploadHandler.DeleteImage)
		}
	}

	return engine
}
