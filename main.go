package main

import (
	"log"
	"time"

	"lingolink/config"
	"lingolink/handler"
	"lingolink/middleware"
	"lingolink/service"
	"lingolink/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	// the server runs in UTC everywhere
	time.Local = time.UTC
}

func main() {
	cfg := config.Load()

	if err := utils.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer utils.CloseDB()

	if err := utils.InitRedis(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer utils.CloseRedis()

	middleware.InitAuth(cfg.JWTSecret)

	// services
	db := utils.GetDB()
	userSvc := service.NewUserService(db)
	notifSvc := service.NewNotificationService(db)
	friendSvc := service.NewFriendService(db, userSvc, notifSvc)
	chatSvc := service.NewChatService(utils.GetRedis(), cfg.Chat.BaseURL, cfg.Chat.APIKey, cfg.Chat.APISecret, cfg.Chat.TokenTTL)
	authSvc := service.NewAuthService(db, chatSvc, cfg.AvatarBaseURL, cfg.JWTExpireHrs)

	// WebSocket hub pushes notifications to online users
	hub := handler.NewHub()
	notifSvc.SetHubNotifier(hub)

	// handlers
	authHandler := handler.NewAuthHandler(authSvc, userSvc)
	userHandler := handler.NewUserHandler(userSvc)
	friendHandler := handler.NewFriendHandler(friendSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	chatHandler := handler.NewChatHandler(chatSvc)

	r := gin.Default()
	r.Use(middleware.ErrorHandlerMiddleware())

	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{"status": "ok"})
	})

	// WebSocket uses token query auth, not the HTTP middleware
	r.GET("/ws", handler.HandleWebSocket(hub))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)

			protected := auth.Group("")
			protected.Use(middleware.AuthMiddleware())
			protected.POST("/onboard", authHandler.Onboard)
			protected.GET("/me", authHandler.Me)
		}

		users := api.Group("/users")
		users.Use(middleware.AuthMiddleware())
		{
			users.GET("", userHandler.GetRecommended)
			users.GET("/friends", userHandler.GetFriends)
		}

		requests := api.Group("/friend-requests")
		requests.Use(middleware.AuthMiddleware())
		{
			requests.GET("", friendHandler.GetRequests)
			requests.GET("/outgoing", friendHandler.GetOutgoingRequests)
			requests.POST("/:id", friendHandler.SendRequest)
			requests.PUT("/:id/accept", friendHandler.AcceptRequest)
			requests.PUT("/:id/reject", friendHandler.RejectRequest)
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.AuthMiddleware())
		{
			notifications.GET("", notifHandler.GetNotifications)
			notifications.POST("/read-all", notifHandler.MarkAllAsRead)
		}

		chat := api.Group("/chat")
		chat.Use(middleware.AuthMiddleware())
		{
			chat.GET("/token", chatHandler.GetToken)
		}
	}

	log.Printf("lingolink service starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
