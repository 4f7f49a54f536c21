package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(
	userController *UserController,
	sportController *SportController,
	playdateController *PlaydateController,
	chatController *ChatController,
	authMiddleware gin.HandlerFunc,
) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(config))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", userController.Register)
	authGroup.POST("/login", userController.Login)
	authGroup.GET("/me", authMiddleware, userController.Me)

	users := api.Group("/users")
	users.GET("", userController.List)
	users.GET("/:userID", userController.Get)
	users.DELETE("/:userID", authMiddleware, userController.Delete)
	users.POST("/:userID/interests", authMiddleware, userController.AddInterest)
	users.GET("/:userID/interests", userController.ListInterests)

	sports := api.Group("/sports")
	sports.POST("", authMiddleware, sportController.Create)
	sports.GET("", sportController.List)
	sports.GET("/:sportID", sportController.Get)

	playdates := api.Group("/playdates")
	playdates.POST("", authMiddleware, playdateController.Create)
	playdates.GET("", playdateController.List)
	playdates.GET("/:playdateID", playdateController.Get)
	playdates.DELETE("/:playdateID", authMiddleware, playdateController.Delete)
	playdates.POST("/:playdateID/participants", authMiddleware, playdateController.Join)
	playdates.DELETE("/:playdateID/participants", authMiddleware, playdateController.Leave)
	playdates.GET("/:playdateID/participants", playdateController.Participants)

	chat := api.Group("/chat")
	chat.GET("/ws", chatController.ServeWS)
	chat.GET("/history", authMiddleware, chatController.History)

	return router
}
