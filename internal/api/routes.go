package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/api/handlers"
	"quiz_web/internal/middleware"
	"quiz_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	wsHandler := handlers.NewWebSocketHandler(services.WebSocketManager, services.Quiz)
	answerHandler := handlers.NewAnswerHandler(services.Answer)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// WebSocket 連接點，角色驗證在握手時處理
		api.GET("/ws", wsHandler.HandleWebSocket)
	}

	// 需要學生身份的路由
	authorized := api.Group("/")
	authorized.Use(middleware.StudentAuthMiddleware())
	{
		// 學生作答
		authorized.POST("/question/:id/answer", answerHandler.SubmitAnswer)
	}
}
