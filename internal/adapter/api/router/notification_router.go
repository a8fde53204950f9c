package router

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
)

func setupNotificationRoutes(v1 *echo.Group, authMW *middleware.AuthMiddleware) {
	notificationHandler := handler.GetNotificationHandler()

	notifications := v1.Group("/notifications", authMW.Authenticate)
	notifications.GET("", notificationHandler.List)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.POST("/:id/read", notificationHandler.MarkRead)
	notifications.POST("/read-all", notificationHandler.MarkAllRead)
}
