package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
)

// Setup mounts every route group under /v1.
func Setup(
	e *echo.Echo,
	authMW *middleware.AuthMiddleware,
	adminMW *middleware.AdminMiddleware,
	chatHandler *handler.ChatHandler,
	wsHandler *handler.WebSocketHandler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := e.Group("/v1")

	setupAuthRoutes(v1, authMW)
	setupUserRoutes(v1, authMW)
	setupListingRoutes(v1, authMW)
	setupPostingRoutes(v1, authMW)
	setupChatRoutes(v1, authMW, chatHandler, wsHandler)
	setupSavedRoutes(v1, authMW)
	setupFileRoutes(v1, authMW)
	setupVerificationRoutes(v1, authMW, adminMW)
	setupNotificationRoutes(v1, authMW)
}
