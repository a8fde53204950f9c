package router

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
)

func setupAuthRoutes(v1 *echo.Group, authMW *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authMW.Authenticate)
	auth.GET("/me", authHandler.Me, authMW.Authenticate)
}
