package router

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
)

func setupUserRoutes(v1 *echo.Group, authMW *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := v1.Group("/users")
	users.GET("/me", userHandler.GetProfile, authMW.Authenticate)
	users.PATCH("/me", userHandler.UpdateProfile, authMW.Authenticate)
	users.GET("/:id", userHandler.GetPublicProfile)
}
