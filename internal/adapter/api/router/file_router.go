package router

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
)

func setupFileRoutes(v1 *echo.Group, authMW *middleware.AuthMiddleware) {
	fileHandler := handler.GetFileHandler()

	files := v1.Group("/files", authMW.Authenticate)
	files.POST("", fileHandler.Upload)
	files.GET("", fileHandler.ListMine)
	files.DELETE("/:id", fileHandler.Delete)
}
