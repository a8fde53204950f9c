package router

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
)

func setupVerificationRoutes(v1 *echo.Group, authMW *middleware.AuthMiddleware, adminMW *middleware.AdminMiddleware) {
	verificationHandler := handler.GetVerificationHandler()

	verification := v1.Group("/verification", authMW.Authenticate)
	verification.POST("", verificationHandler.Submit)
	verification.GET("/me", verificationHandler.MyVerification)

	admin := v1.Group("/admin/verifications", authMW.Authenticate, adminMW.AdminOnly)
	admin.GET("", verificationHandler.ListPending)
	admin.POST("/:id/review", verificationHandler.Review)
}
