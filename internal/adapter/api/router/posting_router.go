package router

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
)

func setupPostingRoutes(v1 *echo.Group, authMW *middleware.AuthMiddleware) {
	postingHandler := handler.GetPostingHandler()

	posting := v1.Group("/posting", authMW.Authenticate)
	posting.POST("/draft", postingHandler.StartDraft)
	posting.GET("/draft", postingHandler.GetDraft)
	posting.DELETE("/draft", postingHandler.DiscardDraft)
	posting.PUT("/draft/category", postingHandler.SetCategory)
	posting.PUT("/draft/details", postingHandler.SetDetails)
	posting.POST("/draft/photos", postingHandler.AddPhotos)
	posting.DELETE("/draft/photos/:index", postingHandler.RemovePhoto)
	posting.PUT("/draft/price-location", postingHandler.SetPriceLocation)
	posting.POST("/draft/next", postingHandler.Next)
	posting.POST("/draft/back", postingHandler.Back)
	posting.POST("/draft/submit", postingHandler.Submit)
}
