package router

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
)

func setupListingRoutes(v1 *echo.Group, authMW *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()

	listings := v1.Group("/listings")
	listings.GET("", listingHandler.Search, authMW.OptionalAuth)
	listings.GET("/suggest", listingHandler.Suggest, authMW.OptionalAuth)
	listings.GET("/:id", listingHandler.GetByID, authMW.OptionalAuth)
	listings.PATCH("/:id", listingHandler.Update, authMW.Authenticate)
	listings.POST("/:id/sold", listingHandler.MarkSold, authMW.Authenticate)
	listings.DELETE("/:id", listingHandler.Delete, authMW.Authenticate)

	v1.GET("/my/listings", listingHandler.MyListings, authMW.Authenticate)
}
