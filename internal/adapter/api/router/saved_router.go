package router

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
)

func setupSavedRoutes(v1 *echo.Group, authMW *middleware.AuthMiddleware) {
	favoriteHandler := handler.GetFavoriteHandler()
	bookmarkHandler := handler.GetBookmarkHandler()
	savedSearchHandler := handler.GetSavedSearchHandler()

	favorites := v1.Group("/favorites", authMW.Authenticate)
	favorites.POST("/:listingId", favoriteHandler.Add)
	favorites.GET("", favoriteHandler.List)
	favorites.GET("/:listingId/status", favoriteHandler.Status)
	favorites.DELETE("/:listingId", favoriteHandler.Remove)

	bookmarks := v1.Group("/bookmarks", authMW.Authenticate)
	bookmarks.POST("/:listingId", bookmarkHandler.Add)
	bookmarks.GET("", bookmarkHandler.List)
	bookmarks.GET("/:listingId/status", bookmarkHandler.Status)
	bookmarks.DELETE("/:listingId", bookmarkHandler.Remove)

	searches := v1.Group("/saved-searches", authMW.Authenticate)
	searches.POST("", savedSearchHandler.Save)
	searches.GET("", savedSearchHandler.List)
	searches.DELETE("/:id", savedSearchHandler.Delete)
}
