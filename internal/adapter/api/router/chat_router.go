package router

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
)

func setupChatRoutes(v1 *echo.Group, authMW *middleware.AuthMiddleware, chatHandler *handler.ChatHandler, wsHandler *handler.WebSocketHandler) {
	chats := v1.Group("/chats", authMW.Authenticate)
	chats.POST("", chatHandler.StartChat)
	chats.GET("", chatHandler.ListChats)
	chats.GET("/:id/messages", chatHandler.GetMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.POST("/:id/location", chatHandler.SendLocation)
	chats.POST("/:id/read", chatHandler.MarkRead)

	// The socket authenticates itself via the token query param.
	v1.GET("/ws", wsHandler.Connect)
}
