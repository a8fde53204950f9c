package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"sokoni/internal/infrastructure/firebase"
	ws "sokoni/internal/infrastructure/websocket"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
	"sokoni/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced at the HTTP layer.
		return true
	},
}

type WebSocketHandler struct {
	manager    *ws.Manager
	authClient *firebase.AuthClient
}

func NewWebSocketHandler(manager *ws.Manager, authClient *firebase.AuthClient) *WebSocketHandler {
	return &WebSocketHandler{
		manager:    manager,
		authClient: authClient,
	}
}

// Connect authenticates via the token query param, then upgrades. One
// connection per user carries chat frames and notifications.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Error(c, errors.Unauthorized("Token is required", nil))
	}

	decoded, err := h.authClient.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed for %s: %v", decoded.UID, err)
		return err
	}

	client := ws.NewClient(decoded.UID, conn, h.manager)
	h.manager.Register(client)

	go client.WritePump()
	// The request context dies with the upgrade; the pump outlives it.
	go client.ReadPump(context.Background())

	return nil
}
