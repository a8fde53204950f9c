package handler

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/usecase"
	"sokoni/pkg/errors"
	"sokoni/pkg/response"
	"sokoni/pkg/utils"
)

type ChatHandler struct {
	chatUC *usecase.ChatUseCase
}

func NewChatHandler(chatUC *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUC: chatUC}
}

func (h *ChatHandler) StartChat(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input usecase.StartChatInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	chat, message, err := h.chatUC.StartChat(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, map[string]interface{}{
		"chat":    chat,
		"message": message,
	})
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	uid := c.Get("uid").(string)
	page, pageSize, offset := utils.GetPaginationParams(c)

	chats, total, err := h.chatUC.ListChats(c.Request().Context(), uid, pageSize, offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, chats, total, page, pageSize)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	page, pageSize, offset := utils.GetPaginationParams(c)

	messages, total, err := h.chatUC.GetMessages(c.Request().Context(), uid, c.Param("id"), pageSize, offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, messages, total, page, pageSize)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input usecase.SendMessageInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	input.ChatID = c.Param("id")
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUC.SendMessage(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

type sendLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
	ClientKey string  `json:"client_key"`
}

func (h *ChatHandler) SendLocation(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req sendLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUC.SendLocation(c.Request().Context(), uid, c.Param("id"), req.Latitude, req.Longitude, req.ClientKey)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.chatUC.MarkRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Conversation marked read"})
}
