package handler

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/usecase"
	"sokoni/pkg/response"
	"sokoni/pkg/utils"
)

type NotificationHandler struct {
	notificationUC *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUC *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUC: notificationUC}
}

func (h *NotificationHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	page, pageSize, offset := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationUC.List(c.Request().Context(), uid, pageSize, offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, notifications, total, page, pageSize)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	uid := c.Get("uid").(string)
	count, err := h.notificationUC.UnreadCount(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int64{"unread": count})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.notificationUC.MarkRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Notification marked read"})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.notificationUC.MarkAllRead(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "All notifications marked read"})
}
