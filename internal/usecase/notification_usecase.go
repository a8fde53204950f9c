package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	ws "sokoni/internal/infrastructure/websocket"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	wsManager        *ws.Manager
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository, wsManager *ws.Manager) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		wsManager:        wsManager,
	}
}

// Notify stores the notification, then pushes it to the user's live
// connection if there is one. The store is the source of truth; the
// push is best effort.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID, notifType, title, body string, data map[string]interface{}) error {
	notification := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Body:      body,
		Data:      data,
		Read:      false,
		CreatedAt: time.Now(),
	}

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	if uc.wsManager != nil {
		uc.wsManager.SendToUser(userID, ws.Event{
			Type:    ws.EventNotification,
			Payload: notification,
		})
	}
	return nil
}

// NotifyAsync runs Notify off the request path.
func (uc *NotificationUseCase) NotifyAsync(userID, notifType, title, body string, data map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.Notify(ctx, userID, notifType, title, body, data); err != nil {
			logger.Error("Failed to notify user %s: %v", userID, err)
		}
	}()
}

func (uc *NotificationUseCase) List(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListByUser(ctx, userID, limit, offset)
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return errors.Forbidden("You can only update your own notifications", nil)
	}
	return uc.notificationRepo.MarkRead(ctx, notificationID)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}
