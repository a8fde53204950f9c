package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{client: client}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}
	return nil
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	doc, err := r.client.Collection("notifications").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Notification", err)
		}
		return nil, errors.Internal("Failed to get notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}
	notification.ID = doc.Ref.ID
	return &notification, nil
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list notifications", err)
	}

	notifications := make([]*entity.Notification, 0, len(docs))
	for _, doc := range docs {
		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			continue
		}
		notification.ID = doc.Ref.ID
		notifications = append(notifications, &notification)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	total := int64(len(notifications))
	if offset >= len(notifications) {
		return []*entity.Notification{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(notifications) {
		end = len(notifications)
	}
	return notifications[offset:end], total, nil
}

func (r *firestoreNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread notifications", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.client.Collection("notifications").Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Notification", err)
		}
		return errors.Internal("Failed to mark notification read", err)
	}
	return nil
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to load notifications", err)
	}
	if len(docs) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for _, doc := range docs {
		batch.Update(doc.Ref, []firestore.Update{
			{Path: "read", Value: true},
		})
	}
	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark notifications read", err)
	}
	return nil
}
