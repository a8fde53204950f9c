package repository

import (
	"context"

	"sokoni/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	// GetByParticipantsAndListing finds the existing chat between two
	// users about one listing, or returns a not-found error.
	GetByParticipantsAndListing(ctx context.Context, userA, userB, listingID string) (*entity.Chat, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	Update(ctx context.Context, chat *entity.Chat) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessageByClientKey(ctx context.Context, chatID, clientKey string) (*entity.Message, error)
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
	MarkMessagesRead(ctx context.Context, chatID, userID string) error
}
