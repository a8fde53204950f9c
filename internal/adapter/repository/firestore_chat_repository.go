package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{client: client}
}

func (r *firestoreChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to create chat", err)
	}
	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}
	chat.ID = doc.Ref.ID
	return &chat, nil
}

func (r *firestoreChatRepository) GetByParticipantsAndListing(ctx context.Context, userA, userB, listingID string) (*entity.Chat, error) {
	iter := r.client.Collection("chats").
		Where("listingId", "==", listingID).
		Where("participants", "array-contains", userA).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query chats", err)
		}

		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			logger.Warn("Skipping unreadable chat %s: %v", doc.Ref.ID, err)
			continue
		}
		chat.ID = doc.Ref.ID
		if chat.HasParticipant(userB) {
			return &chat, nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *firestoreChatRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	docs, err := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list chats", err)
	}

	chats := make([]*entity.Chat, 0, len(docs))
	for _, doc := range docs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			continue
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, &chat)
	}

	// Most recent activity first.
	sort.Slice(chats, func(i, j int) bool {
		return chats[i].LastMessageAt.After(chats[j].LastMessageAt)
	})

	total := int64(len(chats))
	if offset >= len(chats) {
		return []*entity.Chat{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(chats) {
		end = len(chats)
	}
	return chats[offset:end], total, nil
}

func (r *firestoreChatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	chat.UpdatedAt = time.Now()
	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to update chat", err)
	}
	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	_, err := r.client.Collection("chats").Doc(message.ChatID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *firestoreChatRepository) GetMessageByClientKey(ctx context.Context, chatID, clientKey string) (*entity.Message, error) {
	iter := r.client.Collection("chats").Doc(chatID).
		Collection("messages").
		Where("clientKey", "==", clientKey).
		Limit(1).
		Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Message", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query message by client key", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}
	message.ID = doc.Ref.ID
	return &message, nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	docs, err := r.client.Collection("chats").Doc(chatID).
		Collection("messages").
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list messages", err)
	}

	messages := make([]*entity.Message, 0, len(docs))
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	total := int64(len(messages))
	if offset >= len(messages) {
		return []*entity.Message{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(messages) {
		end = len(messages)
	}
	return messages[offset:end], total, nil
}

func (r *firestoreChatRepository) MarkMessagesRead(ctx context.Context, chatID, userID string) error {
	docs, err := r.client.Collection("chats").Doc(chatID).
		Collection("messages").
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to load messages", err)
	}

	batch := r.client.Batch()
	updated := 0
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue
		}
		if message.SenderID == userID || message.IsReadBy(userID) {
			continue
		}
		batch.Update(doc.Ref, []firestore.Update{
			{Path: "readBy", Value: firestore.ArrayUnion(userID)},
		})
		updated++
	}

	if updated == 0 {
		return nil
	}
	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark messages read", err)
	}
	return nil
}
