package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/internal/infrastructure/ratelimit"
	ws "sokoni/internal/infrastructure/websocket"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
)

type ChatUseCase struct {
	chatRepo       repository.ChatRepository
	listingRepo    repository.ListingRepository
	userRepo       repository.UserRepository
	wsManager      *ws.Manager
	rateLimiter    *ratelimit.RateLimiter
	notificationUC *NotificationUseCase
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	wsManager *ws.Manager,
	rateLimiter *ratelimit.RateLimiter,
	notificationUC *NotificationUseCase,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:       chatRepo,
		listingRepo:    listingRepo,
		userRepo:       userRepo,
		wsManager:      wsManager,
		rateLimiter:    rateLimiter,
		notificationUC: notificationUC,
	}
}

// CanAccessChat lets the websocket layer check room membership.
func (uc *ChatUseCase) CanAccessChat(ctx context.Context, userID, chatID string) (bool, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	return chat.HasParticipant(userID), nil
}

type StartChatInput struct {
	ListingID string `json:"listing_id" validate:"required"`
	Message   string `json:"message" validate:"required,max=2000"`
	ClientKey string `json:"client_key"`
}

type ChatView struct {
	*entity.Chat
	Listing   *ListingSummary `json:"listing,omitempty"`
	OtherUser *SellerProfile  `json:"other_user,omitempty"`
}

// StartChat opens (or reuses) the conversation between a buyer and the
// listing's seller. One chat exists per buyer-seller pair per listing;
// contacting the seller again lands in the same thread.
func (uc *ChatUseCase) StartChat(ctx context.Context, buyerID string, input StartChatInput) (*ChatView, *entity.Message, error) {
	if !uc.rateLimiter.Allow(buyerID, "start_chat") {
		return nil, nil, errors.TooManyRequests("", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, nil, err
	}
	if listing.Status != entity.ListingStatusActive {
		return nil, nil, errors.BadRequest("This listing is no longer available", nil)
	}
	if listing.IsOwnedBy(buyerID) {
		return nil, nil, errors.BadRequest("You cannot message yourself about your own listing", nil)
	}

	chat, err := uc.chatRepo.GetByParticipantsAndListing(ctx, buyerID, listing.OwnerID, listing.ID)
	isNew := false
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, nil, err
		}
		now := time.Now()
		chat = &entity.Chat{
			ID:           uuid.New().String(),
			ListingID:    listing.ID,
			BuyerID:      buyerID,
			SellerID:     listing.OwnerID,
			Participants: []string{buyerID, listing.OwnerID},
			UnreadCounts: map[string]int{buyerID: 0, listing.OwnerID: 0},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.chatRepo.Create(ctx, chat); err != nil {
			return nil, nil, err
		}
		isNew = true
	}

	message, err := uc.deliver(ctx, chat, buyerID, SendMessageInput{
		ChatID:    chat.ID,
		Type:      entity.MessageTypeText,
		Content:   input.Message,
		ClientKey: input.ClientKey,
	})
	if err != nil {
		return nil, nil, err
	}

	if isNew {
		uc.wsManager.SendToUser(listing.OwnerID, ws.Event{
			Type:    ws.EventNewChat,
			Payload: chat,
		})
	}

	view := &ChatView{Chat: chat, Listing: summarize(listing)}
	return view, message, nil
}

type SendMessageInput struct {
	ChatID        string `json:"chat_id" validate:"required"`
	Type          string `json:"type" validate:"omitempty,oneof=text image location"`
	Content       string `json:"content" validate:"required,max=2000"`
	AttachmentURL string `json:"attachment_url"`
	ClientKey     string `json:"client_key"`
}

// SendMessage stores and fans out a message. ClientKey makes it
// idempotent: a retry or duplicate submit with the same key returns the
// already stored message and triggers no second broadcast, so the
// sender's optimistic append never turns into a double bubble.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	if !uc.rateLimiter.Allow(senderID, "send_message") {
		return nil, errors.TooManyRequests("You are sending messages too quickly", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}

	return uc.deliver(ctx, chat, senderID, input)
}

func (uc *ChatUseCase) deliver(ctx context.Context, chat *entity.Chat, senderID string, input SendMessageInput) (*entity.Message, error) {
	if input.ClientKey != "" {
		existing, err := uc.chatRepo.GetMessageByClientKey(ctx, chat.ID, input.ClientKey)
		if err == nil {
			logger.Debug("Duplicate client key %s in chat %s, returning stored message", input.ClientKey, chat.ID)
			return existing, nil
		}
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
	}

	msgType := input.Type
	if msgType == "" {
		msgType = entity.MessageTypeText
	}
	recipientID := chat.OtherParticipant(senderID)

	message := &entity.Message{
		ID:            uuid.New().String(),
		ChatID:        chat.ID,
		SenderID:      senderID,
		RecipientID:   recipientID,
		Type:          msgType,
		Content:       strings.TrimSpace(input.Content),
		AttachmentURL: input.AttachmentURL,
		ClientKey:     input.ClientKey,
		ReadBy:        []string{senderID},
		CreatedAt:     time.Now(),
	}
	if message.Content == "" {
		return nil, errors.BadRequest("Message cannot be empty", nil)
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	chat.LastMessage = previewOf(message)
	chat.LastMessageAt = message.CreatedAt
	if chat.UnreadCounts == nil {
		chat.UnreadCounts = map[string]int{}
	}
	chat.UnreadCounts[recipientID]++
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.Error("Failed to update chat %s after message: %v", chat.ID, err)
	}

	uc.wsManager.BroadcastToRoom(chat.ID, ws.Event{
		Type:    ws.EventNewMessage,
		Payload: message,
	}, senderID)

	uc.wsManager.SendToUser(recipientID, ws.Event{
		Type: ws.EventChatListUpdate,
		Payload: map[string]interface{}{
			"chat_id":         chat.ID,
			"last_message":    chat.LastMessage,
			"last_message_at": chat.LastMessageAt,
			"unread_count":    chat.UnreadCounts[recipientID],
		},
	})

	// Stored notification only when the recipient is not looking at
	// this conversation.
	if uc.notificationUC != nil && !uc.wsManager.IsInRoom(recipientID, chat.ID) {
		uc.notificationUC.NotifyAsync(recipientID, entity.NotificationTypeMessage,
			"New message",
			previewOf(message),
			map[string]interface{}{"chat_id": chat.ID},
		)
	}

	return message, nil
}

func previewOf(message *entity.Message) string {
	switch message.Type {
	case entity.MessageTypeImage:
		return "Sent a photo"
	case entity.MessageTypeLocation:
		return "Shared a location"
	default:
		// Truncate on a rune boundary; a byte slice could cut a
		// multi-byte character in half.
		runes := []rune(message.Content)
		if len(runes) > 80 {
			return string(runes[:80])
		}
		return message.Content
	}
}

// SendLocation shares a map point as a location message.
func (uc *ChatUseCase) SendLocation(ctx context.Context, senderID, chatID string, lat, lng float64, clientKey string) (*entity.Message, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, errors.BadRequest("Invalid coordinates", nil)
	}
	return uc.SendMessage(ctx, senderID, SendMessageInput{
		ChatID:    chatID,
		Type:      entity.MessageTypeLocation,
		Content:   fmt.Sprintf("geo:%f,%f", lat, lng),
		ClientKey: clientKey,
	})
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string, limit, offset int) ([]*ChatView, int64, error) {
	chats, total, err := uc.chatRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*ChatView, 0, len(chats))
	for _, chat := range chats {
		view := &ChatView{Chat: chat}

		if listing, err := uc.listingRepo.GetByID(ctx, chat.ListingID); err == nil {
			view.Listing = summarize(listing)
		}

		otherID := chat.OtherParticipant(userID)
		if other, err := uc.userRepo.GetByID(ctx, otherID); err == nil {
			view.OtherUser = &SellerProfile{
				ID:                 other.ID,
				Username:           other.Username,
				AvatarURL:          other.AvatarURL,
				Location:           other.Location,
				VerificationStatus: other.VerificationStatus,
				MemberSince:        other.CreatedAt,
			}
		}
		views = append(views, view)
	}
	return views, total, nil
}

// GetMessages returns a page of history, oldest first, so the client
// renders top-down without reversing.
func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}
	if !chat.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not part of this conversation", nil)
	}
	return uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
}

func (uc *ChatUseCase) MarkRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(userID) {
		return errors.Forbidden("You are not part of this conversation", nil)
	}

	if err := uc.chatRepo.MarkMessagesRead(ctx, chatID, userID); err != nil {
		return err
	}

	if chat.UnreadCounts == nil {
		chat.UnreadCounts = map[string]int{}
	}
	if chat.UnreadCounts[userID] != 0 {
		chat.UnreadCounts[userID] = 0
		if err := uc.chatRepo.Update(ctx, chat); err != nil {
			return err
		}
	}
	return nil
}
