package usecase

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sokoni/internal/domain/entity"
	"sokoni/internal/infrastructure/ratelimit"
	ws "sokoni/internal/infrastructure/websocket"
)

func newChatUseCaseForTest() (*ChatUseCase, *fakeChatRepo, *fakeListingRepo) {
	chatRepo := newFakeChatRepo()
	listingRepo := newFakeListingRepo()
	userRepo := newFakeUserRepo()

	userRepo.Create(context.Background(), &entity.User{ID: "buyer", Username: "buyer"})
	userRepo.Create(context.Background(), &entity.User{ID: "seller", Username: "seller"})
	listingRepo.Create(context.Background(), &entity.Listing{
		ID: "l1", OwnerID: "seller", Title: "Toyota Corolla 2018",
		Category: entity.CategoryMotors, Status: entity.ListingStatusActive,
	})

	uc := NewChatUseCase(
		chatRepo,
		listingRepo,
		userRepo,
		ws.NewManager(),
		ratelimit.NewRateLimiter(1000, 1000),
		nil,
	)
	return uc, chatRepo, listingRepo
}

func TestStartChatCreatesThenReusesThread(t *testing.T) {
	uc, chatRepo, _ := newChatUseCaseForTest()

	first, _, err := uc.StartChat(context.Background(), "buyer", StartChatInput{
		ListingID: "l1",
		Message:   "Is this still available?",
		ClientKey: "k1",
	})
	require.NoError(t, err)

	second, _, err := uc.StartChat(context.Background(), "buyer", StartChatInput{
		ListingID: "l1",
		Message:   "Can I see it tomorrow?",
		ClientKey: "k2",
	})
	require.NoError(t, err)

	assert.Equal(t, first.Chat.ID, second.Chat.ID)
	assert.Equal(t, 2, chatRepo.messageCount(first.Chat.ID))
}

func TestStartChatRejectsOwnListing(t *testing.T) {
	uc, _, _ := newChatUseCaseForTest()

	_, _, err := uc.StartChat(context.Background(), "seller", StartChatInput{
		ListingID: "l1",
		Message:   "Hello me",
	})
	assert.Error(t, err)
}

func TestSendMessageClientKeyDeduplicates(t *testing.T) {
	uc, chatRepo, _ := newChatUseCaseForTest()

	view, _, err := uc.StartChat(context.Background(), "buyer", StartChatInput{
		ListingID: "l1",
		Message:   "Is this still available?",
		ClientKey: "k-start",
	})
	require.NoError(t, err)
	chatID := view.Chat.ID

	input := SendMessageInput{ChatID: chatID, Content: "Offer: 9000", ClientKey: "k-offer"}
	first, err := uc.SendMessage(context.Background(), "buyer", input)
	require.NoError(t, err)

	// The retry lands on the stored message; nothing is duplicated.
	retry, err := uc.SendMessage(context.Background(), "buyer", input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, retry.ID)
	assert.Equal(t, 2, chatRepo.messageCount(chatID))

	// Unread count for the seller counted the message once.
	chat, err := chatRepo.GetByID(context.Background(), chatID)
	require.NoError(t, err)
	assert.Equal(t, 2, chat.UnreadCounts["seller"])
}

func TestSendMessageRequiresMembership(t *testing.T) {
	uc, _, _ := newChatUseCaseForTest()

	view, _, err := uc.StartChat(context.Background(), "buyer", StartChatInput{
		ListingID: "l1",
		Message:   "hi there",
	})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "intruder", SendMessageInput{
		ChatID:  view.Chat.ID,
		Content: "let me in",
	})
	assert.Error(t, err)
}

func TestMessagesComeBackOldestFirst(t *testing.T) {
	uc, _, _ := newChatUseCaseForTest()

	view, _, err := uc.StartChat(context.Background(), "buyer", StartChatInput{
		ListingID: "l1",
		Message:   "first",
	})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	_, err = uc.SendMessage(context.Background(), "buyer", SendMessageInput{
		ChatID:  view.Chat.ID,
		Content: "second",
	})
	require.NoError(t, err)

	messages, total, err := uc.GetMessages(context.Background(), "buyer", view.Chat.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
}

func TestMarkReadResetsUnread(t *testing.T) {
	uc, chatRepo, _ := newChatUseCaseForTest()

	view, _, err := uc.StartChat(context.Background(), "buyer", StartChatInput{
		ListingID: "l1",
		Message:   "ping",
	})
	require.NoError(t, err)

	require.NoError(t, uc.MarkRead(context.Background(), "seller", view.Chat.ID))

	chat, err := chatRepo.GetByID(context.Background(), view.Chat.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, chat.UnreadCounts["seller"])

	messages, _, err := uc.GetMessages(context.Background(), "seller", view.Chat.ID, 20, 0)
	require.NoError(t, err)
	assert.True(t, messages[0].IsReadBy("seller"))
}

func TestSendMessageRateLimited(t *testing.T) {
	chatRepo := newFakeChatRepo()
	listingRepo := newFakeListingRepo()
	listingRepo.Create(context.Background(), &entity.Listing{
		ID: "l1", OwnerID: "seller", Status: entity.ListingStatusActive,
	})
	uc := NewChatUseCase(
		chatRepo,
		listingRepo,
		newFakeUserRepo(),
		ws.NewManager(),
		ratelimit.NewRateLimiter(0.001, 2),
		nil,
	)

	view, _, err := uc.StartChat(context.Background(), "buyer", StartChatInput{
		ListingID: "l1",
		Message:   "one",
	})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "buyer", SendMessageInput{ChatID: view.Chat.ID, Content: "two"})
	require.NoError(t, err)
	_, err = uc.SendMessage(context.Background(), "buyer", SendMessageInput{ChatID: view.Chat.ID, Content: "three"})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "buyer", SendMessageInput{ChatID: view.Chat.ID, Content: "four"})
	assert.Error(t, err)
}

func TestSendLocationEncodesCoordinates(t *testing.T) {
	uc, _, _ := newChatUseCaseForTest()

	view, _, err := uc.StartChat(context.Background(), "buyer", StartChatInput{
		ListingID: "l1",
		Message:   "meet?",
	})
	require.NoError(t, err)

	message, err := uc.SendLocation(context.Background(), "buyer", view.Chat.ID, -1.286389, 36.817223, "")
	require.NoError(t, err)
	assert.Equal(t, entity.MessageTypeLocation, message.Type)
	assert.Contains(t, message.Content, "geo:")

	_, err = uc.SendLocation(context.Background(), "buyer", view.Chat.ID, 120, 36, "")
	assert.Error(t, err)
}

func TestPreviewTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 100)
	preview := previewOf(&entity.Message{Type: entity.MessageTypeText, Content: long})

	assert.True(t, utf8.ValidString(preview))
	assert.Equal(t, strings.Repeat("é", 80), preview)

	short := previewOf(&entity.Message{Type: entity.MessageTypeText, Content: "hello"})
	assert.Equal(t, "hello", short)
}
