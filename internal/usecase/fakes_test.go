package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/service"
	"sokoni/pkg/errors"
)

// In-memory repository fakes shared by the use case tests.

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	// hook runs inside ListActive, before returning. Tests use it to
	// simulate work racing with a newer request.
	onListActive func()
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]*entity.Listing{}}
}

func (r *fakeListingRepo) Create(_ context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *fakeListingRepo) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok || listing.Status == entity.ListingStatusDeleted {
		return nil, errors.NotFound("Listing", nil)
	}
	copied := *listing
	return &copied, nil
}

func (r *fakeListingRepo) Update(_ context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *fakeListingRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.Status = entity.ListingStatusDeleted
	return nil
}

func (r *fakeListingRepo) ListActive(_ context.Context, category string) ([]*entity.Listing, error) {
	r.mu.Lock()
	hook := r.onListActive
	out := make([]*entity.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if l.Status != entity.ListingStatusActive {
			continue
		}
		if category != "" && l.Category != category {
			continue
		}
		copied := *l
		out = append(out, &copied)
	}
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeListingRepo) ListByOwner(_ context.Context, ownerID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Listing{}
	for _, l := range r.listings {
		if l.OwnerID != ownerID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		copied := *l
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing, ok := r.listings[id]; ok {
		listing.Views++
	}
	return nil
}

func (r *fakeListingRepo) statusOf(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing, ok := r.listings[id]; ok {
		return listing.Status
	}
	return ""
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	return r.Create(context.Background(), user)
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	if v, ok := fields["verificationStatus"].(string); ok {
		user.VerificationStatus = v
	}
	return nil
}

type fakeSavedSearchRepo struct {
	mu       sync.Mutex
	searches map[string]*entity.SavedSearch
}

func newFakeSavedSearchRepo() *fakeSavedSearchRepo {
	return &fakeSavedSearchRepo{searches: map[string]*entity.SavedSearch{}}
}

func (r *fakeSavedSearchRepo) Create(_ context.Context, search *entity.SavedSearch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Like the real store: a document needs its ID up front.
	if search.ID == "" {
		return errors.Internal("Saved search has no ID", nil)
	}
	copied := *search
	r.searches[search.ID] = &copied
	return nil
}

func (r *fakeSavedSearchRepo) GetByID(_ context.Context, id string) (*entity.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	search, ok := r.searches[id]
	if !ok {
		return nil, errors.NotFound("Saved search", nil)
	}
	copied := *search
	return &copied, nil
}

func (r *fakeSavedSearchRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entity.SavedSearch, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.SavedSearch{}
	for _, s := range r.searches {
		if s.UserID == userID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSavedSearchRepo) ListAll(_ context.Context) ([]*entity.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.SavedSearch{}
	for _, s := range r.searches {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeSavedSearchRepo) Update(_ context.Context, search *entity.SavedSearch) error {
	return r.Create(context.Background(), search)
}

func (r *fakeSavedSearchRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.searches, id)
	return nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    map[string]*entity.Chat{},
		messages: map[string][]*entity.Message{},
	}
}

func (r *fakeChatRepo) Create(_ context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *chat
	r.chats[chat.ID] = &copied
	return nil
}

func (r *fakeChatRepo) GetByID(_ context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	copied := *chat
	return &copied, nil
}

func (r *fakeChatRepo) GetByParticipantsAndListing(_ context.Context, userA, userB, listingID string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, chat := range r.chats {
		if chat.ListingID == listingID && chat.HasParticipant(userA) && chat.HasParticipant(userB) {
			copied := *chat
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *fakeChatRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entity.Chat, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Chat{}
	for _, chat := range r.chats {
		if chat.HasParticipant(userID) {
			copied := *chat
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeChatRepo) Update(_ context.Context, chat *entity.Chat) error {
	return r.Create(context.Background(), chat)
}

func (r *fakeChatRepo) CreateMessage(_ context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &copied)
	return nil
}

func (r *fakeChatRepo) GetMessageByClientKey(_ context.Context, chatID, clientKey string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, message := range r.messages[chatID] {
		if message.ClientKey == clientKey {
			copied := *message
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *fakeChatRepo) ListMessages(_ context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.messages[chatID]
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return []*entity.Message{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Message, 0, end-offset)
	for _, m := range all[offset:end] {
		copied := *m
		out = append(out, &copied)
	}
	return out, total, nil
}

func (r *fakeChatRepo) MarkMessagesRead(_ context.Context, chatID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, message := range r.messages[chatID] {
		if message.SenderID != userID && !message.IsReadBy(userID) {
			message.ReadBy = append(message.ReadBy, userID)
		}
	}
	return nil
}

func (r *fakeChatRepo) messageCount(chatID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages[chatID])
}

type fakeSavedItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.SavedItem
}

func newFakeSavedItemRepo() *fakeSavedItemRepo {
	return &fakeSavedItemRepo{items: map[string]*entity.SavedItem{}}
}

func (r *fakeSavedItemRepo) Add(_ context.Context, item *entity.SavedItem) (*entity.SavedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := item.UserID + "_" + item.ListingID
	if existing, ok := r.items[key]; ok {
		copied := *existing
		return &copied, nil
	}
	item.ID = key
	copied := *item
	r.items[key] = &copied
	return item, nil
}

func (r *fakeSavedItemRepo) Get(_ context.Context, userID, listingID string) (*entity.SavedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[userID+"_"+listingID]
	if !ok {
		return nil, errors.NotFound("Saved item", nil)
	}
	copied := *item
	return &copied, nil
}

func (r *fakeSavedItemRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entity.SavedItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.SavedItem{}
	for _, item := range r.items {
		if item.UserID == userID {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSavedItemRepo) Remove(_ context.Context, userID, listingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userID + "_" + listingID
	if _, ok := r.items[key]; !ok {
		return errors.NotFound("Saved item", nil)
	}
	delete(r.items, key)
	return nil
}

type fakeFileRepo struct {
	mu    sync.Mutex
	files []*entity.FileMetadata
}

func newFakeFileRepo() *fakeFileRepo { return &fakeFileRepo{} }

func (r *fakeFileRepo) Create(_ context.Context, metadata *entity.FileMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *metadata
	r.files = append(r.files, &copied)
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id string) (*entity.FileMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.ID == id {
			copied := *f
			return &copied, nil
		}
	}
	return nil, errors.NotFound("File", nil)
}

func (r *fakeFileRepo) ListByEntity(_ context.Context, entityType, entityID string) ([]*entity.FileMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.FileMetadata{}
	for _, f := range r.files {
		if f.EntityType == entityType && f.EntityID == entityID {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entity.FileMetadata, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.FileMetadata{}
	for _, f := range r.files {
		if f.UserID == userID {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id string) error {
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo { return &fakeNotificationRepo{} }

func (r *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entity.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

// fakeUploader records uploads and deletions and can fail a specific
// filename.
type fakeUploader struct {
	mu       sync.Mutex
	uploads  []string
	deleted  []string
	failFile string
}

func newFakeUploader() *fakeUploader { return &fakeUploader{} }

func (u *fakeUploader) UploadFile(_ context.Context, _ io.Reader, filename, _, folder string) (*service.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if filename == u.failFile {
		return nil, fmt.Errorf("simulated upload failure for %s", filename)
	}
	objectName := folder + "/" + filename
	u.uploads = append(u.uploads, objectName)
	return &service.UploadResult{
		URL:        "https://storage.example.com/" + objectName,
		ObjectName: objectName,
		Size:       1,
	}, nil
}

func (u *fakeUploader) DeleteFile(_ context.Context, objectName string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, objectName)
	return nil
}

func (u *fakeUploader) Close() error { return nil }
