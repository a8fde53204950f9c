package repository

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
)

// firestoreSavedItemRepository serves favorites and bookmarks; the
// collection name is the only difference. The document ID is
// "<userID>_<listingID>", so repeated adds land on the same document.
type firestoreSavedItemRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.SavedItemRepository {
	return &firestoreSavedItemRepository{client: client, collection: "favorites"}
}

func NewFirestoreBookmarkRepository(client *firestore.Client) repository.SavedItemRepository {
	return &firestoreSavedItemRepository{client: client, collection: "bookmarks"}
}

func savedItemDocID(userID, listingID string) string {
	return fmt.Sprintf("%s_%s", userID, listingID)
}

func (r *firestoreSavedItemRepository) Add(ctx context.Context, item *entity.SavedItem) (*entity.SavedItem, error) {
	docID := savedItemDocID(item.UserID, item.ListingID)

	existing, err := r.Get(ctx, item.UserID, item.ListingID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	item.ID = docID
	if _, err := r.client.Collection(r.collection).Doc(docID).Set(ctx, item); err != nil {
		return nil, errors.Internal("Failed to save item", err)
	}
	return item, nil
}

func (r *firestoreSavedItemRepository) Get(ctx context.Context, userID, listingID string) (*entity.SavedItem, error) {
	doc, err := r.client.Collection(r.collection).Doc(savedItemDocID(userID, listingID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Saved item", err)
		}
		return nil, errors.Internal("Failed to get saved item", err)
	}

	var item entity.SavedItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse saved item data", err)
	}
	item.ID = doc.Ref.ID
	return &item, nil
}

func (r *firestoreSavedItemRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.SavedItem, int64, error) {
	docs, err := r.client.Collection(r.collection).
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list saved items", err)
	}

	items := make([]*entity.SavedItem, 0, len(docs))
	for _, doc := range docs {
		var item entity.SavedItem
		if err := doc.DataTo(&item); err != nil {
			continue
		}
		item.ID = doc.Ref.ID
		items = append(items, &item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := int64(len(items))
	if offset >= len(items) {
		return []*entity.SavedItem{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end], total, nil
}

func (r *firestoreSavedItemRepository) Remove(ctx context.Context, userID, listingID string) error {
	docID := savedItemDocID(userID, listingID)

	if _, err := r.Get(ctx, userID, listingID); err != nil {
		return err
	}
	if _, err := r.client.Collection(r.collection).Doc(docID).Delete(ctx); err != nil {
		return errors.Internal("Failed to remove saved item", err)
	}
	return nil
}
