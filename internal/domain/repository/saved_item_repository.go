package repository

import (
	"context"

	"sokoni/internal/domain/entity"
)

// SavedItemRepository backs both favorites and bookmarks; each gets its
// own instance bound to its own collection.
type SavedItemRepository interface {
	// Add stores the item keyed by (user, listing). Adding an item that
	// already exists returns the stored item unchanged.
	Add(ctx context.Context, item *entity.SavedItem) (*entity.SavedItem, error)
	Get(ctx context.Context, userID, listingID string) (*entity.SavedItem, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.SavedItem, int64, error)
	Remove(ctx context.Context, userID, listingID string) error
}
