package repository

import (
	"context"

	"sokoni/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	SoftDelete(ctx context.Context, id string) error

	// ListActive returns every non-deleted active listing, optionally
	// narrowed to a category. Text matching, sorting and pagination
	// happen in the query composer.
	ListActive(ctx context.Context, category string) ([]*entity.Listing, error)
	ListByOwner(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Listing, int64, error)
	IncrementViews(ctx context.Context, id string) error
}
