package repository

import (
	"context"

	"sokoni/internal/domain/entity"
)

type SavedSearchRepository interface {
	Create(ctx context.Context, search *entity.SavedSearch) error
	GetByID(ctx context.Context, id string) (*entity.SavedSearch, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.SavedSearch, int64, error)
	ListAll(ctx context.Context) ([]*entity.SavedSearch, error)
	Update(ctx context.Context, search *entity.SavedSearch) error
	Delete(ctx context.Context, id string) error
}
