package repository

import (
	"context"

	"sokoni/internal/domain/entity"
)

type VerificationRepository interface {
	Create(ctx context.Context, verification *entity.Verification) error
	GetByID(ctx context.Context, id string) (*entity.Verification, error)
	GetLatestByUser(ctx context.Context, userID string) (*entity.Verification, error)
	ListPending(ctx context.Context, limit, offset int) ([]*entity.Verification, int64, error)
	Update(ctx context.Context, verification *entity.Verification) error
}
