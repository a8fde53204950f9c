package repository

import (
	"context"

	"sokoni/internal/domain/entity"
)

type FileMetadataRepository interface {
	Create(ctx context.Context, metadata *entity.FileMetadata) error
	GetByID(ctx context.Context, id string) (*entity.FileMetadata, error)
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.FileMetadata, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.FileMetadata, int64, error)
	Delete(ctx context.Context, id string) error
}
