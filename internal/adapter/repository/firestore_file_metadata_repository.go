package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
)

type firestoreFileMetadataRepository struct {
	client *firestore.Client
}

func NewFirestoreFileMetadataRepository(client *firestore.Client) repository.FileMetadataRepository {
	return &firestoreFileMetadataRepository{client: client}
}

func (r *firestoreFileMetadataRepository) Create(ctx context.Context, metadata *entity.FileMetadata) error {
	_, err := r.client.Collection("files").Doc(metadata.ID).Set(ctx, metadata)
	if err != nil {
		return errors.Internal("Failed to create file metadata", err)
	}
	return nil
}

func (r *firestoreFileMetadataRepository) GetByID(ctx context.Context, id string) (*entity.FileMetadata, error) {
	doc, err := r.client.Collection("files").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("File", err)
		}
		return nil, errors.Internal("Failed to get file metadata", err)
	}

	var metadata entity.FileMetadata
	if err := doc.DataTo(&metadata); err != nil {
		return nil, errors.Internal("Failed to parse file metadata", err)
	}
	metadata.ID = doc.Ref.ID
	return &metadata, nil
}

func (r *firestoreFileMetadataRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.FileMetadata, error) {
	docs, err := r.client.Collection("files").
		Where("entityType", "==", entityType).
		Where("entityId", "==", entityID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list files", err)
	}

	files := make([]*entity.FileMetadata, 0, len(docs))
	for _, doc := range docs {
		var metadata entity.FileMetadata
		if err := doc.DataTo(&metadata); err != nil {
			continue
		}
		metadata.ID = doc.Ref.ID
		files = append(files, &metadata)
	}
	return files, nil
}

func (r *firestoreFileMetadataRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.FileMetadata, int64, error) {
	docs, err := r.client.Collection("files").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list files", err)
	}

	files := make([]*entity.FileMetadata, 0, len(docs))
	for _, doc := range docs {
		var metadata entity.FileMetadata
		if err := doc.DataTo(&metadata); err != nil {
			continue
		}
		metadata.ID = doc.Ref.ID
		files = append(files, &metadata)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})

	total := int64(len(files))
	if offset >= len(files) {
		return []*entity.FileMetadata{}, total, nil
	}
	end := len(files)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return files[offset:end], total, nil
}

func (r *firestoreFileMetadataRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("files").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete file metadata", err)
	}
	return nil
}
