package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
)

type firestoreVerificationRepository struct {
	client *firestore.Client
}

func NewFirestoreVerificationRepository(client *firestore.Client) repository.VerificationRepository {
	return &firestoreVerificationRepository{client: client}
}

func (r *firestoreVerificationRepository) Create(ctx context.Context, verification *entity.Verification) error {
	_, err := r.client.Collection("verifications").Doc(verification.ID).Set(ctx, verification)
	if err != nil {
		return errors.Internal("Failed to create verification", err)
	}
	return nil
}

func (r *firestoreVerificationRepository) GetByID(ctx context.Context, id string) (*entity.Verification, error) {
	doc, err := r.client.Collection("verifications").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Verification", err)
		}
		return nil, errors.Internal("Failed to get verification", err)
	}

	var verification entity.Verification
	if err := doc.DataTo(&verification); err != nil {
		return nil, errors.Internal("Failed to parse verification data", err)
	}
	verification.ID = doc.Ref.ID
	return &verification, nil
}

func (r *firestoreVerificationRepository) GetLatestByUser(ctx context.Context, userID string) (*entity.Verification, error) {
	docs, err := r.client.Collection("verifications").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query verifications", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("Verification", nil)
	}

	verifications := make([]*entity.Verification, 0, len(docs))
	for _, doc := range docs {
		var verification entity.Verification
		if err := doc.DataTo(&verification); err != nil {
			continue
		}
		verification.ID = doc.Ref.ID
		verifications = append(verifications, &verification)
	}
	if len(verifications) == 0 {
		return nil, errors.NotFound("Verification", nil)
	}

	sort.Slice(verifications, func(i, j int) bool {
		return verifications[i].CreatedAt.After(verifications[j].CreatedAt)
	})
	return verifications[0], nil
}

func (r *firestoreVerificationRepository) ListPending(ctx context.Context, limit, offset int) ([]*entity.Verification, int64, error) {
	docs, err := r.client.Collection("verifications").
		Where("status", "==", entity.VerificationStatusPending).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list pending verifications", err)
	}

	verifications := make([]*entity.Verification, 0, len(docs))
	for _, doc := range docs {
		var verification entity.Verification
		if err := doc.DataTo(&verification); err != nil {
			continue
		}
		verification.ID = doc.Ref.ID
		verifications = append(verifications, &verification)
	}

	// Oldest submissions reviewed first.
	sort.Slice(verifications, func(i, j int) bool {
		return verifications[i].CreatedAt.Before(verifications[j].CreatedAt)
	})

	total := int64(len(verifications))
	if offset >= len(verifications) {
		return []*entity.Verification{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(verifications) {
		end = len(verifications)
	}
	return verifications[offset:end], total, nil
}

func (r *firestoreVerificationRepository) Update(ctx context.Context, verification *entity.Verification) error {
	verification.UpdatedAt = time.Now()
	_, err := r.client.Collection("verifications").Doc(verification.ID).Set(ctx, verification)
	if err != nil {
		return errors.Internal("Failed to update verification", err)
	}
	return nil
}
