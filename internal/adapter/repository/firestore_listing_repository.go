package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{client: client}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	listing, err := listingFromDoc(doc)
	if err != nil {
		return nil, err
	}
	if listing.Status == entity.ListingStatusDeleted {
		return nil, errors.NotFound("Listing", nil)
	}
	return listing, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now()
	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to update listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: entity.ListingStatusDeleted},
		{Path: "deletedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.Internal("Failed to delete listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) ListActive(ctx context.Context, category string) ([]*entity.Listing, error) {
	query := r.client.Collection("listings").Where("status", "==", entity.ListingStatusActive)
	if category != "" {
		query = query.Where("category", "==", category)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list listings", err)
	}

	listings := make([]*entity.Listing, 0, len(docs))
	for _, doc := range docs {
		listing, err := listingFromDoc(doc)
		if err != nil {
			logger.Warn("Skipping unreadable listing %s: %v", doc.Ref.ID, err)
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (r *firestoreListingRepository) ListByOwner(ctx context.Context, ownerID string, statusFilter string, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.client.Collection("listings").Where("ownerId", "==", ownerID)
	if statusFilter != "" {
		query = query.Where("status", "==", statusFilter)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list listings by owner", err)
	}

	listings := make([]*entity.Listing, 0, len(docs))
	for _, doc := range docs {
		listing, err := listingFromDoc(doc)
		if err != nil {
			continue
		}
		if statusFilter == "" && listing.Status == entity.ListingStatusDeleted {
			continue
		}
		listings = append(listings, listing)
	}

	total := int64(len(listings))
	if offset >= len(listings) {
		return []*entity.Listing{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(listings) {
		end = len(listings)
	}
	return listings[offset:end], total, nil
}

func (r *firestoreListingRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.Internal("Failed to increment views", err)
	}
	return nil
}

func listingFromDoc(doc *firestore.DocumentSnapshot) (*entity.Listing, error) {
	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	listing.ID = doc.Ref.ID
	return &listing, nil
}
