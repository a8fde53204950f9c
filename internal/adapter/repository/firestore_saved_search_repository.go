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

type firestoreSavedSearchRepository struct {
	client *firestore.Client
}

func NewFirestoreSavedSearchRepository(client *firestore.Client) repository.SavedSearchRepository {
	return &firestoreSavedSearchRepository{client: client}
}

func (r *firestoreSavedSearchRepository) Create(ctx context.Context, search *entity.SavedSearch) error {
	_, err := r.client.Collection("saved_searches").Doc(search.ID).Set(ctx, search)
	if err != nil {
		return errors.Internal("Failed to create saved search", err)
	}
	return nil
}

func (r *firestoreSavedSearchRepository) GetByID(ctx context.Context, id string) (*entity.SavedSearch, error) {
	doc, err := r.client.Collection("saved_searches").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Saved search", err)
		}
		return nil, errors.Internal("Failed to get saved search", err)
	}

	var search entity.SavedSearch
	if err := doc.DataTo(&search); err != nil {
		return nil, errors.Internal("Failed to parse saved search data", err)
	}
	search.ID = doc.Ref.ID
	return &search, nil
}

func (r *firestoreSavedSearchRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.SavedSearch, int64, error) {
	docs, err := r.client.Collection("saved_searches").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list saved searches", err)
	}

	searches := make([]*entity.SavedSearch, 0, len(docs))
	for _, doc := range docs {
		var search entity.SavedSearch
		if err := doc.DataTo(&search); err != nil {
			continue
		}
		search.ID = doc.Ref.ID
		searches = append(searches, &search)
	}

	sort.Slice(searches, func(i, j int) bool {
		return searches[i].UpdatedAt.After(searches[j].UpdatedAt)
	})

	total := int64(len(searches))
	if offset >= len(searches) {
		return []*entity.SavedSearch{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(searches) {
		end = len(searches)
	}
	return searches[offset:end], total, nil
}

func (r *firestoreSavedSearchRepository) ListAll(ctx context.Context) ([]*entity.SavedSearch, error) {
	docs, err := r.client.Collection("saved_searches").Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list saved searches", err)
	}

	searches := make([]*entity.SavedSearch, 0, len(docs))
	for _, doc := range docs {
		var search entity.SavedSearch
		if err := doc.DataTo(&search); err != nil {
			continue
		}
		search.ID = doc.Ref.ID
		searches = append(searches, &search)
	}
	return searches, nil
}

func (r *firestoreSavedSearchRepository) Update(ctx context.Context, search *entity.SavedSearch) error {
	search.UpdatedAt = time.Now()
	_, err := r.client.Collection("saved_searches").Doc(search.ID).Set(ctx, search)
	if err != nil {
		return errors.Internal("Failed to update saved search", err)
	}
	return nil
}

func (r *firestoreSavedSearchRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("saved_searches").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete saved search", err)
	}
	return nil
}
