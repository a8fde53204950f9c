package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
)

const maxSavedSearches = 50

type SavedSearchUseCase struct {
	savedSearchRepo repository.SavedSearchRepository
}

func NewSavedSearchUseCase(savedSearchRepo repository.SavedSearchRepository) *SavedSearchUseCase {
	return &SavedSearchUseCase{savedSearchRepo: savedSearchRepo}
}

type SaveSearchInput struct {
	Query    string                 `json:"query" validate:"required,min=2,max=120"`
	Category string                 `json:"category"`
	Filters  map[string]interface{} `json:"filters"`
}

func (uc *SavedSearchUseCase) Save(ctx context.Context, userID string, input SaveSearchInput) (*entity.SavedSearch, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.BadRequest("Query is required", nil)
	}

	category := ""
	if input.Category != "" {
		normalized, ok := entity.NormalizeCategory(input.Category)
		if !ok {
			return nil, errors.BadRequest("Unknown category", nil)
		}
		category = normalized
	}

	existing, total, err := uc.savedSearchRepo.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		return nil, err
	}

	// Saving the same query twice just refreshes the existing entry,
	// even for a user at the cap.
	for _, s := range existing {
		if strings.EqualFold(s.Query, query) && s.Category == category {
			s.Filters = input.Filters
			if err := uc.savedSearchRepo.Update(ctx, s); err != nil {
				return nil, err
			}
			return s, nil
		}
	}

	if total >= maxSavedSearches {
		return nil, errors.BadRequest("Saved search limit reached", nil)
	}

	now := time.Now()
	search := &entity.SavedSearch{
		ID:        uuid.New().String(),
		UserID:    userID,
		Query:     query,
		Category:  category,
		Filters:   input.Filters,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.savedSearchRepo.Create(ctx, search); err != nil {
		return nil, err
	}
	return search, nil
}

func (uc *SavedSearchUseCase) List(ctx context.Context, userID string, limit, offset int) ([]*entity.SavedSearch, int64, error) {
	return uc.savedSearchRepo.ListByUser(ctx, userID, limit, offset)
}

func (uc *SavedSearchUseCase) Delete(ctx context.Context, userID, searchID string) error {
	search, err := uc.savedSearchRepo.GetByID(ctx, searchID)
	if err != nil {
		return err
	}
	if search.UserID != userID {
		return errors.Forbidden("You can only delete your own saved searches", nil)
	}
	return uc.savedSearchRepo.Delete(ctx, searchID)
}
