package usecase

import (
	"context"
	"time"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
)

// SavedItemUseCase drives favorites and bookmarks; each feature gets
// its own instance over its own collection.
type SavedItemUseCase struct {
	itemRepo    repository.SavedItemRepository
	listingRepo repository.ListingRepository
}

func NewFavoriteUseCase(itemRepo repository.SavedItemRepository, listingRepo repository.ListingRepository) *SavedItemUseCase {
	return &SavedItemUseCase{itemRepo: itemRepo, listingRepo: listingRepo}
}

func NewBookmarkUseCase(itemRepo repository.SavedItemRepository, listingRepo repository.ListingRepository) *SavedItemUseCase {
	return &SavedItemUseCase{itemRepo: itemRepo, listingRepo: listingRepo}
}

// Add saves the listing for the user. Adding twice is a no-op that
// returns the existing item, so an impatient double tap cannot fail or
// duplicate.
func (uc *SavedItemUseCase) Add(ctx context.Context, userID, listingID string) (*entity.SavedItem, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != entity.ListingStatusActive {
		return nil, errors.BadRequest("This listing is no longer available", nil)
	}
	if listing.IsOwnedBy(userID) {
		return nil, errors.BadRequest("You cannot save your own listing", nil)
	}

	return uc.itemRepo.Add(ctx, &entity.SavedItem{
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	})
}

// List resolves each saved item to its listing. Listings that were
// deleted or sold since saving disappear from the view.
func (uc *SavedItemUseCase) List(ctx context.Context, userID string, limit, offset int) ([]*entity.SavedItemWithListing, int64, error) {
	items, total, err := uc.itemRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	resolved := make([]*entity.SavedItemWithListing, 0, len(items))
	for _, item := range items {
		listing, err := uc.listingRepo.GetByID(ctx, item.ListingID)
		if err != nil || listing.Status != entity.ListingStatusActive {
			continue
		}
		resolved = append(resolved, &entity.SavedItemWithListing{
			SavedItem: *item,
			Listing:   listing,
		})
	}
	return resolved, total, nil
}

func (uc *SavedItemUseCase) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	_, err := uc.itemRepo.Get(ctx, userID, listingID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Remove deletes the user's own saved item. The (user, listing) key
// means a user can never remove anyone else's.
func (uc *SavedItemUseCase) Remove(ctx context.Context, userID, listingID string) error {
	return uc.itemRepo.Remove(ctx, userID, listingID)
}
