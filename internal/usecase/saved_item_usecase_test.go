package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sokoni/internal/domain/entity"
)

func newSavedItemUseCaseForTest() (*SavedItemUseCase, *fakeListingRepo) {
	listingRepo := newFakeListingRepo()
	listingRepo.Create(context.Background(), &entity.Listing{
		ID: "l1", OwnerID: "seller", Title: "Toyota Corolla 2018",
		Status: entity.ListingStatusActive,
	})
	listingRepo.Create(context.Background(), &entity.Listing{
		ID: "l2", OwnerID: "seller", Title: "Honda Civic",
		Status: entity.ListingStatusActive,
	})
	return NewFavoriteUseCase(newFakeSavedItemRepo(), listingRepo), listingRepo
}

func TestAddIsIdempotent(t *testing.T) {
	uc, _ := newSavedItemUseCaseForTest()

	first, err := uc.Add(context.Background(), "buyer", "l1")
	require.NoError(t, err)

	// Double tap: no error, no duplicate.
	second, err := uc.Add(context.Background(), "buyer", "l1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, total, err := uc.List(context.Background(), "buyer", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestAddRejectsOwnListing(t *testing.T) {
	uc, _ := newSavedItemUseCaseForTest()

	_, err := uc.Add(context.Background(), "seller", "l1")
	assert.Error(t, err)
}

func TestListSkipsListingsNoLongerActive(t *testing.T) {
	uc, listingRepo := newSavedItemUseCaseForTest()

	_, err := uc.Add(context.Background(), "buyer", "l1")
	require.NoError(t, err)
	_, err = uc.Add(context.Background(), "buyer", "l2")
	require.NoError(t, err)

	require.NoError(t, listingRepo.SoftDelete(context.Background(), "l2"))

	items, _, err := uc.List(context.Background(), "buyer", 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "l1", items[0].ListingID)
}

func TestRemoveOnlyTouchesOwnItems(t *testing.T) {
	uc, _ := newSavedItemUseCaseForTest()

	_, err := uc.Add(context.Background(), "buyer", "l1")
	require.NoError(t, err)

	// Someone else removing the same listing id misses: the key is
	// (user, listing).
	err = uc.Remove(context.Background(), "other", "l1")
	assert.Error(t, err)

	saved, err := uc.IsSaved(context.Background(), "buyer", "l1")
	require.NoError(t, err)
	assert.True(t, saved)

	require.NoError(t, uc.Remove(context.Background(), "buyer", "l1"))
	saved, err = uc.IsSaved(context.Background(), "buyer", "l1")
	require.NoError(t, err)
	assert.False(t, saved)
}
