package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sokoni/internal/domain/entity"
)

func seedListings(repo *fakeListingRepo) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	listings := []*entity.Listing{
		{ID: "l1", OwnerID: "seller", Category: entity.CategoryMotors, Title: "Toyota Corolla 2018", Description: "Clean family car", Price: 9500, Status: entity.ListingStatusActive, CreatedAt: base},
		{ID: "l2", OwnerID: "seller", Category: entity.CategoryMotors, Title: "Honda Civic", Description: "Low mileage", Price: 8000, Status: entity.ListingStatusActive, CreatedAt: base.Add(time.Hour)},
		{ID: "l3", OwnerID: "seller", Category: entity.CategoryElectronics, Title: "MacBook Pro", Description: "2021 model, great condition", Price: 1200, Status: entity.ListingStatusActive, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "l4", OwnerID: "seller", Category: entity.CategoryMotors, Title: "Toyota Land Cruiser", Description: "Off-road ready", Price: 30000, Status: entity.ListingStatusPending, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "l5", OwnerID: "seller", Category: entity.CategoryFurniture, Title: "Oak dining table", Description: "Seats six, includes toyota keychain", Price: 250, Status: entity.ListingStatusActive, CreatedAt: base.Add(4 * time.Hour)},
	}
	for _, l := range listings {
		repo.Create(context.Background(), l)
	}
}

func newListingUseCaseForTest() (*ListingUseCase, *fakeListingRepo, *fakeSavedSearchRepo) {
	listingRepo := newFakeListingRepo()
	searchRepo := newFakeSavedSearchRepo()
	uc := NewListingUseCase(listingRepo, newFakeUserRepo(), searchRepo)
	return uc, listingRepo, searchRepo
}

func TestSearchMatchesTitleDescriptionAndCategory(t *testing.T) {
	uc, repo, _ := newListingUseCaseForTest()
	seedListings(repo)

	items, total, err := uc.Search(context.Background(), SearchInput{Query: "toyota", Limit: 20})
	require.NoError(t, err)

	// Title match (l1), description match (l5); the pending Land
	// Cruiser stays invisible.
	assert.Equal(t, int64(2), total)
	ids := []string{items[0].ID, items[1].ID}
	assert.Contains(t, ids, "l1")
	assert.Contains(t, ids, "l5")
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	uc, repo, _ := newListingUseCaseForTest()
	seedListings(repo)

	lower, totalLower, err := uc.Search(context.Background(), SearchInput{Query: "macbook", Limit: 20})
	require.NoError(t, err)
	upper, totalUpper, err := uc.Search(context.Background(), SearchInput{Query: "MACBOOK", Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, totalLower, totalUpper)
	require.Len(t, lower, 1)
	require.Len(t, upper, 1)
	assert.Equal(t, lower[0].ID, upper[0].ID)
}

func TestSearchEmptyQueryReturnsWholeFeed(t *testing.T) {
	uc, repo, _ := newListingUseCaseForTest()
	seedListings(repo)

	items, total, err := uc.Search(context.Background(), SearchInput{Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, int64(4), total)
	// Newest first by default.
	assert.Equal(t, "l5", items[0].ID)
	assert.Equal(t, "l1", items[len(items)-1].ID)
}

func TestSearchNoMatchesIsEmptyNotError(t *testing.T) {
	uc, repo, _ := newListingUseCaseForTest()
	seedListings(repo)

	items, total, err := uc.Search(context.Background(), SearchInput{Query: "submarine", Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), total)
}

func TestSearchSortByPrice(t *testing.T) {
	uc, repo, _ := newListingUseCaseForTest()
	seedListings(repo)

	asc, _, err := uc.Search(context.Background(), SearchInput{Sort: SortPriceAsc, Limit: 20})
	require.NoError(t, err)
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
	}

	desc, _, err := uc.Search(context.Background(), SearchInput{Sort: SortPriceDesc, Limit: 20})
	require.NoError(t, err)
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price)
	}
}

func TestSearchUnknownSortFallsBackToNewest(t *testing.T) {
	uc, repo, _ := newListingUseCaseForTest()
	seedListings(repo)

	relevant, _, err := uc.Search(context.Background(), SearchInput{Sort: SortRelevant, Limit: 20})
	require.NoError(t, err)
	garbage, _, err := uc.Search(context.Background(), SearchInput{Sort: "wat", Limit: 20})
	require.NoError(t, err)

	require.Equal(t, len(relevant), len(garbage))
	for i := range relevant {
		assert.Equal(t, relevant[i].ID, garbage[i].ID)
	}
	assert.Equal(t, "l5", relevant[0].ID)
}

func TestSearchCategoryFilter(t *testing.T) {
	uc, repo, _ := newListingUseCaseForTest()
	seedListings(repo)

	items, total, err := uc.Search(context.Background(), SearchInput{Category: "Motors", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, item := range items {
		assert.Equal(t, entity.CategoryMotors, item.Category)
	}

	_, _, err = uc.Search(context.Background(), SearchInput{Category: "nonsense"})
	assert.Error(t, err)
}

func TestSearchPagination(t *testing.T) {
	uc, repo, _ := newListingUseCaseForTest()
	seedListings(repo)

	page1, total, err := uc.Search(context.Background(), SearchInput{Limit: 2, Offset: 0})
	require.NoError(t, err)
	page2, _, err := uc.Search(context.Background(), SearchInput{Limit: 2, Offset: 2})
	require.NoError(t, err)
	beyond, _, err := uc.Search(context.Background(), SearchInput{Limit: 2, Offset: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(4), total)
	assert.Len(t, page1, 2)
	assert.Len(t, page2, 2)
	assert.Empty(t, beyond)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)
}

func TestSearchTouchesMatchingSavedSearch(t *testing.T) {
	uc, listingRepo, searchRepo := newListingUseCaseForTest()
	seedListings(listingRepo)

	searchRepo.Create(context.Background(), &entity.SavedSearch{
		ID:     "s1",
		UserID: "buyer",
		Query:  "Toyota",
	})

	_, _, err := uc.Search(context.Background(), SearchInput{Query: "toyota", Limit: 20, UserID: "buyer"})
	require.NoError(t, err)

	// The touch is async; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		search, err := searchRepo.GetByID(context.Background(), "s1")
		require.NoError(t, err)
		if !search.LastRunAt.IsZero() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("saved search lastRunAt was never updated")
}

func TestSearchRecordsNewSavedSearch(t *testing.T) {
	uc, listingRepo, searchRepo := newListingUseCaseForTest()
	seedListings(listingRepo)

	_, _, err := uc.Search(context.Background(), SearchInput{Query: "macbook", Limit: 20, UserID: "buyer"})
	require.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		searches, _, err := searchRepo.ListByUser(context.Background(), "buyer", 0, 0)
		require.NoError(t, err)
		if len(searches) == 1 {
			assert.Equal(t, "macbook", searches[0].Query)
			assert.NotEmpty(t, searches[0].ID)
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("search was never recorded as a saved search")
}

func TestAnonymousSearchRecordsNothing(t *testing.T) {
	uc, listingRepo, searchRepo := newListingUseCaseForTest()
	seedListings(listingRepo)

	_, _, err := uc.Search(context.Background(), SearchInput{Query: "macbook", Limit: 20})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	searches, _, err := searchRepo.ListByUser(context.Background(), "buyer", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, searches)
}

func TestGetDetailHidesPendingFromStrangers(t *testing.T) {
	uc, repo, _ := newListingUseCaseForTest()
	seedListings(repo)

	_, err := uc.GetDetail(context.Background(), "l4", "someone-else")
	assert.Error(t, err)

	detail, err := uc.GetDetail(context.Background(), "l4", "seller")
	require.NoError(t, err)
	assert.Equal(t, "l4", detail.ID)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	uc, repo, _ := newListingUseCaseForTest()
	seedListings(repo)

	err := uc.Delete(context.Background(), "stranger", "l1")
	assert.Error(t, err)
	assert.Equal(t, entity.ListingStatusActive, repo.statusOf("l1"))

	require.NoError(t, uc.Delete(context.Background(), "seller", "l1"))
	assert.Equal(t, entity.ListingStatusDeleted, repo.statusOf("l1"))
}
