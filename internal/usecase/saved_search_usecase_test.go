package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSearchDeduplicatesQueries(t *testing.T) {
	uc := NewSavedSearchUseCase(newFakeSavedSearchRepo())

	first, err := uc.Save(context.Background(), "u1", SaveSearchInput{Query: "toyota corolla", Category: "motors"})
	require.NoError(t, err)

	// Same query, different casing: refreshed, not duplicated.
	second, err := uc.Save(context.Background(), "u1", SaveSearchInput{Query: "Toyota Corolla", Category: "motors"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, total, err := uc.List(context.Background(), "u1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Same query in another category is its own search.
	third, err := uc.Save(context.Background(), "u1", SaveSearchInput{Query: "toyota corolla"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestSaveSearchValidatesCategory(t *testing.T) {
	uc := NewSavedSearchUseCase(newFakeSavedSearchRepo())

	_, err := uc.Save(context.Background(), "u1", SaveSearchInput{Query: "boat", Category: "yachts"})
	assert.Error(t, err)
}

func TestDeleteSavedSearchRequiresOwnership(t *testing.T) {
	uc := NewSavedSearchUseCase(newFakeSavedSearchRepo())

	search, err := uc.Save(context.Background(), "u1", SaveSearchInput{Query: "toyota"})
	require.NoError(t, err)

	err = uc.Delete(context.Background(), "intruder", search.ID)
	assert.Error(t, err)

	require.NoError(t, uc.Delete(context.Background(), "u1", search.ID))
	_, total, err := uc.List(context.Background(), "u1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestSaveSearchCapStillAllowsRefresh(t *testing.T) {
	uc := NewSavedSearchUseCase(newFakeSavedSearchRepo())

	for i := 0; i < maxSavedSearches; i++ {
		_, err := uc.Save(context.Background(), "u1", SaveSearchInput{Query: fmt.Sprintf("search %02d", i)})
		require.NoError(t, err)
	}

	// At the cap a brand-new query is rejected...
	_, err := uc.Save(context.Background(), "u1", SaveSearchInput{Query: "one more"})
	assert.Error(t, err)

	// ...but re-saving an existing one still refreshes it in place.
	refreshed, err := uc.Save(context.Background(), "u1", SaveSearchInput{
		Query:   "search 00",
		Filters: map[string]interface{}{"max_price": 5000},
	})
	require.NoError(t, err)
	assert.Equal(t, 5000, refreshed.Filters["max_price"])

	_, total, err := uc.List(context.Background(), "u1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(maxSavedSearches), total)
}
