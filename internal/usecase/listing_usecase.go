package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRelevant  = "relevant"
)

type ListingUseCase struct {
	listingRepo     repository.ListingRepository
	userRepo        repository.UserRepository
	savedSearchRepo repository.SavedSearchRepository
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	savedSearchRepo repository.SavedSearchRepository,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:     listingRepo,
		userRepo:        userRepo,
		savedSearchRepo: savedSearchRepo,
	}
}

type SearchInput struct {
	Query    string
	Category string
	Sort     string
	Limit    int
	Offset   int
	// UserID is set for signed-in searches; it drives the saved-search
	// freshness side effect and nothing else.
	UserID string
}

type ListingSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	Category   string    `json:"category"`
	Location   string    `json:"location"`
	CoverImage string    `json:"cover_image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListingDetail struct {
	*entity.Listing
	Owner *SellerProfile `json:"owner,omitempty"`
}

type SellerProfile struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	Location           string    `json:"location,omitempty"`
	VerificationStatus string    `json:"verification_status"`
	MemberSince        time.Time `json:"member_since"`
}

// Search fetches active listings once, then filters, sorts and paginates
// in memory. The matched total reflects the filtered set, so an empty
// Items with Total zero is a true empty result, not a failure.
func (uc *ListingUseCase) Search(ctx context.Context, input SearchInput) ([]*ListingSummary, int64, error) {
	category := ""
	if input.Category != "" {
		normalized, ok := entity.NormalizeCategory(input.Category)
		if !ok {
			return nil, 0, errors.BadRequest("Unknown category", nil)
		}
		category = normalized
	}

	listings, err := uc.listingRepo.ListActive(ctx, category)
	if err != nil {
		return nil, 0, err
	}

	matched := filterListings(listings, input.Query)
	sortListings(matched, input.Sort)

	total := int64(len(matched))
	page := paginateListings(matched, input.Limit, input.Offset)

	summaries := make([]*ListingSummary, 0, len(page))
	for _, l := range page {
		summaries = append(summaries, summarize(l))
	}

	if input.UserID != "" && strings.TrimSpace(input.Query) != "" {
		uc.touchSavedSearches(input.UserID, input.Query, category)
	}

	return summaries, total, nil
}

// filterListings keeps listings whose title, description or category
// contains the query, case-insensitively. An empty query keeps all.
func filterListings(listings []*entity.Listing, query string) []*entity.Listing {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]*entity.Listing(nil), listings...)
	}

	matched := make([]*entity.Listing, 0, len(listings))
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.Title), q) ||
			strings.Contains(strings.ToLower(l.Description), q) ||
			strings.Contains(strings.ToLower(l.Category), q) {
			matched = append(matched, l)
		}
	}
	return matched
}

// sortListings orders in place. Unknown keys and "relevant" fall back
// to newest first; price sorts break ties by recency.
func sortListings(listings []*entity.Listing, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			if listings[i].Price != listings[j].Price {
				return listings[i].Price < listings[j].Price
			}
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		})
	case SortPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			if listings[i].Price != listings[j].Price {
				return listings[i].Price > listings[j].Price
			}
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		})
	default:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		})
	}
}

func paginateListings(listings []*entity.Listing, limit, offset int) []*entity.Listing {
	if offset >= len(listings) {
		return []*entity.Listing{}
	}
	end := offset + limit
	if limit <= 0 || end > len(listings) {
		end = len(listings)
	}
	return listings[offset:end]
}

func summarize(l *entity.Listing) *ListingSummary {
	return &ListingSummary{
		ID:         l.ID,
		Title:      l.Title,
		Price:      l.Price,
		Currency:   l.Currency,
		Category:   l.Category,
		Location:   l.Location,
		CoverImage: l.CoverImage(),
		CreatedAt:  l.CreatedAt,
	}
}

// touchSavedSearches records an authenticated free-text search: an
// existing saved search for the same query gets its lastRunAt bumped,
// otherwise a new row is written. Fire and forget; search latency never
// waits on it.
func (uc *ListingUseCase) touchSavedSearches(userID, query, category string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		searches, total, err := uc.savedSearchRepo.ListByUser(ctx, userID, 0, 0)
		if err != nil {
			logger.Error("Failed to load saved searches for %s: %v", userID, err)
			return
		}

		now := time.Now()
		matched := false
		for _, s := range searches {
			if !strings.EqualFold(strings.TrimSpace(s.Query), strings.TrimSpace(query)) {
				continue
			}
			if s.Category != "" && s.Category != category {
				continue
			}
			matched = true
			s.LastRunAt = now
			if err := uc.savedSearchRepo.Update(ctx, s); err != nil {
				logger.Error("Failed to touch saved search %s: %v", s.ID, err)
			}
		}
		if matched || total >= maxSavedSearches {
			return
		}

		search := &entity.SavedSearch{
			ID:        uuid.New().String(),
			UserID:    userID,
			Query:     strings.TrimSpace(query),
			Category:  category,
			LastRunAt: now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.savedSearchRepo.Create(ctx, search); err != nil {
			logger.Error("Failed to record search for %s: %v", userID, err)
		}
	}()
}

// GetDetail returns the listing with its seller profile. Pending
// listings are visible only to their owner; views count asynchronously
// for everyone else.
func (uc *ListingUseCase) GetDetail(ctx context.Context, listingID, viewerID string) (*ListingDetail, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.Status != entity.ListingStatusActive && !listing.IsOwnedBy(viewerID) {
		return nil, errors.NotFound("Listing", nil)
	}

	detail := &ListingDetail{Listing: listing}
	if owner, err := uc.userRepo.GetByID(ctx, listing.OwnerID); err == nil {
		detail.Owner = &SellerProfile{
			ID:                 owner.ID,
			Username:           owner.Username,
			AvatarURL:          owner.AvatarURL,
			Location:           owner.Location,
			VerificationStatus: owner.VerificationStatus,
			MemberSince:        owner.CreatedAt,
		}
	} else {
		logger.Warn("Failed to load owner %s for listing %s: %v", listing.OwnerID, listingID, err)
	}

	if !listing.IsOwnedBy(viewerID) {
		go func() {
			viewCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := uc.listingRepo.IncrementViews(viewCtx, listingID); err != nil {
				logger.Error("Failed to increment views for %s: %v", listingID, err)
			}
		}()
	}

	return detail, nil
}

type UpdateListingInput struct {
	Title       *string
	Description *string
	Price       *float64
	Location    *string
	Specs       map[string]interface{}
}

func (uc *ListingUseCase) Update(ctx context.Context, userID, listingID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(userID) {
		return nil, errors.Forbidden("You can only edit your own listings", nil)
	}

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.BadRequest("Price cannot be negative", nil)
		}
		listing.Price = *input.Price
	}
	if input.Location != nil {
		listing.Location = *input.Location
	}
	if input.Specs != nil {
		listing.Specs = input.Specs
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (uc *ListingUseCase) MarkSold(ctx context.Context, userID, listingID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(userID) {
		return nil, errors.Forbidden("You can only update your own listings", nil)
	}
	if listing.Status != entity.ListingStatusActive {
		return nil, errors.BadRequest("Only active listings can be marked sold", nil)
	}

	listing.Status = entity.ListingStatusSold
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (uc *ListingUseCase) Delete(ctx context.Context, userID, listingID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if !listing.IsOwnedBy(userID) {
		return errors.Forbidden("You can only delete your own listings", nil)
	}
	return uc.listingRepo.SoftDelete(ctx, listingID)
}

func (uc *ListingUseCase) MyListings(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.ListByOwner(ctx, userID, status, limit, offset)
}
