package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/internal/domain/service"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
)

const (
	// MaxListingImages caps photos per ad.
	MaxListingImages = 8
	// MaxImageBytes caps a single photo payload.
	MaxImageBytes = 5 << 20

	StepChooseCategory   = "choose_category"
	StepAddDetails       = "add_details"
	StepUploadPhotos     = "upload_photos"
	StepSetPriceLocation = "set_price_location"
)

var wizardSteps = []string{
	StepChooseCategory,
	StepAddDetails,
	StepUploadPhotos,
	StepSetPriceLocation,
}

type DraftImage struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	Size        int64  `json:"size"`
}

// Draft is the in-progress ad. It lives in memory only; nothing is
// stored remotely until Submit.
type Draft struct {
	UserID      string                 `json:"user_id"`
	Step        string                 `json:"step"`
	Category    string                 `json:"category,omitempty"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	Specs       map[string]interface{} `json:"specs,omitempty"`
	Images      []DraftImage           `json:"images"`
	Price       float64                `json:"price"`
	Currency    string                 `json:"currency"`
	Location    string                 `json:"location,omitempty"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type PostingUseCase struct {
	listingRepo     repository.ListingRepository
	fileRepo        repository.FileMetadataRepository
	savedSearchRepo repository.SavedSearchRepository
	fileService     service.FileUploadService
	notificationUC  *NotificationUseCase
	drafts          map[string]*Draft
	mu              sync.Mutex
}

func NewPostingUseCase(
	listingRepo repository.ListingRepository,
	fileRepo repository.FileMetadataRepository,
	savedSearchRepo repository.SavedSearchRepository,
	fileService service.FileUploadService,
	notificationUC *NotificationUseCase,
) *PostingUseCase {
	return &PostingUseCase{
		listingRepo:     listingRepo,
		fileRepo:        fileRepo,
		savedSearchRepo: savedSearchRepo,
		fileService:     fileService,
		notificationUC:  notificationUC,
		drafts:          make(map[string]*Draft),
	}
}

// StartDraft begins a fresh wizard, discarding any previous draft.
func (uc *PostingUseCase) StartDraft(userID string) *Draft {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft := &Draft{
		UserID:    userID,
		Step:      StepChooseCategory,
		Images:    []DraftImage{},
		Currency:  "KES",
		UpdatedAt: time.Now(),
	}
	uc.drafts[userID] = draft
	return draft
}

func (uc *PostingUseCase) GetDraft(userID string) (*Draft, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.draftLocked(userID)
}

func (uc *PostingUseCase) draftLocked(userID string) (*Draft, error) {
	draft, ok := uc.drafts[userID]
	if !ok {
		return nil, errors.NotFound("Draft", nil)
	}
	return draft, nil
}

func (uc *PostingUseCase) DiscardDraft(userID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.drafts, userID)
}

func (uc *PostingUseCase) SetCategory(userID, category string) (*Draft, error) {
	normalized, ok := entity.NormalizeCategory(category)
	if !ok {
		return nil, errors.BadRequest("Unknown category", nil)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, err := uc.draftLocked(userID)
	if err != nil {
		return nil, err
	}
	draft.Category = normalized
	draft.UpdatedAt = time.Now()
	return draft, nil
}

type DraftDetailsInput struct {
	Title       string                 `json:"title" validate:"required,min=3,max=120"`
	Description string                 `json:"description" validate:"required,min=10,max=4000"`
	Specs       map[string]interface{} `json:"specs"`
}

func (uc *PostingUseCase) SetDetails(userID string, input DraftDetailsInput) (*Draft, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, err := uc.draftLocked(userID)
	if err != nil {
		return nil, err
	}
	draft.Title = strings.TrimSpace(input.Title)
	draft.Description = strings.TrimSpace(input.Description)
	draft.Specs = input.Specs
	draft.UpdatedAt = time.Now()
	return draft, nil
}

// AddPhotos stages photos on the draft. A batch that would push the
// draft past MaxListingImages is rejected whole; no partial staging.
func (uc *PostingUseCase) AddPhotos(userID string, photos []DraftImage) (*Draft, error) {
	for _, p := range photos {
		if int64(len(p.Data)) > MaxImageBytes {
			return nil, errors.BadRequest(fmt.Sprintf("Photo %s exceeds the %dMB limit", p.Filename, MaxImageBytes>>20), nil)
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, err := uc.draftLocked(userID)
	if err != nil {
		return nil, err
	}
	if len(draft.Images)+len(photos) > MaxListingImages {
		return nil, errors.BadRequest(fmt.Sprintf("An ad can have at most %d photos", MaxListingImages), nil)
	}

	for i := range photos {
		photos[i].Size = int64(len(photos[i].Data))
	}
	draft.Images = append(draft.Images, photos...)
	draft.UpdatedAt = time.Now()
	return draft, nil
}

func (uc *PostingUseCase) RemovePhoto(userID string, index int) (*Draft, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, err := uc.draftLocked(userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(draft.Images) {
		return nil, errors.BadRequest("No photo at that position", nil)
	}
	draft.Images = append(draft.Images[:index], draft.Images[index+1:]...)
	draft.UpdatedAt = time.Now()
	return draft, nil
}

type PriceLocationInput struct {
	Price    float64 `json:"price" validate:"gte=0"`
	Location string  `json:"location" validate:"required"`
}

func (uc *PostingUseCase) SetPriceLocation(userID string, input PriceLocationInput) (*Draft, error) {
	if input.Price < 0 {
		return nil, errors.BadRequest("Price cannot be negative", nil)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, err := uc.draftLocked(userID)
	if err != nil {
		return nil, err
	}
	draft.Price = input.Price
	draft.Location = strings.TrimSpace(input.Location)
	draft.UpdatedAt = time.Now()
	return draft, nil
}

// Next advances the wizard once the current step's required fields are
// in place.
func (uc *PostingUseCase) Next(userID string) (*Draft, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, err := uc.draftLocked(userID)
	if err != nil {
		return nil, err
	}
	if err := validateStep(draft, draft.Step); err != nil {
		return nil, err
	}

	idx := stepIndex(draft.Step)
	if idx >= len(wizardSteps)-1 {
		return nil, errors.BadRequest("Already at the last step", nil)
	}
	draft.Step = wizardSteps[idx+1]
	draft.UpdatedAt = time.Now()
	return draft, nil
}

// Back moves one step toward the start, keeping everything entered.
func (uc *PostingUseCase) Back(userID string) (*Draft, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, err := uc.draftLocked(userID)
	if err != nil {
		return nil, err
	}

	idx := stepIndex(draft.Step)
	if idx <= 0 {
		return nil, errors.BadRequest("Already at the first step", nil)
	}
	draft.Step = wizardSteps[idx-1]
	draft.UpdatedAt = time.Now()
	return draft, nil
}

func stepIndex(step string) int {
	for i, s := range wizardSteps {
		if s == step {
			return i
		}
	}
	return 0
}

func validateStep(draft *Draft, step string) error {
	switch step {
	case StepChooseCategory:
		if draft.Category == "" {
			return errors.BadRequest("Choose a category first", nil)
		}
	case StepAddDetails:
		if len(strings.TrimSpace(draft.Title)) < 3 {
			return errors.BadRequest("Title must be at least 3 characters", nil)
		}
		if len(strings.TrimSpace(draft.Description)) < 10 {
			return errors.BadRequest("Description must be at least 10 characters", nil)
		}
	case StepUploadPhotos:
		// Photos are optional.
	case StepSetPriceLocation:
		if draft.Location == "" {
			return errors.BadRequest("Location is required", nil)
		}
	}
	return nil
}

// Submit publishes the draft: one listing record plus the photos
// uploaded in parallel. The record starts pending and only flips to
// active when every upload lands; any failure rolls the record back so
// a half-published ad never appears in search.
func (uc *PostingUseCase) Submit(ctx context.Context, userID string) (*entity.Listing, error) {
	uc.mu.Lock()
	draft, err := uc.draftLocked(userID)
	if err != nil {
		uc.mu.Unlock()
		return nil, err
	}
	if draft.Step != StepSetPriceLocation {
		uc.mu.Unlock()
		return nil, errors.BadRequest("Complete all steps before submitting", nil)
	}
	for _, step := range wizardSteps {
		if err := validateStep(draft, step); err != nil {
			uc.mu.Unlock()
			return nil, err
		}
	}
	// Work on a snapshot so the draft survives a failed submit intact.
	images := append([]DraftImage(nil), draft.Images...)
	snapshot := *draft
	uc.mu.Unlock()

	now := time.Now()
	listing := &entity.Listing{
		ID:          uuid.New().String(),
		OwnerID:     userID,
		Category:    snapshot.Category,
		Title:       snapshot.Title,
		Description: snapshot.Description,
		Price:       snapshot.Price,
		Currency:    snapshot.Currency,
		Location:    snapshot.Location,
		Specs:       snapshot.Specs,
		Images:      []entity.ListingImage{},
		Status:      entity.ListingStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	uploaded := make([]entity.ListingImage, len(images))
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			result, err := uc.fileService.UploadFile(
				gctx,
				bytes.NewReader(img.Data),
				img.Filename,
				img.ContentType,
				fmt.Sprintf("listings/%s", listing.ID),
			)
			if err != nil {
				return fmt.Errorf("uploading %s: %w", img.Filename, err)
			}
			uploaded[i] = entity.ListingImage{
				ID:           uuid.New().String(),
				URL:          result.URL,
				ObjectName:   result.ObjectName,
				DisplayOrder: i,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.rollback(listing, uploaded)
		return nil, errors.Internal("Failed to upload photos, the ad was not published", err)
	}

	listing.Images = uploaded
	listing.Status = entity.ListingStatusActive
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		uc.rollback(listing, uploaded)
		return nil, err
	}

	uc.recordFileMetadata(ctx, userID, listing, images, uploaded)

	uc.DiscardDraft(userID)

	if uc.notificationUC != nil {
		uc.notificationUC.NotifyAsync(userID, entity.NotificationTypeListing,
			"Your ad is live",
			fmt.Sprintf("%q is now visible to buyers", listing.Title),
			map[string]interface{}{"listing_id": listing.ID},
		)
	}
	uc.notifyMatchingSearches(listing)

	return listing, nil
}

// notifyMatchingSearches tells watchers a listing they search for just
// went live. Best effort; publishing never waits on it.
func (uc *PostingUseCase) notifyMatchingSearches(listing *entity.Listing) {
	if uc.savedSearchRepo == nil || uc.notificationUC == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		searches, err := uc.savedSearchRepo.ListAll(ctx)
		if err != nil {
			logger.Error("Failed to load saved searches for listing %s: %v", listing.ID, err)
			return
		}

		haystack := strings.ToLower(listing.Title + " " + listing.Description)
		notified := map[string]bool{}
		for _, s := range searches {
			if s.UserID == listing.OwnerID || notified[s.UserID] {
				continue
			}
			if s.Category != "" && s.Category != listing.Category {
				continue
			}
			query := strings.ToLower(strings.TrimSpace(s.Query))
			if query == "" || !strings.Contains(haystack, query) {
				continue
			}
			notified[s.UserID] = true
			uc.notificationUC.NotifyAsync(s.UserID, entity.NotificationTypeSavedSearch,
				"New match for your search",
				fmt.Sprintf("%q matches your saved search %q", listing.Title, s.Query),
				map[string]interface{}{"listing_id": listing.ID, "saved_search_id": s.ID},
			)
		}
	}()
}

// rollback soft-deletes the half-created record and cleans up whatever
// binaries made it to the bucket.
func (uc *PostingUseCase) rollback(listing *entity.Listing, uploaded []entity.ListingImage) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := uc.listingRepo.SoftDelete(ctx, listing.ID); err != nil {
		logger.Error("Failed to roll back listing %s: %v", listing.ID, err)
	}
	for _, img := range uploaded {
		if img.ObjectName == "" {
			continue
		}
		if err := uc.fileService.DeleteFile(ctx, img.ObjectName); err != nil {
			logger.Warn("Failed to clean up upload %s: %v", img.ObjectName, err)
		}
	}
}

func (uc *PostingUseCase) recordFileMetadata(ctx context.Context, userID string, listing *entity.Listing, images []DraftImage, uploaded []entity.ListingImage) {
	for i, img := range uploaded {
		metadata := &entity.FileMetadata{
			ID:         img.ID,
			UserID:     userID,
			Filename:   images[i].Filename,
			ObjectName: img.ObjectName,
			URL:        img.URL,
			FileType:   images[i].ContentType,
			Size:       images[i].Size,
			EntityType: "listing",
			EntityID:   listing.ID,
			CreatedAt:  time.Now(),
		}
		if err := uc.fileRepo.Create(ctx, metadata); err != nil {
			logger.Warn("Failed to record file metadata for %s: %v", img.ObjectName, err)
		}
	}
}
