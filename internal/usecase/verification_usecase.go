package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/internal/domain/service"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
)

const maxVerificationDocs = 4

type VerificationUseCase struct {
	verificationRepo repository.VerificationRepository
	userRepo         repository.UserRepository
	fileService      service.FileUploadService
	notificationUC   *NotificationUseCase
}

func NewVerificationUseCase(
	verificationRepo repository.VerificationRepository,
	userRepo repository.UserRepository,
	fileService service.FileUploadService,
	notificationUC *NotificationUseCase,
) *VerificationUseCase {
	return &VerificationUseCase{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		fileService:      fileService,
		notificationUC:   notificationUC,
	}
}

type VerificationDocInput struct {
	Kind        string
	Filename    string
	ContentType string
	Data        []byte
}

// Submit uploads the identity documents and files one pending
// verification. A user with a pending or approved verification of the
// same type cannot file another.
func (uc *VerificationUseCase) Submit(ctx context.Context, userID, vType string, docs []VerificationDocInput) (*entity.Verification, error) {
	if vType != entity.VerificationTypeBasic && vType != entity.VerificationTypeBusiness {
		return nil, errors.BadRequest("Verification type must be basic or business", nil)
	}
	if len(docs) == 0 {
		return nil, errors.BadRequest("At least one document is required", nil)
	}
	if len(docs) > maxVerificationDocs {
		return nil, errors.BadRequest(fmt.Sprintf("At most %d documents are allowed", maxVerificationDocs), nil)
	}

	if existing, err := uc.verificationRepo.GetLatestByUser(ctx, userID); err == nil {
		if existing.Status == entity.VerificationStatusPending {
			return nil, errors.Conflict("A verification request is already under review", nil)
		}
		if existing.Status == entity.VerificationStatusApproved && existing.Type == vType {
			return nil, errors.Conflict("You are already verified", nil)
		}
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	verificationID := uuid.New().String()
	documents := make([]entity.VerificationDocument, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			result, err := uc.fileService.UploadFile(
				gctx,
				bytes.NewReader(doc.Data),
				doc.Filename,
				doc.ContentType,
				fmt.Sprintf("verifications/%s", verificationID),
			)
			if err != nil {
				return err
			}
			documents[i] = entity.VerificationDocument{
				ID:       uuid.New().String(),
				Kind:     doc.Kind,
				Filename: doc.Filename,
				URL:      result.URL,
				Status:   entity.VerificationStatusPending,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Internal("Failed to upload verification documents", err)
	}

	now := time.Now()
	verification := &entity.Verification{
		ID:        verificationID,
		UserID:    userID,
		Type:      vType,
		Status:    entity.VerificationStatusPending,
		Documents: documents,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.verificationRepo.Create(ctx, verification); err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"verificationStatus": entity.VerificationStatusPending,
	}); err != nil {
		logger.Error("Failed to flag user %s as pending verification: %v", userID, err)
	}

	return verification, nil
}

func (uc *VerificationUseCase) MyVerification(ctx context.Context, userID string) (*entity.Verification, error) {
	return uc.verificationRepo.GetLatestByUser(ctx, userID)
}

func (uc *VerificationUseCase) ListPending(ctx context.Context, limit, offset int) ([]*entity.Verification, int64, error) {
	return uc.verificationRepo.ListPending(ctx, limit, offset)
}

type ReviewInput struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes" validate:"max=1000"`
}

// Review is the admin decision. It settles the request, mirrors the
// outcome onto the user's profile and tells the user.
func (uc *VerificationUseCase) Review(ctx context.Context, adminID, verificationID string, input ReviewInput) (*entity.Verification, error) {
	verification, err := uc.verificationRepo.GetByID(ctx, verificationID)
	if err != nil {
		return nil, err
	}
	if verification.Status != entity.VerificationStatusPending {
		return nil, errors.BadRequest("This verification has already been reviewed", nil)
	}

	outcome := entity.VerificationStatusRejected
	if input.Approve {
		outcome = entity.VerificationStatusApproved
	}

	now := time.Now()
	verification.Status = outcome
	verification.Notes = input.Notes
	verification.ReviewedBy = adminID
	verification.ReviewedAt = &now
	for i := range verification.Documents {
		verification.Documents[i].Status = outcome
	}

	if err := uc.verificationRepo.Update(ctx, verification); err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateFields(ctx, verification.UserID, map[string]interface{}{
		"verificationStatus": outcome,
	}); err != nil {
		logger.Error("Failed to update verification status for user %s: %v", verification.UserID, err)
	}

	if uc.notificationUC != nil {
		title := "Verification approved"
		body := "Your account is now verified"
		if !input.Approve {
			title = "Verification rejected"
			body = "Your verification request was not approved"
			if input.Notes != "" {
				body = input.Notes
			}
		}
		uc.notificationUC.NotifyAsync(verification.UserID, entity.NotificationTypeVerification,
			title, body, map[string]interface{}{"verification_id": verification.ID})
	}

	return verification, nil
}
