package usecase

import (
	"context"
	"time"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/internal/infrastructure/firebase"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
)

type AuthUseCase struct {
	authClient *firebase.AuthClient
	userRepo   repository.UserRepository
}

func NewAuthUseCase(authClient *firebase.AuthClient, userRepo repository.UserRepository) *AuthUseCase {
	return &AuthUseCase{
		authClient: authClient,
		userRepo:   userRepo,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Phone    string `json:"phone"`
}

type AuthResult struct {
	User         *entity.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:                 uid,
		Email:              input.Email,
		Username:           input.Username,
		Phone:              input.Phone,
		Role:               "user",
		Status:             "active",
		VerificationStatus: entity.VerificationStatusNone,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Keep auth and profile consistent if the profile write fails.
		if delErr := uc.authClient.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("Failed to clean up auth user %s: %v", uid, delErr)
		}
		return nil, err
	}

	signIn, err := uc.authClient.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		Token:        signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
	}, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	signIn, err := uc.authClient.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, signIn.LocalID)
	if err != nil {
		return nil, err
	}
	if user.Status != "active" {
		return nil, errors.Forbidden("This account has been suspended", nil)
	}

	go func() {
		seenCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.userRepo.UpdateFields(seenCtx, user.ID, map[string]interface{}{
			"lastSeen": time.Now(),
		}); err != nil {
			logger.Debug("Failed to update last seen for %s: %v", user.ID, err)
		}
	}()

	return &AuthResult{
		User:         user,
		Token:        signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
	}, nil
}

// Logout revokes refresh tokens; outstanding ID tokens expire on their
// own within the hour.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string) error {
	return uc.authClient.RevokeTokens(ctx, userID)
}

func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}
