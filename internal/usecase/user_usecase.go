package usecase

import (
	"context"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=30"`
	FullName  *string `json:"full_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	Location  *string `json:"location"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	fields := map[string]interface{}{}
	if input.Username != nil {
		fields["username"] = *input.Username
	}
	if input.FullName != nil {
		fields["fullName"] = *input.FullName
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Bio != nil {
		fields["bio"] = *input.Bio
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.AvatarURL != nil {
		fields["avatarUrl"] = *input.AvatarURL
	}

	if len(fields) > 0 {
		if err := uc.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return uc.userRepo.GetByID(ctx, userID)
}

// PublicProfile is the subset other users see on a seller page.
func (uc *UserUseCase) PublicProfile(ctx context.Context, userID string) (*SellerProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &SellerProfile{
		ID:                 user.ID,
		Username:           user.Username,
		AvatarURL:          user.AvatarURL,
		Location:           user.Location,
		VerificationStatus: user.VerificationStatus,
		MemberSince:        user.CreatedAt,
	}, nil
}
