package service

import (
	"context"
	"errors"
	"log/slog"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/repository"
	"screenspeak/internal/middleware/auth"

	"gorm.io/gorm"
)

var (
	ErrIncorrectPassword = errors.New("current password is incorrect")
	ErrPasswordUnchanged = errors.New("new password must differ from the current one")
)

type AccountService interface {
	Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, userID, password string) error
}

type accountService struct {
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	cache      RatingCache
}

func NewAccountService(userRepo repository.UserRepository, reviewRepo repository.ReviewRepository, cache RatingCache) AccountService {
	return &accountService{userRepo: userRepo, reviewRepo: reviewRepo, cache: cache}
}

func (s *accountService) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToProfileResponse(user), nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Username != user.Username {
		if other, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil && other.ID != userID {
			return nil, ErrNameInUse
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if req.Email != user.Email {
		if other, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && other.ID != userID {
			return nil, ErrEmailInUse
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Bio = sanitizeText(req.Bio)
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameInUse
		}
		return nil, err
	}
	return dto.FromModelToProfileResponse(user), nil
}

func (s *accountService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	if req.NewPassword != req.NewPasswordConfirm {
		return ErrPasswordMismatch
	}
	if req.NewPassword == req.OldPassword {
		return ErrPasswordUnchanged
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := auth.VerifyPassword(user.Password, req.OldPassword); err != nil {
		return ErrIncorrectPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

// DeleteAccount removes the user after confirming the password. Ratings of
// every movie the user reviewed change, so their cache entries are dropped.
func (s *accountService) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return ErrIncorrectPassword
	}

	movieIDs, err := s.reviewRepo.MovieIDsByUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	for _, id := range movieIDs {
		invalidateRating(ctx, s.cache, id)
	}
	slog.InfoContext(ctx, "account deleted", "user_id", userID, "movies_reviewed", len(movieIDs))
	return nil
}
