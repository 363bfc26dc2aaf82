package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/normalization"
	"github.com/skillloop/skillloop-backend/internal/repos"
	"github.com/skillloop/skillloop-backend/internal/types"
)

type UpdateProfileInput struct {
	Username string `json:"username" binding:"required"`
	Bio      string `json:"bio"`
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	GetByUsername(ctx context.Context, username string) (*types.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	return s.userRepo.GetByID(ctx, nil, id)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*types.User, error) {
	return s.userRepo.GetByUsername(ctx, nil, normalization.Username(username))
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*types.User, error) {
	user, err := s.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	username := normalization.Username(input.Username)
	if username != user.Username {
		taken, err := s.userRepo.UsernameExists(ctx, nil, username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.Conflict("username %s is already in use", username)
		}
		user.Username = username
	}
	user.Bio = input.Bio
	if err := s.userRepo.Update(ctx, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}
