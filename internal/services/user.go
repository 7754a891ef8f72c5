package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/breakbetter-backend/internal/data/repos"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{log: log.With("service", "UserService"), userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.Store("user_lookup_failed", fmt.Errorf("error fetching user: %w", err))
	}
	if len(found) == 0 {
		return nil, apierr.NotFound("user_not_found", errors.New("user not found"))
	}
	return found[0], nil
}
