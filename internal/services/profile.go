package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/breakbetter-backend/internal/data/repos"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/modules/breaks"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/ctxutil"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

type ProfileService interface {
	CreateProfile(ctx context.Context, profile *types.Profile) (*types.Profile, error)
	ListProfiles(ctx context.Context, limit int) ([]*types.Profile, error)
}

type profileService struct {
	log         *logger.Logger
	profileRepo repos.ProfileRepo
}

func NewProfileService(log *logger.Logger, profileRepo repos.ProfileRepo) ProfileService {
	return &profileService{log: log.With("service", "ProfileService"), profileRepo: profileRepo}
}

// CreateProfile stores a validated profile. The caller, when authenticated,
// becomes its owner; otherwise it is stored without one.
func (ps *profileService) CreateProfile(ctx context.Context, profile *types.Profile) (*types.Profile, error) {
	if profile == nil {
		return nil, apierr.Validation("invalid_profile", fmt.Errorf("profile required"))
	}
	profile.PersonalPreferences = breaks.CleanPreferences(profile.PersonalPreferences)
	if err := breaks.ValidateProfile(profile); err != nil {
		return nil, apierr.Validation("invalid_profile", err)
	}
	profile.ID = uuid.Nil
	profile.UserID = nil
	if userID := ctxutil.UserID(ctx); userID != uuid.Nil {
		profile.UserID = &userID
	}
	created, err := ps.profileRepo.Create(ctx, nil, []*types.Profile{profile})
	if err != nil {
		return nil, apierr.Store("profile_create_failed", fmt.Errorf("store profile: %w", err))
	}
	return created[0], nil
}

func (ps *profileService) ListProfiles(ctx context.Context, limit int) ([]*types.Profile, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := ps.profileRepo.ListByUser(ctx, nil, userID, normalizeLimit(limit))
	if err != nil {
		return nil, apierr.Store("profile_list_failed", fmt.Errorf("list profiles: %w", err))
	}
	return profiles, nil
}
