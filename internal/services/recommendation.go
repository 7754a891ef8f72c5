package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/breakbetter-backend/internal/data/repos"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/modules/breaks"
	"github.com/yungbote/breakbetter-backend/internal/observability"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/ctxutil"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"github.com/yungbote/breakbetter-backend/internal/platform/openai"
)

type RecommendationService interface {
	// CheckConfigured reports a configuration error when no text generator is set.
	CheckConfigured() error
	Recommend(ctx context.Context, profile *types.Profile) (*types.Recommendation, error)
	History(ctx context.Context, limit int) ([]*types.Recommendation, error)
}

type recommendationService struct {
	log       *logger.Logger
	metrics   *observability.Metrics
	generator openai.Client
	scorer    breaks.Scorer
	profiles  repos.ProfileRepo
	recs      repos.RecommendationRepo
}

// NewRecommendationService accepts a nil generator; Recommend then fails with
// a configuration error instead of the process refusing to start.
func NewRecommendationService(
	log *logger.Logger,
	metrics *observability.Metrics,
	generator openai.Client,
	scorer breaks.Scorer,
	profiles repos.ProfileRepo,
	recs repos.RecommendationRepo,
) RecommendationService {
	return &recommendationService{
		log:       log.With("service", "RecommendationService"),
		metrics:   metrics,
		generator: generator,
		scorer:    scorer,
		profiles:  profiles,
		recs:      recs,
	}
}

func (rs *recommendationService) CheckConfigured() error {
	if rs.generator == nil {
		rs.metrics.IncRecommendation("not_configured")
		return apierr.Configuration("generator_not_configured", errors.New("text generation is not configured"))
	}
	return nil
}

func (rs *recommendationService) Recommend(ctx context.Context, profile *types.Profile) (*types.Recommendation, error) {
	if err := rs.CheckConfigured(); err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apierr.Validation("invalid_profile", errors.New("profile required"))
	}
	profile.PersonalPreferences = breaks.CleanPreferences(profile.PersonalPreferences)
	if err := breaks.ValidateProfile(profile); err != nil {
		return nil, apierr.Validation("invalid_profile", err)
	}

	interval := rs.scorer.Score(profile)
	if interval.Fallback {
		rs.log.Warn("Interval scoring fell back to default", "minutes", interval.Minutes)
	}

	prompt, err := breaks.BuildPrompt(profile)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	text, err := rs.generator.GenerateText(ctx, breaks.SystemInstruction, prompt)
	if err != nil {
		rs.log.Error("Recommendation generation failed", "error", err)
		rs.metrics.IncRecommendation("generation_failed")
		return nil, apierr.Generation("generation_failed", fmt.Errorf("generate recommendation: %w", err))
	}

	rec := &types.Recommendation{
		StudyInterval: interval.Label(),
		BreakActivity: breaks.FirstLine(text),
		Duration:      profile.PreferredBreakDuration,
		Description:   text,
		Benefits:      append([]string(nil), breaks.DefaultBenefits...),
		StudyTips:     append([]string(nil), breaks.DefaultStudyTips...),
	}

	rs.persist(ctx, profile, rec)
	rs.metrics.IncRecommendation("ok")
	return rec, nil
}

// persist stores the profile and, for an identified caller, the
// recommendation. Failures are logged only.
func (rs *recommendationService) persist(ctx context.Context, profile *types.Profile, rec *types.Recommendation) {
	userID := ctxutil.UserID(ctx)

	stored := *profile
	stored.ID = uuid.Nil
	stored.UserID = nil
	if userID != uuid.Nil {
		stored.UserID = &userID
	}
	created, err := rs.profiles.Create(ctx, nil, []*types.Profile{&stored})
	if err != nil {
		rs.log.Warn("Failed to store profile", "user_id", userID, "error", err)
	}
	if userID == uuid.Nil {
		return
	}

	toStore := *rec
	toStore.UserID = userID
	if err == nil && len(created) > 0 {
		profileID := created[0].ID
		toStore.ProfileID = &profileID
	}
	saved, err := rs.recs.Create(ctx, nil, []*types.Recommendation{&toStore})
	if err != nil {
		rs.log.Warn("Failed to store recommendation", "user_id", userID, "error", err)
		return
	}
	rec.ID = saved[0].ID
	rec.UserID = saved[0].UserID
	rec.ProfileID = saved[0].ProfileID
	rec.CreatedAt = saved[0].CreatedAt
}

func (rs *recommendationService) History(ctx context.Context, limit int) ([]*types.Recommendation, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := rs.recs.ListByUser(ctx, nil, userID, normalizeLimit(limit))
	if err != nil {
		return nil, apierr.Store("history_failed", fmt.Errorf("list recommendations: %w", err))
	}
	return recs, nil
}
