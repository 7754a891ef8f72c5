package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/breakbetter-backend/internal/clients/redis"
	"github.com/yungbote/breakbetter-backend/internal/data/repos"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/modules/breaks"
	"github.com/yungbote/breakbetter-backend/internal/observability"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

type StartBreakInput struct {
	Activity          string
	Duration          int
	EnergyLevelBefore int
}

type EndStudyInput struct {
	Notes *string
	// Duration overrides the elapsed whole minutes when set.
	Duration *int
}

type EndBreakInput struct {
	EnergyLevelAfter *int
}

type SessionService interface {
	StartStudy(ctx context.Context) (*types.StudySession, error)
	EndStudy(ctx context.Context, id uuid.UUID, in EndStudyInput) (*types.StudySession, error)
	ListStudy(ctx context.Context, limit int) ([]*types.StudySession, error)
	StartBreak(ctx context.Context, in StartBreakInput) (*types.BreakSession, error)
	EndBreak(ctx context.Context, id uuid.UUID, in EndBreakInput) (*types.BreakSession, error)
	ListBreaks(ctx context.Context, limit int) ([]*types.BreakSession, error)
}

type sessionService struct {
	db         *gorm.DB
	log        *logger.Logger
	metrics    *observability.Metrics
	studyRepo  repos.StudySessionRepo
	breakRepo  repos.BreakSessionRepo
	statsCache redis.StatsCache
	now        func() time.Time
}

func NewSessionService(
	db *gorm.DB,
	log *logger.Logger,
	metrics *observability.Metrics,
	studyRepo repos.StudySessionRepo,
	breakRepo repos.BreakSessionRepo,
	statsCache redis.StatsCache,
) SessionService {
	if statsCache == nil {
		statsCache = redis.NopStatsCache{}
	}
	return &sessionService{
		db:         db,
		log:        log.With("service", "SessionService"),
		metrics:    metrics,
		studyRepo:  studyRepo,
		breakRepo:  breakRepo,
		statsCache: statsCache,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func sessionNotFound() error {
	return apierr.NotFound("session_not_found", errors.New("session not found"))
}

func (ss *sessionService) StartStudy(ctx context.Context) (*types.StudySession, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	session := &types.StudySession{
		UserID:    userID,
		StartTime: ss.now(),
		Interval:  types.PendingInterval,
		Activity:  types.StudyActivity,
	}
	created, err := ss.studyRepo.Create(ctx, nil, []*types.StudySession{session})
	if err != nil {
		return nil, apierr.Store("session_create_failed", fmt.Errorf("create study session: %w", err))
	}
	return created[0], nil
}

// EndStudy closes an open study session owned by the caller. A missing,
// foreign or already closed session is reported as not found.
func (ss *sessionService) EndStudy(ctx context.Context, id uuid.UUID, in EndStudyInput) (*types.StudySession, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if in.Duration != nil && *in.Duration < 0 {
		return nil, apierr.Validation("invalid_duration", errors.New("duration must not be negative"))
	}

	var closed *types.StudySession
	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := ss.studyRepo.GetByID(ctx, tx, userID, id)
		if err != nil {
			return apierr.Store("session_lookup_failed", fmt.Errorf("load study session: %w", err))
		}
		if session == nil || session.Completed {
			return sessionNotFound()
		}
		end := ss.now()
		duration := int(end.Sub(session.StartTime) / time.Minute)
		if duration < 0 {
			duration = 0
		}
		if in.Duration != nil {
			duration = *in.Duration
		}
		ok, err := ss.studyRepo.Complete(ctx, tx, userID, id, end, duration, in.Notes)
		if err != nil {
			return apierr.Store("session_update_failed", fmt.Errorf("close study session: %w", err))
		}
		if !ok {
			return sessionNotFound()
		}
		closed, err = ss.studyRepo.GetByID(ctx, tx, userID, id)
		if err != nil {
			return apierr.Store("session_lookup_failed", fmt.Errorf("reload study session: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ss.metrics.IncSessionClosed("study")
	ss.invalidateStats(ctx, userID)
	return closed, nil
}

func (ss *sessionService) ListStudy(ctx context.Context, limit int) ([]*types.StudySession, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := ss.studyRepo.ListByUser(ctx, nil, userID, normalizeLimit(limit))
	if err != nil {
		return nil, apierr.Store("session_list_failed", fmt.Errorf("list study sessions: %w", err))
	}
	return sessions, nil
}

func (ss *sessionService) StartBreak(ctx context.Context, in StartBreakInput) (*types.BreakSession, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	activity := strings.TrimSpace(in.Activity)
	if activity == "" {
		return nil, apierr.Validation("invalid_activity", errors.New("activity is required"))
	}
	if in.Duration <= 0 {
		return nil, apierr.Validation("invalid_duration", errors.New("duration must be positive"))
	}
	if err := breaks.ValidateEnergyLevel("energy_level_before", in.EnergyLevelBefore); err != nil {
		return nil, apierr.Validation("invalid_energy_level", err)
	}
	session := &types.BreakSession{
		UserID:            userID,
		StartTime:         ss.now(),
		Activity:          activity,
		Duration:          in.Duration,
		EnergyLevelBefore: in.EnergyLevelBefore,
	}
	created, err := ss.breakRepo.Create(ctx, nil, []*types.BreakSession{session})
	if err != nil {
		return nil, apierr.Store("session_create_failed", fmt.Errorf("create break session: %w", err))
	}
	return created[0], nil
}

func (ss *sessionService) EndBreak(ctx context.Context, id uuid.UUID, in EndBreakInput) (*types.BreakSession, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if in.EnergyLevelAfter != nil {
		if err := breaks.ValidateEnergyLevel("energy_level_after", *in.EnergyLevelAfter); err != nil {
			return nil, apierr.Validation("invalid_energy_level", err)
		}
	}

	var closed *types.BreakSession
	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := ss.breakRepo.Complete(ctx, tx, userID, id, ss.now(), in.EnergyLevelAfter)
		if err != nil {
			return apierr.Store("session_update_failed", fmt.Errorf("close break session: %w", err))
		}
		if !ok {
			return sessionNotFound()
		}
		closed, err = ss.breakRepo.GetByID(ctx, tx, userID, id)
		if err != nil {
			return apierr.Store("session_lookup_failed", fmt.Errorf("reload break session: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ss.metrics.IncSessionClosed("break")
	ss.invalidateStats(ctx, userID)
	return closed, nil
}

func (ss *sessionService) ListBreaks(ctx context.Context, limit int) ([]*types.BreakSession, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := ss.breakRepo.ListByUser(ctx, nil, userID, normalizeLimit(limit))
	if err != nil {
		return nil, apierr.Store("session_list_failed", fmt.Errorf("list break sessions: %w", err))
	}
	return sessions, nil
}

func (ss *sessionService) invalidateStats(ctx context.Context, userID uuid.UUID) {
	if err := ss.statsCache.Invalidate(ctx, userID); err != nil {
		ss.log.Warn("Stats cache invalidation failed", "user_id", userID, "error", err)
	}
}
