package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/breakbetter-backend/internal/clients/redis"
	"github.com/yungbote/breakbetter-backend/internal/data/repos"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/modules/breaks"
	"github.com/yungbote/breakbetter-backend/internal/observability"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

type StatsService interface {
	// GetStats summarizes the caller's completed sessions over the last days.
	// days == 0 selects the default window.
	GetStats(ctx context.Context, days int) (*breaks.Stats, error)
}

type statsService struct {
	log        *logger.Logger
	metrics    *observability.Metrics
	studyRepo  repos.StudySessionRepo
	breakRepo  repos.BreakSessionRepo
	statsCache redis.StatsCache
	now        func() time.Time
}

func NewStatsService(
	log *logger.Logger,
	metrics *observability.Metrics,
	studyRepo repos.StudySessionRepo,
	breakRepo repos.BreakSessionRepo,
	statsCache redis.StatsCache,
) StatsService {
	if statsCache == nil {
		statsCache = redis.NopStatsCache{}
	}
	return &statsService{
		log:        log.With("service", "StatsService"),
		metrics:    metrics,
		studyRepo:  studyRepo,
		breakRepo:  breakRepo,
		statsCache: statsCache,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *statsService) GetStats(ctx context.Context, days int) (*breaks.Stats, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		days = breaks.DefaultStatsWindowDays
	}
	if days < 1 {
		return nil, apierr.Validation("invalid_days", errors.New("days must be at least 1"))
	}
	if days > breaks.MaxStatsWindowDays {
		return nil, apierr.Validation("invalid_days", fmt.Errorf("days must be at most %d", breaks.MaxStatsWindowDays))
	}

	if cached, ok, err := s.statsCache.Get(ctx, userID, days); err != nil {
		s.metrics.IncStatsCache("error")
		s.log.Warn("Stats cache read failed", "user_id", userID, "error", err)
	} else if ok {
		s.metrics.IncStatsCache("hit")
		return cached, nil
	} else {
		s.metrics.IncStatsCache("miss")
	}

	// Read before loading so a close committed mid-load voids the write below.
	gen, genErr := s.statsCache.Generation(ctx, userID)
	if genErr != nil {
		s.log.Warn("Stats cache generation read failed", "user_id", userID, "error", genErr)
	}

	now := s.now()
	since := breaks.WindowStart(now, days)

	var (
		studies []*types.StudySession
		rests   []*types.BreakSession
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		studies, err = s.studyRepo.ListCompletedSince(gctx, nil, userID, since)
		return err
	})
	g.Go(func() error {
		var err error
		rests, err = s.breakRepo.ListCompletedSince(gctx, nil, userID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apierr.Store("stats_load_failed", fmt.Errorf("load sessions: %w", err))
	}

	stats := breaks.Aggregate(now, days, studies, rests)
	if genErr == nil {
		if err := s.statsCache.Set(ctx, userID, days, gen, stats); err != nil {
			s.log.Warn("Stats cache write failed", "user_id", userID, "error", err)
		}
	}
	return &stats, nil
}
