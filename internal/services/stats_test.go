package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/breakbetter-backend/internal/data/repos"
	"github.com/yungbote/breakbetter-backend/internal/data/repos/testutil"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/modules/breaks"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
)

func TestGetStats(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cache := newRecordingStatsCache()
	svc := NewStatsService(log, nil, repos.NewStudySessionRepo(db, log), repos.NewBreakSessionRepo(db, log), cache).(*statsService)
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	user := seedUser(t, db, "ada")
	ctx := context.Background()
	testutil.SeedClosedStudy(t, ctx, db, user.ID, now.Add(-2*time.Hour), 30)
	testutil.SeedClosedStudy(t, ctx, db, user.ID, now.Add(-30*time.Hour), 45)
	testutil.SeedClosedStudy(t, ctx, db, user.ID, now.AddDate(0, 0, -10), 60)
	testutil.SeedClosedBreak(t, ctx, db, user.ID, now.Add(-90*time.Minute), 10, "walk", 3, 6)
	testutil.SeedClosedBreak(t, ctx, db, user.ID, now.Add(-20*time.Hour), 5, "stretch", 5, 6)
	testutil.SeedClosedBreak(t, ctx, db, user.ID, now.Add(-26*time.Hour), 15, "walk", 4, 4)

	stats, err := svc.GetStats(asUser(user.ID), 0)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.PeriodDays != 7 {
		t.Fatalf("period: want=7 got=%d", stats.PeriodDays)
	}
	if stats.StudySessionsCount != 2 || stats.TotalStudyTimeMinutes != 75 {
		t.Fatalf("study totals: got count=%d minutes=%v", stats.StudySessionsCount, stats.TotalStudyTimeMinutes)
	}
	if stats.BreakSessionsCount != 3 || stats.TotalBreakTimeMinutes != 30 {
		t.Fatalf("break totals: got count=%d minutes=%v", stats.BreakSessionsCount, stats.TotalBreakTimeMinutes)
	}
	if stats.AverageEnergyChange != 4.0/3.0 {
		t.Fatalf("energy change: got %v", stats.AverageEnergyChange)
	}
	if len(stats.MostCommonBreakActivities) != 2 || stats.MostCommonBreakActivities[0].Activity != "walk" {
		t.Fatalf("activities: got %+v", stats.MostCommonBreakActivities)
	}

	wide, err := svc.GetStats(asUser(user.ID), 30)
	if err != nil {
		t.Fatalf("GetStats(30): %v", err)
	}
	if wide.StudySessionsCount != 3 {
		t.Fatalf("30 day window: want=3 got=%d", wide.StudySessionsCount)
	}
	if _, ok, _ := cache.Get(ctx, user.ID, 7); !ok {
		t.Fatalf("expected stats to be cached")
	}
}

func TestGetStatsRejectsBadWindow(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewStatsService(log, nil, repos.NewStudySessionRepo(db, log), repos.NewBreakSessionRepo(db, log), nil)
	user := seedUser(t, db, "ada")
	_, err := svc.GetStats(asUser(user.ID), -1)
	requireKind(t, err, apierr.KindValidation)

	_, err = svc.GetStats(asUser(user.ID), breaks.MaxStatsWindowDays+1)
	requireKind(t, err, apierr.KindValidation)
	_, err = svc.GetStats(asUser(user.ID), 200000)
	requireKind(t, err, apierr.KindValidation)

	stats, err := svc.GetStats(asUser(user.ID), breaks.MaxStatsWindowDays)
	if err != nil {
		t.Fatalf("GetStats(max): %v", err)
	}
	if stats.PeriodDays != breaks.MaxStatsWindowDays {
		t.Fatalf("period: want=%d got=%d", breaks.MaxStatsWindowDays, stats.PeriodDays)
	}
}

func TestGetStatsServedFromCache(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cache := newRecordingStatsCache()
	svc := NewStatsService(log, nil, repos.NewStudySessionRepo(db, log), repos.NewBreakSessionRepo(db, log), cache)
	user := seedUser(t, db, "ada")
	ctx := asUser(user.ID)

	first, err := svc.GetStats(ctx, 7)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	testutil.SeedClosedStudy(t, context.Background(), db, user.ID, time.Now().UTC().Add(-time.Hour), 20)
	second, err := svc.GetStats(ctx, 7)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if second.StudySessionsCount != first.StudySessionsCount {
		t.Fatalf("expected cached result until invalidation")
	}
	_ = cache.Invalidate(ctx, user.ID)
	third, err := svc.GetStats(ctx, 7)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if third.StudySessionsCount != 1 {
		t.Fatalf("after invalidation: want=1 got=%d", third.StudySessionsCount)
	}
}

// closingStudyRepo runs onLoad after reading, standing in for a session
// close that commits while stats are being computed.
type closingStudyRepo struct {
	repos.StudySessionRepo
	onLoad func()
}

func (r closingStudyRepo) ListCompletedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.StudySession, error) {
	out, err := r.StudySessionRepo.ListCompletedSince(ctx, tx, userID, since)
	r.onLoad()
	return out, err
}

func TestGetStatsSkipsCacheWriteWhenInvalidatedDuringLoad(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cache := newRecordingStatsCache()
	user := seedUser(t, db, "ada")

	studyRepo := closingStudyRepo{
		StudySessionRepo: repos.NewStudySessionRepo(db, log),
		onLoad:           func() { _ = cache.Invalidate(context.Background(), user.ID) },
	}
	svc := NewStatsService(log, nil, studyRepo, repos.NewBreakSessionRepo(db, log), cache)

	if _, err := svc.GetStats(asUser(user.ID), 7); err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if _, ok, _ := cache.Get(context.Background(), user.ID, 7); ok {
		t.Fatalf("stats loaded before the invalidation must not be cached")
	}
}
