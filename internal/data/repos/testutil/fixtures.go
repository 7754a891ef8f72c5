package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedClosedStudy stores a completed study session spanning minutes.
func SeedClosedStudy(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, start time.Time, minutes int) *types.StudySession {
	tb.Helper()
	end := start.Add(time.Duration(minutes) * time.Minute)
	s := &types.StudySession{
		ID:        uuid.New(),
		UserID:    userID,
		StartTime: start,
		EndTime:   &end,
		Interval:  "25 minutes",
		Activity:  types.StudyActivity,
		Duration:  minutes,
		Completed: true,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed study session: %v", err)
	}
	return s
}

func SeedClosedBreak(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, start time.Time, minutes int, activity string, before, after int) *types.BreakSession {
	tb.Helper()
	end := start.Add(time.Duration(minutes) * time.Minute)
	b := &types.BreakSession{
		ID:                uuid.New(),
		UserID:            userID,
		StartTime:         start,
		EndTime:           &end,
		Activity:          activity,
		Duration:          minutes,
		Completed:         true,
		EnergyLevelBefore: before,
		EnergyLevelAfter:  &after,
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed break session: %v", err)
	}
	return b
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
