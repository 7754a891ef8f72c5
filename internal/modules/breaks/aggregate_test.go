package breaks

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/breakbetter-backend/internal/domain"
)

var aggNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func closedStudy(start time.Time, minutes int) *types.StudySession {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return &types.StudySession{ID: uuid.New(), StartTime: start, EndTime: &end, Completed: true}
}

func closedBreak(start time.Time, minutes int, activity string, before int, after *int) *types.BreakSession {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return &types.BreakSession{
		ID:                uuid.New(),
		StartTime:         start,
		EndTime:           &end,
		Activity:          activity,
		Completed:         true,
		EnergyLevelBefore: before,
		EnergyLevelAfter:  after,
	}
}

func intPtr(v int) *int { return &v }

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(aggNow, 7, nil, nil)
	if got.TotalStudyTimeMinutes != 0 || got.TotalBreakTimeMinutes != 0 {
		t.Fatalf("expected zero totals, got %+v", got)
	}
	if got.StudySessionsCount != 0 || got.BreakSessionsCount != 0 {
		t.Fatalf("expected zero counts, got %+v", got)
	}
	if got.AverageEnergyChange != 0 {
		t.Fatalf("expected zero energy change, got %v", got.AverageEnergyChange)
	}
	if got.MostCommonBreakActivities == nil || len(got.MostCommonBreakActivities) != 0 {
		t.Fatalf("expected empty non-nil activity list, got %#v", got.MostCommonBreakActivities)
	}
	if got.PeriodDays != 7 {
		t.Fatalf("period days: want=7 got=%d", got.PeriodDays)
	}
}

func TestAggregateTotalsAndCounts(t *testing.T) {
	studies := []*types.StudySession{
		closedStudy(aggNow.Add(-2*time.Hour), 25),
		closedStudy(aggNow.Add(-26*time.Hour), 50),
		closedStudy(aggNow.Add(-8*24*time.Hour), 40), // outside window
	}
	breaks := []*types.BreakSession{
		closedBreak(aggNow.Add(-90*time.Minute), 5, "walk", 4, intPtr(7)),
		closedBreak(aggNow.Add(-30*time.Minute), 10, "stretch", 6, intPtr(5)),
		closedBreak(aggNow.Add(-20*time.Minute), 3, "walk", 5, nil),
	}

	got := Aggregate(aggNow, 7, studies, breaks)
	if got.StudySessionsCount != 2 || got.TotalStudyTimeMinutes != 75 {
		t.Fatalf("study: got count=%d total=%v", got.StudySessionsCount, got.TotalStudyTimeMinutes)
	}
	if got.BreakSessionsCount != 3 || got.TotalBreakTimeMinutes != 18 {
		t.Fatalf("break: got count=%d total=%v", got.BreakSessionsCount, got.TotalBreakTimeMinutes)
	}
	// (7-4) and (5-6) over two sessions with an after reading
	if math.Abs(got.AverageEnergyChange-1.0) > 1e-9 {
		t.Fatalf("energy change: want=1 got=%v", got.AverageEnergyChange)
	}
	if len(got.MostCommonBreakActivities) != 2 || got.MostCommonBreakActivities[0] != (ActivityCount{"walk", 2}) {
		t.Fatalf("unexpected activities: %+v", got.MostCommonBreakActivities)
	}
}

func TestAggregateExcludesOpenSessions(t *testing.T) {
	openStudy := &types.StudySession{ID: uuid.New(), StartTime: aggNow.Add(-time.Hour)}
	end := aggNow
	notCompleted := &types.BreakSession{ID: uuid.New(), StartTime: aggNow.Add(-time.Hour), EndTime: &end, Activity: "nap", EnergyLevelBefore: 3, EnergyLevelAfter: intPtr(9)}

	got := Aggregate(aggNow, 7, []*types.StudySession{openStudy}, []*types.BreakSession{notCompleted})
	if got.StudySessionsCount != 0 || got.BreakSessionsCount != 0 {
		t.Fatalf("open sessions counted: %+v", got)
	}
	if got.AverageEnergyChange != 0 || len(got.MostCommonBreakActivities) != 0 {
		t.Fatalf("open break leaked into stats: %+v", got)
	}
}

func TestAggregateTopActivitiesCappedAndOrdered(t *testing.T) {
	var breaks []*types.BreakSession
	add := func(activity string, n int) {
		for i := 0; i < n; i++ {
			breaks = append(breaks, closedBreak(aggNow.Add(-time.Hour), 5, activity, 5, nil))
		}
	}
	add("read", 1)
	add("walk", 3)
	add("tea", 2)
	add("music", 2)
	add("nap", 1)
	add("yoga", 4)
	add("chat", 1)

	got := Aggregate(aggNow, 7, nil, breaks).MostCommonBreakActivities
	want := []ActivityCount{{"yoga", 4}, {"walk", 3}, {"tea", 2}, {"music", 2}, {"read", 1}}
	if len(got) != len(want) {
		t.Fatalf("len: want=%d got=%d (%+v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank %d: want=%+v got=%+v", i, want[i], got[i])
		}
	}
}

func TestWindowStartHugeWindowStaysInPast(t *testing.T) {
	start := WindowStart(aggNow, 200000)
	if !start.Before(aggNow) {
		t.Fatalf("WindowStart: want before %v, got %v", aggNow, start)
	}
	got := Aggregate(aggNow, 200000, []*types.StudySession{closedStudy(aggNow.Add(-time.Hour), 30)}, nil)
	if got.StudySessionsCount != 1 {
		t.Fatalf("in-window session dropped: %+v", got)
	}
}
