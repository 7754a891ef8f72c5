package breaks

import (
	"sort"
	"time"

	types "github.com/yungbote/breakbetter-backend/internal/domain"
)

const (
	DefaultStatsWindowDays = 7
	MaxStatsWindowDays     = 3650
	topActivitiesLimit     = 5
)

type ActivityCount struct {
	Activity string `json:"activity"`
	Count    int    `json:"count"`
}

// Stats summarizes a user's completed sessions in a lookback window.
type Stats struct {
	TotalStudyTimeMinutes     float64         `json:"total_study_time_minutes"`
	TotalBreakTimeMinutes     float64         `json:"total_break_time_minutes"`
	StudySessionsCount        int             `json:"study_sessions_count"`
	BreakSessionsCount        int             `json:"break_sessions_count"`
	AverageEnergyChange       float64         `json:"average_energy_change"`
	MostCommonBreakActivities []ActivityCount `json:"most_common_break_activities"`
	PeriodDays                int             `json:"period_days"`
}

// WindowStart is the earliest start time that still counts for a window.
// days is capped at MaxStatsWindowDays so the offset cannot overflow.
func WindowStart(now time.Time, days int) time.Time {
	if days > MaxStatsWindowDays {
		days = MaxStatsWindowDays
	}
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// Aggregate computes Stats from the given records. Records that are open,
// missing an end time, or started before the window are ignored, so callers
// may pass a superset.
func Aggregate(now time.Time, days int, studies []*types.StudySession, breaks []*types.BreakSession) Stats {
	since := WindowStart(now, days)
	out := Stats{
		MostCommonBreakActivities: []ActivityCount{},
		PeriodDays:                days,
	}

	for _, s := range studies {
		if s == nil || !s.Completed || s.EndTime == nil || s.StartTime.Before(since) {
			continue
		}
		out.StudySessionsCount++
		out.TotalStudyTimeMinutes += s.EndTime.Sub(s.StartTime).Minutes()
	}

	var (
		energyDeltaSum int
		energyDeltaN   int
		counts         = map[string]int{}
		order          []string
	)
	for _, b := range breaks {
		if b == nil || !b.Completed || b.EndTime == nil || b.StartTime.Before(since) {
			continue
		}
		out.BreakSessionsCount++
		out.TotalBreakTimeMinutes += b.EndTime.Sub(b.StartTime).Minutes()
		if b.EnergyLevelAfter != nil {
			energyDeltaSum += *b.EnergyLevelAfter - b.EnergyLevelBefore
			energyDeltaN++
		}
		if _, seen := counts[b.Activity]; !seen {
			order = append(order, b.Activity)
		}
		counts[b.Activity]++
	}

	if energyDeltaN > 0 {
		out.AverageEnergyChange = float64(energyDeltaSum) / float64(energyDeltaN)
	}
	out.MostCommonBreakActivities = topActivities(counts, order, topActivitiesLimit)
	return out
}

// topActivities ranks by count descending; ties keep first-encountered order.
func topActivities(counts map[string]int, order []string, limit int) []ActivityCount {
	ranked := make([]ActivityCount, 0, len(order))
	for _, a := range order {
		ranked = append(ranked, ActivityCount{Activity: a, Count: counts[a]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
