package breaks

import (
	"fmt"

	types "github.com/yungbote/breakbetter-backend/internal/domain"
)

const (
	baseIntervalMinutes    = 25
	minIntervalMinutes     = 15
	maxIntervalMinutes     = 50
	DefaultIntervalMinutes = 25
)

// IntervalResult is the outcome of scoring a profile. Fallback is set when
// scoring could not run and Minutes holds the default.
type IntervalResult struct {
	Minutes  int
	Fallback bool
}

func (r IntervalResult) Label() string {
	return fmt.Sprintf("%d minutes", r.Minutes)
}

// Scorer maps a profile to a study interval. EnergyAdjustment enables the
// fifth factor (energy level); without it only the first four apply.
type Scorer struct {
	EnergyAdjustment bool
}

func NewScorer(energyAdjustment bool) Scorer {
	return Scorer{EnergyAdjustment: energyAdjustment}
}

// Score never fails: unknown enum values take the no-change branch and an
// unusable profile yields the default interval with Fallback set.
func (s Scorer) Score(p *types.Profile) (res IntervalResult) {
	defer func() {
		if r := recover(); r != nil {
			res = IntervalResult{Minutes: DefaultIntervalMinutes, Fallback: true}
		}
	}()
	if p == nil {
		return IntervalResult{Minutes: DefaultIntervalMinutes, Fallback: true}
	}

	minutes := baseIntervalMinutes

	if p.StudyInterval == types.HighMental {
		minutes -= 5
	} else {
		minutes += 5
	}

	if p.TimeOfDay == types.Evening {
		minutes -= 5
	}

	if p.DeadlinePressure == types.DeadlineHigh {
		minutes += 5
	}

	// 0 means the caller did not report an energy level.
	if s.EnergyAdjustment && p.EnergyLevel != 0 {
		if p.EnergyLevel < 4 {
			minutes -= 3
		} else if p.EnergyLevel > 7 {
			minutes += 3
		}
	}

	return IntervalResult{Minutes: clamp(minutes, minIntervalMinutes, maxIntervalMinutes)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
