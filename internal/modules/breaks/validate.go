package breaks

import (
	"errors"
	"fmt"
	"strings"

	types "github.com/yungbote/breakbetter-backend/internal/domain"
)

// ValidateProfile checks the stored-profile invariants. Scoring itself never
// rejects a profile; this runs at the service boundary.
func ValidateProfile(p *types.Profile) error {
	if p == nil {
		return errors.New("profile required")
	}
	var problems []string
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !p.StudyInterval.Valid() {
		problems = append(problems, fmt.Sprintf("study_interval must be %q or %q", types.HighMental, types.LowMental))
	}
	if !p.TimeOfDay.Valid() {
		problems = append(problems, fmt.Sprintf("time_of_day must be %q or %q", types.Morning, types.Evening))
	}
	if !p.DeadlinePressure.Valid() {
		problems = append(problems, fmt.Sprintf("deadline_pressure must be %q or %q", types.DeadlineHigh, types.DeadlineLow))
	}
	if !p.ActivityLevel.Valid() {
		problems = append(problems, fmt.Sprintf("activity_level must be %q or %q", types.Sedentary, types.Active))
	}
	if err := ValidateEnergyLevel("energy_level", p.EnergyLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if p.PreferredBreakDuration <= 0 {
		problems = append(problems, "preferred_break_duration must be positive")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ValidateEnergyLevel(field string, v int) error {
	if v < 1 || v > 10 {
		return fmt.Errorf("%s must be between 1 and 10", field)
	}
	return nil
}
