package breaks

import (
	"testing"

	types "github.com/yungbote/breakbetter-backend/internal/domain"
)

func profile(kind types.StudyIntervalKind, tod types.TimeOfDay, deadline types.DeadlinePressure, energy int) *types.Profile {
	return &types.Profile{
		Name:                   "Ada",
		StudyInterval:          kind,
		TimeOfDay:              tod,
		DeadlinePressure:       deadline,
		ActivityLevel:          types.Sedentary,
		EnergyLevel:            energy,
		PreferredBreakDuration: 10,
	}
}

func TestScoreFixedCases(t *testing.T) {
	cases := []struct {
		name   string
		energy bool
		p      *types.Profile
		want   string
	}{
		{"high mental morning low deadline", true, profile(types.HighMental, types.Morning, types.DeadlineLow, 5), "20 minutes"},
		{"low mental evening high deadline energetic", true, profile(types.LowMental, types.Evening, types.DeadlineHigh, 9), "33 minutes"},
		{"same without energy step", false, profile(types.LowMental, types.Evening, types.DeadlineHigh, 9), "30 minutes"},
		{"tired high mental evening", true, profile(types.HighMental, types.Evening, types.DeadlineLow, 2), "15 minutes"},
		{"energy boundary 4 no change", true, profile(types.HighMental, types.Morning, types.DeadlineLow, 4), "20 minutes"},
		{"energy boundary 7 no change", true, profile(types.HighMental, types.Morning, types.DeadlineLow, 7), "20 minutes"},
		{"energy 8 adds", true, profile(types.LowMental, types.Morning, types.DeadlineHigh, 8), "38 minutes"},
		{"energy absent", true, profile(types.LowMental, types.Morning, types.DeadlineLow, 0), "30 minutes"},
	}
	for _, tc := range cases {
		got := NewScorer(tc.energy).Score(tc.p)
		if got.Fallback {
			t.Fatalf("%s: unexpected fallback", tc.name)
		}
		if got.Label() != tc.want {
			t.Fatalf("%s: want=%q got=%q", tc.name, tc.want, got.Label())
		}
	}
}

func TestScoreUnknownEnumsTakeElseBranch(t *testing.T) {
	p := profile("creative", "noon", "medium", 5)
	got := NewScorer(true).Score(p)
	// unknown study kind is treated as low mental (+5), others no change
	if got.Minutes != 30 || got.Fallback {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestScoreNilProfileFallsBack(t *testing.T) {
	got := NewScorer(true).Score(nil)
	if !got.Fallback {
		t.Fatalf("expected fallback for nil profile")
	}
	if got.Label() != "25 minutes" {
		t.Fatalf("fallback label: got %q", got.Label())
	}
}

func TestScoreAlwaysWithinBounds(t *testing.T) {
	kinds := []types.StudyIntervalKind{types.HighMental, types.LowMental, ""}
	tods := []types.TimeOfDay{types.Morning, types.Evening, ""}
	deadlines := []types.DeadlinePressure{types.DeadlineHigh, types.DeadlineLow, ""}
	for _, energyStep := range []bool{true, false} {
		scorer := NewScorer(energyStep)
		for _, k := range kinds {
			for _, tod := range tods {
				for _, d := range deadlines {
					for e := 0; e <= 10; e++ {
						got := scorer.Score(profile(k, tod, d, e))
						if got.Minutes < 15 || got.Minutes > 50 {
							t.Fatalf("out of bounds: %+v for %s/%s/%s/%d", got, k, tod, d, e)
						}
					}
				}
			}
		}
	}
}
