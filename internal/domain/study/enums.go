package study

type StudyIntervalKind string

const (
	HighMental StudyIntervalKind = "high_mental"
	LowMental  StudyIntervalKind = "low_mental"
)

type TimeOfDay string

const (
	Morning TimeOfDay = "morning"
	Evening TimeOfDay = "evening"
)

type DeadlinePressure string

const (
	DeadlineHigh DeadlinePressure = "high"
	DeadlineLow  DeadlinePressure = "low"
)

type ActivityLevel string

const (
	Sedentary ActivityLevel = "sedentary"
	Active    ActivityLevel = "active"
)

const (
	MinEnergyLevel = 1
	MaxEnergyLevel = 10
)

func (k StudyIntervalKind) Valid() bool { return k == HighMental || k == LowMental }
func (t TimeOfDay) Valid() bool         { return t == Morning || t == Evening }
func (d DeadlinePressure) Valid() bool  { return d == DeadlineHigh || d == DeadlineLow }
func (a ActivityLevel) Valid() bool     { return a == Sedentary || a == Active }
