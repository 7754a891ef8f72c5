package domain

import (
	"github.com/yungbote/breakbetter-backend/internal/domain/study"
	"github.com/yungbote/breakbetter-backend/internal/domain/user"
)

type (
	User = user.User

	Profile        = study.Profile
	Recommendation = study.Recommendation
	StudySession   = study.StudySession
	BreakSession   = study.BreakSession

	StudyIntervalKind = study.StudyIntervalKind
	TimeOfDay         = study.TimeOfDay
	DeadlinePressure  = study.DeadlinePressure
	ActivityLevel     = study.ActivityLevel
)

const (
	HighMental = study.HighMental
	LowMental  = study.LowMental

	Morning = study.Morning
	Evening = study.Evening

	DeadlineHigh = study.DeadlineHigh
	DeadlineLow  = study.DeadlineLow

	Sedentary = study.Sedentary
	Active    = study.Active

	PendingInterval = study.PendingInterval
	StudyActivity   = study.StudyActivity
)
