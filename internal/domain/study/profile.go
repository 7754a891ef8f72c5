package study

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile is the user-submitted study/break preference record.
// UserID is nil for profiles stored through the anonymous endpoint.
type Profile struct {
	ID                     uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 *uuid.UUID                  `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	Name                   string                      `gorm:"not null;column:name" json:"name"`
	StudyInterval          StudyIntervalKind           `gorm:"not null;column:study_interval" json:"study_interval"`
	TimeOfDay              TimeOfDay                   `gorm:"not null;column:time_of_day" json:"time_of_day"`
	DeadlinePressure       DeadlinePressure            `gorm:"not null;column:deadline_pressure" json:"deadline_pressure"`
	PersonalPreferences    datatypes.JSONSlice[string] `gorm:"column:personal_preferences" json:"personal_preferences"`
	ScreenUsage            bool                        `gorm:"not null;column:screen_usage" json:"screen_usage"`
	ActivityLevel          ActivityLevel               `gorm:"not null;column:activity_level" json:"activity_level"`
	EnergyLevel            int                         `gorm:"not null;column:energy_level" json:"energy_level"`
	PreferredBreakDuration int                         `gorm:"not null;column:preferred_break_duration" json:"preferred_break_duration"`
	CreatedAt              time.Time                   `gorm:"not null;index" json:"created_at"`
}

func (Profile) TableName() string { return "profile" }
