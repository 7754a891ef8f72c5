package study

import (
	"time"

	"github.com/google/uuid"
)

const (
	PendingInterval = "pending"
	StudyActivity   = "study"
)

// StudySession is open until EndTime is set and Completed flips to true.
type StudySession struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	StartTime time.Time  `gorm:"not null;index;column:start_time" json:"start_time"`
	EndTime   *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`
	Interval  string     `gorm:"not null;column:interval" json:"interval"`
	Activity  string     `gorm:"not null;column:activity" json:"activity"`
	Duration  int        `gorm:"not null;column:duration" json:"duration"`
	Completed bool       `gorm:"not null;index;column:completed" json:"completed"`
	Notes     *string    `gorm:"type:text;column:notes" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (StudySession) TableName() string { return "study_session" }

type BreakSession struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID  `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	StartTime         time.Time  `gorm:"not null;index;column:start_time" json:"start_time"`
	EndTime           *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`
	Activity          string     `gorm:"not null;column:activity" json:"activity"`
	Duration          int        `gorm:"not null;column:duration" json:"duration"`
	Completed         bool       `gorm:"not null;index;column:completed" json:"completed"`
	EnergyLevelBefore int        `gorm:"not null;column:energy_level_before" json:"energy_level_before"`
	EnergyLevelAfter  *int       `gorm:"column:energy_level_after" json:"energy_level_after,omitempty"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
}

func (BreakSession) TableName() string { return "break_session" }
