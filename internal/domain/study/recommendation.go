package study

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Recommendation struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID                   `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	ProfileID     *uuid.UUID                  `gorm:"type:uuid;column:profile_id" json:"profile_id,omitempty"`
	StudyInterval string                      `gorm:"not null;column:study_interval" json:"study_interval"`
	BreakActivity string                      `gorm:"not null;column:break_activity" json:"break_activity"`
	Duration      int                         `gorm:"not null;column:duration" json:"duration"`
	Description   string                      `gorm:"type:text;column:description" json:"description"`
	Benefits      datatypes.JSONSlice[string] `gorm:"column:benefits" json:"benefits"`
	StudyTips     datatypes.JSONSlice[string] `gorm:"column:study_tips" json:"study_tips"`
	CreatedAt     time.Time                   `gorm:"not null;index" json:"created_at"`
}

func (Recommendation) TableName() string { return "recommendation" }
