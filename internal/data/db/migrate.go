package db

import (
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&types.User{},

		// Profiles + recommendations
		&types.Profile{},
		&types.Recommendation{},

		// Sessions
		&types.StudySession{},
		&types.BreakSession{},
	)
}
