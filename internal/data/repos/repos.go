package repos

import (
	"github.com/yungbote/breakbetter-backend/internal/data/repos/study"
	"github.com/yungbote/breakbetter-backend/internal/data/repos/user"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo

type ProfileRepo = study.ProfileRepo
type RecommendationRepo = study.RecommendationRepo
type StudySessionRepo = study.StudySessionRepo
type BreakSessionRepo = study.BreakSessionRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }

func NewProfileRepo(db *gorm.DB, log *logger.Logger) ProfileRepo {
	return study.NewProfileRepo(db, log)
}

func NewRecommendationRepo(db *gorm.DB, log *logger.Logger) RecommendationRepo {
	return study.NewRecommendationRepo(db, log)
}

func NewStudySessionRepo(db *gorm.DB, log *logger.Logger) StudySessionRepo {
	return study.NewStudySessionRepo(db, log)
}

func NewBreakSessionRepo(db *gorm.DB, log *logger.Logger) BreakSessionRepo {
	return study.NewBreakSessionRepo(db, log)
}
