package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/breakbetter-backend/internal/data/repos"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

type Repos struct {
	User           repos.UserRepo
	Profile        repos.ProfileRepo
	Recommendation repos.RecommendationRepo
	StudySession   repos.StudySessionRepo
	BreakSession   repos.BreakSessionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		Profile:        repos.NewProfileRepo(db, log),
		Recommendation: repos.NewRecommendationRepo(db, log),
		StudySession:   repos.NewStudySessionRepo(db, log),
		BreakSession:   repos.NewBreakSessionRepo(db, log),
	}
}
