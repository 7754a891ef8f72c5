package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/breakbetter-backend/internal/modules/breaks"
	"github.com/yungbote/breakbetter-backend/internal/observability"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"github.com/yungbote/breakbetter-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	User           services.UserService
	Profile        services.ProfileService
	Recommendation services.RecommendationService
	Session        services.SessionService
	Stats          services.StatsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, metrics *observability.Metrics, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")
	if cfg.JWTSecretKey == defaultJWTSecret {
		log.Warn("JWT_SECRET_KEY not set; using the insecure default")
	}
	scorer := breaks.NewScorer(cfg.IntervalEnergyAdjustment)
	return Services{
		Auth:    services.NewAuthService(log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL()),
		User:    services.NewUserService(log, repos.User),
		Profile: services.NewProfileService(log, repos.Profile),
		Recommendation: services.NewRecommendationService(log, metrics, clients.OpenAI, scorer,
			repos.Profile, repos.Recommendation),
		Session: services.NewSessionService(db, log, metrics, repos.StudySession, repos.BreakSession, clients.StatsCache),
		Stats:   services.NewStatsService(log, metrics, repos.StudySession, repos.BreakSession, clients.StatsCache),
	}
}
