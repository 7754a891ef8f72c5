package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/breakbetter-backend/internal/http"
	httpH "github.com/yungbote/breakbetter-backend/internal/http/handlers"
	httpMW "github.com/yungbote/breakbetter-backend/internal/http/middleware"
	"github.com/yungbote/breakbetter-backend/internal/observability"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

const serviceName = "breakbetter"

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health         *httpH.HealthHandler
	Auth           *httpH.AuthHandler
	User           *httpH.UserHandler
	Profile        *httpH.ProfileHandler
	Recommendation *httpH.RecommendationHandler
	Session        *httpH.SessionHandler
	Stats          *httpH.StatsHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(),
		Auth:           httpH.NewAuthHandler(log, services.Auth),
		User:           httpH.NewUserHandler(log, services.User),
		Profile:        httpH.NewProfileHandler(log, services.Profile),
		Recommendation: httpH.NewRecommendationHandler(log, services.Recommendation),
		Session:        httpH.NewSessionHandler(log, services.Session),
		Stats:          httpH.NewStatsHandler(log, services.Stats),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	tracedService := ""
	if cfg.Otel.Enabled {
		tracedService = serviceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:                   log,
		ServiceName:           tracedService,
		CORSAllowedOrigins:    cfg.CORSAllowOrigins,
		Metrics:               metrics,
		AuthMiddleware:        middleware.Auth,
		HealthHandler:         handlers.Health,
		AuthHandler:           handlers.Auth,
		UserHandler:           handlers.User,
		ProfileHandler:        handlers.Profile,
		RecommendationHandler: handlers.Recommendation,
		SessionHandler:        handlers.Session,
		StatsHandler:          handlers.Stats,
	})
}
