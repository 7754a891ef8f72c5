package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/breakbetter-backend/internal/http/handlers"
	httpMW "github.com/yungbote/breakbetter-backend/internal/http/middleware"
	"github.com/yungbote/breakbetter-backend/internal/observability"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log                *logger.Logger
	ServiceName        string
	CORSAllowedOrigins []string
	Metrics            *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler         *httpH.HealthHandler
	AuthHandler           *httpH.AuthHandler
	UserHandler           *httpH.UserHandler
	ProfileHandler        *httpH.ProfileHandler
	RecommendationHandler *httpH.RecommendationHandler
	SessionHandler        *httpH.SessionHandler
	StatsHandler          *httpH.StatsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSAllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Auth (public), both the bare and the /api spellings.
	if cfg.AuthHandler != nil {
		r.POST("/register", cfg.AuthHandler.Register)
		r.POST("/token", cfg.AuthHandler.Token)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Token)
		}
		if cfg.ProfileHandler != nil {
			if cfg.AuthMiddleware != nil {
				api.POST("/profile", cfg.AuthMiddleware.OptionalAuth(), cfg.ProfileHandler.CreateProfile)
			} else {
				api.POST("/profile", cfg.ProfileHandler.CreateProfile)
			}
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Profiles
		if cfg.ProfileHandler != nil {
			protected.GET("/profiles", cfg.ProfileHandler.ListProfiles)
		}

		// Recommendations
		if cfg.RecommendationHandler != nil {
			protected.POST("/recommend", cfg.RecommendationHandler.Recommend)
			protected.GET("/history", cfg.RecommendationHandler.History)
		}

		// Study and break sessions
		if cfg.SessionHandler != nil {
			protected.POST("/sessions/start", cfg.SessionHandler.StartStudy)
			protected.POST("/sessions/:id/end", cfg.SessionHandler.EndStudy)
			protected.GET("/sessions", cfg.SessionHandler.ListStudy)
			protected.POST("/breaks/start", cfg.SessionHandler.StartBreak)
			protected.POST("/breaks/:id/end", cfg.SessionHandler.EndBreak)
			protected.GET("/breaks", cfg.SessionHandler.ListBreaks)
		}

		// Stats
		if cfg.StatsHandler != nil {
			protected.GET("/stats", cfg.StatsHandler.GetStats)
		}
	}

	return r
}
