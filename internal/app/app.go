package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dbpkg "github.com/yungbote/breakbetter-backend/internal/data/db"
	httpserver "github.com/yungbote/breakbetter-backend/internal/http"
	"github.com/yungbote/breakbetter-backend/internal/observability"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients

	dbService *dbpkg.Service
	shutdown  func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if logMode == "production" || logMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig()
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	shutdown, err := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Exporter:    cfg.Otel.Exporter,
		Endpoint:    cfg.Otel.Endpoint,
		Insecure:    cfg.Otel.Insecure,
		Headers:     observability.ParseHeaders(cfg.Otel.Headers),
		SampleRatio: cfg.Otel.SampleRatio,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init otel: %w", err)
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	dbService, err := dbpkg.NewService(log, dbpkg.Config{
		Driver:     cfg.Database.Driver,
		Host:       cfg.Database.Host,
		Port:       cfg.Database.Port,
		User:       cfg.Database.User,
		Password:   cfg.Database.Password,
		Name:       cfg.Database.Name,
		SQLitePath: cfg.Database.SQLitePath,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	clientset, err := wireClients(log, cfg, metrics)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, metrics, reposet, clientset)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:       log,
		DB:        theDB,
		Router:    router,
		Cfg:       cfg,
		Repos:     reposet,
		Services:  serviceset,
		Clients:   clientset,
		dbService: dbService,
		shutdown:  shutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	server := &httpserver.Server{Engine: a.Router}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	if err := server.Run(ctx, ":"+a.Cfg.Port); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.dbService != nil {
		_ = a.dbService.Close()
	}
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.shutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
