package app

import (
	"errors"
	"fmt"

	"github.com/yungbote/breakbetter-backend/internal/clients/redis"
	"github.com/yungbote/breakbetter-backend/internal/observability"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"github.com/yungbote/breakbetter-backend/internal/platform/openai"
)

type Clients struct {
	// OpenAI is nil when no API key is configured.
	OpenAI     openai.Client
	StatsCache redis.StatsCache
}

func wireClients(log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")

	var generator openai.Client
	oc, err := openai.NewClient(log, openai.Config{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.Model,
		MaxRetries: cfg.OpenAI.MaxRetries,
		Timeout:    cfg.OpenAITimeout(),
		Observer:   metricsObserver(metrics),
	})
	switch {
	case errors.Is(err, openai.ErrMissingAPIKey):
		log.Warn("OPENAI_API_KEY not set; recommendations will fail with a configuration error")
	case err != nil:
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	default:
		generator = oc
	}

	var cache redis.StatsCache = redis.NopStatsCache{}
	if cfg.Redis.Addr != "" {
		c, err := redis.NewStatsCache(log, redis.StatsCacheConfig{
			Addr: cfg.Redis.Addr,
			TTL:  cfg.StatsCacheTTL(),
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis stats cache: %w", err)
		}
		cache = c
	}

	return Clients{OpenAI: generator, StatsCache: cache}, nil
}

// metricsObserver avoids handing the client a typed-nil observer.
func metricsObserver(m *observability.Metrics) openai.RequestObserver {
	if m == nil {
		return nil
	}
	return m
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.StatsCache != nil {
		_ = c.StatsCache.Close()
	}
}
