package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/breakbetter-backend/internal/platform/envutil"
)

type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SQLitePath string `yaml:"sqlite_path"`
}

type OpenAIConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	MaxRetries     int    `yaml:"max_retries"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type RedisConfig struct {
	Addr                 string `yaml:"addr"`
	StatsCacheTTLSeconds int    `yaml:"stats_cache_ttl_seconds"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Exporter    string  `yaml:"exporter"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	Headers     string  `yaml:"headers"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Port                     string         `yaml:"port"`
	Environment              string         `yaml:"environment"`
	Database                 DatabaseConfig `yaml:"database"`
	JWTSecretKey             string         `yaml:"jwt_secret_key"`
	AccessTokenTTLSeconds    int            `yaml:"access_token_ttl"`
	OpenAI                   OpenAIConfig   `yaml:"openai"`
	IntervalEnergyAdjustment bool           `yaml:"interval_energy_adjustment"`
	Redis                    RedisConfig    `yaml:"redis"`
	CORSAllowOrigins         []string       `yaml:"cors_allow_origins"`
	Otel                     OtelConfig     `yaml:"otel"`
	MetricsEnabled           bool           `yaml:"metrics_enabled"`
}

const defaultJWTSecret = "defaultsecret"

func defaultConfig() Config {
	return Config{
		Port:        "8080",
		Environment: "development",
		Database: DatabaseConfig{
			Driver:     "sqlite",
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Name:       "breakbetter",
			SQLitePath: "breakbetter.db",
		},
		JWTSecretKey:          defaultJWTSecret,
		AccessTokenTTLSeconds: 1800,
		OpenAI: OpenAIConfig{
			Model:          "gpt-3.5-turbo",
			MaxRetries:     3,
			TimeoutSeconds: 60,
		},
		IntervalEnergyAdjustment: true,
		Redis:                    RedisConfig{StatsCacheTTLSeconds: 60},
		Otel:                     OtelConfig{Exporter: "stdout", SampleRatio: 1},
	}
}

// LoadConfig builds the config from defaults, then the YAML file named by
// BREAKBETTER_CONFIG (if any), then environment variables.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()
	if path := strings.TrimSpace(os.Getenv("BREAKBETTER_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.Environment = envutil.String("ENVIRONMENT", cfg.Environment)

	cfg.Database.Driver = strings.ToLower(envutil.String("DB_DRIVER", cfg.Database.Driver))
	cfg.Database.Host = envutil.String("POSTGRES_HOST", cfg.Database.Host)
	cfg.Database.Port = envutil.String("POSTGRES_PORT", cfg.Database.Port)
	cfg.Database.User = envutil.String("POSTGRES_USER", cfg.Database.User)
	cfg.Database.Password = envutil.String("POSTGRES_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = envutil.String("POSTGRES_NAME", cfg.Database.Name)
	cfg.Database.SQLitePath = envutil.String("SQLITE_PATH", cfg.Database.SQLitePath)

	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.AccessTokenTTLSeconds = envutil.Int("ACCESS_TOKEN_TTL", cfg.AccessTokenTTLSeconds)

	cfg.OpenAI.APIKey = envutil.String("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.OpenAI.BaseURL = envutil.String("OPENAI_BASE_URL", cfg.OpenAI.BaseURL)
	cfg.OpenAI.Model = envutil.String("OPENAI_MODEL", cfg.OpenAI.Model)
	cfg.OpenAI.MaxRetries = envutil.Int("OPENAI_MAX_RETRIES", cfg.OpenAI.MaxRetries)
	cfg.OpenAI.TimeoutSeconds = envutil.Int("OPENAI_TIMEOUT_SECONDS", cfg.OpenAI.TimeoutSeconds)

	cfg.IntervalEnergyAdjustment = envutil.Bool("INTERVAL_ENERGY_ADJUSTMENT", cfg.IntervalEnergyAdjustment)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.StatsCacheTTLSeconds = envutil.Int("STATS_CACHE_TTL_SECONDS", cfg.Redis.StatsCacheTTLSeconds)

	cfg.CORSAllowOrigins = envutil.List("CORS_ALLOW_ORIGINS", cfg.CORSAllowOrigins)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.Exporter = envutil.String("OTEL_EXPORTER", cfg.Otel.Exporter)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers)

	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.AccessTokenTTLSeconds <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY must not be empty")
	}
	if c.OpenAI.MaxRetries < 0 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must not be negative")
	}
	return nil
}

func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLSeconds) * time.Second
}

func (c Config) OpenAITimeout() time.Duration {
	return time.Duration(c.OpenAI.TimeoutSeconds) * time.Second
}

func (c Config) StatsCacheTTL() time.Duration {
	return time.Duration(c.Redis.StatsCacheTTLSeconds) * time.Second
}
