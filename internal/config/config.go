package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"spec-trainer"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Quiz     Quiz
	CORS     CORS
}

// Postgres captures connection info for the recipe database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds session-state and catalog-cache configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Quiz groups gameplay constants. Defaults mirror the house study rules:
// 5 minutes per cocktail while studying, a 6 hour final exam with a single
// supervised 30 minute break, and an 85% pass mark.
type Quiz struct {
	QuestionTime    time.Duration `env:"QUIZ_QUESTION_SECONDS" envDefault:"300s"`
	ExamTime        time.Duration `env:"QUIZ_EXAM_SECONDS" envDefault:"21600s"`
	BreakTime       time.Duration `env:"QUIZ_BREAK_SECONDS" envDefault:"1800s"`
	PassPercent     int           `env:"QUIZ_PASS_PERCENT" envDefault:"85"`
	ChoiceSetSize   int           `env:"QUIZ_CHOICE_SET_SIZE" envDefault:"7"`
	DefaultCategory string        `env:"QUIZ_DEFAULT_CATEGORY" envDefault:"classics"`
	CatalogCacheTTL time.Duration `env:"QUIZ_CATALOG_CACHE_TTL" envDefault:"5m"`
	SessionTTL      time.Duration `env:"QUIZ_SESSION_TTL" envDefault:"8h"`

	// Bcrypt hash of the supervisor password required to start the exam break.
	BreakCredentialHash string `env:"QUIZ_BREAK_CREDENTIAL_HASH,notEmpty"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
