package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Redis struct {
		Enabled  bool   `env:"REDIS_ENABLED" env-default:"false"`
		Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" env-default:"0"`
		Prefix   string `env:"REDIS_PREFIX" env-default:"igmd:"`
	}
	Instagram struct {
		BaseURL        string        `env:"INSTAGRAM_BASE_URL" env-default:"https://graph.instagram.com/v20.0"`
		DefaultCount   int           `env:"INSTAGRAM_DEFAULT_COUNT" env-default:"4"`
		PageLimit      int           `env:"INSTAGRAM_PAGE_LIMIT" env-default:"25"`
		MaxLimit       int           `env:"INSTAGRAM_MAX_LIMIT" env-default:"100"`
		CacheTTL       time.Duration `env:"INSTAGRAM_CACHE_TTL" env-default:"1h"`
		TagPageCeiling int           `env:"INSTAGRAM_TAG_PAGE_CEILING" env-default:"10"`
	}
	Telegram struct {
		Token  string `env:"TELEGRAM_TOKEN"`
		ChatID int64  `env:"TELEGRAM_CHAT_ID"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
