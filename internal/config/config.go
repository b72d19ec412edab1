package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPAddr          string `env:"HTTP_ADDR" env-default:":8080"`
	DatabaseDSN       string `env:"DATABASE_DSN" env-default:"host=localhost port=5432 dbname=accounts_payable user=postgres password=postgres sslmode=disable"`
	MigrationsDir     string `env:"MIGRATIONS_DIR" env-default:"migrations"`
	OverdueRunAt      string `env:"OVERDUE_RUN_AT" env-default:"00:00"`
	BasicAuthUser     string `env:"BASIC_AUTH_USER"`
	BasicAuthPassword string `env:"BASIC_AUTH_PASSWORD"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment config: %w", err)
	}

	if _, _, err := cfg.OverdueRunTime(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// OverdueRunTime parses OVERDUE_RUN_AT as a wall-clock HH:MM time.
func (c Config) OverdueRunTime() (hour, minute int, err error) {
	parsed, err := time.Parse("15:04", c.OverdueRunAt)
	if err != nil {
		return 0, 0, fmt.Errorf("parse OVERDUE_RUN_AT %q: %w", c.OverdueRunAt, err)
	}

	return parsed.Hour(), parsed.Minute(), nil
}
