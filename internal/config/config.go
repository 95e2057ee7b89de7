// Package config содержит логику чтения конфигурации кассового сервиса.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации кассового сервиса.
type Config struct {
	RunAddress           string        `env:"RUN_ADDRESS"`
	AuthSecret           string        `env:"AUTH_SECRET"`
	OverdueSweepInterval time.Duration `env:"OVERDUE_SWEEP_INTERVAL"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envAuthSecret := cfg.AuthSecret
	envSweepInterval := cfg.OverdueSweepInterval

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.AuthSecret, "s", "", "secret for signing auth cookies")
	flag.DurationVar(&cfg.OverdueSweepInterval, "i", time.Minute, "overdue invoice sweep interval, 0 disables the sweep")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envAuthSecret != "" {
		cfg.AuthSecret = envAuthSecret
	}
	if envSweepInterval != 0 {
		cfg.OverdueSweepInterval = envSweepInterval
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
