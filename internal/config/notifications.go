package config

import (
	"fmt"
	"strconv"
	"time"
)

const (
	defaultMetricsAddr   = ":9091"
	defaultPrefetchCount = 10
)

type Notifications struct {
	RabbitMQURL     string
	UpdatesQueue    string
	MetricsAddr     string
	PrefetchCount   int
	ShutdownTimeout time.Duration
}

func LoadNotifications() (Notifications, error) {
	cfg := Notifications{
		RabbitMQURL:     getEnv("RABBITMQ_URL", ""),
		UpdatesQueue:    getEnv("UPDATES_QUEUE", defaultUpdatesQueue),
		MetricsAddr:     getEnv("METRICS_ADDR", defaultMetricsAddr),
		PrefetchCount:   defaultPrefetchCount,
		ShutdownTimeout: defaultShutdownTimeout,
	}

	if cfg.RabbitMQURL == "" {
		return Notifications{}, fmt.Errorf("RABBITMQ_URL is required")
	}

	if raw := getEnv("PREFETCH_COUNT", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Notifications{}, fmt.Errorf("PREFETCH_COUNT must be a positive integer, got %q", raw)
		}
		cfg.PrefetchCount = n
	}

	return cfg, nil
}
