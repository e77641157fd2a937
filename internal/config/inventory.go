package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultMigrationsPath  = "migrations/inventory"
	defaultShutdownTimeout = 10 * time.Second
	defaultAllowedOrigins  = "http://localhost:8080"
	defaultUpdatesQueue    = "inventory.updates"

	defaultDBMaxOpenConns    = 25
	defaultDBMaxIdleConns    = 5
	defaultDBConnMaxLifetime = 5 * time.Minute
	defaultDBPingTimeout     = 5 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

type Inventory struct {
	DatabaseURL       string
	RabbitMQURL       string
	UpdatesQueue      string
	HTTPAddr          string
	MigrationsPath    string
	AllowedOrigins    []string
	ShutdownTimeout   time.Duration
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBPingTimeout     time.Duration
	ReadHeaderTimeout time.Duration
}

func LoadInventory() (Inventory, error) {
	cfg := Inventory{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RabbitMQURL:       getEnv("RABBITMQ_URL", ""),
		UpdatesQueue:      getEnv("UPDATES_QUEUE", defaultUpdatesQueue),
		HTTPAddr:          getEnv("HTTP_ADDR", defaultHTTPAddr),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", defaultMigrationsPath),
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins)),
		ShutdownTimeout:   defaultShutdownTimeout,
		DBMaxOpenConns:    defaultDBMaxOpenConns,
		DBMaxIdleConns:    defaultDBMaxIdleConns,
		DBConnMaxLifetime: defaultDBConnMaxLifetime,
		DBPingTimeout:     defaultDBPingTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	if cfg.DatabaseURL == "" {
		return Inventory{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RabbitMQURL == "" {
		return Inventory{}, fmt.Errorf("RABBITMQ_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
