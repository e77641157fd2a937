package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"flexstock/internal/config"
	inventoryhttp "flexstock/internal/inventory/http"
	"flexstock/internal/inventory/messaging"
	"flexstock/internal/inventory/repository"
	"flexstock/internal/inventory/service"

	_ "flexstock/docs"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
)

const (
	metricUpdatesRecordedTotal = "inventory_updates_recorded_total"
	metricProductsCreatedTotal = "products_created_total"
	metricProductsDeletedTotal = "products_deleted_total"
	metricLowStockTotal        = "products_low_stock_total"
	metricHTTPRequestsTotal    = "http_requests_total"
	metricHTTPRequestDuration  = "http_request_duration_seconds"
	migrateSourcePrefix        = "file://"
	postgresDriverName         = "postgres"
)

// @title        FlexStock Inventory API
// @version      1.0
// @description  Product catalogue with an append-only inventory update log.
// @host         localhost:8080
// @BasePath     /
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.LoadInventory()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("run migrations", "error", err)
		os.Exit(1)
	}

	db, err := sqlx.Open(postgresDriverName, cfg.DatabaseURL)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.DBPingTimeout)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("ping database", "error", err)
		os.Exit(1)
	}

	rabbitConn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("connect rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitConn.Close()

	publisher, err := messaging.NewRabbitPublisher(rabbitConn, cfg.UpdatesQueue)
	if err != nil {
		logger.Error("init publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	recordedCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricUpdatesRecordedTotal,
		Help: "Total number of inventory updates recorded, by type",
	}, []string{"type"})
	createdCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricProductsCreatedTotal,
		Help: "Total number of products created",
	})
	deletedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricProductsDeletedTotal,
		Help: "Total number of products deleted",
	})
	lowStockCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricLowStockTotal,
		Help: "Total number of times a product fell to or below its reorder level",
	})
	requestsCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricHTTPRequestsTotal,
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    metricHTTPRequestDuration,
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	prometheus.MustRegister(recordedCounter, createdCounter, deletedCounter, lowStockCounter, requestsCounter, requestDuration)

	repo := repository.NewPostgres(db)
	updates := service.NewUpdates(repo, repo, publisher, logger, recordedCounter)
	products := service.NewProducts(repo, updates, logger, createdCounter, deletedCounter, lowStockCounter)
	handler := inventoryhttp.NewHandler(products, updates, repo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(inventoryhttp.RequestIDMiddleware())
	router.Use(inventoryhttp.AccessLogMiddleware(logger))
	router.Use(inventoryhttp.MetricsMiddleware(requestsCounter, requestDuration))
	inventoryhttp.RegisterRoutes(router, handler, repo)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID", "X-User"},
		ExposedHeaders: []string{"X-Request-ID"},
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("inventory service started", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("inventory service stopped")
}

func runMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New(migrateSourcePrefix+migrationsPath, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
