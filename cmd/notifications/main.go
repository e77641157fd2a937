package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flexstock/internal/config"
	"flexstock/internal/notifications"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	os.Exit(run(logger))
}

func run(logger *slog.Logger) int {
	cfg, err := config.LoadNotifications()
	if err != nil {
		logger.Error("load config", "error", err)
		return 1
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("connect rabbitmq", "error", err)
		return 1
	}
	defer conn.Close()

	metrics := notifications.Metrics{
		Received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_updates_received_total",
			Help: "Inventory update messages consumed, by event type and outcome.",
		}, []string{"type", "outcome"}),
		OutOfStock: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "products_out_of_stock_total",
			Help: "Stock-changing updates that left a product with zero units.",
		}),
	}
	prometheus.MustRegister(metrics.Received, metrics.OutOfStock)

	consumer, err := notifications.NewConsumer(conn, cfg.UpdatesQueue, cfg.PrefetchCount, logger, metrics)
	if err != nil {
		logger.Error("init consumer", "error", err)
		return 1
	}
	defer consumer.Close()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumeErr := make(chan error, 1)
	go func() {
		logger.Info("notifications service started",
			"queue", cfg.UpdatesQueue,
			"prefetch", cfg.PrefetchCount,
			"metrics_addr", cfg.MetricsAddr,
		)
		consumeErr <- consumer.Listen(ctx)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		exitCode = drain(logger, consumeErr, cfg.ShutdownTimeout)
	case err := <-consumeErr:
		if err != nil {
			logger.Error("consumer failed", "error", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", "error", err)
	}

	logger.Info("notifications service stopped")
	return exitCode
}

// drain waits for the in-flight message to be acked before the channel closes.
func drain(logger *slog.Logger, consumeErr <-chan error, timeout time.Duration) int {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	select {
	case err := <-consumeErr:
		if err != nil {
			logger.Error("consumer stop failed", "error", err)
			return 1
		}
	case <-deadline.C:
		logger.Warn("consumer shutdown timeout reached")
	}
	return 0
}
