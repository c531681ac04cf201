package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankdemo/pkg/api"
	"bankdemo/pkg/bank"
	"bankdemo/pkg/identity"
	"bankdemo/pkg/kvstore"
	"bankdemo/pkg/kvstore/memory"
	"bankdemo/pkg/kvstore/postgres"
	"bankdemo/pkg/kvstore/redis"
	"bankdemo/pkg/logging"
	prommetrics "bankdemo/pkg/metrics/prometheus"
	"bankdemo/pkg/prefs"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	logger, err := logging.NewLoggerFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	logger.Info("starting bankdemo")

	// The canonical dataset is built exactly once and handed to every
	// consumer by reference.
	dataset := bank.NewDataset()
	logger.Info("dataset generated",
		zap.Int("accounts", len(dataset.Accounts())),
		zap.Int("transactions", len(dataset.Transactions())),
	)

	store, err := newStore(logger)
	if err != nil {
		logger.Fatal("failed to initialize preference store", zap.Error(err))
	}
	defer store.Close()

	collector := prommetrics.NewCollector("bankdemo")
	prometheus.MustRegister(collector)

	prefsManager := prefs.NewManagerWithMetrics(store, collector)
	idp := identity.NewMemoryProvider()

	serverConfig := api.DefaultServerConfig()
	serverConfig.Address = getEnv("LISTEN_ADDR", ":8080")

	server := api.NewServer(dataset, prefsManager, idp, collector, serverConfig)
	if err := server.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
	logger.Info("server listening", zap.String("address", serverConfig.Address))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

// newStore selects the preference store backend from PREFS_BACKEND:
// memory (default), redis, or postgres. Remote backends are wrapped with
// circuit breaker and timeout protection.
func newStore(logger *logging.Logger) (kvstore.Store, error) {
	backend := getEnv("PREFS_BACKEND", "memory")

	switch backend {
	case "redis":
		config := redis.DefaultConfig()
		config.Addr = getEnv("REDIS_ADDR", config.Addr)
		config.Password = os.Getenv("REDIS_PASSWORD")
		store, err := redis.New(config)
		if err != nil {
			return nil, err
		}
		logger.Info("preference store initialized", zap.String("backend", "redis"))
		return kvstore.NewResilient(store, kvstore.DefaultResilientConfig()), nil

	case "postgres":
		config := postgres.DefaultConfig()
		config.Host = getEnv("POSTGRES_HOST", config.Host)
		config.User = getEnv("POSTGRES_USER", config.User)
		config.Password = getEnv("POSTGRES_PASSWORD", config.Password)
		config.Database = getEnv("POSTGRES_DB", config.Database)
		store, err := postgres.New(config)
		if err != nil {
			return nil, err
		}
		logger.Info("preference store initialized", zap.String("backend", "postgres"))
		return kvstore.NewResilient(store, kvstore.DefaultResilientConfig()), nil

	default:
		logger.Info("preference store initialized", zap.String("backend", "memory"))
		return memory.New(memory.Config{}), nil
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
