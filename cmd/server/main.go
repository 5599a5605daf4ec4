package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dharmendra-007/personal-finance-tracker/internal/application/service"
	"github.com/dharmendra-007/personal-finance-tracker/internal/config"
	domainservice "github.com/dharmendra-007/personal-finance-tracker/internal/domain/service"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/db"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/events"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/handler"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/logger"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(log)

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Starting personal finance tracker", map[string]interface{}{
		"port":    cfg.Port,
		"backend": cfg.DataBackend,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage backend
	repo, closeRepo, err := db.NewRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize storage", map[string]interface{}{"error": err.Error()})
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := closeRepo(closeCtx); err != nil {
			log.Error("Failed to close storage", map[string]interface{}{"error": err.Error()})
		}
	}()

	// Optional event publisher
	var publisher domainservice.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal("Failed to connect to AMQP broker", map[string]interface{}{"error": err.Error()})
		}
		defer client.Close()
		publisher = client
		log.Info("Event publishing enabled", map[string]interface{}{"exchange": cfg.AMQPExchange})
	}

	// Services and handlers
	txService := service.NewTransactionService(repo, publisher, log)
	analyticsService := service.NewAnalyticsService(repo)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggingMiddleware(log))

	handler.NewTransactionHandler(txService, log).RegisterRoutes(router)
	handler.NewAnalyticsHandler(analyticsService, log).RegisterRoutes(router)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", map[string]interface{}{"error": err.Error()})
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", map[string]interface{}{"error": err.Error()})
		}
	}
}
