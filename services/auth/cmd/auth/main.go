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

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/services/auth/internal/config"
	"github.com/Skotchmaster/storefront/services/auth/internal/httpserver"
	"github.com/Skotchmaster/storefront/services/auth/internal/migrations"
	"github.com/Skotchmaster/storefront/services/auth/internal/repo"
	"github.com/Skotchmaster/storefront/services/auth/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DatabaseDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := pkgdb.Close(db); err != nil {
			logger.Error("db_close_failed", "error", err)
		}
	}()

	if err := migrations.Up(db, cfg.DatabaseDriver); err != nil {
		logger.Error("migrate_failed", "error", err)
		os.Exit(1)
	}

	var publisher service.EventPublisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("producer_close_failed", "error", err)
			}
		}()
		publisher = producer
	} else {
		logger.Info("events_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	e := httpserver.New(logger, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{
				Repo:      &repo.GormRepo{DB: db},
				JWTSecret: cfg.JWTSecret,
				TokenTTL:  cfg.TokenTTL,
				Events:    publisher,
			},
		},
		JWTSecret: cfg.JWTSecret,
		Ready:     readiness(db),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server_starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("server_stopping")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
}

func readiness(db *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		return pkgdb.Ping(ctx, db)
	}
}
