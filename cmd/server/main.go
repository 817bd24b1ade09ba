package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pgdesk/pgdesk/internal/billing"
	"github.com/pgdesk/pgdesk/internal/clock"
	"github.com/pgdesk/pgdesk/internal/config"
	"github.com/pgdesk/pgdesk/internal/domain/payment"
	"github.com/pgdesk/pgdesk/internal/httpapi"
	"github.com/pgdesk/pgdesk/internal/sqlite"
	"github.com/pgdesk/pgdesk/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional; the environment wins over .env values.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("database ready", "path", cfg.DB.Path)

	tenantRepo := sqlite.NewTenantRepository(db)
	paymentRepo := sqlite.NewPaymentRepository(db)
	paymentSvc := payment.NewService(paymentRepo, logger)

	scheduler, err := billing.NewScheduler(tenantRepo, paymentSvc, clock.System{}, logger, billing.Config{
		Schedule: cfg.Billing.Schedule,
		Timezone: cfg.Billing.Timezone,
	})
	if err != nil {
		return fmt.Errorf("building scheduler: %w", err)
	}

	if cfg.Billing.Enabled {
		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer scheduler.Stop()
	} else {
		logger.Info("billing scheduler disabled")
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := httpapi.NewServer(addr, scheduler, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	return nil
}
