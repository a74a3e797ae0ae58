package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/tiffinworks/pos-backend/api/routes"
	"github.com/tiffinworks/pos-backend/internal/billers"
	"github.com/tiffinworks/pos-backend/internal/bills"
	"github.com/tiffinworks/pos-backend/internal/customers"
	"github.com/tiffinworks/pos-backend/internal/discounts"
	"github.com/tiffinworks/pos-backend/internal/drafts"
	"github.com/tiffinworks/pos-backend/internal/menu"
	"github.com/tiffinworks/pos-backend/pkg/config"
	"github.com/tiffinworks/pos-backend/pkg/db"
	"github.com/tiffinworks/pos-backend/pkg/logger"
	"github.com/tiffinworks/pos-backend/pkg/metrics"
	"github.com/tiffinworks/pos-backend/pkg/migrate"
	"github.com/tiffinworks/pos-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	posMetrics := metrics.NewPOSMetrics(prometheus.DefaultRegisterer)

	billersService, err := billers.NewService(billers.NewRepository(dbClient.DB()), cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create billers service", err)
		os.Exit(1)
	}

	menuService, err := menu.NewService(menu.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}

	discountsService, err := discounts.NewService(discounts.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create discounts service", err)
		os.Exit(1)
	}

	billsService, err := bills.NewService(bills.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create bills service", err)
		os.Exit(1)
	}

	customersService, err := customers.NewService(customers.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	draftStore, err := drafts.NewRedisStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft store", err)
		os.Exit(1)
	}

	draftsService, err := drafts.NewService(
		draftStore,
		menuService,
		discountsService,
		billsService,
		logg,
		posMetrics,
		cfg.Drafts.SnapshotTTL,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create drafts service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			billersService,
			menuService,
			discountsService,
			draftsService,
			billsService,
			customersService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received, draining requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		shutdownErrs := multierr.Combine(server.Shutdown(shutdownCtx), <-serveErr)
		if err := filterServerClosed(shutdownErrs); err != nil {
			logg.Error(ctx, "shutdown finished with errors", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server shut down cleanly")
}

func filterServerClosed(err error) error {
	var filtered error
	for _, e := range multierr.Errors(err) {
		if errors.Is(e, http.ErrServerClosed) {
			continue
		}
		filtered = multierr.Append(filtered, e)
	}
	return filtered
}
