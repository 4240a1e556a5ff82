package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/metrics"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/router"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(ctx, dbOptions(cfg, false))
	if err != nil {
		return err
	}
	defer db.Close()

	m := metrics.New()
	store := repository.NewSQLStore(db)

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn("redis unreachable, cache and rate limit disabled", zap.String("addr", cfg.Redis.Address()))
	} else {
		defer rdb.Close()
	}
	cache := middleware.NewResponseCache(cfg.Cache, rdb, log, m)

	var pub queue.Publisher = queue.NopPublisher{}
	var consumer *queue.Consumer
	if cfg.QueueEnabled {
		amqpPub := queue.NewAMQPPublisher(cfg.RabbitMQURL, log)
		defer amqpPub.Close()
		pub = amqpPub

		audit, err := queue.NewAuditLogger(cfg.AuditLogPath)
		if err != nil {
			return err
		}
		defer func() { _ = audit.Sync() }()
		consumer = queue.NewConsumer(cfg.RabbitMQURL, log, audit)
	}

	catalog := service.NewCatalogService(store, log, m)
	identity := service.NewIdentityService(store, service.IdentityConfig{
		JWTSecret:  cfg.JWTSecret,
		AccessTTL:  cfg.AccessTTL(),
		RefreshTTL: cfg.RefreshTTL(),
		BcryptCost: cfg.BcryptCost,
	}, log)
	reservations := service.NewReservationLedger(store, pub, log, m)
	payments := service.NewPaymentLedger(store, log, m)
	booking := service.NewBookingWorkflow(store, pub, log, m)
	reports := service.NewReportingService(store)

	e := router.New(router.Handlers{
		Auth:         handler.NewAuthHandler(identity),
		Catalog:      handler.NewCatalogHandler(catalog, cache, log),
		Booking:      handler.NewBookingHandler(booking),
		Reservations: handler.NewReservationHandler(reservations),
		Payments:     handler.NewPaymentHandler(payments),
		Reports:      handler.NewReportHandler(reports),
		Employees:    handler.NewEmployeeHandler(identity),
		Health:       handler.Health(db),
	}, router.Options{
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.RequestTimeout,
		Log:            log,
		Metrics:        m,
		RateLimit:      middleware.RateLimit(cfg.RateLimit, rdb, log, m),
		Cache:          cache,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", ":"+cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if consumer != nil {
		g.Go(func() error { return consumer.Run(ctx) })
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
