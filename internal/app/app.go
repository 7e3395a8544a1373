package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmkorzh/contacts-backend/internal/adapter/kafka"
	"github.com/dmkorzh/contacts-backend/internal/adapter/mongodb"
	"github.com/dmkorzh/contacts-backend/internal/adapter/postgres"
	contactrepo "github.com/dmkorzh/contacts-backend/internal/adapter/postgres/contact"
	historyrepo "github.com/dmkorzh/contacts-backend/internal/adapter/postgres/history"
	outboxrepo "github.com/dmkorzh/contacts-backend/internal/adapter/postgres/outbox"
	"github.com/dmkorzh/contacts-backend/internal/adapter/redis"
	"github.com/dmkorzh/contacts-backend/internal/config"
	"github.com/dmkorzh/contacts-backend/internal/domain"
	contactsvc "github.com/dmkorzh/contacts-backend/internal/service/contact"
	historysvc "github.com/dmkorzh/contacts-backend/internal/service/history"
	outboxsvc "github.com/dmkorzh/contacts-backend/internal/service/outbox"
)

// App holds the wired service graph. Transports mount on top of the
// service fields; Run drives the background outbox worker.
type App struct {
	Contacts *contactsvc.Service
	History  *historysvc.Service
	Outbox   *outboxsvc.Service

	worker *outboxsvc.Worker
	log    *slog.Logger

	closers []func() error
}

// New loads configuration and connects the full dependency graph:
// PostgreSQL, Kafka, Redis and MongoDB.
//
// Redis and MongoDB are optional: a failed connection downgrades the
// feature (caching, compliance mirroring) instead of aborting startup.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	a := &App{log: logger}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error { pool.Close(); return nil })

	publisher := kafka.NewPublisher(cfg.Kafka.BrokerList(), cfg.Kafka.WriteTimeout)
	a.closers = append(a.closers, publisher.Close)

	contactRepo := contactrepo.New(pool)
	outboxRepo := outboxrepo.New(pool)
	historyRepo := historyrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	historyRetention := time.Duration(cfg.History.RetentionDays) * 24 * time.Hour
	if compliance, err := mongodb.NewComplianceLog(ctx, cfg.Mongo); err != nil {
		logger.Warn("compliance log unavailable, mirroring disabled", slog.Any("error", err))
		a.History = historysvc.NewService(logger, historyRepo, nil, historyRetention)
	} else {
		a.closers = append(a.closers, func() error { return compliance.Close(context.Background()) })
		a.History = historysvc.NewService(logger, historyRepo, compliance, historyRetention)
	}

	if cache, err := redis.NewCache(ctx, cfg.Redis); err != nil {
		logger.Warn("cache unavailable, reads go to the database", slog.Any("error", err))
		a.Contacts = contactsvc.NewService(logger, contactRepo, outboxRepo, txManager, a.History, nil)
	} else {
		a.closers = append(a.closers, cache.Close)
		a.Contacts = contactsvc.NewService(logger, contactRepo, outboxRepo, txManager, a.History, cache)
	}

	a.Outbox = outboxsvc.NewService(
		logger,
		outboxRepo,
		publisher,
		outboxsvc.NewRouting(cfg.Kafka.Topics, cfg.Kafka.DefaultTopic),
		domain.RetryPolicy{MaxRetries: cfg.Outbox.MaxRetries, BackoffBase: cfg.Outbox.BackoffBase},
		cfg.Outbox.BatchSize,
		time.Duration(cfg.Outbox.ProcessedRetentionDays)*24*time.Hour,
	)

	a.worker = outboxsvc.NewWorker(logger, a.Outbox, a.History, cfg.Outbox.DispatchInterval, cfg.Outbox.SweepInterval)

	return a, nil
}

// Run drives the outbox dispatcher worker until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	if err := a.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.log.Info("application stopped")
	return nil
}

// Close releases connections in reverse acquisition order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close dependency", slog.Any("error", err))
		}
	}
}
