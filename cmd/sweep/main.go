// Command sweep removes delivered outbox records and history records that
// are past their retention periods. It is intended to be invoked by an
// external cron job, complementing the in-process sweeper of the server.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/dmkorzh/contacts-backend/internal/adapter/postgres"
	historyrepo "github.com/dmkorzh/contacts-backend/internal/adapter/postgres/history"
	outboxrepo "github.com/dmkorzh/contacts-backend/internal/adapter/postgres/outbox"
	"github.com/dmkorzh/contacts-backend/internal/app"
	"github.com/dmkorzh/contacts-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	now := time.Now().UTC()

	outboxCutoff := now.Add(-time.Duration(cfg.Outbox.ProcessedRetentionDays) * 24 * time.Hour)
	outboxDeleted, err := outboxrepo.New(pool).DeleteProcessedBefore(ctx, outboxCutoff)
	if err != nil {
		logger.Error("outbox sweep failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", outboxCutoff),
		)
		os.Exit(1)
	}

	historyCutoff := now.Add(-time.Duration(cfg.History.RetentionDays) * 24 * time.Hour)
	historyDeleted, err := historyrepo.New(pool).DeleteBefore(ctx, historyCutoff)
	if err != nil {
		logger.Error("history sweep failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", historyCutoff),
		)
		os.Exit(1)
	}

	logger.Info("sweep completed",
		slog.Int("outbox_deleted", outboxDeleted),
		slog.Int("history_deleted", historyDeleted),
		slog.Time("outbox_cutoff", outboxCutoff),
		slog.Time("history_cutoff", historyCutoff),
	)
}
