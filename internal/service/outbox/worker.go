package outbox

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// historyCleaner deletes history records past their retention window.
type historyCleaner interface {
	Cleanup(ctx context.Context) (int, error)
}

// Worker runs the dispatcher loops in the background: a fast dispatch tick
// that drains pending and retry-ready records, and a slow sweep tick that
// removes delivered outbox records and expired history records.
type Worker struct {
	service          *Service
	history          historyCleaner
	dispatchInterval time.Duration
	sweepInterval    time.Duration
	log              *slog.Logger
}

// NewWorker creates a worker around the dispatcher service. history may be
// nil to leave history retention to an external sweep.
func NewWorker(log *slog.Logger, service *Service, history historyCleaner, dispatchInterval, sweepInterval time.Duration) *Worker {
	return &Worker{
		service:          service,
		history:          history,
		dispatchInterval: dispatchInterval,
		sweepInterval:    sweepInterval,
		log:              log.With("component", "outbox_worker"),
	}
}

// Run blocks until ctx is canceled, then returns ctx.Err().
// A pass in flight finishes between records before the worker stops.
func (w *Worker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return w.dispatchLoop(ctx) })
	g.Go(func() error { return w.sweepLoop(ctx) })

	return g.Wait()
}

func (w *Worker) dispatchLoop(ctx context.Context) error {
	ticker := time.NewTicker(w.dispatchInterval)
	defer ticker.Stop()

	w.log.InfoContext(ctx, "dispatch loop started",
		slog.Duration("interval", w.dispatchInterval),
	)

	for {
		select {
		case <-ctx.Done():
			w.log.InfoContext(ctx, "dispatch loop stopped")
			return ctx.Err()
		case <-ticker.C:
			w.runDispatchPass(ctx)
		}
	}
}

func (w *Worker) runDispatchPass(ctx context.Context) {
	fresh, err := w.service.DispatchPending(ctx)
	if err != nil {
		w.log.ErrorContext(ctx, "dispatch pending pass", slog.Any("error", err))
	}

	retried, err := w.service.DispatchFailedReadyForRetry(ctx)
	if err != nil {
		w.log.ErrorContext(ctx, "dispatch retry pass", slog.Any("error", err))
	}

	if fresh.Attempted > 0 || retried.Attempted > 0 {
		w.log.InfoContext(ctx, "dispatch pass complete",
			slog.Int("fresh_succeeded", fresh.Succeeded),
			slog.Int("fresh_failed", fresh.Failed),
			slog.Int("retried_succeeded", retried.Succeeded),
			slog.Int("retried_failed", retried.Failed),
		)
	}
}

func (w *Worker) sweepLoop(ctx context.Context) error {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	w.log.InfoContext(ctx, "sweep loop started",
		slog.Duration("interval", w.sweepInterval),
	)

	for {
		select {
		case <-ctx.Done():
			w.log.InfoContext(ctx, "sweep loop stopped")
			return ctx.Err()
		case <-ticker.C:
			w.runSweepPass(ctx)
		}
	}
}

func (w *Worker) runSweepPass(ctx context.Context) {
	if _, err := w.service.CleanupProcessed(ctx); err != nil {
		w.log.ErrorContext(ctx, "outbox sweep pass", slog.Any("error", err))
	}

	if w.history == nil {
		return
	}
	if _, err := w.history.Cleanup(ctx); err != nil {
		w.log.ErrorContext(ctx, "history sweep pass", slog.Any("error", err))
	}
}
