package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Config struct {
	Name      string
	Processor Processor
	// Backoff is the pause after a failed message. Zero retries the loop at
	// once.
	Backoff time.Duration
}

type Processor interface {
	ProcessMessage(ctx context.Context) error
}

type Worker struct {
	name      string
	processor Processor
	backoff   time.Duration
}

func New(cfg Config) *Worker {
	return &Worker{
		name:      cfg.Name,
		processor: cfg.Processor,
		backoff:   cfg.Backoff,
	}
}

// Run processes messages until ctx is cancelled. A failed message is logged
// and skipped.
func (w *Worker) Run(ctx context.Context) {
	slog.InfoContext(ctx, "Worker started...", "worker", w.name)
	failures := 0
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Worker stopped...", "worker", w.name, "failures", failures)
			return
		default:
			err := w.processor.ProcessMessage(ctx)
			if err == nil || errors.Is(err, context.Canceled) {
				continue
			}
			failures++
			slog.ErrorContext(ctx, "Error processing message", "worker", w.name, "error", err)
			w.pause(ctx)
		}
	}
}

func (w *Worker) pause(ctx context.Context) {
	if w.backoff <= 0 {
		return
	}
	t := time.NewTimer(w.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
