package dataset

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pzsluna26/Dashboard/internal/metrics"
	"github.com/pzsluna26/Dashboard/internal/platform/correlation"
)

// Refresher polls the dataset file's modification time and reloads it into
// the store when it changes. A reload that fails keeps the previous dataset.
type Refresher struct {
	path     string
	store    *Store
	interval time.Duration
	clock    clockwork.Clock
	onReload func()

	lastModTime time.Time
}

// NewRefresher creates a refresher. onReload runs after every successful
// reload and may be nil.
func NewRefresher(path string, store *Store, interval time.Duration, clock clockwork.Clock, onReload func()) *Refresher {
	r := &Refresher{
		path:     path,
		store:    store,
		interval: interval,
		clock:    clock,
		onReload: onReload,
	}
	if info, err := os.Stat(path); err == nil {
		r.lastModTime = info.ModTime()
	}
	return r
}

// Run starts the polling loop. It blocks until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			r.poll(ctx)
		}
	}
}

func (r *Refresher) poll(ctx context.Context) {
	pollCtx := correlation.WithID(ctx, correlation.NewID())

	info, err := os.Stat(r.path)
	if err != nil {
		metrics.DatasetReloadsTotal.WithLabelValues("error").Inc()
		slog.WarnContext(pollCtx, "Dataset file stat failed", "path", r.path, "error", err)
		return
	}

	if !info.ModTime().After(r.lastModTime) {
		metrics.DatasetReloadsTotal.WithLabelValues("unchanged").Inc()
		return
	}

	ds, err := Load(r.path)
	if err != nil {
		metrics.DatasetReloadsTotal.WithLabelValues("error").Inc()
		slog.ErrorContext(pollCtx, "Dataset reload failed, keeping previous data", "path", r.path, "error", err)
		return
	}

	r.lastModTime = info.ModTime()
	r.store.Replace(ds)
	metrics.DatasetReloadsTotal.WithLabelValues("success").Inc()
	slog.InfoContext(pollCtx, "Dataset reloaded", "path", r.path, "categories", len(ds), "version", r.store.Version())

	if r.onReload != nil {
		r.onReload()
	}
}
