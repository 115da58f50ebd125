// Package mirror runs the background loops that keep the client's timer
// mirror alive: the display tick, drift correction, periodic sync and the
// connectivity watcher that drains the offline queue on reconnect.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/client/config"
	"github.com/dmitrijs2005/gophtracker/internal/client/services"
	"github.com/dmitrijs2005/gophtracker/internal/logging"
	"github.com/gen2brain/beeep"
	"golang.org/x/sync/errgroup"
)

// DriftInterval is how often the ticking display is checked against the
// recomputed elapsed value.
const DriftInterval = 30 * time.Second

// notify is a test seam for desktop notifications.
var notify = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Pinger reports whether the server is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Runner struct {
	timers services.TimerService
	pinger Pinger
	logger logging.Logger

	tickEvery  time.Duration
	driftEvery time.Duration
	syncEvery  time.Duration
	pingEvery  time.Duration
	pingWait   time.Duration

	online       atomic.Bool
	onModeChange func(online bool)
}

func NewRunner(timers services.TimerService, pinger Pinger, logger logging.Logger, cfg *config.Config) *Runner {
	return &Runner{
		timers:     timers,
		pinger:     pinger,
		logger:     logger.With("module", "mirror_runner"),
		tickEvery:  cfg.TickInterval,
		driftEvery: DriftInterval,
		syncEvery:  cfg.SyncInterval,
		pingEvery:  cfg.OnlineCheckInterval,
		pingWait:   cfg.RequestTimeout,
	}
}

// OnModeChange registers a callback fired on every online/offline switch.
func (r *Runner) OnModeChange(fn func(online bool)) {
	r.onModeChange = fn
}

// Online reports the last observed connectivity.
func (r *Runner) Online() bool {
	return r.online.Load()
}

// SetOnline seeds the connectivity flag, typically after login.
func (r *Runner) SetOnline(v bool) {
	r.online.Store(v)
}

// Run blocks until ctx is canceled or a loop fails.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return every(ctx, r.tickEvery, r.tick) })
	g.Go(func() error { return every(ctx, r.driftEvery, r.drift) })
	g.Go(func() error { return every(ctx, r.syncEvery, r.sync) })
	g.Go(func() error { return every(ctx, r.pingEvery, r.watch) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func every(ctx context.Context, d time.Duration, fn func(context.Context)) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			fn(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	res := r.timers.Tick(ctx)
	if !res.LongRunning {
		return
	}
	msg := fmt.Sprintf("Timer has been running for %s", time.Duration(res.Elapsed)*time.Second)
	if err := notify("Time tracker", msg); err != nil {
		r.logger.Debug(ctx, "desktop notification failed", "error", err)
	}
}

func (r *Runner) drift(ctx context.Context) {
	r.timers.CheckDrift(ctx)
}

func (r *Runner) sync(ctx context.Context) {
	if !r.online.Load() {
		return
	}
	err := r.timers.Sync(ctx)
	if err != nil && !errors.Is(err, services.ErrSyncInProgress) {
		r.logger.Warn(ctx, "periodic sync failed", "error", err)
	}
}

// watch pings the server and, on an offline to online switch, replays the
// queue before reconciling with the server's view.
func (r *Runner) watch(ctx context.Context) {
	pctx, cancel := ctx, context.CancelFunc(func() {})
	if r.pingWait > 0 {
		pctx, cancel = context.WithTimeout(ctx, r.pingWait)
	}
	err := r.pinger.Ping(pctx)
	cancel()

	up := err == nil
	if r.online.Swap(up) == up {
		return
	}
	r.logger.Info(ctx, "connectivity changed", "online", up)
	if r.onModeChange != nil {
		r.onModeChange(up)
	}
	if !up {
		return
	}

	n, err := r.timers.Drain(ctx)
	switch {
	case errors.Is(err, services.ErrQueueBlocked):
		// the periodic sync retries the head of the queue
		r.logger.Warn(ctx, "queue replay blocked", "replayed", n, "error", err)
		return
	case err != nil:
		r.logger.Warn(ctx, "queue replay failed", "error", err)
	case n > 0:
		r.logger.Info(ctx, "queued actions replayed", "count", n)
	}
	if err := r.timers.Sync(ctx); err != nil && !errors.Is(err, services.ErrSyncInProgress) {
		r.logger.Warn(ctx, "sync after reconnect failed", "error", err)
	}
}
