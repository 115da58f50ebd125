package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/client/client"
	"github.com/dmitrijs2005/gophtracker/internal/client/config"
	"github.com/dmitrijs2005/gophtracker/internal/client/models"
	"github.com/dmitrijs2005/gophtracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophtracker/internal/client/repositories/mirror"
	"github.com/dmitrijs2005/gophtracker/internal/client/repositories/queue"
	"github.com/dmitrijs2005/gophtracker/internal/clock"
	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/dbx"
	"github.com/dmitrijs2005/gophtracker/internal/logging"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// StaleAfter is the age past which a cached mirror is not trusted.
	StaleAfter = 24 * time.Hour
	// LongRunningAfter is the elapsed time that raises a warning.
	LongRunningAfter = 24 * time.Hour
	// DriftThreshold is the largest tolerated gap, in seconds, between the
	// ticking display counter and the recomputed elapsed value.
	DriftThreshold = 10
)

var ErrSyncInProgress = errors.New("sync already in progress")

// ErrQueueBlocked means the head of the offline queue was rejected by the
// server and is kept for another attempt. Nothing queued behind it is sent.
var ErrQueueBlocked = errors.New("queued action rejected")

// ActionResult is what a timer command did to the mirror.
//
// Entry is the finished session: the stopped timer for Stop, or the timer
// auto-stopped by Start. Entries computed while offline have no ID.
type ActionResult struct {
	State  models.MirrorState
	Entry  *timer.TimeEntry
	Queued bool
}

// TickResult reports the display counter after a tick. LongRunning is set
// once per timer, on the tick where it first passes LongRunningAfter.
type TickResult struct {
	Elapsed     int64
	LongRunning bool
}

// TimerService is the client-side mirror of the user's active timer.
//
// Commands go to the server first and the mirror adopts the server's answer.
// When the server is unreachable the command is applied to the mirror,
// persisted and queued for replay. Any other server error leaves the mirror
// untouched.
type TimerService interface {
	Load(ctx context.Context) error
	Snapshot() models.MirrorState
	Display() int64
	Pending(ctx context.Context) (int, error)

	Start(ctx context.Context, tr timer.Trackable, description string) (*ActionResult, error)
	Pause(ctx context.Context) (*ActionResult, error)
	Resume(ctx context.Context) (*ActionResult, error)
	Stop(ctx context.Context) (*ActionResult, error)

	Drain(ctx context.Context) (int, error)
	Sync(ctx context.Context) error
	Tick(ctx context.Context) TickResult
	CheckDrift(ctx context.Context) bool
}

type timerService struct {
	client      client.Client
	db          *sql.DB
	clock       clock.Clock
	logger      logging.Logger
	strategy    string
	maxAttempts int
	limiter     *rate.Limiter
	newID       func() string

	// ops serializes commands, drain and sync so queued actions keep their order.
	ops     sync.Mutex
	syncing atomic.Bool

	mu       sync.RWMutex
	state    models.MirrorState
	display  int64
	notified string
}

func NewTimerService(c client.Client, db *sql.DB, clk clock.Clock, logger logging.Logger, cfg *config.Config) TimerService {
	return &timerService{
		client:      c,
		db:          db,
		clock:       clk,
		logger:      logger.With("module", "timer_mirror"),
		strategy:    cfg.ConflictStrategy,
		maxAttempts: cfg.MaxReplayAttempts,
		limiter:     rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		newID:       uuid.NewString,
	}
}

func (s *timerService) mirrorRepo(db dbx.DBTX) mirror.Repository { return mirror.NewSQLiteRepository(db) }
func (s *timerService) queueRepo(db dbx.DBTX) queue.Repository   { return queue.NewSQLiteRepository(db) }
func (s *timerService) metaRepo(db dbx.DBTX) metadata.Repository { return metadata.NewSQLiteRepository(db) }

// Load restores the mirror from the local store. A cache older than
// StaleAfter is dropped; a structurally broken one is reset to "no timer".
func (s *timerService) Load(ctx context.Context) error {
	st, err := s.mirrorRepo(s.db).Load(ctx)
	if err != nil {
		return err
	}
	notified, err := s.metaRepo(s.db).Get(ctx, metadata.KeyNotifiedTimer)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	switch {
	case st == nil:
		st = &models.MirrorState{}
	case now.Sub(st.UpdatedAt) > StaleAfter:
		s.logger.Warn(ctx, "discarding stale mirror", "updated_at", st.UpdatedAt)
		if err := s.mirrorRepo(s.db).Clear(ctx); err != nil {
			return err
		}
		st = &models.MirrorState{}
	case st.Timer != nil:
		err := st.Timer.Check(st.ServerNow(now))
		if err == nil && st.CachedElapsed < 0 {
			err = fmt.Errorf("negative cached elapsed %d", st.CachedElapsed)
		}
		if err != nil {
			s.logger.Warn(ctx, "resetting corrupt mirror", "error", err)
			st.Timer = nil
			st.CachedElapsed = 0
			st.UpdatedAt = now
			if err := s.mirrorRepo(s.db).Save(ctx, st); err != nil {
				return err
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = *st
	s.display = st.Elapsed(now)
	s.notified = string(notified)
	return nil
}

// Snapshot returns a copy of the mirror safe to read without locking.
func (s *timerService) Snapshot() models.MirrorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Display is the ticking elapsed counter shown to the user.
func (s *timerService) Display() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

func (s *timerService) Pending(ctx context.Context) (int, error) {
	return s.queueRepo(s.db).Count(ctx)
}

func (s *timerService) Start(ctx context.Context, tr timer.Trackable, description string) (*ActionResult, error) {
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	a := s.newAction(models.ActionStart)
	a.Trackable = tr
	a.Description = description

	return s.command(ctx, a, func(ctx context.Context) (*models.RemoteTimer, *timer.TimeEntry, error) {
		return s.client.Start(ctx, tr, description)
	})
}

func (s *timerService) Pause(ctx context.Context) (*ActionResult, error) {
	return s.command(ctx, s.newAction(models.ActionPause), func(ctx context.Context) (*models.RemoteTimer, *timer.TimeEntry, error) {
		rt, err := s.client.Pause(ctx)
		return rt, nil, err
	})
}

func (s *timerService) Resume(ctx context.Context) (*ActionResult, error) {
	return s.command(ctx, s.newAction(models.ActionResume), func(ctx context.Context) (*models.RemoteTimer, *timer.TimeEntry, error) {
		rt, err := s.client.Resume(ctx)
		return rt, nil, err
	})
}

func (s *timerService) Stop(ctx context.Context) (*ActionResult, error) {
	return s.command(ctx, s.newAction(models.ActionStop), func(ctx context.Context) (*models.RemoteTimer, *timer.TimeEntry, error) {
		e, err := s.client.Stop(ctx)
		return &models.RemoteTimer{}, e, err
	})
}

func (s *timerService) newAction(kind models.ActionKind) *models.PendingAction {
	return &models.PendingAction{ID: s.newID(), Kind: kind, CreatedAt: s.clock.Now()}
}

type remoteCall func(ctx context.Context) (*models.RemoteTimer, *timer.TimeEntry, error)

// command runs call against the server unless actions are already queued,
// in which case a is queued behind them to keep the order.
func (s *timerService) command(ctx context.Context, a *models.PendingAction, call remoteCall) (*ActionResult, error) {
	s.ops.Lock()
	defer s.ops.Unlock()

	pending, err := s.queueRepo(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}

	if pending == 0 {
		rt, entry, err := call(ctx)
		if err == nil {
			if err := s.adopt(ctx, rt); err != nil {
				return nil, err
			}
			return &ActionResult{State: s.Snapshot(), Entry: entry}, nil
		}
		if !client.Retryable(err) {
			return nil, err
		}
		s.logger.Info(ctx, "server unreachable, queueing action", "kind", a.Kind, "id", a.ID)
	}

	return s.applyOffline(ctx, a)
}

// applyOffline runs a against the mirror on the server's time axis, then
// stores the new mirror and the queued action in one transaction.
func (s *timerService) applyOffline(ctx context.Context, a *models.PendingAction) (*ActionResult, error) {
	now := s.clock.Now()
	st := s.Snapshot()
	at := st.ServerNow(now)

	var entry *timer.TimeEntry
	switch a.Kind {
	case models.ActionStart:
		if st.Active() {
			e, err := st.Timer.Stop(at)
			if err != nil {
				return nil, err
			}
			entry = e
		}
		t := timer.New("", a.Trackable, "", "", a.Description)
		switch a.Trackable.Kind {
		case timer.KindProject:
			t.ProjectID = a.Trackable.ID
		case timer.KindIssue:
			t.IssueID = a.Trackable.ID
		}
		t.ID = models.LocalIDPrefix + a.ID
		if err := t.Start(at); err != nil {
			return nil, err
		}
		st.Timer = t
	case models.ActionPause:
		if !st.Active() {
			return nil, common.ErrNoActiveTimer
		}
		if !st.Timer.Pause(at) {
			return &ActionResult{State: st}, nil
		}
	case models.ActionResume:
		if !st.Active() {
			return nil, common.ErrNoActiveTimer
		}
		if !st.Timer.Resume(at) {
			return &ActionResult{State: st}, nil
		}
	case models.ActionStop:
		if !st.Active() {
			return nil, common.ErrNoActiveTimer
		}
		e, err := st.Timer.Stop(at)
		if err != nil {
			return nil, err
		}
		entry = e
		st.Timer = nil
	default:
		return nil, fmt.Errorf("%w: unknown action %q", common.ErrorValidation, a.Kind)
	}

	st.CachedElapsed = st.Elapsed(now)
	st.UpdatedAt = now

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.queueRepo(tx).Enqueue(ctx, a); err != nil {
			return err
		}
		return s.mirrorRepo(tx).Save(ctx, &st)
	})
	if err != nil {
		return nil, fmt.Errorf("offline action error: %w", err)
	}

	s.setState(st, now)
	return &ActionResult{State: cloneState(st), Entry: entry, Queued: true}, nil
}

// adopt replaces the mirror with the server's view. Stopped timers are not
// mirrored. The clock offset is re-measured when the server sent its time.
func (s *timerService) adopt(ctx context.Context, rt *models.RemoteTimer) error {
	now := s.clock.Now()
	prev := s.Snapshot()

	st := models.MirrorState{ClockOffset: prev.ClockOffset, SyncedAt: now, UpdatedAt: now}
	if rt != nil {
		if !rt.ServerTime.IsZero() {
			st.ClockOffset = rt.ServerTime.Sub(now)
		}
		if rt.Timer != nil && rt.Timer.Status.Active() {
			st.Timer = rt.Timer
		}
	}
	st.CachedElapsed = st.Elapsed(now)

	if err := s.mirrorRepo(s.db).Save(ctx, &st); err != nil {
		return err
	}
	s.setState(st, now)
	return nil
}

func (s *timerService) setState(st models.MirrorState, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.display = st.Elapsed(now)
}

// Drain replays queued actions strictly in order. It stops at the first
// failure: ErrUnavailable is returned as is, and a rejected action is
// recorded and reported as ErrQueueBlocked, staying at the head of the
// queue. An action rejected maxAttempts times is discarded and replay
// carries on with the next one.
func (s *timerService) Drain(ctx context.Context) (int, error) {
	s.ops.Lock()
	defer s.ops.Unlock()
	return s.drain(ctx)
}

func (s *timerService) drain(ctx context.Context) (int, error) {
	q := s.queueRepo(s.db)
	actions, err := q.List(ctx)
	if err != nil {
		return 0, err
	}

	replayed := 0
	for _, a := range actions {
		if err := s.limiter.Wait(ctx); err != nil {
			return replayed, err
		}

		rt, err := s.replay(ctx, a)
		if err == nil {
			if err := q.Delete(ctx, a.ID); err != nil {
				return replayed, err
			}
			replayed++
			if err := s.bindLocalID(ctx, a, rt); err != nil {
				return replayed, err
			}
			continue
		}
		if client.Retryable(err) {
			return replayed, err
		}

		attempts, rerr := q.RecordFailure(ctx, a.ID, err.Error())
		if rerr != nil {
			return replayed, rerr
		}
		if attempts < s.maxAttempts {
			s.logger.Debug(ctx, "queued action failed", "kind", a.Kind, "id", a.ID, "attempts", attempts, "error", err)
			return replayed, fmt.Errorf("%w: %s %s (attempt %d of %d): %v",
				ErrQueueBlocked, a.Kind, a.ID, attempts, s.maxAttempts, err)
		}
		s.logger.Warn(ctx, "discarding queued action", "kind", a.Kind, "id", a.ID, "attempts", attempts, "error", err)
		if err := q.Delete(ctx, a.ID); err != nil {
			return replayed, err
		}
	}
	return replayed, nil
}

func (s *timerService) replay(ctx context.Context, a *models.PendingAction) (*models.RemoteTimer, error) {
	switch a.Kind {
	case models.ActionStart:
		rt, _, err := s.client.Start(ctx, a.Trackable, a.Description)
		return rt, err
	case models.ActionPause:
		return s.client.Pause(ctx)
	case models.ActionResume:
		return s.client.Resume(ctx)
	case models.ActionStop:
		_, err := s.client.Stop(ctx)
		return nil, err
	default:
		return nil, fmt.Errorf("%w: unknown action %q", common.ErrorValidation, a.Kind)
	}
}

// bindLocalID swaps the placeholder id of an offline-started timer for the
// id the server assigned when the start was replayed.
func (s *timerService) bindLocalID(ctx context.Context, a *models.PendingAction, rt *models.RemoteTimer) error {
	if a.Kind != models.ActionStart || rt == nil || rt.Timer == nil {
		return nil
	}
	st := s.Snapshot()
	if st.Timer == nil || st.Timer.ID != models.LocalIDPrefix+a.ID {
		return nil
	}
	st.Timer.ID = rt.Timer.ID
	st.UpdatedAt = s.clock.Now()
	if err := s.mirrorRepo(s.db).Save(ctx, &st); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// Sync drains the queue and reconciles the mirror with the server using the
// configured conflict strategy. Reconciliation is skipped when the queue
// cannot be fully drained. A call made while another is running returns
// ErrSyncInProgress.
func (s *timerService) Sync(ctx context.Context) error {
	if !s.syncing.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.syncing.Store(false)

	s.ops.Lock()
	defer s.ops.Unlock()

	if _, err := s.drain(ctx); err != nil {
		return err
	}

	remote, err := s.client.GetActive(ctx)
	if err != nil {
		return err
	}
	local := s.Snapshot()

	switch s.strategy {
	case config.StrategyLocalWins:
		return s.localWins(ctx, local, remote)
	case config.StrategyMerge:
		var remoteStart time.Time
		if remote.Timer != nil {
			remoteStart = remote.Timer.StartedAt
		}
		if local.Timer != nil && local.Timer.StartedAt.After(remoteStart) {
			return s.localWins(ctx, local, remote)
		}
		return s.adopt(ctx, remote)
	default:
		return s.adopt(ctx, remote)
	}
}

// localWins pushes the mirror to the server through the reconcile endpoint.
// A timer the server has already stopped, or never saw, gives way to the
// server's view.
func (s *timerService) localWins(ctx context.Context, local models.MirrorState, remote *models.RemoteTimer) error {
	if local.IsLocal() {
		return s.adopt(ctx, remote)
	}

	if local.Active() {
		elapsed := local.Elapsed(s.clock.Now())
		snap := timer.Snapshot{TimerID: local.Timer.ID, Status: local.Timer.Status, ElapsedSeconds: &elapsed}
		rt, _, err := s.client.Sync(ctx, snap)
		if errors.Is(err, common.ErrorNotFound) {
			return s.adopt(ctx, remote)
		}
		if err != nil {
			return err
		}
		if rt.Timer == nil || !rt.Timer.Status.Active() {
			return s.adopt(ctx, remote)
		}
		return s.adopt(ctx, rt)
	}

	if remote.Timer != nil {
		if _, err := s.client.Stop(ctx); err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return s.adopt(ctx, &models.RemoteTimer{ServerTime: remote.ServerTime})
	}
	return s.adopt(ctx, remote)
}

// Tick refreshes the display counter of a running timer from the mirrored
// timestamps, so the counter follows the clock whatever the tick interval.
func (s *timerService) Tick(ctx context.Context) TickResult {
	now := s.clock.Now()

	s.mu.Lock()
	var res TickResult
	var timerID string
	if s.state.Timer != nil && s.state.Timer.Status == timer.StatusRunning {
		s.display = s.state.Elapsed(now)
		timerID = s.state.Timer.ID
		if s.display > int64(LongRunningAfter/time.Second) && s.notified != timerID {
			s.notified = timerID
			res.LongRunning = true
		}
	}
	res.Elapsed = s.display
	s.mu.Unlock()

	if res.LongRunning {
		s.logger.Warn(ctx, "timer running for more than 24h", "timer_id", timerID, "elapsed", res.Elapsed)
		if err := s.metaRepo(s.db).Set(ctx, metadata.KeyNotifiedTimer, []byte(timerID)); err != nil {
			s.logger.Error(ctx, "failed to remember notification", "error", err)
		}
	}
	return res
}

// CheckDrift recomputes elapsed from the mirrored timestamps and corrects
// the display counter when it is off by more than DriftThreshold seconds.
// It never contacts the server.
func (s *timerService) CheckDrift(ctx context.Context) bool {
	now := s.clock.Now()

	s.mu.Lock()
	want := s.state.Elapsed(now)
	drift := want - s.display
	if drift >= -DriftThreshold && drift <= DriftThreshold {
		s.mu.Unlock()
		return false
	}
	s.display = want
	s.state.CachedElapsed = want
	s.state.UpdatedAt = now
	st := cloneState(s.state)
	s.mu.Unlock()

	s.logger.Info(ctx, "elapsed drift corrected", "drift", drift, "elapsed", want)
	if err := s.mirrorRepo(s.db).Save(ctx, &st); err != nil {
		s.logger.Error(ctx, "failed to persist drift correction", "error", err)
	}
	return true
}

func cloneState(st models.MirrorState) models.MirrorState {
	if st.Timer != nil {
		t := *st.Timer
		st.Timer = &t
	}
	return st
}
