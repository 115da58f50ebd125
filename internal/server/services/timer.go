package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophtracker/internal/clock"
	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/dbx"
	"github.com/dmitrijs2005/gophtracker/internal/logging"
	"github.com/dmitrijs2005/gophtracker/internal/server/config"
	"github.com/dmitrijs2005/gophtracker/internal/server/models"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100

	// UnknownDisplayName labels entries whose project or issue is gone.
	UnknownDisplayName = "Unknown"
)

// TimerState is a timer together with the instant its elapsed time should be
// computed at. Timer is nil when the user has no active timer.
type TimerState struct {
	Timer *timer.Timer
	Now   time.Time
}

// Elapsed is the timer's computed elapsed seconds at Now.
func (s *TimerState) Elapsed() int64 {
	if s == nil || s.Timer == nil {
		return 0
	}
	return s.Timer.Elapsed(s.Now)
}

// StartResult is the new running timer plus the entry of the timer that had
// to be stopped to make room for it, if any.
type StartResult struct {
	TimerState
	Stopped *timer.TimeEntry
}

// SyncResult is the reconciled timer and the entry produced when the
// snapshot stopped it.
type SyncResult struct {
	TimerState
	Entry *timer.TimeEntry
}

// TimerService is the server side of the timer: every read-then-write on a
// user's active timer runs in one transaction holding that user's row lock,
// and is retried when it loses a race on the storage guard.
type TimerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
	logger      logging.Logger
	attempts    int
	newID       func() string
}

func NewTimerService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, clk clock.Clock, logger logging.Logger) *TimerService {
	return &TimerService{
		db:          db,
		repomanager: m,
		clock:       clk,
		logger:      logger.With("module", "timers"),
		attempts:    cfg.TxRetryAttempts,
		newID:       func() string { return uuid.NewString() },
	}
}

// withUserLock runs fn in a retried transaction after locking userID's row.
func (s *TimerService) withUserLock(ctx context.Context, userID string, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTxRetry(ctx, s.db, nil, s.attempts, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Lock(ctx, userID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return err
		}
		return fn(ctx, tx)
	})
}

// GetActive returns the user's running or paused timer. The state carries a
// nil Timer when there is none.
func (s *TimerService) GetActive(ctx context.Context, userID string) (*TimerState, error) {
	now := s.clock.Now()
	t, err := s.repomanager.Timers(s.db).FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNoActiveTimer) {
			return &TimerState{Now: now}, nil
		}
		return nil, err
	}
	return &TimerState{Timer: t, Now: now}, nil
}

// GetRunning is GetActive narrowed to a running timer.
func (s *TimerService) GetRunning(ctx context.Context, userID string) (*TimerState, error) {
	st, err := s.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if st.Timer != nil && st.Timer.Status != timer.StatusRunning {
		st.Timer = nil
	}
	return st, nil
}

// StatusNone is reported by Status when the user has no active timer.
const StatusNone = "none"

// StatusSummary is the light form of GetActive used for polling.
type StatusSummary struct {
	Status         string
	TimerID        string
	ElapsedSeconds int64
}

func (s *TimerService) Status(ctx context.Context, userID string) (*StatusSummary, error) {
	st, err := s.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if st.Timer == nil {
		return &StatusSummary{Status: StatusNone}, nil
	}
	return &StatusSummary{Status: string(st.Timer.Status), TimerID: st.Timer.ID, ElapsedSeconds: st.Elapsed()}, nil
}

// Start begins a new timer on tr. Any active timer of the user is stopped
// first and its entry returned alongside.
func (s *TimerService) Start(ctx context.Context, userID string, tr timer.Trackable, description string) (*StartResult, error) {
	if err := tr.Validate(); err != nil {
		return nil, err
	}

	var res *StartResult
	err := s.withUserLock(ctx, userID, func(ctx context.Context, tx dbx.DBTX) error {
		res = nil
		target, err := s.resolveTrackable(ctx, tx, userID, tr)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		stopped, err := s.stopActive(ctx, tx, userID, now)
		if err != nil && !errors.Is(err, common.ErrNoActiveTimer) {
			return err
		}

		t := timer.New(userID, target.Ref(), target.ProjectRef(), target.IssueRef(), description)
		t.ID = s.newID()
		if err := t.Start(now); err != nil {
			return err
		}
		if err := s.repomanager.Timers(tx).Create(ctx, t); err != nil {
			return err
		}
		res = &StartResult{TimerState: TimerState{Timer: t, Now: now}, Stopped: stopped}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.Stopped != nil {
		s.logger.Info(ctx, "previous timer stopped by start", "user_id", userID, "timer_id", res.Stopped.TimerID)
	}
	return res, nil
}

// Pause banks the running timer. A timer that is already paused is returned
// unchanged.
func (s *TimerService) Pause(ctx context.Context, userID string) (*TimerState, error) {
	return s.transition(ctx, userID, func(t *timer.Timer, now time.Time) bool { return t.Pause(now) })
}

// Resume restarts a paused timer. A timer that is already running is
// returned unchanged.
func (s *TimerService) Resume(ctx context.Context, userID string) (*TimerState, error) {
	return s.transition(ctx, userID, func(t *timer.Timer, now time.Time) bool { return t.Resume(now) })
}

func (s *TimerService) transition(ctx context.Context, userID string, apply func(*timer.Timer, time.Time) bool) (*TimerState, error) {
	var st *TimerState
	err := s.withUserLock(ctx, userID, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Timers(tx)
		t, err := repo.FindActive(ctx, userID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if apply(t, now) {
			if err := repo.Update(ctx, t); err != nil {
				return err
			}
		}
		st = &TimerState{Timer: t, Now: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Stop finalizes the active timer and records its entry.
func (s *TimerService) Stop(ctx context.Context, userID string) (*timer.TimeEntry, error) {
	var entry *timer.TimeEntry
	err := s.withUserLock(ctx, userID, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		entry, err = s.stopActive(ctx, tx, userID, s.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// stopActive stops the user's active timer inside tx. It returns
// common.ErrNoActiveTimer when there is nothing to stop.
func (s *TimerService) stopActive(ctx context.Context, tx dbx.DBTX, userID string, now time.Time) (*timer.TimeEntry, error) {
	repo := s.repomanager.Timers(tx)
	t, err := repo.FindActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	entry, err := t.Stop(now)
	if err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, t); err != nil {
		return nil, err
	}
	if err := s.saveEntry(ctx, tx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *TimerService) saveEntry(ctx context.Context, tx dbx.DBTX, entry *timer.TimeEntry) error {
	entry.ID = s.newID()
	return s.repomanager.TimeEntries(tx).Create(ctx, entry)
}

// Sync merges a client snapshot into the stored timer. A timer that does not
// exist and one owned by someone else both fail with common.ErrorNotFound.
func (s *TimerService) Sync(ctx context.Context, userID string, snap timer.Snapshot) (*SyncResult, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	var res *SyncResult
	err := s.withUserLock(ctx, userID, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Timers(tx)
		t, err := repo.GetByID(ctx, snap.TimerID)
		if err != nil {
			return err
		}
		if t.UserID != userID {
			return common.ErrorNotFound
		}

		now := s.clock.Now()
		before := t.Elapsed(now)
		out, err := timer.Reconcile(t, snap, now)
		if err != nil {
			return err
		}
		if out.Changed() {
			if err := repo.Update(ctx, t); err != nil {
				return err
			}
		}
		if out.Entry != nil {
			if err := s.saveEntry(ctx, tx, out.Entry); err != nil {
				return err
			}
		}
		if out.Rebased && t.Elapsed(now) < before {
			s.logger.Warn(ctx, "sync reduced tracked time",
				"user_id", userID, "timer_id", t.ID, "server_elapsed", before, "reported_elapsed", *snap.ElapsedSeconds)
		}
		res = &SyncResult{TimerState: TimerState{Timer: t, Now: now}, Entry: out.Entry}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RecentEntries lists the user's latest entries, newest first, each named
// after its issue or project. A limit outside 1..MaxRecentLimit falls back
// to the default or the maximum.
func (s *TimerService) RecentEntries(ctx context.Context, userID string, limit int) ([]*timer.TimeEntry, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}
	entries, err := s.repomanager.TimeEntries(s.db).Recent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.DisplayName == "" {
			e.DisplayName = UnknownDisplayName
		}
	}
	return entries, nil
}

// resolveTrackable loads the project or issue tr points at and checks that
// userID owns it. Missing and foreign trackables look the same.
func (s *TimerService) resolveTrackable(ctx context.Context, db dbx.DBTX, userID string, tr timer.Trackable) (models.Trackable, error) {
	var (
		target models.Trackable
		err    error
	)
	switch tr.Kind {
	case timer.KindProject:
		target, err = s.repomanager.Projects(db).GetByID(ctx, tr.ID)
	case timer.KindIssue:
		target, err = s.repomanager.Issues(db).GetByID(ctx, tr.ID)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", timer.ErrInvalidTrackable, tr.Kind)
	}
	if err != nil {
		return nil, err
	}
	if target.OwnerID() != userID {
		return nil, common.ErrorNotFound
	}
	return target, nil
}
