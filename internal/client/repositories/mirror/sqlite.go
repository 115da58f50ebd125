package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/client/models"
	"github.com/dmitrijs2005/gophtracker/internal/dbx"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.MirrorState, error) {
	var (
		timerID, status, kind, trackableID sql.NullString
		projectID, issueID, description    sql.NullString
		startedAt, pausedAt, stoppedAt     sql.NullInt64
		syncedAt                           sql.NullInt64
		elapsed, cached, offsetMs, updated int64
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT timer_id, status, trackable_kind, trackable_id, project_id, issue_id, description,
		       started_at, paused_at, stopped_at, elapsed_seconds, cached_elapsed, clock_offset_ms,
		       synced_at, updated_at
		FROM mirror_state WHERE id = 1`).Scan(
		&timerID, &status, &kind, &trackableID, &projectID, &issueID, &description,
		&startedAt, &pausedAt, &stoppedAt, &elapsed, &cached, &offsetMs,
		&syncedAt, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load mirror state: %w", err)
	}

	s := &models.MirrorState{
		CachedElapsed: cached,
		ClockOffset:   time.Duration(offsetMs) * time.Millisecond,
		SyncedAt:      dbx.UnixOf(syncedAt),
		UpdatedAt:     time.Unix(updated, 0).UTC(),
	}
	if timerID.Valid {
		s.Timer = &timer.Timer{
			ID:             timerID.String,
			Status:         timer.Status(dbx.StringOf(status)),
			Trackable:      timer.Trackable{Kind: timer.Kind(dbx.StringOf(kind)), ID: dbx.StringOf(trackableID)},
			ProjectID:      dbx.StringOf(projectID),
			IssueID:        dbx.StringOf(issueID),
			Description:    dbx.StringOf(description),
			StartedAt:      dbx.UnixOf(startedAt),
			PausedAt:       dbx.UnixOf(pausedAt),
			StoppedAt:      dbx.UnixOf(stoppedAt),
			ElapsedSeconds: elapsed,
		}
	}
	return s, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, s *models.MirrorState) error {
	var (
		timerID, status, kind, trackableID sql.NullString
		projectID, issueID, description    sql.NullString
		startedAt, pausedAt, stoppedAt     sql.NullInt64
		elapsed                            int64
	)
	if t := s.Timer; t != nil {
		timerID = dbx.NullString(t.ID)
		status = dbx.NullString(string(t.Status))
		kind = dbx.NullString(string(t.Trackable.Kind))
		trackableID = dbx.NullString(t.Trackable.ID)
		projectID = dbx.NullString(t.ProjectID)
		issueID = dbx.NullString(t.IssueID)
		description = dbx.NullString(t.Description)
		startedAt = dbx.NullUnix(t.StartedAt)
		pausedAt = dbx.NullUnix(t.PausedAt)
		stoppedAt = dbx.NullUnix(t.StoppedAt)
		elapsed = t.ElapsedSeconds
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mirror_state (id, timer_id, status, trackable_kind, trackable_id, project_id, issue_id,
		    description, started_at, paused_at, stopped_at, elapsed_seconds, cached_elapsed, clock_offset_ms,
		    synced_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		    timer_id = excluded.timer_id, status = excluded.status,
		    trackable_kind = excluded.trackable_kind, trackable_id = excluded.trackable_id,
		    project_id = excluded.project_id, issue_id = excluded.issue_id,
		    description = excluded.description, started_at = excluded.started_at,
		    paused_at = excluded.paused_at, stopped_at = excluded.stopped_at,
		    elapsed_seconds = excluded.elapsed_seconds, cached_elapsed = excluded.cached_elapsed,
		    clock_offset_ms = excluded.clock_offset_ms, synced_at = excluded.synced_at,
		    updated_at = excluded.updated_at
	`, timerID, status, kind, trackableID, projectID, issueID, description,
		startedAt, pausedAt, stoppedAt, elapsed, s.CachedElapsed, s.ClockOffset.Milliseconds(),
		dbx.NullUnix(s.SyncedAt), s.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save mirror state: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mirror_state`); err != nil {
		return fmt.Errorf("failed to clear mirror state: %w", err)
	}
	return nil
}
