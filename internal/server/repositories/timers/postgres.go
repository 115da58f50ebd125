package timers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/dbx"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

// ActiveIndex is the partial unique index allowing one active timer per user.
const ActiveIndex = "timers_one_active_per_user"

const selectColumns = `id, user_id, trackable_type, trackable_id, project_id, issue_id, status,
		       started_at, paused_at, stopped_at, elapsed_seconds, description, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *timer.Timer) error {
	query := `
		INSERT INTO timers (id, user_id, trackable_type, trackable_id, project_id, issue_id, status,
		                    started_at, paused_at, stopped_at, elapsed_seconds, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.UserID, string(t.Trackable.Kind), t.Trackable.ID,
		dbx.NullString(t.ProjectID), dbx.NullString(t.IssueID), string(t.Status),
		dbx.NullTime(t.StartedAt), dbx.NullTime(t.PausedAt), dbx.NullTime(t.StoppedAt),
		t.ElapsedSeconds, t.Description,
	).Scan(&t.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, ActiveIndex) {
			return common.ErrActiveTimerExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *timer.Timer) error {
	query := `
		UPDATE timers
		SET status = $3, started_at = $4, paused_at = $5, stopped_at = $6,
		    elapsed_seconds = $7, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, string(t.Status),
		dbx.NullTime(t.StartedAt), dbx.NullTime(t.PausedAt), dbx.NullTime(t.StoppedAt),
		t.ElapsedSeconds,
	)
	if err != nil {
		if dbx.IsUniqueViolation(err, ActiveIndex) {
			return common.ErrActiveTimerExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) FindActive(ctx context.Context, userID string) (*timer.Timer, error) {
	query := `SELECT ` + selectColumns + `
		FROM timers
		WHERE user_id = $1 AND status <> 'stopped'
	`
	t, err := scanTimer(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoActiveTimer
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*timer.Timer, error) {
	query := `SELECT ` + selectColumns + `
		FROM timers
		WHERE id = $1
	`
	t, err := scanTimer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func scanTimer(row interface{ Scan(...any) error }) (*timer.Timer, error) {
	var (
		t                             timer.Timer
		kind, status                  string
		projectID, issueID            sql.NullString
		startedAt, pausedAt, stoppedAt sql.NullTime
	)
	err := row.Scan(&t.ID, &t.UserID, &kind, &t.Trackable.ID, &projectID, &issueID, &status,
		&startedAt, &pausedAt, &stoppedAt, &t.ElapsedSeconds, &t.Description, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Trackable.Kind = timer.Kind(kind)
	t.Status = timer.Status(status)
	t.ProjectID = dbx.StringOf(projectID)
	t.IssueID = dbx.StringOf(issueID)
	t.StartedAt = dbx.TimeOf(startedAt)
	t.PausedAt = dbx.TimeOf(pausedAt)
	t.StoppedAt = dbx.TimeOf(stoppedAt)
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}
