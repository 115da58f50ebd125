package timeentries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/dbx"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

const selectColumns = `id, user_id, timer_id, trackable_type, trackable_id, project_id, issue_id,
		       started_at, ended_at, duration_seconds, description, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *timer.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, user_id, timer_id, trackable_type, trackable_id, project_id, issue_id,
		                          started_at, ended_at, duration_seconds, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.TimerID, string(e.Trackable.Kind), e.Trackable.ID,
		dbx.NullString(e.ProjectID), dbx.NullString(e.IssueID),
		e.StartedAt, e.EndedAt, e.DurationSeconds, e.Description,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Recent(ctx context.Context, userID string, limit int) ([]*timer.TimeEntry, error) {
	query := `
		SELECT e.id, e.user_id, e.timer_id, e.trackable_type, e.trackable_id, e.project_id, e.issue_id,
		       e.started_at, e.ended_at, e.duration_seconds, e.description, e.created_at,
		       COALESCE(i.title, p.name, '')
		FROM time_entries e
		LEFT JOIN issues i ON i.id = e.issue_id
		LEFT JOIN projects p ON p.id = e.project_id
		WHERE e.user_id = $1
		ORDER BY e.ended_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*timer.TimeEntry
	for rows.Next() {
		var name string
		e, err := scanEntry(rows, &name)
		if err != nil {
			return nil, err
		}
		e.DisplayName = name
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]*timer.TimeEntry, error) {
	query := `SELECT ` + selectColumns + `
		FROM time_entries
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR ended_at >= $2)
		  AND ($3::timestamptz IS NULL OR ended_at < $3)
		ORDER BY ended_at
	`
	return r.list(ctx, query, userID, dbx.NullTime(from), dbx.NullTime(to))
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*timer.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*timer.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// scanEntry reads selectColumns in order, followed by extra destinations.
func scanEntry(rows *sql.Rows, extra ...any) (*timer.TimeEntry, error) {
	var (
		e                  timer.TimeEntry
		kind               string
		projectID, issueID sql.NullString
	)
	dest := append([]any{&e.ID, &e.UserID, &e.TimerID, &kind, &e.Trackable.ID, &projectID, &issueID,
		&e.StartedAt, &e.EndedAt, &e.DurationSeconds, &e.Description, &e.CreatedAt}, extra...)
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	e.Trackable.Kind = timer.Kind(kind)
	e.ProjectID = dbx.StringOf(projectID)
	e.IssueID = dbx.StringOf(issueID)
	e.StartedAt = e.StartedAt.UTC()
	e.EndedAt = e.EndedAt.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}
