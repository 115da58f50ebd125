package queue

import (
	"context"
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

func (r *SQLiteRepository) Enqueue(ctx context.Context, a *models.PendingAction) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_actions (id, kind, trackable_kind, trackable_id, description, created_at, attempts, last_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, string(a.Kind), string(a.Trackable.Kind), a.Trackable.ID, a.Description,
		a.CreatedAt.Unix(), a.Attempts, a.LastError)
	if err != nil {
		return fmt.Errorf("failed to enqueue action %s: %w", a.ID, err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read sequence of action %s: %w", a.ID, err)
	}
	a.Seq = seq
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.PendingAction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT seq, id, kind, trackable_kind, trackable_id, description, created_at, attempts, last_error
		FROM pending_actions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending actions: %w", err)
	}
	defer rows.Close()

	var result []*models.PendingAction
	for rows.Next() {
		var (
			a         models.PendingAction
			kind      string
			trKind    string
			createdAt int64
		)
		if err := rows.Scan(&a.Seq, &a.ID, &kind, &trKind, &a.Trackable.ID, &a.Description,
			&createdAt, &a.Attempts, &a.LastError); err != nil {
			return nil, fmt.Errorf("failed to scan pending action: %w", err)
		}
		a.Kind = models.ActionKind(kind)
		a.Trackable.Kind = timer.Kind(trKind)
		a.CreatedAt = time.Unix(createdAt, 0).UTC()
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending actions: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_actions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete action %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) RecordFailure(ctx context.Context, id string, reason string) (int, error) {
	var attempts int
	err := r.db.QueryRowContext(ctx, `
		UPDATE pending_actions SET attempts = attempts + 1, last_error = ?
		WHERE id = ? RETURNING attempts`, reason, id).Scan(&attempts)
	if err != nil {
		return 0, fmt.Errorf("failed to record failure of action %s: %w", id, err)
	}
	return attempts, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_actions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending actions: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_actions`); err != nil {
		return fmt.Errorf("failed to clear pending actions: %w", err)
	}
	return nil
}
