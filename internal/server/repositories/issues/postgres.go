package issues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/dbx"
	"github.com/dmitrijs2005/gophtracker/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, i *models.Issue) error {
	query := `
		INSERT INTO issues (id, user_id, project_id, title, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING is_active, created_at
	`
	err := r.db.QueryRowContext(ctx, query, i.ID, i.UserID, dbx.NullString(i.ProjectID), i.Title, i.Priority, i.Status).
		Scan(&i.IsActive, &i.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// scanIssue reads the shared column list, followed by extra destinations
// for listing aggregates.
func scanIssue(row interface{ Scan(...any) error }, extra ...any) (*models.Issue, error) {
	i := &models.Issue{}
	var projectID sql.NullString
	dest := append([]any{&i.ID, &i.UserID, &projectID, &i.Title, &i.Priority, &i.Status, &i.IsActive, &i.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	i.ProjectID = dbx.StringOf(projectID)
	return i, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Issue, error) {
	query := `
		SELECT id, user_id, project_id, title, priority, status, is_active, created_at
		FROM issues
		WHERE id = $1
	`
	i, err := scanIssue(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return i, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, f models.IssueFilter) ([]*models.Issue, error) {
	query := `
		SELECT i.id, i.user_id, i.project_id, i.title, i.priority, i.status, i.is_active, i.created_at,
			COALESCE((SELECT SUM(e.duration_seconds) FROM time_entries e WHERE e.issue_id = i.id), 0)
		FROM issues i
		WHERE i.user_id = $1 AND i.is_active
			AND ($2::uuid IS NULL OR i.project_id = $2)
			AND ($3::text IS NULL OR i.status = $3)
		ORDER BY i.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID, dbx.NullString(f.ProjectID), dbx.NullString(f.Status))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Issue
	for rows.Next() {
		var total int64
		i, err := scanIssue(rows, &total)
		if err != nil {
			return nil, err
		}
		i.TotalSeconds = total
		result = append(result, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, i *models.Issue) error {
	query := `
		UPDATE issues
		SET status = $2, is_active = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, i.ID, i.Status, i.IsActive)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
