package projects

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) error {
	query := `
		INSERT INTO projects (id, user_id, name, color)
		VALUES ($1, $2, $3, $4)
		RETURNING is_active, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, p.ID, p.UserID, p.Name, p.Color).Scan(&p.IsActive, &p.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `
		SELECT id, user_id, name, color, is_active, created_at
		FROM projects
		WHERE id = $1
	`
	p := &models.Project{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Project, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.color, p.is_active, p.created_at,
			COALESCE((SELECT SUM(e.duration_seconds) FROM time_entries e WHERE e.project_id = p.id), 0),
			(SELECT COUNT(*) FROM issues i WHERE i.project_id = p.id AND i.is_active)
		FROM projects p
		WHERE p.user_id = $1 AND p.is_active
		ORDER BY p.name
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		p := &models.Project{}
		err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &p.IsActive, &p.CreatedAt, &p.TotalSeconds, &p.ActiveIssues)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
