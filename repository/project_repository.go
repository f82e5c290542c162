package repository

import (
	"context"
	"errors"

	"doccheck-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindOrCreate looks a project up by exact name and creates it when absent.
// The unique index on name serializes concurrent creation: the insert is a
// no-op for the loser and the following select returns the winner's row.
func (r *ProjectRepository) FindOrCreate(ctx context.Context, name string) (*models.Project, error) {
	insert := `
		INSERT INTO projects (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING`

	if _, err := r.db.Exec(ctx, insert, name); err != nil {
		return nil, err
	}

	project := &models.Project{}
	query := `
		SELECT id, name, created_at
		FROM projects
		WHERE name = $1`

	err := r.db.QueryRow(ctx, query, name).Scan(
		&project.ID,
		&project.Name,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return project, nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project := &models.Project{}
	query := `
		SELECT id, name, created_at
		FROM projects
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return project, nil
}

// List retrieves all projects, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT id, name, created_at
		FROM projects
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// IsNotFound reports whether err is the pgx no-rows error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
