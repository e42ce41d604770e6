package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prodline/tpm-service/internal/domain"
)

// LineAreaRepository manages production line/area reference data.
type LineAreaRepository interface {
	Create(ctx context.Context, area *domain.LineArea) error
	Update(ctx context.Context, area *domain.LineArea) error
	GetByID(ctx context.Context, id string) (*domain.LineArea, error)
	ListActive(ctx context.Context) ([]domain.LineArea, error)
}

type lineAreaRepository struct {
	pool *pgxpool.Pool
}

// NewLineAreaRepository builds the repository.
func NewLineAreaRepository(pool *pgxpool.Pool) LineAreaRepository {
	return &lineAreaRepository{pool: pool}
}

func (r *lineAreaRepository) Create(ctx context.Context, area *domain.LineArea) error {
	const query = `
        INSERT INTO line_areas (department_id, name, description, is_active)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		area.DepartmentID,
		area.Name,
		area.Description,
		area.IsActive,
	).Scan(&area.ID, &area.CreatedAt, &area.UpdatedAt)
}

func (r *lineAreaRepository) Update(ctx context.Context, area *domain.LineArea) error {
	const query = `
        UPDATE line_areas SET department_id=$1, name=$2, description=$3, is_active=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		area.DepartmentID,
		area.Name,
		area.Description,
		area.IsActive,
		area.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *lineAreaRepository) GetByID(ctx context.Context, id string) (*domain.LineArea, error) {
	const query = `
        SELECT id, department_id, name, description, is_active, created_at, updated_at
        FROM line_areas WHERE id=$1`
	var area domain.LineArea
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&area.ID,
		&area.DepartmentID,
		&area.Name,
		&area.Description,
		&area.IsActive,
		&area.CreatedAt,
		&area.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *lineAreaRepository) ListActive(ctx context.Context) ([]domain.LineArea, error) {
	const query = `
        SELECT id, department_id, name, description, is_active, created_at, updated_at
        FROM line_areas WHERE is_active = TRUE ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LineArea
	for rows.Next() {
		var area domain.LineArea
		if err := rows.Scan(
			&area.ID,
			&area.DepartmentID,
			&area.Name,
			&area.Description,
			&area.IsActive,
			&area.CreatedAt,
			&area.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, area)
	}
	return result, rows.Err()
}
