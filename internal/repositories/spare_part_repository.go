package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asiaagro/silage-backend/internal/models"
)

type SparePartRepository struct {
	DB *pgxpool.Pool
}

func NewSparePartRepository(db *pgxpool.Pool) *SparePartRepository {
	return &SparePartRepository{DB: db}
}

func (r *SparePartRepository) Create(ctx context.Context, p *models.SparePart) error {
	query := `
		INSERT INTO spare_parts (name, quantity)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, query, p.Name, p.Quantity).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create spare part: %w", err)
	}
	return nil
}

func (r *SparePartRepository) GetByID(ctx context.Context, id int) (*models.SparePart, error) {
	p := &models.SparePart{}
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, quantity, created_at, updated_at FROM spare_parts WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SparePartRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.SparePart, error) {
	var conditions []string
	var args []interface{}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions = append(conditions, fmt.Sprintf("created_at::date = $%d", len(args)))
	}

	query := `SELECT id, name, quantity, created_at, updated_at FROM spare_parts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []*models.SparePart
	for rows.Next() {
		p := &models.SparePart{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *SparePartRepository) UpdateQuantity(ctx context.Context, id int, quantity float64) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE spare_parts SET quantity = $1, updated_at = NOW() WHERE id = $2`,
		quantity, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update spare part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SparePartRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM spare_parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete spare part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
