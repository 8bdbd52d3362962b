package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asiaagro/silage-backend/internal/models"
)

type StockOutRepository struct {
	DB *pgxpool.Pool
}

func NewStockOutRepository(db *pgxpool.Pool) *StockOutRepository {
	return &StockOutRepository{DB: db}
}

func (r *StockOutRepository) Create(ctx context.Context, entry *models.StockOut) error {
	query := `
		INSERT INTO stock_out (person_name, category, quantity, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query,
		entry.PersonName, entry.Category, entry.Quantity, entry.Date,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create stock-out entry: %w", err)
	}
	return nil
}

func (r *StockOutRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.StockOut, error) {
	var conditions []string
	var args []interface{}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		conditions = append(conditions, fmt.Sprintf("person_name ILIKE $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions = append(conditions, fmt.Sprintf("date = $%d", len(args)))
	}

	query := `
		SELECT id, person_name, category, quantity,
		       to_char(date, 'YYYY-MM-DD'), created_at
		FROM stock_out
	`
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

	var entries []*models.StockOut
	for rows.Next() {
		e := &models.StockOut{}
		if err := rows.Scan(&e.ID, &e.PersonName, &e.Category,
			&e.Quantity, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *StockOutRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM stock_out WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stock-out entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
