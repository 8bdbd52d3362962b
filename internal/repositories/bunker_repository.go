package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asiaagro/silage-backend/internal/models"
)

type BunkerRepository struct {
	DB *pgxpool.Pool
}

func NewBunkerRepository(db *pgxpool.Pool) *BunkerRepository {
	return &BunkerRepository{DB: db}
}

func (r *BunkerRepository) Create(ctx context.Context, bunker *models.Bunker) error {
	query := `INSERT INTO bunkers (name) VALUES ($1) RETURNING id, created_at`
	err := r.DB.QueryRow(ctx, query, bunker.Name).Scan(&bunker.ID, &bunker.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bunker: %w", err)
	}
	return nil
}

func (r *BunkerRepository) GetByID(ctx context.Context, id int) (*models.Bunker, error) {
	b := &models.Bunker{}
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, created_at FROM bunkers WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BunkerRepository) List(ctx context.Context) ([]*models.Bunker, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, created_at FROM bunkers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bunkers []*models.Bunker
	for rows.Next() {
		b := &models.Bunker{}
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		bunkers = append(bunkers, b)
	}
	return bunkers, rows.Err()
}

// Delete removes a bunker and, through FK cascade, its three ledgers.
func (r *BunkerRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM bunkers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bunker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Totals summarizes one bunker's purchases, sales and expenses in a single
// round trip for the bunker listing page.
func (r *BunkerRepository) Totals(ctx context.Context, bunkerID int) (*models.BunkerTotals, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(quantity) FROM bunker_purchases WHERE bunker_id = $1), 0),
			COALESCE((SELECT SUM(kgs_sold) FROM bunker_sales WHERE bunker_id = $1), 0),
			COALESCE((SELECT SUM(total_amount) FROM bunker_purchases WHERE bunker_id = $1), 0),
			COALESCE((SELECT SUM(amount_paid) FROM bunker_sales WHERE bunker_id = $1), 0),
			COALESCE((SELECT SUM(amount) FROM bunker_expenses WHERE bunker_id = $1), 0),
			COALESCE((SELECT SUM(remaining_amount) FROM bunker_purchases WHERE bunker_id = $1), 0)
			  + COALESCE((SELECT SUM(remaining_amount) FROM bunker_sales WHERE bunker_id = $1), 0)
			  + COALESCE((SELECT SUM(remaining_amount) FROM bunker_expenses WHERE bunker_id = $1), 0)
	`
	t := &models.BunkerTotals{BunkerID: bunkerID}
	err := r.DB.QueryRow(ctx, query, bunkerID).Scan(
		&t.KgsBought, &t.KgsSold, &t.PurchaseSpend,
		&t.SaleReceipts, &t.ExpenseSpend, &t.TotalRemaining,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute bunker totals: %w", err)
	}
	return t, nil
}
