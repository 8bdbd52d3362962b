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

type BunkerSaleRepository struct {
	DB *pgxpool.Pool
}

func NewBunkerSaleRepository(db *pgxpool.Pool) *BunkerSaleRepository {
	return &BunkerSaleRepository{DB: db}
}

func (r *BunkerSaleRepository) Create(ctx context.Context, s *models.BunkerSale) error {
	query := `
		INSERT INTO bunker_sales (bunker_id, customer_name, kgs_sold, price,
			discount, total_amount, amount_paid, remaining_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query,
		s.BunkerID, s.CustomerName, s.KgsSold, s.Price,
		s.Discount, s.TotalAmount, s.AmountPaid, s.RemainingAmount,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bunker sale: %w", err)
	}
	return nil
}

func (r *BunkerSaleRepository) GetByID(ctx context.Context, id int) (*models.BunkerSale, error) {
	s := &models.BunkerSale{}
	err := r.DB.QueryRow(ctx, `
		SELECT id, bunker_id, customer_name, kgs_sold, price, discount,
		       total_amount, amount_paid, remaining_amount, created_at
		FROM bunker_sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.BunkerID, &s.CustomerName, &s.KgsSold, &s.Price, &s.Discount,
		&s.TotalAmount, &s.AmountPaid, &s.RemainingAmount, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *BunkerSaleRepository) ListByBunker(ctx context.Context, bunkerID int, filter models.ListFilter) ([]*models.BunkerSale, error) {
	conditions := []string{"bunker_id = $1"}
	args := []interface{}{bunkerID}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		conditions = append(conditions, fmt.Sprintf("customer_name ILIKE $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions = append(conditions, fmt.Sprintf("created_at::date = $%d", len(args)))
	}
	switch filter.PaymentStatus {
	case models.PaymentStatusPaid:
		conditions = append(conditions, "remaining_amount = 0")
	case models.PaymentStatusUnpaid:
		conditions = append(conditions, "remaining_amount > 0")
	}

	args = append(args, filter.Limit)
	query := fmt.Sprintf(`
		SELECT id, bunker_id, customer_name, kgs_sold, price, discount,
		       total_amount, amount_paid, remaining_amount, created_at
		FROM bunker_sales
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d`, strings.Join(conditions, " AND "), len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.BunkerSale
	for rows.Next() {
		s := &models.BunkerSale{}
		if err := rows.Scan(&s.ID, &s.BunkerID, &s.CustomerName, &s.KgsSold, &s.Price,
			&s.Discount, &s.TotalAmount, &s.AmountPaid, &s.RemainingAmount, &s.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *BunkerSaleRepository) UpdatePayment(ctx context.Context, id int, newPaid, newRemaining float64) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE bunker_sales SET amount_paid = $1, remaining_amount = $2 WHERE id = $3`,
		newPaid, newRemaining, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update bunker sale payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BunkerSaleRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM bunker_sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bunker sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
