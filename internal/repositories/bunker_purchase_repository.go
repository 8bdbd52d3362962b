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

type BunkerPurchaseRepository struct {
	DB *pgxpool.Pool
}

func NewBunkerPurchaseRepository(db *pgxpool.Pool) *BunkerPurchaseRepository {
	return &BunkerPurchaseRepository{DB: db}
}

func (r *BunkerPurchaseRepository) Create(ctx context.Context, p *models.BunkerPurchase) error {
	query := `
		INSERT INTO bunker_purchases (bunker_id, quantity, price, discount,
			total_amount, amount_paid, remaining_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query,
		p.BunkerID, p.Quantity, p.Price, p.Discount,
		p.TotalAmount, p.AmountPaid, p.RemainingAmount,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bunker purchase: %w", err)
	}
	return nil
}

func (r *BunkerPurchaseRepository) GetByID(ctx context.Context, id int) (*models.BunkerPurchase, error) {
	p := &models.BunkerPurchase{}
	err := r.DB.QueryRow(ctx, `
		SELECT id, bunker_id, quantity, price, discount, total_amount,
		       amount_paid, remaining_amount, created_at
		FROM bunker_purchases WHERE id = $1`, id,
	).Scan(&p.ID, &p.BunkerID, &p.Quantity, &p.Price, &p.Discount,
		&p.TotalAmount, &p.AmountPaid, &p.RemainingAmount, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *BunkerPurchaseRepository) ListByBunker(ctx context.Context, bunkerID int, filter models.ListFilter) ([]*models.BunkerPurchase, error) {
	conditions := []string{"bunker_id = $1"}
	args := []interface{}{bunkerID}

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
		SELECT id, bunker_id, quantity, price, discount, total_amount,
		       amount_paid, remaining_amount, created_at
		FROM bunker_purchases
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d`, strings.Join(conditions, " AND "), len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.BunkerPurchase
	for rows.Next() {
		p := &models.BunkerPurchase{}
		if err := rows.Scan(&p.ID, &p.BunkerID, &p.Quantity, &p.Price, &p.Discount,
			&p.TotalAmount, &p.AmountPaid, &p.RemainingAmount, &p.CreatedAt); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (r *BunkerPurchaseRepository) UpdatePayment(ctx context.Context, id int, newPaid, newRemaining float64) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE bunker_purchases SET amount_paid = $1, remaining_amount = $2 WHERE id = $3`,
		newPaid, newRemaining, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update bunker purchase payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BunkerPurchaseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM bunker_purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bunker purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
