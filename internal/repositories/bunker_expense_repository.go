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

type BunkerExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewBunkerExpenseRepository(db *pgxpool.Pool) *BunkerExpenseRepository {
	return &BunkerExpenseRepository{DB: db}
}

func (r *BunkerExpenseRepository) Create(ctx context.Context, e *models.BunkerExpense) error {
	query := `
		INSERT INTO bunker_expenses (bunker_id, name, amount, amount_paid, remaining_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query,
		e.BunkerID, e.Name, e.Amount, e.AmountPaid, e.RemainingAmount,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bunker expense: %w", err)
	}
	return nil
}

func (r *BunkerExpenseRepository) GetByID(ctx context.Context, id int) (*models.BunkerExpense, error) {
	e := &models.BunkerExpense{}
	err := r.DB.QueryRow(ctx, `
		SELECT id, bunker_id, name, amount, amount_paid, remaining_amount, created_at
		FROM bunker_expenses WHERE id = $1`, id,
	).Scan(&e.ID, &e.BunkerID, &e.Name, &e.Amount,
		&e.AmountPaid, &e.RemainingAmount, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *BunkerExpenseRepository) ListByBunker(ctx context.Context, bunkerID int, filter models.ListFilter) ([]*models.BunkerExpense, error) {
	conditions := []string{"bunker_id = $1"}
	args := []interface{}{bunkerID}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
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
		SELECT id, bunker_id, name, amount, amount_paid, remaining_amount, created_at
		FROM bunker_expenses
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d`, strings.Join(conditions, " AND "), len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.BunkerExpense
	for rows.Next() {
		e := &models.BunkerExpense{}
		if err := rows.Scan(&e.ID, &e.BunkerID, &e.Name, &e.Amount,
			&e.AmountPaid, &e.RemainingAmount, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *BunkerExpenseRepository) UpdatePayment(ctx context.Context, id int, newPaid, newRemaining float64) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE bunker_expenses SET amount_paid = $1, remaining_amount = $2 WHERE id = $3`,
		newPaid, newRemaining, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update bunker expense payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BunkerExpenseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM bunker_expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bunker expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
