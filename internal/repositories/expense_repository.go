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

type ExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

func (r *ExpenseRepository) CreateCategory(ctx context.Context, c *models.ExpenseCategory) error {
	query := `INSERT INTO expense_categories (name) VALUES ($1) RETURNING id, created_at`
	err := r.DB.QueryRow(ctx, query, c.Name).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense category: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) ListCategories(ctx context.Context) ([]*models.ExpenseCategory, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, created_at FROM expense_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.ExpenseCategory
	for rows.Next() {
		c := &models.ExpenseCategory{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteCategory refuses to remove a category that still has expenses.
func (r *ExpenseRepository) DeleteCategory(ctx context.Context, id int) error {
	var count int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM expenses WHERE category_id = $1`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category has %d expenses and cannot be deleted", count)
	}

	tag, err := r.DB.Exec(ctx, `DELETE FROM expense_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	query := `
		INSERT INTO expenses (category_id, description, amount, discount,
			amount_paid, remaining_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query,
		e.CategoryID, e.Description, e.Amount, e.Discount,
		e.AmountPaid, e.RemainingAmount,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int) (*models.Expense, error) {
	e := &models.Expense{}
	err := r.DB.QueryRow(ctx, `
		SELECT e.id, e.category_id, c.name, e.description, e.amount, e.discount,
		       e.amount_paid, e.remaining_amount, e.created_at
		FROM expenses e
		JOIN expense_categories c ON e.category_id = c.id
		WHERE e.id = $1`, id,
	).Scan(&e.ID, &e.CategoryID, &e.CategoryName, &e.Description, &e.Amount,
		&e.Discount, &e.AmountPaid, &e.RemainingAmount, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ExpenseRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.Expense, error) {
	var conditions []string
	var args []interface{}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(e.description ILIKE $%d OR c.name ILIKE $%d)", len(args), len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions = append(conditions, fmt.Sprintf("e.created_at::date = $%d", len(args)))
	}
	switch filter.PaymentStatus {
	case models.PaymentStatusPaid:
		conditions = append(conditions, "e.remaining_amount = 0")
	case models.PaymentStatusUnpaid:
		conditions = append(conditions, "e.remaining_amount > 0")
	}

	query := `
		SELECT e.id, e.category_id, c.name, e.description, e.amount, e.discount,
		       e.amount_paid, e.remaining_amount, e.created_at
		FROM expenses e
		JOIN expense_categories c ON e.category_id = c.id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY e.created_at DESC LIMIT $%d", len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(&e.ID, &e.CategoryID, &e.CategoryName, &e.Description,
			&e.Amount, &e.Discount, &e.AmountPaid, &e.RemainingAmount, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) UpdatePayment(ctx context.Context, id int, newPaid, newRemaining float64) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE expenses SET amount_paid = $1, remaining_amount = $2 WHERE id = $3`,
		newPaid, newRemaining, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary aggregates all expenses for the dashboard panel.
func (r *ExpenseRepository) Summary(ctx context.Context) (*models.ExpenseSummary, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0),
		       COALESCE(SUM(discount), 0),
		       COALESCE(SUM(amount_paid), 0),
		       COALESCE(SUM(remaining_amount), 0)
		FROM expenses
	`
	s := &models.ExpenseSummary{}
	err := r.DB.QueryRow(ctx, query).Scan(
		&s.TotalAmountSpent, &s.TotalDiscount,
		&s.TotalAmountPaid, &s.TotalRemainingAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute expense summary: %w", err)
	}
	return s, nil
}
