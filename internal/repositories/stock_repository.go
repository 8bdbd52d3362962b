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

type StockRepository struct {
	DB *pgxpool.Pool
}

func NewStockRepository(db *pgxpool.Pool) *StockRepository {
	return &StockRepository{DB: db}
}

const stockInColumns = `
	id, client_name, COALESCE(description, ''), category,
	weight_per_kg, price_per_kg, discount, gross_total, net_total,
	amount_paid, remaining_amount,
	COALESCE(driver_name, ''), COALESCE(vehicle_number, ''),
	to_char(scheduled_date, 'YYYY-MM-DD'), created_at
`

func scanStockIn(row pgx.Row) (*models.StockIn, error) {
	s := &models.StockIn{}
	err := row.Scan(
		&s.ID, &s.ClientName, &s.Description, &s.Category,
		&s.WeightPerKg, &s.PricePerKg, &s.Discount, &s.GrossTotal, &s.NetTotal,
		&s.AmountPaid, &s.RemainingAmount,
		&s.DriverName, &s.VehicleNumber, &s.ScheduledDate, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StockRepository) Create(ctx context.Context, stock *models.StockIn) error {
	query := `
		INSERT INTO stock_in (client_name, description, category, weight_per_kg,
			price_per_kg, discount, gross_total, net_total, amount_paid,
			remaining_amount, driver_name, vehicle_number, scheduled_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query,
		stock.ClientName, stock.Description, stock.Category, stock.WeightPerKg,
		stock.PricePerKg, stock.Discount, stock.GrossTotal, stock.NetTotal,
		stock.AmountPaid, stock.RemainingAmount, stock.DriverName,
		stock.VehicleNumber, stock.ScheduledDate,
	).Scan(&stock.ID, &stock.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create stock entry: %w", err)
	}
	return nil
}

func (r *StockRepository) GetByID(ctx context.Context, id int) (*models.StockIn, error) {
	query := `SELECT ` + stockInColumns + ` FROM stock_in WHERE id = $1`
	s, err := scanStockIn(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func (r *StockRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.StockIn, error) {
	var conditions []string
	var args []interface{}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(client_name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions = append(conditions, fmt.Sprintf("scheduled_date = $%d", len(args)))
	}
	switch filter.PaymentStatus {
	case models.PaymentStatusPaid:
		conditions = append(conditions, "remaining_amount = 0")
	case models.PaymentStatusUnpaid:
		conditions = append(conditions, "remaining_amount > 0")
	}

	query := `SELECT ` + stockInColumns + ` FROM stock_in`
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

	var entries []*models.StockIn
	for rows.Next() {
		s, err := scanStockIn(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, s)
	}
	return entries, rows.Err()
}

// ApplyAmendment writes the sparse update produced by the amendment flow:
// any changed text fields plus the new paid/remaining totals.
func (r *StockRepository) ApplyAmendment(ctx context.Context, id int, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	var sets []string
	var args []interface{}
	for column, value := range fields {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE stock_in SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update stock entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StockRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM stock_in WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stock entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary aggregates purchases per category for the dashboard buying panel.
func (r *StockRepository) Summary(ctx context.Context) ([]*models.StockSummaryRow, error) {
	query := `
		SELECT category,
		       COALESCE(SUM(weight_per_kg), 0),
		       COALESCE(SUM(amount_paid), 0),
		       COALESCE(SUM(remaining_amount), 0)
		FROM stock_in
		GROUP BY category
		ORDER BY category
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []*models.StockSummaryRow
	for rows.Next() {
		row := &models.StockSummaryRow{}
		if err := rows.Scan(&row.Category, &row.TotalKgsBought,
			&row.TotalAmountPaid, &row.TotalRemainingAmount); err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}

// AvailableStock is stock on hand per category: received minus issued.
// Packaging leaves through stock-out, raw silage through client sales.
func (r *StockRepository) AvailableStock(ctx context.Context) ([]*models.AvailableStockRow, error) {
	query := `
		SELECT si.category,
		       COALESCE(SUM(si.weight_per_kg), 0)
		         - COALESCE((SELECT SUM(so.quantity) FROM stock_out so WHERE so.category = si.category), 0)
		         - CASE WHEN si.category = 'silage'
		                THEN COALESCE((SELECT SUM(s.weight_in_kgs) FROM sales s), 0)
		                ELSE 0 END
		FROM stock_in si
		GROUP BY si.category
		ORDER BY si.category
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var available []*models.AvailableStockRow
	for rows.Next() {
		row := &models.AvailableStockRow{}
		if err := rows.Scan(&row.Category, &row.TotalStockAvailable); err != nil {
			return nil, err
		}
		available = append(available, row)
	}
	return available, rows.Err()
}
