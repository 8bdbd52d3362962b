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

type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

// NextBillNumber returns the bill number the next sale will be assigned.
// Uses a database sequence so concurrent forms never see the same number.
func (r *SaleRepository) NextBillNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('bill_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next bill number: %w", err)
	}
	return fmt.Sprintf("%05d", nextNum), nil
}

const saleColumns = `
	id, bill_no, client_name, COALESCE(phone_number, ''), COALESCE(description, ''),
	purchase_category, no_of_bales, weight_in_kgs, price_per_kg, discount,
	total_amount, amount_paid, remaining_amount,
	COALESCE(driver_name, ''), COALESCE(driver_phone_number, ''),
	COALESCE(vehicle_number, ''), COALESCE(location, ''), transportation_cost,
	created_at
`

func scanSale(row pgx.Row) (*models.Sale, error) {
	s := &models.Sale{}
	err := row.Scan(
		&s.ID, &s.BillNo, &s.ClientName, &s.PhoneNumber, &s.Description,
		&s.PurchaseCategory, &s.NoOfBales, &s.WeightInKgs, &s.PricePerKg, &s.Discount,
		&s.TotalAmount, &s.AmountPaid, &s.RemainingAmount,
		&s.DriverName, &s.DriverPhoneNumber, &s.VehicleNumber, &s.Location,
		&s.TransportationCost, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	query := `
		INSERT INTO sales (bill_no, client_name, phone_number, description,
			purchase_category, no_of_bales, weight_in_kgs, price_per_kg, discount,
			total_amount, amount_paid, remaining_amount, driver_name,
			driver_phone_number, vehicle_number, location, transportation_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query,
		sale.BillNo, sale.ClientName, sale.PhoneNumber, sale.Description,
		sale.PurchaseCategory, sale.NoOfBales, sale.WeightInKgs, sale.PricePerKg,
		sale.Discount, sale.TotalAmount, sale.AmountPaid, sale.RemainingAmount,
		sale.DriverName, sale.DriverPhoneNumber, sale.VehicleNumber,
		sale.Location, sale.TransportationCost,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

func (r *SaleRepository) GetByID(ctx context.Context, id int) (*models.Sale, error) {
	s, err := scanSale(r.DB.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func (r *SaleRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.Sale, error) {
	var conditions []string
	var args []interface{}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(client_name ILIKE $%d OR bill_no ILIKE $%d)", len(args), len(args)))
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

	query := `SELECT ` + saleColumns + ` FROM sales`
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

	var sales []*models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *SaleRepository) UpdatePayment(ctx context.Context, id int, newPaid, newRemaining float64) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE sales SET amount_paid = $1, remaining_amount = $2 WHERE id = $3`,
		newPaid, newRemaining, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update sale payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SaleRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary aggregates all sales for the dashboard panel.
func (r *SaleRepository) Summary(ctx context.Context) (*models.SaleSummary, error) {
	query := `
		SELECT COALESCE(SUM(weight_in_kgs), 0),
		       COALESCE(SUM(discount), 0),
		       COALESCE(SUM(amount_paid), 0),
		       COALESCE(SUM(remaining_amount), 0)
		FROM sales
	`
	s := &models.SaleSummary{}
	err := r.DB.QueryRow(ctx, query).Scan(
		&s.TotalKgsSold, &s.TotalDiscountGiven,
		&s.TotalAmountReceived, &s.TotalAmountRemaining,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sale summary: %w", err)
	}
	return s, nil
}
