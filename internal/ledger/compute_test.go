package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeStockIn(t *testing.T) {
	fields := Fields{
		"clientName":    "ALI TRADERS",
		"category":      "silage",
		"scheduledDate": "2025-11-02",
		"weightPerKg":   "100",
		"pricePerKg":    "50",
		"discount":      "200",
		"amountPaid":    "4000",
	}

	d, errs := Recompute(StockIn, fields)

	require.True(t, errs.OK(), "expected no validation errors, got %v", errs)
	assert.Equal(t, 5000.00, d.GrossTotal)
	assert.Equal(t, 200.00, d.Discount)
	assert.Equal(t, 4800.00, d.NetTotal)
	assert.Equal(t, 4000.00, d.AmountPaid)
	assert.Equal(t, 800.00, d.RemainingAmount)
	assert.Equal(t, "5000.00", d.GrossTotalDisplay)
	assert.Equal(t, "800.00", d.RemainingAmountDisplay)
}

func TestRecomputeOverDiscountClamps(t *testing.T) {
	d, errs := Recompute(StockIn, Fields{
		"clientName":    "X",
		"category":      "silage",
		"scheduledDate": "2025-11-02",
		"weightPerKg":   "10",
		"pricePerKg":    "10",
		"discount":      "500",
	})

	assert.Equal(t, 100.00, d.GrossTotal)
	assert.Equal(t, "Discount cannot exceed gross total", errs["discount"])
	// Computation proceeds on the clamped discount, never negative.
	assert.Equal(t, 100.00, d.Discount)
	assert.Equal(t, 0.00, d.NetTotal)
	assert.Equal(t, 0.00, d.RemainingAmount)
}

func TestRecomputeOverpaidClamps(t *testing.T) {
	d, errs := Recompute(BunkerPurchase, Fields{
		"quantity":   "10",
		"price":      "10",
		"discount":   "20",
		"amountPaid": "500",
	})

	assert.Equal(t, 100.00, d.GrossTotal)
	assert.Equal(t, 80.00, d.NetTotal)
	assert.Equal(t, "Amount paid cannot exceed net total", errs["amountPaid"])
	assert.Equal(t, 80.00, d.AmountPaid)
	assert.Equal(t, 0.00, d.RemainingAmount)
}

func TestRecomputeNegativeInputs(t *testing.T) {
	_, errs := Recompute(StockIn, Fields{
		"clientName":    "X",
		"category":      "silage",
		"scheduledDate": "2025-11-02",
		"weightPerKg":   "-1",
		"pricePerKg":    "-2",
		"discount":      "-3",
		"amountPaid":    "-4",
	})

	assert.Equal(t, "Weight cannot be negative", errs["weightPerKg"])
	assert.Equal(t, "Price cannot be negative", errs["pricePerKg"])
	assert.Equal(t, "Discount cannot be negative", errs["discount"])
	assert.Equal(t, "Amount paid cannot be negative", errs["amountPaid"])
}

func TestRecomputeRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		fields Fields
		field  string
		want   string
	}{
		{"missing client name", StockIn, Fields{"category": "silage", "scheduledDate": "2025-11-02"}, "clientName", "Client name is required"},
		{"missing category", StockIn, Fields{"clientName": "X", "scheduledDate": "2025-11-02"}, "category", "Category is required"},
		{"invalid category", StockIn, Fields{"clientName": "X", "category": "cement", "scheduledDate": "2025-11-02"}, "category", "Category is invalid"},
		{"missing date", StockIn, Fields{"clientName": "X", "category": "silage"}, "scheduledDate", "Date is required"},
		{"silage not issuable", StockOut, Fields{"personName": "X", "category": "silage", "quantity": "1", "date": "2025-11-02"}, "category", "Category is invalid"},
		{"missing person", StockOut, Fields{"category": "stretch", "quantity": "1", "date": "2025-11-02"}, "personName", "Name is required"},
		{"missing customer", BunkerSale, Fields{"kgsSold": "1", "price": "1"}, "customerName", "Customer name is required"},
		{"missing expense name", BunkerExpense, Fields{"amount": "100"}, "name", "Name is required"},
		{"missing expense category", Expense, Fields{"description": "diesel", "amount": "100"}, "expenseCategory", "Category is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Recompute(tt.kind, tt.fields)
			assert.Equal(t, tt.want, errs[tt.field])
		})
	}
}

func TestRecomputeMissingRequiredStillDerives(t *testing.T) {
	// Absence of required text fields must not block numeric derivation.
	d, errs := Recompute(StockIn, Fields{
		"weightPerKg": "4",
		"pricePerKg":  "25",
	})

	assert.False(t, errs.OK())
	assert.Equal(t, 100.00, d.GrossTotal)
	assert.Equal(t, 100.00, d.NetTotal)
	assert.Equal(t, 100.00, d.RemainingAmount)
}

func TestRecomputeQuantityPositiveKinds(t *testing.T) {
	_, errs := Recompute(StockOut, Fields{
		"personName": "BILAL",
		"category":   "stretch",
		"date":       "2025-11-02",
		"quantity":   "0",
	})
	assert.Equal(t, "Quantity must be greater than 0", errs["quantity"])

	_, errs = Recompute(SparePart, Fields{"name": "BEARING"})
	assert.Equal(t, "Quantity is required", errs["quantity"])
}

func TestRecomputeDirectAmountKinds(t *testing.T) {
	d, errs := Recompute(BunkerExpense, Fields{
		"name":       "DIESEL",
		"amount":     "1500",
		"amountPaid": "1000",
	})

	require.True(t, errs.OK(), "unexpected errors: %v", errs)
	assert.Equal(t, 1500.00, d.GrossTotal)
	assert.Equal(t, 1500.00, d.NetTotal)
	assert.Equal(t, 500.00, d.RemainingAmount)
}

func TestRecomputeUnsetAndGarbageReadAsZero(t *testing.T) {
	d, _ := Recompute(BunkerPurchase, Fields{
		"quantity": "abc",
		"price":    "",
	})
	assert.Equal(t, 0.00, d.GrossTotal)
	assert.Equal(t, 0.00, d.NetTotal)
	assert.Equal(t, 0.00, d.RemainingAmount)
}

func TestRecomputeIdempotent(t *testing.T) {
	fields := Fields{
		"clientName":    "ALI TRADERS",
		"category":      "silage",
		"scheduledDate": "2025-11-02",
		"weightPerKg":   "33.33",
		"pricePerKg":    "7.77",
		"discount":      "12.5",
		"amountPaid":    "100",
	}

	d1, e1 := Recompute(StockIn, fields)
	d2, e2 := Recompute(StockIn, fields)

	assert.Equal(t, d1, d2)
	assert.Equal(t, e1, e2)
}

func TestRecomputeInvariants(t *testing.T) {
	// Derived totals stay in range for a spread of raw inputs, including
	// values that individually violate the field rules.
	cases := []Fields{
		{"quantity": "0", "price": "0", "discount": "0", "amountPaid": "0"},
		{"quantity": "1", "price": "1", "discount": "5", "amountPaid": "5"},
		{"quantity": "250.5", "price": "3.2", "discount": "100", "amountPaid": "1000"},
		{"quantity": "-5", "price": "10", "discount": "-1", "amountPaid": "-1"},
		{"quantity": "1000000", "price": "0.01", "discount": "9999", "amountPaid": "1"},
	}

	for _, fields := range cases {
		d, _ := Recompute(BunkerPurchase, fields)
		assert.GreaterOrEqual(t, d.GrossTotal, 0.0)
		assert.GreaterOrEqual(t, d.NetTotal, 0.0)
		assert.GreaterOrEqual(t, d.RemainingAmount, 0.0)
		assert.LessOrEqual(t, d.Discount, d.GrossTotal)
		assert.LessOrEqual(t, d.AmountPaid, d.NetTotal)
		assert.InDelta(t, d.GrossTotal-d.Discount, d.NetTotal, 0.01)
		assert.InDelta(t, d.NetTotal-d.AmountPaid, d.RemainingAmount, 0.01)
	}
}

func TestRecomputeRounding(t *testing.T) {
	d, _ := Recompute(BunkerPurchase, Fields{
		"quantity": "4",
		"price":    "2.5024",
	})

	// 4 x 2.5024 = 10.0096, normalized to two decimals once at the end.
	assert.Equal(t, 10.01, d.GrossTotal)
	assert.Equal(t, "10.01", d.GrossTotalDisplay)
}

func TestRecomputeUnknownKind(t *testing.T) {
	_, errs := Recompute(Kind(99), Fields{})
	assert.False(t, errs.OK())
}
