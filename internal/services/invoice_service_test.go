package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asiaagro/silage-backend/internal/models"
)

func sampleSale() *models.Sale {
	return &models.Sale{
		ID:               1,
		BillNo:           "00042",
		ClientName:       "ALI TRADERS",
		PhoneNumber:      "0300 1234567",
		PurchaseCategory: "silage",
		NoOfBales:        120,
		WeightInKgs:      6000,
		PricePerKg:       32,
		Discount:         2000,
		TotalAmount:      190000,
		AmountPaid:       150000,
		RemainingAmount:  40000,
		DriverName:       "RASHID",
		VehicleNumber:    "LEB-1234",
		Location:         "SHEIKHUPURA",
		CreatedAt:        time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderInvoice(t *testing.T) {
	svc := NewInvoiceService()

	pdf, filename, err := svc.Render(sampleSale())
	require.NoError(t, err)

	assert.Equal(t, "Bill00042_ALI_TRADERS.pdf", filename)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestInvoiceFilename(t *testing.T) {
	sale := sampleSale()
	assert.Equal(t, "Bill00042_ALI_TRADERS.pdf", invoiceFilename(sale))

	sale.ClientName = ""
	assert.Equal(t, "Bill00042_CLIENT.pdf", invoiceFilename(sale))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"clientName": "Client name is required",
		"discount":   "Discount cannot exceed gross total",
	}}
	assert.Equal(t,
		"validation failed: clientName: Client name is required; discount: Discount cannot exceed gross total",
		err.Error())
}

func TestNumFormatting(t *testing.T) {
	assert.Equal(t, "0", num(0))
	assert.Equal(t, "2.5", num(2.5))
	assert.Equal(t, "100", num(100))
}
