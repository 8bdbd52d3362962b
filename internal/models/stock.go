package models

import "time"

// StockIn is a silage or packaging purchase received into the yard.
// GrossTotal, NetTotal and RemainingAmount are derived by the ledger
// engine on every write, never accepted from the client.
type StockIn struct {
	ID              int       `json:"id"`
	ClientName      string    `json:"clientName"`
	Description     string    `json:"description"`
	Category        string    `json:"category"` // silage | silageFilm | stretch | giftoNaturalRoll
	WeightPerKg     float64   `json:"weightPerKg"`
	PricePerKg      float64   `json:"pricePerKg"`
	Discount        float64   `json:"discount"`
	GrossTotal      float64   `json:"grossTotal"`
	NetTotal        float64   `json:"netTotal"`
	AmountPaid      float64   `json:"amountPaid"`
	RemainingAmount float64   `json:"remainingAmount"`
	DriverName      string    `json:"driverName"`
	VehicleNumber   string    `json:"vehicleNumber"`
	ScheduledDate   string    `json:"scheduledDate"` // PKT date, YYYY-MM-DD
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateStockInRequest struct {
	ClientName    string  `json:"clientName"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	WeightPerKg   float64 `json:"weightPerKg"`
	PricePerKg    float64 `json:"pricePerKg"`
	Discount      float64 `json:"discount"`
	AmountPaid    float64 `json:"amountPaid"`
	DriverName    string  `json:"driverName"`
	VehicleNumber string  `json:"vehicleNumber"`
	ScheduledDate string  `json:"scheduledDate"`
}

// UpdateStockInRequest is the sparse amendment payload: only changed text
// fields are present and AddPayment is an increment, not a new total.
type UpdateStockInRequest struct {
	ClientName  *string  `json:"clientName,omitempty"`
	Description *string  `json:"description,omitempty"`
	AddPayment  *float64 `json:"amountPaid,omitempty"`
}

// StockSummaryRow aggregates purchases per category for the dashboard.
type StockSummaryRow struct {
	Category             string  `json:"category"`
	TotalKgsBought       float64 `json:"totalKgsBought"`
	TotalAmountPaid      float64 `json:"totalAmountPaid"`
	TotalRemainingAmount float64 `json:"totalRemainingAmount"`
}

// AvailableStockRow is per-category stock on hand: received minus issued.
type AvailableStockRow struct {
	Category            string  `json:"category"`
	TotalStockAvailable float64 `json:"totalStockAvailable"`
}
