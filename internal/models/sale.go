package models

import "time"

// Sale is a client silage sale with the metadata the printed invoice
// carries. Monetary totals are derived server-side by the ledger engine.
type Sale struct {
	ID                 int       `json:"id"`
	BillNo             string    `json:"billNo"`
	ClientName         string    `json:"clientName"`
	PhoneNumber        string    `json:"phoneNumber"`
	Description        string    `json:"description"`
	PurchaseCategory   string    `json:"purchaseCategory"` // always silage
	NoOfBales          int       `json:"noOfBales"`
	WeightInKgs        float64   `json:"weightinKgs"`
	PricePerKg         float64   `json:"pricePerKg"`
	Discount           float64   `json:"discount"`
	TotalAmount        float64   `json:"totalAmount"`
	AmountPaid         float64   `json:"amountPaid"`
	RemainingAmount    float64   `json:"remainingAmount"`
	DriverName         string    `json:"driverName"`
	DriverPhoneNumber  string    `json:"driverPhoneNumber"`
	VehicleNumber      string    `json:"vehicleNumber"`
	Location           string    `json:"location"`
	TransportationCost float64   `json:"transportationCost"`
	CreatedAt          time.Time `json:"createdAt"`
}

type CreateSaleRequest struct {
	BillNo             string  `json:"billNo"`
	ClientName         string  `json:"clientName"`
	PhoneNumber        string  `json:"phoneNumber"`
	Description        string  `json:"description"`
	NoOfBales          int     `json:"noOfBales"`
	WeightInKgs        float64 `json:"weightinKgs"`
	PricePerKg         float64 `json:"pricePerKg"`
	Discount           float64 `json:"discount"`
	AmountPaid         float64 `json:"amountPaid"`
	DriverName         string  `json:"driverName"`
	DriverPhoneNumber  string  `json:"driverPhoneNumber"`
	VehicleNumber      string  `json:"vehicleNumber"`
	Location           string  `json:"location"`
	TransportationCost float64 `json:"transportationCost"`
}

// SaleSummary feeds the dashboard sales panel.
type SaleSummary struct {
	TotalKgsSold         float64 `json:"totalKgsSold"`
	TotalDiscountGiven   float64 `json:"totalDiscountGiven"`
	TotalAmountReceived  float64 `json:"totalAmountReceived"`
	TotalAmountRemaining float64 `json:"totalAmountRemaining"`
}
