package models

import "time"

// Bunker is a named storage and accounting unit. Silage purchases, sales
// and expenses are recorded against one bunker.
type Bunker struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateBunkerRequest struct {
	Name string `json:"name"`
}

type BunkerPurchase struct {
	ID              int       `json:"id"`
	BunkerID        int       `json:"bunker"`
	Quantity        float64   `json:"quantity"`
	Price           float64   `json:"price"`
	Discount        float64   `json:"discount"`
	TotalAmount     float64   `json:"totalAmount"`
	AmountPaid      float64   `json:"amountPaid"`
	RemainingAmount float64   `json:"remainingAmount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateBunkerPurchaseRequest struct {
	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`
	Discount   float64 `json:"discount"`
	AmountPaid float64 `json:"amountPaid"`
}

type BunkerSale struct {
	ID              int       `json:"id"`
	BunkerID        int       `json:"bunker"`
	CustomerName    string    `json:"customerName"`
	KgsSold         float64   `json:"kgsSold"`
	Price           float64   `json:"price"`
	Discount        float64   `json:"discount"`
	TotalAmount     float64   `json:"totalAmount"`
	AmountPaid      float64   `json:"amountPaid"`
	RemainingAmount float64   `json:"remainingAmount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateBunkerSaleRequest struct {
	CustomerName string  `json:"customerName"`
	KgsSold      float64 `json:"kgsSold"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	AmountPaid   float64 `json:"amountPaid"`
}

type BunkerExpense struct {
	ID              int       `json:"id"`
	BunkerID        int       `json:"bunker"`
	Name            string    `json:"name"`
	Amount          float64   `json:"amount"`
	AmountPaid      float64   `json:"amountPaid"`
	RemainingAmount float64   `json:"remainingAmount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateBunkerExpenseRequest struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	AmountPaid float64 `json:"amountPaid"`
}

// AddPaymentRequest carries the incremental payment applied to an existing
// record. The amount is a delta added to the stored paid total.
type AddPaymentRequest struct {
	AmountPaid float64 `json:"amountPaid"`
}

// BunkerTotals summarizes one bunker's three ledgers for the listing page.
type BunkerTotals struct {
	BunkerID       int     `json:"bunker"`
	KgsBought      float64 `json:"kgsBought"`
	KgsSold        float64 `json:"kgsSold"`
	PurchaseSpend  float64 `json:"purchaseSpend"`
	SaleReceipts   float64 `json:"saleReceipts"`
	ExpenseSpend   float64 `json:"expenseSpend"`
	TotalRemaining float64 `json:"totalRemaining"`
}
