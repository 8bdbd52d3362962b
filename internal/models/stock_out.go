package models

import "time"

// StockOut records packaging material issued from the yard. Raw silage
// never leaves through this form, only through bunker and client sales.
type StockOut struct {
	ID         int       `json:"id"`
	PersonName string    `json:"personName"`
	Category   string    `json:"category"` // silageFilm | stretch | giftoNaturalRoll
	Quantity   float64   `json:"quantity"`
	Date       string    `json:"date"` // PKT date, YYYY-MM-DD
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateStockOutRequest struct {
	PersonName string  `json:"personName"`
	Category   string  `json:"category"`
	Quantity   float64 `json:"quantity"`
	Date       string  `json:"date"`
}
