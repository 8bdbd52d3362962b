package models

import "time"

// SparePart is a machinery spare-part inventory line.
type SparePart struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateSparePartRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

type UpdateSparePartRequest struct {
	Quantity float64 `json:"quantity"`
}
