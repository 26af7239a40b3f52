package models

import "time"

// Service is a bookable offering; Duration is in minutes.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration"`
	State       Lifecycle `json:"state"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Product is retail stock sold alongside services.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	State       Lifecycle `json:"state"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PriceChange is one row of the dedicated price-history ledger, kept separate
// from the per-entity field change log.
type PriceChange struct {
	EntityID  string    `json:"entityId"`
	OldPrice  float64   `json:"oldPrice"`
	NewPrice  float64   `json:"newPrice"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}
