package model

import "time"

// Holding is one user-entered position in the ledger.
type Holding struct {
	ID          string    `json:"id"`
	AssetID     string    `json:"asset_id"` // market-data source identifier, e.g. "bitcoin"
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Quantity    float64   `json:"quantity"`
	AvgBuyPrice float64   `json:"avg_buy_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ledger is the persisted set of holdings.
type Ledger struct {
	Holdings  []Holding `json:"holdings"`
	UpdatedAt time.Time `json:"updated_at"`
}
