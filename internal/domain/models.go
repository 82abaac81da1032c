// Package domain provides core domain models and types shared across modules.
package domain

import "time"

// Position represents a single purchased, not-yet-sold holding.
// Every purchase event is its own record; positions with the same symbol
// are never merged.
type Position struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	AssetType     string    `json:"type"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"` // fixed at entry time, never mutated
	CurrentPrice  float64   `json:"current_price"`  // live feed, falls back to PurchasePrice
	CreatedAt     time.Time `json:"created_at"`
}

// CostBasis is the amount paid at acquisition. It depends only on fields
// fixed at entry time, so it is stable across price refreshes.
func (p Position) CostBasis() float64 {
	return p.Quantity * p.PurchasePrice
}

// Value is the position's current market value.
func (p Position) Value() float64 {
	return p.Quantity * p.CurrentPrice
}

// UnrealizedPnL is the paper gain or loss against cost basis.
func (p Position) UnrealizedPnL() float64 {
	return p.Value() - p.CostBasis()
}

// UnrealizedPnLPercent returns the unrealized gain as a percentage of cost
// basis, or 0 when the cost basis is zero.
func (p Position) UnrealizedPnLPercent() float64 {
	cb := p.CostBasis()
	if cb <= 0 {
		return 0
	}
	return p.UnrealizedPnL() / cb * 100
}

// ClosedTransaction is the immutable record of a sale. It is created when a
// position is closed and is never updated or deleted afterwards.
type ClosedTransaction struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	AssetID            string    `json:"asset_id"` // the position this closed
	Symbol             string    `json:"symbol"`
	Name               string    `json:"name"`
	AssetType          string    `json:"type"`
	Quantity           float64   `json:"quantity"`
	PurchasePrice      float64   `json:"purchase_price"`
	SalePrice          float64   `json:"sale_price"`
	TotalCost          float64   `json:"total_cost"`
	TotalRevenue       float64   `json:"total_revenue"`
	RealizedPnL        float64   `json:"profit_loss"`
	RealizedPnLPercent float64   `json:"profit_loss_percent"`
	PurchaseDate       time.Time `json:"purchase_date"`
	SaleDate           time.Time `json:"sale_date"`
}

// CashSchedule describes an account's contribution plan: a lump sum at
// account creation plus a recurring monthly contribution on the 1st of each
// qualifying month.
type CashSchedule struct {
	CreatedAt         time.Time `json:"created_at"`
	InitialInvestment float64   `json:"initial_investment"`
	MonthlyBudget     float64   `json:"monthly_budget"`
}
