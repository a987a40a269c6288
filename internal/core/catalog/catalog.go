package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Client is a billable counterparty from the company's catalog.
type Client struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
	NIF  string `json:"nif"`
}

// Product is a catalog product or service with its list price.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"nombre"`
	UnitPrice decimal.Decimal `json:"precio"`
}

// Reader is the read-only port over the company catalog. The catalog is
// backend-owned reference data: one HTTP implementation in production, an
// in-memory fake in tests.
type Reader interface {
	// Clients returns the selectable clients for the authenticated company.
	Clients(ctx context.Context) ([]Client, error)
	// Products returns the selectable products for the authenticated company.
	Products(ctx context.Context) ([]Product, error)
}
