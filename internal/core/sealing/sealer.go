package sealing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"inaltera/ms_sionver_dashboard/internal/core/billing"
	"inaltera/ms_sionver_dashboard/internal/core/registry"
)

// LineItem is one invoice line as submitted to the sealing backend.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     int64           `json:"taxRate"`
}

// Emission is the compose-path submission payload: a validated draft frozen
// at submit time.
type Emission struct {
	ClientRef string     `json:"clientRef"`
	Lines     []LineItem `json:"lines"`
	Notes     string     `json:"notes,omitempty"`
}

// NewEmission freezes a draft snapshot into a submission payload.
func NewEmission(snap billing.Snapshot) Emission {
	lines := make([]LineItem, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		lines = append(lines, LineItem{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TaxRate:     int64(line.TaxRate),
		})
	}
	return Emission{ClientRef: snap.ClientRef, Lines: lines, Notes: snap.Notes}
}

// Receipt is what the backend returns for a successfully sealed document.
type Receipt struct {
	DocumentID string          `json:"id"`
	Status     registry.Status `json:"estado"`
}

// Listing carries the server-side filters for a registry fetch. The backend
// filters when it can; the local query engine re-applies the same predicates
// so an unfiltered or mocked set behaves identically.
type Listing struct {
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Sealer is the port over the remote cryptographic-sealing backend. The
// sealing algorithm, storage schema and fiscal validation all live behind
// it; this core only consumes the contract. Every call requires a session
// credential in the context and fails fast without one.
type Sealer interface {
	// EmitInvoice submits a composed invoice for sealing and registration.
	EmitInvoice(ctx context.Context, emission Emission) (*Receipt, error)
	// SealPDF submits an uploaded third-party PDF for sealing.
	SealPDF(ctx context.Context, upload Upload) (*Receipt, error)
	// ListRegistry returns the registry entries matching the listing filters.
	ListRegistry(ctx context.Context, listing Listing) ([]registry.Entry, error)
}

// BackendError is a non-2xx answer from the sealing backend. Its message is
// surfaced to the user verbatim.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("sealing backend returned %d: %s", e.StatusCode, e.Message)
}
