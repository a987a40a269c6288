package inaltera

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"inaltera/ms_sionver_dashboard/internal/core/registry"
	"inaltera/ms_sionver_dashboard/internal/core/sealing"
)

// receiptResponse is the backend's answer for a sealed document.
type receiptResponse struct {
	ID     string `json:"id"`
	Estado string `json:"estado"`
}

func (r receiptResponse) toReceipt() *sealing.Receipt {
	return &sealing.Receipt{
		DocumentID: r.ID,
		Status:     registry.Status(r.Estado),
	}
}

// registryEntryResponse is one row of the backend registry listing.
type registryEntryResponse struct {
	ID      string          `json:"id"`
	Fecha   string          `json:"fecha"`
	Tipo    string          `json:"tipo"`
	Numero  string          `json:"numero"`
	Cliente string          `json:"cliente"`
	Total   decimal.Decimal `json:"total"`
	Estado  string          `json:"estado"`
}

// entryDateLayouts are the date formats the backend has been observed to
// emit for registry rows.
var entryDateLayouts = []string{"2006-01-02", time.RFC3339}

func (r registryEntryResponse) toEntry() (registry.Entry, error) {
	var date time.Time
	var err error
	for _, layout := range entryDateLayouts {
		date, err = time.Parse(layout, r.Fecha)
		if err == nil {
			break
		}
	}
	if err != nil {
		return registry.Entry{}, fmt.Errorf("parse entry date %q: %w", r.Fecha, err)
	}

	return registry.Entry{
		ID:               r.ID,
		Date:             date,
		Kind:             registry.Kind(r.Tipo),
		Number:           r.Numero,
		CounterpartyName: r.Cliente,
		TotalAmount:      r.Total,
		Status:           registry.Status(r.Estado),
	}, nil
}

// errorResponse is the backend's error envelope.
type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// subscriptionResponse is the backend's subscription status payload.
type subscriptionResponse struct {
	Active bool   `json:"active"`
	Plan   string `json:"plan"`
}
