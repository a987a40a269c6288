package registry

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes documents the user composed here from third-party PDFs
// that were uploaded for sealing. Wire values match the backend listing.
type Kind string

const (
	KindIssued   Kind = "Emitida"
	KindUploaded Kind = "Subida"
)

// Status is the backend-authoritative processing state of a registry entry.
// The client never transitions it locally.
type Status string

const (
	StatusRegistered Status = "Registrada"
	StatusPending    Status = "Pendiente"
	StatusError      Status = "Error"
)

// Entry is one sealed document in the backend-owned registry. Entries are
// read from the backend and never constructed locally.
type Entry struct {
	ID               string          `json:"id"`
	Date             time.Time       `json:"fecha"`
	Kind             Kind            `json:"tipo"`
	Number           string          `json:"numero"`
	CounterpartyName string          `json:"cliente"`
	TotalAmount      decimal.Decimal `json:"total"`
	Status           Status          `json:"estado"`
}
