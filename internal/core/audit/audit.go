package audit

import (
	"context"
	"time"
)

// CallRecord is one audited call to the sealing backend. Compliance products
// keep this trail: who asked for what, when, and how the backend answered.
// Headers are stored already sanitized; bodies are never persisted because
// uploads can be megabytes of PDF.
type CallRecord struct {
	ID             int64
	CorrelationID  string
	Operation      string
	RequestMethod  string
	RequestURL     string
	RequestHeaders map[string]string
	ResponseStatus *int
	DurationMs     int64
	ErrorMessage   string
	CreatedAt      time.Time
}

// Repository persists and retrieves the backend call trail.
type Repository interface {
	// Save persists one call record.
	Save(ctx context.Context, record CallRecord) error

	// FindByCorrelationID returns every record for one inbound request,
	// oldest first.
	FindByCorrelationID(ctx context.Context, correlationID string) ([]CallRecord, error)
}
