package postgres

import (
	"encoding/json"
	"testing"
	"time"

	"inaltera/ms_sionver_dashboard/internal/core/audit"
)

// The repository itself needs a live PostgreSQL pool; these tests cover the
// pieces that do not: interface conformance and record serialization.

func TestRepositoryImplementsInterface(t *testing.T) {
	var _ audit.Repository = (*Repository)(nil)
}

func TestCallRecordHeaderSerialization(t *testing.T) {
	status := 200
	record := audit.CallRecord{
		CorrelationID: "req-123",
		Operation:     "emit_invoice",
		RequestMethod: "POST",
		RequestURL:    "https://api.inaltera.es/sionver/factura/emitir",
		RequestHeaders: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "[REDACTED]",
		},
		ResponseStatus: &status,
		DurationMs:     150,
		CreatedAt:      time.Now().UTC(),
	}

	headersJSON, err := json.Marshal(record.RequestHeaders)
	if err != nil {
		t.Fatalf("marshal headers: %v", err)
	}

	var headers map[string]string
	if err := json.Unmarshal(headersJSON, &headers); err != nil {
		t.Fatalf("unmarshal headers: %v", err)
	}
	if headers["Authorization"] != "[REDACTED]" {
		t.Error("redacted header value lost in round trip")
	}
	if headers["Content-Type"] != "application/json" {
		t.Error("header value lost in round trip")
	}
}

func TestCallRecordNilHandling(t *testing.T) {
	record := audit.CallRecord{
		CorrelationID: "req-456",
		Operation:     "list_registry",
		RequestMethod: "GET",
		RequestURL:    "https://api.inaltera.es/sionver/registro/listado",
	}

	if record.ResponseStatus != nil {
		t.Error("expected nil response status for a failed call")
	}

	headersJSON, err := json.Marshal(record.RequestHeaders)
	if err != nil {
		t.Fatalf("marshal nil headers: %v", err)
	}
	if string(headersJSON) != "null" {
		t.Errorf("nil headers: got %s", headersJSON)
	}
}
