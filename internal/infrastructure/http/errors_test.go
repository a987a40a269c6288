package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		message    string
		errs       []string
	}{
		{
			name:       "validation error with details",
			statusCode: http.StatusBadRequest,
			message:    "Error de Validación",
			errs:       []string{"Selecciona un cliente"},
		},
		{
			name:       "unauthorized without details",
			statusCode: http.StatusUnauthorized,
			message:    "Error de Autenticación",
			errs:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.statusCode, tt.message, tt.errs, nil)

			if w.Code != tt.statusCode {
				t.Errorf("status: got %d, want %d", w.Code, tt.statusCode)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type: got %q", ct)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Message != tt.message {
				t.Errorf("message: got %q, want %q", resp.Message, tt.message)
			}
			if len(resp.Errors) != len(tt.errs) {
				t.Errorf("errors: got %v, want %v", resp.Errors, tt.errs)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"id": "doc-1"}, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusCreated)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["id"] != "doc-1" {
		t.Fatalf("payload: got %v", resp)
	}
}
