package session

import (
	"context"
	"errors"
	"testing"
)

func TestCredentialRoundTrip(t *testing.T) {
	ctx := WithCredential(context.Background(), "token-123")

	token, err := Credential(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token-123" {
		t.Errorf("got %q, want %q", token, "token-123")
	}
}

func TestCredentialMissing(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"empty context", context.Background()},
		{"empty credential", WithCredential(context.Background(), "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Credential(tt.ctx); !errors.Is(err, ErrNoCredential) {
				t.Fatalf("expected ErrNoCredential, got %v", err)
			}
		})
	}
}

func TestSubject(t *testing.T) {
	if got := Subject(context.Background()); got != "" {
		t.Fatalf("expected empty subject, got %q", got)
	}

	ctx := WithSubject(context.Background(), "user-1")
	if got := Subject(ctx); got != "user-1" {
		t.Fatalf("got %q, want %q", got, "user-1")
	}
}
