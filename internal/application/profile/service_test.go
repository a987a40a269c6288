package profile

import (
	"context"
	"errors"
	"testing"

	"inaltera/ms_sionver_dashboard/internal/core/billing"
	"inaltera/ms_sionver_dashboard/internal/core/profile"
	"inaltera/ms_sionver_dashboard/internal/testutil"
)

func TestService_Update_Validation(t *testing.T) {
	tests := []struct {
		name       string
		profile    profile.Profile
		wantFields int
	}{
		{
			name:       "missing both fiscal fields",
			profile:    profile.Profile{DomicilioFiscal: "Calle Mayor 1"},
			wantFields: 2,
		},
		{
			name:       "missing NIF",
			profile:    profile.Profile{RazonSocial: "Acme SL"},
			wantFields: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			store := &testutil.MockProfileStore{
				UpdateFunc: func(ctx context.Context, p profile.Profile) error {
					called = true
					return nil
				},
			}
			service := NewService(store, testutil.NewNullLogger())

			err := service.Update(context.Background(), tt.profile)
			var verr *billing.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != tt.wantFields {
				t.Errorf("fields: got %v, want %d messages", verr.Fields, tt.wantFields)
			}
			if called {
				t.Error("backend must not be called for an invalid profile")
			}
		})
	}
}

func TestService_Update_Valid(t *testing.T) {
	var saved profile.Profile
	store := &testutil.MockProfileStore{
		UpdateFunc: func(ctx context.Context, p profile.Profile) error {
			saved = p
			return nil
		},
	}
	service := NewService(store, testutil.NewNullLogger())

	p := profile.Profile{RazonSocial: "Acme SL", NIF: "B12345678", DomicilioFiscal: "Calle Mayor 1"}
	if err := service.Update(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != p {
		t.Errorf("saved profile mismatch: %+v", saved)
	}
}

func TestService_SubscriptionStatus(t *testing.T) {
	store := &testutil.MockProfileStore{
		SubscriptionStatusFunc: func(ctx context.Context) (*profile.Subscription, error) {
			return &profile.Subscription{Active: true, Plan: "premium"}, nil
		},
	}
	service := NewService(store, testutil.NewNullLogger())

	sub, err := service.SubscriptionStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sub.Active || sub.Plan != "premium" {
		t.Errorf("unexpected subscription: %+v", sub)
	}
}
