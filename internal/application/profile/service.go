package profile

import (
	"context"
	"fmt"
	"log/slog"

	"inaltera/ms_sionver_dashboard/internal/core/billing"
	"inaltera/ms_sionver_dashboard/internal/core/profile"
)

// Service exposes the company profile and subscription use cases. The data
// is backend-owned; this layer only enforces presence of the fiscal fields
// before an update reaches the wire.
type Service struct {
	store profile.Store
	log   *slog.Logger
}

func NewService(store profile.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Get returns the authenticated company's fiscal profile.
func (s *Service) Get(ctx context.Context) (*profile.Profile, error) {
	p, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update validates and persists the fiscal profile.
func (s *Service) Update(ctx context.Context, p profile.Profile) error {
	var fields []string
	if p.RazonSocial == "" {
		fields = append(fields, "La razón social es obligatoria")
	}
	if p.NIF == "" {
		fields = append(fields, "El NIF es obligatorio")
	}
	if len(fields) > 0 {
		return &billing.ValidationError{Fields: fields}
	}

	if err := s.store.Update(ctx, p); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	s.log.Info("profile updated", "nif", p.NIF)
	return nil
}

// SubscriptionStatus returns the backend-reported subscription state.
func (s *Service) SubscriptionStatus(ctx context.Context) (*profile.Subscription, error) {
	sub, err := s.store.SubscriptionStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscription status: %w", err)
	}
	return sub, nil
}
