package testutil

import (
	"context"

	"inaltera/ms_sionver_dashboard/internal/core/catalog"
	"inaltera/ms_sionver_dashboard/internal/core/profile"
)

// MockCatalog is a mock implementation of catalog.Reader for testing.
type MockCatalog struct {
	ClientsFunc  func(ctx context.Context) ([]catalog.Client, error)
	ProductsFunc func(ctx context.Context) ([]catalog.Product, error)
}

// Clients calls the mock function if set, otherwise returns an empty slice.
func (m *MockCatalog) Clients(ctx context.Context) ([]catalog.Client, error) {
	if m.ClientsFunc != nil {
		return m.ClientsFunc(ctx)
	}
	return []catalog.Client{}, nil
}

// Products calls the mock function if set, otherwise returns an empty slice.
func (m *MockCatalog) Products(ctx context.Context) ([]catalog.Product, error) {
	if m.ProductsFunc != nil {
		return m.ProductsFunc(ctx)
	}
	return []catalog.Product{}, nil
}

var _ catalog.Reader = (*MockCatalog)(nil)

// MockProfileStore is a mock implementation of profile.Store for testing.
type MockProfileStore struct {
	GetFunc                func(ctx context.Context) (*profile.Profile, error)
	UpdateFunc             func(ctx context.Context, p profile.Profile) error
	SubscriptionStatusFunc func(ctx context.Context) (*profile.Subscription, error)
}

// Get calls the mock function if set, otherwise returns an empty profile.
func (m *MockProfileStore) Get(ctx context.Context) (*profile.Profile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return &profile.Profile{}, nil
}

// Update calls the mock function if set, otherwise succeeds.
func (m *MockProfileStore) Update(ctx context.Context, p profile.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

// SubscriptionStatus calls the mock function if set, otherwise reports active.
func (m *MockProfileStore) SubscriptionStatus(ctx context.Context) (*profile.Subscription, error) {
	if m.SubscriptionStatusFunc != nil {
		return m.SubscriptionStatusFunc(ctx)
	}
	return &profile.Subscription{Active: true}, nil
}

var _ profile.Store = (*MockProfileStore)(nil)
