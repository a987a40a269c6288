package testutil

import (
	"context"

	"inaltera/ms_sionver_dashboard/internal/core/registry"
	"inaltera/ms_sionver_dashboard/internal/core/sealing"
)

// MockSealer is a mock implementation of sealing.Sealer for testing.
type MockSealer struct {
	EmitInvoiceFunc  func(ctx context.Context, emission sealing.Emission) (*sealing.Receipt, error)
	SealPDFFunc      func(ctx context.Context, upload sealing.Upload) (*sealing.Receipt, error)
	ListRegistryFunc func(ctx context.Context, listing sealing.Listing) ([]registry.Entry, error)
}

// EmitInvoice calls the mock function if set, otherwise returns a registered receipt.
func (m *MockSealer) EmitInvoice(ctx context.Context, emission sealing.Emission) (*sealing.Receipt, error) {
	if m.EmitInvoiceFunc != nil {
		return m.EmitInvoiceFunc(ctx, emission)
	}
	return &sealing.Receipt{DocumentID: "mock-doc", Status: registry.StatusRegistered}, nil
}

// SealPDF calls the mock function if set, otherwise returns a registered receipt.
func (m *MockSealer) SealPDF(ctx context.Context, upload sealing.Upload) (*sealing.Receipt, error) {
	if m.SealPDFFunc != nil {
		return m.SealPDFFunc(ctx, upload)
	}
	return &sealing.Receipt{DocumentID: "mock-doc", Status: registry.StatusRegistered}, nil
}

// ListRegistry calls the mock function if set, otherwise returns an empty slice.
func (m *MockSealer) ListRegistry(ctx context.Context, listing sealing.Listing) ([]registry.Entry, error) {
	if m.ListRegistryFunc != nil {
		return m.ListRegistryFunc(ctx, listing)
	}
	return []registry.Entry{}, nil
}

// Ensure MockSealer implements sealing.Sealer interface.
var _ sealing.Sealer = (*MockSealer)(nil)
