package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	corecatalog "inaltera/ms_sionver_dashboard/internal/core/catalog"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/session"
	"inaltera/ms_sionver_dashboard/internal/testutil"
)

func sessionContext(subject string) context.Context {
	return session.WithSubject(context.Background(), subject)
}

func TestService_Clients_CachesPerSubject(t *testing.T) {
	calls := 0
	reader := &testutil.MockCatalog{
		ClientsFunc: func(ctx context.Context) ([]corecatalog.Client, error) {
			calls++
			return []corecatalog.Client{{ID: "c1", Name: "Acme SL", NIF: "B12345678"}}, nil
		},
	}
	service := NewService(reader, time.Minute, testutil.NewNullLogger())

	ctx := sessionContext("user-1")
	for i := 0; i < 3; i++ {
		clients, err := service.Clients(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(clients) != 1 || clients[0].ID != "c1" {
			t.Fatalf("unexpected clients: %v", clients)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 backend call, got %d", calls)
	}

	// A different subject must not share the cache entry.
	if _, err := service.Clients(sessionContext("user-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 backend calls after second subject, got %d", calls)
	}
}

func TestService_Clients_ErrorNotCached(t *testing.T) {
	calls := 0
	reader := &testutil.MockCatalog{
		ClientsFunc: func(ctx context.Context) ([]corecatalog.Client, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("backend down")
			}
			return []corecatalog.Client{{ID: "c1"}}, nil
		},
	}
	service := NewService(reader, time.Minute, testutil.NewNullLogger())
	ctx := sessionContext("user-1")

	if _, err := service.Clients(ctx); err == nil {
		t.Fatal("expected error on first call")
	}
	clients, err := service.Clients(ctx)
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("unexpected clients: %v", clients)
	}
}

func TestService_FindProduct(t *testing.T) {
	reader := &testutil.MockCatalog{
		ProductsFunc: func(ctx context.Context) ([]corecatalog.Product, error) {
			return []corecatalog.Product{
				{ID: "p1", Name: "Consultoría", UnitPrice: decimal.RequireFromString("80.00")},
				{ID: "p2", Name: "Desarrollo web", UnitPrice: decimal.RequireFromString("55.50")},
			}, nil
		},
	}
	service := NewService(reader, time.Minute, testutil.NewNullLogger())
	ctx := sessionContext("user-1")

	product, found, err := service.FindProduct(ctx, "p2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected product to be found")
	}
	if product.Name != "Desarrollo web" {
		t.Errorf("unexpected product: %+v", product)
	}

	_, found, err = service.FindProduct(ctx, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected product to be missing")
	}
}

func TestService_Invalidate(t *testing.T) {
	calls := 0
	reader := &testutil.MockCatalog{
		ProductsFunc: func(ctx context.Context) ([]corecatalog.Product, error) {
			calls++
			return []corecatalog.Product{}, nil
		},
	}
	service := NewService(reader, time.Minute, testutil.NewNullLogger())
	ctx := sessionContext("user-1")

	if _, err := service.Products(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	service.Invalidate(ctx)
	if _, err := service.Products(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected refetch after invalidate, got %d calls", calls)
	}
}
