package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"inaltera/ms_sionver_dashboard/internal/core/catalog"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/session"
)

// Service serves the client and product catalogs with a per-session cache.
// The catalogs are backend-owned reference data that change rarely within a
// session, so each subject's lists are cached for the configured TTL instead
// of hitting the backend on every composition keystroke.
type Service struct {
	reader catalog.Reader
	cache  *gocache.Cache
	log    *slog.Logger
}

func NewService(reader catalog.Reader, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		reader: reader,
		cache:  gocache.New(ttl, 2*ttl),
		log:    log,
	}
}

// Clients returns the selectable clients for the session, cached per subject.
func (s *Service) Clients(ctx context.Context) ([]catalog.Client, error) {
	key := cacheKey(ctx, "clients")
	if cached, found := s.cache.Get(key); found {
		return cached.([]catalog.Client), nil
	}

	clients, err := s.reader.Clients(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch clients: %w", err)
	}

	s.cache.SetDefault(key, clients)
	s.log.Debug("client catalog cached", "count", len(clients))
	return clients, nil
}

// Products returns the selectable products for the session, cached per subject.
func (s *Service) Products(ctx context.Context) ([]catalog.Product, error) {
	key := cacheKey(ctx, "products")
	if cached, found := s.cache.Get(key); found {
		return cached.([]catalog.Product), nil
	}

	products, err := s.reader.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	s.cache.SetDefault(key, products)
	s.log.Debug("product catalog cached", "count", len(products))
	return products, nil
}

// FindProduct resolves a product by identifier. The boolean reports whether
// the catalog knows the identifier.
func (s *Service) FindProduct(ctx context.Context, productID string) (*catalog.Product, bool, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], true, nil
		}
	}
	return nil, false, nil
}

// FindClient resolves a client by identifier.
func (s *Service) FindClient(ctx context.Context, clientID string) (*catalog.Client, bool, error) {
	clients, err := s.Clients(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range clients {
		if clients[i].ID == clientID {
			return &clients[i], true, nil
		}
	}
	return nil, false, nil
}

// Invalidate drops the session's cached catalogs so the next read refetches.
func (s *Service) Invalidate(ctx context.Context) {
	s.cache.Delete(cacheKey(ctx, "clients"))
	s.cache.Delete(cacheKey(ctx, "products"))
}

func cacheKey(ctx context.Context, kind string) string {
	return session.Subject(ctx) + ":" + kind
}
