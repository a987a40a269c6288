package registry

import (
	"context"
	"fmt"
	"log/slog"

	"inaltera/ms_sionver_dashboard/internal/core/registry"
	"inaltera/ms_sionver_dashboard/internal/core/sealing"
)

// Service answers registry views: it fetches the backend listing with the
// server-side filters and re-applies the same predicates locally, so the
// result is consistent whether or not the backend filtered. Page numbers
// coming from the client are clamped to the filtered set.
type Service struct {
	sealer   sealing.Sealer
	pageSize int
	log      *slog.Logger
}

func NewService(sealer sealing.Sealer, pageSize int, log *slog.Logger) *Service {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Service{sealer: sealer, pageSize: pageSize, log: log}
}

// PageSize returns the configured entries-per-page.
func (s *Service) PageSize() int {
	return s.pageSize
}

// List fetches and filters the registry for one query. The query's PageSize
// is overridden by the service configuration; its Page is clamped to the
// last available page of the filtered set.
func (s *Service) List(ctx context.Context, q registry.Query) (*registry.Result, error) {
	q.PageSize = s.pageSize

	entries, err := s.sealer.ListRegistry(ctx, sealing.Listing{
		Search:   q.SearchText,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	})
	if err != nil {
		return nil, fmt.Errorf("list registry: %w", err)
	}

	matched := registry.Apply(entries, q)
	q = q.ClampPage(matched.TotalPages)
	result := registry.Apply(entries, q)

	s.log.Debug("registry listed",
		"total", result.TotalCount,
		"page", result.Page,
		"pages", result.TotalPages,
	)
	return &result, nil
}
