package middleware

import (
	"context"
	"net/http"

	"inaltera/ms_sionver_dashboard/internal/infrastructure/config"
)

// UploadTimeout wraps a handler to apply an extended timeout for the PDF
// upload route. Sealing a multi-megabyte PDF can take longer than the
// default request budget; the route gets its own context deadline.
func UploadTimeout(cfg config.HTTPSettings) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), cfg.UploadTimeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
