package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	billinghttp "inaltera/ms_sionver_dashboard/internal/adapters/http/billing"
	cataloghttp "inaltera/ms_sionver_dashboard/internal/adapters/http/catalog"
	healthhttp "inaltera/ms_sionver_dashboard/internal/adapters/http/health"
	profilehttp "inaltera/ms_sionver_dashboard/internal/adapters/http/profile"
	registryhttp "inaltera/ms_sionver_dashboard/internal/adapters/http/registry"
	appbilling "inaltera/ms_sionver_dashboard/internal/application/billing"
	appcatalog "inaltera/ms_sionver_dashboard/internal/application/catalog"
	apphealth "inaltera/ms_sionver_dashboard/internal/application/health"
	appprofile "inaltera/ms_sionver_dashboard/internal/application/profile"
	appregistry "inaltera/ms_sionver_dashboard/internal/application/registry"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/config"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/http/middleware"
)

// Server mounts the dashboard API and owns the HTTP listener.
type Server struct {
	log        *slog.Logger
	httpServer *http.Server
	auth       *middleware.JWTAuthenticator
}

// Options carries the wired application services into the server.
type Options struct {
	Config   config.AppConfig
	Logger   *slog.Logger
	Billing  *appbilling.Service
	Registry *appregistry.Service
	Catalog  *appcatalog.Service
	Profile  *appprofile.Service
	Health   *apphealth.Service
}

// New builds the router and the underlying http.Server.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Billing == nil || opts.Registry == nil || opts.Catalog == nil || opts.Profile == nil || opts.Health == nil {
		return nil, errors.New("all application services are required")
	}

	auth, err := middleware.NewJWTAuthenticator(opts.Config.Auth, opts.Logger)
	if err != nil {
		return nil, err
	}

	billingHandler := billinghttp.NewHandler(opts.Billing, opts.Config.Sealing.MaxUploadBytes)
	registryHandler := registryhttp.NewHandler(opts.Registry)
	catalogHandler := cataloghttp.NewHandler(opts.Catalog)
	profileHandler := profilehttp.NewHandler(opts.Profile)
	healthHandler := healthhttp.NewHandler(opts.Health)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(auth.Middleware)

	r.Get("/health", healthHandler.Status)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Status)

		r.Route("/facturacion", func(r chi.Router) {
			r.Get("/borrador", billingHandler.GetDraft)
			r.Delete("/borrador", billingHandler.ResetDraft)
			r.Get("/estado", billingHandler.GetStatus)
			r.Post("/borrador/lineas", billingHandler.AddLine)
			r.Delete("/borrador/lineas/{lineID}", billingHandler.RemoveLine)
			r.Patch("/borrador/lineas/{lineID}", billingHandler.UpdateLine)
			r.Put("/borrador/lineas/{lineID}/producto", billingHandler.SelectProduct)
			r.Put("/borrador/cliente", billingHandler.SetClient)
			r.Put("/borrador/notas", billingHandler.SetNotes)
			r.Post("/emitir", billingHandler.SubmitDraft)

			r.With(middleware.UploadTimeout(opts.Config.HTTP)).Post("/pdf", billingHandler.StagePDF)
			r.Delete("/pdf", billingHandler.ClearPDF)
			r.With(middleware.UploadTimeout(opts.Config.HTTP)).Post("/pdf/sellar", billingHandler.SubmitPDF)
		})

		r.Get("/registro", registryHandler.List)

		r.Route("/catalogo", func(r chi.Router) {
			r.Get("/clientes", catalogHandler.Clients)
			r.Get("/productos", catalogHandler.Products)
		})

		r.Route("/perfil", func(r chi.Router) {
			r.Get("/", profileHandler.Get)
			r.Post("/", profileHandler.Update)
			r.Get("/suscripcion", profileHandler.Subscription)
		})
	})

	// The server write timeout must outlast the PDF upload budget or the
	// connection is cut mid-seal.
	writeTimeout := opts.Config.HTTP.WriteTimeout
	if opts.Config.HTTP.UploadTimeout > writeTimeout {
		writeTimeout = opts.Config.HTTP.UploadTimeout
	}

	srv := &http.Server{
		Addr:         opts.Config.HTTP.Address(),
		Handler:      r,
		ReadTimeout:  opts.Config.HTTP.ReadTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  opts.Config.HTTP.IdleTimeout,
	}

	return &Server{log: opts.Logger, httpServer: srv, auth: auth}, nil
}

// Handler exposes the composed router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the listener and blocks until the context is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server started", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		_ = s.httpServer.Shutdown(context.Background())
		return nil
	case err := <-errCh:
		return err
	}
}

// Close releases background resources such as the JWKS refresher.
func (s *Server) Close() {
	if s.auth != nil {
		s.auth.Close()
	}
}
