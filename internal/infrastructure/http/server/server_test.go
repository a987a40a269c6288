package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appbilling "inaltera/ms_sionver_dashboard/internal/application/billing"
	appcatalog "inaltera/ms_sionver_dashboard/internal/application/catalog"
	apphealth "inaltera/ms_sionver_dashboard/internal/application/health"
	appprofile "inaltera/ms_sionver_dashboard/internal/application/profile"
	appregistry "inaltera/ms_sionver_dashboard/internal/application/registry"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/config"
	"inaltera/ms_sionver_dashboard/internal/testutil"
)

func newTestOptions() Options {
	sealer := &testutil.MockSealer{}
	catalogSvc := appcatalog.NewService(&testutil.MockCatalog{}, time.Minute, testutil.NewNullLogger())

	return Options{
		Config: config.AppConfig{
			HTTP: config.HTTPSettings{
				Port:          8080,
				ReadTimeout:   10 * time.Second,
				WriteTimeout:  10 * time.Second,
				UploadTimeout: 2 * time.Minute,
				IdleTimeout:   2 * time.Minute,
			},
			Auth: config.AuthSettings{Enabled: false},
			Sealing: config.SealingSettings{
				BaseURL:        "https://api.example.com",
				MaxUploadBytes: 1 << 20,
			},
		},
		Logger:   testutil.NewNullLogger(),
		Billing:  appbilling.NewService(sealer, catalogSvc, testutil.NewNullLogger()),
		Registry: appregistry.NewService(sealer, 10, testutil.NewNullLogger()),
		Catalog:  catalogSvc,
		Profile:  appprofile.NewService(&testutil.MockProfileStore{}, testutil.NewNullLogger()),
		Health:   apphealth.NewService(apphealth.Metadata{Service: "test", Version: "0.0.1", Environment: "test"}),
	}
}

func TestNew_RequiresLogger(t *testing.T) {
	opts := newTestOptions()
	opts.Logger = nil
	if _, err := New(opts); err == nil {
		t.Fatal("expected error without logger")
	}
}

func TestNew_RequiresServices(t *testing.T) {
	opts := newTestOptions()
	opts.Registry = nil
	if _, err := New(opts); err == nil {
		t.Fatal("expected error without registry service")
	}
}

func TestServer_Routes(t *testing.T) {
	srv, err := New(newTestOptions())
	if err != nil {
		t.Fatalf("create server: %v", err)
	}
	defer srv.Close()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"health under api", http.MethodGet, "/api/v1/health", http.StatusOK},
		{"draft snapshot", http.MethodGet, "/api/v1/facturacion/borrador", http.StatusOK},
		{"workflow status", http.MethodGet, "/api/v1/facturacion/estado", http.StatusOK},
		{"registry listing", http.MethodGet, "/api/v1/registro", http.StatusOK},
		{"clients catalog", http.MethodGet, "/api/v1/catalogo/clientes", http.StatusOK},
		{"products catalog", http.MethodGet, "/api/v1/catalogo/productos", http.StatusOK},
		{"profile", http.MethodGet, "/api/v1/perfil", http.StatusOK},
		{"subscription", http.MethodGet, "/api/v1/perfil/suscripcion", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/desconocido", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
