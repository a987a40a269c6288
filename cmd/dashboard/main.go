package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	auditpg "inaltera/ms_sionver_dashboard/internal/adapters/audit/postgres"
	"inaltera/ms_sionver_dashboard/internal/adapters/sealing/inaltera"
	appbilling "inaltera/ms_sionver_dashboard/internal/application/billing"
	appcatalog "inaltera/ms_sionver_dashboard/internal/application/catalog"
	apphealth "inaltera/ms_sionver_dashboard/internal/application/health"
	appprofile "inaltera/ms_sionver_dashboard/internal/application/profile"
	appregistry "inaltera/ms_sionver_dashboard/internal/application/registry"
	"inaltera/ms_sionver_dashboard/internal/core/audit"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/config"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/database"
	httpinfra "inaltera/ms_sionver_dashboard/internal/infrastructure/http"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/http/server"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "service stopped: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.App.Name, cfg.Log.Level, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The audit trail is best effort: without a database the dashboard still
	// runs, it just stops recording backend calls.
	var auditRepo audit.Repository
	if cfg.Audit.Enabled && cfg.Database.Host != "" {
		pool, err := database.NewPool(ctx, database.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			Database:        cfg.Database.Database,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			log.Warn("database unavailable, audit trail disabled", "error", err)
		} else {
			defer pool.Close()
			if err := database.RunMigrations(ctx, pool, log); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
			auditRepo = auditpg.NewRepository(pool, log)
			log.Info("audit trail enabled", "database", cfg.Database.Database)
		}
	} else {
		log.Info("audit trail disabled", "audit_enabled", cfg.Audit.Enabled, "database_configured", cfg.Database.Host != "")
	}

	httpClient := httpinfra.NewClient(&httpinfra.ClientConfig{Timeout: cfg.Sealing.APITimeout})
	backend := inaltera.NewClient(cfg.Sealing.BaseURL, httpClient, log, auditRepo)
	log.Info("sealing backend configured", "base_url", cfg.Sealing.BaseURL)

	catalogService := appcatalog.NewService(backend, cfg.Catalog.CacheTTL, log)
	billingService := appbilling.NewService(backend, catalogService, log)
	registryService := appregistry.NewService(backend, cfg.Registry.PageSize, log)
	profileService := appprofile.NewService(backend, log)
	healthService := apphealth.NewService(apphealth.Metadata{
		Service:     cfg.App.Name,
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
	})

	srv, err := server.New(server.Options{
		Config:   cfg,
		Logger:   log,
		Billing:  billingService,
		Registry: registryService,
		Catalog:  catalogService,
		Profile:  profileService,
		Health:   healthService,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	defer srv.Close()

	log.Info("starting HTTP server", "port", cfg.HTTP.Port, "env", cfg.App.Environment)
	return srv.Run(ctx)
}
