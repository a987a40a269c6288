package health

import (
	"context"
	"testing"
	"time"
)

func TestNewService(t *testing.T) {
	meta := Metadata{
		Service:     "test-service",
		Version:     "1.0.0",
		Environment: "test",
	}

	service := NewService(meta)

	if service == nil {
		t.Fatal("expected service to be created, got nil")
	}

	if service.meta != meta {
		t.Error("expected service to have the provided metadata")
	}

	if service.startedAt.IsZero() {
		t.Error("expected startedAt to be set")
	}
}

func TestService_Status(t *testing.T) {
	meta := Metadata{
		Service:     "sionver-dashboard",
		Version:     "1.0.0",
		Environment: "test",
	}

	service := NewService(meta)
	startTime := service.startedAt

	time.Sleep(10 * time.Millisecond)

	status := service.Status(context.Background())

	if status.Service != meta.Service {
		t.Errorf("expected service %q, got %q", meta.Service, status.Service)
	}
	if status.Version != meta.Version {
		t.Errorf("expected version %q, got %q", meta.Version, status.Version)
	}
	if status.Environment != meta.Environment {
		t.Errorf("expected environment %q, got %q", meta.Environment, status.Environment)
	}
	if status.Status != "UP" {
		t.Errorf("expected status 'UP', got %q", status.Status)
	}
	if !status.StartedAt.Equal(startTime) {
		t.Errorf("expected startedAt %v, got %v", startTime, status.StartedAt)
	}
	if status.UptimeSecs < 0 {
		t.Errorf("expected non-negative uptime, got %d", status.UptimeSecs)
	}
	if status.Uptime == "" {
		t.Error("expected uptime string to be set")
	}
}
