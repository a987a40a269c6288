package http

import (
	"net/http"
	"time"
)

// ClientConfig holds configuration for outbound HTTP clients.
type ClientConfig struct {
	Timeout         time.Duration
	MaxConnsPerHost int
}

// NewClient creates an HTTP client with connection pooling tuned for a
// single upstream host. If config is nil, sensible defaults apply
// (60s timeout, 50 connections per host).
func NewClient(config *ClientConfig) *http.Client {
	if config == nil {
		config = &ClientConfig{}
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	maxConns := config.MaxConnsPerHost
	if maxConns == 0 {
		maxConns = 50
	}

	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   maxConns,
		MaxConnsPerHost:       maxConns,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: config.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   config.Timeout,
		Transport: transport,
	}
}
