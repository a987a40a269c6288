package inaltera

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inaltera/ms_sionver_dashboard/internal/core/audit"
	"inaltera/ms_sionver_dashboard/internal/core/catalog"
	"inaltera/ms_sionver_dashboard/internal/core/profile"
	"inaltera/ms_sionver_dashboard/internal/core/registry"
	"inaltera/ms_sionver_dashboard/internal/core/sealing"
	ctxutil "inaltera/ms_sionver_dashboard/internal/infrastructure/context"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/security"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/session"
)

// HTTPClient interface allows using both standard and traced HTTP clients.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the INALTERA sealing backend. It implements the sealing,
// catalog and profile ports over the same authenticated API: the session's
// bearer credential is forwarded on every call, and each call is recorded in
// the audit trail when a repository is configured.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	log        *slog.Logger
	auditRepo  audit.Repository // Optional: nil if database not configured
}

// NewClient creates a new sealing backend client. auditRepo is optional;
// if nil, backend calls are not persisted to the audit trail.
func NewClient(baseURL string, httpClient HTTPClient, log *slog.Logger, auditRepo audit.Repository) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
		auditRepo:  auditRepo,
	}
}

var (
	_ sealing.Sealer = (*Client)(nil)
	_ catalog.Reader = (*Client)(nil)
	_ profile.Store  = (*Client)(nil)
)

// EmitInvoice submits a composed invoice for sealing and registration.
func (c *Client) EmitInvoice(ctx context.Context, emission sealing.Emission) (*sealing.Receipt, error) {
	payload, err := json.Marshal(emission)
	if err != nil {
		return nil, fmt.Errorf("marshal emission: %w", err)
	}

	body, err := c.do(ctx, "emit_invoice", http.MethodPost, "/factura/emitir", nil, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}

	var resp receiptResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode emit response: %w", err)
	}
	return resp.toReceipt(), nil
}

// SealPDF submits an uploaded third-party PDF for sealing. The file travels
// as the "pdf" field of a multipart form.
func (c *Client) SealPDF(ctx context.Context, upload sealing.Upload) (*sealing.Receipt, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("pdf", upload.Filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(upload.Content); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	body, err := c.do(ctx, "seal_pdf", http.MethodPost, "/factura/cargar_pdf", nil, &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var resp receiptResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return resp.toReceipt(), nil
}

// ListRegistry returns the registry entries matching the listing filters.
func (c *Client) ListRegistry(ctx context.Context, listing sealing.Listing) ([]registry.Entry, error) {
	query := url.Values{}
	if listing.Search != "" {
		query.Set("search", listing.Search)
	}
	if listing.DateFrom != nil {
		query.Set("date_from", listing.DateFrom.Format("2006-01-02"))
	}
	if listing.DateTo != nil {
		query.Set("date_to", listing.DateTo.Format("2006-01-02"))
	}

	body, err := c.do(ctx, "list_registry", http.MethodGet, "/registro/listado", query, nil, "")
	if err != nil {
		return nil, err
	}

	var rows []registryEntryResponse
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode registry listing: %w", err)
	}

	entries := make([]registry.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toEntry()
		if err != nil {
			c.log.Warn("skipping malformed registry row", "id", row.ID, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Clients returns the selectable clients for the authenticated company.
func (c *Client) Clients(ctx context.Context) ([]catalog.Client, error) {
	body, err := c.do(ctx, "list_clients", http.MethodGet, "/catalog/clientes", nil, nil, "")
	if err != nil {
		return nil, err
	}

	var clients []catalog.Client
	if err := json.Unmarshal(body, &clients); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	return clients, nil
}

// Products returns the selectable products for the authenticated company.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	body, err := c.do(ctx, "list_products", http.MethodGet, "/catalog/productos", nil, nil, "")
	if err != nil {
		return nil, err
	}

	var products []catalog.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Get returns the authenticated company's fiscal profile.
func (c *Client) Get(ctx context.Context) (*profile.Profile, error) {
	body, err := c.do(ctx, "get_profile", http.MethodGet, "/user/profile", nil, nil, "")
	if err != nil {
		return nil, err
	}

	var p profile.Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// Update replaces the fiscal profile.
func (c *Client) Update(ctx context.Context, p profile.Profile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = c.do(ctx, "update_profile", http.MethodPost, "/user/profile", nil, bytes.NewReader(payload), "application/json")
	return err
}

// SubscriptionStatus returns the current subscription state.
func (c *Client) SubscriptionStatus(ctx context.Context) (*profile.Subscription, error) {
	body, err := c.do(ctx, "subscription_status", http.MethodGet, "/user/subscription/status", nil, nil, "")
	if err != nil {
		return nil, err
	}

	var resp subscriptionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	return &profile.Subscription{Active: resp.Active, Plan: resp.Plan}, nil
}

// do performs one authenticated backend call and returns the response body.
// Non-2xx answers become BackendError with the upstream message. The call is
// recorded in the audit trail regardless of outcome.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, reqBody io.Reader, contentType string) ([]byte, error) {
	token, err := session.Credential(ctx)
	if err != nil {
		return nil, err
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if correlationID := ctxutil.GetCorrelationID(ctx); correlationID != "" {
		req.Header.Set("X-Correlation-ID", correlationID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.recordCall(ctx, operation, req, nil, duration, err.Error())
		return nil, fmt.Errorf("call sealing backend: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		c.recordCall(ctx, operation, req, &resp.StatusCode, duration, readErr.Error())
		return nil, fmt.Errorf("read response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		backendErr := &sealing.BackendError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(body, resp.StatusCode),
		}
		c.recordCall(ctx, operation, req, &resp.StatusCode, duration, backendErr.Message)
		return nil, backendErr
	}

	c.recordCall(ctx, operation, req, &resp.StatusCode, duration, "")
	return body, nil
}

// upstreamMessage extracts the user-facing message from an error envelope,
// falling back to the HTTP status text.
func upstreamMessage(body []byte, statusCode int) string {
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return http.StatusText(statusCode)
}

func (c *Client) recordCall(ctx context.Context, operation string, req *http.Request, status *int, duration time.Duration, errMsg string) {
	if c.auditRepo == nil {
		return
	}

	record := audit.CallRecord{
		CorrelationID:  ctxutil.GetCorrelationID(ctx),
		Operation:      operation,
		RequestMethod:  req.Method,
		RequestURL:     req.URL.String(),
		RequestHeaders: security.SanitizeHeaders(req.Header),
		ResponseStatus: status,
		DurationMs:     duration.Milliseconds(),
		ErrorMessage:   errMsg,
		CreatedAt:      time.Now().UTC(),
	}

	if err := c.auditRepo.Save(ctx, record); err != nil {
		c.log.Warn("failed to persist audit record", "operation", operation, "error", err)
	}
}
