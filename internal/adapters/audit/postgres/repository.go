package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"inaltera/ms_sionver_dashboard/internal/core/audit"
)

// Repository implements the audit.Repository interface using PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewRepository creates a new PostgreSQL audit repository.
func NewRepository(pool *pgxpool.Pool, log *slog.Logger) audit.Repository {
	return &Repository{pool: pool, log: log}
}

// Save persists one backend call record.
func (r *Repository) Save(ctx context.Context, record audit.CallRecord) error {
	query := `
		INSERT INTO sealing_audit_log (
			correlation_id, operation, request_method, request_url,
			request_headers, response_status, duration_ms, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	headersJSON, err := json.Marshal(record.RequestHeaders)
	if err != nil {
		return fmt.Errorf("marshal request headers: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		record.CorrelationID,
		record.Operation,
		record.RequestMethod,
		record.RequestURL,
		headersJSON,
		record.ResponseStatus,
		record.DurationMs,
		record.ErrorMessage,
		record.CreatedAt,
	)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to insert audit record",
				"correlation_id", record.CorrelationID,
				"operation", record.Operation,
				"error", err,
			)
		}
		return fmt.Errorf("insert audit record: %w", err)
	}

	return nil
}

// FindByCorrelationID retrieves every record for one inbound request,
// oldest first.
func (r *Repository) FindByCorrelationID(ctx context.Context, correlationID string) ([]audit.CallRecord, error) {
	query := `
		SELECT id, correlation_id, operation, request_method, request_url,
		       request_headers, response_status, duration_ms, error_message, created_at
		FROM sealing_audit_log
		WHERE correlation_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, correlationID)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	var records []audit.CallRecord
	for rows.Next() {
		var record audit.CallRecord
		var headersJSON []byte
		var errorMessage *string

		err := rows.Scan(
			&record.ID,
			&record.CorrelationID,
			&record.Operation,
			&record.RequestMethod,
			&record.RequestURL,
			&headersJSON,
			&record.ResponseStatus,
			&record.DurationMs,
			&errorMessage,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}

		if len(headersJSON) > 0 {
			if err := json.Unmarshal(headersJSON, &record.RequestHeaders); err != nil {
				return nil, fmt.Errorf("unmarshal request headers: %w", err)
			}
		}
		if errorMessage != nil {
			record.ErrorMessage = *errorMessage
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}

	return records, nil
}
