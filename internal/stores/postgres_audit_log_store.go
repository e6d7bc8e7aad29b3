package stores

import (
	"context"
	"encoding/json"
	"fmt"

	"mpesa-gateway/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied once at startup. Both tables are append-only; the composite
// index serves RecentResponses.
const schema = `
CREATE TABLE IF NOT EXISTS mpesa_logs (
    id                  TEXT        PRIMARY KEY,
    kind                TEXT        NOT NULL,
    api                 TEXT,
    reference           TEXT,
    transaction_id      TEXT,
    payment_request_id  TEXT,
    status_code         INTEGER,
    status              TEXT,
    request_payload     JSONB,
    response_payload    JSONB,
    created_at          TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mpesa_logs_kind_created_at ON mpesa_logs (kind, created_at DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_mpesa_logs_reference ON mpesa_logs (reference);

CREATE TABLE IF NOT EXISTS callback_logs (
    id                  TEXT        PRIMARY KEY,
    event_type          TEXT,
    payload             JSONB,
    transaction_id      TEXT,
    payment_request_id  TEXT,
    created_at          TIMESTAMPTZ NOT NULL
);
`

// PostgresAuditLogStore persists audit records in PostgreSQL. Every call acquires its
// own connection from the pool and releases it before returning.
type PostgresAuditLogStore struct {
	pool    *pgxpool.Pool
	stamper recordStamper
}

func NewPostgresAuditLogStore(pool *pgxpool.Pool) *PostgresAuditLogStore {
	return &PostgresAuditLogStore{pool: pool}
}

// EnsureSchema creates the audit tables when they do not exist yet.
func (s *PostgresAuditLogStore) EnsureSchema(ctx context.Context) error {
	return s.withConn(ctx, func(conn *pgxpool.Conn) error {
		if _, err := conn.Exec(ctx, schema); err != nil {
			return fmt.Errorf("failed to apply audit log schema: %w", err)
		}
		return nil
	})
}

func (s *PostgresAuditLogStore) Append(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error) {
	stored := s.stamper.stampEntry(entry)

	requestPayload, err := marshalJSONB(stored.RequestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}
	responsePayload, err := marshalJSONB(stored.ResponsePayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response payload: %w", err)
	}

	err = s.withConn(ctx, func(conn *pgxpool.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO mpesa_logs
				(id, kind, api, reference, transaction_id, payment_request_id,
				 status_code, status, request_payload, response_payload, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			stored.ID, string(stored.Kind), nullString(stored.API), stored.Reference, stored.TransactionID,
			stored.PaymentRequestID, stored.StatusCode, nullString(string(stored.Status)),
			requestPayload, responsePayload, stored.CreatedAt,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert audit log entry: %w", err)
	}

	metricRecordsAppendedTotal.WithLabelValues(backendPostgres, string(stored.Kind)).Inc()
	return stored, nil
}

func (s *PostgresAuditLogStore) RecentResponses(ctx context.Context, limit int) ([]*models.LogEntry, error) {
	limit = ClampRecentLimit(limit)

	var entries []*models.LogEntry
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, kind, api, reference, transaction_id, payment_request_id,
			       status_code, status, request_payload, response_payload, created_at
			FROM mpesa_logs
			WHERE kind = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		`, string(models.LogKindResponse), limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				entry                           models.LogEntry
				kind                            string
				api, status                     *string
				requestPayload, responsePayload []byte
			)
			if err := rows.Scan(
				&entry.ID, &kind, &api, &entry.Reference, &entry.TransactionID, &entry.PaymentRequestID,
				&entry.StatusCode, &status, &requestPayload, &responsePayload, &entry.CreatedAt,
			); err != nil {
				return fmt.Errorf("failed to scan audit log row: %w", err)
			}
			entry.Kind = models.LogKind(kind)
			if api != nil {
				entry.API = *api
			}
			if status != nil {
				entry.Status = models.LogStatus(*status)
			}
			if entry.RequestPayload, err = unmarshalJSONB(requestPayload); err != nil {
				return fmt.Errorf("failed to decode request payload of %s: %w", entry.ID, err)
			}
			if entry.ResponsePayload, err = unmarshalJSONB(responsePayload); err != nil {
				return fmt.Errorf("failed to decode response payload of %s: %w", entry.ID, err)
			}
			entry.CreatedAt = entry.CreatedAt.UTC()
			entries = append(entries, &entry)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query recent responses: %w", err)
	}

	if entries == nil {
		entries = []*models.LogEntry{}
	}
	return entries, nil
}

func (s *PostgresAuditLogStore) AppendCallback(ctx context.Context, callbackLog *models.CallbackLog) (*models.CallbackLog, error) {
	stored := s.stamper.stampCallback(callbackLog)

	payload, err := marshalJSONB(stored.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal callback payload: %w", err)
	}

	err = s.withConn(ctx, func(conn *pgxpool.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO callback_logs (id, event_type, payload, transaction_id, payment_request_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, stored.ID, stored.EventType, payload, stored.TransactionID, stored.PaymentRequestID, stored.CreatedAt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert callback log: %w", err)
	}

	metricRecordsAppendedTotal.WithLabelValues(backendPostgres, kindCallbackLog).Inc()
	return stored, nil
}

func (s *PostgresAuditLogStore) withConn(ctx context.Context, fn func(conn *pgxpool.Conn) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(conn)
}

// marshalJSONB encodes v for a JSONB column; nil maps to SQL NULL.
func marshalJSONB(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalJSONB(data []byte) (any, error) {
	if data == nil {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
