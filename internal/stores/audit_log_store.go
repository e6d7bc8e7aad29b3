package stores

import (
	"context"
	"time"

	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/ulid"
)

const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 200
)

// AuditLogStore is the append-only M-Pesa audit log. Entries are never updated or deleted.
//
//go:generate mockgen -source=audit_log_store.go -destination=./mocks/audit_log_store_mock.go -package=mocks
type AuditLogStore interface {
	// Append assigns the entry an ID and creation time, persists it and returns the stored record.
	// The argument is not modified.
	Append(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error)
	// RecentResponses returns RESPONSE entries, most recent first, at most ClampRecentLimit(limit).
	RecentResponses(ctx context.Context, limit int) ([]*models.LogEntry, error)
}

// CallbackLogStore persists raw provider callbacks.
type CallbackLogStore interface {
	AppendCallback(ctx context.Context, callbackLog *models.CallbackLog) (*models.CallbackLog, error)
}

// ClampRecentLimit maps a requested page size onto (0, MaxRecentLimit]; non-positive means default.
func ClampRecentLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	return min(limit, MaxRecentLimit)
}

// recordStamper assigns IDs and creation times. The clock is swappable for tests.
type recordStamper struct {
	now func() time.Time
}

func (s recordStamper) stamp() (string, time.Time) {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	createdAt := now().UTC()
	return ulid.NewULIDAt(createdAt), createdAt
}

func (s recordStamper) stampEntry(entry *models.LogEntry) *models.LogEntry {
	stored := *entry
	stored.ID, stored.CreatedAt = s.stamp()
	return &stored
}

func (s recordStamper) stampCallback(callbackLog *models.CallbackLog) *models.CallbackLog {
	stored := *callbackLog
	stored.ID, stored.CreatedAt = s.stamp()
	return &stored
}
