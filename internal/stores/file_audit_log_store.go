package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/filestorages"
)

var (
	ErrRecordAlreadyExist = errors.New("audit record already exists")
)

const (
	dirMpesaLogs    = "mpesa-logs"
	dirCallbackLogs = "callback-logs"
)

// FileAuditLogStore keeps every record as its own JSON object on a FileStorage:
//
//	mpesa-logs/<KIND>/<ULID>.json
//	callback-logs/<ULID>.json
//
// Objects are written with AllowOverwrite: false, so a record can never be replaced,
// and ULID keys list in creation order, which gives recency queries without an index.
type FileAuditLogStore struct {
	fileStorage filestorages.FileStorage
	stamper     recordStamper
}

func NewFileAuditLogStore(fileStorage filestorages.FileStorage) *FileAuditLogStore {
	return &FileAuditLogStore{fileStorage: fileStorage}
}

func newFileAuditLogStoreWithClock(fileStorage filestorages.FileStorage, now func() time.Time) *FileAuditLogStore {
	return &FileAuditLogStore{fileStorage: fileStorage, stamper: recordStamper{now: now}}
}

func (s *FileAuditLogStore) Append(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error) {
	stored := s.stamper.stampEntry(entry)

	key := path.Join(dirMpesaLogs, string(stored.Kind), stored.ID+".json")
	if err := s.putNew(ctx, key, stored); err != nil {
		return nil, fmt.Errorf("failed to put audit log entry: %w", err)
	}

	metricRecordsAppendedTotal.WithLabelValues(backendFile, string(stored.Kind)).Inc()
	return stored, nil
}

func (s *FileAuditLogStore) RecentResponses(ctx context.Context, limit int) ([]*models.LogEntry, error) {
	limit = ClampRecentLimit(limit)

	keys, err := s.fileStorage.List(ctx, path.Join(dirMpesaLogs, string(models.LogKindResponse)))
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log entries: %w", err)
	}

	entries := make([]*models.LogEntry, 0, min(limit, len(keys)))
	for i := len(keys) - 1; i >= 0 && len(entries) < limit; i-- {
		var entry models.LogEntry
		if err := s.get(ctx, keys[i], &entry); err != nil {
			return nil, fmt.Errorf("failed to read audit log entry %q: %w", keys[i], err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (s *FileAuditLogStore) AppendCallback(ctx context.Context, callbackLog *models.CallbackLog) (*models.CallbackLog, error) {
	stored := s.stamper.stampCallback(callbackLog)

	key := path.Join(dirCallbackLogs, stored.ID+".json")
	if err := s.putNew(ctx, key, stored); err != nil {
		return nil, fmt.Errorf("failed to put callback log: %w", err)
	}

	metricRecordsAppendedTotal.WithLabelValues(backendFile, kindCallbackLog).Inc()
	return stored, nil
}

func (s *FileAuditLogStore) putNew(ctx context.Context, key string, record any) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrRecordAlreadyExist
		}
		return err
	}
	return nil
}

func (s *FileAuditLogStore) get(ctx context.Context, key string, out any) error {
	rc, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
