package banksync

import (
	"context"
	"time"
)

// Log levels for sync diagnostics.
const (
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// SyncLog is one append-only diagnostic row written during a sync run.
// Details carries stage-specific context and is stored as JSONB.
type SyncLog struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id"`
	ItemID    string         `json:"item_id"`
	Stage     string         `json:"stage"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Level     string         `json:"level"`
	CreatedAt time.Time      `json:"created_at"`
}

// SyncLogRepository persists sync diagnostics.
type SyncLogRepository interface {
	Append(ctx context.Context, entry *SyncLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]SyncLog, error)
	DeleteAllByUser(ctx context.Context, userID string) error
}
