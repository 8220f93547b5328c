package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"grana/internal/domain/banksync"
)

type SyncLogRepository struct {
	db *DB
}

var _ banksync.SyncLogRepository = (*SyncLogRepository)(nil)

func NewSyncLogRepository(db *DB) *SyncLogRepository {
	return &SyncLogRepository{db: db}
}

func (r *SyncLogRepository) Append(ctx context.Context, entry *banksync.SyncLog) error {
	var details []byte
	if entry.Details != nil {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal log details: %w", err)
		}
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO sync_logs (user_id, item_id, stage, message, details, level)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.UserID, entry.ItemID, entry.Stage, entry.Message, details, entry.Level,
	)
	if err != nil {
		return fmt.Errorf("failed to append sync log: %w", err)
	}

	return nil
}

func (r *SyncLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]banksync.SyncLog, error) {
	query := `
		SELECT id, user_id, item_id, stage, message, details, level, created_at
		FROM sync_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync logs: %w", err)
	}
	defer rows.Close()

	logs := []banksync.SyncLog{}
	for rows.Next() {
		var entry banksync.SyncLog
		var details sql.NullString
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.ItemID, &entry.Stage,
			&entry.Message, &details, &entry.Level, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sync log: %w", err)
		}
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("failed to parse log details: %w", err)
			}
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync logs: %w", err)
	}

	return logs, nil
}

func (r *SyncLogRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sync_logs WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user sync logs: %w", err)
	}
	return nil
}
