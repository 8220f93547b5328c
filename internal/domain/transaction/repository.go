package transaction

import (
	"context"
	"time"
)

// Repository defines persistence for ledger entries.
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Transaction, error)
	GetLastByUser(ctx context.Context, userID string) (*Transaction, error)

	// Exists reports whether the user already has an entry with the exact
	// same description, amount and timestamp. Used for sync dedup.
	Exists(ctx context.Context, userID, item string, valor float64, createdAt time.Time) (bool, error)

	// ListUncategorized returns entries still carrying a placeholder
	// category, oldest first, capped at limit.
	ListUncategorized(ctx context.Context, userID string, limit int) ([]Transaction, error)
	UpdateCategory(ctx context.Context, id, userID, categoria string) error

	DeleteAllByUser(ctx context.Context, userID string) error
}
