package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"grana/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO transactions (id, user_id, item, valor, tipo, categoria, forma_pagamento, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		tx.ID, tx.UserID, tx.Item, tx.Valor, tx.Tipo, tx.Categoria, tx.FormaPagamento, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error) {
	query := `
		SELECT id, user_id, item, valor, tipo, categoria, forma_pagamento, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) GetLastByUser(ctx context.Context, userID string) (*transaction.Transaction, error) {
	query := `
		SELECT id, user_id, item, valor, tipo, categoria, forma_pagamento, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	tx, err := scanTransactionRow(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last transaction: %w", err)
	}

	return tx, nil
}

func (r *TransactionRepository) Exists(ctx context.Context, userID, item string, valor float64, createdAt time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE user_id = $1 AND item = $2 AND valor = $3 AND created_at = $4
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, item, valor, createdAt).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check transaction existence: %w", err)
	}

	return exists, nil
}

func (r *TransactionRepository) ListUncategorized(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error) {
	query := `
		SELECT id, user_id, item, valor, tipo, categoria, forma_pagamento, created_at, updated_at
		FROM transactions
		WHERE user_id = $1 AND categoria IN ($2, $3)
		ORDER BY created_at ASC
		LIMIT $4
	`

	rows, err := r.db.QueryContext(ctx, query, userID, transaction.CategoryGeneral, transaction.CategoryOther, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list uncategorized transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) UpdateCategory(ctx context.Context, id, userID, categoria string) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE transactions SET categoria = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		categoria, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction category: %w", err)
	}

	return nil
}

func (r *TransactionRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user transactions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransactionRow(row rowScanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var formaPagamento sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&tx.ID, &tx.UserID, &tx.Item, &tx.Valor, &tx.Tipo, &tx.Categoria,
		&formaPagamento, &tx.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if formaPagamento.Valid {
		tx.FormaPagamento = &formaPagamento.String
	}
	if updatedAt.Valid {
		tx.UpdatedAt = &updatedAt.Time
	}

	return &tx, nil
}

func scanTransactions(rows *sql.Rows) ([]transaction.Transaction, error) {
	transactions := []transaction.Transaction{}
	for rows.Next() {
		tx, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}
