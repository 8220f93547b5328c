package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"grana/internal/domain/banking"
)

type BankAccountRepository struct {
	db *DB
}

var _ banking.BankAccountRepository = (*BankAccountRepository)(nil)

func NewBankAccountRepository(db *DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

func (r *BankAccountRepository) Upsert(ctx context.Context, account *banking.BankAccount) error {
	query := `
		INSERT INTO bank_accounts
			(user_id, item_id, provider_account_id, bank_name, account_type, balance, currency, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (provider_account_id) DO UPDATE SET
			bank_name      = EXCLUDED.bank_name,
			account_type   = EXCLUDED.account_type,
			balance        = EXCLUDED.balance,
			currency       = EXCLUDED.currency,
			last_synced_at = NOW()
	`

	_, err := r.db.ExecContext(
		ctx, query,
		account.UserID, account.ItemID, account.ProviderAccountID,
		account.BankName, account.AccountType, account.Balance, account.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert bank account: %w", err)
	}

	return nil
}

func (r *BankAccountRepository) ListByUser(ctx context.Context, userID string) ([]banking.BankAccount, error) {
	query := `
		SELECT id, user_id, item_id, provider_account_id, bank_name, account_type,
		       balance, currency, last_synced_at, created_at
		FROM bank_accounts
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	accounts := []banking.BankAccount{}
	for rows.Next() {
		var account banking.BankAccount
		var lastSyncedAt sql.NullTime
		if err := rows.Scan(
			&account.ID, &account.UserID, &account.ItemID, &account.ProviderAccountID,
			&account.BankName, &account.AccountType, &account.Balance, &account.Currency,
			&lastSyncedAt, &account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %w", err)
		}
		if lastSyncedAt.Valid {
			account.LastSyncedAt = &lastSyncedAt.Time
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bank accounts: %w", err)
	}

	return accounts, nil
}

func (r *BankAccountRepository) DeleteByItem(ctx context.Context, itemID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to delete bank accounts for item: %w", err)
	}
	return nil
}

func (r *BankAccountRepository) DeleteByItemForUser(ctx context.Context, itemID, userID string) error {
	if _, err := r.db.ExecContext(
		ctx,
		`DELETE FROM bank_accounts WHERE item_id = $1 AND user_id = $2`,
		itemID, userID,
	); err != nil {
		return fmt.Errorf("failed to delete bank accounts for item: %w", err)
	}
	return nil
}

func (r *BankAccountRepository) ListSyncTargets(ctx context.Context) ([]banking.SyncTarget, error) {
	query := `
		SELECT DISTINCT user_id, item_id, bank_name
		FROM bank_accounts
		ORDER BY user_id, item_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync targets: %w", err)
	}
	defer rows.Close()

	targets := []banking.SyncTarget{}
	for rows.Next() {
		var target banking.SyncTarget
		if err := rows.Scan(&target.UserID, &target.ItemID, &target.BankName); err != nil {
			return nil, fmt.Errorf("failed to scan sync target: %w", err)
		}
		targets = append(targets, target)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync targets: %w", err)
	}

	return targets, nil
}

func (r *BankAccountRepository) ListItemIDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT DISTINCT item_id FROM bank_accounts WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list item ids: %w", err)
	}
	defer rows.Close()

	itemIDs := []string{}
	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			return nil, fmt.Errorf("failed to scan item id: %w", err)
		}
		itemIDs = append(itemIDs, itemID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item ids: %w", err)
	}

	return itemIDs, nil
}

func (r *BankAccountRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user bank accounts: %w", err)
	}
	return nil
}
