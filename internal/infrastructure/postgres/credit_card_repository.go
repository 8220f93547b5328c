package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"grana/internal/domain/banking"
)

type CreditCardRepository struct {
	db *DB
}

var _ banking.CreditCardRepository = (*CreditCardRepository)(nil)

func NewCreditCardRepository(db *DB) *CreditCardRepository {
	return &CreditCardRepository{db: db}
}

func (r *CreditCardRepository) Upsert(ctx context.Context, card *banking.CreditCard) error {
	query := `
		INSERT INTO credit_cards
			(user_id, item_id, provider_card_id, card_name, card_brand, credit_limit,
			 available_limit, current_balance, due_day, closing_day, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (provider_card_id) DO UPDATE SET
			card_name       = EXCLUDED.card_name,
			card_brand      = EXCLUDED.card_brand,
			credit_limit    = EXCLUDED.credit_limit,
			available_limit = EXCLUDED.available_limit,
			current_balance = EXCLUDED.current_balance,
			due_day         = EXCLUDED.due_day,
			closing_day     = EXCLUDED.closing_day,
			last_synced_at  = NOW()
	`

	_, err := r.db.ExecContext(
		ctx, query,
		card.UserID, card.ItemID, card.ProviderCardID, card.CardName, card.CardBrand,
		card.CreditLimit, card.AvailableLimit, card.CurrentBalance, card.DueDay, card.ClosingDay,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert credit card: %w", err)
	}

	return nil
}

func (r *CreditCardRepository) ListByUser(ctx context.Context, userID string) ([]banking.CreditCard, error) {
	query := `
		SELECT id, user_id, item_id, provider_card_id, card_name, card_brand, credit_limit,
		       available_limit, current_balance, due_day, closing_day, last_synced_at, created_at
		FROM credit_cards
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	defer rows.Close()

	cards := []banking.CreditCard{}
	for rows.Next() {
		var card banking.CreditCard
		var dueDay, closingDay sql.NullInt64
		var lastSyncedAt sql.NullTime
		if err := rows.Scan(
			&card.ID, &card.UserID, &card.ItemID, &card.ProviderCardID,
			&card.CardName, &card.CardBrand, &card.CreditLimit,
			&card.AvailableLimit, &card.CurrentBalance,
			&dueDay, &closingDay, &lastSyncedAt, &card.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		if dueDay.Valid {
			d := int(dueDay.Int64)
			card.DueDay = &d
		}
		if closingDay.Valid {
			d := int(closingDay.Int64)
			card.ClosingDay = &d
		}
		if lastSyncedAt.Valid {
			card.LastSyncedAt = &lastSyncedAt.Time
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credit cards: %w", err)
	}

	return cards, nil
}

func (r *CreditCardRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credit_cards WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user credit cards: %w", err)
	}
	return nil
}
