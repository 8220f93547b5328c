package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"grana/internal/domain/banking"
)

type InvestmentRepository struct {
	db *DB
}

var _ banking.InvestmentRepository = (*InvestmentRepository)(nil)

func NewInvestmentRepository(db *DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Upsert(ctx context.Context, investment *banking.Investment) error {
	query := `
		INSERT INTO investments
			(user_id, item_id, provider_investment_id, name, investment_type, balance,
			 annual_rate, maturity_date, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (provider_investment_id) DO UPDATE SET
			name            = EXCLUDED.name,
			investment_type = EXCLUDED.investment_type,
			balance         = EXCLUDED.balance,
			annual_rate     = EXCLUDED.annual_rate,
			maturity_date   = EXCLUDED.maturity_date,
			last_synced_at  = NOW()
	`

	_, err := r.db.ExecContext(
		ctx, query,
		investment.UserID, investment.ItemID, investment.ProviderInvestmentID,
		investment.Name, investment.InvestmentType, investment.Balance,
		investment.AnnualRate, investment.MaturityDate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert investment: %w", err)
	}

	return nil
}

func (r *InvestmentRepository) ListByUser(ctx context.Context, userID string) ([]banking.Investment, error) {
	query := `
		SELECT id, user_id, item_id, provider_investment_id, name, investment_type,
		       balance, annual_rate, maturity_date, last_synced_at, created_at
		FROM investments
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	investments := []banking.Investment{}
	for rows.Next() {
		var investment banking.Investment
		var maturityDate, lastSyncedAt sql.NullTime
		if err := rows.Scan(
			&investment.ID, &investment.UserID, &investment.ItemID, &investment.ProviderInvestmentID,
			&investment.Name, &investment.InvestmentType, &investment.Balance,
			&investment.AnnualRate, &maturityDate, &lastSyncedAt, &investment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		if maturityDate.Valid {
			investment.MaturityDate = &maturityDate.Time
		}
		if lastSyncedAt.Valid {
			investment.LastSyncedAt = &lastSyncedAt.Time
		}
		investments = append(investments, investment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investments: %w", err)
	}

	return investments, nil
}

func (r *InvestmentRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user investments: %w", err)
	}
	return nil
}
