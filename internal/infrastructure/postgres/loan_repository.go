package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"grana/internal/domain/banking"
)

type LoanRepository struct {
	db *DB
}

var _ banking.LoanRepository = (*LoanRepository)(nil)

func NewLoanRepository(db *DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Upsert(ctx context.Context, loan *banking.Loan) error {
	query := `
		INSERT INTO loans
			(user_id, item_id, provider_loan_id, loan_type, principal_amount, outstanding_debt,
			 interest_rate, installment_value, total_installments, paid_installments,
			 maturity_date, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (provider_loan_id) DO UPDATE SET
			loan_type          = EXCLUDED.loan_type,
			principal_amount   = EXCLUDED.principal_amount,
			outstanding_debt   = EXCLUDED.outstanding_debt,
			interest_rate      = EXCLUDED.interest_rate,
			installment_value  = EXCLUDED.installment_value,
			total_installments = EXCLUDED.total_installments,
			paid_installments  = EXCLUDED.paid_installments,
			maturity_date      = EXCLUDED.maturity_date,
			last_synced_at     = NOW()
	`

	_, err := r.db.ExecContext(
		ctx, query,
		loan.UserID, loan.ItemID, loan.ProviderLoanID, loan.LoanType,
		loan.PrincipalAmount, loan.OutstandingDebt, loan.InterestRate, loan.InstallmentValue,
		loan.TotalInstallments, loan.PaidInstallments, loan.MaturityDate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert loan: %w", err)
	}

	return nil
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID string) ([]banking.Loan, error) {
	query := `
		SELECT id, user_id, item_id, provider_loan_id, loan_type, principal_amount,
		       outstanding_debt, interest_rate, installment_value, total_installments,
		       paid_installments, maturity_date, last_synced_at, created_at
		FROM loans
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	loans := []banking.Loan{}
	for rows.Next() {
		var loan banking.Loan
		var totalInstallments, paidInstallments sql.NullInt64
		var maturityDate, lastSyncedAt sql.NullTime
		if err := rows.Scan(
			&loan.ID, &loan.UserID, &loan.ItemID, &loan.ProviderLoanID, &loan.LoanType,
			&loan.PrincipalAmount, &loan.OutstandingDebt, &loan.InterestRate, &loan.InstallmentValue,
			&totalInstallments, &paidInstallments, &maturityDate, &lastSyncedAt, &loan.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		if totalInstallments.Valid {
			n := int(totalInstallments.Int64)
			loan.TotalInstallments = &n
		}
		if paidInstallments.Valid {
			n := int(paidInstallments.Int64)
			loan.PaidInstallments = &n
		}
		if maturityDate.Valid {
			loan.MaturityDate = &maturityDate.Time
		}
		if lastSyncedAt.Valid {
			loan.LastSyncedAt = &lastSyncedAt.Time
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}

	return loans, nil
}

func (r *LoanRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user loans: %w", err)
	}
	return nil
}
