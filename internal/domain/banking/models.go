// Package banking holds the entities mirrored from the open-banking
// aggregator: connected accounts, credit cards, loans and investments.
package banking

import "time"

// BankAccount is a checking or savings account linked through the
// aggregator. ProviderAccountID is the aggregator's account ID and is
// the upsert key; ItemID ties the account to its connection item.
type BankAccount struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	ItemID            string     `json:"item_id"`
	ProviderAccountID string     `json:"provider_account_id"`
	BankName          string     `json:"bank_name"`
	AccountType       string     `json:"account_type"`
	Balance           float64    `json:"balance"`
	Currency          string     `json:"currency"`
	LastSyncedAt      *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type CreditCard struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	ItemID          string     `json:"item_id"`
	ProviderCardID  string     `json:"provider_card_id"`
	CardName        string     `json:"card_name"`
	CardBrand       string     `json:"card_brand"`
	CreditLimit     float64    `json:"credit_limit"`
	AvailableLimit  float64    `json:"available_limit"`
	CurrentBalance  float64    `json:"current_balance"`
	DueDay          *int       `json:"due_day,omitempty"`
	ClosingDay      *int       `json:"closing_day,omitempty"`
	LastSyncedAt    *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Loan struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	ItemID           string     `json:"item_id"`
	ProviderLoanID   string     `json:"provider_loan_id"`
	LoanType         string     `json:"loan_type"`
	PrincipalAmount  float64    `json:"principal_amount"`
	OutstandingDebt  float64    `json:"outstanding_debt"`
	InterestRate     float64    `json:"interest_rate"`
	InstallmentValue float64    `json:"installment_value"`
	TotalInstallments *int      `json:"total_installments,omitempty"`
	PaidInstallments  *int      `json:"paid_installments,omitempty"`
	MaturityDate     *time.Time `json:"maturity_date,omitempty"`
	LastSyncedAt     *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type Investment struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"user_id"`
	ItemID               string     `json:"item_id"`
	ProviderInvestmentID string     `json:"provider_investment_id"`
	Name                 string     `json:"name"`
	InvestmentType       string     `json:"investment_type"`
	Balance              float64    `json:"balance"`
	AnnualRate           float64    `json:"annual_rate"`
	MaturityDate         *time.Time `json:"maturity_date,omitempty"`
	LastSyncedAt         *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// SyncTarget identifies a connected item owned by a user, as needed by
// the scheduled re-sync: one entry per distinct (user, item) pair.
type SyncTarget struct {
	UserID   string `json:"user_id"`
	ItemID   string `json:"item_id"`
	BankName string `json:"bank_name"`
}
