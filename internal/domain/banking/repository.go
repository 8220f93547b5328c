package banking

import "context"

// BankAccountRepository persists linked bank accounts.
type BankAccountRepository interface {
	// Upsert inserts or refreshes an account keyed on its provider ID.
	Upsert(ctx context.Context, account *BankAccount) error
	ListByUser(ctx context.Context, userID string) ([]BankAccount, error)

	// DeleteByItem removes every account created from the given
	// connection item. Used when the aggregator reports item/deleted.
	DeleteByItem(ctx context.Context, itemID string) error
	DeleteByItemForUser(ctx context.Context, itemID, userID string) error

	// ListSyncTargets returns the distinct (user, item) pairs that have
	// at least one linked account. Drives the scheduled re-sync.
	ListSyncTargets(ctx context.Context) ([]SyncTarget, error)
	ListItemIDsByUser(ctx context.Context, userID string) ([]string, error)

	DeleteAllByUser(ctx context.Context, userID string) error
}

type CreditCardRepository interface {
	Upsert(ctx context.Context, card *CreditCard) error
	ListByUser(ctx context.Context, userID string) ([]CreditCard, error)
	DeleteAllByUser(ctx context.Context, userID string) error
}

type LoanRepository interface {
	Upsert(ctx context.Context, loan *Loan) error
	ListByUser(ctx context.Context, userID string) ([]Loan, error)
	DeleteAllByUser(ctx context.Context, userID string) error
}

type InvestmentRepository interface {
	Upsert(ctx context.Context, investment *Investment) error
	ListByUser(ctx context.Context, userID string) ([]Investment, error)
	DeleteAllByUser(ctx context.Context, userID string) error
}
