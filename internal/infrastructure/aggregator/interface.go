package aggregator

import (
	"context"
	"time"
)

// ClientInterface defines the methods required from the aggregator API client
type ClientInterface interface {
	Authenticate(ctx context.Context) (string, error)
	CreateConnectToken(ctx context.Context, apiKey, webhookURL, clientUserID string) (string, error)
	GetItem(ctx context.Context, apiKey, itemID string) (*Item, error)
	DeleteItem(ctx context.Context, apiKey, itemID string) error
	ListAccounts(ctx context.Context, apiKey, itemID string) ([]Account, error)
	ListCreditCards(ctx context.Context, apiKey, itemID string) ([]CreditCard, error)
	ListLoans(ctx context.Context, apiKey, itemID string) ([]Loan, error)
	ListInvestments(ctx context.Context, apiKey, itemID string) ([]Investment, error)
	ListTransactions(ctx context.Context, apiKey, accountID string, from time.Time) ([]Transaction, error)
}
