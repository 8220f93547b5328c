package http

import (
	"context"
	"net/http"
	"time"

	"grana/internal/domain/banking"
	"grana/internal/domain/banksync"
	"grana/internal/domain/transaction"
	"grana/internal/infrastructure/aggregator"
	"grana/internal/shared/middleware"
)

const testUserID = "4e8d1a6b-2c7f-49e3-b5a0-8f9c3d2e1b0a"

// withUser stamps the context the way the auth middleware would.
func withUser(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, testUserID)
	return r.WithContext(ctx)
}

type MockGateway struct {
	TranscribeFunc func(ctx context.Context, audioBase64, format, prompt string) (string, error)
	CompleteFunc   func(ctx context.Context, system, user string) (string, error)
}

func (m *MockGateway) Transcribe(ctx context.Context, audioBase64, format, prompt string) (string, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audioBase64, format, prompt)
	}
	return "gastei dez reais", nil
}
func (m *MockGateway) Complete(ctx context.Context, system, user string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, system, user)
	}
	return `{"transaction": {"item": "café", "valor": 10, "tipo": "despesa"}}`, nil
}

type MockTransactionRepo struct {
	CreateFunc        func(ctx context.Context, tx *transaction.Transaction) error
	DeleteFunc        func(ctx context.Context, id, userID string) error
	ListByUserFunc    func(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error)
	GetLastByUserFunc func(ctx context.Context, userID string) (*transaction.Transaction, error)
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *transaction.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx)
	}
	return nil
}
func (m *MockTransactionRepo) Delete(ctx context.Context, id, userID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}
func (m *MockTransactionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit)
	}
	return []transaction.Transaction{}, nil
}
func (m *MockTransactionRepo) GetLastByUser(ctx context.Context, userID string) (*transaction.Transaction, error) {
	if m.GetLastByUserFunc != nil {
		return m.GetLastByUserFunc(ctx, userID)
	}
	return nil, nil
}
func (m *MockTransactionRepo) Exists(ctx context.Context, userID, item string, valor float64, createdAt time.Time) (bool, error) {
	return false, nil
}
func (m *MockTransactionRepo) ListUncategorized(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error) {
	return nil, nil
}
func (m *MockTransactionRepo) UpdateCategory(ctx context.Context, id, userID, categoria string) error {
	return nil
}
func (m *MockTransactionRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	return nil
}

type MockAggregatorClient struct {
	AuthenticateFunc func(ctx context.Context) (string, error)
	GetItemFunc      func(ctx context.Context, apiKey, itemID string) (*aggregator.Item, error)
	DeleteItemFunc   func(ctx context.Context, apiKey, itemID string) error
}

func (m *MockAggregatorClient) Authenticate(ctx context.Context) (string, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx)
	}
	return "key", nil
}
func (m *MockAggregatorClient) CreateConnectToken(ctx context.Context, apiKey, webhookURL, clientUserID string) (string, error) {
	return "connect-token", nil
}
func (m *MockAggregatorClient) GetItem(ctx context.Context, apiKey, itemID string) (*aggregator.Item, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, apiKey, itemID)
	}
	return &aggregator.Item{ID: itemID, ClientUserID: testUserID, Connector: aggregator.Connector{Name: "Banco Teste"}}, nil
}
func (m *MockAggregatorClient) DeleteItem(ctx context.Context, apiKey, itemID string) error {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, apiKey, itemID)
	}
	return nil
}
func (m *MockAggregatorClient) ListAccounts(ctx context.Context, apiKey, itemID string) ([]aggregator.Account, error) {
	return []aggregator.Account{}, nil
}
func (m *MockAggregatorClient) ListCreditCards(ctx context.Context, apiKey, itemID string) ([]aggregator.CreditCard, error) {
	return []aggregator.CreditCard{}, nil
}
func (m *MockAggregatorClient) ListLoans(ctx context.Context, apiKey, itemID string) ([]aggregator.Loan, error) {
	return []aggregator.Loan{}, nil
}
func (m *MockAggregatorClient) ListInvestments(ctx context.Context, apiKey, itemID string) ([]aggregator.Investment, error) {
	return []aggregator.Investment{}, nil
}
func (m *MockAggregatorClient) ListTransactions(ctx context.Context, apiKey, accountID string, from time.Time) ([]aggregator.Transaction, error) {
	return []aggregator.Transaction{}, nil
}

type MockBankAccountRepo struct {
	DeleteByItemFunc func(ctx context.Context, itemID string) error
}

func (m *MockBankAccountRepo) Upsert(ctx context.Context, account *banking.BankAccount) error {
	return nil
}
func (m *MockBankAccountRepo) ListByUser(ctx context.Context, userID string) ([]banking.BankAccount, error) {
	return []banking.BankAccount{}, nil
}
func (m *MockBankAccountRepo) DeleteByItem(ctx context.Context, itemID string) error {
	if m.DeleteByItemFunc != nil {
		return m.DeleteByItemFunc(ctx, itemID)
	}
	return nil
}
func (m *MockBankAccountRepo) DeleteByItemForUser(ctx context.Context, itemID, userID string) error {
	return nil
}
func (m *MockBankAccountRepo) ListSyncTargets(ctx context.Context) ([]banking.SyncTarget, error) {
	return nil, nil
}
func (m *MockBankAccountRepo) ListItemIDsByUser(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (m *MockBankAccountRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	return nil
}

type MockCreditCardRepo struct{}

func (m *MockCreditCardRepo) Upsert(ctx context.Context, card *banking.CreditCard) error { return nil }
func (m *MockCreditCardRepo) ListByUser(ctx context.Context, userID string) ([]banking.CreditCard, error) {
	return []banking.CreditCard{}, nil
}
func (m *MockCreditCardRepo) DeleteAllByUser(ctx context.Context, userID string) error { return nil }

type MockLoanRepo struct{}

func (m *MockLoanRepo) Upsert(ctx context.Context, loan *banking.Loan) error { return nil }
func (m *MockLoanRepo) ListByUser(ctx context.Context, userID string) ([]banking.Loan, error) {
	return []banking.Loan{}, nil
}
func (m *MockLoanRepo) DeleteAllByUser(ctx context.Context, userID string) error { return nil }

type MockInvestmentRepo struct{}

func (m *MockInvestmentRepo) Upsert(ctx context.Context, investment *banking.Investment) error {
	return nil
}
func (m *MockInvestmentRepo) ListByUser(ctx context.Context, userID string) ([]banking.Investment, error) {
	return []banking.Investment{}, nil
}
func (m *MockInvestmentRepo) DeleteAllByUser(ctx context.Context, userID string) error { return nil }

type MockSyncLogRepo struct{}

func (m *MockSyncLogRepo) Append(ctx context.Context, entry *banksync.SyncLog) error { return nil }
func (m *MockSyncLogRepo) ListByUser(ctx context.Context, userID string, limit int) ([]banksync.SyncLog, error) {
	return []banksync.SyncLog{}, nil
}
func (m *MockSyncLogRepo) DeleteAllByUser(ctx context.Context, userID string) error { return nil }

func newMockSyncService(client *MockAggregatorClient, accounts *MockBankAccountRepo) *banksync.Service {
	if client == nil {
		client = &MockAggregatorClient{}
	}
	if accounts == nil {
		accounts = &MockBankAccountRepo{}
	}
	return banksync.NewService(
		client,
		"https://api.grana.app/webhooks/aggregator",
		accounts,
		&MockCreditCardRepo{},
		&MockLoanRepo{},
		&MockInvestmentRepo{},
		&MockTransactionRepo{},
		&MockSyncLogRepo{},
	)
}
