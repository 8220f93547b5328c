package banksync

import (
	"context"
	"time"

	"grana/internal/domain/banking"
	"grana/internal/domain/transaction"
	"grana/internal/infrastructure/aggregator"
)

type MockAggregatorClient struct {
	AuthenticateFunc       func(ctx context.Context) (string, error)
	CreateConnectTokenFunc func(ctx context.Context, apiKey, webhookURL, clientUserID string) (string, error)
	GetItemFunc            func(ctx context.Context, apiKey, itemID string) (*aggregator.Item, error)
	DeleteItemFunc         func(ctx context.Context, apiKey, itemID string) error
	ListAccountsFunc       func(ctx context.Context, apiKey, itemID string) ([]aggregator.Account, error)
	ListCreditCardsFunc    func(ctx context.Context, apiKey, itemID string) ([]aggregator.CreditCard, error)
	ListLoansFunc          func(ctx context.Context, apiKey, itemID string) ([]aggregator.Loan, error)
	ListInvestmentsFunc    func(ctx context.Context, apiKey, itemID string) ([]aggregator.Investment, error)
	ListTransactionsFunc   func(ctx context.Context, apiKey, accountID string, from time.Time) ([]aggregator.Transaction, error)
}

func (m *MockAggregatorClient) Authenticate(ctx context.Context) (string, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx)
	}
	return "test-api-key", nil
}
func (m *MockAggregatorClient) CreateConnectToken(ctx context.Context, apiKey, webhookURL, clientUserID string) (string, error) {
	if m.CreateConnectTokenFunc != nil {
		return m.CreateConnectTokenFunc(ctx, apiKey, webhookURL, clientUserID)
	}
	return "test-connect-token", nil
}
func (m *MockAggregatorClient) GetItem(ctx context.Context, apiKey, itemID string) (*aggregator.Item, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, apiKey, itemID)
	}
	return &aggregator.Item{ID: itemID, Connector: aggregator.Connector{Name: "Banco Teste"}}, nil
}
func (m *MockAggregatorClient) DeleteItem(ctx context.Context, apiKey, itemID string) error {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, apiKey, itemID)
	}
	return nil
}
func (m *MockAggregatorClient) ListAccounts(ctx context.Context, apiKey, itemID string) ([]aggregator.Account, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx, apiKey, itemID)
	}
	return []aggregator.Account{}, nil
}
func (m *MockAggregatorClient) ListCreditCards(ctx context.Context, apiKey, itemID string) ([]aggregator.CreditCard, error) {
	if m.ListCreditCardsFunc != nil {
		return m.ListCreditCardsFunc(ctx, apiKey, itemID)
	}
	return []aggregator.CreditCard{}, nil
}
func (m *MockAggregatorClient) ListLoans(ctx context.Context, apiKey, itemID string) ([]aggregator.Loan, error) {
	if m.ListLoansFunc != nil {
		return m.ListLoansFunc(ctx, apiKey, itemID)
	}
	return []aggregator.Loan{}, nil
}
func (m *MockAggregatorClient) ListInvestments(ctx context.Context, apiKey, itemID string) ([]aggregator.Investment, error) {
	if m.ListInvestmentsFunc != nil {
		return m.ListInvestmentsFunc(ctx, apiKey, itemID)
	}
	return []aggregator.Investment{}, nil
}
func (m *MockAggregatorClient) ListTransactions(ctx context.Context, apiKey, accountID string, from time.Time) ([]aggregator.Transaction, error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx, apiKey, accountID, from)
	}
	return []aggregator.Transaction{}, nil
}

type MockBankAccountRepo struct {
	UpsertFunc              func(ctx context.Context, account *banking.BankAccount) error
	ListByUserFunc          func(ctx context.Context, userID string) ([]banking.BankAccount, error)
	DeleteByItemFunc        func(ctx context.Context, itemID string) error
	DeleteByItemForUserFunc func(ctx context.Context, itemID, userID string) error
	ListSyncTargetsFunc     func(ctx context.Context) ([]banking.SyncTarget, error)
	ListItemIDsByUserFunc   func(ctx context.Context, userID string) ([]string, error)
	DeleteAllByUserFunc     func(ctx context.Context, userID string) error
}

func (m *MockBankAccountRepo) Upsert(ctx context.Context, account *banking.BankAccount) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, account)
	}
	return nil
}
func (m *MockBankAccountRepo) ListByUser(ctx context.Context, userID string) ([]banking.BankAccount, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}
func (m *MockBankAccountRepo) DeleteByItem(ctx context.Context, itemID string) error {
	if m.DeleteByItemFunc != nil {
		return m.DeleteByItemFunc(ctx, itemID)
	}
	return nil
}
func (m *MockBankAccountRepo) DeleteByItemForUser(ctx context.Context, itemID, userID string) error {
	if m.DeleteByItemForUserFunc != nil {
		return m.DeleteByItemForUserFunc(ctx, itemID, userID)
	}
	return nil
}
func (m *MockBankAccountRepo) ListSyncTargets(ctx context.Context) ([]banking.SyncTarget, error) {
	if m.ListSyncTargetsFunc != nil {
		return m.ListSyncTargetsFunc(ctx)
	}
	return nil, nil
}
func (m *MockBankAccountRepo) ListItemIDsByUser(ctx context.Context, userID string) ([]string, error) {
	if m.ListItemIDsByUserFunc != nil {
		return m.ListItemIDsByUserFunc(ctx, userID)
	}
	return nil, nil
}
func (m *MockBankAccountRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	if m.DeleteAllByUserFunc != nil {
		return m.DeleteAllByUserFunc(ctx, userID)
	}
	return nil
}

type MockCreditCardRepo struct {
	UpsertFunc          func(ctx context.Context, card *banking.CreditCard) error
	ListByUserFunc      func(ctx context.Context, userID string) ([]banking.CreditCard, error)
	DeleteAllByUserFunc func(ctx context.Context, userID string) error
}

func (m *MockCreditCardRepo) Upsert(ctx context.Context, card *banking.CreditCard) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, card)
	}
	return nil
}
func (m *MockCreditCardRepo) ListByUser(ctx context.Context, userID string) ([]banking.CreditCard, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}
func (m *MockCreditCardRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	if m.DeleteAllByUserFunc != nil {
		return m.DeleteAllByUserFunc(ctx, userID)
	}
	return nil
}

type MockLoanRepo struct {
	UpsertFunc          func(ctx context.Context, loan *banking.Loan) error
	ListByUserFunc      func(ctx context.Context, userID string) ([]banking.Loan, error)
	DeleteAllByUserFunc func(ctx context.Context, userID string) error
}

func (m *MockLoanRepo) Upsert(ctx context.Context, loan *banking.Loan) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, loan)
	}
	return nil
}
func (m *MockLoanRepo) ListByUser(ctx context.Context, userID string) ([]banking.Loan, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}
func (m *MockLoanRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	if m.DeleteAllByUserFunc != nil {
		return m.DeleteAllByUserFunc(ctx, userID)
	}
	return nil
}

type MockInvestmentRepo struct {
	UpsertFunc          func(ctx context.Context, investment *banking.Investment) error
	ListByUserFunc      func(ctx context.Context, userID string) ([]banking.Investment, error)
	DeleteAllByUserFunc func(ctx context.Context, userID string) error
}

func (m *MockInvestmentRepo) Upsert(ctx context.Context, investment *banking.Investment) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, investment)
	}
	return nil
}
func (m *MockInvestmentRepo) ListByUser(ctx context.Context, userID string) ([]banking.Investment, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}
func (m *MockInvestmentRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	if m.DeleteAllByUserFunc != nil {
		return m.DeleteAllByUserFunc(ctx, userID)
	}
	return nil
}

type MockTransactionRepo struct {
	CreateFunc            func(ctx context.Context, tx *transaction.Transaction) error
	DeleteFunc            func(ctx context.Context, id, userID string) error
	ListByUserFunc        func(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error)
	GetLastByUserFunc     func(ctx context.Context, userID string) (*transaction.Transaction, error)
	ExistsFunc            func(ctx context.Context, userID, item string, valor float64, createdAt time.Time) (bool, error)
	ListUncategorizedFunc func(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error)
	UpdateCategoryFunc    func(ctx context.Context, id, userID, categoria string) error
	DeleteAllByUserFunc   func(ctx context.Context, userID string) error
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
	return nil, nil
}
func (m *MockTransactionRepo) GetLastByUser(ctx context.Context, userID string) (*transaction.Transaction, error) {
	if m.GetLastByUserFunc != nil {
		return m.GetLastByUserFunc(ctx, userID)
	}
	return nil, nil
}
func (m *MockTransactionRepo) Exists(ctx context.Context, userID, item string, valor float64, createdAt time.Time) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, userID, item, valor, createdAt)
	}
	return false, nil
}
func (m *MockTransactionRepo) ListUncategorized(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error) {
	if m.ListUncategorizedFunc != nil {
		return m.ListUncategorizedFunc(ctx, userID, limit)
	}
	return nil, nil
}
func (m *MockTransactionRepo) UpdateCategory(ctx context.Context, id, userID, categoria string) error {
	if m.UpdateCategoryFunc != nil {
		return m.UpdateCategoryFunc(ctx, id, userID, categoria)
	}
	return nil
}
func (m *MockTransactionRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	if m.DeleteAllByUserFunc != nil {
		return m.DeleteAllByUserFunc(ctx, userID)
	}
	return nil
}

type MockSyncLogRepo struct {
	AppendFunc          func(ctx context.Context, entry *SyncLog) error
	ListByUserFunc      func(ctx context.Context, userID string, limit int) ([]SyncLog, error)
	DeleteAllByUserFunc func(ctx context.Context, userID string) error
}

func (m *MockSyncLogRepo) Append(ctx context.Context, entry *SyncLog) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	return nil
}
func (m *MockSyncLogRepo) ListByUser(ctx context.Context, userID string, limit int) ([]SyncLog, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit)
	}
	return nil, nil
}
func (m *MockSyncLogRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	if m.DeleteAllByUserFunc != nil {
		return m.DeleteAllByUserFunc(ctx, userID)
	}
	return nil
}

func newTestService(
	client *MockAggregatorClient,
	accounts *MockBankAccountRepo,
	cards *MockCreditCardRepo,
	loans *MockLoanRepo,
	investments *MockInvestmentRepo,
	transactions *MockTransactionRepo,
	logs *MockSyncLogRepo,
) *Service {
	if client == nil {
		client = &MockAggregatorClient{}
	}
	if accounts == nil {
		accounts = &MockBankAccountRepo{}
	}
	if cards == nil {
		cards = &MockCreditCardRepo{}
	}
	if loans == nil {
		loans = &MockLoanRepo{}
	}
	if investments == nil {
		investments = &MockInvestmentRepo{}
	}
	if transactions == nil {
		transactions = &MockTransactionRepo{}
	}
	if logs == nil {
		logs = &MockSyncLogRepo{}
	}
	return NewService(client, "https://api.grana.app/webhooks/aggregator", accounts, cards, loans, investments, transactions, logs)
}
