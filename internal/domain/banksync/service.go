// Package banksync orchestrates pulling accounts, cards, loans,
// investments and transactions from the open-banking aggregator into
// the local ledger.
package banksync

import (
	"context"
	"fmt"
	"log"
	"time"

	"grana/internal/domain/banking"
	"grana/internal/domain/transaction"
	"grana/internal/infrastructure/aggregator"
)

const (
	// UserSyncWindowDays is the transaction lookback for user-triggered syncs.
	UserSyncWindowDays = 30
	// WebhookSyncWindowDays is the lookback when the aggregator signals
	// that an item changed.
	WebhookSyncWindowDays = 90
)

// SyncCounts reports how many records each stage upserted.
type SyncCounts struct {
	Accounts     int `json:"accounts"`
	CreditCards  int `json:"creditCards"`
	Loans        int `json:"loans"`
	Investments  int `json:"investments"`
	Transactions int `json:"transactions"`
}

// SyncTotals aggregates the money amounts seen during the sync.
type SyncTotals struct {
	Balance         float64 `json:"balance"`
	CreditLimit     float64 `json:"creditLimit"`
	CreditAvailable float64 `json:"creditAvailable"`
	Loans           float64 `json:"loans"`
	Investments     float64 `json:"investments"`
}

// Summary is the envelope returned to the client after a sync run.
type Summary struct {
	Success  bool       `json:"success"`
	BankName string     `json:"bankName"`
	Synced   SyncCounts `json:"synced"`
	Totals   SyncTotals `json:"totals"`
}

// Service runs the sync pipeline. Only credential brokering and item
// resolution are fatal; every entity stage catches its own failures so
// the remaining stages still run.
type Service struct {
	client       aggregator.ClientInterface
	webhookURL   string
	bankAccounts banking.BankAccountRepository
	creditCards  banking.CreditCardRepository
	loans        banking.LoanRepository
	investments  banking.InvestmentRepository
	transactions transaction.Repository
	syncLogs     SyncLogRepository
}

func NewService(
	client aggregator.ClientInterface,
	webhookURL string,
	bankAccounts banking.BankAccountRepository,
	creditCards banking.CreditCardRepository,
	loans banking.LoanRepository,
	investments banking.InvestmentRepository,
	transactions transaction.Repository,
	syncLogs SyncLogRepository,
) *Service {
	return &Service{
		client:       client,
		webhookURL:   webhookURL,
		bankAccounts: bankAccounts,
		creditCards:  creditCards,
		loans:        loans,
		investments:  investments,
		transactions: transactions,
		syncLogs:     syncLogs,
	}
}

// CreateConnectToken brokers a widget connect token for the user.
func (s *Service) CreateConnectToken(ctx context.Context, userID string) (string, error) {
	apiKey, err := s.client.Authenticate(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to authenticate with aggregator: %w", err)
	}

	token, err := s.client.CreateConnectToken(ctx, apiKey, s.webhookURL, userID)
	if err != nil {
		return "", fmt.Errorf("failed to create connect token: %w", err)
	}

	return token, nil
}

// SyncItem runs the full pipeline for one connection item on behalf of
// a known user. windowDays bounds the transaction lookback.
func (s *Service) SyncItem(ctx context.Context, userID, itemID string, windowDays int) (*Summary, error) {
	apiKey, err := s.client.Authenticate(ctx)
	if err != nil {
		s.logStage(ctx, userID, itemID, "auth", "aggregator authentication failed", LogLevelError, map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	item, err := s.client.GetItem(ctx, apiKey, itemID)
	if err != nil {
		s.logStage(ctx, userID, itemID, "item", "item resolution failed", LogLevelError, map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	bankName := item.BankName()
	s.logStage(ctx, userID, itemID, "start", "sync started", LogLevelInfo, map[string]any{
		"bank":       bankName,
		"windowDays": windowDays,
	})

	summary := &Summary{Success: true, BankName: bankName}

	// Accounts first: the transaction stage depends on them. A failure
	// here skips transactions but not the sibling entity stages.
	accounts, err := s.syncAccounts(ctx, apiKey, userID, itemID, bankName, summary)
	if err != nil {
		s.logStage(ctx, userID, itemID, "accounts", "account sync failed", LogLevelError, map[string]any{
			"error": err.Error(),
		})
	} else {
		from := time.Now().UTC().AddDate(0, 0, -windowDays)
		if err := s.syncTransactions(ctx, apiKey, userID, itemID, accounts, from, summary); err != nil {
			s.logStage(ctx, userID, itemID, "transactions", "transaction sync failed", LogLevelError, map[string]any{
				"error": err.Error(),
			})
		}
	}

	if err := s.syncCreditCards(ctx, apiKey, userID, itemID, summary); err != nil {
		s.logStage(ctx, userID, itemID, "credit_cards", "credit card sync failed", LogLevelError, map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.syncLoans(ctx, apiKey, userID, itemID, summary); err != nil {
		s.logStage(ctx, userID, itemID, "loans", "loan sync failed", LogLevelError, map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.syncInvestments(ctx, apiKey, userID, itemID, summary); err != nil {
		s.logStage(ctx, userID, itemID, "investments", "investment sync failed", LogLevelError, map[string]any{
			"error": err.Error(),
		})
	}

	s.logStage(ctx, userID, itemID, "done", "sync finished", LogLevelInfo, map[string]any{
		"accounts":     summary.Synced.Accounts,
		"creditCards":  summary.Synced.CreditCards,
		"loans":        summary.Synced.Loans,
		"investments":  summary.Synced.Investments,
		"transactions": summary.Synced.Transactions,
	})

	return summary, nil
}

// SyncItemFromWebhook resolves the owning user from the item itself and
// runs a sync with the wider webhook lookback window.
func (s *Service) SyncItemFromWebhook(ctx context.Context, itemID string) (*Summary, error) {
	apiKey, err := s.client.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with aggregator: %w", err)
	}

	item, err := s.client.GetItem(ctx, apiKey, itemID)
	if err != nil {
		return nil, err
	}
	if item.ClientUserID == "" {
		return nil, fmt.Errorf("%w: item %s has no client user", aggregator.ErrItemResolution, itemID)
	}

	return s.SyncItem(ctx, item.ClientUserID, itemID, WebhookSyncWindowDays)
}

// Disconnect removes the item upstream (a missing item is fine) and
// drops the user's local accounts linked to it.
func (s *Service) Disconnect(ctx context.Context, userID, itemID string) error {
	apiKey, err := s.client.Authenticate(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate with aggregator: %w", err)
	}

	if err := s.client.DeleteItem(ctx, apiKey, itemID); err != nil {
		return fmt.Errorf("failed to delete item upstream: %w", err)
	}

	if err := s.bankAccounts.DeleteByItemForUser(ctx, itemID, userID); err != nil {
		return err
	}

	s.logStage(ctx, userID, itemID, "disconnect", "item disconnected", LogLevelInfo, nil)
	return nil
}

// RemoveItemData drops all local bank accounts created from an item.
// Used when the aggregator reports the item deleted on its side.
func (s *Service) RemoveItemData(ctx context.Context, itemID string) error {
	return s.bankAccounts.DeleteByItem(ctx, itemID)
}

// PurgeUser disconnects every item upstream on a best-effort basis and
// deletes all rows the user owns.
func (s *Service) PurgeUser(ctx context.Context, userID string) error {
	itemIDs, err := s.bankAccounts.ListItemIDsByUser(ctx, userID)
	if err != nil {
		return err
	}

	if len(itemIDs) > 0 {
		apiKey, err := s.client.Authenticate(ctx)
		if err != nil {
			log.Printf("User %s: skipping upstream item deletion, auth failed: %v", userID, err)
		} else {
			for _, itemID := range itemIDs {
				if err := s.client.DeleteItem(ctx, apiKey, itemID); err != nil {
					log.Printf("User %s: failed to delete item %s upstream: %v", userID, itemID, err)
				}
			}
		}
	}

	if err := s.transactions.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.bankAccounts.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.creditCards.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.loans.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.investments.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.syncLogs.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}

	return nil
}

// SyncLogs returns the user's recent sync diagnostics.
func (s *Service) SyncLogs(ctx context.Context, userID string, limit int) ([]SyncLog, error) {
	return s.syncLogs.ListByUser(ctx, userID, limit)
}

// logStage appends a sync_logs row. Diagnostics must never break the
// sync itself, so persistence failures only hit the process log.
func (s *Service) logStage(ctx context.Context, userID, itemID, stage, message, level string, details map[string]any) {
	entry := &SyncLog{
		UserID:  userID,
		ItemID:  itemID,
		Stage:   stage,
		Message: message,
		Details: details,
		Level:   level,
	}
	if err := s.syncLogs.Append(ctx, entry); err != nil {
		log.Printf("User %s: failed to persist sync log (%s): %v", userID, stage, err)
	}
}
