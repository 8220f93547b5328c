package banksync

import (
	"context"
	"log"
	"math"
	"time"

	"grana/internal/domain/transaction"
	"grana/internal/infrastructure/aggregator"
)

// fallbackDescription labels statement rows the provider sends with no
// usable description at all.
const fallbackDescription = "Transação bancária"

// syncTransactions pulls each account's transactions from the given
// date onward and inserts the ones not already in the ledger. Dedup is
// an exact match on (user, item, valor, created_at); there is no unique
// constraint backing it, so concurrent syncs of the same item can still
// double-insert. Per-account and per-row failures are logged and skipped.
func (s *Service) syncTransactions(ctx context.Context, apiKey, userID, itemID string, accounts []aggregator.Account, from time.Time, summary *Summary) error {
	paymentMethod := transaction.PaymentMethodBank

	for _, account := range accounts {
		providerTxs, err := s.client.ListTransactions(ctx, apiKey, account.ID, from)
		if err != nil {
			log.Printf("User %s: failed to fetch transactions for account %s: %v", userID, account.ID, err)
			continue
		}

		for _, providerTx := range providerTxs {
			date, err := providerTx.GetDate()
			if err != nil {
				log.Printf("User %s: skipping transaction %s: %v", userID, providerTx.ID, err)
				continue
			}

			tipo := transaction.TypeExpense
			if providerTx.Amount >= 0 {
				tipo = transaction.TypeIncome
			}

			item := providerTx.Description
			if item == "" {
				item = providerTx.DescriptionRaw
			}
			if item == "" {
				item = fallbackDescription
			}

			valor := math.Abs(providerTx.Amount)

			exists, err := s.transactions.Exists(ctx, userID, item, valor, date)
			if err != nil {
				log.Printf("User %s: dedup check failed for transaction %s: %v", userID, providerTx.ID, err)
				continue
			}
			if exists {
				continue
			}

			tx := &transaction.Transaction{
				UserID:         userID,
				Item:           item,
				Valor:          valor,
				Tipo:           tipo,
				Categoria:      transaction.SmartCategorize(item, providerTx.Category),
				FormaPagamento: &paymentMethod,
				CreatedAt:      date,
			}

			if err := s.transactions.Create(ctx, tx); err != nil {
				log.Printf("User %s: failed to insert transaction %s: %v", userID, providerTx.ID, err)
				continue
			}

			summary.Synced.Transactions++
		}
	}

	s.logStage(ctx, userID, itemID, "transactions", "transactions synced", LogLevelInfo, map[string]any{
		"inserted": summary.Synced.Transactions,
		"from":     from.Format("2006-01-02"),
	})

	return nil
}
