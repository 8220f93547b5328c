package banksync

import (
	"context"
	"log"
	"time"

	"grana/internal/domain/banking"
	"grana/internal/infrastructure/aggregator"
)

// Defaults applied when the aggregator omits display fields.
const (
	defaultCardName       = "Cartão de Crédito"
	defaultLoanType       = "Personal"
	defaultInvestmentName = "Investimento"
)

// syncAccounts upserts the item's bank accounts and returns them for
// the transaction stage. Per-record failures are logged and skipped.
func (s *Service) syncAccounts(ctx context.Context, apiKey, userID, itemID, bankName string, summary *Summary) ([]aggregator.Account, error) {
	accounts, err := s.client.ListAccounts(ctx, apiKey, itemID)
	if err != nil {
		return nil, err
	}

	for _, apiAccount := range accounts {
		account := &banking.BankAccount{
			UserID:            userID,
			ItemID:            itemID,
			ProviderAccountID: apiAccount.ID,
			BankName:          bankName,
			AccountType:       apiAccount.Type,
			Balance:           apiAccount.Balance,
			Currency:          apiAccount.Currency,
		}
		if account.Currency == "" {
			account.Currency = "BRL"
		}

		if err := s.bankAccounts.Upsert(ctx, account); err != nil {
			log.Printf("User %s: failed to upsert account %s: %v", userID, apiAccount.ID, err)
			continue
		}

		summary.Synced.Accounts++
		summary.Totals.Balance += apiAccount.Balance
	}

	s.logStage(ctx, userID, itemID, "accounts", "accounts synced", LogLevelInfo, map[string]any{
		"found":  len(accounts),
		"synced": summary.Synced.Accounts,
	})

	return accounts, nil
}

func (s *Service) syncCreditCards(ctx context.Context, apiKey, userID, itemID string, summary *Summary) error {
	cards, err := s.client.ListCreditCards(ctx, apiKey, itemID)
	if err != nil {
		return err
	}

	for _, apiCard := range cards {
		card := &banking.CreditCard{
			UserID:         userID,
			ItemID:         itemID,
			ProviderCardID: apiCard.ID,
			CardName:       apiCard.Name,
			CurrentBalance: apiCard.Balance,
		}
		if card.CardName == "" {
			card.CardName = defaultCardName
		}
		if apiCard.CreditData != nil {
			card.CardBrand = apiCard.CreditData.Brand
			card.CreditLimit = apiCard.CreditData.CreditLimit
			card.AvailableLimit = apiCard.CreditData.AvailableCreditLimit
			if day, ok := parseDayOfMonth(apiCard.CreditData.BalanceDueDate); ok {
				card.DueDay = &day
			}
			if day, ok := parseDayOfMonth(apiCard.CreditData.BalanceCloseDate); ok {
				card.ClosingDay = &day
			}
		}

		if err := s.creditCards.Upsert(ctx, card); err != nil {
			log.Printf("User %s: failed to upsert credit card %s: %v", userID, apiCard.ID, err)
			continue
		}

		summary.Synced.CreditCards++
		summary.Totals.CreditLimit += card.CreditLimit
		summary.Totals.CreditAvailable += card.AvailableLimit
	}

	s.logStage(ctx, userID, itemID, "credit_cards", "credit cards synced", LogLevelInfo, map[string]any{
		"found":  len(cards),
		"synced": summary.Synced.CreditCards,
	})

	return nil
}

func (s *Service) syncLoans(ctx context.Context, apiKey, userID, itemID string, summary *Summary) error {
	loans, err := s.client.ListLoans(ctx, apiKey, itemID)
	if err != nil {
		return err
	}

	for _, apiLoan := range loans {
		loan := &banking.Loan{
			UserID:            userID,
			ItemID:            itemID,
			ProviderLoanID:    apiLoan.ID,
			LoanType:          apiLoan.ProductType,
			PrincipalAmount:   apiLoan.ContractAmount,
			OutstandingDebt:   apiLoan.OutstandingBalance,
			InterestRate:      apiLoan.InterestRate,
			InstallmentValue:  apiLoan.InstallmentAmount,
			TotalInstallments: apiLoan.NumberOfInstallments,
			PaidInstallments:  apiLoan.PaidInstallments,
			MaturityDate:      parseProviderDate(apiLoan.MaturityDate),
		}
		if loan.LoanType == "" {
			loan.LoanType = defaultLoanType
		}

		if err := s.loans.Upsert(ctx, loan); err != nil {
			log.Printf("User %s: failed to upsert loan %s: %v", userID, apiLoan.ID, err)
			continue
		}

		summary.Synced.Loans++
		summary.Totals.Loans += apiLoan.OutstandingBalance
	}

	s.logStage(ctx, userID, itemID, "loans", "loans synced", LogLevelInfo, map[string]any{
		"found":  len(loans),
		"synced": summary.Synced.Loans,
	})

	return nil
}

func (s *Service) syncInvestments(ctx context.Context, apiKey, userID, itemID string, summary *Summary) error {
	investments, err := s.client.ListInvestments(ctx, apiKey, itemID)
	if err != nil {
		return err
	}

	for _, apiInvestment := range investments {
		investment := &banking.Investment{
			UserID:               userID,
			ItemID:               itemID,
			ProviderInvestmentID: apiInvestment.ID,
			Name:                 apiInvestment.Name,
			InvestmentType:       apiInvestment.Type,
			Balance:              apiInvestment.Balance,
			AnnualRate:           apiInvestment.AnnualRate,
			MaturityDate:         parseProviderDate(apiInvestment.MaturityDate),
		}
		if investment.Name == "" {
			investment.Name = defaultInvestmentName
		}

		if err := s.investments.Upsert(ctx, investment); err != nil {
			log.Printf("User %s: failed to upsert investment %s: %v", userID, apiInvestment.ID, err)
			continue
		}

		summary.Synced.Investments++
		summary.Totals.Investments += apiInvestment.Balance
	}

	s.logStage(ctx, userID, itemID, "investments", "investments synced", LogLevelInfo, map[string]any{
		"found":  len(investments),
		"synced": summary.Synced.Investments,
	})

	return nil
}

// parseProviderDate parses an aggregator date string; absent or
// malformed dates stay nil rather than failing the record.
func parseProviderDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
		if err != nil {
			return nil
		}
	}
	return &parsed
}

// parseDayOfMonth extracts the day component from a provider date,
// used for card due/closing days.
func parseDayOfMonth(value string) (int, bool) {
	date := parseProviderDate(value)
	if date == nil {
		return 0, false
	}
	return date.Day(), true
}
