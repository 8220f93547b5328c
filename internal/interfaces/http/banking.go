package http

import (
	"log"
	"net/http"

	"grana/internal/domain/banking"
	"grana/internal/shared/middleware"
)

type BankingHandler struct {
	accounts    banking.BankAccountRepository
	cards       banking.CreditCardRepository
	loans       banking.LoanRepository
	investments banking.InvestmentRepository
}

func NewBankingHandler(
	accounts banking.BankAccountRepository,
	cards banking.CreditCardRepository,
	loans banking.LoanRepository,
	investments banking.InvestmentRepository,
) *BankingHandler {
	return &BankingHandler{
		accounts:    accounts,
		cards:       cards,
		loans:       loans,
		investments: investments,
	}
}

type bankingOverview struct {
	BankAccounts []banking.BankAccount `json:"bankAccounts"`
	CreditCards  []banking.CreditCard  `json:"creditCards"`
	Loans        []banking.Loan        `json:"loans"`
	Investments  []banking.Investment  `json:"investments"`
}

// HandleOverview returns everything the dashboard needs in one call.
func (h *BankingHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	overview := bankingOverview{}

	var err error
	if overview.BankAccounts, err = h.accounts.ListByUser(ctx, userID); err != nil {
		log.Printf("User %s: failed to list bank accounts: %v", userID, err)
		http.Error(w, "Failed to load banking data", http.StatusInternalServerError)
		return
	}
	if overview.CreditCards, err = h.cards.ListByUser(ctx, userID); err != nil {
		log.Printf("User %s: failed to list credit cards: %v", userID, err)
		http.Error(w, "Failed to load banking data", http.StatusInternalServerError)
		return
	}
	if overview.Loans, err = h.loans.ListByUser(ctx, userID); err != nil {
		log.Printf("User %s: failed to list loans: %v", userID, err)
		http.Error(w, "Failed to load banking data", http.StatusInternalServerError)
		return
	}
	if overview.Investments, err = h.investments.ListByUser(ctx, userID); err != nil {
		log.Printf("User %s: failed to list investments: %v", userID, err)
		http.Error(w, "Failed to load banking data", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}
