package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"grana/internal/domain/transaction"
	"grana/internal/infrastructure/llm"
	"grana/internal/shared/middleware"
)

type TransactionHandler struct {
	transactionRepo transaction.Repository
	recategorizer   *transaction.Recategorizer
}

func NewTransactionHandler(transactionRepo transaction.Repository, recategorizer *transaction.Recategorizer) *TransactionHandler {
	return &TransactionHandler{
		transactionRepo: transactionRepo,
		recategorizer:   recategorizer,
	}
}

type createTransactionRequest struct {
	Item           string  `json:"item"`
	Valor          float64 `json:"valor"`
	Tipo           string  `json:"tipo"`
	Categoria      string  `json:"categoria"`
	FormaPagamento *string `json:"forma_pagamento"`
}

// HandleTransactions serves GET (list) and POST (create) on the
// collection route.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	transactions, err := h.transactionRepo.ListByUser(r.Context(), userID, limit)
	if err != nil {
		log.Printf("User %s: failed to list transactions: %v", userID, err)
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Item) == "" {
		http.Error(w, "item is required", http.StatusBadRequest)
		return
	}
	if req.Valor <= 0 {
		http.Error(w, "valor must be positive", http.StatusBadRequest)
		return
	}

	tipo := transaction.Type(strings.ToUpper(strings.TrimSpace(req.Tipo)))
	if !tipo.IsValid() {
		http.Error(w, "tipo must be RECEITA, DESPESA or RESERVA", http.StatusBadRequest)
		return
	}

	categoria := strings.TrimSpace(req.Categoria)
	if categoria == "" {
		categoria = transaction.CategoryOther
	}

	tx := &transaction.Transaction{
		UserID:         userID,
		Item:           strings.TrimSpace(req.Item),
		Valor:          req.Valor,
		Tipo:           tipo,
		Categoria:      categoria,
		FormaPagamento: req.FormaPagamento,
	}

	if err := h.transactionRepo.Create(r.Context(), tx); err != nil {
		log.Printf("User %s: failed to create transaction: %v", userID, err)
		http.Error(w, "Failed to create transaction", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

// HandleTransactionByID serves DELETE /api/transactions/{id}.
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}

	if err := h.transactionRepo.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		log.Printf("User %s: failed to delete transaction %s: %v", userID, id, err)
		http.Error(w, "Failed to delete transaction", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleRecategorize runs one batch of model-driven recategorization
// over the user's placeholder rows.
func (h *TransactionHandler) HandleRecategorize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.recategorizer.Run(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, msgRateLimited)
		case errors.Is(err, llm.ErrQuotaExceeded):
			writeError(w, http.StatusPaymentRequired, msgQuotaExceeded)
		default:
			log.Printf("User %s: recategorization failed: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Falha ao recategorizar transações.")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
