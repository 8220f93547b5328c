package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"grana/internal/domain/transaction"
)

func TestHandleTransactions_List(t *testing.T) {
	var gotLimit int
	repo := &MockTransactionRepo{
		ListByUserFunc: func(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error) {
			gotLimit = limit
			return []transaction.Transaction{
				{ID: "tx-1", UserID: userID, Item: "almoço", Valor: 25, Tipo: transaction.TypeExpense, Categoria: "Alimentação"},
			}, nil
		},
	}
	handler := NewTransactionHandler(repo, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/transactions?limit=10", nil))
	rec := httptest.NewRecorder()
	handler.HandleTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotLimit != 10 {
		t.Errorf("expected limit 10, got %d", gotLimit)
	}

	var list []transaction.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 1 || list[0].Item != "almoço" {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestHandleTransactions_ListClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &MockTransactionRepo{
		ListByUserFunc: func(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	handler := NewTransactionHandler(repo, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/transactions?limit=9999", nil))
	rec := httptest.NewRecorder()
	handler.HandleTransactions(rec, req)

	if gotLimit != 50 {
		t.Errorf("expected out-of-range limit to fall back to 50, got %d", gotLimit)
	}
}

func TestHandleTransactions_Create(t *testing.T) {
	var created *transaction.Transaction
	repo := &MockTransactionRepo{
		CreateFunc: func(ctx context.Context, tx *transaction.Transaction) error {
			created = tx
			return nil
		},
	}
	handler := NewTransactionHandler(repo, nil)

	body := bytes.NewBufferString(`{"item": "mercado", "valor": 120.5, "tipo": "despesa"}`)
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/transactions", body))
	rec := httptest.NewRecorder()
	handler.HandleTransactions(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if created == nil {
		t.Fatal("expected a transaction to be created")
	}
	if created.Tipo != transaction.TypeExpense {
		t.Errorf("expected tipo normalized to DESPESA, got %s", created.Tipo)
	}
	if created.Categoria != transaction.CategoryOther {
		t.Errorf("expected default categoria %q, got %q", transaction.CategoryOther, created.Categoria)
	}
	if created.UserID != testUserID {
		t.Errorf("expected user %s, got %s", testUserID, created.UserID)
	}
}

func TestHandleTransactions_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing item", `{"valor": 10, "tipo": "despesa"}`},
		{"zero valor", `{"item": "x", "valor": 0, "tipo": "despesa"}`},
		{"negative valor", `{"item": "x", "valor": -3, "tipo": "despesa"}`},
		{"bad tipo", `{"item": "x", "valor": 10, "tipo": "gasto"}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserted := false
			repo := &MockTransactionRepo{
				CreateFunc: func(ctx context.Context, tx *transaction.Transaction) error {
					inserted = true
					return nil
				},
			}
			handler := NewTransactionHandler(repo, nil)

			req := withUser(httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBufferString(tt.body)))
			rec := httptest.NewRecorder()
			handler.HandleTransactions(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if inserted {
				t.Error("expected no insert on validation failure")
			}
		})
	}
}

func TestHandleTransactionByID_Delete(t *testing.T) {
	var gotID, gotUser string
	repo := &MockTransactionRepo{
		DeleteFunc: func(ctx context.Context, id, userID string) error {
			gotID, gotUser = id, userID
			return nil
		},
	}
	handler := NewTransactionHandler(repo, nil)

	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/transactions/tx-42", nil))
	rec := httptest.NewRecorder()
	handler.HandleTransactionByID(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != "tx-42" {
		t.Errorf("expected id tx-42, got %q", gotID)
	}
	if gotUser != testUserID {
		t.Errorf("expected user %s, got %s", testUserID, gotUser)
	}
}

func TestHandleTransactionByID_NotFound(t *testing.T) {
	repo := &MockTransactionRepo{
		DeleteFunc: func(ctx context.Context, id, userID string) error {
			return sql.ErrNoRows
		},
	}
	handler := NewTransactionHandler(repo, nil)

	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/transactions/missing", nil))
	rec := httptest.NewRecorder()
	handler.HandleTransactionByID(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleRecategorize(t *testing.T) {
	repo := &MockTransactionRepo{}
	gateway := &MockGateway{
		CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
			return "Saúde", nil
		},
	}
	handler := NewTransactionHandler(repo, transaction.NewRecategorizer(gateway, repo))

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/transactions/recategorize", nil))
	rec := httptest.NewRecorder()
	handler.HandleRecategorize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result transaction.RecategorizeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Processed != 0 {
		t.Errorf("expected empty batch, got %+v", result)
	}
}
