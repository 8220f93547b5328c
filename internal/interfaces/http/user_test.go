package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleDeleteAccount(t *testing.T) {
	handler := NewUserHandler(newMockSyncService(nil, nil))

	body := bytes.NewBufferString(`{"confirmation": "DELETE_MY_ACCOUNT"}`)
	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/users/me", body))
	rec := httptest.NewRecorder()
	handler.HandleDeleteAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleDeleteAccount_BadConfirmation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrong phrase", `{"confirmation": "yes please"}`},
		{"lowercase", `{"confirmation": "delete_my_account"}`},
		{"missing", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewUserHandler(newMockSyncService(nil, nil))

			req := withUser(httptest.NewRequest(http.MethodDelete, "/api/users/me", bytes.NewBufferString(tt.body)))
			rec := httptest.NewRecorder()
			handler.HandleDeleteAccount(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleDeleteAccount_RequiresAuth(t *testing.T) {
	handler := NewUserHandler(newMockSyncService(nil, nil))

	body := bytes.NewBufferString(`{"confirmation": "DELETE_MY_ACCOUNT"}`)
	req := httptest.NewRequest(http.MethodDelete, "/api/users/me", body)
	rec := httptest.NewRecorder()
	handler.HandleDeleteAccount(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
