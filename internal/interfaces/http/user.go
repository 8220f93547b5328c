package http

import (
	"encoding/json"
	"log"
	"net/http"

	"grana/internal/domain/banksync"
	"grana/internal/shared/middleware"
)

// deleteConfirmation is the phrase the client must echo before the
// account's data is destroyed.
const deleteConfirmation = "DELETE_MY_ACCOUNT"

type UserHandler struct {
	service *banksync.Service
}

func NewUserHandler(service *banksync.Service) *UserHandler {
	return &UserHandler{service: service}
}

type deleteAccountRequest struct {
	Confirmation string `json:"confirmation"`
}

// HandleDeleteAccount disconnects the user's bank items (best effort)
// and removes every row they own.
func (h *UserHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req deleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Confirmation != deleteConfirmation {
		writeError(w, http.StatusBadRequest, "Confirmação inválida. Envie \"DELETE_MY_ACCOUNT\" para confirmar.")
		return
	}

	if err := h.service.PurgeUser(r.Context(), userID); err != nil {
		log.Printf("User %s: account deletion failed: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Falha ao excluir conta.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
