package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"grana/internal/domain/banksync"
	"grana/internal/infrastructure/aggregator"
	"grana/internal/shared/middleware"
)

type SyncHandler struct {
	service *banksync.Service
}

func NewSyncHandler(service *banksync.Service) *SyncHandler {
	return &SyncHandler{service: service}
}

type syncRequest struct {
	ItemID string `json:"itemId"`
}

// HandleSync runs a full sync of one connection item for the
// authenticated user.
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ItemID == "" {
		http.Error(w, "itemId is required", http.StatusBadRequest)
		return
	}

	summary, err := h.service.SyncItem(r.Context(), userID, req.ItemID, banksync.UserSyncWindowDays)
	if err != nil {
		log.Printf("User %s: sync of item %s failed: %v", userID, req.ItemID, err)
		switch {
		case errors.Is(err, aggregator.ErrUpstreamAuth):
			writeError(w, http.StatusBadGateway, "Falha de autenticação com o provedor bancário.")
		case errors.Is(err, aggregator.ErrItemResolution):
			writeError(w, http.StatusNotFound, "Conexão bancária não encontrada.")
		default:
			writeError(w, http.StatusInternalServerError, "Falha ao sincronizar dados bancários.")
		}
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleConnectToken brokers a widget connect token.
func (h *SyncHandler) HandleConnectToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := h.service.CreateConnectToken(r.Context(), userID)
	if err != nil {
		log.Printf("User %s: connect token request failed: %v", userID, err)
		writeError(w, http.StatusBadGateway, "Falha ao iniciar conexão bancária.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

// HandleDisconnect removes a bank connection upstream and locally.
func (h *SyncHandler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ItemID == "" {
		http.Error(w, "itemId is required", http.StatusBadRequest)
		return
	}

	if err := h.service.Disconnect(r.Context(), userID, req.ItemID); err != nil {
		log.Printf("User %s: disconnect of item %s failed: %v", userID, req.ItemID, err)
		writeError(w, http.StatusInternalServerError, "Falha ao desconectar banco.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleSyncLogs returns recent sync diagnostics for the user.
func (h *SyncHandler) HandleSyncLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	logs, err := h.service.SyncLogs(r.Context(), userID, limit)
	if err != nil {
		log.Printf("User %s: failed to list sync logs: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Falha ao carregar histórico de sincronização.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}
