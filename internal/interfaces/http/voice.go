package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"grana/internal/domain/voice"
	"grana/internal/infrastructure/llm"
	"grana/internal/shared/middleware"
)

// Gateway failure messages shown to the client.
const (
	msgRateLimited   = "Limite de requisições excedido. Tente novamente em alguns segundos."
	msgQuotaExceeded = "Créditos insuficientes. Entre em contato com o suporte."
	msgVoiceInternal = "Erro interno ao processar o áudio."
)

type VoiceHandler struct {
	pipeline *voice.Pipeline
}

func NewVoiceHandler(pipeline *voice.Pipeline) *VoiceHandler {
	return &VoiceHandler{pipeline: pipeline}
}

// HandleVoice runs one voice command. Validation failures come back as
// 400 with the transcript attached so the app can show what was heard.
func (h *VoiceHandler) HandleVoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req voice.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.pipeline.Process(r.Context(), userID, req)
	if err != nil {
		var vErr *voice.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:         vErr.Message,
				Transcription: vErr.Transcription,
			})
		case errors.Is(err, llm.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, msgRateLimited)
		case errors.Is(err, llm.ErrQuotaExceeded):
			writeError(w, http.StatusPaymentRequired, msgQuotaExceeded)
		default:
			log.Printf("User %s: voice command failed: %v", userID, err)
			writeError(w, http.StatusInternalServerError, msgVoiceInternal)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
