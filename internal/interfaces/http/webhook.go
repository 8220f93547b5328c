package http

import (
	"encoding/json"
	"log"
	"net/http"

	"grana/internal/domain/banksync"
)

// Webhook event names sent by the aggregator.
const (
	eventItemCreated     = "item/created"
	eventItemUpdated     = "item/updated"
	eventItemDeleted     = "item/deleted"
	eventConnectorStatus = "connector/status_updated"
)

type WebhookHandler struct {
	service *banksync.Service
}

func NewWebhookHandler(service *banksync.Service) *WebhookHandler {
	return &WebhookHandler{service: service}
}

type webhookPayload struct {
	Event  string          `json:"event"`
	ItemID string          `json:"itemId"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// HandleWebhook processes aggregator item events. The endpoint always
// acknowledges known-but-unactionable events with 200 so the
// aggregator doesn't retry them.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log.Printf("Webhook received: event=%s item=%s", payload.Event, payload.ItemID)

	switch payload.Event {
	case eventItemCreated, eventItemUpdated:
		if payload.ItemID == "" {
			http.Error(w, "itemId is required", http.StatusBadRequest)
			return
		}
		summary, err := h.service.SyncItemFromWebhook(r.Context(), payload.ItemID)
		if err != nil {
			log.Printf("Webhook sync of item %s failed: %v", payload.ItemID, err)
			writeError(w, http.StatusInternalServerError, "sync failed")
			return
		}
		writeJSON(w, http.StatusOK, summary)

	case eventItemDeleted:
		if payload.ItemID == "" {
			http.Error(w, "itemId is required", http.StatusBadRequest)
			return
		}
		if err := h.service.RemoveItemData(r.Context(), payload.ItemID); err != nil {
			log.Printf("Webhook cleanup of item %s failed: %v", payload.ItemID, err)
			writeError(w, http.StatusInternalServerError, "cleanup failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	case eventConnectorStatus:
		// Informational only
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		log.Printf("Webhook event %q ignored", payload.Event)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
