// Package http contains the REST handlers.
package http

import (
	"encoding/json"
	"log"
	"net/http"
)

type errorResponse struct {
	Error         string `json:"error"`
	Transcription string `json:"transcription,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
