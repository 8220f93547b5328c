package main

import (
	"log"
	"net/http"

	httphandlers "grana/internal/interfaces/http"
	"grana/internal/shared/config"
	"grana/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Aggregator callbacks are authenticated out of band, not with user JWTs
	mux.HandleFunc("/webhooks/aggregator", deps.WebhookHandler.HandleWebhook)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/connect-token", authMiddleware(http.HandlerFunc(deps.SyncHandler.HandleConnectToken)))
	mux.Handle("/api/sync", authMiddleware(http.HandlerFunc(deps.SyncHandler.HandleSync)))
	mux.Handle("/api/sync/logs", authMiddleware(http.HandlerFunc(deps.SyncHandler.HandleSyncLogs)))
	mux.Handle("/api/disconnect", authMiddleware(http.HandlerFunc(deps.SyncHandler.HandleDisconnect)))
	mux.Handle("/api/voice", authMiddleware(http.HandlerFunc(deps.VoiceHandler.HandleVoice)))
	mux.Handle("/api/transactions", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactions)))
	mux.Handle("/api/transactions/recategorize", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleRecategorize)))
	mux.Handle("/api/transactions/", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactionByID)))
	mux.Handle("/api/banking/overview", authMiddleware(http.HandlerFunc(deps.BankingHandler.HandleOverview)))
	mux.Handle("/api/users/me", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleDeleteAccount)))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(mux))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		log.Println("TLS security middleware enabled (HSTS)")
	}

	return handler
}
