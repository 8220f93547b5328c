package main

import (
	"context"
	"log"

	"grana/internal/domain/banksync"
	"grana/internal/domain/transaction"
	"grana/internal/domain/voice"
	"grana/internal/infrastructure/aggregator"
	"grana/internal/infrastructure/firebase"
	"grana/internal/infrastructure/llm"
	"grana/internal/infrastructure/postgres"
	httphandlers "grana/internal/interfaces/http"
	"grana/internal/shared/auth"
	"grana/internal/shared/config"
	"grana/internal/shared/messages"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	SyncHandler        *httphandlers.SyncHandler
	WebhookHandler     *httphandlers.WebhookHandler
	VoiceHandler       *httphandlers.VoiceHandler
	TransactionHandler *httphandlers.TransactionHandler
	BankingHandler     *httphandlers.BankingHandler
	UserHandler        *httphandlers.UserHandler

	// Auth
	JWT *auth.JWT

	// Sync plumbing (for the scheduler job provider)
	SyncService     *banksync.Service
	BankAccountRepo *postgres.BankAccountRepository
	Notifier        firebase.Notifier
	Messages        *messages.Messages
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Repositories
	transactionRepo := postgres.NewTransactionRepository(db)
	bankAccountRepo := postgres.NewBankAccountRepository(db)
	creditCardRepo := postgres.NewCreditCardRepository(db)
	loanRepo := postgres.NewLoanRepository(db)
	investmentRepo := postgres.NewInvestmentRepository(db)
	syncLogRepo := postgres.NewSyncLogRepository(db)

	// External clients
	aggClient := aggregator.NewClient(cfg.Aggregator.BaseURL, cfg.Aggregator.ClientID, cfg.Aggregator.ClientSecret)
	gateway := llm.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Model)

	// Domain services
	syncService := banksync.NewService(
		aggClient,
		cfg.Aggregator.WebhookURL,
		bankAccountRepo,
		creditCardRepo,
		loanRepo,
		investmentRepo,
		transactionRepo,
		syncLogRepo,
	)
	pipeline := voice.NewPipeline(gateway, transactionRepo)
	recategorizer := transaction.NewRecategorizer(gateway, transactionRepo)

	// Push notifications are optional. Without credentials the sync jobs
	// simply run silent.
	var notifier firebase.Notifier
	var msgs *messages.Messages
	if cfg.Firebase.CredentialsFile != "" {
		client, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Printf("Warning: Failed to initialize Firebase: %v", err)
		} else {
			notifier = client
			msgs, err = messages.Load(cfg.Firebase.MessagesFile)
			if err != nil {
				log.Printf("Warning: Failed to load notification messages: %v", err)
				notifier = nil
			}
		}
	} else {
		log.Println("Firebase credentials not configured, push notifications disabled")
	}

	jwt := auth.NewJWT(cfg.JWT.Secret)

	return &Dependencies{
		DB:                 db,
		SyncHandler:        httphandlers.NewSyncHandler(syncService),
		WebhookHandler:     httphandlers.NewWebhookHandler(syncService),
		VoiceHandler:       httphandlers.NewVoiceHandler(pipeline),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionRepo, recategorizer),
		BankingHandler:     httphandlers.NewBankingHandler(bankAccountRepo, creditCardRepo, loanRepo, investmentRepo),
		UserHandler:        httphandlers.NewUserHandler(syncService),
		JWT:                jwt,
		SyncService:        syncService,
		BankAccountRepo:    bankAccountRepo,
		Notifier:           notifier,
		Messages:           msgs,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
