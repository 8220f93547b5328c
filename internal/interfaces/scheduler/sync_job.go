package scheduler

import (
	"context"
	"fmt"
	"log"

	"grana/internal/domain/banking"
	"grana/internal/domain/banksync"
	"grana/internal/infrastructure/firebase"
	"grana/internal/shared/messages"
)

// ItemSyncJob syncs one bank connection and pushes a notification with
// the outcome. A nil notifier disables notifications.
type ItemSyncJob struct {
	target   banking.SyncTarget
	service  *banksync.Service
	notifier firebase.Notifier
	msgs     *messages.Messages
}

// NewItemSyncJob creates a sync job for one connection item.
func NewItemSyncJob(target banking.SyncTarget, service *banksync.Service, notifier firebase.Notifier, msgs *messages.Messages) *ItemSyncJob {
	return &ItemSyncJob{
		target:   target,
		service:  service,
		notifier: notifier,
		msgs:     msgs,
	}
}

// Execute runs the sync and reports the result to the user.
func (j *ItemSyncJob) Execute(ctx context.Context) error {
	log.Printf("Starting bank sync for user %s, item %s", j.target.UserID, j.target.ItemID)

	summary, err := j.service.SyncItem(ctx, j.target.UserID, j.target.ItemID, banksync.UserSyncWindowDays)
	if err != nil {
		log.Printf("Bank sync failed for user %s, item %s: %v", j.target.UserID, j.target.ItemID, err)
		j.notify(ctx, false, map[string]string{"itemId": j.target.ItemID})
		return fmt.Errorf("sync failed: %w", err)
	}

	log.Printf("Bank sync for user %s completed: bank=%s accounts=%d cards=%d loans=%d investments=%d transactions=%d",
		j.target.UserID, summary.BankName,
		summary.Synced.Accounts, summary.Synced.CreditCards, summary.Synced.Loans,
		summary.Synced.Investments, summary.Synced.Transactions)

	j.notify(ctx, true, map[string]string{
		"itemId":       j.target.ItemID,
		"bankName":     summary.BankName,
		"transactions": fmt.Sprintf("%d", summary.Synced.Transactions),
	})

	return nil
}

func (j *ItemSyncJob) notify(ctx context.Context, success bool, data map[string]string) {
	if j.notifier == nil || j.msgs == nil {
		return
	}
	msg := j.msgs.SyncComplete
	if !success {
		msg = j.msgs.SyncFailed
	}
	if err := j.notifier.SendToUser(ctx, j.target.UserID, msg.Title, msg.Body, data); err != nil {
		log.Printf("Failed to notify user %s: %v", j.target.UserID, err)
	}
}

// UserID returns the user the job belongs to.
func (j *ItemSyncJob) UserID() string {
	return j.target.UserID
}

// Description returns a human-readable description of the job.
func (j *ItemSyncJob) Description() string {
	return fmt.Sprintf("Bank sync for item %s", j.target.ItemID)
}

// ItemSyncJobProvider builds the job batch from every connected bank
// item in the database. Wire it into Config.JobProvider.
func ItemSyncJobProvider(accounts banking.BankAccountRepository, service *banksync.Service, notifier firebase.Notifier, msgs *messages.Messages) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		targets, err := accounts.ListSyncTargets(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sync targets: %w", err)
		}

		jobs := make([]Job, 0, len(targets))
		for _, target := range targets {
			jobs = append(jobs, NewItemSyncJob(target, service, notifier, msgs))
		}
		return jobs, nil
	}
}
