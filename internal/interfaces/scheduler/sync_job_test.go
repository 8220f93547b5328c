package scheduler

import (
	"context"
	"errors"
	"testing"

	"grana/internal/domain/banking"
)

func testTarget(userID, itemID string) banking.SyncTarget {
	return banking.SyncTarget{UserID: userID, ItemID: itemID, BankName: "Banco Teste"}
}

type mockBankAccountRepo struct {
	ListSyncTargetsFunc func(ctx context.Context) ([]banking.SyncTarget, error)
}

func (m *mockBankAccountRepo) Upsert(ctx context.Context, account *banking.BankAccount) error {
	return nil
}
func (m *mockBankAccountRepo) ListByUser(ctx context.Context, userID string) ([]banking.BankAccount, error) {
	return nil, nil
}
func (m *mockBankAccountRepo) DeleteByItem(ctx context.Context, itemID string) error { return nil }
func (m *mockBankAccountRepo) DeleteByItemForUser(ctx context.Context, itemID, userID string) error {
	return nil
}
func (m *mockBankAccountRepo) ListSyncTargets(ctx context.Context) ([]banking.SyncTarget, error) {
	if m.ListSyncTargetsFunc != nil {
		return m.ListSyncTargetsFunc(ctx)
	}
	return nil, nil
}
func (m *mockBankAccountRepo) ListItemIDsByUser(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (m *mockBankAccountRepo) DeleteAllByUser(ctx context.Context, userID string) error { return nil }

func TestItemSyncJobProvider(t *testing.T) {
	repo := &mockBankAccountRepo{
		ListSyncTargetsFunc: func(ctx context.Context) ([]banking.SyncTarget, error) {
			return []banking.SyncTarget{
				testTarget("user-1", "item-1"),
				testTarget("user-2", "item-2"),
			}, nil
		},
	}

	provider := ItemSyncJobProvider(repo, nil, nil, nil)
	jobs, err := provider(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].UserID() != "user-1" || jobs[1].UserID() != "user-2" {
		t.Errorf("unexpected job users: %s, %s", jobs[0].UserID(), jobs[1].UserID())
	}
}

func TestItemSyncJobProvider_RepoFailure(t *testing.T) {
	repo := &mockBankAccountRepo{
		ListSyncTargetsFunc: func(ctx context.Context) ([]banking.SyncTarget, error) {
			return nil, errors.New("db down")
		},
	}

	provider := ItemSyncJobProvider(repo, nil, nil, nil)
	if _, err := provider(context.Background()); err == nil {
		t.Error("expected error when targets cannot be listed")
	}
}
