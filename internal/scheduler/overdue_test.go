package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/accounts-payable/internal/domain"
)

type memoryStore struct {
	accounts map[string]domain.Account
}

func newMemoryStore(accounts ...domain.Account) *memoryStore {
	store := &memoryStore{accounts: make(map[string]domain.Account)}
	for _, account := range accounts {
		store.accounts[account.ID] = account
	}
	return store
}

func (s *memoryStore) ListByStatus(_ context.Context, status domain.AccountStatus) ([]domain.Account, error) {
	matched := make([]domain.Account, 0)
	for _, account := range s.accounts {
		if account.Status == status {
			matched = append(matched, account)
		}
	}
	return matched, nil
}

func (s *memoryStore) UpdateStatus(_ context.Context, id string, status domain.AccountStatus) (domain.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	account.Status = status
	s.accounts[id] = account
	return account, nil
}

func newTestScheduler(store AccountStore, now time.Time) *OverdueScheduler {
	s := New(store, 0, 0)
	s.now = func() time.Time { return now }
	return s
}

func date(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestMarkOverdueFlipsPendingPastDue(t *testing.T) {
	store := newMemoryStore(
		domain.Account{ID: "a", DueDate: date("2024-11-01"), Status: domain.AccountStatusPending},
	)

	s := newTestScheduler(store, date("2024-11-02"))
	s.MarkOverdueAccounts(context.Background())

	if store.accounts["a"].Status != domain.AccountStatusOverdue {
		t.Fatalf("expected OVERDUE, got %s", store.accounts["a"].Status)
	}
}

func TestMarkOverdueLeavesAccountsDueTodayOrLater(t *testing.T) {
	store := newMemoryStore(
		domain.Account{ID: "today", DueDate: date("2024-11-02"), Status: domain.AccountStatusPending},
		domain.Account{ID: "future", DueDate: date("2024-11-10"), Status: domain.AccountStatusPending},
	)

	s := newTestScheduler(store, date("2024-11-02"))
	s.MarkOverdueAccounts(context.Background())

	if store.accounts["today"].Status != domain.AccountStatusPending {
		t.Fatalf("account due today should stay pending, got %s", store.accounts["today"].Status)
	}
	if store.accounts["future"].Status != domain.AccountStatusPending {
		t.Fatalf("account due in the future should stay pending, got %s", store.accounts["future"].Status)
	}
}

func TestMarkOverdueNeverTouchesNonPendingAccounts(t *testing.T) {
	store := newMemoryStore(
		domain.Account{ID: "paid", DueDate: date("2024-01-01"), Status: domain.AccountStatusPaid},
		domain.Account{ID: "overdue", DueDate: date("2024-01-01"), Status: domain.AccountStatusOverdue},
	)

	s := newTestScheduler(store, date("2024-11-02"))
	s.MarkOverdueAccounts(context.Background())

	if store.accounts["paid"].Status != domain.AccountStatusPaid {
		t.Fatalf("paid account should be untouched, got %s", store.accounts["paid"].Status)
	}
	if store.accounts["overdue"].Status != domain.AccountStatusOverdue {
		t.Fatalf("overdue account should be untouched, got %s", store.accounts["overdue"].Status)
	}
}

func TestMarkOverdueIsIdempotent(t *testing.T) {
	store := newMemoryStore(
		domain.Account{ID: "a", DueDate: date("2024-11-01"), Status: domain.AccountStatusPending},
		domain.Account{ID: "b", DueDate: date("2024-11-05"), Status: domain.AccountStatusPending},
	)

	s := newTestScheduler(store, date("2024-11-02"))
	s.MarkOverdueAccounts(context.Background())
	first := map[string]domain.AccountStatus{}
	for id, account := range store.accounts {
		first[id] = account.Status
	}

	s.MarkOverdueAccounts(context.Background())
	for id, account := range store.accounts {
		if account.Status != first[id] {
			t.Fatalf("second run changed %q from %s to %s", id, first[id], account.Status)
		}
	}
}

func TestNextRunSkipsToTomorrowWhenTimePassed(t *testing.T) {
	s := New(newMemoryStore(), 1, 30)

	now := time.Date(2024, 11, 2, 8, 0, 0, 0, time.UTC)
	next := s.nextRun(now)

	want := time.Date(2024, 11, 3, 1, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected next run %v, got %v", want, next)
	}
}

func TestNextRunStaysTodayWhenTimeAhead(t *testing.T) {
	s := New(newMemoryStore(), 23, 0)

	now := time.Date(2024, 11, 2, 8, 0, 0, 0, time.UTC)
	next := s.nextRun(now)

	want := time.Date(2024, 11, 2, 23, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected next run %v, got %v", want, next)
	}
}
