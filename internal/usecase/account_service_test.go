package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/accounts-payable/internal/adapter/http/models"
	"github.com/api-sage/accounts-payable/internal/commons"
	"github.com/api-sage/accounts-payable/internal/domain"
	"github.com/api-sage/accounts-payable/internal/importer"
	"github.com/api-sage/accounts-payable/internal/usecase"
)

type accountRepoStub struct {
	createFn         func(ctx context.Context, account domain.Account) (domain.Account, error)
	createAllFn      func(ctx context.Context, accounts []domain.Account) ([]domain.Account, error)
	getByIDFn        func(ctx context.Context, id string) (domain.Account, error)
	updateFn         func(ctx context.Context, account domain.Account) (domain.Account, error)
	updateStatusFn   func(ctx context.Context, id string, status domain.AccountStatus) (domain.Account, error)
	deleteFn         func(ctx context.Context, id string) error
	searchFn         func(ctx context.Context, filter domain.AccountFilter, page domain.PageRequest) (domain.AccountPage, error)
	listByStatusFn   func(ctx context.Context, status domain.AccountStatus) ([]domain.Account, error)
	sumPaidBetweenFn func(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}

func (s accountRepoStub) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	if s.createFn != nil {
		return s.createFn(ctx, account)
	}
	return domain.Account{}, nil
}

func (s accountRepoStub) CreateAll(ctx context.Context, accounts []domain.Account) ([]domain.Account, error) {
	if s.createAllFn != nil {
		return s.createAllFn(ctx, accounts)
	}
	return accounts, nil
}

func (s accountRepoStub) GetByID(ctx context.Context, id string) (domain.Account, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return domain.Account{}, nil
}

func (s accountRepoStub) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, account)
	}
	return account, nil
}

func (s accountRepoStub) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus) (domain.Account, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, status)
	}
	return domain.Account{}, nil
}

func (s accountRepoStub) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s accountRepoStub) Search(ctx context.Context, filter domain.AccountFilter, page domain.PageRequest) (domain.AccountPage, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, filter, page)
	}
	return domain.AccountPage{}, nil
}

func (s accountRepoStub) ListByStatus(ctx context.Context, status domain.AccountStatus) ([]domain.Account, error) {
	if s.listByStatusFn != nil {
		return s.listByStatusFn(ctx, status)
	}
	return nil, nil
}

func (s accountRepoStub) SumPaidBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	if s.sumPaidBetweenFn != nil {
		return s.sumPaidBetweenFn(ctx, start, end)
	}
	return decimal.Zero, nil
}

func newService(repo accountRepoStub) *usecase.AccountService {
	return usecase.NewAccountService(repo, importer.NewCSVAccountImporter())
}

func TestAccountServiceCreateAccountValidationError(t *testing.T) {
	svc := newService(accountRepoStub{})

	_, err := svc.CreateAccount(context.Background(), models.AccountRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty create account request, got %v", err)
	}
}

func TestAccountServiceGetAccountsRejectsNegativePage(t *testing.T) {
	svc := newService(accountRepoStub{})

	resp, err := svc.GetAccounts(context.Background(), "", "", -1, 20)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for negative page, got %v", err)
	}
	if resp.Status != commons.StatusError {
		t.Fatal("expected error envelope")
	}
}

func TestAccountServiceCreateAccountSuccess(t *testing.T) {
	svc := newService(accountRepoStub{
		createFn: func(_ context.Context, account domain.Account) (domain.Account, error) {
			if account.ID != "" {
				t.Fatal("expected id to be assigned by the store, not the caller")
			}
			account.ID = "3f6f4f1e-0000-0000-0000-000000000001"
			return account, nil
		},
	})

	resp, err := svc.CreateAccount(context.Background(), models.AccountRequest{
		DueDate:     "2024-11-01",
		Value:       "500.00",
		Description: "Electricity",
		Status:      "PENDING",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Status != commons.StatusSuccess || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.ID == "" {
		t.Fatal("expected assigned id in response")
	}
	if resp.Data.Value != "500.00" {
		t.Fatalf("expected value 500.00, got %q", resp.Data.Value)
	}
	if resp.Data.PaymentDate != "" {
		t.Fatalf("expected absent payment date, got %q", resp.Data.PaymentDate)
	}
}

func TestAccountServiceCreateAccountAcceptsPaidWithoutPaymentDate(t *testing.T) {
	svc := newService(accountRepoStub{
		createFn: func(_ context.Context, account domain.Account) (domain.Account, error) {
			account.ID = "3f6f4f1e-0000-0000-0000-000000000002"
			return account, nil
		},
	})

	resp, err := svc.CreateAccount(context.Background(), models.AccountRequest{
		DueDate:     "2024-11-01",
		Value:       "10.00",
		Description: "Rent",
		Status:      "paid",
	})
	if err != nil {
		t.Fatalf("expected paid account without payment date to be accepted, got %v", err)
	}
	if resp.Data.Status != string(domain.AccountStatusPaid) {
		t.Fatalf("expected status PAID, got %q", resp.Data.Status)
	}
}

func TestAccountServiceUpdateAccountPreservesID(t *testing.T) {
	const id = "3f6f4f1e-0000-0000-0000-000000000003"

	svc := newService(accountRepoStub{
		updateFn: func(_ context.Context, account domain.Account) (domain.Account, error) {
			if account.ID != id {
				t.Fatalf("expected update to carry id %q, got %q", id, account.ID)
			}
			return account, nil
		},
	})

	resp, err := svc.UpdateAccount(context.Background(), id, models.AccountRequest{
		DueDate:     "2024-12-01",
		Value:       "75.50",
		Description: "Internet",
		Status:      "OVERDUE",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.ID != id {
		t.Fatalf("expected response id %q, got %q", id, resp.Data.ID)
	}
}

func TestAccountServiceUpdateAccountNotFound(t *testing.T) {
	svc := newService(accountRepoStub{
		updateFn: func(context.Context, domain.Account) (domain.Account, error) {
			return domain.Account{}, domain.ErrRecordNotFound
		},
	})

	resp, err := svc.UpdateAccount(context.Background(), "missing", models.AccountRequest{
		DueDate:     "2024-12-01",
		Value:       "75.50",
		Description: "Internet",
		Status:      "PENDING",
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
	if resp.Status != commons.StatusError {
		t.Fatal("expected error envelope")
	}
}

func TestAccountServiceDeleteAccountNotFound(t *testing.T) {
	svc := newService(accountRepoStub{
		deleteFn: func(context.Context, string) error {
			return domain.ErrRecordNotFound
		},
	})

	_, err := svc.DeleteAccount(context.Background(), "missing")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestAccountServiceUpdateAccountStatusRejectsUnknownStatus(t *testing.T) {
	svc := newService(accountRepoStub{})

	resp, err := svc.UpdateAccountStatus(context.Background(), "some-id", "SETTLED")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if resp.Status != commons.StatusError {
		t.Fatal("expected error envelope")
	}
}

func TestAccountServiceGetAccountsEmptyResultIsSuccess(t *testing.T) {
	svc := newService(accountRepoStub{
		searchFn: func(context.Context, domain.AccountFilter, domain.PageRequest) (domain.AccountPage, error) {
			return domain.AccountPage{Content: []domain.Account{}, TotalElements: 0}, nil
		},
	})

	resp, err := svc.GetAccounts(context.Background(), "", "", 0, 20)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Status != commons.StatusSuccess || resp.Data == nil {
		t.Fatal("expected success envelope with data for empty result")
	}
	if len(resp.Data.Content) != 0 || resp.Data.Page.TotalElements != 0 {
		t.Fatal("expected zero rows and zero total")
	}
}

func TestAccountServiceGetAccountsForwardsFilters(t *testing.T) {
	svc := newService(accountRepoStub{
		searchFn: func(_ context.Context, filter domain.AccountFilter, page domain.PageRequest) (domain.AccountPage, error) {
			if filter.DueDate == nil || filter.DueDate.Format("2006-01-02") != "2024-11-01" {
				t.Fatalf("expected due date filter 2024-11-01, got %v", filter.DueDate)
			}
			if filter.Description != "Electricity" {
				t.Fatalf("expected description filter, got %q", filter.Description)
			}
			if page.Number != 2 || page.Size != 5 {
				t.Fatalf("expected page 2 size 5, got %d/%d", page.Number, page.Size)
			}
			return domain.AccountPage{}, nil
		},
	})

	if _, err := svc.GetAccounts(context.Background(), "2024-11-01", "Electricity", 2, 5); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestAccountServiceGetTotalPaidZeroWhenNothingMatches(t *testing.T) {
	svc := newService(accountRepoStub{})

	resp, err := svc.GetTotalPaid(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data == nil || *resp.Data != json.Number("0") {
		t.Fatalf("expected total 0, got %v", resp.Data)
	}
}

func TestAccountServiceGetTotalPaidRejectsInvertedRange(t *testing.T) {
	svc := newService(accountRepoStub{})

	_, err := svc.GetTotalPaid(context.Background(), "2024-02-01", "2024-01-01")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for inverted range, got %v", err)
	}
}

func TestAccountServiceImportRejectsBadCSVWithoutPersisting(t *testing.T) {
	svc := newService(accountRepoStub{
		createAllFn: func(context.Context, []domain.Account) ([]domain.Account, error) {
			t.Fatal("expected no persistence after a parse failure")
			return nil, nil
		},
	})

	input := "dueDate,paymentDate,value,description,status\n" +
		"2024-11-01,,500.00,Electricity\n"

	_, err := svc.ImportAccountsFromCSV(context.Background(), strings.NewReader(input))
	var parseErr *importer.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestAccountServiceImportCreatesAllRowsAtomically(t *testing.T) {
	var persisted []domain.Account
	svc := newService(accountRepoStub{
		createAllFn: func(_ context.Context, accounts []domain.Account) ([]domain.Account, error) {
			persisted = accounts
			return accounts, nil
		},
	})

	input := "dueDate,paymentDate,value,description,status\n" +
		"2024-11-01,,500.00,Electricity,pending\n" +
		"2024-11-02,2024-11-03,19.90,Water,paid\n"

	imported, err := svc.ImportAccountsFromCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if imported != 2 || len(persisted) != 2 {
		t.Fatalf("expected 2 imported rows, got %d persisted %d", imported, len(persisted))
	}
}

