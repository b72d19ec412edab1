package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/api-sage/accounts-payable/internal/adapter/http/models"
	"github.com/api-sage/accounts-payable/internal/commons"
	"github.com/api-sage/accounts-payable/internal/domain"
	"github.com/api-sage/accounts-payable/internal/logger"
)

const (
	msgValidationFailed = "validation failed"
	msgAccountNotFound  = "Account not found"
)

// validationError wraps domain.ErrValidation so callers can dispatch with
// errors.Is instead of matching envelope messages.
func validationError(detail string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, detail)
}

type AccountImporter interface {
	Import(r io.Reader) ([]domain.Account, error)
}

type AccountService struct {
	accountRepo domain.AccountRepository
	importer    AccountImporter
}

func NewAccountService(accountRepo domain.AccountRepository, importer AccountImporter) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		importer:    importer,
	}
}

// GetAccounts lists accounts with optional exact due-date and substring
// description filters. An empty result is a normal success with zero rows.
func (s *AccountService) GetAccounts(ctx context.Context, dueDate, description string, page, size int) (commons.Response[commons.Page[models.AccountResponse]], error) {
	logger.Info("account service get accounts request", logger.Fields{
		"dueDate":     dueDate,
		"description": description,
		"page":        page,
		"size":        size,
	})

	if page < 0 {
		const detail = "page must not be negative"
		return commons.ErrorResponse[commons.Page[models.AccountResponse]](msgValidationFailed, detail), validationError(detail)
	}
	if size <= 0 {
		const detail = "size must be greater than zero"
		return commons.ErrorResponse[commons.Page[models.AccountResponse]](msgValidationFailed, detail), validationError(detail)
	}

	filter := domain.AccountFilter{Description: strings.TrimSpace(description)}
	if raw := strings.TrimSpace(dueDate); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			const detail = "dueDate must be a valid date in YYYY-MM-DD format"
			return commons.ErrorResponse[commons.Page[models.AccountResponse]](msgValidationFailed, detail), validationError(detail)
		}
		filter.DueDate = &parsed
	}

	result, err := s.accountRepo.Search(ctx, filter, domain.PageRequest{Number: page, Size: size})
	if err != nil {
		logger.Error("account service get accounts repository failed", err, nil)
		return commons.ErrorResponse[commons.Page[models.AccountResponse]]("failed to list accounts", "Unable to list accounts right now"), err
	}

	response := commons.NewPage(models.AccountResponsesFrom(result.Content), page, size, result.TotalElements)
	return commons.SuccessResponse("Accounts retrieved successfully", response), nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service get account request", logger.Fields{"accountId": id})

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse](msgAccountNotFound), err
		}
		logger.Error("account service get account repository failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("Account retrieved successfully", models.AccountResponseFrom(account)), nil
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.AccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{"payload": req})

	account, err := req.ToDomain()
	if err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse](msgValidationFailed, err.Error()), validationError(err.Error())
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		logger.Error("account service create account repository failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	logger.Info("account service create account success", logger.Fields{"accountId": created.ID})
	return commons.SuccessResponse("Account created successfully", models.AccountResponseFrom(created)), nil
}

// UpdateAccount fully replaces the record's fields while preserving its id.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, req models.AccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service update account request", logger.Fields{"accountId": id, "payload": req})

	account, err := req.ToDomain()
	if err != nil {
		logger.Error("account service update account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse](msgValidationFailed, err.Error()), validationError(err.Error())
	}
	account.ID = id

	updated, err := s.accountRepo.Update(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse](msgAccountNotFound), err
		}
		logger.Error("account service update account repository failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to update account", "Unable to update account right now"), err
	}

	logger.Info("account service update account success", logger.Fields{"accountId": updated.ID})
	return commons.SuccessResponse("Account updated successfully", models.AccountResponseFrom(updated)), nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, id string) (commons.Response[struct{}], error) {
	logger.Info("account service delete account request", logger.Fields{"accountId": id})

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}](msgAccountNotFound), err
		}
		logger.Error("account service delete account repository failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[struct{}]("failed to delete account", "Unable to delete account right now"), err
	}

	logger.Info("account service delete account success", logger.Fields{"accountId": id})
	return commons.MessageResponse("Account deleted successfully"), nil
}

// UpdateAccountStatus moves the account to any member of the closed status
// set; transitions are unguarded.
func (s *AccountService) UpdateAccountStatus(ctx context.Context, id, rawStatus string) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service update account status request", logger.Fields{"accountId": id, "status": rawStatus})

	status, err := domain.ParseAccountStatus(rawStatus)
	if err != nil {
		const detail = "status must be one of PENDING, PAID, OVERDUE"
		return commons.ErrorResponse[models.AccountResponse](msgValidationFailed, detail), validationError(detail)
	}

	updated, err := s.accountRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse](msgAccountNotFound), err
		}
		logger.Error("account service update account status repository failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to update account status", "Unable to update account status right now"), err
	}

	logger.Info("account service update account status success", logger.Fields{"accountId": id, "status": string(status)})
	return commons.SuccessResponse("Account status updated successfully", models.AccountResponseFrom(updated)), nil
}

// GetTotalPaid sums paid accounts whose payment date falls within the
// inclusive [startDate, endDate] range; zero when nothing matches. The sum
// is carried as a json.Number so the envelope serializes it as a JSON
// number rather than a quoted string.
func (s *AccountService) GetTotalPaid(ctx context.Context, startDate, endDate string) (commons.Response[json.Number], error) {
	logger.Info("account service get total paid request", logger.Fields{"startDate": startDate, "endDate": endDate})

	start, err := time.Parse(time.DateOnly, strings.TrimSpace(startDate))
	if err != nil {
		const detail = "startDate must be a valid date in YYYY-MM-DD format"
		return commons.ErrorResponse[json.Number](msgValidationFailed, detail), validationError(detail)
	}
	end, err := time.Parse(time.DateOnly, strings.TrimSpace(endDate))
	if err != nil {
		const detail = "endDate must be a valid date in YYYY-MM-DD format"
		return commons.ErrorResponse[json.Number](msgValidationFailed, detail), validationError(detail)
	}
	if start.After(end) {
		const detail = "startDate must not be after endDate"
		return commons.ErrorResponse[json.Number](msgValidationFailed, detail), validationError(detail)
	}

	total, err := s.accountRepo.SumPaidBetween(ctx, start, end)
	if err != nil {
		logger.Error("account service get total paid repository failed", err, nil)
		return commons.ErrorResponse[json.Number]("failed to get total paid", "Unable to compute total right now"), err
	}

	return commons.SuccessResponse("Total paid amount retrieved successfully", json.Number(total.String())), nil
}

// ImportAccountsFromCSV parses the whole upload, then persists every row in
// one transaction. A parse failure rejects the upload and nothing commits.
func (s *AccountService) ImportAccountsFromCSV(ctx context.Context, file io.Reader) (int, error) {
	accounts, err := s.importer.Import(file)
	if err != nil {
		logger.Error("account service import accounts parse failed", err, nil)
		return 0, err
	}

	created, err := s.accountRepo.CreateAll(ctx, accounts)
	if err != nil {
		logger.Error("account service import accounts repository failed", err, logger.Fields{"parsed": len(accounts)})
		return 0, err
	}

	logger.Info("account service import accounts success", logger.Fields{"imported": len(created)})
	return len(created), nil
}
