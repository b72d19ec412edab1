package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/accounts-payable/internal/domain"
)

// AccountRequest is the create/update payload. Dates are ISO calendar
// dates, value is a decimal string. Validation is syntactic only: fields
// must parse, but no amount or date sanity rules are imposed.
type AccountRequest struct {
	DueDate     string `json:"dueDate"`
	PaymentDate string `json:"paymentDate,omitempty"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (r AccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.DueDate) == "" {
		errs = append(errs, "dueDate is required")
	} else if _, err := time.Parse(time.DateOnly, strings.TrimSpace(r.DueDate)); err != nil {
		errs = append(errs, "dueDate must be a valid date in YYYY-MM-DD format")
	}

	if strings.TrimSpace(r.PaymentDate) != "" {
		if _, err := time.Parse(time.DateOnly, strings.TrimSpace(r.PaymentDate)); err != nil {
			errs = append(errs, "paymentDate must be a valid date in YYYY-MM-DD format")
		}
	}

	if strings.TrimSpace(r.Value) == "" {
		errs = append(errs, "value is required")
	} else if _, err := decimal.NewFromString(strings.TrimSpace(r.Value)); err != nil {
		errs = append(errs, "value must be a valid decimal number")
	}

	if _, err := domain.ParseAccountStatus(r.Status); err != nil {
		errs = append(errs, "status must be one of PENDING, PAID, OVERDUE")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

// ToDomain converts a validated request into the persisted shape.
func (r AccountRequest) ToDomain() (domain.Account, error) {
	if err := r.Validate(); err != nil {
		return domain.Account{}, err
	}

	dueDate, _ := time.Parse(time.DateOnly, strings.TrimSpace(r.DueDate))

	var paymentDate *time.Time
	if raw := strings.TrimSpace(r.PaymentDate); raw != "" {
		parsed, _ := time.Parse(time.DateOnly, raw)
		paymentDate = &parsed
	}

	value, _ := decimal.NewFromString(strings.TrimSpace(r.Value))
	status, _ := domain.ParseAccountStatus(r.Status)

	return domain.Account{
		DueDate:     dueDate,
		PaymentDate: paymentDate,
		Value:       value,
		Description: strings.TrimSpace(r.Description),
		Status:      status,
	}, nil
}

type AccountResponse struct {
	ID          string `json:"id"`
	DueDate     string `json:"dueDate"`
	PaymentDate string `json:"paymentDate,omitempty"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func AccountResponseFrom(account domain.Account) AccountResponse {
	response := AccountResponse{
		ID:          account.ID,
		DueDate:     account.DueDate.Format(time.DateOnly),
		Value:       account.Value.String(),
		Description: account.Description,
		Status:      string(account.Status),
	}
	if account.PaymentDate != nil {
		response.PaymentDate = account.PaymentDate.Format(time.DateOnly)
	}

	return response
}

func AccountResponsesFrom(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, AccountResponseFrom(account))
	}

	return responses
}
