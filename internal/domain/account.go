package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusPending AccountStatus = "PENDING"
	AccountStatusPaid    AccountStatus = "PAID"
	AccountStatusOverdue AccountStatus = "OVERDUE"
)

// ParseAccountStatus matches raw against the closed status set, ignoring
// case and surrounding whitespace.
func ParseAccountStatus(raw string) (AccountStatus, error) {
	switch AccountStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case AccountStatusPending:
		return AccountStatusPending, nil
	case AccountStatusPaid:
		return AccountStatusPaid, nil
	case AccountStatusOverdue:
		return AccountStatusOverdue, nil
	default:
		return "", fmt.Errorf("unknown account status %q", raw)
	}
}

type Account struct {
	ID          string
	DueDate     time.Time
	PaymentDate *time.Time
	Value       decimal.Decimal
	Description string
	Status      AccountStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
