package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AccountFilter holds the optional listing filters. A nil DueDate and an
// empty Description mean the filter is not applied; when both are present
// they are combined with AND.
type AccountFilter struct {
	DueDate     *time.Time
	Description string
}

// PageRequest is a zero-based page index plus the page size.
type PageRequest struct {
	Number int
	Size   int
}

type AccountPage struct {
	Content       []Account
	TotalElements int64
}

type AccountRepository interface {
	Create(ctx context.Context, account Account) (Account, error)
	// CreateAll persists every account in a single transaction; either all
	// rows commit or none do.
	CreateAll(ctx context.Context, accounts []Account) ([]Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	// Update fully replaces the row while preserving its id.
	Update(ctx context.Context, account Account) (Account, error)
	UpdateStatus(ctx context.Context, id string, status AccountStatus) (Account, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter AccountFilter, page PageRequest) (AccountPage, error)
	ListByStatus(ctx context.Context, status AccountStatus) ([]Account, error)
	// SumPaidBetween sums the value of PAID accounts whose payment date
	// falls within [start, end]. Returns zero when nothing matches.
	SumPaidBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}
