package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/accounts-payable/internal/domain"
)

const accountColumns = `id, due_date, payment_date, value, description, status, created_at, updated_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	due_date,
	payment_date,
	value,
	description,
	status
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.DueDate,
		nullDate(account.PaymentDate),
		account.Value,
		account.Description,
		account.Status,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

// CreateAll inserts every account within a single transaction so a partial
// import never commits.
func (r *AccountRepository) CreateAll(ctx context.Context, accounts []domain.Account) ([]domain.Account, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create accounts tx: %w", err)
	}

	const query = `
INSERT INTO accounts (
	due_date,
	payment_date,
	value,
	description,
	status
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

	created := make([]domain.Account, 0, len(accounts))
	for i, account := range accounts {
		if err := tx.QueryRowContext(
			ctx,
			query,
			account.DueDate,
			nullDate(account.PaymentDate),
			account.Value,
			account.Description,
			account.Status,
		).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("create account %d of %d: %w", i+1, len(accounts), err)
		}
		created = append(created, account)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create accounts tx: %w", err)
	}

	return created, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

// Update replaces every mutable column in one conditional statement, so the
// existence check and the write cannot race.
func (r *AccountRepository) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
UPDATE accounts
SET due_date = $2,
	payment_date = $3,
	value = $4,
	description = $5,
	status = $6,
	updated_at = NOW()
WHERE id = $1
RETURNING created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.ID,
		account.DueDate,
		nullDate(account.PaymentDate),
		account.Value,
		account.Description,
		account.Status,
	).Scan(&account.CreatedAt, &account.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus) (domain.Account, error) {
	query := `
UPDATE accounts
SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("update account status: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) Search(ctx context.Context, filter domain.AccountFilter, page domain.PageRequest) (domain.AccountPage, error) {
	where, args := buildAccountFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM accounts` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return domain.AccountPage{}, fmt.Errorf("count accounts: %w", err)
	}

	// Ordering by insertion time then id keeps pages stable across calls.
	listQuery := fmt.Sprintf(
		`SELECT %s FROM accounts%s ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d`,
		accountColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, page.Size, page.Number*page.Size)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return domain.AccountPage{}, fmt.Errorf("search accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := collectAccounts(rows)
	if err != nil {
		return domain.AccountPage{}, fmt.Errorf("search accounts: %w", err)
	}

	return domain.AccountPage{Content: accounts, TotalElements: total}, nil
}

func (r *AccountRepository) ListByStatus(ctx context.Context, status domain.AccountStatus) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE status = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list accounts by status: %w", err)
	}
	defer rows.Close()

	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("list accounts by status: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) SumPaidBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(value), 0)
FROM accounts
WHERE status = $1 AND payment_date BETWEEN $2 AND $3`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, domain.AccountStatusPaid, start, end).Scan(&total); err != nil {
		return decimal.Decimal{}, fmt.Errorf("sum paid accounts: %w", err)
	}

	return total, nil
}

// buildAccountFilter assembles the WHERE clause for the optional listing
// filters; both present means both must match.
func buildAccountFilter(filter domain.AccountFilter) (string, []any) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.DueDate != nil {
		args = append(args, *filter.DueDate)
		conditions = append(conditions, fmt.Sprintf("due_date = $%d", len(args)))
	}
	if filter.Description != "" {
		args = append(args, filter.Description)
		conditions = append(conditions, fmt.Sprintf("description LIKE '%%' || $%d || '%%'", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	var paymentDate sql.NullTime

	if err := row.Scan(
		&account.ID,
		&account.DueDate,
		&paymentDate,
		&account.Value,
		&account.Description,
		&account.Status,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	if paymentDate.Valid {
		account.PaymentDate = &paymentDate.Time
	}

	return account, nil
}

func collectAccounts(rows *sql.Rows) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
