// Package importer parses bulk account uploads. The expected format is a
// header line (discarded) followed by rows of
// dueDate,paymentDate,value,description,status.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/accounts-payable/internal/domain"
)

const fieldsPerRecord = 5

// ParseError reports the first unparseable row; the whole upload is
// rejected when one occurs.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid %s: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type CSVAccountImporter struct{}

func NewCSVAccountImporter() *CSVAccountImporter {
	return &CSVAccountImporter{}
}

// Import reads the whole upload into memory and returns one account per
// data row, or a ParseError for the first row that fails.
func (imp *CSVAccountImporter) Import(r io.Reader) ([]domain.Account, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Header line is discarded without validation.
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptyFile
		}
		return nil, &ParseError{Line: 1, Field: "header", Err: err}
	}

	accounts := make([]domain.Account, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Line: line, Field: "record", Err: err}
		}

		account, parseErr := parseRecord(line, record)
		if parseErr != nil {
			return nil, parseErr
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func parseRecord(line int, record []string) (domain.Account, *ParseError) {
	if len(record) < fieldsPerRecord {
		return domain.Account{}, &ParseError{
			Line:  line,
			Field: "record",
			Err:   fmt.Errorf("expected %d fields, got %d", fieldsPerRecord, len(record)),
		}
	}

	dueDate, err := time.Parse(time.DateOnly, strings.TrimSpace(record[0]))
	if err != nil {
		return domain.Account{}, &ParseError{Line: line, Field: "dueDate", Err: err}
	}

	var paymentDate *time.Time
	if raw := strings.TrimSpace(record[1]); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return domain.Account{}, &ParseError{Line: line, Field: "paymentDate", Err: err}
		}
		paymentDate = &parsed
	}

	value, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return domain.Account{}, &ParseError{Line: line, Field: "value", Err: err}
	}

	status, err := domain.ParseAccountStatus(record[4])
	if err != nil {
		return domain.Account{}, &ParseError{Line: line, Field: "status", Err: err}
	}

	return domain.Account{
		DueDate:     dueDate,
		PaymentDate: paymentDate,
		Value:       value,
		Description: strings.TrimSpace(record[3]),
		Status:      status,
	}, nil
}
