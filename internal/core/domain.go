package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Withdrawal TransactionType = "withdrawal"
	Deposit    TransactionType = "deposit"
	Transfer   TransactionType = "transfer"
)

// Fallback labels applied at normalization time so that breakdown grouping
// merges records missing the same field.
const (
	DefaultCategory = "Uncategorized"
	DefaultAccount  = "Unknown account"
)

type (
	TransactionType string

	// TransactionRecord is one normalized ledger transaction. Amount is
	// always the absolute value; direction is carried by Type.
	TransactionRecord struct {
		ID                 string
		Type               TransactionType
		BookedAt           time.Time
		Amount             decimal.Decimal
		CurrencyCode       string
		Category           string
		SourceAccount      string
		DestinationAccount string
		Description        string
	}

	// TimeRange is an inclusive date range.
	TimeRange struct {
		Start time.Time
		End   time.Time
	}
)

var (
	ErrMalformedRecord = errors.New("malformed transaction record")
	ErrInvalidRange    = errors.New("range end before start")
	ErrInvalidType     = errors.New("invalid transaction type")
)

// TransactionTypes lists every category type fetched from the ledger.
func TransactionTypes() []TransactionType {
	return []TransactionType{Withdrawal, Deposit, Transfer}
}

func (t TransactionType) Validate() error {
	switch t {
	case Withdrawal, Deposit, Transfer:
		return nil
	default:
		return ErrInvalidType
	}
}

func (r TimeRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return errors.New("range boundaries cannot be zero")
	}
	if r.End.Before(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

// NewDate builds a midnight UTC instant, the canonical form for range
// boundaries and month keys.
func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
