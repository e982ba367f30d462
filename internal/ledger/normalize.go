package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ledgerview/internal/core"
)

// timestampLayouts are tried in order. The ledger normally emits RFC 3339
// with a zone offset, but date-only values appear in older installations.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// normalizeSplit converts one raw split transaction into a TransactionRecord.
// The category type comes from the request that produced the payload, not
// from the payload itself. A missing amount counts as zero; an unparseable
// amount or timestamp fails with ErrMalformedRecord and aborts the refresh.
func normalizeSplit(raw splitTransaction, txType core.TransactionType, description string) (core.TransactionRecord, error) {
	amountStr := strings.TrimSpace(raw.Amount)
	if amountStr == "" {
		amountStr = "0"
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return core.TransactionRecord{}, fmt.Errorf("%w: amount %q: %v", core.ErrMalformedRecord, raw.Amount, err)
	}

	bookedAt, err := parseTimestamp(raw.Date)
	if err != nil {
		return core.TransactionRecord{}, fmt.Errorf("%w: date %q: %v", core.ErrMalformedRecord, raw.Date, err)
	}

	category := strings.TrimSpace(raw.CategoryName)
	if category == "" {
		category = core.DefaultCategory
	}
	source := strings.TrimSpace(raw.SourceName)
	if source == "" {
		source = core.DefaultAccount
	}
	destination := strings.TrimSpace(raw.DestinationName)
	if destination == "" {
		destination = core.DefaultAccount
	}

	currency := raw.CurrencyCode
	if currency == "" {
		currency = raw.ForeignCurrencyCode
	}

	return core.TransactionRecord{
		ID:                 raw.TransactionJournalID,
		Type:               txType,
		BookedAt:           bookedAt,
		Amount:             amount.Abs(),
		CurrencyCode:       currency,
		Category:           category,
		SourceAccount:      source,
		DestinationAccount: destination,
		Description:        description,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
