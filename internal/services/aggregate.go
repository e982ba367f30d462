package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"ledgerview/internal/core"
)

// DefaultBreakdownLimit caps ranked breakdown lists.
const DefaultBreakdownLimit = 5

type (
	// MonthlySeries holds parallel per-month sums, index-aligned with Labels.
	// Net is deposit minus withdrawal.
	MonthlySeries struct {
		Labels      []string  `json:"monthly_labels"`
		Withdrawals []float64 `json:"monthly_withdrawals"`
		Deposits    []float64 `json:"monthly_deposits"`
		Transfers   []float64 `json:"monthly_transfers"`
		Net         []float64 `json:"monthly_net"`
	}

	// Totals sums each category type over the whole range.
	Totals struct {
		Withdrawal float64 `json:"withdrawal"`
		Deposit    float64 `json:"deposit"`
		Transfer   float64 `json:"transfer"`
		Net        float64 `json:"net"`
	}

	// BreakdownEntry is one row of a ranked top-N breakdown.
	BreakdownEntry struct {
		Label  string  `json:"label"`
		Amount float64 `json:"amount"`
	}
)

// BuildMonthlySeries buckets records into the full contiguous month sequence
// of the range. Months without transactions report explicit zeroes, so the
// series always has exactly MonthCount(rng) entries in chronological order.
func BuildMonthlySeries(byType map[core.TransactionType][]core.TransactionRecord, rng core.TimeRange) MonthlySeries {
	buckets := make(map[string]map[core.TransactionType]decimal.Decimal)
	for txType, records := range byType {
		for _, rec := range records {
			key := core.MonthLabel(core.MonthStart(rec.BookedAt))
			if buckets[key] == nil {
				buckets[key] = make(map[core.TransactionType]decimal.Decimal)
			}
			buckets[key][txType] = buckets[key][txType].Add(rec.Amount)
		}
	}

	months := core.MonthSequence(rng)
	out := MonthlySeries{
		Labels:      make([]string, 0, len(months)),
		Withdrawals: make([]float64, 0, len(months)),
		Deposits:    make([]float64, 0, len(months)),
		Transfers:   make([]float64, 0, len(months)),
		Net:         make([]float64, 0, len(months)),
	}
	for _, month := range months {
		key := core.MonthLabel(month)
		withdrawal := buckets[key][core.Withdrawal]
		deposit := buckets[key][core.Deposit]
		transfer := buckets[key][core.Transfer]

		out.Labels = append(out.Labels, key)
		out.Withdrawals = append(out.Withdrawals, withdrawal.InexactFloat64())
		out.Deposits = append(out.Deposits, deposit.InexactFloat64())
		out.Transfers = append(out.Transfers, transfer.InexactFloat64())
		out.Net = append(out.Net, deposit.Sub(withdrawal).InexactFloat64())
	}
	return out
}

// BuildTotals sums every category over the entire record set, with no month
// partitioning, and derives the net.
func BuildTotals(byType map[core.TransactionType][]core.TransactionRecord) Totals {
	sums := make(map[core.TransactionType]decimal.Decimal)
	for txType, records := range byType {
		total := decimal.Zero
		for _, rec := range records {
			total = total.Add(rec.Amount)
		}
		sums[txType] = total
	}
	return Totals{
		Withdrawal: sums[core.Withdrawal].InexactFloat64(),
		Deposit:    sums[core.Deposit].InexactFloat64(),
		Transfer:   sums[core.Transfer].InexactFloat64(),
		Net:        sums[core.Deposit].Sub(sums[core.Withdrawal]).InexactFloat64(),
	}
}

// TopBreakdown groups records by the label function, sums amounts per label,
// and returns up to limit entries sorted descending by amount. Ties keep the
// order labels were first encountered.
func TopBreakdown(records []core.TransactionRecord, label func(core.TransactionRecord) string, limit int) []BreakdownEntry {
	if limit <= 0 {
		limit = DefaultBreakdownLimit
	}

	sums := make(map[string]decimal.Decimal)
	var order []string
	for _, rec := range records {
		key := label(rec)
		if key == "" {
			key = core.DefaultCategory
		}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(rec.Amount)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]].GreaterThan(sums[order[j]])
	})
	if len(order) > limit {
		order = order[:limit]
	}

	entries := make([]BreakdownEntry, 0, len(order))
	for _, key := range order {
		entries = append(entries, BreakdownEntry{Label: key, Amount: sums[key].InexactFloat64()})
	}
	return entries
}

// Breakdown label selectors.
func byCategory(rec core.TransactionRecord) string           { return rec.Category }
func bySourceAccount(rec core.TransactionRecord) string      { return rec.SourceAccount }
func byDestinationAccount(rec core.TransactionRecord) string { return rec.DestinationAccount }

// averagePerMonth divides a range total by the month count, which MonthCount
// already clamps to at least 1.
func averagePerMonth(total float64, rng core.TimeRange) float64 {
	return total / float64(core.MonthCount(rng))
}
