// Package services builds dashboard snapshots: it orchestrates the
// per-category ledger fetches and runs the aggregation that turns raw
// transaction records into monthly series, totals, and ranked breakdowns.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerview/internal/core"
)

// One fetch goroutine per category type.
const maxConcurrentFetches = 3

const lastUpdatedLayout = "2006-01-02 15:04 UTC"

// TransactionFetcher retrieves all normalized records for one category type.
type TransactionFetcher interface {
	FetchTransactions(ctx context.Context, txType core.TransactionType, rng core.TimeRange, pageSize int) ([]core.TransactionRecord, error)
}

// Snapshot is the complete aggregated result of one refresh cycle. It is
// self-describing: the presentation layer renders it without further lookups.
type Snapshot struct {
	MonthlySeries

	Totals Totals `json:"totals"`

	AverageWithdrawal float64 `json:"average_withdrawal"`
	AverageDeposit    float64 `json:"average_deposit"`
	AverageNet        float64 `json:"average_net"`

	TopSpendingCategories  []BreakdownEntry `json:"top_spending_categories"`
	TopIncomeCategories    []BreakdownEntry `json:"top_income_categories"`
	TopSourceAccounts      []BreakdownEntry `json:"top_source_accounts"`
	TopDestinationAccounts []BreakdownEntry `json:"top_destination_accounts"`
	TopTransferAccounts    []BreakdownEntry `json:"top_transfer_accounts"`

	CacheTTLMinutes    int       `json:"cache_ttl_minutes"`
	LastUpdated        time.Time `json:"last_updated"`
	LastUpdatedDisplay string    `json:"last_updated_display"`
	DateRange          DateRange `json:"date_range"`
	Months             int       `json:"months"`
}

// DateRange is the resolved reporting period as ISO date strings.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Dashboard produces snapshots for a fixed reporting range.
type Dashboard struct {
	fetcher    TransactionFetcher
	rng        core.TimeRange
	ttlMinutes int
	pageSize   int
	now        func() time.Time
}

// NewDashboard creates a Dashboard over the given fetcher and range. The TTL
// is only stamped into snapshots; expiry itself is the cache's concern.
func NewDashboard(fetcher TransactionFetcher, rng core.TimeRange, ttlMinutes int) *Dashboard {
	return &Dashboard{
		fetcher:    fetcher,
		rng:        rng,
		ttlMinutes: ttlMinutes,
		now:        time.Now,
	}
}

// Refresh runs the full fetch and aggregation pipeline and returns a new
// snapshot. Any fetch or normalization failure aborts the whole refresh;
// partial results are never returned.
func (d *Dashboard) Refresh(ctx context.Context) (Snapshot, error) {
	start := d.now()
	byType, err := d.fetchAll(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	series := BuildMonthlySeries(byType, d.rng)
	totals := BuildTotals(byType)

	now := d.now().UTC()
	snap := Snapshot{
		MonthlySeries: series,
		Totals:        totals,

		AverageWithdrawal: averagePerMonth(totals.Withdrawal, d.rng),
		AverageDeposit:    averagePerMonth(totals.Deposit, d.rng),
		AverageNet:        averagePerMonth(totals.Net, d.rng),

		TopSpendingCategories:  TopBreakdown(byType[core.Withdrawal], byCategory, DefaultBreakdownLimit),
		TopIncomeCategories:    TopBreakdown(byType[core.Deposit], byCategory, DefaultBreakdownLimit),
		TopSourceAccounts:      TopBreakdown(byType[core.Withdrawal], bySourceAccount, DefaultBreakdownLimit),
		TopDestinationAccounts: TopBreakdown(byType[core.Deposit], byDestinationAccount, DefaultBreakdownLimit),
		TopTransferAccounts:    TopBreakdown(byType[core.Transfer], byDestinationAccount, DefaultBreakdownLimit),

		CacheTTLMinutes:    d.ttlMinutes,
		LastUpdated:        now,
		LastUpdatedDisplay: now.Format(lastUpdatedLayout),
		DateRange: DateRange{
			Start: d.rng.Start.Format("2006-01-02"),
			End:   d.rng.End.Format("2006-01-02"),
		},
		Months: core.MonthCount(d.rng),
	}

	slog.InfoContext(ctx, "Dashboard snapshot built",
		"months", snap.Months,
		"withdrawals", len(byType[core.Withdrawal]),
		"deposits", len(byType[core.Deposit]),
		"transfers", len(byType[core.Transfer]),
		"duration_ms", time.Since(start).Milliseconds())
	return snap, nil
}

// fetchAll runs the three category fetches in parallel and merges them into
// a map keyed by type. A failing category does not cancel its siblings; the
// first error surfaces once every fetch has finished.
func (d *Dashboard) fetchAll(ctx context.Context) (map[core.TransactionType][]core.TransactionRecord, error) {
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(maxConcurrentFetches)

	byType := make(map[core.TransactionType][]core.TransactionRecord, maxConcurrentFetches)
	for _, txType := range core.TransactionTypes() {
		txType := txType
		g.Go(func() error {
			records, err := d.fetcher.FetchTransactions(ctx, txType, d.rng, d.pageSize)
			if err != nil {
				return fmt.Errorf("fetch %s transactions: %w", txType, err)
			}
			mu.Lock()
			byType[txType] = records
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return byType, nil
}
