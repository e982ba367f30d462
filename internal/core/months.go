// Package core holds the domain model shared by the fetch, aggregation,
// and presentation layers: transaction records, date ranges, and the
// calendar-month helpers the monthly series is built on.
package core

import "time"

// MonthLabelLayout is the canonical "YYYY-MM" month key format.
const MonthLabelLayout = "2006-01"

// MonthStart truncates a date to the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthSequence returns every month between start and end inclusive, as
// first-of-month dates in ascending order. A single-month range yields one
// entry; months with no transactions are still present.
func MonthSequence(rng TimeRange) []time.Time {
	var months []time.Time
	current := MonthStart(rng.Start)
	last := MonthStart(rng.End)
	for !current.After(last) {
		months = append(months, current)
		current = current.AddDate(0, 1, 0)
	}
	return months
}

// MonthCount returns the number of months a range spans, never less than 1
// so that per-month averages stay divisible.
func MonthCount(rng TimeRange) int {
	n := len(MonthSequence(rng))
	if n < 1 {
		return 1
	}
	return n
}

// MonthLabel formats a month key as "YYYY-MM".
func MonthLabel(t time.Time) string {
	return t.Format(MonthLabelLayout)
}
