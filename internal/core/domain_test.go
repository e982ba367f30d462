package core

import (
	"errors"
	"testing"
	"time"
)

func TestTransactionType_Validate(t *testing.T) {
	for _, tt := range TransactionTypes() {
		if err := tt.Validate(); err != nil {
			t.Errorf("Validate(%q) returned error: %v", tt, err)
		}
	}
	if err := TransactionType("refund").Validate(); !errors.Is(err, ErrInvalidType) {
		t.Errorf("Validate(refund) = %v, want ErrInvalidType", err)
	}
}

func TestTimeRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rng     TimeRange
		wantErr bool
	}{
		{
			name: "valid range",
			rng:  TimeRange{Start: NewDate(2024, 1, 1), End: NewDate(2024, 2, 28)},
		},
		{
			name: "single day",
			rng:  TimeRange{Start: NewDate(2024, 1, 15), End: NewDate(2024, 1, 15)},
		},
		{
			name:    "end before start",
			rng:     TimeRange{Start: NewDate(2024, 3, 1), End: NewDate(2024, 1, 1)},
			wantErr: true,
		},
		{
			name:    "zero boundaries",
			rng:     TimeRange{},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rng.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestMonthSequence(t *testing.T) {
	tests := []struct {
		name string
		rng  TimeRange
		want []string
	}{
		{
			name: "two months",
			rng:  TimeRange{Start: NewDate(2024, 1, 1), End: NewDate(2024, 2, 28)},
			want: []string{"2024-01", "2024-02"},
		},
		{
			name: "mid-month boundaries still cover both months",
			rng:  TimeRange{Start: NewDate(2024, 1, 31), End: NewDate(2024, 3, 1)},
			want: []string{"2024-01", "2024-02", "2024-03"},
		},
		{
			name: "year boundary",
			rng:  TimeRange{Start: NewDate(2023, 11, 5), End: NewDate(2024, 2, 10)},
			want: []string{"2023-11", "2023-12", "2024-01", "2024-02"},
		},
		{
			name: "single month",
			rng:  TimeRange{Start: NewDate(2024, 6, 1), End: NewDate(2024, 6, 30)},
			want: []string{"2024-06"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			months := MonthSequence(tc.rng)
			if len(months) != len(tc.want) {
				t.Fatalf("MonthSequence() returned %d months, want %d", len(months), len(tc.want))
			}
			for i, m := range months {
				if got := MonthLabel(m); got != tc.want[i] {
					t.Errorf("month[%d] = %q, want %q", i, got, tc.want[i])
				}
				if m.Day() != 1 {
					t.Errorf("month[%d] is not first-of-month: %v", i, m)
				}
			}
		})
	}
}

func TestMonthSequence_Contiguous(t *testing.T) {
	rng := TimeRange{Start: NewDate(2021, 3, 17), End: NewDate(2024, 9, 2)}
	months := MonthSequence(rng)
	for i := 1; i < len(months); i++ {
		if !months[i].Equal(months[i-1].AddDate(0, 1, 0)) {
			t.Fatalf("gap between %v and %v", months[i-1], months[i])
		}
	}
}

func TestMonthCount(t *testing.T) {
	rng := TimeRange{Start: NewDate(2024, 1, 10), End: NewDate(2024, 1, 20)}
	if got := MonthCount(rng); got != 1 {
		t.Errorf("MonthCount(single month) = %d, want 1", got)
	}
	rng = TimeRange{Start: NewDate(2024, 1, 1), End: NewDate(2024, 12, 31)}
	if got := MonthCount(rng); got != 12 {
		t.Errorf("MonthCount(full year) = %d, want 12", got)
	}
}

func TestMonthStart_PreservesLocation(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	in := time.Date(2024, 5, 21, 13, 45, 0, 0, loc)
	got := MonthStart(in)
	if got.Location() != loc {
		t.Errorf("MonthStart changed location: %v", got.Location())
	}
	if got.Day() != 1 || got.Hour() != 0 {
		t.Errorf("MonthStart(%v) = %v, want first of month at midnight", in, got)
	}
}
