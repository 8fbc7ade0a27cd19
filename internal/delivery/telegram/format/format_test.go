package format_test

import (
	"testing"
	"time"

	"shift-tracker/internal/delivery/telegram/format"
	"shift-tracker/internal/domain"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{160, "$160.00"},
		{18.125, "$18.13"},
		{1234.5, "$1,234.50"},
	}
	for _, tc := range tests {
		if got := format.Money(tc.in); got != tc.want {
			t.Fatalf("Money(%v) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestReport(t *testing.T) {
	rep := domain.Report{
		Granularity: domain.Month,
		Window:      domain.Window{Label: "Month of January", Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Totals:      domain.Totals{Hours: 11, Pay: 220, Count: 2},
		Owed:        60,
		Weeks: []domain.WeekSummary{
			{Label: "Dec 31-6", Hours: 8, Pay: 160},
			{Label: "Jan 7-13", Hours: 3, Pay: 60},
		},
	}
	want := "Month of January\n2 shift(s), 11.00h, $220.00\nOwed: $60.00\n\nDec 31-6: 8.00h, $160.00\nJan 7-13: 3.00h, $60.00"
	if got := format.Report(rep); got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}

	empty := domain.Report{Window: domain.Window{Label: "Week of Jan 7"}}
	if got := format.Report(empty); got != "Week of Jan 7\nNo shifts." {
		t.Fatalf("empty report %q", got)
	}
}

func TestUnpaid(t *testing.T) {
	if got := format.Unpaid(0, 0); got != "Everything is paid." {
		t.Fatalf("got %q", got)
	}
	if got := format.Unpaid(205, 2); got != "Unpaid: $205.00 across 2 shift(s)." {
		t.Fatalf("got %q", got)
	}
}

func TestCount(t *testing.T) {
	if format.Count(1) != "1 shift" || format.Count(3) != "3 shifts" {
		t.Fatalf("got %q %q", format.Count(1), format.Count(3))
	}
}
