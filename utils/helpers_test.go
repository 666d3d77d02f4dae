package utils

import "testing"

func TestMonthSpan(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-01", "2024-01", 1},
		{"2024-01", "2024-10", 10},
		{"2024-03", "2025-02", 12},
		{"2023-11", "2024-02", 4},
		{"2024-10", "2024-01", -8}, // inverted range goes negative
		{"bogus", "2024-01", 0},
		{"2024-01", "2024-13", 0},
	}
	for _, tc := range cases {
		if got := MonthSpan(tc.start, tc.end); got != tc.want {
			t.Errorf("MonthSpan(%q, %q) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestValidMonth(t *testing.T) {
	valid := []string{"2024-01", "1999-12", "2030-06"}
	invalid := []string{"", "2024", "2024-13", "2024-00", "24-01", "2024-1", "2024-01-01"}

	for _, m := range valid {
		if !ValidMonth(m) {
			t.Errorf("%q should be valid", m)
		}
	}
	for _, m := range invalid {
		if ValidMonth(m) {
			t.Errorf("%q should be invalid", m)
		}
	}
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		month string
		n     int
		want  string
	}{
		{"2024-01", 1, "2024-02"},
		{"2024-12", 1, "2025-01"},
		{"2024-06", -6, "2023-12"},
		{"2024-06", 0, "2024-06"},
		{"2024-01", 9, "2024-10"}, // 10-month group starting January ends October
	}
	for _, tc := range cases {
		if got := AddMonths(tc.month, tc.n); got != tc.want {
			t.Errorf("AddMonths(%q, %d) = %q, want %q", tc.month, tc.n, got, tc.want)
		}
	}
}

// A duration-created group and an end-month-created group must agree: the end
// month derived from a duration spans exactly that many months.
func TestAddMonthsMatchesMonthSpan(t *testing.T) {
	for _, duration := range []int{1, 6, 10, 12, 24} {
		end := AddMonths("2024-03", duration-1)
		if got := MonthSpan("2024-03", end); got != duration {
			t.Errorf("duration %d derived end %q, but MonthSpan = %d", duration, end, got)
		}
	}
}

func TestPaginationOffset(t *testing.T) {
	p := PaginationQuery{Page: 3, Limit: 20}
	if p.Offset() != 40 {
		t.Fatalf("expected offset 40, got %d", p.Offset())
	}
}
