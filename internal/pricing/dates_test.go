package pricing

import (
	"reflect"
	"testing"
)

func TestIsValidDate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2024-03-01", true},
		{"2024-02-29", true},  // leap day in a leap year
		{"2023-02-29", false}, // not a leap year
		{"2024-02-30", false}, // matches the shape but is not a real date
		{"2024-13-01", false},
		{"2024-3-1", false}, // missing zero padding
		{"20240301", false},
		{"2024-03-01T00:00:00Z", false},
		{"", false},
		{"not-a-date", false},
	}
	for _, tc := range cases {
		if got := IsValidDate(tc.in); got != tc.want {
			t.Errorf("IsValidDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEnumerateNightsExcludesCheckout(t *testing.T) {
	got := EnumerateNights("2024-01-10", "2024-01-13")
	want := []string{"2024-01-10", "2024-01-11", "2024-01-12"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("EnumerateNights = %v, want %v", got, want)
	}
}

func TestEnumerateNightsSameDayIsEmpty(t *testing.T) {
	if got := EnumerateNights("2024-01-10", "2024-01-10"); len(got) != 0 {
		t.Fatalf("expected no nights for a same-day range, got %v", got)
	}
}

func TestEnumerateNightsCrossesMonthAndYear(t *testing.T) {
	got := EnumerateNights("2023-12-30", "2024-01-02")
	want := []string{"2023-12-30", "2023-12-31", "2024-01-01"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("EnumerateNights = %v, want %v", got, want)
	}
}

// The night count always equals the day difference, and the last night is
// the day before checkout, never the checkout date itself.
func TestEnumerateNightsMatchesDaysBetween(t *testing.T) {
	ranges := [][2]string{
		{"2024-01-01", "2024-01-02"},
		{"2024-02-27", "2024-03-02"}, // across a leap day
		{"2024-06-01", "2024-06-15"},
		{"2024-01-01", "2025-01-01"}, // full leap year
	}
	for _, r := range ranges {
		nights := EnumerateNights(r[0], r[1])
		if len(nights) != DaysBetween(r[0], r[1]) {
			t.Errorf("range %v: %d nights but DaysBetween = %d", r, len(nights), DaysBetween(r[0], r[1]))
		}
		if nights[len(nights)-1] >= r[1] {
			t.Errorf("range %v: last night %s is not before the checkout date", r, nights[len(nights)-1])
		}
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-31", 30},
		{"2024-01-31", "2024-01-01", 30}, // absolute difference
		{"2024-02-28", "2024-03-01", 2},  // leap year
		{"2023-02-28", "2023-03-01", 1},
		{"2024-01-01", "2025-01-01", 366},
		{"2023-01-01", "2024-01-01", 365},
	}
	for _, tc := range cases {
		if got := DaysBetween(tc.start, tc.end); got != tc.want {
			t.Errorf("DaysBetween(%q, %q) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}
