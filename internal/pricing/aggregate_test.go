package pricing

import (
	"reflect"
	"testing"
)

func TestAggregateExcludesUnavailableNights(t *testing.T) {
	rates := []NightlyRate{
		{Date: "2024-03-01", PriceCents: 10000, Type: RateBase},
		{Date: "2024-03-02", PriceCents: 0, Type: RateUnavailable},
		{Date: "2024-03-03", PriceCents: 8000, Type: RateBestDeal},
	}
	breakdown, total, average := Aggregate(rates)

	if total != 18000 {
		t.Errorf("total = %d, want 18000", total)
	}
	// Average over the two available nights, not all three.
	if average != 9000 {
		t.Errorf("average = %d, want 9000", average)
	}
	if breakdown.UnavailableNights != 1 {
		t.Errorf("unavailable nights = %d, want 1", breakdown.UnavailableNights)
	}
	if !reflect.DeepEqual(breakdown.UnavailableDates, []string{"2024-03-02"}) {
		t.Errorf("unavailable dates = %v, want [2024-03-02]", breakdown.UnavailableDates)
	}
}

func TestAggregateCountsSumToTotalNights(t *testing.T) {
	rates := []NightlyRate{
		{Date: "2024-03-01", PriceCents: 10000, Type: RateBase},
		{Date: "2024-03-02", PriceCents: 8000, Type: RateBestDeal},
		{Date: "2024-03-03", PriceCents: 13000, Type: RatePeakSeason},
		{Date: "2024-03-04", PriceCents: 13000, Type: RatePeakSeason},
		{Date: "2024-03-05", PriceCents: 0, Type: RateUnavailable},
	}
	breakdown, _, _ := Aggregate(rates)
	sum := breakdown.BaseNights + breakdown.BestDealNights + breakdown.PeakSeasonNights + breakdown.UnavailableNights
	if sum != len(rates) {
		t.Fatalf("counters sum to %d, want %d", sum, len(rates))
	}
	if breakdown.BaseNights != 1 || breakdown.BestDealNights != 1 || breakdown.PeakSeasonNights != 2 || breakdown.UnavailableNights != 1 {
		t.Fatalf("unexpected breakdown %+v", breakdown)
	}
}

func TestAggregateAverageRounds(t *testing.T) {
	rates := []NightlyRate{
		{Date: "2024-03-01", PriceCents: 10000, Type: RateBase},
		{Date: "2024-03-02", PriceCents: 10000, Type: RateBase},
		{Date: "2024-03-03", PriceCents: 10001, Type: RateBase},
	}
	_, total, average := Aggregate(rates)
	if total != 30001 {
		t.Fatalf("total = %d, want 30001", total)
	}
	if average != 10000 { // 10000.33 rounds down
		t.Fatalf("average = %d, want 10000", average)
	}
}

func TestAggregateAllUnavailable(t *testing.T) {
	rates := []NightlyRate{
		{Date: "2024-03-01", PriceCents: 0, Type: RateUnavailable},
		{Date: "2024-03-02", PriceCents: 0, Type: RateUnavailable},
	}
	breakdown, total, average := Aggregate(rates)
	if total != 0 || average != 0 {
		t.Fatalf("total=%d average=%d, want both 0", total, average)
	}
	if !reflect.DeepEqual(breakdown.UnavailableDates, []string{"2024-03-01", "2024-03-02"}) {
		t.Fatalf("unavailable dates = %v, want both dates in order", breakdown.UnavailableDates)
	}
}

func TestAggregateEmpty(t *testing.T) {
	breakdown, total, average := Aggregate(nil)
	if total != 0 || average != 0 || breakdown.UnavailableNights != 0 {
		t.Fatalf("empty aggregate produced %+v total=%d average=%d", breakdown, total, average)
	}
	if breakdown.UnavailableDates == nil {
		t.Fatal("UnavailableDates should be an empty slice, not nil")
	}
}
