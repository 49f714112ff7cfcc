package pricing

import "math"

// Breakdown tallies nights per classification. The four counters always sum
// to the total night count of the request, and UnavailableDates preserves
// calendar order.
type Breakdown struct {
	BaseNights        int      `json:"base_nights"`
	BestDealNights    int      `json:"best_deal_nights"`
	PeakSeasonNights  int      `json:"peak_season_nights"`
	UnavailableNights int      `json:"unavailable_nights"`
	UnavailableDates  []string `json:"unavailable_dates"`
}

// Aggregate sums nightly prices into a total and an average. Unavailable
// nights contribute nothing to the total and are excluded from the average's
// denominator; when every night is unavailable the average is zero.
func Aggregate(rates []NightlyRate) (Breakdown, int64, int64) {
	breakdown := Breakdown{UnavailableDates: []string{}}
	var totalCents int64
	for _, r := range rates {
		switch r.Type {
		case RateBestDeal:
			breakdown.BestDealNights++
		case RatePeakSeason:
			breakdown.PeakSeasonNights++
		case RateUnavailable:
			breakdown.UnavailableNights++
			breakdown.UnavailableDates = append(breakdown.UnavailableDates, r.Date)
		default:
			breakdown.BaseNights++
		}
		if r.Type != RateUnavailable {
			totalCents += r.PriceCents
		}
	}
	available := len(rates) - breakdown.UnavailableNights
	var averageCents int64
	if available > 0 {
		averageCents = int64(math.Round(float64(totalCents) / float64(available)))
	}
	return breakdown, totalCents, averageCents
}
