package pricing

// RateType classifies how the price of a single night was determined.
type RateType string

const (
	RateBase        RateType = "base"        // nightly base price, no override in effect
	RateBestDeal    RateType = "best_deal"   // explicit discounted price point for the date
	RatePeakSeason  RateType = "peak_season" // price raised by an active peak-season window
	RateUnavailable RateType = "unavailable" // date is blocked; price is always zero
)

// PeakWindow is an active peak-season rate spanning [StartDate, EndDate]
// inclusive. Exactly one of PercentIncrease / PriceIncreaseCents is set;
// that is enforced at data entry, not here. RoomID is nil for windows that
// apply property-wide.
type PeakWindow struct {
	RoomID             *uint64
	StartDate          string
	EndDate            string
	PercentIncrease    *float64
	PriceIncreaseCents *int64
}

// Covers reports whether the window spans the given night. Lexicographic
// comparison is exact for YYYY-MM-DD strings.
func (w PeakWindow) Covers(date string) bool {
	return w.StartDate <= date && date <= w.EndDate
}

// OverrideSet holds every override relevant to one calculation call, indexed
// for O(1) per-night lookup. It is assembled once per call from a batched
// store fetch so the external cost stays constant regardless of range length.
type OverrideSet struct {
	// SoldOut marks dates that are explicitly blocked.
	SoldOut map[string]bool
	// BestDealCents maps a date to its discounted price.
	BestDealCents map[string]int64
	// PeakWindows lists active windows overlapping the requested range,
	// both room-specific and property-wide for room-scoped requests.
	PeakWindows []PeakWindow
}

// NewOverrideSet returns an empty set with initialized maps.
func NewOverrideSet() *OverrideSet {
	return &OverrideSet{
		SoldOut:       make(map[string]bool),
		BestDealCents: make(map[string]int64),
	}
}

// PruneBestDeals drops every best-deal entry whose price is not strictly
// below the base price. The strictly-less-than rule is enforced when deals
// are created; entries that slip through anyway (e.g. the base price was
// raised after the deal was stored) are ignored rather than rejected, so a
// stale deal can never error a quote or raise a price.
func (s *OverrideSet) PruneBestDeals(basePriceCents int64) {
	for date, price := range s.BestDealCents {
		if price >= basePriceCents {
			delete(s.BestDealCents, date)
		}
	}
}
