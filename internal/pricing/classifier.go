package pricing

import "math"

// NightlyRate is the classification outcome for a single night.
type NightlyRate struct {
	Date       string   `json:"date"`
	PriceCents int64    `json:"price_cents"`
	Type       RateType `json:"type"`
}

// ClassifyNight decides the classification and price for one night using a
// fixed precedence order, first match wins:
//
//  1. sold out      – a blocked night cannot be sold at any price
//  2. best deal     – a manually granted discount beats automatic peak pricing
//  3. peak season   – applies only in the absence of an overriding discount
//  4. base          – the fallback
//
// The ordering is a business rule shared by the property-level and
// room-level quote endpoints.
func ClassifyNight(date string, basePriceCents int64, overrides *OverrideSet) NightlyRate {
	if overrides.SoldOut[date] {
		return NightlyRate{Date: date, PriceCents: 0, Type: RateUnavailable}
	}
	if price, ok := overrides.BestDealCents[date]; ok {
		return NightlyRate{Date: date, PriceCents: price, Type: RateBestDeal}
	}
	if w, ok := peakWindowFor(date, overrides.PeakWindows); ok {
		return NightlyRate{Date: date, PriceCents: peakPrice(basePriceCents, w), Type: RatePeakSeason}
	}
	return NightlyRate{Date: date, PriceCents: basePriceCents, Type: RateBase}
}

// peakWindowFor picks the winning window among all that cover the date.
// A room-specific window always beats a property-wide one; among windows of
// equal scope the one with the latest start date wins, so a freshly added
// narrower window overrides an older season-long one.
func peakWindowFor(date string, windows []PeakWindow) (PeakWindow, bool) {
	var best PeakWindow
	found := false
	for _, w := range windows {
		if !w.Covers(date) {
			continue
		}
		if !found || peakWindowBeats(w, best) {
			best = w
			found = true
		}
	}
	return best, found
}

func peakWindowBeats(a, b PeakWindow) bool {
	aRoom := a.RoomID != nil
	bRoom := b.RoomID != nil
	if aRoom != bRoom {
		return aRoom
	}
	return a.StartDate > b.StartDate
}

// peakPrice composes the nightly price for a peak window: base plus the flat
// increase, or base scaled by the percentage increase rounded to the nearest
// whole cent.
func peakPrice(basePriceCents int64, w PeakWindow) int64 {
	if w.PriceIncreaseCents != nil {
		return basePriceCents + *w.PriceIncreaseCents
	}
	if w.PercentIncrease != nil {
		return int64(math.Round(float64(basePriceCents) * (1 + *w.PercentIncrease/100)))
	}
	return basePriceCents
}
