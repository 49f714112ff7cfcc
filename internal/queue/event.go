// Package queue defines message payloads exchanged over the message broker.
package queue

// QuoteCalculatedEvent is published after a quote is successfully computed.
// It contains enough information for downstream consumers to log, feed
// analytics, or tune pricing without querying the primary database.
type QuoteCalculatedEvent struct {
	EventID           string `json:"event_id"`
	Scope             string `json:"scope"`
	SubjectID         uint64 `json:"subject_id"`
	SubjectName       string `json:"subject_name"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	Nights            int    `json:"nights"`
	BaseNights        int    `json:"base_nights"`
	BestDealNights    int    `json:"best_deal_nights"`
	PeakSeasonNights  int    `json:"peak_season_nights"`
	UnavailableNights int    `json:"unavailable_nights"`
	TotalCents        int64  `json:"total_cents"`
	AveragePriceCents int64  `json:"average_price_cents"`
	CalculatedAt      string `json:"calculated_at"`
}
