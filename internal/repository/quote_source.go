package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rentora/pricing-service/internal/pricing"
)

// QuoteSource adapts the property, room and rate repositories to the
// calculator's SubjectResolver and OverrideStore interfaces. It is the only
// seam between the pure pricing core and MySQL.
type QuoteSource struct {
	Properties *PropertyRepo
	Rooms      *RoomRepo
	Rates      *RateRepo
}

// NewQuoteSource constructs a QuoteSource and panics if any repository is nil.
func NewQuoteSource(properties *PropertyRepo, rooms *RoomRepo, rates *RateRepo) *QuoteSource {
	if properties == nil || rooms == nil || rates == nil {
		panic("nil repository passed to NewQuoteSource")
	}
	return &QuoteSource{Properties: properties, Rooms: rooms, Rates: rates}
}

// Resolve looks up the quote subject. Not-found sentinels from the
// repositories are translated to pricing.ErrSubjectNotFound so the
// calculator never depends on repository error values.
func (s *QuoteSource) Resolve(ctx context.Context, scope pricing.Scope, id uint64) (*pricing.Subject, error) {
	switch scope {
	case pricing.ScopeProperty:
		p, err := s.Properties.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrPropertyNotFound) {
				return nil, pricing.ErrSubjectNotFound
			}
			return nil, err
		}
		return &pricing.Subject{ID: p.ID, PropertyID: p.ID, Name: p.Name, BasePriceCents: p.BasePriceCents}, nil
	case pricing.ScopeRoom:
		rm, err := s.Rooms.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrRoomNotFound) {
				return nil, pricing.ErrSubjectNotFound
			}
			return nil, err
		}
		return &pricing.Subject{ID: rm.ID, PropertyID: rm.PropertyID, Name: rm.Name, BasePriceCents: rm.BasePriceCents}, nil
	}
	return nil, fmt.Errorf("unknown quote scope %q", scope)
}

// LoadOverrides fetches all override records for the subject and window in
// three batched queries and indexes them for per-night lookup. For
// room-scoped subjects the peak window query also returns property-wide
// windows; sold-out dates and best deals stay within the requested scope.
func (s *QuoteSource) LoadOverrides(ctx context.Context, scope pricing.Scope, subject *pricing.Subject, startDate, endDate string) (*pricing.OverrideSet, error) {
	var roomID *uint64
	propertyID := subject.PropertyID
	if scope == pricing.ScopeRoom {
		roomID = &subject.ID
	}

	soldOut, err := s.Rates.SoldOutDates(ctx, propertyID, roomID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("load sold-out dates: %w", err)
	}
	deals, err := s.Rates.BestDeals(ctx, propertyID, roomID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("load best deals: %w", err)
	}
	windows, err := s.Rates.PeakWindows(ctx, propertyID, roomID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("load peak windows: %w", err)
	}

	set := pricing.NewOverrideSet()
	set.SoldOut = soldOut
	set.BestDealCents = deals
	set.PeakWindows = windows
	return set, nil
}

var (
	_ pricing.SubjectResolver = (*QuoteSource)(nil)
	_ pricing.OverrideStore   = (*QuoteSource)(nil)
)
