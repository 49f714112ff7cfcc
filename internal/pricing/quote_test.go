package pricing

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// fakeResolver and fakeStore stand in for the MySQL-backed collaborators.
// They record whether they were called so validation-order tests can assert
// that invalid input never reaches the stores.
type fakeResolver struct {
	subject *Subject
	err     error
	called  bool
}

func (f *fakeResolver) Resolve(_ context.Context, _ Scope, _ uint64) (*Subject, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.subject, nil
}

type fakeStore struct {
	set    *OverrideSet
	err    error
	called bool
}

func (f *fakeStore) LoadOverrides(_ context.Context, _ Scope, _ *Subject, _, _ string) (*OverrideSet, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	if f.set == nil {
		return NewOverrideSet(), nil
	}
	return f.set, nil
}

func newTestCalculator(subject *Subject, set *OverrideSet) (*Calculator, *fakeResolver, *fakeStore) {
	resolver := &fakeResolver{subject: subject}
	store := &fakeStore{set: set}
	return NewCalculator(resolver, store), resolver, store
}

func quoteErr(t *testing.T, err error) *QuoteError {
	t.Helper()
	var qe *QuoteError
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QuoteError, got %T: %v", err, err)
	}
	return qe
}

func TestQuoteValidationFailures(t *testing.T) {
	cases := []struct {
		name       string
		id         string
		start, end string
		wantCode   string
	}{
		{"non numeric id", "abc", "2024-03-01", "2024-03-04", CodeInvalidID},
		{"zero id", "0", "2024-03-01", "2024-03-04", CodeInvalidID},
		{"negative id", "-3", "2024-03-01", "2024-03-04", CodeInvalidID},
		{"missing start", "1", "", "2024-03-04", CodeMissingDates},
		{"missing end", "1", "2024-03-01", "", CodeMissingDates},
		{"bad start format", "1", "03/01/2024", "2024-03-04", CodeInvalidStartFormat},
		{"impossible start date", "1", "2024-02-30", "2024-03-04", CodeInvalidStartFormat},
		{"bad end format", "1", "2024-03-01", "next tuesday", CodeInvalidEndFormat},
		{"inverted range", "1", "2024-03-04", "2024-03-01", CodeInvalidDateRange},
		{"range over a year", "1", "2024-01-01", "2025-01-02", CodeDateRangeTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calc, resolver, store := newTestCalculator(&Subject{ID: 1, PropertyID: 1, Name: "Villa", BasePriceCents: 10000}, nil)
			_, err := calc.Quote(context.Background(), ScopeProperty, tc.id, tc.start, tc.end)
			qe := quoteErr(t, err)
			if qe.Code != tc.wantCode {
				t.Fatalf("code = %s, want %s", qe.Code, tc.wantCode)
			}
			if qe.Status != 400 {
				t.Fatalf("status = %d, want 400", qe.Status)
			}
			// Fail-fast: no collaborator is consulted for invalid input.
			if resolver.called || store.called {
				t.Fatal("collaborators were called before validation passed")
			}
		})
	}
}

func TestQuoteRangeCapBoundary(t *testing.T) {
	calc, _, _ := newTestCalculator(&Subject{ID: 1, PropertyID: 1, Name: "Villa", BasePriceCents: 10000}, nil)

	// 365 days is the largest accepted span.
	if _, err := calc.Quote(context.Background(), ScopeProperty, "1", "2023-01-01", "2024-01-01"); err != nil {
		t.Fatalf("365-day range rejected: %v", err)
	}
	// 366 days is one too many.
	_, err := calc.Quote(context.Background(), ScopeProperty, "1", "2024-01-01", "2025-01-01")
	if qe := quoteErr(t, err); qe.Code != CodeDateRangeTooLarge {
		t.Fatalf("code = %s, want %s", qe.Code, CodeDateRangeTooLarge)
	}
}

func TestQuoteSubjectNotFound(t *testing.T) {
	calc := NewCalculator(&fakeResolver{err: ErrSubjectNotFound}, &fakeStore{})
	_, err := calc.Quote(context.Background(), ScopeRoom, "42", "2024-03-01", "2024-03-04")
	qe := quoteErr(t, err)
	if qe.Code != CodeNotFound || qe.Status != 404 {
		t.Fatalf("got code=%s status=%d, want NOT_FOUND/404", qe.Code, qe.Status)
	}
}

func TestQuoteCollaboratorFailuresAreInternal(t *testing.T) {
	boom := errors.New("connection refused")

	calc := NewCalculator(&fakeResolver{err: boom}, &fakeStore{})
	_, err := calc.Quote(context.Background(), ScopeProperty, "1", "2024-03-01", "2024-03-04")
	qe := quoteErr(t, err)
	if qe.Code != CodeInternal || qe.Status != 500 {
		t.Fatalf("resolver failure: got code=%s status=%d", qe.Code, qe.Status)
	}
	// The client-facing message stays generic; the cause is only reachable
	// through the error chain for logging.
	if qe.Message != "internal error" {
		t.Fatalf("message = %q, want generic", qe.Message)
	}
	if !errors.Is(err, boom) {
		t.Fatal("cause not preserved in the error chain")
	}

	calc = NewCalculator(&fakeResolver{subject: &Subject{ID: 1, PropertyID: 1, BasePriceCents: 10000}}, &fakeStore{err: boom})
	_, err = calc.Quote(context.Background(), ScopeProperty, "1", "2024-03-01", "2024-03-04")
	if qe := quoteErr(t, err); qe.Code != CodeInternal {
		t.Fatalf("store failure: got code=%s", qe.Code)
	}
}

func TestQuoteAllNightsUnavailable(t *testing.T) {
	set := NewOverrideSet()
	set.SoldOut["2024-03-01"] = true
	set.SoldOut["2024-03-02"] = true
	set.SoldOut["2024-03-03"] = true

	calc, _, _ := newTestCalculator(&Subject{ID: 1, PropertyID: 1, Name: "Villa", BasePriceCents: 10000}, set)
	_, err := calc.Quote(context.Background(), ScopeProperty, "1", "2024-03-01", "2024-03-04")
	qe := quoteErr(t, err)
	if qe.Code != CodeAllDatesUnavailable || qe.Status != 400 {
		t.Fatalf("got code=%s status=%d", qe.Code, qe.Status)
	}
	want := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	if !reflect.DeepEqual(qe.UnavailableDates, want) {
		t.Fatalf("unavailable dates = %v, want %v", qe.UnavailableDates, want)
	}
}

func TestQuotePartialAvailabilitySucceeds(t *testing.T) {
	set := NewOverrideSet()
	set.SoldOut["2024-03-01"] = true
	set.SoldOut["2024-03-02"] = true

	calc, _, _ := newTestCalculator(&Subject{ID: 1, PropertyID: 1, Name: "Villa", BasePriceCents: 10000}, set)
	q, err := calc.Quote(context.Background(), ScopeProperty, "1", "2024-03-01", "2024-03-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Breakdown.UnavailableNights != 2 || q.TotalCents != 10000 {
		t.Fatalf("got %+v", q)
	}
}

func TestQuoteSameDayRange(t *testing.T) {
	calc, _, _ := newTestCalculator(&Subject{ID: 1, PropertyID: 1, Name: "Villa", BasePriceCents: 10000}, nil)
	q, err := calc.Quote(context.Background(), ScopeProperty, "1", "2024-03-01", "2024-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Nights != 0 || q.TotalCents != 0 || q.AveragePriceCents != 0 {
		t.Fatalf("same-day quote should be empty, got %+v", q)
	}
	if len(q.Pricing) != 0 {
		t.Fatalf("same-day quote has pricing detail: %v", q.Pricing)
	}
}

// Full walk-through: three nights, one best deal, one property-wide peak
// window at +30%.
func TestQuoteEndToEnd(t *testing.T) {
	set := NewOverrideSet()
	set.BestDealCents["2024-03-02"] = 8000
	set.PeakWindows = []PeakWindow{{StartDate: "2024-03-03", EndDate: "2024-03-10", PercentIncrease: ptrF(30)}}

	calc, _, _ := newTestCalculator(&Subject{ID: 9, PropertyID: 9, Name: "Seaside Villa", BasePriceCents: 10000}, set)
	q, err := calc.Quote(context.Background(), ScopeProperty, "9", "2024-03-01", "2024-03-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPricing := []NightlyRate{
		{Date: "2024-03-01", PriceCents: 10000, Type: RateBase},
		{Date: "2024-03-02", PriceCents: 8000, Type: RateBestDeal},
		{Date: "2024-03-03", PriceCents: 13000, Type: RatePeakSeason},
	}
	if !reflect.DeepEqual(q.Pricing, wantPricing) {
		t.Errorf("pricing = %v, want %v", q.Pricing, wantPricing)
	}
	if q.Nights != 3 {
		t.Errorf("nights = %d, want 3", q.Nights)
	}
	if q.TotalCents != 31000 {
		t.Errorf("total = %d, want 31000", q.TotalCents)
	}
	if q.AveragePriceCents != 10333 {
		t.Errorf("average = %d, want 10333", q.AveragePriceCents)
	}
	if q.SubjectID != 9 || q.SubjectName != "Seaside Villa" || q.BasePriceCents != 10000 {
		t.Errorf("subject fields wrong: %+v", q)
	}
	if q.Breakdown.BaseNights != 1 || q.Breakdown.BestDealNights != 1 || q.Breakdown.PeakSeasonNights != 1 {
		t.Errorf("breakdown = %+v", q.Breakdown)
	}
}

// A stale best deal at or above base is ignored and the night falls through
// to the next applicable rule.
func TestQuoteIgnoresStaleBestDeals(t *testing.T) {
	set := NewOverrideSet()
	set.BestDealCents["2024-03-01"] = 10000 // equal to base: not a deal
	set.BestDealCents["2024-03-02"] = 15000 // above base: not a deal

	calc, _, _ := newTestCalculator(&Subject{ID: 1, PropertyID: 1, Name: "Villa", BasePriceCents: 10000}, set)
	q, err := calc.Quote(context.Background(), ScopeProperty, "1", "2024-03-01", "2024-03-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Breakdown.BestDealNights != 0 || q.Breakdown.BaseNights != 2 {
		t.Fatalf("breakdown = %+v, want two base nights", q.Breakdown)
	}
	if q.TotalCents != 20000 {
		t.Fatalf("total = %d, want 20000", q.TotalCents)
	}
}
