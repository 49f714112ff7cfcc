package pricing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// MaxRangeDays caps the span of a single quote request. Longer ranges are
// rejected before any enumeration or store access happens.
const MaxRangeDays = 365

// Scope selects whether a quote targets a whole property or a single room.
type Scope string

const (
	ScopeProperty Scope = "property"
	ScopeRoom     Scope = "room"
)

// Machine-readable error codes returned to API clients.
const (
	CodeInvalidID           = "INVALID_ID"
	CodeMissingDates        = "MISSING_DATE_PARAMETERS"
	CodeInvalidStartFormat  = "INVALID_START_DATE_FORMAT"
	CodeInvalidEndFormat    = "INVALID_END_DATE_FORMAT"
	CodeInvalidDateRange    = "INVALID_DATE_RANGE"
	CodeDateRangeTooLarge   = "DATE_RANGE_TOO_LARGE"
	CodeNotFound            = "NOT_FOUND"
	CodeAllDatesUnavailable = "ALL_DATES_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

// ErrSubjectNotFound is returned by SubjectResolver implementations when no
// property or room exists for the requested id.
var ErrSubjectNotFound = errors.New("pricing: subject not found")

// Subject is the resolved target of a quote: a property or a room together
// with its stored base price. PropertyID equals ID for property-scoped
// subjects and names the parent property for rooms.
type Subject struct {
	ID             uint64
	PropertyID     uint64
	Name           string
	BasePriceCents int64
}

// SubjectResolver looks up the quote target in the external store.
type SubjectResolver interface {
	Resolve(ctx context.Context, scope Scope, id uint64) (*Subject, error)
}

// OverrideStore fetches every override record relevant to one calculation
// call in a single batch. Implementations must include property-wide peak
// windows for room-scoped subjects. The calculator never writes through
// this interface.
type OverrideStore interface {
	LoadOverrides(ctx context.Context, scope Scope, subject *Subject, startDate, endDate string) (*OverrideSet, error)
}

// QuoteError is the structured failure outcome of a quote calculation. It
// carries an HTTP-equivalent status and a machine-readable code; the wrapped
// cause (if any) is for server-side logs only and must never reach clients.
type QuoteError struct {
	Code             string
	Status           int
	Message          string
	UnavailableDates []string
	cause            error
}

func (e *QuoteError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *QuoteError) Unwrap() error { return e.cause }

func badRequest(code, message string) *QuoteError {
	return &QuoteError{Code: code, Status: 400, Message: message}
}

func internalError(cause error) *QuoteError {
	return &QuoteError{Code: CodeInternal, Status: 500, Message: "internal error", cause: cause}
}

// Quote is the successful outcome of a calculation: the full per-night
// pricing detail plus aggregate totals, augmented with the subject's
// identity and resolved base price.
type Quote struct {
	SubjectID         uint64        `json:"subject_id"`
	SubjectName       string        `json:"subject_name"`
	BasePriceCents    int64         `json:"base_price_cents"`
	StartDate         string        `json:"start_date"`
	EndDate           string        `json:"end_date"`
	Nights            int           `json:"nights"`
	Breakdown         Breakdown     `json:"breakdown"`
	Pricing           []NightlyRate `json:"pricing"`
	TotalCents        int64         `json:"total_cents"`
	AveragePriceCents int64         `json:"average_price_cents"`
}

// Calculator orchestrates one quote calculation: input validation, subject
// resolution, the batched override fetch, per-night classification and
// aggregation. It holds no mutable state of its own.
type Calculator struct {
	Resolver SubjectResolver
	Store    OverrideStore
}

// NewCalculator constructs a Calculator and panics when a collaborator is
// missing, mirroring how handlers guard their repositories.
func NewCalculator(resolver SubjectResolver, store OverrideStore) *Calculator {
	if resolver == nil || store == nil {
		panic("nil collaborator passed to NewCalculator")
	}
	return &Calculator{Resolver: resolver, Store: store}
}

// Quote runs the full calculation for the given subject and date range.
// Validation is fail-fast in a fixed order: id, date presence, date format,
// ordering, span cap, subject existence. After classification a range whose
// nights are all unavailable is rejected — a fully blocked range is not a
// bookable quote. On failure the returned error is always a *QuoteError.
func (c *Calculator) Quote(ctx context.Context, scope Scope, rawID, startDate, endDate string) (*Quote, error) {
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return nil, badRequest(CodeInvalidID, fmt.Sprintf("invalid %s id", scope))
	}
	if startDate == "" || endDate == "" {
		return nil, badRequest(CodeMissingDates, "start_date and end_date are required")
	}
	if !IsValidDate(startDate) {
		return nil, badRequest(CodeInvalidStartFormat, "start_date must be a valid YYYY-MM-DD date")
	}
	if !IsValidDate(endDate) {
		return nil, badRequest(CodeInvalidEndFormat, "end_date must be a valid YYYY-MM-DD date")
	}
	if startDate > endDate {
		return nil, badRequest(CodeInvalidDateRange, "start_date must not be after end_date")
	}
	if DaysBetween(startDate, endDate) > MaxRangeDays {
		return nil, badRequest(CodeDateRangeTooLarge, fmt.Sprintf("date range must not exceed %d days", MaxRangeDays))
	}

	subject, err := c.Resolver.Resolve(ctx, scope, id)
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			return nil, &QuoteError{Code: CodeNotFound, Status: 404, Message: fmt.Sprintf("%s not found", scope)}
		}
		return nil, internalError(err)
	}

	overrides, err := c.Store.LoadOverrides(ctx, scope, subject, startDate, endDate)
	if err != nil {
		return nil, internalError(err)
	}
	overrides.PruneBestDeals(subject.BasePriceCents)

	nights := EnumerateNights(startDate, endDate)
	rates := make([]NightlyRate, 0, len(nights))
	for _, night := range nights {
		rates = append(rates, ClassifyNight(night, subject.BasePriceCents, overrides))
	}

	breakdown, totalCents, averageCents := Aggregate(rates)
	if len(rates) > 0 && breakdown.UnavailableNights == len(rates) {
		return nil, &QuoteError{
			Code:             CodeAllDatesUnavailable,
			Status:           400,
			Message:          "no nights in the requested range are available",
			UnavailableDates: breakdown.UnavailableDates,
		}
	}

	return &Quote{
		SubjectID:         subject.ID,
		SubjectName:       subject.Name,
		BasePriceCents:    subject.BasePriceCents,
		StartDate:         startDate,
		EndDate:           endDate,
		Nights:            len(rates),
		Breakdown:         breakdown,
		Pricing:           rates,
		TotalCents:        totalCents,
		AveragePriceCents: averageCents,
	}, nil
}
