// Package passport computes the accepted expiry window of a travel document.
//
// All arithmetic is calendar based (time.AddDate), never a fixed number of days,
// so results do not drift across leap years. Overflowing days normalize the way
// time.Date does, e.g. 31 Aug + 6 months is 3 Mar (or 2 Mar in a leap year).
package passport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/facebookgo/clock"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
)

const (
	// DateLayout is the wire format of every document date.
	DateLayout = "2006-01-02"

	MinValidityMonths = 6
	MaxValidityYears  = 10
	IssuanceYears     = 10
)

var (
	ErrInvalidExpiry = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "expiry date must be a valid YYYY-MM-DD date",
	}
	ErrExpiryTooSoon = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "passport must be valid for at least 6 months",
	}
	ErrExpiryTooLate = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "passport expiry cannot be more than 10 years from today",
	}
)

// Range is the inclusive expiry window, formatted YYYY-MM-DD.
type Range struct {
	Min string
	Max string
}

// Today returns the current calendar day of clk in its local location.
func Today(clk clock.Clock) time.Time {
	return Day(clk.Now())
}

// Day truncates t to midnight of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MinExpiry is today plus 6 calendar months.
func MinExpiry(today time.Time) time.Time {
	return Day(today).AddDate(0, MinValidityMonths, 0)
}

// MaxExpiry is today plus 10 calendar years.
func MaxExpiry(today time.Time) time.Time {
	return Day(today).AddDate(MaxValidityYears, 0, 0)
}

// ExpiryRange returns both bounds for today. It is recomputed on every call.
func ExpiryRange(today time.Time) Range {
	return Range{
		Min: MinExpiry(today).Format(DateLayout),
		Max: MaxExpiry(today).Format(DateLayout),
	}
}

// IssuanceFromExpiry assumes a document issued 10 calendar years before it expires.
func IssuanceFromExpiry(expiry time.Time) time.Time {
	return expiry.AddDate(-IssuanceYears, 0, 0)
}

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	return time.ParseInLocation(DateLayout, value, loc)
}

// ValidateExpiry checks expiry against the inclusive window of today.
func ValidateExpiry(expiry string, today time.Time) error {
	date, err := ParseDate(expiry, today.Location())
	if err != nil {
		return fmt.Errorf("parse expiry %q: %w", expiry, ErrInvalidExpiry)
	}

	if date.Before(MinExpiry(today)) {
		return fmt.Errorf("expiry %s before %s: %w", expiry,
			MinExpiry(today).Format(DateLayout), ErrExpiryTooSoon)
	}

	if date.After(MaxExpiry(today)) {
		return fmt.Errorf("expiry %s after %s: %w", expiry,
			MaxExpiry(today).Format(DateLayout), ErrExpiryTooLate)
	}

	return nil
}
