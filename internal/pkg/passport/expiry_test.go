package passport

import (
	"errors"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpiryRange(t *testing.T) {
	rangeRequest := func(today time.Time, want Range) func(t *testing.T) {
		return func(t *testing.T) {
			got := ExpiryRange(today)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("ExpiryRange() mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("mid_month", rangeRequest(date(2026, time.October, 16), Range{Min: "2027-04-16", Max: "2036-10-16"}))
	t.Run("time_of_day_ignored", rangeRequest(time.Date(2026, time.January, 10, 23, 59, 0, 0, time.UTC),
		Range{Min: "2026-07-10", Max: "2036-01-10"}))
	t.Run("month_end_overflow", rangeRequest(date(2026, time.August, 31), Range{Min: "2027-03-03", Max: "2036-08-31"}))
	t.Run("leap_day", rangeRequest(date(2028, time.February, 29), Range{Min: "2028-08-29", Max: "2038-03-01"}))
}

func TestExpiryRange_Idempotent(t *testing.T) {
	mockClock := clock.NewMock()
	mockClock.Add(24 * time.Hour * 365 * 50)

	first := ExpiryRange(Today(mockClock))
	second := ExpiryRange(Today(mockClock))

	assert.Equal(t, first, second)
}

func TestIssuanceFromExpiry(t *testing.T) {
	assert.Equal(t, "2024-06-15", IssuanceFromExpiry(date(2034, time.June, 15)).Format(DateLayout))
	// calendar years, not 3652 days
	assert.Equal(t, "2022-03-01", IssuanceFromExpiry(date(2032, time.March, 1)).Format(DateLayout))
}

func TestValidateExpiry(t *testing.T) {
	today := date(2026, time.October, 16)

	validateRequest := func(expiry string, wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			err := ValidateExpiry(expiry, today)
			if wantErr == nil {
				assert.NoError(t, err)
				return
			}

			if !errors.Is(err, wantErr) {
				t.Fatalf("ValidateExpiry(%q) error = %v, want %v", expiry, err, wantErr)
			}
		}
	}

	t.Run("min_bound_inclusive", validateRequest("2027-04-16", nil))
	t.Run("max_bound_inclusive", validateRequest("2036-10-16", nil))
	t.Run("day_before_min", validateRequest("2027-04-15", ErrExpiryTooSoon))
	t.Run("day_after_max", validateRequest("2036-10-17", ErrExpiryTooLate))
	t.Run("not_a_date", validateRequest("16/10/2030", ErrInvalidExpiry))
}
