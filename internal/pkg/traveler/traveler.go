package traveler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/passport"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"

	DeviceMobile   = "MOBILE"
	DeviceLandline = "LANDLINE"

	DocumentPassport = "PASSPORT"
	DocumentIDCard   = "ID_CARD"

	DefaultCountryCallingCode = "+1"
)

var (
	ErrDateOfBirthInFuture = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "date of birth cannot be in the future",
	}
	ErrIssuanceDateInFuture = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "issuance date cannot be in the future",
	}
)

// FromOffer creates one blank traveler per traveler pricing of offer.
func FromOffer(offer dto.FlightOffer) []dto.BookingTraveler {
	travelers := make([]dto.BookingTraveler, 0, len(offer.TravelerPricings))
	for _, pricing := range offer.TravelerPricings {
		travelers = append(travelers, dto.BookingTraveler{
			ID:                 pricing.TravelerID,
			TravelerType:       pricing.TravelerType,
			Gender:             GenderMale,
			CountryCallingCode: DefaultCountryCallingCode,
			DeviceType:         DeviceMobile,
			Documents: dto.TravelDocument{
				DocumentType: DocumentPassport,
				Holder:       true,
			},
		})
	}

	return travelers
}

// Validate runs the form checks of one traveler: required fields, date formats,
// the passport expiry window and no future birth or issuance dates.
// Incomplete defaulting (blank expiry and issuance together) is not checked here.
func Validate(t dto.BookingTraveler, today time.Time) error {
	if err := dto.ValidateSingleError(t); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Kind:       exception.KindValidation,
			Message:    err.Error(),
		}
	}

	today = passport.Day(today)

	dob, err := passport.ParseDate(t.DateOfBirth, today.Location())
	if err == nil && dob.After(today) {
		return ErrDateOfBirthInFuture
	}

	if err := passport.ValidateExpiry(t.Documents.ExpiryDate, today); err != nil {
		return err
	}

	if t.Documents.IssuanceDate != "" {
		issued, err := passport.ParseDate(t.Documents.IssuanceDate, today.Location())
		if err == nil && issued.After(today) {
			return ErrIssuanceDateInFuture
		}
	}

	return nil
}

// ValidateAll validates every traveler and names the first failing one.
func ValidateAll(travelers []dto.BookingTraveler, today time.Time) error {
	for i, t := range travelers {
		if err := Validate(t, today); err != nil {
			return fmt.Errorf("traveler %d (%s): %w", i+1, t.TravelerType, err)
		}
	}

	return nil
}
