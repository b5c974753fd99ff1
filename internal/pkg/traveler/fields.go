package traveler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
)

// Field is one editable path of the traveler form.
type Field string

const (
	FieldFirstName          Field = "first_name"
	FieldLastName           Field = "last_name"
	FieldDateOfBirth        Field = "date_of_birth"
	FieldGender             Field = "gender"
	FieldEmail              Field = "email"
	FieldPhone              Field = "phone"
	FieldCountryCallingCode Field = "country_calling_code"
	FieldDeviceType         Field = "device_type"
	FieldDocumentType       Field = "documents.document_type"
	FieldDocumentNumber     Field = "documents.number"
	FieldExpiryDate         Field = "documents.expiry_date"
	FieldIssuanceCountry    Field = "documents.issuance_country"
	FieldValidityCountry    Field = "documents.validity_country"
	FieldNationality        Field = "documents.nationality"
	FieldBirthPlace         Field = "documents.birth_place"
	FieldIssuanceLocation   Field = "documents.issuance_location"
	FieldIssuanceDate       Field = "documents.issuance_date"
	FieldHolder             Field = "documents.holder"
)

var (
	ErrUnknownField = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "unknown traveler field",
	}
	ErrInvalidFieldValue = exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    "invalid traveler field value",
	}
)

type setter func(t *dto.BookingTraveler, value string) error

func text(target func(t *dto.BookingTraveler) *string) setter {
	return func(t *dto.BookingTraveler, value string) error {
		*target(t) = value
		return nil
	}
}

func choice(target func(t *dto.BookingTraveler) *string, allowed ...string) setter {
	return func(t *dto.BookingTraveler, value string) error {
		for _, a := range allowed {
			if value == a {
				*target(t) = value
				return nil
			}
		}

		return fmt.Errorf("%q not one of %v: %w", value, allowed, ErrInvalidFieldValue)
	}
}

var setters = map[Field]setter{
	FieldFirstName:          text(func(t *dto.BookingTraveler) *string { return &t.FirstName }),
	FieldLastName:           text(func(t *dto.BookingTraveler) *string { return &t.LastName }),
	FieldDateOfBirth:        text(func(t *dto.BookingTraveler) *string { return &t.DateOfBirth }),
	FieldGender:             choice(func(t *dto.BookingTraveler) *string { return &t.Gender }, GenderMale, GenderFemale),
	FieldEmail:              text(func(t *dto.BookingTraveler) *string { return &t.Email }),
	FieldPhone:              text(func(t *dto.BookingTraveler) *string { return &t.Phone }),
	FieldCountryCallingCode: text(func(t *dto.BookingTraveler) *string { return &t.CountryCallingCode }),
	FieldDeviceType:         choice(func(t *dto.BookingTraveler) *string { return &t.DeviceType }, DeviceMobile, DeviceLandline),
	FieldDocumentType: choice(func(t *dto.BookingTraveler) *string { return &t.Documents.DocumentType },
		DocumentPassport, DocumentIDCard),
	FieldDocumentNumber:   text(func(t *dto.BookingTraveler) *string { return &t.Documents.Number }),
	FieldExpiryDate:       text(func(t *dto.BookingTraveler) *string { return &t.Documents.ExpiryDate }),
	FieldIssuanceCountry:  text(func(t *dto.BookingTraveler) *string { return &t.Documents.IssuanceCountry }),
	FieldValidityCountry:  text(func(t *dto.BookingTraveler) *string { return &t.Documents.ValidityCountry }),
	FieldNationality:      text(func(t *dto.BookingTraveler) *string { return &t.Documents.Nationality }),
	FieldBirthPlace:       text(func(t *dto.BookingTraveler) *string { return &t.Documents.BirthPlace }),
	FieldIssuanceLocation: text(func(t *dto.BookingTraveler) *string { return &t.Documents.IssuanceLocation }),
	FieldIssuanceDate:     text(func(t *dto.BookingTraveler) *string { return &t.Documents.IssuanceDate }),
	FieldHolder: func(t *dto.BookingTraveler, value string) error {
		holder, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("holder %q: %w", value, ErrInvalidFieldValue)
		}
		t.Documents.Holder = holder
		return nil
	},
}

// ParseField accepts only the known form paths.
func ParseField(name string) (Field, error) {
	field := Field(name)
	if _, ok := setters[field]; !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownField)
	}

	return field, nil
}

// Set writes value into field of t. id and traveler type are not settable.
func Set(t *dto.BookingTraveler, field Field, value string) error {
	set, ok := setters[field]
	if !ok {
		return fmt.Errorf("%q: %w", field, ErrUnknownField)
	}

	return set(t, value)
}
