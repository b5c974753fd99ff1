package traveler

import (
	"strings"
	"time"

	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/passport"
)

// Normalize converts the form state of one traveler into the API traveler.
// Blank optional document fields are defaulted:
//   - validity country falls back to the issuance country
//   - issuance location falls back to the birth place
//   - issuance date is expiry minus 10 calendar years; without an expiry it stays blank
//
// The calling code loses its leading "+". The input is not modified.
func Normalize(t dto.BookingTraveler) dto.ApiTraveler {
	doc := t.Documents

	validityCountry := doc.ValidityCountry
	if validityCountry == "" {
		validityCountry = doc.IssuanceCountry
	}

	issuanceLocation := doc.IssuanceLocation
	if issuanceLocation == "" {
		issuanceLocation = doc.BirthPlace
	}

	issuanceDate := doc.IssuanceDate
	if issuanceDate == "" && doc.ExpiryDate != "" {
		issuanceDate = issuanceFromExpiry(doc.ExpiryDate)
	}

	return dto.ApiTraveler{
		ID:          t.ID,
		DateOfBirth: t.DateOfBirth,
		Name: dto.Name{
			FirstName: t.FirstName,
			LastName:  t.LastName,
		},
		Gender: t.Gender,
		Contact: dto.Contact{
			EmailAddress: t.Email,
			Phones: []dto.Phone{
				{
					DeviceType:         t.DeviceType,
					CountryCallingCode: strings.TrimPrefix(t.CountryCallingCode, "+"),
					Number:             t.Phone,
				},
			},
		},
		Documents: []dto.Document{
			{
				DocumentType:     doc.DocumentType,
				BirthPlace:       doc.BirthPlace,
				IssuanceLocation: issuanceLocation,
				IssuanceDate:     issuanceDate,
				Number:           doc.Number,
				ExpiryDate:       doc.ExpiryDate,
				IssuanceCountry:  doc.IssuanceCountry,
				ValidityCountry:  validityCountry,
				Nationality:      doc.Nationality,
				Holder:           doc.Holder,
			},
		},
	}
}

// NormalizeAll normalizes travelers in order.
func NormalizeAll(travelers []dto.BookingTraveler) []dto.ApiTraveler {
	results := make([]dto.ApiTraveler, len(travelers))
	for i, t := range travelers {
		results[i] = Normalize(t)
	}

	return results
}

// IsIncomplete reports an API traveler whose issuance date could not be defaulted.
func IsIncomplete(t dto.ApiTraveler) bool {
	for _, doc := range t.Documents {
		if doc.IssuanceDate == "" {
			return true
		}
	}

	return len(t.Documents) == 0
}

// an unparsable expiry leaves the issuance date blank, same as a missing one
func issuanceFromExpiry(expiry string) string {
	expiryDate, err := passport.ParseDate(expiry, time.UTC)
	if err != nil {
		return ""
	}

	return passport.IssuanceFromExpiry(expiryDate).Format(passport.DateLayout)
}
