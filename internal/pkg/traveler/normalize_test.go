package traveler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/flight-booking-bff/internal/app/dto"
	"github.com/stretchr/testify/assert"
)

func completeTraveler() dto.BookingTraveler {
	return dto.BookingTraveler{
		ID:                 "1",
		TravelerType:       "ADULT",
		FirstName:          "Jane",
		LastName:           "Smith",
		DateOfBirth:        "1990-02-11",
		Gender:             GenderFemale,
		Email:              "jane@example.com",
		Phone:              "7700900123",
		CountryCallingCode: "+44",
		DeviceType:         DeviceMobile,
		Documents: dto.TravelDocument{
			DocumentType:    DocumentPassport,
			Number:          "123456789",
			ExpiryDate:      "2034-06-15",
			IssuanceCountry: "GB",
			Nationality:     "GB",
			BirthPlace:      "London",
			Holder:          true,
		},
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(completeTraveler())

	want := dto.ApiTraveler{
		ID:          "1",
		DateOfBirth: "1990-02-11",
		Name:        dto.Name{FirstName: "Jane", LastName: "Smith"},
		Gender:      GenderFemale,
		Contact: dto.Contact{
			EmailAddress: "jane@example.com",
			Phones: []dto.Phone{
				{DeviceType: DeviceMobile, CountryCallingCode: "44", Number: "7700900123"},
			},
		},
		Documents: []dto.Document{
			{
				DocumentType:     DocumentPassport,
				BirthPlace:       "London",
				IssuanceLocation: "London",
				IssuanceDate:     "2024-06-15",
				Number:           "123456789",
				ExpiryDate:       "2034-06-15",
				IssuanceCountry:  "GB",
				ValidityCountry:  "GB",
				Nationality:      "GB",
				Holder:           true,
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	normalizeRequest := func(mutate func(t *dto.BookingTraveler), check func(t *testing.T, doc dto.Document, phone dto.Phone)) func(t *testing.T) {
		return func(t *testing.T) {
			in := completeTraveler()
			mutate(&in)

			got := Normalize(in)
			check(t, got.Documents[0], got.Contact.Phones[0])
		}
	}

	t.Run("explicit_validity_country_kept", normalizeRequest(
		func(t *dto.BookingTraveler) { t.Documents.ValidityCountry = "IE" },
		func(t *testing.T, doc dto.Document, _ dto.Phone) {
			assert.Equal(t, "IE", doc.ValidityCountry)
		}))

	t.Run("explicit_issuance_location_kept", normalizeRequest(
		func(t *dto.BookingTraveler) { t.Documents.IssuanceLocation = "Liverpool" },
		func(t *testing.T, doc dto.Document, _ dto.Phone) {
			assert.Equal(t, "Liverpool", doc.IssuanceLocation)
		}))

	t.Run("explicit_issuance_date_kept", normalizeRequest(
		func(t *dto.BookingTraveler) { t.Documents.IssuanceDate = "2025-01-02" },
		func(t *testing.T, doc dto.Document, _ dto.Phone) {
			assert.Equal(t, "2025-01-02", doc.IssuanceDate)
		}))

	t.Run("issuance_from_leap_day_expiry", normalizeRequest(
		func(t *dto.BookingTraveler) { t.Documents.ExpiryDate = "2036-02-29" },
		func(t *testing.T, doc dto.Document, _ dto.Phone) {
			assert.Equal(t, "2026-03-01", doc.IssuanceDate)
		}))

	t.Run("blank_expiry_and_issuance_pass_through", normalizeRequest(
		func(t *dto.BookingTraveler) { t.Documents.ExpiryDate = "" },
		func(t *testing.T, doc dto.Document, _ dto.Phone) {
			assert.Equal(t, "", doc.IssuanceDate)
			assert.Equal(t, "", doc.ExpiryDate)
		}))

	t.Run("calling_code_without_plus", normalizeRequest(
		func(t *dto.BookingTraveler) { t.CountryCallingCode = "62" },
		func(t *testing.T, _ dto.Document, phone dto.Phone) {
			assert.Equal(t, "62", phone.CountryCallingCode)
		}))
}

func TestNormalize_InputUntouched(t *testing.T) {
	in := completeTraveler()
	before := in

	_ = Normalize(in)

	if diff := cmp.Diff(before, in); diff != "" {
		t.Fatalf("Normalize() mutated input (-before +after):\n%s", diff)
	}
}

func TestIsIncomplete(t *testing.T) {
	in := completeTraveler()
	assert.False(t, IsIncomplete(Normalize(in)))

	in.Documents.ExpiryDate = ""
	assert.True(t, IsIncomplete(Normalize(in)))
}

func TestNormalizeAll(t *testing.T) {
	first := completeTraveler()
	second := completeTraveler()
	second.ID = "2"

	got := NormalizeAll([]dto.BookingTraveler{first, second})

	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
}
