package dto

// BookingTraveler is the editable form state of one seat. ID and TravelerType come
// from the offer's traveler pricing and have no setter.
type BookingTraveler struct {
	ID                 string         `json:"id"`
	TravelerType       string         `json:"traveler_type"`
	FirstName          string         `json:"first_name" validate:"required"`
	LastName           string         `json:"last_name" validate:"required"`
	DateOfBirth        string         `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender             string         `json:"gender" validate:"required,oneof=MALE FEMALE"`
	Email              string         `json:"email" validate:"required,email"`
	Phone              string         `json:"phone" validate:"required"`
	CountryCallingCode string         `json:"country_calling_code" validate:"required"`
	DeviceType         string         `json:"device_type" validate:"required,oneof=MOBILE LANDLINE"`
	Documents          TravelDocument `json:"documents"`
}

// TravelDocument is the passport or id card of a traveler.
type TravelDocument struct {
	DocumentType     string `json:"document_type" validate:"required,oneof=PASSPORT ID_CARD"`
	Number           string `json:"number" validate:"required"`
	ExpiryDate       string `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	IssuanceCountry  string `json:"issuance_country" validate:"required"`
	ValidityCountry  string `json:"validity_country"`
	Nationality      string `json:"nationality" validate:"required"`
	BirthPlace       string `json:"birth_place" validate:"required"`
	IssuanceLocation string `json:"issuance_location"`
	IssuanceDate     string `json:"issuance_date" validate:"omitempty,datetime=2006-01-02"`
	Holder           bool   `json:"holder"`
}

type PassportExpiryRange struct {
	MinExpiry string `json:"min_expiry"`
	MaxExpiry string `json:"max_expiry"`
}
