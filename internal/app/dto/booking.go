package dto

// ApiTraveler is the traveler shape the booking API expects.
type ApiTraveler struct {
	ID          string     `json:"id"`
	DateOfBirth string     `json:"dateOfBirth"`
	Name        Name       `json:"name"`
	Gender      string     `json:"gender"`
	Contact     Contact    `json:"contact"`
	Documents   []Document `json:"documents"`
}

type Name struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Contact struct {
	EmailAddress string  `json:"emailAddress"`
	Phones       []Phone `json:"phones"`
}

type Phone struct {
	DeviceType         string `json:"deviceType"`
	CountryCallingCode string `json:"countryCallingCode"`
	Number             string `json:"number"`
}

type Document struct {
	DocumentType     string `json:"documentType"`
	BirthPlace       string `json:"birthPlace"`
	IssuanceLocation string `json:"issuanceLocation"`
	IssuanceDate     string `json:"issuanceDate"`
	Number           string `json:"number"`
	ExpiryDate       string `json:"expiryDate"`
	IssuanceCountry  string `json:"issuanceCountry"`
	ValidityCountry  string `json:"validityCountry"`
	Nationality      string `json:"nationality"`
	Holder           bool   `json:"holder"`
}

// FlightBookingData is the body of POST /booking/flight-orders.
type FlightBookingData struct {
	FlightOffer FlightOffer   `json:"flight_offer"`
	Travelers   []ApiTraveler `json:"travelers"`
}

// FlightOrder is the order record returned by the booking API.
type FlightOrder struct {
	Type              string             `json:"type,omitempty"`
	ID                string             `json:"id"`
	AssociatedRecords []AssociatedRecord `json:"associatedRecords,omitempty"`
	FlightOffers      []FlightOffer      `json:"flightOffers,omitempty"`
	Travelers         []ApiTraveler      `json:"travelers,omitempty"`
}

type AssociatedRecord struct {
	Reference        string `json:"reference"`
	CreationDate     string `json:"creationDate,omitempty"`
	OriginSystemCode string `json:"originSystemCode,omitempty"`
	FlightOfferID    string `json:"flightOfferId,omitempty"`
}

// BookingSummary is one row of the "my bookings" view.
type BookingSummary struct {
	ID             string   `json:"id"`
	BookingID      string   `json:"booking_id"`
	PNR            string   `json:"pnr"`
	Status         string   `json:"status"`
	TicketStatus   string   `json:"ticket_status"`
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	DepartureDate  string   `json:"departure_date"`
	ReturnDate     *string  `json:"return_date"`
	Airline        string   `json:"airline"`
	FlightNumber   string   `json:"flight_number"`
	Passengers     int      `json:"passengers"`
	Total          string   `json:"total"`
	Currency       string   `json:"currency"`
	TicketURL      *string  `json:"ticket_url"`
	IssuedAt       *string  `json:"issued_at"`
	PassengerNames []string `json:"passenger_names"`
	Duration       string   `json:"duration,omitempty"`
}

type BookingListMetadata struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalResults int `json:"total_results"`
	TotalPages   int `json:"total_pages"`
}

type BookingListResponse struct {
	Metadata BookingListMetadata `json:"metadata"`
	Bookings []BookingSummary    `json:"bookings"`
}

// APIErrorBody is the failure body of the booking API.
type APIErrorBody struct {
	Detail interface{} `json:"detail"`
}

// DetailMessage returns detail when it is a plain string.
func (b APIErrorBody) DetailMessage() string {
	if s, ok := b.Detail.(string); ok {
		return s
	}

	return ""
}
