package dto

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
)

const (
	MaxSeatedTravelers  = 9
	MinLocationKeyword  = 2
	LocationSubTypeAny  = "ANY"
	LocationSubTypeCity = "CITY"
)

// SearchCriteria is a one-way or round-trip flight search. The location and
// traveler fields are sent upstream; the sort and filter options only shape
// the results returned here.
type SearchCriteria struct {
	OriginLocationCode      string        `json:"originLocationCode" validate:"required,len=3,alpha"`
	DestinationLocationCode string        `json:"destinationLocationCode" validate:"required,len=3,alpha,nefield=OriginLocationCode"`
	DepartureDate           string        `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate              string        `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Adults                  int           `json:"adults" validate:"gte=1,lte=9"`
	Children                int           `json:"children,omitempty" validate:"gte=0,lte=8"`
	Infants                 int           `json:"infants,omitempty" validate:"gte=0,ltefield=Adults"`
	TravelClass             string        `json:"travelClass,omitempty" validate:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	NonStop                 bool          `json:"nonStop,omitempty"`
	CurrencyCode            string        `json:"currencyCode,omitempty" validate:"omitempty,len=3,alpha"`
	Max                     int           `json:"max,omitempty" validate:"gte=0,lte=250"`
	SortOption              *SortOption   `json:"sort_option,omitempty"`
	FilterOption            *FilterOption `json:"filter_option,omitempty"`
}

type FilterOption struct {
	Airline            *string  `json:"airline,omitempty" validate:"omitempty,len=2"`
	MinPrice           *float64 `json:"min_price,omitempty" validate:"omitempty,gt=0"`
	MaxPrice           *float64 `json:"max_price,omitempty" validate:"omitempty,gt=0"`
	MaxStops           *int     `json:"max_stops,omitempty" validate:"omitempty,gte=0"`
	MaxDurationMinutes *int     `json:"max_duration_minutes,omitempty" validate:"omitempty,gt=0"`
}

type SortOption struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

var AllowedSortField = map[string]bool{
	"best":           true,
	"price":          true,
	"duration":       true,
	"stops":          true,
	"departure_time": true,
}

// Bind reads the criteria from the query string, using the same parameter
// names as the upstream search.
func (s *SearchCriteria) Bind(r *http.Request) error {
	q := r.URL.Query()

	s.OriginLocationCode = strings.ToUpper(strings.TrimSpace(q.Get("originLocationCode")))
	s.DestinationLocationCode = strings.ToUpper(strings.TrimSpace(q.Get("destinationLocationCode")))
	s.DepartureDate = q.Get("departureDate")
	s.ReturnDate = q.Get("returnDate")
	s.TravelClass = strings.ToUpper(q.Get("travelClass"))
	s.CurrencyCode = strings.ToUpper(q.Get("currencyCode"))

	var err error
	if s.Adults, err = queryInt(q, "adults", 1); err != nil {
		return err
	}
	if s.Children, err = queryInt(q, "children", 0); err != nil {
		return err
	}
	if s.Infants, err = queryInt(q, "infants", 0); err != nil {
		return err
	}
	if s.Max, err = queryInt(q, "max", 0); err != nil {
		return err
	}

	if raw := q.Get("nonStop"); raw != "" {
		nonStop, err := strconv.ParseBool(raw)
		if err != nil {
			return queryError("nonStop must be true or false")
		}
		s.NonStop = nonStop
	}

	if field := q.Get("sort"); field != "" {
		s.SortOption = &SortOption{Field: field, Order: q.Get("order")}
	}

	filter, err := bindFilterOption(q)
	if err != nil {
		return err
	}
	s.FilterOption = filter

	return s.Validate()
}

func (s *SearchCriteria) Validate() error {
	if err := validationError(s); err != nil {
		return err
	}

	if s.Adults+s.Children > MaxSeatedTravelers {
		return queryError(fmt.Sprintf("at most %d seated travelers are allowed", MaxSeatedTravelers))
	}

	if s.ReturnDate != "" && s.ReturnDate < s.DepartureDate {
		return queryError("returnDate must not be before departureDate")
	}

	if s.SortOption != nil {
		if !AllowedSortField[s.SortOption.Field] {
			return queryError(fmt.Sprintf("Invalid sort field %s", s.SortOption.Field))
		}
		if s.SortOption.Order == "" {
			s.SortOption.Order = "asc"
		}
		if s.SortOption.Order != "asc" && s.SortOption.Order != "desc" {
			return queryError(fmt.Sprintf("Invalid sort order %s", s.SortOption.Order))
		}
	}

	if s.FilterOption != nil {
		if s.FilterOption.MinPrice != nil && s.FilterOption.MaxPrice != nil &&
			*s.FilterOption.MaxPrice <= *s.FilterOption.MinPrice {
			return queryError("max_price must be greater than min_price")
		}
	}

	return nil
}

// QueryValues returns the parameters of the upstream search. Zero values are left out.
func (s SearchCriteria) QueryValues() url.Values {
	values := url.Values{}
	values.Set("originLocationCode", s.OriginLocationCode)
	values.Set("destinationLocationCode", s.DestinationLocationCode)
	values.Set("departureDate", s.DepartureDate)
	values.Set("adults", strconv.Itoa(s.Adults))

	if s.ReturnDate != "" {
		values.Set("returnDate", s.ReturnDate)
	}
	if s.Children > 0 {
		values.Set("children", strconv.Itoa(s.Children))
	}
	if s.Infants > 0 {
		values.Set("infants", strconv.Itoa(s.Infants))
	}
	if s.TravelClass != "" {
		values.Set("travelClass", s.TravelClass)
	}
	if s.NonStop {
		values.Set("nonStop", "true")
	}
	if s.CurrencyCode != "" {
		values.Set("currencyCode", s.CurrencyCode)
	}
	if s.Max > 0 {
		values.Set("max", strconv.Itoa(s.Max))
	}

	return values
}

func bindFilterOption(q url.Values) (*FilterOption, error) {
	var (
		filter FilterOption
		set    bool
	)

	if airline := strings.ToUpper(q.Get("airline")); airline != "" {
		filter.Airline = &airline
		set = true
	}

	for name, dst := range map[string]**float64{"min_price": &filter.MinPrice, "max_price": &filter.MaxPrice} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, queryError(name + " must be a number")
		}
		*dst = &v
		set = true
	}

	for name, dst := range map[string]**int{"max_stops": &filter.MaxStops, "max_duration_minutes": &filter.MaxDurationMinutes} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, queryError(name + " must be a number")
		}
		*dst = &v
		set = true
	}

	if !set {
		return nil, nil
	}

	return &filter, nil
}

func queryInt(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, queryError(name + " must be a number")
	}

	return v, nil
}

func queryError(message string) error {
	return exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    message,
	}
}

// RankedOffer is a search result with the figures it was filtered and ranked on.
// Score is 0 for the best offer of a search and 1 for the worst.
type RankedOffer struct {
	Offer           FlightOffer `json:"offer"`
	Score           float64     `json:"score"`
	Price           float64     `json:"price"`
	Currency        string      `json:"currency"`
	DurationMinutes int         `json:"duration_minutes"`
	Stops           int         `json:"stops"`
	Airline         string      `json:"airline"`
	DepartureAt     string      `json:"departure_at"`
}

type SearchMetadata struct {
	TotalResults int  `json:"total_results"`
	SearchTimeMs int  `json:"search_time_ms"`
	CacheHit     bool `json:"cache_hit"`
}

type SearchFlightResponse struct {
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Metadata       SearchMetadata `json:"metadata"`
	Offers         []RankedOffer  `json:"offers"`
}

// LocationSearchRequest is the airport and city autocomplete query.
type LocationSearchRequest struct {
	Keyword string `json:"keyword"`
	SubType string `json:"sub_type" validate:"omitempty,oneof=AIRPORT CITY ANY"`
}

func (l *LocationSearchRequest) Bind(r *http.Request) error {
	l.Keyword = strings.TrimSpace(r.URL.Query().Get("keyword"))
	l.SubType = strings.ToUpper(r.URL.Query().Get("sub_type"))
	if l.SubType == "" {
		l.SubType = LocationSubTypeAny
	}

	return validationError(l)
}

type Location struct {
	Type           string          `json:"type,omitempty"`
	SubType        string          `json:"subType"`
	Name           string          `json:"name"`
	DetailedName   string          `json:"detailedName,omitempty"`
	ID             string          `json:"id,omitempty"`
	TimeZoneOffset string          `json:"timeZoneOffset,omitempty"`
	IataCode       string          `json:"iataCode"`
	GeoCode        *GeoCode        `json:"geoCode,omitempty"`
	Address        LocationAddress `json:"address"`
}

type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LocationAddress struct {
	CityName    string `json:"cityName,omitempty"`
	CityCode    string `json:"cityCode,omitempty"`
	CountryName string `json:"countryName,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	RegionCode  string `json:"regionCode,omitempty"`
}

// Label is what a picked location is shown as: the city name for cities,
// "<airport>, <city>" otherwise.
func (l Location) Label() string {
	if l.SubType == LocationSubTypeCity || l.Address.CityName == "" {
		return l.Name
	}

	return l.Name + ", " + l.Address.CityName
}

type LocationResult struct {
	Location
	DisplayName string `json:"display_name"`
}

type LocationSearchResponse struct {
	Keyword   string           `json:"keyword"`
	Locations []LocationResult `json:"locations"`
}
