package domain

import (
	"time"
)

// CabinClass is the requested or booked travel class.
type CabinClass string

// Cabin class constants.
const (
	CabinEconomy        CabinClass = "ECONOMY"
	CabinPremiumEconomy CabinClass = "PREMIUM_ECONOMY"
	CabinBusiness       CabinClass = "BUSINESS"
	CabinFirst          CabinClass = "FIRST"
)

// Valid reports whether c is a known cabin class. Empty is valid and
// means "any".
func (c CabinClass) Valid() bool {
	switch c {
	case "", CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	default:
		return false
	}
}

// FlightSortField selects the flight result sort key.
type FlightSortField string

// Flight sort fields.
const (
	FlightSortPrice     FlightSortField = "price"
	FlightSortDuration  FlightSortField = "duration"
	FlightSortDeparture FlightSortField = "departure"
)

// FlightSearchRequest is a domain-level flight query.
type FlightSearchRequest struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departure_date"`
	ReturnDate    string     `json:"return_date,omitempty"`
	Adults        int        `json:"adults"`
	Children      int        `json:"children,omitempty"`
	Infants       int        `json:"infants,omitempty"`
	CabinClass    CabinClass `json:"cabin_class,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	MaxResults    int        `json:"max_results,omitempty"`

	Filters   FlightFilters   `json:"filters,omitempty"`
	SortBy    FlightSortField `json:"sort_by,omitempty"`
	SortOrder SortOrder       `json:"sort_order,omitempty"`
}

// FlightFilters are the post-fetch constraints applied to flight offers.
type FlightFilters struct {
	Price             PriceRange `json:"price,omitempty"`
	DirectOnly        bool       `json:"direct_only,omitempty"`
	MaxStops          *int       `json:"max_stops,omitempty"`
	PreferredAirlines []string   `json:"preferred_airlines,omitempty"`
	ExcludedAirlines  []string   `json:"excluded_airlines,omitempty"`
}

// Match reports whether the flight satisfies every filter.
func (f *FlightFilters) Match(r *FlightResult) bool {
	if !f.Price.Contains(r.Price) {
		return false
	}

	stops := r.MaxStops()
	if f.DirectOnly && stops > 0 {
		return false
	}
	if f.MaxStops != nil && stops > *f.MaxStops {
		return false
	}

	carriers := r.Carriers()
	if excluded := normalizeCodes(f.ExcludedAirlines); excluded != nil {
		for _, c := range carriers {
			if _, ok := excluded[c]; ok {
				return false
			}
		}
	}
	if preferred := normalizeCodes(f.PreferredAirlines); preferred != nil {
		found := false
		for _, c := range carriers {
			if _, ok := preferred[c]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Segment is a single flight leg.
type Segment struct {
	CarrierCode       string    `json:"carrier_code"`
	CarrierName       string    `json:"carrier_name"`
	FlightNumber      string    `json:"flight_number"`
	OperatingCarrier  string    `json:"operating_carrier,omitempty"`
	AircraftCode      string    `json:"aircraft_code,omitempty"`
	AircraftName      string    `json:"aircraft_name,omitempty"`
	DepartureAirport  string    `json:"departure_airport"`
	DepartureTerminal string    `json:"departure_terminal,omitempty"`
	DepartureTime     time.Time `json:"departure_time"`
	ArrivalAirport    string    `json:"arrival_airport"`
	ArrivalTerminal   string    `json:"arrival_terminal,omitempty"`
	ArrivalTime       time.Time `json:"arrival_time"`
	Duration          string    `json:"duration"`
	DurationMinutes   int       `json:"duration_minutes"`

	// Layover is the ground time before the next segment of the same
	// itinerary. Empty on the final segment.
	Layover        string `json:"layover,omitempty"`
	LayoverMinutes int    `json:"layover_minutes,omitempty"`
}

// Itinerary is one direction of travel made of ordered segments.
type Itinerary struct {
	Duration        string    `json:"duration"`
	DurationMinutes int       `json:"duration_minutes"`
	Stops           int       `json:"stops"`
	Segments        []Segment `json:"segments"`
}

// FlightResult is a normalized flight offer.
type FlightResult struct {
	ID                string     `json:"id"`
	Source            string     `json:"source"`
	Price             float64    `json:"price"`
	BasePrice         float64    `json:"base_price"`
	Currency          string     `json:"currency"`
	ValidatingAirline string     `json:"validating_airline,omitempty"`
	AirlineName       string     `json:"airline_name"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	DepartureTime     time.Time  `json:"departure_time"`
	ArrivalTime       time.Time  `json:"arrival_time"`
	Duration          string     `json:"duration"`
	DurationMinutes   int        `json:"duration_minutes"`
	Stops             int        `json:"stops"`
	CabinClass        CabinClass `json:"cabin_class"`
	SeatsAvailable    int        `json:"seats_available,omitempty"`
	LastTicketingDate string     `json:"last_ticketing_date,omitempty"`
	Outbound          Itinerary  `json:"outbound"`
	Return            *Itinerary `json:"return,omitempty"`
}

// MaxStops returns the largest stop count across outbound and return.
func (r *FlightResult) MaxStops() int {
	stops := r.Outbound.Stops
	if r.Return != nil && r.Return.Stops > stops {
		stops = r.Return.Stops
	}
	return stops
}

// TotalMinutes returns the combined flying-plus-layover time of every
// itinerary on the offer.
func (r *FlightResult) TotalMinutes() int {
	total := r.Outbound.DurationMinutes
	if r.Return != nil {
		total += r.Return.DurationMinutes
	}
	return total
}

// Carriers returns the distinct marketing carrier codes across all segments.
func (r *FlightResult) Carriers() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(it *Itinerary) {
		for i := range it.Segments {
			code := it.Segments[i].CarrierCode
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			out = append(out, code)
		}
	}
	add(&r.Outbound)
	if r.Return != nil {
		add(r.Return)
	}
	return out
}
