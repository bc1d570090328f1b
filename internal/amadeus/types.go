package amadeus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// flexString accepts a JSON string or number. The provider is not
// consistent about which it sends for codes and ratings.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(b)
	return nil
}

// FlexFloat is an optional number sent either as a JSON number or a
// numeric string. Valid is false when absent, null, empty or unparseable.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil {
		*f = FlexFloat{}
		return nil //nolint:nilerr // unparseable optional numbers are treated as absent
	}
	*f = FlexFloat{Value: v, Valid: true}
	return nil
}

// GeoCode is a provider coordinate pair.
type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (g *GeoCode) isZero() bool {
	return g == nil || (g.Latitude == 0 && g.Longitude == 0)
}

// Flight offers.

// FlightOffersResponse is the /v2/shopping/flight-offers payload.
type FlightOffersResponse struct {
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
	Data         []FlightOffer `json:"data"`
	Dictionaries Dictionaries  `json:"dictionaries"`
}

// Dictionaries resolves codes used in flight offers.
type Dictionaries struct {
	Carriers  map[string]string `json:"carriers"`
	Aircraft  map[string]string `json:"aircraft"`
	Locations map[string]struct {
		CityCode    string `json:"cityCode"`
		CountryCode string `json:"countryCode"`
	} `json:"locations"`
}

// FlightOffer is a single priced itinerary set.
type FlightOffer struct {
	ID                     string            `json:"id"`
	Source                 string            `json:"source"`
	OneWay                 bool              `json:"oneWay"`
	LastTicketingDate      string            `json:"lastTicketingDate"`
	NumberOfBookableSeats  int               `json:"numberOfBookableSeats"`
	Itineraries            []OfferItinerary  `json:"itineraries"`
	Price                  OfferPrice        `json:"price"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes"`
	TravelerPricings       []TravelerPricing `json:"travelerPricings"`
}

// OfferItinerary is one direction of a flight offer.
type OfferItinerary struct {
	Duration string         `json:"duration"`
	Segments []OfferSegment `json:"segments"`
}

// OfferSegment is one flight leg of an itinerary.
type OfferSegment struct {
	ID          string         `json:"id"`
	Departure   FlightEndpoint `json:"departure"`
	Arrival     FlightEndpoint `json:"arrival"`
	CarrierCode string         `json:"carrierCode"`
	Number      string         `json:"number"`
	Aircraft    struct {
		Code string `json:"code"`
	} `json:"aircraft"`
	Operating *struct {
		CarrierCode string `json:"carrierCode"`
	} `json:"operating"`
	Duration      string `json:"duration"`
	NumberOfStops int    `json:"numberOfStops"`
}

// FlightEndpoint is a segment departure or arrival.
type FlightEndpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

// OfferPrice is the price block of a flight offer. Amounts are decimal
// strings.
type OfferPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}

// TravelerPricing carries per-traveler fare details.
type TravelerPricing struct {
	TravelerID           string       `json:"travelerId"`
	TravelerType         string       `json:"travelerType"`
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment"`
}

// FareDetail is the fare applied to one segment.
type FareDetail struct {
	SegmentID string `json:"segmentId"`
	Cabin     string `json:"cabin"`
	FareBasis string `json:"fareBasis"`
	Class     string `json:"class"`
}

func (o *FlightOffer) validate() error {
	var errs []error
	if o.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if len(o.Itineraries) == 0 {
		errs = append(errs, errors.New("no itineraries"))
	}
	for i, it := range o.Itineraries {
		if len(it.Segments) == 0 {
			errs = append(errs, fmt.Errorf("itinerary %d has no segments", i))
		}
		for j, seg := range it.Segments {
			if seg.CarrierCode == "" || seg.Departure.IATACode == "" || seg.Arrival.IATACode == "" {
				errs = append(errs, fmt.Errorf("itinerary %d segment %d missing carrier or airport", i, j))
			}
			if _, err := parseProviderTime(seg.Departure.At); err != nil {
				errs = append(errs, fmt.Errorf("itinerary %d segment %d departure: %w", i, j, err))
			}
			if _, err := parseProviderTime(seg.Arrival.At); err != nil {
				errs = append(errs, fmt.Errorf("itinerary %d segment %d arrival: %w", i, j, err))
			}
		}
	}
	if _, err := o.Price.amount(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("flight offer %q: %w", o.ID, err)
	}
	return nil
}

// amount returns grandTotal, falling back to total.
func (p *OfferPrice) amount() (float64, error) {
	raw := p.GrandTotal
	if raw == "" {
		raw = p.Total
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return v, nil
}

// Hotel discovery.

// HotelListResponse is the hotel-list (by-city / by-geocode) payload.
type HotelListResponse struct {
	Data []HotelRecord `json:"data"`
}

// HotelRecord is a discovered hotel.
type HotelRecord struct {
	HotelID   string    `json:"hotelId"`
	ChainCode string    `json:"chainCode"`
	IATACode  string    `json:"iataCode"`
	Name      string    `json:"name"`
	Rating    FlexFloat `json:"rating"`
	Amenities []string  `json:"amenities"`
	GeoCode   *GeoCode  `json:"geoCode"`
	Address   *Address  `json:"address"`
	Distance  *Distance `json:"distance"`
}

// Address is a provider postal address.
type Address struct {
	Lines       []string `json:"lines"`
	PostalCode  string   `json:"postalCode"`
	CityName    string   `json:"cityName"`
	CountryCode string   `json:"countryCode"`
}

// Distance is a distance from the search centre.
type Distance struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Kilometers converts the distance to km. Unknown units are taken as km.
func (d *Distance) Kilometers() float64 {
	if strings.EqualFold(d.Unit, "MILE") || strings.EqualFold(d.Unit, "MI") {
		return d.Value * 1.609344
	}
	return d.Value
}

func (h *HotelRecord) validate() error {
	if h.HotelID == "" {
		return errors.New("hotel record missing hotelId")
	}
	if h.Name == "" {
		return fmt.Errorf("hotel %q missing name", h.HotelID)
	}
	return nil
}

// Hotel offers.

// HotelOffersResponse is the /v3/shopping/hotel-offers payload.
type HotelOffersResponse struct {
	Data []HotelOffers `json:"data"`
}

// HotelOffers groups the available offers for one hotel.
type HotelOffers struct {
	Available bool `json:"available"`
	Hotel     struct {
		HotelID   string   `json:"hotelId"`
		ChainCode string   `json:"chainCode"`
		Name      string   `json:"name"`
		CityCode  string   `json:"cityCode"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"hotel"`
	Offers []HotelOffer `json:"offers"`
}

// HotelOffer is one bookable rate.
type HotelOffer struct {
	ID           string `json:"id"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	RateCode     string `json:"rateCode"`
	BoardType    string `json:"boardType"`
	Room         struct {
		Type          string `json:"type"`
		TypeEstimated *struct {
			Category string `json:"category"`
			Beds     int    `json:"beds"`
			BedType  string `json:"bedType"`
		} `json:"typeEstimated"`
		Description *struct {
			Text string `json:"text"`
		} `json:"description"`
	} `json:"room"`
	Price struct {
		Currency string `json:"currency"`
		Base     string `json:"base"`
		Total    string `json:"total"`
	} `json:"price"`
	Policies struct {
		PaymentType   string `json:"paymentType"`
		Cancellations []struct {
			Deadline string `json:"deadline"`
		} `json:"cancellations"`
		Refundable *struct {
			CancellationRefund string `json:"cancellationRefund"`
		} `json:"refundable"`
	} `json:"policies"`
}

func (o *HotelOffer) total() (float64, error) {
	v, err := strconv.ParseFloat(o.Price.Total, 64)
	if err != nil {
		return 0, fmt.Errorf("hotel offer %q: invalid total %q", o.ID, o.Price.Total)
	}
	return v, nil
}

func (o *HotelOffer) validate() error {
	if o.ID == "" {
		return errors.New("hotel offer missing id")
	}
	_, err := o.total()
	return err
}

// Points of interest.

// POIResponse is the /v1/reference-data/locations/pois payload.
type POIResponse struct {
	Data []POIRecord `json:"data"`
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
}

// POIRecord is a point of interest.
type POIRecord struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	SubType  string    `json:"subType"`
	Name     string    `json:"name"`
	GeoCode  GeoCode   `json:"geoCode"`
	Category string    `json:"category"`
	Rank     FlexFloat `json:"rank"`
	Tags     []string  `json:"tags"`
}

func (p *POIRecord) validate() error {
	if p.ID == "" {
		return errors.New("point of interest missing id")
	}
	if p.Name == "" {
		return fmt.Errorf("point of interest %q missing name", p.ID)
	}
	return nil
}

// Tours and activities.

// ActivitiesResponse is the /v1/shopping/activities payload.
type ActivitiesResponse struct {
	Data []ActivityRecord `json:"data"`
}

// ActivityRecord is a bookable tour or activity.
type ActivityRecord struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"shortDescription"`
	Description      string    `json:"description"`
	GeoCode          GeoCode   `json:"geoCode"`
	Rating           FlexFloat `json:"rating"`
	Pictures         []string  `json:"pictures"`
	BookingLink      string    `json:"bookingLink"`
	MinimumDuration  string    `json:"minimumDuration"`
	AvailableFrom    string    `json:"availableFrom"`
	AvailableTo      string    `json:"availableTo"`
	Price            struct {
		Amount       FlexFloat `json:"amount"`
		CurrencyCode string    `json:"currencyCode"`
	} `json:"price"`
}

func (a *ActivityRecord) validate() error {
	if a.ID == "" {
		return errors.New("activity missing id")
	}
	if a.Name == "" {
		return fmt.Errorf("activity %q missing name", a.ID)
	}
	return nil
}
