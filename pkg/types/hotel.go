package domain

import (
	"strings"
	"time"
)

// HotelSortField selects the hotel result sort key.
type HotelSortField string

// Hotel sort fields.
const (
	HotelSortPrice    HotelSortField = "price"
	HotelSortRating   HotelSortField = "rating"
	HotelSortDistance HotelSortField = "distance"
)

// HotelSearchRequest is a domain-level hotel query. Either CityCode or
// both Latitude and Longitude locate the search.
type HotelSearchRequest struct {
	CityCode     string   `json:"city_code,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusKM     int      `json:"radius_km,omitempty"`
	CheckInDate  string   `json:"check_in_date"`
	CheckOutDate string   `json:"check_out_date"`
	Adults       int      `json:"adults"`
	ChildAges    []int    `json:"child_ages,omitempty"`
	Rooms        int      `json:"rooms,omitempty"`
	StarRatings  []int    `json:"star_ratings,omitempty"`
	ChainCodes   []string `json:"chain_codes,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	MaxResults   int      `json:"max_results,omitempty"`

	Filters   HotelFilters   `json:"filters,omitempty"`
	SortBy    HotelSortField `json:"sort_by,omitempty"`
	SortOrder SortOrder      `json:"sort_order,omitempty"`
}

// HotelFilters are the post-fetch constraints applied to merged hotels.
type HotelFilters struct {
	Price         PriceRange `json:"price,omitempty"`
	MinRating     int        `json:"min_rating,omitempty"`
	Amenities     []string   `json:"amenities,omitempty"`
	MaxDistanceKM float64    `json:"max_distance_km,omitempty"`
}

// Match reports whether the hotel satisfies every filter. A hotel with no
// known distance passes the distance bound.
func (f *HotelFilters) Match(h *HotelResult) bool {
	if !f.Price.Contains(h.Price.Total) {
		return false
	}
	if f.MinRating > 0 && h.Rating < f.MinRating {
		return false
	}
	if f.MaxDistanceKM > 0 && h.DistanceKM != nil && *h.DistanceKM > f.MaxDistanceKM {
		return false
	}
	return h.HasAmenities(f.Amenities)
}

// PriceBreakdown splits an offer total into base fare and taxes.
type PriceBreakdown struct {
	Base     float64 `json:"base"`
	Taxes    float64 `json:"taxes"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// RoomOffer is the bookable rate chosen for a hotel.
type RoomOffer struct {
	OfferID              string     `json:"offer_id"`
	RateCode             string     `json:"rate_code,omitempty"`
	RoomType             string     `json:"room_type,omitempty"`
	RoomCategory         string     `json:"room_category,omitempty"`
	BedType              string     `json:"bed_type,omitempty"`
	Beds                 int        `json:"beds,omitempty"`
	Description          string     `json:"description,omitempty"`
	BoardType            string     `json:"board_type,omitempty"`
	PaymentType          string     `json:"payment_type,omitempty"`
	Refundable           bool       `json:"refundable"`
	CancellationDeadline *time.Time `json:"cancellation_deadline,omitempty"`
}

// HotelResult is a discovered hotel merged with its best offer.
type HotelResult struct {
	HotelID       string         `json:"hotel_id"`
	Name          string         `json:"name"`
	ChainCode     string         `json:"chain_code,omitempty"`
	CityCode      string         `json:"city_code,omitempty"`
	Rating        int            `json:"rating"`
	Location      Location       `json:"location"`
	DistanceKM    *float64       `json:"distance_km,omitempty"`
	Amenities     []string       `json:"amenities"`
	CheckInDate   string         `json:"check_in_date"`
	CheckOutDate  string         `json:"check_out_date"`
	Nights        int            `json:"nights"`
	Offer         RoomOffer      `json:"offer"`
	Price         PriceBreakdown `json:"price"`
	PricePerNight float64        `json:"price_per_night"`
}

// HasAmenities reports whether every wanted amenity is present,
// case-insensitively.
func (h *HotelResult) HasAmenities(wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(h.Amenities))
	for _, a := range h.Amenities {
		have[strings.ToUpper(a)] = struct{}{}
	}
	for _, w := range wanted {
		if _, ok := have[strings.ToUpper(strings.TrimSpace(w))]; !ok {
			return false
		}
	}
	return true
}
