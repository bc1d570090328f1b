package amadeus

import (
	"context"
)

const (
	hotelsByCityPath    = "/v1/reference-data/locations/hotels/by-city"
	hotelsByGeocodePath = "/v1/reference-data/locations/hotels/by-geocode"
	hotelOffersPath     = "/v3/shopping/hotel-offers"
)

// HotelsByCityQuery is the query string of a hotel list search by city.
type HotelsByCityQuery struct {
	CityCode    string   `url:"cityCode"`
	Radius      int      `url:"radius,omitempty"`
	RadiusUnit  string   `url:"radiusUnit,omitempty"`
	ChainCodes  []string `url:"chainCodes,omitempty,comma"`
	Amenities   []string `url:"amenities,omitempty,comma"`
	Ratings     []int    `url:"ratings,omitempty,comma"`
	HotelSource string   `url:"hotelSource,omitempty"`
}

// HotelsByGeocodeQuery is the query string of a hotel list search around
// a coordinate.
type HotelsByGeocodeQuery struct {
	Latitude    float64  `url:"latitude"`
	Longitude   float64  `url:"longitude"`
	Radius      int      `url:"radius,omitempty"`
	RadiusUnit  string   `url:"radiusUnit,omitempty"`
	ChainCodes  []string `url:"chainCodes,omitempty,comma"`
	Amenities   []string `url:"amenities,omitempty,comma"`
	Ratings     []int    `url:"ratings,omitempty,comma"`
	HotelSource string   `url:"hotelSource,omitempty"`
}

// HotelOffersQuery is the query string of a hotel offers search.
type HotelOffersQuery struct {
	HotelIDs     []string `url:"hotelIds,comma"`
	CheckInDate  string   `url:"checkInDate,omitempty"`
	CheckOutDate string   `url:"checkOutDate,omitempty"`
	Adults       int      `url:"adults,omitempty"`
	ChildAges    []int    `url:"childAges,omitempty,comma"`
	RoomQuantity int      `url:"roomQuantity,omitempty"`
	Currency     string   `url:"currency,omitempty"`
	BestRateOnly bool     `url:"bestRateOnly"`
}

// ListHotelsByCity discovers hotels in a city. Records failing validation
// are logged and dropped.
func (c *Client) ListHotelsByCity(ctx context.Context, q HotelsByCityQuery) ([]HotelRecord, error) {
	var resp HotelListResponse
	if err := c.get(ctx, "hotels_by_city", hotelsByCityPath, q, &resp); err != nil {
		return nil, err
	}
	return c.validHotels(resp.Data), nil
}

// ListHotelsByGeocode discovers hotels around a coordinate.
func (c *Client) ListHotelsByGeocode(ctx context.Context, q HotelsByGeocodeQuery) ([]HotelRecord, error) {
	var resp HotelListResponse
	if err := c.get(ctx, "hotels_by_geocode", hotelsByGeocodePath, q, &resp); err != nil {
		return nil, err
	}
	return c.validHotels(resp.Data), nil
}

// SearchHotelOffers fetches offers for a set of hotel IDs. Offers are
// validated during merge, not here.
func (c *Client) SearchHotelOffers(ctx context.Context, q HotelOffersQuery) ([]HotelOffers, error) {
	var resp HotelOffersResponse
	if err := c.get(ctx, "hotel_offers", hotelOffersPath, q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) validHotels(records []HotelRecord) []HotelRecord {
	out := make([]HotelRecord, 0, len(records))
	var rejected []error
	for i := range records {
		if err := records[i].validate(); err != nil {
			rejected = append(rejected, err)
			continue
		}
		out = append(out, records[i])
	}
	c.logRejected("hotel", rejected)
	return out
}
