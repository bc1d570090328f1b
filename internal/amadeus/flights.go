package amadeus

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-querystring/query"

	domain "github.com/donaldgifford/travel-search/pkg/types"
)

const flightOffersPath = "/v2/shopping/flight-offers"

// FlightOffersQuery is the query string of a flight offers search.
type FlightOffersQuery struct {
	Origin               string   `url:"originLocationCode"`
	Destination          string   `url:"destinationLocationCode"`
	DepartureDate        string   `url:"departureDate"`
	ReturnDate           string   `url:"returnDate,omitempty"`
	Adults               int      `url:"adults"`
	Children             int      `url:"children,omitempty"`
	Infants              int      `url:"infants,omitempty"`
	TravelClass          string   `url:"travelClass,omitempty"`
	IncludedAirlineCodes []string `url:"includedAirlineCodes,omitempty,comma"`
	ExcludedAirlineCodes []string `url:"excludedAirlineCodes,omitempty,comma"`
	NonStop              bool     `url:"nonStop,omitempty"`
	CurrencyCode         string   `url:"currencyCode,omitempty"`
	MaxPrice             int      `url:"maxPrice,omitempty"`
	Max                  int      `url:"max,omitempty"`
}

// SearchFlightOffers queries flight offers and converts them into domain
// results. Offers failing validation are logged and dropped.
func (c *Client) SearchFlightOffers(
	ctx context.Context,
	q FlightOffersQuery,
) ([]domain.FlightResult, error) {
	var resp FlightOffersResponse
	if err := c.get(ctx, "flight_offers", flightOffersPath, q, &resp); err != nil {
		return nil, err
	}

	results, rejected := ToFlightResults(&resp)
	c.logRejected("flight_offer", rejected)
	return results, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, q, out any) error {
	values, err := query.Values(q)
	if err != nil {
		return fmt.Errorf("encoding %s query: %w", endpoint, err)
	}

	req := Request{
		Endpoint: endpoint,
		Method:   http.MethodGet,
		Path:     path,
		Query:    values,
	}
	if err := c.doer.Do(ctx, req, out); err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	return nil
}
