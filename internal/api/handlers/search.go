package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/travel-search/internal/search"
	domain "github.com/donaldgifford/travel-search/pkg/types"
)

const defaultSearchTimeout = 30 * time.Second

// SearchHandler serves the flight, hotel and activity search endpoints.
// A search that fails still answers 200; the envelope's success flag
// carries the outcome.
type SearchHandler struct {
	flights    search.FlightSearcher
	hotels     search.HotelSearcher
	activities search.ActivitySearcher
	timeout    time.Duration
}

// SearchHandlerOption configures a SearchHandler.
type SearchHandlerOption func(*SearchHandler)

// WithSearchTimeout bounds each search request. Non-positive values keep
// the default.
func WithSearchTimeout(d time.Duration) SearchHandlerOption {
	return func(h *SearchHandler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(
	flights search.FlightSearcher,
	hotels search.HotelSearcher,
	activities search.ActivitySearcher,
	opts ...SearchHandlerOption,
) *SearchHandler {
	h := &SearchHandler{
		flights:    flights,
		hotels:     hotels,
		activities: activities,
		timeout:    defaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// FlightSearchInput is the request body for the flight search endpoint.
type FlightSearchInput struct {
	Body domain.FlightSearchRequest
}

// FlightSearchOutput is the response body for the flight search endpoint.
type FlightSearchOutput struct {
	Body domain.ServiceResponse[[]domain.FlightResult]
}

// HotelSearchInput is the request body for the hotel search endpoint.
type HotelSearchInput struct {
	Body domain.HotelSearchRequest
}

// HotelSearchOutput is the response body for the hotel search endpoint.
type HotelSearchOutput struct {
	Body domain.ServiceResponse[[]domain.HotelResult]
}

// ActivitySearchInput is the request body for the activity search endpoint.
type ActivitySearchInput struct {
	Body domain.ActivitySearchRequest
}

// ActivitySearchOutput is the response body for the activity search endpoint.
type ActivitySearchOutput struct {
	Body domain.ServiceResponse[[]domain.ActivityResult]
}

// SearchFlights runs a flight search.
func (h *SearchHandler) SearchFlights(ctx context.Context, input *FlightSearchInput) (*FlightSearchOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	return &FlightSearchOutput{Body: h.flights.Search(ctx, input.Body)}, nil
}

// SearchHotels runs a hotel search.
func (h *SearchHandler) SearchHotels(ctx context.Context, input *HotelSearchInput) (*HotelSearchOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	return &HotelSearchOutput{Body: h.hotels.Search(ctx, input.Body)}, nil
}

// SearchActivities runs an activity search.
func (h *SearchHandler) SearchActivities(
	ctx context.Context,
	input *ActivitySearchInput,
) (*ActivitySearchOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	return &ActivitySearchOutput{Body: h.activities.Search(ctx, input.Body)}, nil
}

// RegisterSearchRoutes registers the search endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-flights",
		Method:      http.MethodPost,
		Path:        "/api/v1/flights/search",
		Summary:     "Search flight offers",
		Description: "Searches flight offers, applies client-side filters and returns them in the requested order.",
		Tags:        []string{"search"},
	}, h.SearchFlights)

	huma.Register(api, huma.Operation{
		OperationID: "search-hotels",
		Method:      http.MethodPost,
		Path:        "/api/v1/hotels/search",
		Summary:     "Search hotels",
		Description: "Discovers hotels by city code or coordinates, prices their offers and returns the best offer per hotel.",
		Tags:        []string{"search"},
	}, h.SearchHotels)

	huma.Register(api, huma.Operation{
		OperationID: "search-activities",
		Method:      http.MethodPost,
		Path:        "/api/v1/activities/search",
		Summary:     "Search activities",
		Description: "Merges points of interest and bookable tours around a destination. One failing source yields a partial result.",
		Tags:        []string{"search"},
	}, h.SearchActivities)
}
