package search_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/travel-search/internal/amadeus"
	"github.com/donaldgifford/travel-search/internal/search"
	"github.com/donaldgifford/travel-search/internal/search/mocks"
	domain "github.com/donaldgifford/travel-search/pkg/types"
)

var departBase = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func flight(id string, price float64, stops, minutes int, carriers ...string) domain.FlightResult {
	segs := make([]domain.Segment, 0, len(carriers))
	for _, c := range carriers {
		segs = append(segs, domain.Segment{CarrierCode: c})
	}
	return domain.FlightResult{
		ID:              id,
		Price:           price,
		DepartureTime:   departBase,
		DurationMinutes: minutes,
		Stops:           stops,
		Outbound: domain.Itinerary{
			Stops:           stops,
			DurationMinutes: minutes,
			Segments:        segs,
		},
	}
}

func flightRequest() domain.FlightSearchRequest {
	return domain.FlightSearchRequest{
		Origin:        "NYC",
		Destination:   "LAX",
		DepartureDate: "2026-06-01",
		Adults:        1,
		CabinClass:    domain.CabinEconomy,
	}
}

func flightIDs(rs []domain.FlightResult) []string {
	ids := make([]string, len(rs))
	for i := range rs {
		ids[i] = rs[i].ID
	}
	return ids
}

func TestFlightService_SortByPrice(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockFlightProvider(t)
	provider.EXPECT().
		SearchFlightOffers(mock.Anything, mock.MatchedBy(func(q amadeus.FlightOffersQuery) bool {
			return q.Origin == "NYC" && q.Destination == "LAX" &&
				q.DepartureDate == "2026-06-01" && q.Adults == 1 &&
				q.TravelClass == "ECONOMY" && q.CurrencyCode == "USD" && q.Max == 10
		})).
		Return([]domain.FlightResult{
			flight("a", 400, 0, 330, "AA"),
			flight("b", 250, 1, 420, "DL"),
			flight("c", 300, 0, 340, "UA"),
		}, nil).
		Once()

	svc := search.NewFlightService(provider)
	req := flightRequest()
	req.SortBy = domain.FlightSortPrice

	resp := svc.Search(context.Background(), req)
	require.True(t, resp.Success, resp.Error)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, []string{"b", "c", "a"}, flightIDs(resp.Data))
	for i := 1; i < len(resp.Data); i++ {
		assert.LessOrEqual(t, resp.Data[i-1].Price, resp.Data[i].Price)
	}
	assert.GreaterOrEqual(t, resp.ElapsedMS, int64(0))
}

func TestFlightService_FiltersAndSort(t *testing.T) {
	t.Parallel()

	offers := func() []domain.FlightResult {
		return []domain.FlightResult{
			flight("direct-cheap", 200, 0, 300, "AA"),
			flight("one-stop", 150, 1, 480, "DL", "DL"),
			flight("two-stop", 120, 2, 600, "UA", "AC", "UA"),
			flight("direct-pricey", 650, 0, 290, "B6"),
		}
	}
	one := 1

	tests := []struct {
		name    string
		mutate  func(*domain.FlightSearchRequest)
		wantIDs []string
	}{
		{
			name:    "no filters keeps provider order",
			mutate:  func(*domain.FlightSearchRequest) {},
			wantIDs: []string{"direct-cheap", "one-stop", "two-stop", "direct-pricey"},
		},
		{
			name: "direct only",
			mutate: func(r *domain.FlightSearchRequest) {
				r.Filters.DirectOnly = true
			},
			wantIDs: []string{"direct-cheap", "direct-pricey"},
		},
		{
			name: "max stops",
			mutate: func(r *domain.FlightSearchRequest) {
				r.Filters.MaxStops = &one
			},
			wantIDs: []string{"direct-cheap", "one-stop", "direct-pricey"},
		},
		{
			name: "price range",
			mutate: func(r *domain.FlightSearchRequest) {
				r.Filters.Price = domain.PriceRange{Min: 140, Max: 600}
			},
			wantIDs: []string{"direct-cheap", "one-stop"},
		},
		{
			name: "preferred airline matches any segment",
			mutate: func(r *domain.FlightSearchRequest) {
				r.Filters.PreferredAirlines = []string{"ac"}
			},
			wantIDs: []string{"two-stop"},
		},
		{
			name: "excluded airline",
			mutate: func(r *domain.FlightSearchRequest) {
				r.Filters.ExcludedAirlines = []string{"UA", "DL"}
			},
			wantIDs: []string{"direct-cheap", "direct-pricey"},
		},
		{
			name: "duration descending",
			mutate: func(r *domain.FlightSearchRequest) {
				r.SortBy = domain.FlightSortDuration
				r.SortOrder = domain.SortDesc
			},
			wantIDs: []string{"two-stop", "one-stop", "direct-cheap", "direct-pricey"},
		},
		{
			name: "price descending truncated",
			mutate: func(r *domain.FlightSearchRequest) {
				r.SortBy = domain.FlightSortPrice
				r.SortOrder = domain.SortDesc
				r.MaxResults = 2
			},
			wantIDs: []string{"direct-pricey", "direct-cheap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewMockFlightProvider(t)
			provider.EXPECT().SearchFlightOffers(mock.Anything, mock.Anything).Return(offers(), nil).Once()

			req := flightRequest()
			tt.mutate(&req)

			resp := search.NewFlightService(provider).Search(context.Background(), req)
			require.True(t, resp.Success, resp.Error)
			assert.Equal(t, tt.wantIDs, flightIDs(resp.Data))
		})
	}
}

func TestFlightService_SortByDepartureIsStable(t *testing.T) {
	t.Parallel()

	early := flight("early", 300, 0, 300, "AA")
	early.DepartureTime = departBase.Add(-2 * time.Hour)
	tieA := flight("tie-a", 200, 0, 300, "AA")
	tieB := flight("tie-b", 100, 0, 300, "AA")

	provider := mocks.NewMockFlightProvider(t)
	provider.EXPECT().SearchFlightOffers(mock.Anything, mock.Anything).
		Return([]domain.FlightResult{tieA, early, tieB}, nil).Once()

	req := flightRequest()
	req.SortBy = domain.FlightSortDeparture

	resp := search.NewFlightService(provider).Search(context.Background(), req)
	require.True(t, resp.Success)
	assert.Equal(t, []string{"early", "tie-a", "tie-b"}, flightIDs(resp.Data))
}

func TestFlightService_QueryMapping(t *testing.T) {
	t.Parallel()

	var got amadeus.FlightOffersQuery
	provider := mocks.NewMockFlightProvider(t)
	provider.EXPECT().SearchFlightOffers(mock.Anything, mock.Anything).
		Run(func(_ context.Context, q amadeus.FlightOffersQuery) { got = q }).
		Return(nil, nil).Once()

	req := domain.FlightSearchRequest{
		Origin:        " jfk ",
		Destination:   "cdg",
		DepartureDate: "2026-07-10",
		ReturnDate:    "2026-07-20",
		Adults:        2,
		Children:      1,
		Infants:       1,
		CabinClass:    domain.CabinBusiness,
		MaxResults:    500,
		Filters: domain.FlightFilters{
			Price:             domain.PriceRange{Max: 999.5},
			DirectOnly:        true,
			PreferredAirlines: []string{"af"},
			ExcludedAirlines:  []string{"dl"},
		},
	}

	svc := search.NewFlightService(provider, search.WithDefaultCurrency("EUR"))
	resp := svc.Search(context.Background(), req)
	require.True(t, resp.Success)
	assert.Empty(t, resp.Data)
	assert.NotNil(t, resp.Data)

	assert.Equal(t, amadeus.FlightOffersQuery{
		Origin:               "JFK",
		Destination:          "CDG",
		DepartureDate:        "2026-07-10",
		ReturnDate:           "2026-07-20",
		Adults:               2,
		Children:             1,
		Infants:              1,
		TravelClass:          "BUSINESS",
		IncludedAirlineCodes: []string{"AF"},
		NonStop:              true,
		CurrencyCode:         "EUR",
		MaxPrice:             1000,
		Max:                  250,
	}, got)
}

func TestFlightService_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*domain.FlightSearchRequest)
		wantErr string
	}{
		{name: "bad origin", mutate: func(r *domain.FlightSearchRequest) { r.Origin = "NY" }, wantErr: "origin"},
		{name: "numeric destination", mutate: func(r *domain.FlightSearchRequest) { r.Destination = "L4X" }, wantErr: "destination"},
		{name: "same airports", mutate: func(r *domain.FlightSearchRequest) { r.Destination = "NYC" }, wantErr: "both"},
		{name: "missing departure", mutate: func(r *domain.FlightSearchRequest) { r.DepartureDate = "" }, wantErr: "departure date is required"},
		{name: "bad date", mutate: func(r *domain.FlightSearchRequest) { r.DepartureDate = "06/01/2026" }, wantErr: "YYYY-MM-DD"},
		{name: "return before departure", mutate: func(r *domain.FlightSearchRequest) { r.ReturnDate = "2026-05-30" }, wantErr: "before departure"},
		{name: "no adults", mutate: func(r *domain.FlightSearchRequest) { r.Adults = 0 }, wantErr: "adult"},
		{name: "infants exceed adults", mutate: func(r *domain.FlightSearchRequest) { r.Infants = 2 }, wantErr: "infants"},
		{name: "too many travelers", mutate: func(r *domain.FlightSearchRequest) { r.Adults, r.Children = 6, 4 }, wantErr: "seated"},
		{name: "unknown cabin", mutate: func(r *domain.FlightSearchRequest) { r.CabinClass = "STEERAGE" }, wantErr: "cabin"},
		{name: "unknown sort", mutate: func(r *domain.FlightSearchRequest) { r.SortBy = "legroom" }, wantErr: "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewMockFlightProvider(t)
			req := flightRequest()
			tt.mutate(&req)

			resp := search.NewFlightService(provider).Search(context.Background(), req)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.wantErr)
			assert.Contains(t, resp.Error, search.ErrInvalidRequest.Error())
			assert.Empty(t, resp.Data)
			provider.AssertNotCalled(t, "SearchFlightOffers", mock.Anything, mock.Anything)
		})
	}
}

func TestFlightService_ProviderError(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockFlightProvider(t)
	provider.EXPECT().SearchFlightOffers(mock.Anything, mock.Anything).
		Return(nil, &amadeus.ExhaustedRetriesError{
			Attempts: 3,
			Last:     &amadeus.RateLimitError{RetryAfter: time.Second},
		}).Once()

	resp := search.NewFlightService(provider).Search(context.Background(), flightRequest())
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "3 attempts")
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestFlightService_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := mocks.NewMockFlightProvider(t)
	provider.EXPECT().SearchFlightOffers(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ amadeus.FlightOffersQuery) ([]domain.FlightResult, error) {
			return nil, ctx.Err()
		}).Once()

	resp := search.NewFlightService(provider).Search(ctx, flightRequest())
	assert.False(t, resp.Success)
	assert.Equal(t, context.Canceled.Error(), resp.Error)
	assert.True(t, errors.Is(ctx.Err(), context.Canceled))
}
