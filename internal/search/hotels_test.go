package search_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/travel-search/internal/amadeus"
	"github.com/donaldgifford/travel-search/internal/search"
	"github.com/donaldgifford/travel-search/internal/search/mocks"
	domain "github.com/donaldgifford/travel-search/pkg/types"
)

func hotelRecord(id string, rating float64, km float64, amenities ...string) amadeus.HotelRecord {
	return amadeus.HotelRecord{
		HotelID:   id,
		Name:      "HOTEL " + id,
		Rating:    amadeus.FlexFloat{Value: rating, Valid: rating > 0},
		Amenities: amenities,
		Distance:  &amadeus.Distance{Value: km, Unit: "KM"},
	}
}

func hotelOffers(id string, totals ...string) amadeus.HotelOffers {
	var ho amadeus.HotelOffers
	ho.Available = true
	ho.Hotel.HotelID = id
	for i, total := range totals {
		var o amadeus.HotelOffer
		o.ID = fmt.Sprintf("%s-O%d", id, i)
		o.Price.Currency = "EUR"
		o.Price.Total = total
		ho.Offers = append(ho.Offers, o)
	}
	return ho
}

func hotelRequest() domain.HotelSearchRequest {
	return domain.HotelSearchRequest{
		CityCode:     "PAR",
		CheckInDate:  "2026-06-01",
		CheckOutDate: "2026-06-04",
		Adults:       2,
	}
}

func hotelIDs(rs []domain.HotelResult) []string {
	ids := make([]string, len(rs))
	for i := range rs {
		ids[i] = rs[i].HotelID
	}
	return ids
}

func TestHotelService_TwoPhaseSearch(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockHotelProvider(t)
	provider.EXPECT().
		ListHotelsByCity(mock.Anything, amadeus.HotelsByCityQuery{
			CityCode:   "PAR",
			Radius:     20,
			RadiusUnit: "KM",
			Amenities:  []string{"POOL"},
		}).
		Return([]amadeus.HotelRecord{
			hotelRecord("H1", 4, 1.5, "WIFI"),
			hotelRecord("H2", 5, 0.4, "POOL", "SPA"),
			hotelRecord("H3", 3, 3.0),
		}, nil).
		Once()
	provider.EXPECT().
		SearchHotelOffers(mock.Anything, amadeus.HotelOffersQuery{
			HotelIDs:     []string{"H1", "H2", "H3"},
			CheckInDate:  "2026-06-01",
			CheckOutDate: "2026-06-04",
			Adults:       2,
			RoomQuantity: 1,
			Currency:     "USD",
			BestRateOnly: true,
		}).
		Return([]amadeus.HotelOffers{
			hotelOffers("H1", "450.00", "300.00"),
			hotelOffers("H2", "600.00"),
		}, nil).
		Once()

	req := hotelRequest()
	req.Filters.Amenities = []string{"pool"}
	req.SortBy = domain.HotelSortPrice

	resp := search.NewHotelService(provider).Search(context.Background(), req)
	require.True(t, resp.Success, resp.Error)

	// H3 has no offers and H1 does not list POOL.
	require.Equal(t, []string{"H2"}, hotelIDs(resp.Data))

	h2 := resp.Data[0]
	assert.Equal(t, []string{"POOL", "SPA"}, h2.Amenities)
	assert.Equal(t, "H2-O0", h2.Offer.OfferID)
	assert.InDelta(t, 600.0, h2.Price.Total, 0.001)
	assert.Equal(t, 3, h2.Nights)
	assert.InDelta(t, 200.0, h2.PricePerNight, 0.001)
}

func TestHotelService_AmenitiesFromProviderOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		amenities []string
		wantIDs   []string
		wantH1    []string
	}{
		{
			name:      "no amenity filter keeps listed amenities",
			amenities: nil,
			wantIDs:   []string{"NOPOOL", "WITHPOOL"},
			wantH1:    []string{"WIFI"},
		},
		{
			name:      "unlisted amenity is not assumed",
			amenities: []string{"POOL"},
			wantIDs:   []string{"WITHPOOL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewMockHotelProvider(t)
			provider.EXPECT().
				ListHotelsByCity(mock.Anything, mock.Anything).
				Return([]amadeus.HotelRecord{
					hotelRecord("NOPOOL", 3, 1.0, "WIFI"),
					hotelRecord("WITHPOOL", 4, 2.0, "WIFI", "POOL"),
				}, nil).
				Once()
			provider.EXPECT().
				SearchHotelOffers(mock.Anything, mock.Anything).
				Return([]amadeus.HotelOffers{
					hotelOffers("NOPOOL", "100.00"),
					hotelOffers("WITHPOOL", "200.00"),
				}, nil).
				Once()

			req := hotelRequest()
			req.Filters.Amenities = tt.amenities
			req.SortBy = domain.HotelSortPrice

			resp := search.NewHotelService(provider).Search(context.Background(), req)
			require.True(t, resp.Success, resp.Error)
			assert.Equal(t, tt.wantIDs, hotelIDs(resp.Data))
			if tt.wantH1 != nil {
				assert.Equal(t, tt.wantH1, resp.Data[0].Amenities)
			}
		})
	}
}

func TestHotelService_Filters(t *testing.T) {
	t.Parallel()

	discovered := func() []amadeus.HotelRecord {
		return []amadeus.HotelRecord{
			hotelRecord("CHEAP", 2, 6.0, "WIFI"),
			hotelRecord("MID", 4, 2.0, "WIFI", "POOL"),
			hotelRecord("LUX", 5, 0.5, "WIFI", "POOL", "SPA"),
		}
	}
	offers := func() []amadeus.HotelOffers {
		return []amadeus.HotelOffers{
			hotelOffers("CHEAP", "90.00"),
			hotelOffers("MID", "240.00"),
			hotelOffers("LUX", "900.00"),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*domain.HotelSearchRequest)
		wantIDs []string
	}{
		{
			name:    "no filters",
			mutate:  func(*domain.HotelSearchRequest) {},
			wantIDs: []string{"CHEAP", "MID", "LUX"},
		},
		{
			name: "price range on total",
			mutate: func(r *domain.HotelSearchRequest) {
				r.Filters.Price = domain.PriceRange{Min: 100, Max: 500}
			},
			wantIDs: []string{"MID"},
		},
		{
			name: "min rating",
			mutate: func(r *domain.HotelSearchRequest) {
				r.Filters.MinRating = 4
			},
			wantIDs: []string{"MID", "LUX"},
		},
		{
			name: "max distance",
			mutate: func(r *domain.HotelSearchRequest) {
				r.Filters.MaxDistanceKM = 3
			},
			wantIDs: []string{"MID", "LUX"},
		},
		{
			name: "rating descending",
			mutate: func(r *domain.HotelSearchRequest) {
				r.SortBy = domain.HotelSortRating
				r.SortOrder = domain.SortDesc
			},
			wantIDs: []string{"LUX", "MID", "CHEAP"},
		},
		{
			name: "distance ascending truncated",
			mutate: func(r *domain.HotelSearchRequest) {
				r.SortBy = domain.HotelSortDistance
				r.MaxResults = 2
			},
			wantIDs: []string{"LUX", "MID"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewMockHotelProvider(t)
			provider.EXPECT().ListHotelsByCity(mock.Anything, mock.Anything).Return(discovered(), nil).Once()
			provider.EXPECT().SearchHotelOffers(mock.Anything, mock.Anything).Return(offers(), nil).Once()

			req := hotelRequest()
			tt.mutate(&req)

			resp := search.NewHotelService(provider).Search(context.Background(), req)
			require.True(t, resp.Success, resp.Error)
			assert.Equal(t, tt.wantIDs, hotelIDs(resp.Data))
		})
	}
}

func TestHotelService_CapsHotelIDs(t *testing.T) {
	t.Parallel()

	var discovered []amadeus.HotelRecord
	for i := range 30 {
		discovered = append(discovered, hotelRecord(fmt.Sprintf("H%02d", i), 3, 1))
	}
	// A repeated ID is skipped, not counted.
	discovered = append([]amadeus.HotelRecord{hotelRecord("H00", 3, 1)}, discovered...)

	tests := []struct {
		name string
		opts []search.Option
		want int
	}{
		{name: "default twenty", want: 20},
		{name: "configured lower", opts: []search.Option{search.WithMaxHotelIDs(5)}, want: 5},
		{name: "clamped to twenty", opts: []search.Option{search.WithMaxHotelIDs(50)}, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewMockHotelProvider(t)
			provider.EXPECT().ListHotelsByCity(mock.Anything, mock.Anything).Return(discovered, nil).Once()
			provider.EXPECT().
				SearchHotelOffers(mock.Anything, mock.MatchedBy(func(q amadeus.HotelOffersQuery) bool {
					return len(q.HotelIDs) == tt.want && q.HotelIDs[0] == "H00" && q.HotelIDs[1] == "H01"
				})).
				Return(nil, nil).Once()

			resp := search.NewHotelService(provider, tt.opts...).Search(context.Background(), hotelRequest())
			require.True(t, resp.Success, resp.Error)
			assert.Empty(t, resp.Data)
		})
	}
}

func TestHotelService_ZeroHotelsShortCircuits(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockHotelProvider(t)
	provider.EXPECT().ListHotelsByCity(mock.Anything, mock.Anything).Return(nil, nil).Once()

	resp := search.NewHotelService(provider).Search(context.Background(), hotelRequest())
	require.True(t, resp.Success)
	assert.Empty(t, resp.Data)
	assert.NotNil(t, resp.Data)
	provider.AssertNotCalled(t, "SearchHotelOffers", mock.Anything, mock.Anything)
}

func TestHotelService_ByGeocode(t *testing.T) {
	t.Parallel()

	lat, lon := 48.8566, 2.3522
	provider := mocks.NewMockHotelProvider(t)
	provider.EXPECT().
		ListHotelsByGeocode(mock.Anything, amadeus.HotelsByGeocodeQuery{
			Latitude:   lat,
			Longitude:  lon,
			Radius:     5,
			RadiusUnit: "KM",
			ChainCodes: []string{"HI"},
			Ratings:    []int{4, 5},
		}).
		Return([]amadeus.HotelRecord{hotelRecord("G1", 4, 0.2)}, nil).Once()
	provider.EXPECT().
		SearchHotelOffers(mock.Anything, mock.MatchedBy(func(q amadeus.HotelOffersQuery) bool {
			return q.RoomQuantity == 2 && q.Currency == "GBP" && assert.ObjectsAreEqual([]int{7}, q.ChildAges)
		})).
		Return([]amadeus.HotelOffers{hotelOffers("G1", "120.00")}, nil).Once()

	req := hotelRequest()
	req.CityCode = ""
	req.Latitude, req.Longitude = &lat, &lon
	req.RadiusKM = 5
	req.ChainCodes = []string{"hi"}
	req.StarRatings = []int{4, 5}
	req.ChildAges = []int{7}
	req.Rooms = 2
	req.Currency = "gbp"

	resp := search.NewHotelService(provider).Search(context.Background(), req)
	require.True(t, resp.Success, resp.Error)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "G1", resp.Data[0].HotelID)
}

func TestHotelService_PhaseErrors(t *testing.T) {
	t.Parallel()

	boom := &amadeus.ProviderError{Status: 400, Code: "477", Detail: "INVALID FORMAT"}

	t.Run("discovery", func(t *testing.T) {
		t.Parallel()

		provider := mocks.NewMockHotelProvider(t)
		provider.EXPECT().ListHotelsByCity(mock.Anything, mock.Anything).Return(nil, boom).Once()

		resp := search.NewHotelService(provider).Search(context.Background(), hotelRequest())
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "hotel discovery")
		assert.Contains(t, resp.Error, "INVALID FORMAT")
	})

	t.Run("offers", func(t *testing.T) {
		t.Parallel()

		provider := mocks.NewMockHotelProvider(t)
		provider.EXPECT().ListHotelsByCity(mock.Anything, mock.Anything).
			Return([]amadeus.HotelRecord{hotelRecord("H1", 4, 1)}, nil).Once()
		provider.EXPECT().SearchHotelOffers(mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset")).Once()

		resp := search.NewHotelService(provider).Search(context.Background(), hotelRequest())
		assert.False(t, resp.Success)
		assert.Equal(t, "hotel offers: connection reset", resp.Error)
		assert.Empty(t, resp.Data)
	})
}

func TestHotelService_Validation(t *testing.T) {
	t.Parallel()

	lat := 10.0

	tests := []struct {
		name    string
		mutate  func(*domain.HotelSearchRequest)
		wantErr string
	}{
		{name: "missing city", mutate: func(r *domain.HotelSearchRequest) { r.CityCode = "" }, wantErr: "city code"},
		{name: "half coordinates", mutate: func(r *domain.HotelSearchRequest) { r.Latitude = &lat }, wantErr: "together"},
		{name: "bad check-in", mutate: func(r *domain.HotelSearchRequest) { r.CheckInDate = "tomorrow" }, wantErr: "check-in"},
		{name: "check-out not after check-in", mutate: func(r *domain.HotelSearchRequest) { r.CheckOutDate = r.CheckInDate }, wantErr: "must be after"},
		{name: "no adults", mutate: func(r *domain.HotelSearchRequest) { r.Adults = 0 }, wantErr: "adults"},
		{name: "child too old", mutate: func(r *domain.HotelSearchRequest) { r.ChildAges = []int{18} }, wantErr: "child age"},
		{name: "bad star rating", mutate: func(r *domain.HotelSearchRequest) { r.StarRatings = []int{6} }, wantErr: "star rating"},
		{name: "unknown sort", mutate: func(r *domain.HotelSearchRequest) { r.SortBy = "views" }, wantErr: "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewMockHotelProvider(t)
			req := hotelRequest()
			tt.mutate(&req)

			resp := search.NewHotelService(provider).Search(context.Background(), req)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.wantErr)
		})
	}
}
