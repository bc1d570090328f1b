package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/donaldgifford/travel-search/internal/amadeus"
	"github.com/donaldgifford/travel-search/internal/metrics"
	domain "github.com/donaldgifford/travel-search/pkg/types"
)

const (
	defaultHotelRadiusKM = 20
	defaultHotelResults  = 20
	maxHotelGuests       = 9
	maxHotelRooms        = 9
	maxChildAge          = 17
)

// HotelService searches hotels in two phases: discovery by city or
// coordinates, then pricing of the first discovered hotels.
type HotelService struct {
	provider HotelProvider
	opts     options
}

// NewHotelService creates a HotelService backed by provider.
func NewHotelService(provider HotelProvider, opts ...Option) *HotelService {
	return &HotelService{provider: provider, opts: buildOptions(opts)}
}

// hotelPlan is a validated hotel request ready for the provider.
type hotelPlan struct {
	byGeo  bool
	city   amadeus.HotelsByCityQuery
	geo    amadeus.HotelsByGeocodeQuery
	offers amadeus.HotelOffersQuery
	nights int
	limit  int
}

// Search discovers hotels, prices them, merges each hotel with its best
// offer and applies filters, sort and limit. Zero discovered hotels is an
// empty success.
func (s *HotelService) Search(
	ctx context.Context,
	req domain.HotelSearchRequest,
) domain.ServiceResponse[[]domain.HotelResult] {
	started := s.opts.nowFunc()
	ctx, span := tracer.Start(ctx, "search.hotels")
	defer span.End()

	plan, err := s.plan(&req)
	if err != nil {
		return finish[domain.HotelResult](ctx, &s.opts, "hotels", started, nil, err)
	}
	key, err := hotelSortKey(req.SortBy)
	if err != nil {
		return finish[domain.HotelResult](ctx, &s.opts, "hotels", started, nil, err)
	}

	hotels, err := s.discover(ctx, &plan)
	if err != nil {
		return finish[domain.HotelResult](ctx, &s.opts, "hotels", started, nil, fmt.Errorf("hotel discovery: %w", err))
	}
	if len(hotels) == 0 {
		s.opts.logger.Info("hotel discovery found no hotels", "city", plan.city.CityCode)
		return finish[domain.HotelResult](ctx, &s.opts, "hotels", started, nil, nil)
	}

	hotels = firstUnique(hotels, s.opts.maxHotelIDs)
	plan.offers.HotelIDs = make([]string, len(hotels))
	for i := range hotels {
		plan.offers.HotelIDs[i] = hotels[i].HotelID
	}

	s.opts.logger.Debug("pricing discovered hotels", "hotels", len(hotels))

	offers, err := s.provider.SearchHotelOffers(ctx, plan.offers)
	if err != nil {
		return finish[domain.HotelResult](ctx, &s.opts, "hotels", started, nil, fmt.Errorf("hotel offers: %w", err))
	}

	results, rejected := amadeus.ToHotelResults(hotels, offers, plan.nights)
	for _, r := range rejected {
		metrics.RecordsRejectedTotal.WithLabelValues("hotel_offer").Inc()
		s.opts.logger.Warn("dropping invalid hotel offer", "error", r)
	}

	results = filterSortLimit(results, req.Filters.Match, key, req.SortOrder, plan.limit)
	return finish(ctx, &s.opts, "hotels", started, results, nil)
}

func (s *HotelService) discover(ctx context.Context, plan *hotelPlan) ([]amadeus.HotelRecord, error) {
	if plan.byGeo {
		return s.provider.ListHotelsByGeocode(ctx, plan.geo)
	}
	return s.provider.ListHotelsByCity(ctx, plan.city)
}

func (s *HotelService) plan(req *domain.HotelSearchRequest) (hotelPlan, error) {
	var errs []error

	city := strings.ToUpper(strings.TrimSpace(req.CityCode))
	byGeo := req.Latitude != nil && req.Longitude != nil
	switch {
	case byGeo:
		if *req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180 {
			errs = append(errs, invalid("coordinates (%g, %g) out of range", *req.Latitude, *req.Longitude))
		}
	case req.Latitude != nil || req.Longitude != nil:
		errs = append(errs, invalid("latitude and longitude must be given together"))
	case !isLocationCode(city):
		errs = append(errs, invalid("city code %q must be a 3-letter IATA code", req.CityCode))
	}

	nights := 0
	checkIn, errIn := parseDate("check-in date", req.CheckInDate)
	checkOut, errOut := parseDate("check-out date", req.CheckOutDate)
	switch {
	case errIn != nil || errOut != nil:
		errs = append(errs, errIn, errOut)
	case !checkOut.After(checkIn):
		errs = append(errs, invalid("check-out date %s must be after check-in date %s", req.CheckOutDate, req.CheckInDate))
	default:
		nights = int(checkOut.Sub(checkIn).Hours() / 24)
	}

	if req.Adults < 1 || req.Adults+len(req.ChildAges) > maxHotelGuests {
		errs = append(errs, invalid("adults must be at least 1 and total guests at most %d", maxHotelGuests))
	}
	for _, age := range req.ChildAges {
		if age < 0 || age > maxChildAge {
			errs = append(errs, invalid("child age %d out of range 0-%d", age, maxChildAge))
		}
	}
	if req.Rooms < 0 || req.Rooms > maxHotelRooms {
		errs = append(errs, invalid("rooms must be between 1 and %d", maxHotelRooms))
	}
	for _, r := range req.StarRatings {
		if r < 1 || r > 5 {
			errs = append(errs, invalid("star rating %d out of range 1-5", r))
		}
	}
	if req.RadiusKM < 0 || req.MaxResults < 0 {
		errs = append(errs, invalid("radius and max results cannot be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return hotelPlan{}, err
	}

	radius := req.RadiusKM
	if radius == 0 {
		radius = defaultHotelRadiusKM
	}
	limit := req.MaxResults
	if limit == 0 {
		limit = defaultHotelResults
	}
	rooms := max(req.Rooms, 1)
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = s.opts.defaultCurrency
	}
	amenities := upperAll(req.Filters.Amenities)
	chains := upperAll(req.ChainCodes)

	plan := hotelPlan{
		byGeo:  byGeo,
		nights: nights,
		limit:  limit,
		offers: amadeus.HotelOffersQuery{
			CheckInDate:  req.CheckInDate,
			CheckOutDate: req.CheckOutDate,
			Adults:       req.Adults,
			ChildAges:    req.ChildAges,
			RoomQuantity: rooms,
			Currency:     currency,
			BestRateOnly: true,
		},
	}
	if byGeo {
		plan.geo = amadeus.HotelsByGeocodeQuery{
			Latitude:   *req.Latitude,
			Longitude:  *req.Longitude,
			Radius:     radius,
			RadiusUnit: "KM",
			ChainCodes: chains,
			Amenities:  amenities,
			Ratings:    req.StarRatings,
		}
	} else {
		plan.city = amadeus.HotelsByCityQuery{
			CityCode:   city,
			Radius:     radius,
			RadiusUnit: "KM",
			ChainCodes: chains,
			Amenities:  amenities,
			Ratings:    req.StarRatings,
		}
	}
	return plan, nil
}

// firstUnique returns up to n hotels in discovery order, skipping repeated
// IDs.
func firstUnique(hotels []amadeus.HotelRecord, n int) []amadeus.HotelRecord {
	seen := make(map[string]struct{}, n)
	out := make([]amadeus.HotelRecord, 0, min(n, len(hotels)))
	for i := range hotels {
		if len(out) == n {
			break
		}
		if _, dup := seen[hotels[i].HotelID]; dup {
			continue
		}
		seen[hotels[i].HotelID] = struct{}{}
		out = append(out, hotels[i])
	}
	return out
}
