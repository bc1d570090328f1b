package search

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/donaldgifford/travel-search/internal/amadeus"
	domain "github.com/donaldgifford/travel-search/pkg/types"
)

const (
	defaultFlightResults = 10
	maxFlightResults     = 250
	maxSeatedTravelers   = 9
)

// FlightService searches flight offers.
type FlightService struct {
	provider FlightProvider
	opts     options
}

// NewFlightService creates a FlightService backed by provider.
func NewFlightService(provider FlightProvider, opts ...Option) *FlightService {
	return &FlightService{provider: provider, opts: buildOptions(opts)}
}

// Search validates req, fetches offers and applies filters, sort and limit.
func (s *FlightService) Search(
	ctx context.Context,
	req domain.FlightSearchRequest,
) domain.ServiceResponse[[]domain.FlightResult] {
	started := s.opts.nowFunc()
	ctx, span := tracer.Start(ctx, "search.flights")
	defer span.End()

	q, err := s.buildQuery(&req)
	if err != nil {
		return finish[domain.FlightResult](ctx, &s.opts, "flights", started, nil, err)
	}
	key, err := flightSortKey(req.SortBy)
	if err != nil {
		return finish[domain.FlightResult](ctx, &s.opts, "flights", started, nil, err)
	}

	s.opts.logger.Debug("searching flights",
		"origin", q.Origin,
		"destination", q.Destination,
		"departure", q.DepartureDate,
		"adults", q.Adults,
	)

	offers, err := s.provider.SearchFlightOffers(ctx, q)
	if err != nil {
		return finish[domain.FlightResult](ctx, &s.opts, "flights", started, nil, err)
	}

	results := filterSortLimit(offers, req.Filters.Match, key, req.SortOrder, q.Max)
	return finish(ctx, &s.opts, "flights", started, results, nil)
}

func (s *FlightService) buildQuery(req *domain.FlightSearchRequest) (amadeus.FlightOffersQuery, error) {
	origin := strings.ToUpper(strings.TrimSpace(req.Origin))
	destination := strings.ToUpper(strings.TrimSpace(req.Destination))

	var errs []error
	if !isLocationCode(origin) {
		errs = append(errs, invalid("origin %q must be a 3-letter IATA code", req.Origin))
	}
	if !isLocationCode(destination) {
		errs = append(errs, invalid("destination %q must be a 3-letter IATA code", req.Destination))
	}
	if origin != "" && origin == destination {
		errs = append(errs, invalid("origin and destination are both %q", origin))
	}

	if req.DepartureDate == "" {
		errs = append(errs, invalid("departure date is required"))
	} else if depart, err := parseDate("departure date", req.DepartureDate); err != nil {
		errs = append(errs, err)
	} else if req.ReturnDate != "" {
		ret, err := parseDate("return date", req.ReturnDate)
		switch {
		case err != nil:
			errs = append(errs, err)
		case ret.Before(depart):
			errs = append(errs, invalid("return date %s is before departure date %s", req.ReturnDate, req.DepartureDate))
		}
	}

	switch {
	case req.Adults < 1:
		errs = append(errs, invalid("at least one adult is required"))
	case req.Children < 0 || req.Infants < 0:
		errs = append(errs, invalid("traveler counts cannot be negative"))
	case req.Infants > req.Adults:
		errs = append(errs, invalid("infants (%d) cannot exceed adults (%d)", req.Infants, req.Adults))
	case req.Adults+req.Children > maxSeatedTravelers:
		errs = append(errs, invalid("at most %d seated travelers per search", maxSeatedTravelers))
	}

	if !req.CabinClass.Valid() {
		errs = append(errs, invalid("unknown cabin class %q", req.CabinClass))
	}
	if req.MaxResults < 0 {
		errs = append(errs, invalid("max results cannot be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return amadeus.FlightOffersQuery{}, err
	}

	limit := req.MaxResults
	if limit == 0 {
		limit = defaultFlightResults
	}
	limit = min(limit, maxFlightResults)

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = s.opts.defaultCurrency
	}

	q := amadeus.FlightOffersQuery{
		Origin:               origin,
		Destination:          destination,
		DepartureDate:        req.DepartureDate,
		ReturnDate:           req.ReturnDate,
		Adults:               req.Adults,
		Children:             req.Children,
		Infants:              req.Infants,
		TravelClass:          string(req.CabinClass),
		IncludedAirlineCodes: upperAll(req.Filters.PreferredAirlines),
		ExcludedAirlineCodes: upperAll(req.Filters.ExcludedAirlines),
		NonStop:              req.Filters.DirectOnly,
		CurrencyCode:         currency,
		Max:                  limit,
	}
	if req.Filters.Price.Max > 0 {
		q.MaxPrice = int(math.Ceil(req.Filters.Price.Max))
	}
	// The provider rejects requests naming both included and excluded
	// airlines; exclusion is then applied client-side only.
	if len(q.IncludedAirlineCodes) > 0 && len(q.ExcludedAirlineCodes) > 0 {
		q.ExcludedAirlineCodes = nil
	}
	return q, nil
}
