// Package search implements the flight, hotel and activity search
// services. Each service maps a domain request onto provider queries,
// applies the client-side filters and sort the provider does not support,
// and wraps the outcome in a domain.ServiceResponse. Services never return
// errors; failures are reported through the response.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/travel-search/internal/amadeus"
	"github.com/donaldgifford/travel-search/internal/metrics"
	"github.com/donaldgifford/travel-search/pkg/logger"
	domain "github.com/donaldgifford/travel-search/pkg/types"
)

var tracer = otel.Tracer("github.com/donaldgifford/travel-search/internal/search")

// ErrInvalidRequest marks a search request rejected before any provider
// call.
var ErrInvalidRequest = errors.New("invalid search request")

// FlightProvider fetches flight offers.
type FlightProvider interface {
	SearchFlightOffers(ctx context.Context, q amadeus.FlightOffersQuery) ([]domain.FlightResult, error)
}

// HotelProvider discovers hotels and prices their offers.
type HotelProvider interface {
	ListHotelsByCity(ctx context.Context, q amadeus.HotelsByCityQuery) ([]amadeus.HotelRecord, error)
	ListHotelsByGeocode(ctx context.Context, q amadeus.HotelsByGeocodeQuery) ([]amadeus.HotelRecord, error)
	SearchHotelOffers(ctx context.Context, q amadeus.HotelOffersQuery) ([]amadeus.HotelOffers, error)
}

// ActivityProvider fetches points of interest and bookable tours.
type ActivityProvider interface {
	ListPointsOfInterest(ctx context.Context, q amadeus.POIQuery) ([]domain.ActivityResult, error)
	ListActivities(ctx context.Context, q amadeus.ActivitiesQuery) ([]domain.ActivityResult, error)
}

// FlightSearcher runs flight searches.
type FlightSearcher interface {
	Search(ctx context.Context, req domain.FlightSearchRequest) domain.ServiceResponse[[]domain.FlightResult]
}

// HotelSearcher runs hotel searches.
type HotelSearcher interface {
	Search(ctx context.Context, req domain.HotelSearchRequest) domain.ServiceResponse[[]domain.HotelResult]
}

// ActivitySearcher runs activity searches.
type ActivitySearcher interface {
	Search(ctx context.Context, req domain.ActivitySearchRequest) domain.ServiceResponse[[]domain.ActivityResult]
}

const (
	defaultCurrency    = "USD"
	maxHotelIDsCeiling = 20
)

type options struct {
	logger          *slog.Logger
	nowFunc         func() time.Time
	defaultCurrency string
	maxHotelIDs     int
}

func defaultOptions() options {
	return options{
		logger:          logger.Discard(),
		nowFunc:         time.Now,
		defaultCurrency: defaultCurrency,
		maxHotelIDs:     maxHotelIDsCeiling,
	}
}

// Option configures a search service.
type Option func(*options)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNowFunc overrides the clock used for elapsed time.
func WithNowFunc(fn func() time.Time) Option {
	return func(o *options) {
		o.nowFunc = fn
	}
}

// WithDefaultCurrency sets the currency used when a request names none.
func WithDefaultCurrency(code string) Option {
	return func(o *options) {
		if code != "" {
			o.defaultCurrency = code
		}
	}
}

// WithMaxHotelIDs bounds how many discovered hotels are priced. Values
// outside 1..20 are clamped.
func WithMaxHotelIDs(n int) Option {
	return func(o *options) {
		o.maxHotelIDs = min(max(n, 1), maxHotelIDsCeiling)
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// finish records metrics and logs for a completed search and builds its
// response.
func finish[T any](
	ctx context.Context,
	o *options,
	service string,
	started time.Time,
	data []T,
	err error,
) domain.ServiceResponse[[]T] {
	elapsed := o.nowFunc().Sub(started)
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("search.service", service))
	metrics.SearchDuration.WithLabelValues(service).Observe(elapsed.Seconds())

	if data == nil {
		data = []T{}
	}

	if err != nil {
		metrics.SearchFailuresTotal.WithLabelValues(service).Inc()
		level := slog.LevelError
		if errors.Is(err, ErrInvalidRequest) {
			level = slog.LevelWarn
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Log(ctx, level, "search failed",
			"service", service,
			"error", err,
			"elapsed", elapsed,
		)
		return domain.ServiceResponse[[]T]{
			Success:   false,
			Data:      data,
			Error:     err.Error(),
			ElapsedMS: elapsed.Milliseconds(),
		}
	}

	metrics.SearchResultsTotal.WithLabelValues(service).Add(float64(len(data)))
	span.SetAttributes(attribute.Int("search.results", len(data)))
	o.logger.Info("search completed",
		"service", service,
		"results", len(data),
		"elapsed", elapsed,
	)
	return domain.ServiceResponse[[]T]{
		Success:   true,
		Data:      data,
		ElapsedMS: elapsed.Milliseconds(),
	}
}
