package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/donaldgifford/travel-search/internal/amadeus"
	"github.com/donaldgifford/travel-search/internal/geo"
	"github.com/donaldgifford/travel-search/internal/metrics"
	domain "github.com/donaldgifford/travel-search/pkg/types"
)

const (
	defaultActivityRadiusKM = 5
	maxActivityRadiusKM     = 20
	defaultActivityResults  = 20
)

// Activity search branches.
const (
	branchPOIs  = "points_of_interest"
	branchTours = "tours"
)

// ActivityService searches points of interest and bookable tours around a
// destination and merges both into one list.
type ActivityService struct {
	provider ActivityProvider
	lookup   func(string) (geo.Coordinates, error)
	opts     options
}

// NewActivityService creates an ActivityService backed by provider.
// Destinations are resolved with geo.Lookup.
func NewActivityService(provider ActivityProvider, opts ...Option) *ActivityService {
	return &ActivityService{
		provider: provider,
		lookup:   geo.Lookup,
		opts:     buildOptions(opts),
	}
}

type branchResult struct {
	name    string
	results []domain.ActivityResult
	err     error
}

// Search resolves the destination, queries both branches concurrently and
// applies filters, sort and limit to the union. A single failing branch
// yields a partial success; both failing yields a failure.
func (s *ActivityService) Search(
	ctx context.Context,
	req domain.ActivitySearchRequest,
) domain.ServiceResponse[[]domain.ActivityResult] {
	started := s.opts.nowFunc()
	ctx, span := tracer.Start(ctx, "search.activities")
	defer span.End()

	lat, lon, err := s.locate(&req)
	if err != nil {
		return finish[domain.ActivityResult](ctx, &s.opts, "activities", started, nil, err)
	}
	if err := validateActivityRequest(&req); err != nil {
		return finish[domain.ActivityResult](ctx, &s.opts, "activities", started, nil, err)
	}
	key, err := activitySortKey(req.SortBy)
	if err != nil {
		return finish[domain.ActivityResult](ctx, &s.opts, "activities", started, nil, err)
	}

	radius := req.RadiusKM
	if radius == 0 {
		radius = defaultActivityRadiusKM
	}
	radius = min(radius, maxActivityRadiusKM)
	limit := req.MaxResults
	if limit == 0 {
		limit = defaultActivityResults
	}

	poiQuery := amadeus.POIQuery{
		Latitude:   lat,
		Longitude:  lon,
		Radius:     radius,
		Categories: poiCategories(req.Filters.Categories),
		Limit:      limit,
	}
	tourQuery := amadeus.ActivitiesQuery{
		Latitude:  lat,
		Longitude: lon,
		Radius:    radius,
	}

	branches := s.fanOut(ctx, poiQuery, tourQuery)

	var (
		merged   []domain.ActivityResult
		failures []error
		warnings []string
	)
	for _, b := range branches {
		if b.err != nil {
			metrics.ActivityBranchFailuresTotal.WithLabelValues(b.name).Inc()
			s.opts.logger.Warn("activity branch failed", "branch", b.name, "error", b.err)
			failures = append(failures, fmt.Errorf("%s: %w", b.name, b.err))
			warnings = append(warnings, fmt.Sprintf("%s unavailable: %v", b.name, b.err))
			continue
		}
		merged = append(merged, b.results...)
	}
	if len(failures) == len(branches) {
		return finish[domain.ActivityResult](ctx, &s.opts, "activities", started, nil, errors.Join(failures...))
	}

	match := func(a *domain.ActivityResult) bool {
		return req.Filters.Match(a) && a.AvailableDuring(req.StartDate, req.EndDate)
	}
	merged = filterSortLimit(merged, match, key, req.SortOrder, limit)
	resp := finish(ctx, &s.opts, "activities", started, merged, nil)
	if len(failures) > 0 {
		resp.Partial = true
		resp.Warnings = warnings
	}
	return resp
}

// fanOut runs both provider branches concurrently. Each branch captures its
// own error and recovers its own panic, so neither affects the other.
func (s *ActivityService) fanOut(
	ctx context.Context,
	poiQuery amadeus.POIQuery,
	tourQuery amadeus.ActivitiesQuery,
) []branchResult {
	out := []branchResult{{name: branchPOIs}, {name: branchTours}}

	run := func(b *branchResult, fn func() ([]domain.ActivityResult, error)) {
		defer func() {
			if r := recover(); r != nil {
				b.results, b.err = nil, fmt.Errorf("panic: %v", r)
			}
		}()
		b.results, b.err = fn()
	}

	var wg sync.WaitGroup
	wg.Go(func() {
		run(&out[0], func() ([]domain.ActivityResult, error) {
			return s.provider.ListPointsOfInterest(ctx, poiQuery)
		})
	})
	wg.Go(func() {
		run(&out[1], func() ([]domain.ActivityResult, error) {
			return s.provider.ListActivities(ctx, tourQuery)
		})
	})
	wg.Wait()

	return out
}

// locate returns explicit request coordinates, or resolves the destination.
func (s *ActivityService) locate(req *domain.ActivitySearchRequest) (lat, lon float64, err error) {
	switch {
	case req.Latitude != nil && req.Longitude != nil:
		lat, lon = *req.Latitude, *req.Longitude
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return 0, 0, invalid("coordinates (%g, %g) out of range", lat, lon)
		}
		return lat, lon, nil
	case req.Latitude != nil || req.Longitude != nil:
		return 0, 0, invalid("latitude and longitude must be given together")
	}

	c, err := s.lookup(req.Destination)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return c.Latitude, c.Longitude, nil
}

func validateActivityRequest(req *domain.ActivitySearchRequest) error {
	var errs []error
	var start, end string
	if req.StartDate != "" {
		if _, err := parseDate("start date", req.StartDate); err != nil {
			errs = append(errs, err)
		} else {
			start = req.StartDate
		}
	}
	if req.EndDate != "" {
		if _, err := parseDate("end date", req.EndDate); err != nil {
			errs = append(errs, err)
		} else {
			end = req.EndDate
		}
	}
	if start != "" && end != "" && end < start {
		errs = append(errs, invalid("end date %s is before start date %s", end, start))
	}

	f := &req.Filters
	if f.MinDurationMinutes < 0 || f.MaxDurationMinutes < 0 {
		errs = append(errs, invalid("duration bounds cannot be negative"))
	}
	if f.MaxDurationMinutes > 0 && f.MinDurationMinutes > f.MaxDurationMinutes {
		errs = append(errs, invalid("min duration %d exceeds max duration %d", f.MinDurationMinutes, f.MaxDurationMinutes))
	}
	if req.RadiusKM < 0 || req.MaxResults < 0 {
		errs = append(errs, invalid("radius and max results cannot be negative"))
	}
	return errors.Join(errs...)
}

// poiCategories keeps the requested categories the POI endpoint can filter
// on server-side.
func poiCategories(requested []string) []string {
	var out []string
	for _, c := range upperAll(requested) {
		if slices.Contains(amadeus.POICategories, c) && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
