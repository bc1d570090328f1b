package search

import (
	"cmp"
	"slices"
	"strings"
	"time"

	domain "github.com/donaldgifford/travel-search/pkg/types"
)

// sortKey extracts a numeric sort key. ok is false when the value is
// unknown; unknown values sort after known ones in either direction.
type sortKey[T any] func(*T) (v float64, ok bool)

// filterSortLimit keeps the items match accepts, stable-sorts them by key
// (provider order when key is nil) and truncates to limit (no limit when
// limit <= 0). items is left untouched.
func filterSortLimit[T any](
	items []T,
	match func(*T) bool,
	key sortKey[T],
	order domain.SortOrder,
	limit int,
) []T {
	kept := make([]T, 0, len(items))
	for i := range items {
		if match(&items[i]) {
			kept = append(kept, items[i])
		}
	}

	if key != nil {
		desc := order.Descending()
		slices.SortStableFunc(kept, func(a, b T) int {
			ka, okA := key(&a)
			kb, okB := key(&b)
			switch {
			case !okA && !okB:
				return 0
			case !okA:
				return 1
			case !okB:
				return -1
			}
			c := cmp.Compare(ka, kb)
			if desc {
				return -c
			}
			return c
		})
	}

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

func known(v float64) (float64, bool) { return v, true }

// Flights

func flightSortKey(field domain.FlightSortField) (sortKey[domain.FlightResult], error) {
	switch field {
	case "":
		return nil, nil
	case domain.FlightSortPrice:
		return func(r *domain.FlightResult) (float64, bool) { return known(r.Price) }, nil
	case domain.FlightSortDuration:
		return func(r *domain.FlightResult) (float64, bool) {
			return float64(r.TotalMinutes()), r.TotalMinutes() > 0
		}, nil
	case domain.FlightSortDeparture:
		return func(r *domain.FlightResult) (float64, bool) {
			return float64(r.DepartureTime.Unix()), !r.DepartureTime.IsZero()
		}, nil
	default:
		return nil, invalid("unknown flight sort field %q", field)
	}
}

// Hotels

func hotelSortKey(field domain.HotelSortField) (sortKey[domain.HotelResult], error) {
	switch field {
	case "":
		return nil, nil
	case domain.HotelSortPrice:
		return func(h *domain.HotelResult) (float64, bool) { return known(h.Price.Total) }, nil
	case domain.HotelSortRating:
		return func(h *domain.HotelResult) (float64, bool) {
			return float64(h.Rating), h.Rating > 0
		}, nil
	case domain.HotelSortDistance:
		return func(h *domain.HotelResult) (float64, bool) {
			if h.DistanceKM == nil {
				return 0, false
			}
			return *h.DistanceKM, true
		}, nil
	default:
		return nil, invalid("unknown hotel sort field %q", field)
	}
}

// Activities

func activitySortKey(field domain.ActivitySortField) (sortKey[domain.ActivityResult], error) {
	switch field {
	case "":
		return nil, nil
	case domain.ActivitySortPrice:
		return func(a *domain.ActivityResult) (float64, bool) { return known(a.Price) }, nil
	case domain.ActivitySortRating:
		return func(a *domain.ActivityResult) (float64, bool) {
			if a.Rating == nil {
				return 0, false
			}
			return *a.Rating, true
		}, nil
	case domain.ActivitySortDuration:
		return func(a *domain.ActivityResult) (float64, bool) {
			if a.DurationMinutes == nil {
				return 0, false
			}
			return float64(*a.DurationMinutes), true
		}, nil
	case domain.ActivitySortPopularity:
		return func(a *domain.ActivityResult) (float64, bool) { return known(a.Popularity) }, nil
	default:
		return nil, invalid("unknown activity sort field %q", field)
	}
}

// Request helpers

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, invalid("%s %q is not a YYYY-MM-DD date", field, value)
	}
	return t, nil
}

func isLocationCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func upperAll(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	return out
}
