package domain

import (
	"strings"
)

// ActivitySource identifies which provider branch produced an activity.
type ActivitySource string

// Activity sources.
const (
	SourcePointOfInterest ActivitySource = "point_of_interest"
	SourceTour            ActivitySource = "tour"
)

// ActivitySortField selects the activity result sort key.
type ActivitySortField string

// Activity sort fields.
const (
	ActivitySortPrice      ActivitySortField = "price"
	ActivitySortRating     ActivitySortField = "rating"
	ActivitySortDuration   ActivitySortField = "duration"
	ActivitySortPopularity ActivitySortField = "popularity"
)

// ActivitySearchRequest is a domain-level activity query. Latitude and
// Longitude, when both set, bypass destination lookup.
type ActivitySearchRequest struct {
	Destination string   `json:"destination,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	RadiusKM    int      `json:"radius_km,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	MaxResults  int      `json:"max_results,omitempty"`

	Filters   ActivityFilters   `json:"filters,omitempty"`
	SortBy    ActivitySortField `json:"sort_by,omitempty"`
	SortOrder SortOrder         `json:"sort_order,omitempty"`
}

// ActivityFilters are the post-fetch constraints applied to merged
// activities.
type ActivityFilters struct {
	Price              PriceRange `json:"price,omitempty"`
	Categories         []string   `json:"categories,omitempty"`
	MinDurationMinutes int        `json:"min_duration_minutes,omitempty"`
	MaxDurationMinutes int        `json:"max_duration_minutes,omitempty"`
	Preferences        []string   `json:"preferences,omitempty"`
}

// Match reports whether the activity satisfies every filter. Activities
// with no known duration pass the duration bounds.
func (f *ActivityFilters) Match(a *ActivityResult) bool {
	if !f.Price.Contains(a.Price) {
		return false
	}
	if cats := normalizeCodes(f.Categories); cats != nil {
		if _, ok := cats[strings.ToUpper(a.Category)]; !ok {
			return false
		}
	}
	if a.DurationMinutes != nil {
		if f.MinDurationMinutes > 0 && *a.DurationMinutes < f.MinDurationMinutes {
			return false
		}
		if f.MaxDurationMinutes > 0 && *a.DurationMinutes > f.MaxDurationMinutes {
			return false
		}
	}
	return a.MatchesAny(f.Preferences)
}

// ActivityResult is a normalized point of interest or bookable tour.
type ActivityResult struct {
	ID              string         `json:"id"`
	Source          ActivitySource `json:"source"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	Category        string         `json:"category"`
	Tags            []string       `json:"tags,omitempty"`
	Location        Location       `json:"location"`
	Price           float64        `json:"price"`
	Currency        string         `json:"currency,omitempty"`
	Rating          *float64       `json:"rating,omitempty"`
	Duration        string         `json:"duration,omitempty"`
	DurationMinutes *int           `json:"duration_minutes,omitempty"`
	Popularity      float64        `json:"popularity"`
	BookingLink     string         `json:"booking_link,omitempty"`
	Pictures        []string       `json:"pictures,omitempty"`
	AvailableFrom   string         `json:"available_from,omitempty"`
	AvailableTo     string         `json:"available_to,omitempty"`
}

// AvailableDuring reports whether the activity's availability overlaps the
// window [start, end]. Dates are YYYY-MM-DD; an empty bound on either side
// is open, so activities without availability data always pass.
func (a *ActivityResult) AvailableDuring(start, end string) bool {
	if start != "" && a.AvailableTo != "" && a.AvailableTo < start {
		return false
	}
	if end != "" && a.AvailableFrom != "" && a.AvailableFrom > end {
		return false
	}
	return true
}

// MatchesAny reports whether any preference keyword appears in the
// activity's category, tags, name or description. Blank entries are
// ignored; no preferences matches everything.
func (a *ActivityResult) MatchesAny(preferences []string) bool {
	wanted := make([]string, 0, len(preferences))
	for _, p := range preferences {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			wanted = append(wanted, p)
		}
	}
	if len(wanted) == 0 {
		return true
	}

	fields := make([]string, 0, len(a.Tags)+3)
	fields = append(fields, a.Category, a.Name, a.Description)
	fields = append(fields, a.Tags...)
	for i := range fields {
		fields[i] = strings.ToLower(fields[i])
	}

	for _, p := range wanted {
		for _, f := range fields {
			if strings.Contains(f, p) {
				return true
			}
		}
	}
	return false
}
