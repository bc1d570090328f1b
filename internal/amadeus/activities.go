package amadeus

import (
	"context"

	domain "github.com/donaldgifford/travel-search/pkg/types"
)

const (
	poisPath       = "/v1/reference-data/locations/pois"
	activitiesPath = "/v1/shopping/activities"
)

// POI categories accepted by the points of interest endpoint.
var POICategories = []string{"SIGHTS", "NIGHTLIFE", "RESTAURANT", "SHOPPING", "BEACH_PARK"}

// POIQuery is the query string of a points of interest search.
type POIQuery struct {
	Latitude   float64  `url:"latitude"`
	Longitude  float64  `url:"longitude"`
	Radius     int      `url:"radius,omitempty"`
	Categories []string `url:"categories,omitempty,comma"`
	Limit      int      `url:"page[limit],omitempty"`
	Offset     int      `url:"page[offset],omitempty"`
}

// ActivitiesQuery is the query string of a tours and activities search.
type ActivitiesQuery struct {
	Latitude  float64 `url:"latitude"`
	Longitude float64 `url:"longitude"`
	Radius    int     `url:"radius,omitempty"`
}

// ListPointsOfInterest searches points of interest and converts them into
// free activities.
func (c *Client) ListPointsOfInterest(ctx context.Context, q POIQuery) ([]domain.ActivityResult, error) {
	var resp POIResponse
	if err := c.get(ctx, "pois", poisPath, q, &resp); err != nil {
		return nil, err
	}

	results, rejected := ToActivitiesFromPOIs(&resp)
	c.logRejected("point_of_interest", rejected)
	return results, nil
}

// ListActivities searches bookable tours and activities.
func (c *Client) ListActivities(ctx context.Context, q ActivitiesQuery) ([]domain.ActivityResult, error) {
	var resp ActivitiesResponse
	if err := c.get(ctx, "activities", activitiesPath, q, &resp); err != nil {
		return nil, err
	}

	results, rejected := ToActivitiesFromTours(&resp)
	c.logRejected("activity", rejected)
	return results, nil
}
