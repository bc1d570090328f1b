package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/travel-search/pkg/types"
)

func activitiesCmd() *cobra.Command {
	var (
		req       domain.ActivitySearchRequest
		lat       float64
		lon       float64
		minPrice  float64
		maxPrice  float64
		sortBy    string
		sortOrder string
	)

	cmd := &cobra.Command{
		Use:   "activities [destination]",
		Short: "Search points of interest and tours",
		Long: "Search points of interest and bookable tours around a destination name\n" +
			"or --lat/--lon. Results from both sources are merged; when one source\n" +
			"fails the other's results are returned with a warning.",
		Example: `  travel-search activities Barcelona
  travel-search activities "New York" --categories SIGHTS,RESTAURANT --sort rating --order desc
  travel-search activities --lat 48.85 --lon 2.35 --radius 2 --max-price 50`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Destination = strings.TrimSpace(args[0])
			}
			if cmd.Flags().Changed("lat") {
				req.Latitude = &lat
			}
			if cmd.Flags().Changed("lon") {
				req.Longitude = &lon
			}
			req.Filters.Price = domain.PriceRange{Min: minPrice, Max: maxPrice}
			req.SortBy = domain.ActivitySortField(sortBy)
			req.SortOrder = domain.SortOrder(sortOrder)

			b, err := newBackend()
			if err != nil {
				return err
			}
			resp, err := b.activities(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return render(resp, printActivitiesTable)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&lat, "lat", 0, "search latitude instead of a destination name")
	f.Float64Var(&lon, "lon", 0, "search longitude instead of a destination name")
	f.IntVar(&req.RadiusKM, "radius", 0, "search radius in km (max 20)")
	f.StringVar(&req.StartDate, "from", "", "first day of the visit (YYYY-MM-DD); tours unavailable in the window are dropped")
	f.StringVar(&req.EndDate, "to", "", "last day of the visit (YYYY-MM-DD)")
	f.IntVar(&req.MaxResults, "limit", 20, "maximum number of results")
	f.Float64Var(&minPrice, "min-price", 0, "minimum price")
	f.Float64Var(&maxPrice, "max-price", 0, "maximum price")
	f.StringSliceVar(&req.Filters.Categories, "categories", nil, "categories (SIGHTS, RESTAURANT, SHOPPING, NIGHTLIFE, BEACH_PARK, TOUR)")
	f.IntVar(&req.Filters.MinDurationMinutes, "min-duration", 0, "minimum tour duration in minutes")
	f.IntVar(&req.Filters.MaxDurationMinutes, "max-duration", 0, "maximum tour duration in minutes")
	f.StringSliceVar(&req.Filters.Preferences, "prefer", nil, "keywords matched against name, description and tags")
	f.StringVar(&sortBy, "sort", "", "sort by price, rating, duration or popularity")
	f.StringVar(&sortOrder, "order", "asc", "sort order (asc, desc)")

	return cmd
}
