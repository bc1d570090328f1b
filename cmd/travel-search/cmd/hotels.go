package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/travel-search/pkg/types"
)

func hotelsCmd() *cobra.Command {
	var (
		req       domain.HotelSearchRequest
		lat       float64
		lon       float64
		minPrice  float64
		maxPrice  float64
		sortBy    string
		sortOrder string
	)

	cmd := &cobra.Command{
		Use:   "hotels [cityCode]",
		Short: "Search hotels and their best offers",
		Long: "Discover hotels by IATA city code or by --lat/--lon, price their\n" +
			"offers for the stay, and list the cheapest offer per hotel.",
		Example: `  travel-search hotels PAR --check-in 2025-12-01 --check-out 2025-12-04
  travel-search hotels NYC --check-in 2025-12-01 --check-out 2025-12-03 --amenities POOL,SPA --sort price
  travel-search hotels --lat 41.39 --lon 2.17 --radius 5 --check-in 2025-12-01 --check-out 2025-12-02`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.CityCode = strings.ToUpper(args[0])
			}
			if cmd.Flags().Changed("lat") {
				req.Latitude = &lat
			}
			if cmd.Flags().Changed("lon") {
				req.Longitude = &lon
			}
			req.Filters.Price = domain.PriceRange{Min: minPrice, Max: maxPrice}
			req.SortBy = domain.HotelSortField(sortBy)
			req.SortOrder = domain.SortOrder(sortOrder)

			b, err := newBackend()
			if err != nil {
				return err
			}
			resp, err := b.hotels(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return render(resp, printHotelsTable)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.CheckInDate, "check-in", "", "check-in date (YYYY-MM-DD)")
	f.StringVar(&req.CheckOutDate, "check-out", "", "check-out date (YYYY-MM-DD)")
	f.Float64Var(&lat, "lat", 0, "search latitude instead of a city code")
	f.Float64Var(&lon, "lon", 0, "search longitude instead of a city code")
	f.IntVar(&req.RadiusKM, "radius", 0, "search radius in km")
	f.IntVar(&req.Adults, "adults", 1, "adults per room")
	f.IntSliceVar(&req.ChildAges, "child-ages", nil, "ages of children")
	f.IntVar(&req.Rooms, "rooms", 1, "number of rooms")
	f.IntSliceVar(&req.StarRatings, "stars", nil, "star ratings to include")
	f.StringSliceVar(&req.ChainCodes, "chains", nil, "hotel chain codes")
	f.StringVar(&req.Currency, "currency", "", "currency code (default from server)")
	f.IntVar(&req.MaxResults, "limit", 20, "maximum number of results")
	f.Float64Var(&minPrice, "min-price", 0, "minimum total stay price")
	f.Float64Var(&maxPrice, "max-price", 0, "maximum total stay price")
	f.IntVar(&req.Filters.MinRating, "min-rating", 0, "minimum star rating")
	f.StringSliceVar(&req.Filters.Amenities, "amenities", nil, "required amenities (e.g. WIFI,POOL)")
	f.Float64Var(&req.Filters.MaxDistanceKM, "max-distance", 0, "maximum distance from the search center in km")
	f.StringVar(&sortBy, "sort", "", "sort by price, rating or distance")
	f.StringVar(&sortOrder, "order", "asc", "sort order (asc, desc)")
	cobra.CheckErr(cmd.MarkFlagRequired("check-in"))
	cobra.CheckErr(cmd.MarkFlagRequired("check-out"))

	return cmd
}
