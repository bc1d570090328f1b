package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/travel-search/pkg/types"
)

func flightsCmd() *cobra.Command {
	var (
		req       domain.FlightSearchRequest
		minPrice  float64
		maxPrice  float64
		maxStops  int
		preferred []string
		excluded  []string
		sortBy    string
		sortOrder string
	)

	cmd := &cobra.Command{
		Use:   "flights <origin> <destination>",
		Short: "Search flight offers",
		Long: "Search flight offers between two IATA location codes. Price, stop and\n" +
			"airline filters are applied to the provider results before sorting.",
		Example: `  travel-search flights JFK LAX --depart 2025-12-01
  travel-search flights JFK CDG --depart 2025-12-01 --return 2025-12-08 --adults 2 --cabin BUSINESS
  travel-search flights SFO NRT --depart 2025-12-01 --direct-only --sort duration --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Origin = strings.ToUpper(args[0])
			req.Destination = strings.ToUpper(args[1])
			req.Filters.Price = domain.PriceRange{Min: minPrice, Max: maxPrice}
			req.Filters.PreferredAirlines = preferred
			req.Filters.ExcludedAirlines = excluded
			if cmd.Flags().Changed("max-stops") {
				req.Filters.MaxStops = &maxStops
			}
			req.SortBy = domain.FlightSortField(sortBy)
			req.SortOrder = domain.SortOrder(sortOrder)

			b, err := newBackend()
			if err != nil {
				return err
			}
			resp, err := b.flights(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return render(resp, printFlightsTable)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.DepartureDate, "depart", "", "departure date (YYYY-MM-DD)")
	f.StringVar(&req.ReturnDate, "return", "", "return date for a round trip (YYYY-MM-DD)")
	f.IntVar(&req.Adults, "adults", 1, "number of adult travelers")
	f.IntVar(&req.Children, "children", 0, "number of child travelers")
	f.IntVar(&req.Infants, "infants", 0, "number of infants")
	f.StringVar((*string)(&req.CabinClass), "cabin", "", "cabin class (ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST)")
	f.StringVar(&req.Currency, "currency", "", "currency code (default from server)")
	f.IntVar(&req.MaxResults, "limit", 10, "maximum number of results")
	f.Float64Var(&minPrice, "min-price", 0, "minimum total price")
	f.Float64Var(&maxPrice, "max-price", 0, "maximum total price")
	f.BoolVar(&req.Filters.DirectOnly, "direct-only", false, "only non-stop flights")
	f.IntVar(&maxStops, "max-stops", 0, "maximum stops on any itinerary")
	f.StringSliceVar(&preferred, "airlines", nil, "only these carrier codes")
	f.StringSliceVar(&excluded, "exclude-airlines", nil, "exclude these carrier codes")
	f.StringVar(&sortBy, "sort", "", "sort by price, duration or departure")
	f.StringVar(&sortOrder, "order", "asc", "sort order (asc, desc)")
	cobra.CheckErr(cmd.MarkFlagRequired("depart"))

	return cmd
}
