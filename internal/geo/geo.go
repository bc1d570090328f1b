// Package geo resolves destination names to coordinates from a static
// table of major cities. It is a stand-in for a geocoding service and makes
// no accuracy claims.
package geo

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownDestination is returned when a destination is not in the table.
var ErrUnknownDestination = errors.New("unknown destination")

// Coordinates is a latitude/longitude pair with the IATA city code it
// resolved from.
type Coordinates struct {
	CityCode  string  `json:"city_code"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var cities = []Coordinates{
	{CityCode: "NYC", Name: "New York", Latitude: 40.7128, Longitude: -74.0060},
	{CityCode: "LAX", Name: "Los Angeles", Latitude: 34.0522, Longitude: -118.2437},
	{CityCode: "SFO", Name: "San Francisco", Latitude: 37.7749, Longitude: -122.4194},
	{CityCode: "CHI", Name: "Chicago", Latitude: 41.8781, Longitude: -87.6298},
	{CityCode: "MIA", Name: "Miami", Latitude: 25.7617, Longitude: -80.1918},
	{CityCode: "LAS", Name: "Las Vegas", Latitude: 36.1699, Longitude: -115.1398},
	{CityCode: "SEA", Name: "Seattle", Latitude: 47.6062, Longitude: -122.3321},
	{CityCode: "BOS", Name: "Boston", Latitude: 42.3601, Longitude: -71.0589},
	{CityCode: "WAS", Name: "Washington", Latitude: 38.9072, Longitude: -77.0369},
	{CityCode: "ORL", Name: "Orlando", Latitude: 28.5383, Longitude: -81.3792},
	{CityCode: "PAR", Name: "Paris", Latitude: 48.8566, Longitude: 2.3522},
	{CityCode: "LON", Name: "London", Latitude: 51.5074, Longitude: -0.1278},
	{CityCode: "ROM", Name: "Rome", Latitude: 41.9028, Longitude: 12.4964},
	{CityCode: "BCN", Name: "Barcelona", Latitude: 41.3874, Longitude: 2.1686},
	{CityCode: "MAD", Name: "Madrid", Latitude: 40.4168, Longitude: -3.7038},
	{CityCode: "BER", Name: "Berlin", Latitude: 52.5200, Longitude: 13.4050},
	{CityCode: "AMS", Name: "Amsterdam", Latitude: 52.3676, Longitude: 4.9041},
	{CityCode: "LIS", Name: "Lisbon", Latitude: 38.7223, Longitude: -9.1393},
	{CityCode: "PRG", Name: "Prague", Latitude: 50.0755, Longitude: 14.4378},
	{CityCode: "TYO", Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503},
	{CityCode: "SIN", Name: "Singapore", Latitude: 1.3521, Longitude: 103.8198},
	{CityCode: "BKK", Name: "Bangkok", Latitude: 13.7563, Longitude: 100.5018},
	{CityCode: "HKG", Name: "Hong Kong", Latitude: 22.3193, Longitude: 114.1694},
	{CityCode: "DXB", Name: "Dubai", Latitude: 25.2048, Longitude: 55.2708},
	{CityCode: "SYD", Name: "Sydney", Latitude: -33.8688, Longitude: 151.2093},
	{CityCode: "YTO", Name: "Toronto", Latitude: 43.6532, Longitude: -79.3832},
	{CityCode: "MEX", Name: "Mexico City", Latitude: 19.4326, Longitude: -99.1332},
}

// aliases maps alternate spellings to a city code.
var aliases = map[string]string{
	"new york city": "NYC",
	"nyc":           "NYC",
	"la":            "LAX",
	"sf":            "SFO",
	"washington dc": "WAS",
	"dc":            "WAS",
	"roma":          "ROM",
	"lisboa":        "LIS",
	"praha":         "PRG",
}

var index = buildIndex()

func buildIndex() map[string]Coordinates {
	idx := make(map[string]Coordinates, len(cities)*2+len(aliases))
	for _, c := range cities {
		idx[normalize(c.CityCode)] = c
		idx[normalize(c.Name)] = c
	}
	for alias, code := range aliases {
		idx[normalize(alias)] = idx[normalize(code)]
	}
	return idx
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Lookup resolves a city name or IATA city code. Matching ignores case and
// surrounding or repeated whitespace. A trailing ", Country" qualifier is
// ignored.
func Lookup(destination string) (Coordinates, error) {
	key := normalize(destination)
	if key == "" {
		return Coordinates{}, fmt.Errorf("%w: empty destination", ErrUnknownDestination)
	}
	if c, ok := index[key]; ok {
		return c, nil
	}
	if city, _, found := strings.Cut(key, ","); found {
		if c, ok := index[normalize(city)]; ok {
			return c, nil
		}
	}
	return Coordinates{}, fmt.Errorf("%w: %q", ErrUnknownDestination, destination)
}

// Cities returns every known city code in sorted order.
func Cities() []string {
	out := make([]string, 0, len(cities))
	for _, c := range cities {
		out = append(out, c.CityCode)
	}
	sort.Strings(out)
	return out
}
