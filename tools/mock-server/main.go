// Package main implements a mock Amadeus API server for local development.
// It serves canned responses from JSON fixtures for the OAuth2 token endpoint
// and the flight, hotel, points-of-interest and activities endpoints, so the
// search pipeline can run without real Amadeus credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const mockTokenTTL = 1799

// envelope is the {data, meta, dictionaries} shape every Amadeus list
// endpoint returns.
type envelope struct {
	Data         []json.RawMessage `json:"data"`
	Meta         *envelopeMeta     `json:"meta,omitempty"`
	Dictionaries json.RawMessage   `json:"dictionaries,omitempty"`
}

type envelopeMeta struct {
	Count int `json:"count"`
}

// fixtures holds one envelope per endpoint family.
type fixtures struct {
	FlightOffers *envelope
	Hotels       *envelope
	HotelOffers  *envelope
	POIs         *envelope
	Activities   *envelope
}

var fixtureFiles = map[string]func(*fixtures) **envelope{
	"flight_offers.json": func(f *fixtures) **envelope { return &f.FlightOffers },
	"hotels.json":        func(f *fixtures) **envelope { return &f.Hotels },
	"hotel_offers.json":  func(f *fixtures) **envelope { return &f.HotelOffers },
	"pois.json":          func(f *fixtures) **envelope { return &f.POIs },
	"activities.json":    func(f *fixtures) **envelope { return &f.Activities },
}

// Partial views used for filtering raw fixture records.
type (
	flightOfferView struct {
		Itineraries []struct {
			Segments []struct {
				Departure struct {
					IATACode string `json:"iataCode"`
				} `json:"departure"`
				Arrival struct {
					IATACode string `json:"iataCode"`
				} `json:"arrival"`
			} `json:"segments"`
		} `json:"itineraries"`
	}

	hotelView struct {
		HotelID  string `json:"hotelId"`
		IATACode string `json:"iataCode"`
	}

	hotelOffersView struct {
		Hotel struct {
			HotelID string `json:"hotelId"`
		} `json:"hotel"`
	}

	poiView struct {
		Category string `json:"category"`
	}
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureDir := flag.String("fixtures", "tools/mock-server/testdata", "directory holding the JSON fixtures")
	tps := flag.Float64("tps", 0, "requests per second before answering 429 (0 disables throttling)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixtures(*fixtureDir)
	if err != nil {
		logger.Error("failed to load fixtures", "dir", *fixtureDir, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixtures",
		"flight_offers", len(fx.FlightOffers.Data),
		"hotels", len(fx.Hotels.Data),
		"hotel_offers", len(fx.HotelOffers.Data),
		"pois", len(fx.POIs.Data),
		"activities", len(fx.Activities.Data),
	)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Amadeus server", "addr", addr, "tps", *tps)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, fx, *tps)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// newMux wires the token endpoint and the bearer-protected API routes.
func newMux(logger *slog.Logger, fx *fixtures, tps float64) *http.ServeMux {
	api := http.NewServeMux()
	api.HandleFunc("GET /v2/shopping/flight-offers", flightOffersHandler(logger, fx.FlightOffers))
	api.HandleFunc("GET /v1/reference-data/locations/hotels/by-city", hotelsByCityHandler(logger, fx.Hotels))
	api.HandleFunc("GET /v1/reference-data/locations/hotels/by-geocode", hotelsByGeocodeHandler(logger, fx.Hotels))
	api.HandleFunc("GET /v3/shopping/hotel-offers", hotelOffersHandler(logger, fx.HotelOffers))
	api.HandleFunc("GET /v1/reference-data/locations/pois", poisHandler(logger, fx.POIs))
	api.HandleFunc("GET /v1/shopping/activities", activitiesHandler(logger, fx.Activities))

	var protected http.Handler = requireBearer(api)
	if tps > 0 {
		protected = throttle(rate.NewLimiter(rate.Limit(tps), max(int(tps), 1)), protected)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/security/oauth2/token", tokenHandler(logger))
	mux.Handle("/", protected)
	return mux
}

func loadFixtures(dir string) (*fixtures, error) {
	fx := &fixtures{}
	for name, slot := range fixtureFiles {
		env, err := loadEnvelope(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		*slot(fx) = env
	}
	return fx, nil
}

func loadEnvelope(path string) (*envelope, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", filepath.Base(path), err)
	}
	return &env, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/vnd.amadeus+json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

// writeError answers with the Amadeus {"errors":[...]} envelope.
func writeError(w http.ResponseWriter, status, code int, title, detail string) {
	writeJSON(w, status, map[string]any{
		"errors": []map[string]any{{
			"status": status,
			"code":   code,
			"title":  title,
			"detail": detail,
		}},
	})
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
			logger.Warn("token request with unsupported grant type")
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":             "unsupported_grant_type",
				"error_description": "Only client_credentials value is allowed for the body parameter grant_type",
				"code":              38187,
				"title":             "Invalid parameters",
			})
			return
		}
		if r.PostForm.Get("client_id") == "" || r.PostForm.Get("client_secret") == "" {
			logger.Warn("token request missing client credentials")
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error":             "invalid_client",
				"error_description": "Client credentials are invalid",
				"code":              38190,
				"title":             "Invalid parameters",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"type":         "amadeusOAuth2Token",
			"username":     "mock@example.com",
			"client_id":    r.PostForm.Get("client_id"),
			"token_type":   "Bearer",
			"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   mockTokenTTL,
			"state":        "approved",
		})
		logger.Info("issued mock token", "client_id", r.PostForm.Get("client_id"))
	}
}

// requireBearer rejects API calls without a mock bearer token.
func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || !strings.HasPrefix(token, "mock-token-") {
			writeError(w, http.StatusUnauthorized, 38191, "Invalid HTTP header",
				"Missing or invalid format for mandatory Authorization header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// throttle answers 429 once the limiter runs dry.
func throttle(l *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, 38194, "Too many requests",
				"The network rate limit is exceeded, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// missingParam returns the first required query parameter that is absent.
func missingParam(r *http.Request, names ...string) string {
	q := r.URL.Query()
	for _, name := range names {
		if q.Get(name) == "" {
			return name
		}
	}
	return ""
}

func requireParams(w http.ResponseWriter, r *http.Request, names ...string) bool {
	if name := missingParam(r, names...); name != "" {
		writeError(w, http.StatusBadRequest, 32171, "MANDATORY DATA MISSING",
			fmt.Sprintf("Missing mandatory query parameter %s", name))
		return false
	}
	return true
}

// filter keeps the raw records for which keep returns true. Records that do
// not decode into T are dropped.
func filter[T any](records []json.RawMessage, keep func(T) bool) []json.RawMessage {
	out := []json.RawMessage{}
	for _, raw := range records {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		if keep(v) {
			out = append(out, raw)
		}
	}
	return out
}

// limit truncates records to the integer value of param when present.
func limit(r *http.Request, param string, records []json.RawMessage) []json.RawMessage {
	n, err := strconv.Atoi(r.URL.Query().Get(param))
	if err != nil || n <= 0 || n >= len(records) {
		return records
	}
	return records[:n]
}

func respond(w http.ResponseWriter, data []json.RawMessage, dictionaries json.RawMessage) {
	writeJSON(w, http.StatusOK, envelope{
		Data:         data,
		Meta:         &envelopeMeta{Count: len(data)},
		Dictionaries: dictionaries,
	})
}

func flightOffersHandler(logger *slog.Logger, fx *envelope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireParams(w, r, "originLocationCode", "destinationLocationCode", "departureDate", "adults") {
			return
		}
		origin := strings.ToUpper(r.URL.Query().Get("originLocationCode"))
		destination := strings.ToUpper(r.URL.Query().Get("destinationLocationCode"))

		matched := filter(fx.Data, func(o flightOfferView) bool {
			if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
				return false
			}
			segs := o.Itineraries[0].Segments
			return segs[0].Departure.IATACode == origin && segs[len(segs)-1].Arrival.IATACode == destination
		})
		matched = limit(r, "max", matched)

		respond(w, matched, fx.Dictionaries)
		logger.Info("flight offers", "origin", origin, "destination", destination, "returned", len(matched))
	}
}

func hotelsByCityHandler(logger *slog.Logger, fx *envelope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireParams(w, r, "cityCode") {
			return
		}
		city := strings.ToUpper(r.URL.Query().Get("cityCode"))
		matched := filter(fx.Data, func(h hotelView) bool { return h.IATACode == city })

		respond(w, matched, nil)
		logger.Info("hotels by city", "city", city, "returned", len(matched))
	}
}

func hotelsByGeocodeHandler(logger *slog.Logger, fx *envelope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireParams(w, r, "latitude", "longitude") {
			return
		}
		respond(w, fx.Data, nil)
		logger.Info("hotels by geocode", "returned", len(fx.Data))
	}
}

func hotelOffersHandler(logger *slog.Logger, fx *envelope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireParams(w, r, "hotelIds") {
			return
		}
		ids := strings.Split(r.URL.Query().Get("hotelIds"), ",")
		matched := filter(fx.Data, func(o hotelOffersView) bool {
			return slices.Contains(ids, o.Hotel.HotelID)
		})

		respond(w, matched, nil)
		logger.Info("hotel offers", "requested", len(ids), "returned", len(matched))
	}
}

func poisHandler(logger *slog.Logger, fx *envelope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireParams(w, r, "latitude", "longitude") {
			return
		}
		var categories []string
		if raw := r.URL.Query().Get("categories"); raw != "" {
			categories = strings.Split(strings.ToUpper(raw), ",")
		}
		matched := filter(fx.Data, func(p poiView) bool {
			return len(categories) == 0 || slices.Contains(categories, p.Category)
		})
		matched = limit(r, "page[limit]", matched)

		respond(w, matched, nil)
		logger.Info("points of interest", "categories", categories, "returned", len(matched))
	}
}

func activitiesHandler(logger *slog.Logger, fx *envelope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireParams(w, r, "latitude", "longitude") {
			return
		}
		writeJSON(w, http.StatusOK, envelope{Data: fx.Data})
		logger.Info("activities", "returned", len(fx.Data))
	}
}
