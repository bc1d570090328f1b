package amadeus

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	domain "github.com/donaldgifford/travel-search/pkg/types"
)

// providerTimeLayout is the local date-time format used for segment times.
const providerTimeLayout = "2006-01-02T15:04:05"

// Category assigned to tours, which the provider does not categorize.
const tourCategory = "TOUR"

var carrierNames = map[string]string{
	"AA": "American Airlines",
	"AS": "Alaska Airlines",
	"B6": "JetBlue Airways",
	"DL": "Delta Air Lines",
	"F9": "Frontier Airlines",
	"HA": "Hawaiian Airlines",
	"NK": "Spirit Airlines",
	"UA": "United Airlines",
	"WN": "Southwest Airlines",
	"AC": "Air Canada",
	"AF": "Air France",
	"BA": "British Airways",
	"IB": "Iberia",
	"KL": "KLM Royal Dutch Airlines",
	"LH": "Lufthansa",
	"EK": "Emirates",
}

var (
	isoDurationRe   = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)
	looseDurationRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(days?|d|hours?|hrs?|h|minutes?|mins?|m)\b`)
)

// ToFlightResults converts flight offers into domain results. Offers that
// fail validation are skipped and reported in the returned errors.
func ToFlightResults(resp *FlightOffersResponse) ([]domain.FlightResult, []error) {
	results := make([]domain.FlightResult, 0, len(resp.Data))
	var rejected []error
	for i := range resp.Data {
		o := &resp.Data[i]
		if err := o.validate(); err != nil {
			rejected = append(rejected, err)
			continue
		}
		results = append(results, toFlightResult(o, &resp.Dictionaries))
	}
	return results, rejected
}

func toFlightResult(o *FlightOffer, dict *Dictionaries) domain.FlightResult {
	price, _ := o.Price.amount() //nolint:errcheck // validated
	base, err := strconv.ParseFloat(o.Price.Base, 64)
	if err != nil {
		base = price
	}

	out := toItinerary(&o.Itineraries[0], dict)
	r := domain.FlightResult{
		ID:                o.ID,
		Source:            o.Source,
		Price:             price,
		BasePrice:         base,
		Currency:          o.Price.Currency,
		LastTicketingDate: o.LastTicketingDate,
		SeatsAvailable:    o.NumberOfBookableSeats,
		CabinClass:        cabinOf(o),
		Outbound:          out,
		Duration:          out.Duration,
		DurationMinutes:   out.DurationMinutes,
		Stops:             out.Stops,
	}

	first := out.Segments[0]
	last := out.Segments[len(out.Segments)-1]
	r.Origin = first.DepartureAirport
	r.Destination = last.ArrivalAirport
	r.DepartureTime = first.DepartureTime
	r.ArrivalTime = last.ArrivalTime

	// Airline
	if len(o.ValidatingAirlineCodes) > 0 {
		r.ValidatingAirline = o.ValidatingAirlineCodes[0]
	} else {
		r.ValidatingAirline = first.CarrierCode
	}
	r.AirlineName = CarrierName(r.ValidatingAirline, dict)

	// Return leg
	if len(o.Itineraries) > 1 {
		ret := toItinerary(&o.Itineraries[1], dict)
		r.Return = &ret
	}

	return r
}

func toItinerary(it *OfferItinerary, dict *Dictionaries) domain.Itinerary {
	segs := make([]domain.Segment, 0, len(it.Segments))
	for i := range it.Segments {
		segs = append(segs, toSegment(&it.Segments[i], dict))
	}

	for i := 0; i < len(segs)-1; i++ {
		gap := segs[i+1].DepartureTime.Sub(segs[i].ArrivalTime)
		if gap < 0 {
			gap = 0
		}
		segs[i].Layover = FormatDuration(gap)
		segs[i].LayoverMinutes = int(gap / time.Minute)
	}

	total, err := ParseISODuration(it.Duration)
	if err != nil {
		total = segs[len(segs)-1].ArrivalTime.Sub(segs[0].DepartureTime)
	}

	return domain.Itinerary{
		Duration:        FormatDuration(total),
		DurationMinutes: int(total / time.Minute),
		Stops:           len(segs) - 1,
		Segments:        segs,
	}
}

func toSegment(seg *OfferSegment, dict *Dictionaries) domain.Segment {
	dep, _ := parseProviderTime(seg.Departure.At) //nolint:errcheck // validated
	arr, _ := parseProviderTime(seg.Arrival.At)   //nolint:errcheck // validated

	s := domain.Segment{
		CarrierCode:       seg.CarrierCode,
		CarrierName:       CarrierName(seg.CarrierCode, dict),
		FlightNumber:      seg.CarrierCode + seg.Number,
		AircraftCode:      seg.Aircraft.Code,
		DepartureAirport:  seg.Departure.IATACode,
		DepartureTerminal: seg.Departure.Terminal,
		DepartureTime:     dep,
		ArrivalAirport:    seg.Arrival.IATACode,
		ArrivalTerminal:   seg.Arrival.Terminal,
		ArrivalTime:       arr,
	}

	if seg.Operating != nil {
		s.OperatingCarrier = seg.Operating.CarrierCode
	}
	if seg.Aircraft.Code != "" {
		s.AircraftName = seg.Aircraft.Code
		if name, ok := dict.Aircraft[seg.Aircraft.Code]; ok {
			s.AircraftName = name
		}
	}

	d, err := ParseISODuration(seg.Duration)
	if err != nil {
		d = arr.Sub(dep)
	}
	s.Duration = FormatDuration(d)
	s.DurationMinutes = int(d / time.Minute)

	return s
}

func cabinOf(o *FlightOffer) domain.CabinClass {
	if len(o.TravelerPricings) > 0 && len(o.TravelerPricings[0].FareDetailsBySegment) > 0 {
		if c := o.TravelerPricings[0].FareDetailsBySegment[0].Cabin; c != "" {
			return domain.CabinClass(strings.ToUpper(c))
		}
	}
	return domain.CabinEconomy
}

// CarrierName resolves an airline code through the response dictionary,
// then a built-in table of common carriers, then the code itself.
func CarrierName(code string, dict *Dictionaries) string {
	if dict != nil {
		if name, ok := dict.Carriers[code]; ok && name != "" {
			return name
		}
	}
	if name, ok := carrierNames[code]; ok {
		return name
	}
	return code
}

// ToHotelResults merges discovered hotels with their offers. Hotels with no
// usable offer are dropped; offers failing validation are reported in the
// returned errors. Amenities come from the discovery record only.
func ToHotelResults(
	hotels []HotelRecord,
	offers []HotelOffers,
	nights int,
) ([]domain.HotelResult, []error) {
	byID := make(map[string]*HotelOffers, len(offers))
	for i := range offers {
		byID[offers[i].Hotel.HotelID] = &offers[i]
	}

	if nights < 1 {
		nights = 1
	}

	results := make([]domain.HotelResult, 0, len(offers))
	var rejected []error
	for i := range hotels {
		h := &hotels[i]
		ho, ok := byID[h.HotelID]
		if !ok {
			continue
		}

		best, errs := bestOffer(ho.Offers)
		rejected = append(rejected, errs...)
		if best == nil {
			continue
		}

		results = append(results, toHotelResult(h, ho, best, nights))
	}
	return results, rejected
}

func bestOffer(offers []HotelOffer) (*HotelOffer, []error) {
	var best *HotelOffer
	bestTotal := math.Inf(1)
	var errs []error
	for i := range offers {
		o := &offers[i]
		if err := o.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		total, _ := o.total() //nolint:errcheck // validated
		if total < bestTotal {
			best, bestTotal = o, total
		}
	}
	return best, errs
}

func toHotelResult(
	h *HotelRecord,
	ho *HotelOffers,
	o *HotelOffer,
	nights int,
) domain.HotelResult {
	total, _ := o.total() //nolint:errcheck // validated
	base, err := strconv.ParseFloat(o.Price.Base, 64)
	if err != nil || base > total {
		base = total
	}

	r := domain.HotelResult{
		HotelID:      h.HotelID,
		Name:         h.Name,
		ChainCode:    h.ChainCode,
		CityCode:     h.IATACode,
		Amenities:    normalizeAmenities(h.Amenities),
		CheckInDate:  o.CheckInDate,
		CheckOutDate: o.CheckOutDate,
		Nights:       nights,
		Price: domain.PriceBreakdown{
			Base:     base,
			Taxes:    roundCents(total - base),
			Total:    total,
			Currency: o.Price.Currency,
		},
		PricePerNight: roundCents(total / float64(nights)),
		Offer:         toRoomOffer(o),
	}

	if h.Rating.Valid {
		r.Rating = int(h.Rating.Value)
	}
	if r.CityCode == "" {
		r.CityCode = ho.Hotel.CityCode
	}

	// Location
	switch {
	case !h.GeoCode.isZero():
		r.Location.Latitude = h.GeoCode.Latitude
		r.Location.Longitude = h.GeoCode.Longitude
	case ho.Hotel.Latitude != nil && ho.Hotel.Longitude != nil:
		r.Location.Latitude = *ho.Hotel.Latitude
		r.Location.Longitude = *ho.Hotel.Longitude
	}
	if h.Address != nil {
		r.Location.Address = strings.Join(h.Address.Lines, ", ")
		r.Location.CityName = h.Address.CityName
		r.Location.PostalCode = h.Address.PostalCode
		r.Location.CountryCode = h.Address.CountryCode
	}

	// Distance
	if h.Distance != nil {
		km := h.Distance.Kilometers()
		r.DistanceKM = &km
	}

	return r
}

func toRoomOffer(o *HotelOffer) domain.RoomOffer {
	ro := domain.RoomOffer{
		OfferID:     o.ID,
		RateCode:    o.RateCode,
		RoomType:    o.Room.Type,
		BoardType:   o.BoardType,
		PaymentType: o.Policies.PaymentType,
	}
	if te := o.Room.TypeEstimated; te != nil {
		ro.RoomCategory = te.Category
		ro.Beds = te.Beds
		ro.BedType = te.BedType
	}
	if o.Room.Description != nil {
		ro.Description = strings.TrimSpace(o.Room.Description.Text)
	}

	if rf := o.Policies.Refundable; rf != nil {
		ro.Refundable = !strings.EqualFold(rf.CancellationRefund, "NON_REFUNDABLE")
	}
	if len(o.Policies.Cancellations) > 0 {
		if t, err := time.Parse(time.RFC3339, o.Policies.Cancellations[0].Deadline); err == nil {
			ro.CancellationDeadline = &t
			ro.Refundable = true
		}
	}
	return ro
}

func normalizeAmenities(have []string) []string {
	out := make([]string, 0, len(have))
	for _, a := range have {
		a = strings.ToUpper(strings.TrimSpace(a))
		if a != "" && !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}

// ToActivitiesFromPOIs converts points of interest into free activities.
func ToActivitiesFromPOIs(resp *POIResponse) ([]domain.ActivityResult, []error) {
	results := make([]domain.ActivityResult, 0, len(resp.Data))
	var rejected []error
	for i := range resp.Data {
		p := &resp.Data[i]
		if err := p.validate(); err != nil {
			rejected = append(rejected, err)
			continue
		}
		results = append(results, POIToActivity(p))
	}
	return results, rejected
}

// POIToActivity converts a point of interest. POIs carry no price or
// duration; popularity is derived from the provider rank, lower being
// more popular.
func POIToActivity(p *POIRecord) domain.ActivityResult {
	a := domain.ActivityResult{
		ID:       p.ID,
		Source:   domain.SourcePointOfInterest,
		Name:     p.Name,
		Category: strings.ToUpper(p.Category),
		Location: domain.Location{
			Latitude:  p.GeoCode.Latitude,
			Longitude: p.GeoCode.Longitude,
		},
	}
	for _, t := range p.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			a.Tags = append(a.Tags, t)
		}
	}
	if p.Rank.Valid {
		a.Popularity = math.Max(0, 100-p.Rank.Value)
	}
	return a
}

// ToActivitiesFromTours converts bookable tours and activities.
func ToActivitiesFromTours(resp *ActivitiesResponse) ([]domain.ActivityResult, []error) {
	results := make([]domain.ActivityResult, 0, len(resp.Data))
	var rejected []error
	for i := range resp.Data {
		rec := &resp.Data[i]
		if err := rec.validate(); err != nil {
			rejected = append(rejected, err)
			continue
		}
		results = append(results, ActivityToActivity(rec))
	}
	return results, rejected
}

// ActivityToActivity converts a bookable tour. Popularity is the rating
// scaled to 0-100.
func ActivityToActivity(rec *ActivityRecord) domain.ActivityResult {
	a := domain.ActivityResult{
		ID:          rec.ID,
		Source:      domain.SourceTour,
		Name:        rec.Name,
		Description: rec.ShortDescription,
		Category:    tourCategory,
		Location: domain.Location{
			Latitude:  rec.GeoCode.Latitude,
			Longitude: rec.GeoCode.Longitude,
		},
		Currency:    rec.Price.CurrencyCode,
		BookingLink: rec.BookingLink,
		Pictures:    rec.Pictures,
	}
	if a.Description == "" {
		a.Description = rec.Description
	}

	// Price
	if rec.Price.Amount.Valid {
		a.Price = rec.Price.Amount.Value
	}

	// Rating
	if rec.Rating.Valid {
		rating := rec.Rating.Value
		a.Rating = &rating
		a.Popularity = math.Min(100, rating*20)
	}

	// Duration
	if d, ok := ParseLooseDuration(rec.MinimumDuration); ok {
		mins := int(d / time.Minute)
		a.DurationMinutes = &mins
		a.Duration = FormatDuration(d)
	}

	// Availability
	a.AvailableFrom = isoDateOrEmpty(rec.AvailableFrom)
	a.AvailableTo = isoDateOrEmpty(rec.AvailableTo)

	return a
}

// isoDateOrEmpty returns the YYYY-MM-DD prefix of s, or "" when s does not
// start with a calendar date.
func isoDateOrEmpty(s string) string {
	if len(s) < len(time.DateOnly) {
		return ""
	}
	d := s[:len(time.DateOnly)]
	if _, err := time.Parse(time.DateOnly, d); err != nil {
		return ""
	}
	return d
}

// FormatDuration renders d as "<H>h <M>m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d / time.Minute)
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

// ParseISODuration parses the day/hour/minute/second subset of ISO-8601
// durations the provider emits.
func ParseISODuration(s string) (time.Duration, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	m := isoDurationRe.FindStringSubmatch(norm)
	if m == nil || norm == "P" || norm == "PT" {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", s)
	}

	var d time.Duration
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO-8601 duration %q: %w", s, err)
		}
		d += time.Duration(v * float64(unit))
	}
	return d, nil
}

// ParseLooseDuration parses ISO-8601 durations and free-form text such as
// "2 hours", "1 hour 30 minutes" or "90 min".
func ParseLooseDuration(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if d, err := ParseISODuration(s); err == nil {
		return d, true
	}

	matches := looseDurationRe.FindAllStringSubmatch(strings.ToLower(s), -1)
	if len(matches) == 0 {
		return 0, false
	}

	var d time.Duration
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		var unit time.Duration
		switch m[2][0] {
		case 'd':
			unit = 24 * time.Hour
		case 'h':
			unit = time.Hour
		default:
			unit = time.Minute
		}
		d += time.Duration(v * float64(unit))
	}
	return d, true
}

func parseProviderTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing time")
	}
	if t, err := time.Parse(providerTimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", s)
	}
	return t, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
