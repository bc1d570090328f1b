package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/travel-search/internal/api/client"
	domain "github.com/donaldgifford/travel-search/pkg/types"
)

const timeLayout = "2006-01-02 15:04"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// render prints a search response as JSON or through printTable. A failed
// search becomes a command error after its output is shown.
func render[T any](resp *domain.ServiceResponse[[]T], printTable func(io.Writer, []T) error) error {
	if jsonOutput() {
		if err := outputJSON(resp); err != nil {
			return err
		}
	} else {
		for _, w := range resp.Warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
		if resp.Success {
			if err := printTable(os.Stdout, resp.Data); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%d results in %dms\n", len(resp.Data), resp.ElapsedMS)
		}
	}

	if !resp.Success {
		return errors.New(resp.Error)
	}
	return nil
}

func printFlightsTable(w io.Writer, flights []domain.FlightResult) error {
	tw := newTabWriter(w)
	tw.writef("ID\tAIRLINE\tROUTE\tDEPART\tARRIVE\tDURATION\tSTOPS\tPRICE\n")
	for i := range flights {
		f := &flights[i]
		route := f.Origin + "-" + f.Destination
		if f.Return != nil {
			route += " (RT)"
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%d\t%.2f %s\n",
			f.ID,
			truncate(f.AirlineName, 24),
			route,
			f.DepartureTime.Format(timeLayout),
			f.ArrivalTime.Format(timeLayout),
			f.Duration,
			f.Stops,
			f.Price,
			f.Currency,
		)
	}
	return tw.finish()
}

func printHotelsTable(w io.Writer, hotels []domain.HotelResult) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tSTARS\tDISTANCE\tNIGHTS\tPER NIGHT\tTOTAL\tAMENITIES\n")
	for i := range hotels {
		h := &hotels[i]
		stars := "-"
		if h.Rating > 0 {
			stars = fmt.Sprintf("%d", h.Rating)
		}
		distance := "-"
		if h.DistanceKM != nil {
			distance = fmt.Sprintf("%.1f km", *h.DistanceKM)
		}
		tw.writef("%s\t%s\t%s\t%s\t%d\t%.2f\t%.2f %s\t%s\n",
			h.HotelID,
			truncate(h.Name, 32),
			stars,
			distance,
			h.Nights,
			h.PricePerNight,
			h.Price.Total,
			h.Price.Currency,
			truncate(strings.Join(h.Amenities, ","), 30),
		)
	}
	return tw.finish()
}

func printActivitiesTable(w io.Writer, activities []domain.ActivityResult) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSOURCE\tNAME\tCATEGORY\tRATING\tDURATION\tPRICE\n")
	for i := range activities {
		a := &activities[i]
		rating := "-"
		if a.Rating != nil {
			rating = fmt.Sprintf("%.1f", *a.Rating)
		}
		duration := a.Duration
		if duration == "" {
			duration = "-"
		}
		price := "-"
		if a.Price > 0 {
			price = fmt.Sprintf("%.2f %s", a.Price, a.Currency)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			a.Source,
			truncate(a.Name, 40),
			a.Category,
			rating,
			duration,
			price,
		)
	}
	return tw.finish()
}

func printQuota(q *apiclient.QuotaStatus) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Environment:\t%s\n", q.Environment)
	tw.writef("Min Delay:\t%dms\n", q.MinDelayMS)
	tw.writef("Window Requests:\t%d\n", q.WindowRequests)
	tw.writef("Total Requests:\t%d\n", q.TotalRequests)
	if q.LastRequestAt != nil {
		tw.writef("Last Request:\t%s\n", q.LastRequestAt.Format("2006-01-02 15:04:05"))
	}
	tw.writef("Token Valid:\t%v\n", q.TokenValid)
	if q.TokenExpiresAt != nil {
		tw.writef("Token Expires:\t%s\n", q.TokenExpiresAt.Format("2006-01-02 15:04:05"))
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
