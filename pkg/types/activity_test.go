package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/travel-search/pkg/types"
)

func TestActivityResult_MatchesAny(t *testing.T) {
	t.Parallel()

	a := domain.ActivityResult{
		Name:        "Gothic Quarter food walk",
		Description: "Tapas tasting",
		Category:    "TOUR",
		Tags:        []string{"nightlife"},
	}

	tests := []struct {
		name        string
		preferences []string
		want        bool
	}{
		{name: "no preferences", preferences: nil, want: true},
		{name: "only blank preferences", preferences: []string{" ", ""}, want: true},
		{name: "blank plus miss", preferences: []string{" ", "museum"}, want: false},
		{name: "tag match", preferences: []string{"NightLife"}, want: true},
		{name: "description match", preferences: []string{"museum", " tapas "}, want: true},
		{name: "no match", preferences: []string{"beach"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, a.MatchesAny(tt.preferences))
		})
	}
}

func TestActivityResult_AvailableDuring(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		from, to   string
		start, end string
		want       bool
	}{
		{name: "no availability data", start: "2026-01-01", end: "2026-01-02", want: true},
		{name: "no window", from: "2026-06-01", to: "2026-08-31", want: true},
		{name: "overlap", from: "2026-06-01", to: "2026-08-31", start: "2026-08-30", end: "2026-09-05", want: true},
		{name: "ends before window", from: "2026-06-01", to: "2026-08-31", start: "2026-09-01", end: "2026-09-05", want: false},
		{name: "starts after window", from: "2026-10-01", start: "2026-09-01", end: "2026-09-30", want: false},
		{name: "same day bounds", from: "2026-09-30", to: "2026-09-30", start: "2026-09-30", end: "2026-09-30", want: true},
		{name: "open ended start", to: "2026-08-31", start: "2026-09-01", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := domain.ActivityResult{AvailableFrom: tt.from, AvailableTo: tt.to}
			assert.Equal(t, tt.want, a.AvailableDuring(tt.start, tt.end))
		})
	}
}
