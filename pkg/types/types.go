// Package domain defines the core search types shared by the provider
// client, the search services and the HTTP API.
package domain

import (
	"strings"
)

// DateLayout is the calendar date format used by search requests.
const DateLayout = "2006-01-02"

// SortOrder is the direction of a result sort.
type SortOrder string

// Sort order constants.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Descending reports whether the order is descending. Anything other than
// "desc" sorts ascending.
func (o SortOrder) Descending() bool {
	return strings.EqualFold(string(o), string(SortDesc))
}

// ServiceResponse is the uniform envelope every search service returns.
// Callers branch on Success; services never return errors.
type ServiceResponse[T any] struct {
	Success   bool     `json:"success"`
	Data      T        `json:"data"`
	Error     string   `json:"error,omitempty"`
	ElapsedMS int64    `json:"elapsed_ms"`
	Partial   bool     `json:"partial,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Location is a geographic point with optional address details.
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Address     string  `json:"address,omitempty"`
	CityName    string  `json:"city_name,omitempty"`
	PostalCode  string  `json:"postal_code,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
}

// PriceRange bounds a price filter. Zero values mean unbounded.
type PriceRange struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// Contains reports whether price falls within the range.
func (r PriceRange) Contains(price float64) bool {
	if r.Min > 0 && price < r.Min {
		return false
	}
	if r.Max > 0 && price > r.Max {
		return false
	}
	return true
}

func normalizeCodes(codes []string) map[string]struct{} {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}
