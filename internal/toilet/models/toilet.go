package models

import (
	"time"

	"looview/pkg/domain"
)

// Location is a WGS84 coordinate.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is within WGS84 bounds.
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// AccessInfo describes where the toilet is situated. LocationType is an
// open enumeration (see registry.LocationTypes).
type AccessInfo struct {
	LocationType string `json:"locationType,omitempty"`
}

// Flags is a full-coverage mapping from registry id to boolean.
type Flags map[string]bool

// Toilet is the canonical entity used throughout the read path.
//
// Invariants:
//   - Location is within WGS84 bounds
//   - AverageRating is within [1,5] once any rating exists
//   - Features and ToiletTypes contain exactly the registry key sets
//   - ID is unique and never changes after creation
type Toilet struct {
	ID            domain.ToiletID `json:"id"`
	Name          string          `json:"name"`
	Location      Location        `json:"location"`
	Address       string          `json:"address"`
	CreatedBy     domain.UserID   `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
	AverageRating float64         `json:"averageRating"`
	Features      Flags           `json:"features"`
	AccessInfo    AccessInfo      `json:"accessInfo"`
	Accessibility Accessibility   `json:"accessibility"`
	ToiletTypes   Flags           `json:"toiletTypes"`
	PhotoURLs     []string        `json:"photoUrls"`
	ReviewCount   int             `json:"reviewCount"`
	CountryCode   string          `json:"countryCode"`
	CountryFlag   string          `json:"countryFlag"`
	LegacyReview  string          `json:"legacyReview,omitempty"`
	QuickTags     []string        `json:"quickTags"`
}

// HasPhotos reports whether at least one photo URL is attached.
func (t Toilet) HasPhotos() bool {
	return len(t.PhotoURLs) > 0
}
