package models

import "time"

// StoredRecord is the loosely-typed persisted document. It accepts both the
// current nested shape and the legacy flat shape (top-level latitude,
// longitude, photoUrl, rating, review and legacyFeatures). Only the record
// normalizer reads this type; everything downstream sees Toilet.
type StoredRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Location  *Location `json:"location,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`

	Address   string    `json:"address,omitempty"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	AverageRating *float64 `json:"averageRating,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`

	Features       map[string]bool `json:"features,omitempty"`
	LegacyFeatures []string        `json:"legacyFeatures,omitempty"`
	ToiletTypes    map[string]bool `json:"toiletTypes,omitempty"`

	AccessInfo    *AccessInfo    `json:"accessInfo,omitempty"`
	Accessibility *Accessibility `json:"accessibility,omitempty"`

	PhotoURLs []string `json:"photoUrls,omitempty"`
	PhotoURL  string   `json:"photoUrl,omitempty"`

	ReviewCount  int      `json:"reviewCount,omitempty"`
	CountryCode  string   `json:"countryCode,omitempty"`
	CountryFlag  string   `json:"countryFlag,omitempty"`
	LegacyReview *string  `json:"legacyReview,omitempty"`
	Review       *string  `json:"review,omitempty"`
	QuickTags    []string `json:"quickTags,omitempty"`
}
