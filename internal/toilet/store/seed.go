package store

import (
	"time"

	"looview/internal/toilet/models"
)

// DemoRecords returns a newest-first mix of current and legacy documents
// for local development.
func DemoRecords(now time.Time) []models.StoredRecord {
	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }
	accessible := models.Accessible(models.AccessibleDetails{ThresholdFree: true, GrabBars: true, WheelchairSpace: true})
	inaccessible := models.Inaccessible("Steep stairs down to the basement")

	return []models.StoredRecord{
		{
			ID:            "demo-kings-cross",
			Name:          "King's Cross Station",
			Location:      &models.Location{Latitude: 51.5308, Longitude: -0.1238},
			Address:       "Euston Rd, London N1 9AL",
			CreatedBy:     "demo",
			CreatedAt:     now.Add(-2 * time.Hour),
			AverageRating: f(4.2),
			Features:      map[string]bool{"hasSoap": true, "hasToiletPaper": true, "hasHandDryer": true, "hasBabyChanging": true},
			ToiletTypes:   map[string]bool{"public": true, "paid": true},
			AccessInfo:    &models.AccessInfo{LocationType: "train_station"},
			Accessibility: &accessible,
			PhotoURLs:     []string{"https://picsum.photos/seed/kingscross/400/300"},
			ReviewCount:   12,
			CountryCode:   "GB",
			QuickTags:     []string{"spotless", "goodLighting"},
		},
		{
			ID:            "demo-hyde-park",
			Name:          "Hyde Park Lido",
			Location:      &models.Location{Latitude: 51.5055, Longitude: -0.1652},
			Address:       "Serpentine Rd, London W2 2UH",
			CreatedBy:     "demo",
			CreatedAt:     now.Add(-26 * time.Hour),
			AverageRating: f(1),
			Features:      map[string]bool{"isFree": true},
			ToiletTypes:   map[string]bool{"public": true},
			AccessInfo:    &models.AccessInfo{LocationType: "park"},
			Accessibility: &inaccessible,
			ReviewCount:   4,
			CountryCode:   "GB",
			QuickTags:     []string{"smelly", "needsCleaning"},
		},
		{
			ID:             "demo-borough-market",
			Name:           "Borough Market",
			Latitude:       f(51.5055),
			Longitude:      f(-0.0910),
			Address:        "8 Southwark St, London SE1 1TL",
			CreatedBy:      "demo",
			CreatedAt:      now.Add(-72 * time.Hour),
			Rating:         f(3),
			Review:         s("Busy at lunchtime but clean enough."),
			PhotoURL:       "https://picsum.photos/seed/borough/400/300",
			LegacyFeatures: []string{"hasSoap", "hasPaperTowels"},
			ReviewCount:    2,
			CountryCode:    "GB",
		},
		{
			ID:             "demo-dam-square",
			Name:           "Dam Square Urinal",
			Latitude:       f(52.3731),
			Longitude:      f(4.8926),
			CreatedBy:      "demo",
			CreatedAt:      now.Add(-240 * time.Hour),
			Rating:         f(2),
			LegacyFeatures: []string{"isFree"},
			ReviewCount:    1,
			CountryCode:    "NL",
		},
	}
}
