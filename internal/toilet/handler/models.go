package handler

import (
	"strings"

	"looview/internal/geocoding"
	"looview/internal/locale"
	"looview/internal/toilet/models"
	"looview/internal/toilet/registry"
)

// ConfigEntry is a registry entry with its label resolved for the
// request locale.
type ConfigEntry struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category,omitempty"`
}

// ConfigResponse lists every registry so clients never hardcode keys.
type ConfigResponse struct {
	Locale               string          `json:"locale"`
	Locales              []string        `json:"locales"`
	Features             []ConfigEntry   `json:"features"`
	ToiletTypes          []ConfigEntry   `json:"toiletTypes"`
	QuickTags            []ConfigEntry   `json:"quickTags"`
	QuickTagCategories   []ConfigEntry   `json:"quickTagCategories"`
	LocationTypes        []ConfigEntry   `json:"locationTypes"`
	AccessibilityOptions []ConfigEntry   `json:"accessibilityOptions"`
	MapCenter            geocoding.Point `json:"mapCenter"`
	CountryCode          string          `json:"countryCode"`
}

type ListResponse struct {
	Toilets []models.Toilet `json:"toilets"`
	Count   int             `json:"count"`
}

func localize(tr locale.Translator, r registry.Registry) []ConfigEntry {
	out := make([]ConfigEntry, 0, r.Len())
	for _, e := range r.Entries() {
		out = append(out, ConfigEntry{
			ID:          e.ID,
			Label:       translated(tr, r.LabelKey(e.ID), e.Label),
			Description: translated(tr, r.DescriptionKey(e.ID), e.Description),
			Icon:        e.Icon,
			Category:    e.Category,
		})
	}
	return out
}

// translated falls back to the registry's English text when the catalog
// has no entry (T returns the key itself).
func translated(tr locale.Translator, key, fallback string) string {
	if msg := tr.T(key, nil); msg != key {
		return msg
	}
	return fallback
}

// MergeDraft fills the submission from the form session: the marker
// always wins for coordinates, the draft address and photo only fill
// blanks.
func MergeDraft(raw models.RawSubmission, st geocoding.State) models.RawSubmission {
	raw.Latitude = st.Marker.Lat
	raw.Longitude = st.Marker.Lng
	if strings.TrimSpace(raw.Address) == "" {
		raw.Address = st.Address
	}
	if raw.Photo == "" && st.Photo != nil {
		raw.Photo = st.Photo.Ref
	}
	return raw
}
