// Package normalizer reconciles stored toilet documents, in either the
// legacy flat shape or the current nested shape, into the canonical
// models.Toilet. Storage is never migrated; the read path always goes
// through Normalize.
package normalizer

import (
	"looview/internal/toilet/models"
	"looview/internal/toilet/registry"
	"looview/pkg/domain"
)

// Normalizer carries the registries that define full flag coverage.
type Normalizer struct {
	features    registry.Registry
	toiletTypes registry.Registry
}

// New creates a Normalizer over the feature and toilet-type registries.
func New(features, toiletTypes registry.Registry) *Normalizer {
	return &Normalizer{features: features, toiletTypes: toiletTypes}
}

// Normalize maps rec to a canonical Toilet. Each field takes the first
// present source: nested value, then legacy value, then a default.
// Normalize(ToRecord(Normalize(rec))) equals Normalize(rec).
func (n *Normalizer) Normalize(rec models.StoredRecord) models.Toilet {
	t := models.Toilet{
		ID:          domain.ToiletID(rec.ID),
		Name:        rec.Name,
		Address:     rec.Address,
		CreatedBy:   domain.UserID(rec.CreatedBy),
		CreatedAt:   rec.CreatedAt,
		ReviewCount: rec.ReviewCount,
		CountryCode: rec.CountryCode,
		CountryFlag: rec.CountryFlag,
		QuickTags:   copyStrings(rec.QuickTags),
	}

	switch {
	case rec.Location != nil:
		t.Location = *rec.Location
	case rec.Latitude != nil || rec.Longitude != nil:
		t.Location = models.Location{Latitude: deref(rec.Latitude), Longitude: deref(rec.Longitude)}
	}

	if rec.Features != nil {
		t.Features = cover(n.features, rec.Features)
	} else {
		t.Features = registry.ExpandFlags(n.features, rec.LegacyFeatures)
	}
	t.ToiletTypes = cover(n.toiletTypes, rec.ToiletTypes)

	switch {
	case len(rec.PhotoURLs) > 0:
		t.PhotoURLs = copyStrings(rec.PhotoURLs)
	case rec.PhotoURL != "":
		t.PhotoURLs = []string{rec.PhotoURL}
	default:
		t.PhotoURLs = []string{}
	}

	// A stored zero rating counts as absent, same as a missing one.
	switch {
	case rec.AverageRating != nil && *rec.AverageRating != 0:
		t.AverageRating = *rec.AverageRating
	case rec.Rating != nil:
		t.AverageRating = *rec.Rating
	}

	switch {
	case rec.LegacyReview != nil && *rec.LegacyReview != "":
		t.LegacyReview = *rec.LegacyReview
	case rec.Review != nil:
		t.LegacyReview = *rec.Review
	}

	if rec.AccessInfo != nil {
		t.AccessInfo = *rec.AccessInfo
	}
	if rec.Accessibility != nil {
		t.Accessibility = *rec.Accessibility
	} else {
		t.Accessibility = models.UnknownAccessibility()
	}

	if t.CountryFlag == "" {
		t.CountryFlag = models.CountryFlag(t.CountryCode)
	}
	return t
}

// NormalizeAll normalizes records preserving their order.
func (n *Normalizer) NormalizeAll(recs []models.StoredRecord) []models.Toilet {
	out := make([]models.Toilet, 0, len(recs))
	for _, r := range recs {
		out = append(out, n.Normalize(r))
	}
	return out
}

// ToRecord writes t in the current nested shape. Legacy fields are left
// empty.
func ToRecord(t models.Toilet) models.StoredRecord {
	loc := t.Location
	rating := t.AverageRating
	access := t.AccessInfo
	accessibility := t.Accessibility

	rec := models.StoredRecord{
		ID:            t.ID.String(),
		Name:          t.Name,
		Location:      &loc,
		Address:       t.Address,
		CreatedBy:     t.CreatedBy.String(),
		CreatedAt:     t.CreatedAt,
		AverageRating: &rating,
		Features:      copyFlags(t.Features),
		ToiletTypes:   copyFlags(t.ToiletTypes),
		AccessInfo:    &access,
		Accessibility: &accessibility,
		PhotoURLs:     copyStrings(t.PhotoURLs),
		ReviewCount:   t.ReviewCount,
		CountryCode:   t.CountryCode,
		CountryFlag:   t.CountryFlag,
		QuickTags:     copyStrings(t.QuickTags),
	}
	if t.LegacyReview != "" {
		review := t.LegacyReview
		rec.LegacyReview = &review
	}
	return rec
}

// cover projects flags onto the registry key set. Missing ids become
// false and ids the registry no longer knows are dropped.
func cover(r registry.Registry, flags map[string]bool) models.Flags {
	out := make(models.Flags, r.Len())
	for _, id := range r.IDs() {
		out[id] = flags[id]
	}
	return out
}

func copyFlags(f models.Flags) map[string]bool {
	if f == nil {
		return nil
	}
	out := make(map[string]bool, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func copyStrings(in []string) []string {
	return append([]string{}, in...)
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
