// Package builder expands a validated submission into a canonical Toilet.
// It performs no I/O: persisting the result and releasing the uploaded
// photo reference are the caller's job.
package builder

import (
	"fmt"
	"strings"
	"time"

	"looview/internal/locale"
	"looview/internal/toilet/models"
	"looview/internal/toilet/registry"
	"looview/pkg/domain"
)

// DefaultPlaceholderURL is formatted with the new toilet id.
const DefaultPlaceholderURL = "https://picsum.photos/seed/newloo%s/400/300"

// Builder holds the registries and environment needed to mint entities.
type Builder struct {
	features    registry.Registry
	toiletTypes registry.Registry
	countryCode string
	placeholder string
	now         func() time.Time
	newID       func() domain.ToiletID
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(gen func() domain.ToiletID) Option {
	return func(b *Builder) { b.newID = gen }
}

// WithCountryCode sets the ISO 3166-1 alpha-2 code stamped on new toilets.
func WithCountryCode(code string) Option {
	return func(b *Builder) { b.countryCode = strings.ToUpper(strings.TrimSpace(code)) }
}

// WithPlaceholderURL sets the fmt template used when no photo is supplied.
func WithPlaceholderURL(tmpl string) Option {
	return func(b *Builder) { b.placeholder = tmpl }
}

// New creates a Builder over the given feature and toilet-type registries.
func New(features, toiletTypes registry.Registry, opts ...Option) *Builder {
	b := &Builder{
		features:    features,
		toiletTypes: toiletTypes,
		countryCode: "GB",
		placeholder: DefaultPlaceholderURL,
		now:         time.Now,
		newID:       domain.NewToiletID,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build mints a new Toilet from sub, owned by createdBy. tr renders the
// derived address when the user left it blank.
func (b *Builder) Build(sub models.Submission, createdBy domain.UserID, tr locale.Translator) models.Toilet {
	id := b.newID()

	address := sub.Address
	if address == "" {
		address = tr.T("addToilet.defaultAddress", map[string]any{
			"lat": fmt.Sprintf("%.3f", sub.Location.Latitude),
			"lng": fmt.Sprintf("%.3f", sub.Location.Longitude),
		})
	}

	photo := sub.PhotoRef
	if photo == "" {
		photo = b.PlaceholderURL(id)
	}

	return models.Toilet{
		ID:            id,
		Name:          sub.Name,
		Location:      sub.Location,
		Address:       address,
		CreatedBy:     createdBy,
		CreatedAt:     b.now().UTC(),
		AverageRating: sub.Rating,
		Features:      registry.ExpandFlags(b.features, sub.Features),
		AccessInfo:    models.AccessInfo{LocationType: sub.LocationType},
		Accessibility: BuildAccessibility(sub),
		ToiletTypes:   registry.ExpandFlags(b.toiletTypes, sub.SelectedToiletTypes),
		PhotoURLs:     []string{photo},
		ReviewCount:   1,
		CountryCode:   b.countryCode,
		CountryFlag:   models.CountryFlag(b.countryCode),
		LegacyReview:  sub.Review,
		QuickTags:     append([]string{}, sub.QuickTags...),
	}
}

// PlaceholderURL is the deterministic stand-in photo for id.
func (b *Builder) PlaceholderURL(id domain.ToiletID) string {
	return fmt.Sprintf(b.placeholder, id)
}

// BuildAccessibility copies only the fields that belong to the chosen
// variant; everything else in the submission is dropped.
func BuildAccessibility(sub models.Submission) models.Accessibility {
	switch sub.WheelchairAccessible {
	case models.WheelchairYes:
		return models.Accessible(models.AccessibleDetails{
			ThresholdFree:   sub.ThresholdFree,
			WheelchairSpace: sub.WheelchairSpace,
			GrabBars:        sub.GrabBars,
			AutomaticDoor:   sub.AutomaticDoor,
		})
	case models.WheelchairNo:
		return models.Inaccessible(sub.InaccessibleReason)
	default:
		return models.UnknownAccessibility()
	}
}
