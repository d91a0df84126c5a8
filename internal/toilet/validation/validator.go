// Package validation checks a raw add-toilet form payload and turns it
// into a typed models.Submission. Every violated field is reported at
// once; the first failure does not stop the remaining checks.
package validation

import (
	"encoding/json"
	"math"
	"strings"
	"unicode/utf8"

	"looview/internal/locale"
	"looview/internal/toilet/models"
	platformstrings "looview/pkg/platform/strings"
)

const (
	NameMinLen               = 3
	NameMaxLen               = 100
	AddressMaxLen            = 200
	InaccessibleReasonMaxLen = 500
	ReviewMaxLen             = 500
	RatingMin                = 1
	RatingMax                = 5
)

const keyPrefix = "addToilet.validation."

// Validate checks raw and returns either a typed submission or Errors.
// Messages are rendered through tr so callers never see bare keys unless
// the catalog is missing them.
func Validate(raw models.RawSubmission, tr locale.Translator) (*models.Submission, error) {
	errs := Errors{}
	add := func(field, key string, args map[string]any) {
		errs.Add(field, tr.T(keyPrefix+key, args))
	}

	name := strings.TrimSpace(raw.Name)
	switch n := utf8.RuneCountInString(name); {
	case n < NameMinLen:
		add("name", "nameMin", map[string]any{"min": NameMinLen})
	case n > NameMaxLen:
		add("name", "nameMax", map[string]any{"max": NameMaxLen})
	}

	lat, ok := number(raw.Latitude)
	switch {
	case !ok:
		add("latitude", "latitudeRequired", nil)
	case lat < -90 || lat > 90:
		add("latitude", "latitudeRange", nil)
	}

	lng, ok := number(raw.Longitude)
	switch {
	case !ok:
		add("longitude", "longitudeRequired", nil)
	case lng < -180 || lng > 180:
		add("longitude", "longitudeRange", nil)
	}

	address := strings.TrimSpace(raw.Address)
	if utf8.RuneCountInString(address) > AddressMaxLen {
		add("address", "addressMax", map[string]any{"max": AddressMaxLen})
	}

	access, err := models.ParseWheelchairAccess(raw.WheelchairAccessible)
	if err != nil {
		add("wheelchairAccessible", "wheelchairAccessible", nil)
	}

	reason := strings.TrimSpace(raw.InaccessibleReason)
	if utf8.RuneCountInString(reason) > InaccessibleReasonMaxLen {
		add("inaccessibleReason", "inaccessibleReasonMax", map[string]any{"max": InaccessibleReasonMaxLen})
	}

	rating, ok := number(raw.Rating)
	switch {
	case !ok:
		add("rating", "ratingRequired", nil)
	case rating < RatingMin || rating > RatingMax:
		add("rating", "ratingMinMax", map[string]any{"min": RatingMin, "max": RatingMax})
	}

	review := strings.TrimSpace(raw.Review)
	if utf8.RuneCountInString(review) > ReviewMaxLen {
		add("review", "reviewMax", map[string]any{"max": ReviewMaxLen})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &models.Submission{
		Name:                 name,
		Location:             models.Location{Latitude: lat, Longitude: lng},
		Address:              address,
		LocationType:         strings.TrimSpace(raw.LocationType),
		WheelchairAccessible: access,
		ThresholdFree:        deref(raw.ThresholdFree),
		WheelchairSpace:      deref(raw.WheelchairSpace),
		GrabBars:             deref(raw.GrabBars),
		AutomaticDoor:        deref(raw.AutomaticDoor),
		InaccessibleReason:   reason,
		SelectedToiletTypes:  ids(raw.SelectedToiletTypes),
		Features:             ids(raw.Features),
		PhotoRef:             strings.TrimSpace(raw.Photo),
		Rating:               rating,
		Review:               review,
		QuickTags:            ids(raw.QuickTags),
	}, nil
}

// number accepts only real JSON numbers. Numeric strings are rejected so
// that the typed contract holds end to end.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ids trims and dedupes an identifier list; absent lists become empty.
func ids(in []string) []string {
	return platformstrings.OrEmpty(platformstrings.DedupeAndTrim(in))
}

func deref(b *bool) bool {
	return b != nil && *b
}
