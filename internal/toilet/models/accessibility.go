package models

import (
	"encoding/json"
	"fmt"
)

// WheelchairAccess is the driving field of the accessibility variant.
type WheelchairAccess string

const (
	WheelchairYes     WheelchairAccess = "yes"
	WheelchairNo      WheelchairAccess = "no"
	WheelchairNotSure WheelchairAccess = "not_sure"
)

// ParseWheelchairAccess accepts exactly "yes", "no" or "not_sure".
func ParseWheelchairAccess(s string) (WheelchairAccess, error) {
	switch WheelchairAccess(s) {
	case WheelchairYes, WheelchairNo, WheelchairNotSure:
		return WheelchairAccess(s), nil
	}
	return "", fmt.Errorf("invalid wheelchair access %q", s)
}

// AccessibleDetails are only meaningful for wheelchair accessible toilets.
type AccessibleDetails struct {
	ThresholdFree   bool
	WheelchairSpace bool
	GrabBars        bool
	AutomaticDoor   bool
}

// Accessibility is a discriminated variant keyed by WheelchairAccess:
//
//	yes      -> AccessibleDetails, no reason
//	no       -> inaccessible reason, no details
//	not_sure -> neither
//
// The fields are unexported so an invalid combination cannot be built;
// use Accessible, Inaccessible or UnknownAccessibility. The zero value is
// the not_sure variant.
type Accessibility struct {
	status  WheelchairAccess
	details *AccessibleDetails
	reason  *string
}

// Accessible builds the "yes" variant.
func Accessible(d AccessibleDetails) Accessibility {
	return Accessibility{status: WheelchairYes, details: &d}
}

// Inaccessible builds the "no" variant.
func Inaccessible(reason string) Accessibility {
	return Accessibility{status: WheelchairNo, reason: &reason}
}

// UnknownAccessibility builds the "not_sure" variant.
func UnknownAccessibility() Accessibility {
	return Accessibility{status: WheelchairNotSure}
}

// Status returns the driving value; the zero variant reports not_sure.
func (a Accessibility) Status() WheelchairAccess {
	if a.status == "" {
		return WheelchairNotSure
	}
	return a.status
}

// Details returns the sub-fields of the "yes" variant.
func (a Accessibility) Details() (AccessibleDetails, bool) {
	if a.details == nil {
		return AccessibleDetails{}, false
	}
	return *a.details, true
}

// InaccessibleReason returns the reason of the "no" variant.
func (a Accessibility) InaccessibleReason() (string, bool) {
	if a.reason == nil {
		return "", false
	}
	return *a.reason, true
}

// Equal compares two variants by value.
func (a Accessibility) Equal(b Accessibility) bool {
	if a.Status() != b.Status() {
		return false
	}
	ad, aok := a.Details()
	bd, bok := b.Details()
	if aok != bok || ad != bd {
		return false
	}
	ar, aok := a.InaccessibleReason()
	br, bok := b.InaccessibleReason()
	return aok == bok && ar == br
}

// accessibilityWire is the flat persisted / wire shape.
type accessibilityWire struct {
	IsWheelchairAccessible WheelchairAccess `json:"isWheelchairAccessible"`
	ThresholdFree          *bool            `json:"thresholdFree,omitempty"`
	WheelchairSpace        *bool            `json:"wheelchairSpace,omitempty"`
	GrabBars               *bool            `json:"grabBars,omitempty"`
	AutomaticDoor          *bool            `json:"automaticDoor,omitempty"`
	InaccessibleReason     *string          `json:"inaccessibleReason,omitempty"`
}

func (a Accessibility) MarshalJSON() ([]byte, error) {
	w := accessibilityWire{IsWheelchairAccessible: a.Status()}
	if d, ok := a.Details(); ok {
		w.ThresholdFree = &d.ThresholdFree
		w.WheelchairSpace = &d.WheelchairSpace
		w.GrabBars = &d.GrabBars
		w.AutomaticDoor = &d.AutomaticDoor
	}
	if r, ok := a.InaccessibleReason(); ok {
		w.InaccessibleReason = &r
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the flat shape and keeps only the fields that belong
// to the variant named by isWheelchairAccessible. Unknown or missing
// values decode as not_sure.
func (a *Accessibility) UnmarshalJSON(data []byte) error {
	var w accessibilityWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.IsWheelchairAccessible {
	case WheelchairYes:
		*a = Accessible(AccessibleDetails{
			ThresholdFree:   deref(w.ThresholdFree),
			WheelchairSpace: deref(w.WheelchairSpace),
			GrabBars:        deref(w.GrabBars),
			AutomaticDoor:   deref(w.AutomaticDoor),
		})
	case WheelchairNo:
		reason := ""
		if w.InaccessibleReason != nil {
			reason = *w.InaccessibleReason
		}
		*a = Inaccessible(reason)
	default:
		*a = UnknownAccessibility()
	}
	return nil
}

func deref(b *bool) bool {
	return b != nil && *b
}
