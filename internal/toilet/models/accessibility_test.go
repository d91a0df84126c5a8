package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessibilityVariants(t *testing.T) {
	t.Run("yes carries details only", func(t *testing.T) {
		a := Accessible(AccessibleDetails{ThresholdFree: true, AutomaticDoor: true})
		assert.Equal(t, WheelchairYes, a.Status())
		d, ok := a.Details()
		assert.True(t, ok)
		assert.True(t, d.ThresholdFree)
		_, ok = a.InaccessibleReason()
		assert.False(t, ok)
	})

	t.Run("no carries reason only", func(t *testing.T) {
		a := Inaccessible("three steps at the door")
		assert.Equal(t, WheelchairNo, a.Status())
		_, ok := a.Details()
		assert.False(t, ok)
		r, ok := a.InaccessibleReason()
		assert.True(t, ok)
		assert.Equal(t, "three steps at the door", r)
	})

	t.Run("zero value is not_sure", func(t *testing.T) {
		var a Accessibility
		assert.Equal(t, WheelchairNotSure, a.Status())
		assert.True(t, a.Equal(UnknownAccessibility()))
	})
}

func TestAccessibilityJSON(t *testing.T) {
	t.Run("yes marshals four booleans", func(t *testing.T) {
		raw, err := json.Marshal(Accessible(AccessibleDetails{ThresholdFree: true, AutomaticDoor: true}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"isWheelchairAccessible":"yes","thresholdFree":true,"wheelchairSpace":false,"grabBars":false,"automaticDoor":true}`, string(raw))
	})

	t.Run("not_sure marshals no sub-fields", func(t *testing.T) {
		raw, err := json.Marshal(UnknownAccessibility())
		require.NoError(t, err)
		assert.JSONEq(t, `{"isWheelchairAccessible":"not_sure"}`, string(raw))
	})

	t.Run("unmarshal drops fields foreign to the variant", func(t *testing.T) {
		var a Accessibility
		require.NoError(t, json.Unmarshal([]byte(`{"isWheelchairAccessible":"not_sure","thresholdFree":true,"inaccessibleReason":"x"}`), &a))
		assert.True(t, a.Equal(UnknownAccessibility()))

		require.NoError(t, json.Unmarshal([]byte(`{"isWheelchairAccessible":"no","grabBars":true,"inaccessibleReason":"narrow"}`), &a))
		assert.True(t, a.Equal(Inaccessible("narrow")))
	})

	t.Run("round trip", func(t *testing.T) {
		for _, in := range []Accessibility{
			Accessible(AccessibleDetails{GrabBars: true}),
			Inaccessible(""),
			UnknownAccessibility(),
		} {
			raw, err := json.Marshal(in)
			require.NoError(t, err)
			var out Accessibility
			require.NoError(t, json.Unmarshal(raw, &out))
			assert.True(t, in.Equal(out), string(raw))
		}
	})
}

func TestParseWheelchairAccess(t *testing.T) {
	for _, ok := range []string{"yes", "no", "not_sure"} {
		_, err := ParseWheelchairAccess(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"", "Yes", "maybe"} {
		_, err := ParseWheelchairAccess(bad)
		assert.Error(t, err, bad)
	}
}
