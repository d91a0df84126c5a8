package registry

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New("x", FeatureConfig{ID: "a"}, FeatureConfig{ID: "a"})
	require.Error(t, err)

	_, err = New("x", FeatureConfig{ID: ""})
	require.Error(t, err)

	r, err := New("x", FeatureConfig{ID: "a"}, FeatureConfig{ID: "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.IDs())
}

// TestExpandFlags_FullCoverage checks that for any registry and any subset
// selection the key set equals the registry's ids, true exactly for the
// selected ones.
func TestExpandFlags_FullCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		n := rng.Intn(12)
		entries := make([]FeatureConfig, n)
		for i := range entries {
			entries[i] = FeatureConfig{ID: fmt.Sprintf("f%d", i)}
		}
		reg := MustNew("prop", entries...)

		var selected []string
		want := map[string]bool{}
		for _, id := range reg.IDs() {
			if rng.Intn(2) == 0 {
				selected = append(selected, id)
				want[id] = true
			}
		}

		flags := ExpandFlags(reg, selected)
		require.True(t, Covers(reg, flags), "round %d", round)
		for _, id := range reg.IDs() {
			assert.Equal(t, want[id], flags[id], "round %d id %s", round, id)
		}
		assert.Equal(t, selected, nonNil(Selected(reg, flags)))
	}
}

func nonNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestExpandFlags_IgnoresUnknownIDs(t *testing.T) {
	flags := ExpandFlags(Features, []string{"hasSoap", "hasJacuzzi"})
	assert.True(t, Covers(Features, flags))
	assert.True(t, flags["hasSoap"])
	_, ok := flags["hasJacuzzi"]
	assert.False(t, ok)
}

func TestExpandFlags_EmptySelection(t *testing.T) {
	flags := ExpandFlags(ToiletTypes, nil)
	assert.Len(t, flags, ToiletTypes.Len())
	for _, v := range flags {
		assert.False(t, v)
	}
}

func TestCatalogues(t *testing.T) {
	assert.True(t, Features.Has("hasSoap"))
	assert.True(t, ToiletTypes.Has("public"))
	for _, tag := range QuickTags.Entries() {
		assert.True(t, QuickTagCategories.Has(tag.Category), tag.ID)
	}
	assert.Equal(t, []string{"yes", "no", "not_sure"}, AccessibilityOptions.IDs())
	assert.Equal(t, "constants.toiletFeatures.hasSoap.label", Features.LabelKey("hasSoap"))
}

func TestCoversRejectsExtraKeys(t *testing.T) {
	flags := ExpandFlags(ToiletTypes, nil)
	flags["extra"] = true
	assert.False(t, Covers(ToiletTypes, flags))
}
