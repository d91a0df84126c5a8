// Package registry is the static catalogue of toilet features, toilet-type
// classifications, quick tags and location types.
//
// Identifiers defined here are the single source of truth for which boolean
// flags exist on a toilet. Consumers never hardcode a key: every flags
// mapping is derived with ExpandFlags so that adding or removing an entry
// reshapes Toilet.Features / Toilet.ToiletTypes everywhere.
package registry

import (
	"fmt"

	pstrings "looview/pkg/platform/strings"
)

// FeatureConfig describes one recognised identifier. Label and Description
// are English fallbacks; clients should resolve the localized text with
// LabelKey / DescriptionKey.
type FeatureConfig struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Registry is an ordered sequence of configs. Order is insertion order and
// only matters for display.
type Registry struct {
	namespace string
	entries   []FeatureConfig
}

// New builds a registry, rejecting empty or duplicate identifiers.
func New(namespace string, entries ...FeatureConfig) (Registry, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return Registry{}, fmt.Errorf("registry %s: empty id", namespace)
		}
		if _, dup := seen[e.ID]; dup {
			return Registry{}, fmt.Errorf("registry %s: duplicate id %q", namespace, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return Registry{namespace: namespace, entries: append([]FeatureConfig(nil), entries...)}, nil
}

// MustNew is New for package-level tables.
func MustNew(namespace string, entries ...FeatureConfig) Registry {
	r, err := New(namespace, entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Namespace is the localization namespace for entry labels.
func (r Registry) Namespace() string { return r.namespace }

// Entries returns a copy of the configs in registry order.
func (r Registry) Entries() []FeatureConfig {
	return append([]FeatureConfig(nil), r.entries...)
}

// IDs returns the identifiers in registry order.
func (r Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// Len is the number of registered identifiers.
func (r Registry) Len() int { return len(r.entries) }

// Has reports whether id is registered.
func (r Registry) Has(id string) bool {
	for _, e := range r.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// LabelKey is the localization key for an entry's label.
func (r Registry) LabelKey(id string) string {
	return "constants." + r.namespace + "." + id + ".label"
}

// DescriptionKey is the localization key for an entry's description.
func (r Registry) DescriptionKey(id string) string {
	return "constants." + r.namespace + "." + id + ".description"
}

// ExpandFlags folds the registry into a full-coverage mapping: every
// registered id is a key, true iff it appears in selected. Unknown ids in
// selected are ignored.
func ExpandFlags(r Registry, selected []string) map[string]bool {
	chosen := pstrings.Set(selected)
	flags := make(map[string]bool, len(r.entries))
	for _, e := range r.entries {
		_, ok := chosen[e.ID]
		flags[e.ID] = ok
	}
	return flags
}

// Selected is the inverse of ExpandFlags: the ids set to true, in registry
// order.
func Selected(r Registry, flags map[string]bool) []string {
	ids := make([]string, 0, len(flags))
	for _, e := range r.entries {
		if flags[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Covers reports whether flags has exactly the registry's key set.
func Covers(r Registry, flags map[string]bool) bool {
	if len(flags) != len(r.entries) {
		return false
	}
	for _, e := range r.entries {
		if _, ok := flags[e.ID]; !ok {
			return false
		}
	}
	return true
}
