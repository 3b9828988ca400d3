package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FacetAll is the facet value meaning "no constraint".
const FacetAll = "all"

// IsAll reports whether a facet selection places no constraint.
// The empty string is treated the same as "all".
func IsAll(v string) bool {
	return v == "" || v == FacetAll
}

// FilterSpec holds the search text and facet selections applied to a page.
type FilterSpec struct {
	Search string            `json:"search,omitempty"`
	Facets map[string]string `json:"facets,omitempty"`
}

// IsZero reports whether the spec constrains nothing.
func (f FilterSpec) IsZero() bool {
	if f.Search != "" {
		return false
	}
	for _, v := range f.Facets {
		if !IsAll(v) {
			return false
		}
	}
	return true
}

// Facet returns the selection for a facet, or FacetAll.
func (f FilterSpec) Facet(name string) string {
	if v, ok := f.Facets[name]; ok && !IsAll(v) {
		return v
	}
	return FacetAll
}

// Clone returns a deep copy so callers can change selections without
// touching a spec another page or saved view still holds.
func (f FilterSpec) Clone() FilterSpec {
	out := FilterSpec{Search: f.Search, Facets: make(map[string]string, len(f.Facets))}
	for k, v := range f.Facets {
		out.Facets[k] = v
	}
	return out
}

// WithFacet returns a copy of f with one facet selection changed.
func (f FilterSpec) WithFacet(name, value string) FilterSpec {
	out := f.Clone()
	out.Facets[name] = value
	return out
}

// WithSearch returns a copy of f with new search text.
func (f FilterSpec) WithSearch(search string) FilterSpec {
	out := f.Clone()
	out.Search = search
	return out
}

// String renders the active constraints, e.g. `'node' status=resolved`.
func (f FilterSpec) String() string {
	var parts []string
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("'%s'", f.Search))
	}
	names := make([]string, 0, len(f.Facets))
	for k, v := range f.Facets {
		if !IsAll(v) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	for _, k := range names {
		parts = append(parts, k+"="+f.Facets[k])
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// SavedView is a FilterSpec saved under a name for one page.
type SavedView struct {
	ID        int64
	Page      string
	Name      string
	Spec      FilterSpec
	UpdatedAt time.Time
}
