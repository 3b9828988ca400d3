package query

// query.go provides the generic search + facet filter and derived counts
// shared by every page. A page describes its records once with a Schema and
// then calls Filter/Count/Apply instead of re-deriving filter logic.

import (
	"strings"

	"github.com/aidmqan/mqan-console/internal/models"
)

// All is the facet sentinel meaning "no constraint on this facet".
const All = models.FacetAll

// Field reads one value from a record. ok is false when the record has no
// value for the field; a missing field never matches.
type Field[R any] func(r R) (value string, ok bool)

// SearchField is a designated free-text field.
type SearchField[R any] struct {
	Name string
	Get  Field[R]
}

// Facet is a closed-enumeration category field.
type Facet[R any] struct {
	Name   string
	Label  string
	Values []string
	Get    Field[R]
}

// Allows reports whether v is one of the facet's enumerated values. A facet
// declared without Values allows nothing.
func (f Facet[R]) Allows(v string) bool {
	for _, x := range f.Values {
		if x == v {
			return true
		}
	}
	return false
}

// Scope selects which sequence an Aggregate is computed over.
type Scope int

const (
	// ScopeAll counts the full record sequence (network-wide totals)
	ScopeAll Scope = iota
	// ScopeFiltered counts the current result set
	ScopeFiltered
)

// String returns the scope name used in JSON and exports.
func (s Scope) String() string {
	if s == ScopeFiltered {
		return "filtered"
	}
	return "all"
}

// Aggregate is a named count of records satisfying Pred.
type Aggregate[R any] struct {
	Name  string
	Scope Scope
	Pred  func(R) bool
}

// Schema describes how one page's records are searched, faceted and counted.
type Schema[R any] struct {
	Name       string
	Search     []SearchField[R]
	Facets     []Facet[R]
	Aggregates []Aggregate[R]
}

// Facet returns the facet with the given name.
func (s Schema[R]) Facet(name string) (Facet[R], bool) {
	for _, f := range s.Facets {
		if f.Name == name {
			return f, true
		}
	}
	return Facet[R]{}, false
}

// FacetNames returns facet names in declaration order.
func (s Schema[R]) FacetNames() []string {
	names := make([]string, len(s.Facets))
	for i, f := range s.Facets {
		names[i] = f.Name
	}
	return names
}

// SearchNames returns the designated search field names.
func (s Schema[R]) SearchNames() []string {
	names := make([]string, len(s.Search))
	for i, f := range s.Search {
		names[i] = f.Name
	}
	return names
}

// Matches reports whether r satisfies spec.
//
// The search clause runs first and short-circuits when empty. Active facets
// are then ANDed in schema order; the first failing clause stops evaluation.
// A selection naming a facet the schema does not have, or a value outside the
// facet's enumeration, matches nothing.
func Matches[R any](s Schema[R], r R, spec models.FilterSpec) bool {
	if !matchesSearch(s, r, spec.Search) {
		return false
	}
	return matchesFacets(s, r, spec.Facets)
}

func matchesSearch[R any](s Schema[R], r R, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range s.Search {
		if f.Get == nil {
			continue
		}
		v, ok := f.Get(r)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func matchesFacets[R any](s Schema[R], r R, facets map[string]string) bool {
	if len(facets) == 0 {
		return true
	}
	for name, want := range facets {
		if models.IsAll(want) {
			continue
		}
		f, ok := s.Facet(name)
		if !ok || !f.Allows(want) {
			return false
		}
	}
	for _, f := range s.Facets {
		want, set := facets[f.Name]
		if !set || models.IsAll(want) {
			continue
		}
		if f.Get == nil {
			return false
		}
		got, ok := f.Get(r)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Filter returns the records matching spec in their original order. The
// result is never nil, so an empty input yields an empty slice.
func Filter[R any](s Schema[R], records []R, spec models.FilterSpec) []R {
	out := make([]R, 0, len(records))
	if spec.IsZero() {
		return append(out, records...)
	}
	for _, r := range records {
		if Matches(s, r, spec) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many records satisfy pred.
func Count[R any](records []R, pred func(R) bool) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}

// AggregateValue is a computed Aggregate.
type AggregateValue struct {
	Name  string `json:"name"`
	Scope string `json:"scope"`
	Value int    `json:"value"`
}

// Result is the output of Apply: the filtered records plus every schema
// aggregate in declaration order.
type Result[R any] struct {
	Records    []R
	Total      int
	Aggregates []AggregateValue
}

// Value returns the named aggregate, or 0 if the schema has no such aggregate.
func (r Result[R]) Value(name string) int {
	for _, a := range r.Aggregates {
		if a.Name == name {
			return a.Value
		}
	}
	return 0
}

// Apply filters records and computes every aggregate over its own scope.
func Apply[R any](s Schema[R], records []R, spec models.FilterSpec) Result[R] {
	filtered := Filter(s, records, spec)
	aggs := make([]AggregateValue, len(s.Aggregates))
	for i, a := range s.Aggregates {
		src := filtered
		if a.Scope == ScopeAll {
			src = records
		}
		aggs[i] = AggregateValue{Name: a.Name, Scope: a.Scope.String(), Value: Count(src, a.Pred)}
	}
	return Result[R]{
		Records:    filtered,
		Total:      len(records),
		Aggregates: aggs,
	}
}

// Eq builds a predicate comparing a field to a fixed value.
func Eq[R any](get Field[R], want string) func(R) bool {
	return func(r R) bool {
		v, ok := get(r)
		return ok && v == want
	}
}

// Ne builds a predicate that holds when a present field differs from value.
func Ne[R any](get Field[R], value string) func(R) bool {
	return func(r R) bool {
		v, ok := get(r)
		return ok && v != value
	}
}

// Any is the always-true predicate, used for "total" aggregates.
func Any[R any](R) bool { return true }
