package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidmqan/mqan-console/internal/models"
)

type alert struct {
	ID       int
	Title    string
	Hospital string
	Type     string
	Status   string
	Owner    string
}

func str(get func(alert) string) Field[alert] {
	return func(a alert) (string, bool) {
		v := get(a)
		return v, v != ""
	}
}

var (
	aTitle    = str(func(a alert) string { return a.Title })
	aHospital = str(func(a alert) string { return a.Hospital })
	aType     = str(func(a alert) string { return a.Type })
	aStatus   = str(func(a alert) string { return a.Status })
	aOwner    = str(func(a alert) string { return a.Owner })
)

var testSchema = Schema[alert]{
	Name: "alerts",
	Search: []SearchField[alert]{
		{Name: "title", Get: aTitle},
		{Name: "hospital", Get: aHospital},
		{Name: "owner", Get: aOwner},
	},
	Facets: []Facet[alert]{
		{Name: "type", Values: []string{"critical", "warning", "info"}, Get: aType},
		{Name: "status", Values: []string{"active", "investigating", "resolved"}, Get: aStatus},
	},
	Aggregates: []Aggregate[alert]{
		{Name: "active", Scope: ScopeFiltered, Pred: Eq(aStatus, "active")},
		{Name: "unresolved", Scope: ScopeFiltered, Pred: Ne(aStatus, "resolved")},
		{Name: "total", Scope: ScopeAll, Pred: Any[alert]},
	},
}

func sample() []alert {
	return []alert{
		{ID: 1, Title: "Quality threshold exceeded", Hospital: "Metro General", Type: "critical", Status: "active"},
		{ID: 2, Title: "Node connectivity issue", Hospital: "Regional Health", Type: "warning", Status: "investigating", Owner: "Michael Chen"},
		{ID: 3, Title: "Maintenance completed", Hospital: "Central Medical", Type: "info", Status: "resolved"},
	}
}

func ids(rs []alert) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func spec(search string, kv ...string) models.FilterSpec {
	s := models.FilterSpec{Search: search, Facets: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		s.Facets[kv[i]] = kv[i+1]
	}
	return s
}

// TestFilter covers the alert page scenarios end to end
func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		spec models.FilterSpec
		want []int
	}{
		{name: "zero spec", spec: models.FilterSpec{}, want: []int{1, 2, 3}},
		{name: "all sentinels", spec: spec("", "type", "all", "status", "all"), want: []int{1, 2, 3}},
		{name: "empty selection is all", spec: spec("", "type", ""), want: []int{1, 2, 3}},
		{name: "search title", spec: spec("node"), want: []int{2}},
		{name: "search is case-insensitive", spec: spec("NODE"), want: []int{2}},
		{name: "search hospital", spec: spec("medical"), want: []int{3}},
		{name: "search optional field", spec: spec("chen"), want: []int{2}},
		{name: "facet", spec: spec("", "status", "resolved"), want: []int{3}},
		{name: "facets are ANDed", spec: spec("", "type", "critical", "status", "resolved"), want: []int{}},
		{name: "search and facet", spec: spec("e", "type", "warning"), want: []int{2}},
		{name: "no match", spec: spec("zzz"), want: []int{}},
		{name: "value outside enumeration", spec: spec("", "status", "bogus"), want: []int{}},
		{name: "unknown facet", spec: spec("", "colour", "red"), want: []int{}},
		{name: "unknown facet set to all", spec: spec("", "colour", "all"), want: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testSchema, sample(), tt.spec)
			require.NotNil(t, got)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestFilterProperties checks identity, stability, narrowing and idempotence
func TestFilterProperties(t *testing.T) {
	records := sample()
	specs := []models.FilterSpec{
		{},
		spec("e"),
		spec("", "status", "active"),
		spec("o", "type", "warning"),
		spec("", "status", "resolved", "type", "info"),
	}

	for _, s := range specs {
		t.Run(s.String(), func(t *testing.T) {
			once := Filter(testSchema, records, s)
			twice := Filter(testSchema, once, s)
			assert.Equal(t, once, twice, "filter should be idempotent")
			assert.LessOrEqual(t, len(once), len(records))

			// order preserved
			last := 0
			for _, r := range once {
				assert.Greater(t, r.ID, last)
				last = r.ID
			}

			// adding a constraint never widens the result
			if s.Facet("status") == All {
				narrowed := Filter(testSchema, records, s.WithFacet("status", "active"))
				assert.Subset(t, ids(once), ids(narrowed))
			}
		})
	}
}

func TestFilterDoesNotAlias(t *testing.T) {
	records := sample()
	got := Filter(testSchema, records, models.FilterSpec{})
	got[0].Title = "changed"
	assert.Equal(t, "Quality threshold exceeded", records[0].Title)
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(testSchema, nil, spec("x"))
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 0, Count(got, Any[alert]))
}

func TestMissingFieldNeverMatches(t *testing.T) {
	schema := testSchema
	schema.Facets = append([]Facet[alert]{}, testSchema.Facets...)
	schema.Facets = append(schema.Facets, Facet[alert]{Name: "owner", Get: aOwner})

	got := Filter(schema, sample(), spec("", "owner", "Michael Chen"))
	assert.Equal(t, []int{2}, ids(got))

	// Ne requires the field to be present
	assert.Equal(t, 1, Count(sample(), Ne(aOwner, "nobody")))
}

func TestApply(t *testing.T) {
	res := Apply(testSchema, sample(), spec("", "status", "resolved"))

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []int{3}, ids(res.Records))
	want := []AggregateValue{
		{Name: "active", Scope: "filtered", Value: 0},
		{Name: "unresolved", Scope: "filtered", Value: 0},
		{Name: "total", Scope: "all", Value: 3},
	}
	if diff := cmp.Diff(want, res.Aggregates); diff != "" {
		t.Errorf("Apply() aggregates mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, res.Value("total"))
	assert.Equal(t, 0, res.Value("missing"))

	all := Apply(testSchema, sample(), models.FilterSpec{})
	assert.Equal(t, 1, all.Value("active"))
	assert.Equal(t, 2, all.Value("unresolved"))
}

func TestSchemaLookups(t *testing.T) {
	f, ok := testSchema.Facet("status")
	require.True(t, ok)
	assert.True(t, f.Allows("resolved"))
	assert.False(t, f.Allows("Resolved"))

	_, ok = testSchema.Facet("nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"type", "status"}, testSchema.FacetNames())
	assert.Equal(t, []string{"title", "hospital", "owner"}, testSchema.SearchNames())
	assert.False(t, Facet[alert]{}.Allows("anything"), "a facet without values allows nothing")
}

func TestStats(t *testing.T) {
	records := sample()
	assert.Equal(t, 6, Sum(records, func(a alert) int { return a.ID }))
	assert.InDelta(t, 2.0, Mean(records, func(a alert) int { return a.ID }), 1e-9)
	assert.Equal(t, 0.0, Mean([]alert{}, func(a alert) float64 { return 1 }))
	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 0.0, Percent(3, 0))
	assert.Equal(t, 98.8, Round1(98.7727))
}

func TestFacetWithoutValuesMatchesNothing(t *testing.T) {
	open := testSchema
	open.Facets = []Facet[alert]{{Name: "status", Get: aStatus}}

	got := Filter(open, sample(), models.FilterSpec{}.WithFacet("status", "resolved"))
	assert.Empty(t, got)

	got = Filter(open, sample(), models.FilterSpec{}.WithFacet("status", "all"))
	assert.Len(t, got, 3)
}
