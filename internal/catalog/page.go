package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/aidmqan/mqan-console/internal/models"
	"github.com/aidmqan/mqan-console/internal/query"
)

// Column describes one display column of a page. Fixed > 0 pins the width,
// otherwise Flex is the relative share of the remaining width.
type Column struct {
	Title string `json:"title"`
	Flex  int    `json:"-"`
	Fixed int    `json:"-"`
}

// Metric is a derived figure shown next to the aggregates (sums, averages).
type Metric struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// FacetInfo describes a facet to clients.
type FacetInfo struct {
	Name   string   `json:"name"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Info describes a page's searchable fields and facets.
type Info struct {
	Name   string      `json:"name"`
	Title  string      `json:"title"`
	Search []string    `json:"search"`
	Facets []FacetInfo `json:"facets"`
}

// View is one evaluated page: the filtered records, their display rows and
// every aggregate and metric.
type View struct {
	Page       string                 `json:"page"`
	Title      string                 `json:"-"`
	Spec       models.FilterSpec      `json:"filter"`
	Total      int                    `json:"total"`
	Count      int                    `json:"count"`
	Columns    []Column               `json:"-"`
	Rows       [][]string             `json:"-"`
	Records    any                    `json:"records"`
	Aggregates []query.AggregateValue `json:"aggregates"`
	Metrics    []Metric               `json:"metrics,omitempty"`
}

// Page is a filterable record page.
type Page interface {
	Info() Info
	Query(spec models.FilterSpec) View
}

type cell[R any] struct {
	Column
	Value func(R) string
}

type recordPage[R any] struct {
	title   string
	schema  query.Schema[R]
	records func() []R
	cells   []cell[R]
	metrics func(all, filtered []R) []Metric
}

func (p *recordPage[R]) Info() Info {
	info := Info{
		Name:   p.schema.Name,
		Title:  p.title,
		Search: p.schema.SearchNames(),
	}
	for _, f := range p.schema.Facets {
		info.Facets = append(info.Facets, FacetInfo{Name: f.Name, Label: f.Label, Values: f.Values})
	}
	return info
}

func (p *recordPage[R]) Query(spec models.FilterSpec) View {
	all := p.records()
	res := query.Apply(p.schema, all, spec)

	cols := make([]Column, len(p.cells))
	for i, c := range p.cells {
		cols[i] = c.Column
	}
	rows := make([][]string, len(res.Records))
	for i, r := range res.Records {
		row := make([]string, len(p.cells))
		for j, c := range p.cells {
			row[j] = c.Value(r)
		}
		rows[i] = row
	}

	v := View{
		Page:       p.schema.Name,
		Title:      p.title,
		Spec:       spec,
		Total:      res.Total,
		Count:      len(res.Records),
		Columns:    cols,
		Rows:       rows,
		Records:    res.Records,
		Aggregates: res.Aggregates,
	}
	if p.metrics != nil {
		v.Metrics = p.metrics(all, res.Records)
	}
	return v
}

// Registry holds the pages of one session, keyed by name.
type Registry struct {
	pages  []Page
	byName map[string]Page
}

// Get returns the named page.
func (r *Registry) Get(name string) (Page, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Pages returns all pages in menu order.
func (r *Registry) Pages() []Page {
	return r.pages
}

// Names returns page names in menu order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.pages))
	for i, p := range r.pages {
		names[i] = p.Info().Name
	}
	return names
}

func (r *Registry) add(p Page) {
	r.pages = append(r.pages, p)
	r.byName[p.Info().Name] = p
}

func static[R any](rs []R) func() []R {
	return func() []R { return rs }
}

func pct(v float64) string {
	return strconv.FormatFloat(query.Round1(v), 'f', 1, 64) + "%"
}

// NewRegistry builds the record pages over c. activity supplies the live
// monitor feed, newest first; nil leaves the monitor page empty.
func NewRegistry(c *Catalog, activity func() []models.Activity) *Registry {
	if activity == nil {
		activity = func() []models.Activity { return nil }
	}
	r := &Registry{byName: make(map[string]Page)}

	r.add(&recordPage[models.Alert]{
		title:   "Alert Management",
		schema:  AlertSchema,
		records: static(c.Alerts),
		cells: []cell[models.Alert]{
			{Column{Title: "Type", Fixed: 10}, func(a models.Alert) string { return a.Type }},
			{Column{Title: "Title", Flex: 35}, func(a models.Alert) string { return a.Title }},
			{Column{Title: "Hospital", Flex: 25}, func(a models.Alert) string { return a.Hospital }},
			{Column{Title: "Status", Fixed: 14}, func(a models.Alert) string { return a.Status }},
			{Column{Title: "Priority", Fixed: 9}, func(a models.Alert) string { return a.Priority }},
			{Column{Title: "Time", Fixed: 17}, func(a models.Alert) string { return a.Timestamp.Format("2006-01-02 15:04") }},
		},
	})

	r.add(&recordPage[models.User]{
		title:   "User Management",
		schema:  UserSchema,
		records: static(c.Users),
		cells: []cell[models.User]{
			{Column{Title: "Name", Flex: 22}, func(u models.User) string { return u.Name }},
			{Column{Title: "Email", Flex: 26}, func(u models.User) string { return u.Email }},
			{Column{Title: "Role", Flex: 22}, func(u models.User) string { return u.Role }},
			{Column{Title: "Hospital", Flex: 24}, func(u models.User) string { return u.Hospital }},
			{Column{Title: "Status", Fixed: 10}, func(u models.User) string { return u.Status }},
			{Column{Title: "Last Login", Fixed: 15}, func(u models.User) string { return u.LastLogin }},
		},
		metrics: func(all, _ []models.User) []Metric {
			return []Metric{{Name: "roles", Label: "Roles", Value: strconv.Itoa(len(c.Roles))}}
		},
	})

	r.add(&recordPage[models.Hospital]{
		title:   "Hospital Management",
		schema:  HospitalSchema,
		records: static(c.Hospitals),
		cells: []cell[models.Hospital]{
			{Column{Title: "Hospital", Flex: 30}, func(h models.Hospital) string { return h.Name }},
			{Column{Title: "Location", Flex: 20}, func(h models.Hospital) string { return h.Location }},
			{Column{Title: "Nodes", Fixed: 6}, func(h models.Hospital) string { return strconv.Itoa(h.Nodes) }},
			{Column{Title: "Tests Today", Fixed: 12}, func(h models.Hospital) string { return strconv.Itoa(h.TestsToday) }},
			{Column{Title: "Compliance", Fixed: 11}, func(h models.Hospital) string { return pct(h.Compliance) }},
			{Column{Title: "Status", Fixed: 8}, func(h models.Hospital) string { return h.Status }},
			{Column{Title: "Last Test", Fixed: 11}, func(h models.Hospital) string { return h.LastTest }},
		},
		metrics: func(all, _ []models.Hospital) []Metric {
			nodes := query.Sum(all, func(h models.Hospital) int { return h.Nodes })
			tests := query.Sum(all, func(h models.Hospital) int { return h.TestsToday })
			return []Metric{
				{Name: "nodes", Label: "Total Nodes", Value: humanize.Comma(int64(nodes))},
				{Name: "tests_today", Label: "Tests Today", Value: humanize.Comma(int64(tests))},
			}
		},
	})

	r.add(&recordPage[models.TestResult]{
		title:   "Medicine Quality Testing",
		schema:  QualitySchema,
		records: static(c.TestResults),
		cells: []cell[models.TestResult]{
			{Column{Title: "Batch", Fixed: 12}, func(t models.TestResult) string { return t.Batch }},
			{Column{Title: "Medicine", Flex: 25}, func(t models.TestResult) string { return t.Name }},
			{Column{Title: "Hospital", Flex: 25}, func(t models.TestResult) string { return t.Hospital }},
			{Column{Title: "Status", Fixed: 8}, func(t models.TestResult) string { return strings.ToUpper(t.Status) }},
			{Column{Title: "AI Conf.", Fixed: 8}, func(t models.TestResult) string { return optPct(t.Confidence) }},
			{Column{Title: "Chem/Bio/Visual", Flex: 20}, subTestSummary},
		},
		metrics: func(_, filtered []models.TestResult) []Metric {
			passed := query.Count(filtered, query.Eq(resultStatus, "passed"))
			return []Metric{{Name: "pass_rate", Label: "Pass Rate", Value: pct(query.Percent(passed, len(filtered)))}}
		},
	})

	r.add(&recordPage[models.Standard]{
		title:   "Regulatory Compliance",
		schema:  StandardSchema,
		records: static(c.Standards),
		cells: []cell[models.Standard]{
			{Column{Title: "Standard", Flex: 22}, func(s models.Standard) string { return s.Name }},
			{Column{Title: "Description", Flex: 38}, func(s models.Standard) string { return s.Description }},
			{Column{Title: "Status", Fixed: 10}, func(s models.Standard) string { return s.Status }},
			{Column{Title: "Score", Fixed: 7}, func(s models.Standard) string { return pct(s.Score) }},
			{Column{Title: "Viol.", Fixed: 6}, func(s models.Standard) string { return strconv.Itoa(s.Violations) }},
			{Column{Title: "Next Audit", Fixed: 11}, func(s models.Standard) string { return s.NextAudit }},
		},
		metrics: func(all, _ []models.Standard) []Metric {
			return []Metric{
				{Name: "open_violations", Label: "Open Violations", Value: strconv.Itoa(query.Count(c.Violations, OpenViolation))},
				{Name: "avg_score", Label: "Avg. Score", Value: pct(query.Mean(all, func(s models.Standard) float64 { return s.Score }))},
			}
		},
	})

	r.add(&recordPage[models.Audit]{
		title:   "Recent Audits",
		schema:  AuditSchema,
		records: static(c.Audits),
		cells: []cell[models.Audit]{
			{Column{Title: "Hospital", Flex: 28}, func(a models.Audit) string { return a.Hospital }},
			{Column{Title: "Standard", Flex: 22}, func(a models.Audit) string { return a.Standard }},
			{Column{Title: "Auditor", Flex: 22}, func(a models.Audit) string { return a.Auditor }},
			{Column{Title: "Result", Fixed: 17}, func(a models.Audit) string { return a.Result }},
			{Column{Title: "Score", Fixed: 7}, func(a models.Audit) string { return pct(a.Score) }},
			{Column{Title: "Findings", Fixed: 9}, func(a models.Audit) string { return strconv.Itoa(a.Findings) }},
		},
	})

	r.add(&recordPage[models.Violation]{
		title:   "Violations & Remediation",
		schema:  ViolationSchema,
		records: static(c.Violations),
		cells: []cell[models.Violation]{
			{Column{Title: "Hospital", Flex: 24}, func(v models.Violation) string { return v.Hospital }},
			{Column{Title: "Standard", Flex: 18}, func(v models.Violation) string { return v.Standard }},
			{Column{Title: "Description", Flex: 40}, func(v models.Violation) string { return v.Description }},
			{Column{Title: "Severity", Fixed: 9}, func(v models.Violation) string { return v.Severity }},
			{Column{Title: "Status", Fixed: 12}, func(v models.Violation) string { return v.Status }},
			{Column{Title: "Due", Fixed: 11}, func(v models.Violation) string { return v.DueDate }},
		},
	})

	r.add(&recordPage[models.NodeStatus]{
		title:   "Node Status",
		schema:  NodeSchema,
		records: static(c.Nodes),
		cells: []cell[models.NodeStatus]{
			{Column{Title: "Node", Fixed: 8}, func(n models.NodeStatus) string { return n.Name }},
			{Column{Title: "Hospital", Flex: 30}, func(n models.NodeStatus) string { return n.Hospital }},
			{Column{Title: "Location", Flex: 25}, func(n models.NodeStatus) string { return n.Location }},
			{Column{Title: "Status", Fixed: 9}, func(n models.NodeStatus) string { return n.Status }},
			{Column{Title: "Load", Fixed: 6}, func(n models.NodeStatus) string { return strconv.Itoa(n.Load) + "%" }},
		},
		metrics: func(all, _ []models.NodeStatus) []Metric {
			return []Metric{{Name: "avg_load", Label: "Avg. Load", Value: pct(query.Mean(all, func(n models.NodeStatus) int { return n.Load }))}}
		},
	})

	r.add(&recordPage[models.Activity]{
		title:   "Live Activity",
		schema:  ActivitySchema,
		records: activity,
		cells: []cell[models.Activity]{
			{Column{Title: "Time", Fixed: 10}, func(a models.Activity) string { return a.Timestamp.Format("15:04:05") }},
			{Column{Title: "Hospital", Flex: 25}, func(a models.Activity) string { return a.Hospital }},
			{Column{Title: "Node", Fixed: 8}, func(a models.Activity) string { return a.Node }},
			{Column{Title: "Action", Flex: 22}, func(a models.Activity) string { return a.Action }},
			{Column{Title: "Batch", Fixed: 12}, func(a models.Activity) string { return a.Batch }},
			{Column{Title: "Status", Fixed: 8}, func(a models.Activity) string { return a.Status }},
		},
	})

	return r
}

func optPct(v *float64) string {
	if v == nil {
		return "-"
	}
	return pct(*v)
}

func subTestSummary(t models.TestResult) string {
	parts := make([]string, len(t.SubTests))
	for i, s := range t.SubTests {
		if s.Score == nil {
			parts[i] = s.Status
			continue
		}
		parts[i] = fmt.Sprintf("%.1f", *s.Score)
	}
	return strings.Join(parts, " / ")
}
