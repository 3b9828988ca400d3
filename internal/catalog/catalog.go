package catalog

import (
	"github.com/aidmqan/mqan-console/internal/models"
	"github.com/aidmqan/mqan-console/internal/query"
)

// Catalog is the session record set. It is loaded once at start-up and
// treated as read-only afterwards; filtering never mutates it.
type Catalog struct {
	Alerts       []models.Alert
	SystemAlerts []models.SystemAlert
	Users        []models.User
	Roles        []models.Role
	Hospitals    []models.Hospital
	TestResults  []models.TestResult
	Standards    []models.Standard
	Audits       []models.Audit
	Violations   []models.Violation
	Nodes        []models.NodeStatus
	Monthly      []models.MonthlyMetric
	Performance  []models.HospitalPerformance
	TestTypes    []models.TestTypeShare
}

// Seed returns a catalog holding the reference network data.
func Seed() *Catalog {
	return &Catalog{
		Alerts:       SeedAlerts(),
		SystemAlerts: SeedSystemAlerts(),
		Users:        SeedUsers(),
		Roles:        SeedRoles(),
		Hospitals:    SeedHospitals(),
		TestResults:  SeedTestResults(),
		Standards:    SeedStandards(),
		Audits:       SeedAudits(),
		Violations:   SeedViolations(),
		Nodes:        SeedNodes(),
		Monthly:      SeedMonthly(),
		Performance:  SeedPerformance(),
		TestTypes:    SeedTestTypes(),
	}
}

// Counts returns the number of records per collection, keyed by table name.
func (c *Catalog) Counts() map[string]int {
	return map[string]int{
		"alerts":        len(c.Alerts),
		"system_alerts": len(c.SystemAlerts),
		"users":         len(c.Users),
		"roles":         len(c.Roles),
		"hospitals":     len(c.Hospitals),
		"test_results":  len(c.TestResults),
		"standards":     len(c.Standards),
		"audits":        len(c.Audits),
		"violations":    len(c.Violations),
		"nodes":         len(c.Nodes),
		"monthly":       len(c.Monthly),
		"performance":   len(c.Performance),
		"test_types":    len(c.TestTypes),
	}
}

// Overview holds the headline figures for the dashboard page.
type Overview struct {
	ActiveNodes   int     `json:"activeNodes"`
	Hospitals     int     `json:"hospitals"`
	TestsToday    int     `json:"testsToday"`
	PassRate      float64 `json:"passRate"`
	OpenAlerts    int     `json:"openAlerts"`
	CriticalCount int     `json:"criticalCount"`
	Compliance    float64 `json:"compliance"`
}

// Overview derives the headline figures from the record set. Pass rate comes
// from the monthly volume, compliance is the mean across hospitals.
func (c *Catalog) Overview() Overview {
	tests := query.Sum(c.Monthly, func(m models.MonthlyMetric) int { return m.Tests })
	passed := query.Sum(c.Monthly, func(m models.MonthlyMetric) int { return m.Passed })
	return Overview{
		ActiveNodes:   query.Sum(c.Hospitals, func(h models.Hospital) int { return h.Nodes }),
		Hospitals:     len(c.Hospitals),
		TestsToday:    query.Sum(c.Hospitals, func(h models.Hospital) int { return h.TestsToday }),
		PassRate:      query.Round1(query.Percent(passed, tests)),
		OpenAlerts:    query.Count(c.Alerts, query.Ne(alertStatus, "resolved")),
		CriticalCount: query.Count(c.Alerts, query.Eq(alertType, "critical")),
		Compliance:    query.Round1(query.Mean(c.Hospitals, func(h models.Hospital) float64 { return h.Compliance })),
	}
}

// Analytics is the summary row of the analytics page.
type Analytics struct {
	TotalTests    int     `json:"totalTests"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	PassRate      float64 `json:"passRate"`
	AvgCompliance float64 `json:"avgCompliance"`
	AvgEfficiency float64 `json:"avgEfficiency"`
	TopHospital   string  `json:"topHospital"`
}

// Analytics aggregates the monthly and per-hospital series.
func (c *Catalog) Analytics() Analytics {
	a := Analytics{
		TotalTests:    query.Sum(c.Monthly, func(m models.MonthlyMetric) int { return m.Tests }),
		Passed:        query.Sum(c.Monthly, func(m models.MonthlyMetric) int { return m.Passed }),
		Failed:        query.Sum(c.Monthly, func(m models.MonthlyMetric) int { return m.Failed }),
		AvgCompliance: query.Round1(query.Mean(c.Monthly, func(m models.MonthlyMetric) float64 { return m.Compliance })),
		AvgEfficiency: query.Round1(query.Mean(c.Performance, func(p models.HospitalPerformance) int { return p.Efficiency })),
	}
	a.PassRate = query.Round1(query.Percent(a.Passed, a.TotalTests))
	best := -1.0
	for _, p := range c.Performance {
		if p.Compliance > best {
			best = p.Compliance
			a.TopHospital = p.Name
		}
	}
	return a
}
