package catalog

import (
	"time"

	"github.com/aidmqan/mqan-console/internal/models"
)

// Reference data for a freshly seeded network. Every function returns a new
// slice so callers may keep or sort what they get.

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func score(v float64) *float64 { return &v }

// SeedAlerts returns the reference alerts, newest first.
func SeedAlerts() []models.Alert {
	return []models.Alert{
		{
			ID: 1, Type: "critical", Title: "Quality threshold exceeded",
			Description: "Medicine batch MG-2024-001 failed chemical analysis with score 67.2% (threshold: 85%)",
			Hospital:    "Metro General Hospital", Timestamp: mustTime("2024-01-15T14:32:15Z"),
			Status: "active", Priority: "high", Source: "quality_testing",
		},
		{
			ID: 2, Type: "warning", Title: "Node connectivity issue",
			Description: "Testing node #7 experiencing intermittent connection issues. Last successful ping: 12 minutes ago",
			Hospital:    "Regional Health System", Timestamp: mustTime("2024-01-15T14:20:30Z"),
			Status: "investigating", Priority: "medium", Source: "system_monitoring", AcknowledgedBy: "Michael Chen",
		},
		{
			ID: 3, Type: "info", Title: "Scheduled maintenance completed",
			Description: "Routine maintenance on nodes 3-6 completed successfully. All systems are operational",
			Hospital:    "Central Medical Center", Timestamp: mustTime("2024-01-15T13:45:22Z"),
			Status: "resolved", Priority: "low", Source: "maintenance", AcknowledgedBy: "Sarah Johnson",
		},
		{
			ID: 4, Type: "critical", Title: "Compliance violation detected",
			Description: "FDA compliance check failed for batch CM-2024-089. Immediate review required",
			Hospital:    "Central Medical Center", Timestamp: mustTime("2024-01-15T13:22:18Z"),
			Status: "active", Priority: "high", Source: "compliance",
		},
		{
			ID: 5, Type: "warning", Title: "High test load detected",
			Description: "Node capacity at 94% for University Medical. Consider load balancing",
			Hospital:    "University Medical", Timestamp: mustTime("2024-01-15T12:58:45Z"),
			Status: "monitoring", Priority: "medium", Source: "performance", AcknowledgedBy: "Emily Rodriguez",
		},
		{
			ID: 6, Type: "success", Title: "Quality improvement milestone",
			Description: "Community Hospital achieved 99% compliance rate for the month",
			Hospital:    "Community Hospital", Timestamp: mustTime("2024-01-15T11:30:12Z"),
			Status: "resolved", Priority: "low", Source: "quality_metrics", AcknowledgedBy: "Lisa Park",
		},
	}
}

// SeedSystemAlerts returns the overview's recent alerts.
func SeedSystemAlerts() []models.SystemAlert {
	return []models.SystemAlert{
		{ID: 1, Type: "critical", Title: "Quality threshold exceeded", Description: "Medicine batch MG-2024-001 failed chemical analysis", Hospital: "Metro General Hospital", Age: "2 minutes ago", Status: "active"},
		{ID: 2, Type: "warning", Title: "Node connectivity issue", Description: "Testing node #7 experiencing intermittent connection", Hospital: "Regional Health System", Age: "12 minutes ago", Status: "investigating"},
		{ID: 3, Type: "success", Title: "Maintenance completed", Description: "Scheduled maintenance on nodes 3-6 completed successfully", Hospital: "Central Medical Center", Age: "25 minutes ago", Status: "resolved"},
		{ID: 4, Type: "info", Title: "New batch registered", Description: "Medicine batch UM-2024-047 added to testing queue", Hospital: "University Medical", Age: "1 hour ago", Status: "processed"},
	}
}

// SeedUsers returns the reference accounts.
func SeedUsers() []models.User {
	return []models.User{
		{ID: 1, Name: "Dr. Sarah Johnson", Email: "s.johnson@aidmqan.com", Role: "System Administrator", Hospital: "Metro General Hospital", Status: "active", LastLogin: "2 hours ago", Permissions: []string{"full_access", "user_management", "system_config"}},
		{ID: 2, Name: "Michael Chen", Email: "m.chen@aidmqan.com", Role: "Quality Officer", Hospital: "Central Medical Center", Status: "active", LastLogin: "15 minutes ago", Permissions: []string{"quality_testing", "compliance_review", "reports"}},
		{ID: 3, Name: "Dr. Emily Rodriguez", Email: "e.rodriguez@aidmqan.com", Role: "Pharmacist", Hospital: "University Medical", Status: "active", LastLogin: "3 hours ago", Permissions: []string{"testing_review", "batch_approval"}},
		{ID: 4, Name: "James Wilson", Email: "j.wilson@aidmqan.com", Role: "Lab Technician", Hospital: "Regional Health System", Status: "inactive", LastLogin: "2 days ago", Permissions: []string{"test_execution", "sample_handling"}},
		{ID: 5, Name: "Dr. Lisa Park", Email: "l.park@aidmqan.com", Role: "Compliance Manager", Hospital: "Community Hospital", Status: "active", LastLogin: "1 hour ago", Permissions: []string{"compliance_audit", "regulatory_reports", "violation_management"}},
	}
}

// SeedRoles returns the permission sets.
func SeedRoles() []models.Role {
	return []models.Role{
		{Name: "System Administrator", Permissions: []string{"full_access", "user_management", "system_config"}, Count: 1},
		{Name: "Quality Officer", Permissions: []string{"quality_testing", "compliance_review", "reports"}, Count: 2},
		{Name: "Pharmacist", Permissions: []string{"testing_review", "batch_approval", "inventory_management"}, Count: 3},
		{Name: "Lab Technician", Permissions: []string{"test_execution", "sample_handling"}, Count: 8},
		{Name: "Compliance Manager", Permissions: []string{"compliance_audit", "regulatory_reports", "violation_management"}, Count: 2},
	}
}

// SeedHospitals returns the member sites.
func SeedHospitals() []models.Hospital {
	return []models.Hospital{
		{ID: 1, Name: "Metro General Hospital", Location: "New York, NY", Address: "123 Medical Center Dr, New York, NY 10001", Nodes: 8, Status: "online", LastTest: "2 min ago", Compliance: 98.7, TestsToday: 247, Staff: 12, Established: "2019"},
		{ID: 2, Name: "Central Medical Center", Location: "Los Angeles, CA", Address: "456 Health Plaza, Los Angeles, CA 90210", Nodes: 6, Status: "online", LastTest: "5 min ago", Compliance: 99.2, TestsToday: 189, Staff: 8, Established: "2020"},
		{ID: 3, Name: "Regional Health System", Location: "Chicago, IL", Address: "789 Care Avenue, Chicago, IL 60601", Nodes: 4, Status: "warning", LastTest: "12 min ago", Compliance: 97.8, TestsToday: 134, Staff: 6, Established: "2021"},
		{ID: 4, Name: "University Medical", Location: "Boston, MA", Address: "321 Research Blvd, Boston, MA 02101", Nodes: 12, Status: "online", LastTest: "1 min ago", Compliance: 99.5, TestsToday: 356, Staff: 18, Established: "2018"},
		{ID: 5, Name: "Community Hospital", Location: "Seattle, WA", Address: "654 Community St, Seattle, WA 98101", Nodes: 3, Status: "offline", LastTest: "45 min ago", Compliance: 98.1, TestsToday: 67, Staff: 4, Established: "2022"},
	}
}

// SeedTestResults returns the latest batch tests.
func SeedTestResults() []models.TestResult {
	return []models.TestResult{
		{
			ID: "MG-2024-001", Name: "Amoxicillin 500mg", Batch: "MG-2024-001", Hospital: "Metro General Hospital",
			Timestamp: "2024-01-15 14:32:15", Status: "failed", Confidence: score(94.7),
			SubTests: []models.SubTest{
				{Kind: models.SubTestChemical, Status: "failed", Score: score(67.2), Threshold: 85},
				{Kind: models.SubTestBiological, Status: "passed", Score: score(96.8), Threshold: 90},
				{Kind: models.SubTestVisual, Status: "passed", Score: score(98.1), Threshold: 85},
			},
		},
		{
			ID: "CM-2024-089", Name: "Ibuprofen 200mg", Batch: "CM-2024-089", Hospital: "Central Medical Center",
			Timestamp: "2024-01-15 14:28:42", Status: "passed", Confidence: score(98.3),
			SubTests: []models.SubTest{
				{Kind: models.SubTestChemical, Status: "passed", Score: score(96.4), Threshold: 85},
				{Kind: models.SubTestBiological, Status: "passed", Score: score(97.1), Threshold: 90},
				{Kind: models.SubTestVisual, Status: "passed", Score: score(99.2), Threshold: 85},
			},
		},
		{
			ID: "UM-2024-047", Name: "Acetaminophen 325mg", Batch: "UM-2024-047", Hospital: "University Medical",
			Timestamp: "2024-01-15 14:25:18", Status: "testing",
			SubTests: []models.SubTest{
				{Kind: models.SubTestChemical, Status: "testing", Threshold: 85},
				{Kind: models.SubTestBiological, Status: "pending", Threshold: 90},
				{Kind: models.SubTestVisual, Status: "pending", Threshold: 85},
			},
		},
	}
}

// SeedStandards returns the tracked regulatory standards.
func SeedStandards() []models.Standard {
	return []models.Standard{
		{ID: 1, Name: "FDA 21 CFR Part 820", Description: "Quality System Regulation for Medical Devices", Status: "compliant", LastAudit: "2024-01-10", NextAudit: "2024-07-10", Score: 98.5, Violations: 0},
		{ID: 2, Name: "ISO 13485:2016", Description: "Medical devices - Quality management systems", Status: "compliant", LastAudit: "2024-01-05", NextAudit: "2024-07-05", Score: 97.8, Violations: 1},
		{ID: 3, Name: "EU MDR 2017/745", Description: "European Medical Device Regulation", Status: "warning", LastAudit: "2023-12-20", NextAudit: "2024-06-20", Score: 89.2, Violations: 3},
		{ID: 4, Name: "ICH Q10", Description: "Pharmaceutical Quality System", Status: "compliant", LastAudit: "2024-01-15", NextAudit: "2024-07-15", Score: 99.1, Violations: 0},
	}
}

// SeedAudits returns recent compliance audits.
func SeedAudits() []models.Audit {
	return []models.Audit{
		{ID: 1, Hospital: "Metro General Hospital", Standard: "FDA 21 CFR Part 820", Date: "2024-01-10", Auditor: "Dr. Sarah Johnson", Result: "Pass", Score: 98.5, Findings: 2},
		{ID: 2, Hospital: "University Medical", Standard: "ISO 13485:2016", Date: "2024-01-05", Auditor: "Michael Chen", Result: "Pass", Score: 97.8, Findings: 1},
		{ID: 3, Hospital: "Regional Health System", Standard: "EU MDR 2017/745", Date: "2023-12-20", Auditor: "Dr. Emily Rodriguez", Result: "Conditional Pass", Score: 89.2, Findings: 3},
	}
}

// SeedViolations returns open and resolved compliance findings.
func SeedViolations() []models.Violation {
	return []models.Violation{
		{ID: 1, Hospital: "Regional Health System", Standard: "EU MDR 2017/745", Severity: "medium", Description: "Incomplete documentation for batch tracking procedures", DateReported: "2023-12-20", Status: "remediation", DueDate: "2024-02-20"},
		{ID: 2, Hospital: "Central Medical Center", Standard: "ISO 13485:2016", Severity: "low", Description: "Minor calibration record discrepancies", DateReported: "2024-01-05", Status: "resolved", DueDate: "2024-01-25"},
	}
}

// SeedNodes returns the monitored testing nodes.
func SeedNodes() []models.NodeStatus {
	return []models.NodeStatus{
		{ID: "node-1", Name: "Node 1", Hospital: "Metro General", Location: "Lab A", Status: "active", Load: 87},
		{ID: "node-2", Name: "Node 2", Hospital: "Metro General", Location: "Lab B", Status: "active", Load: 65},
		{ID: "node-3", Name: "Node 3", Hospital: "Central Medical", Location: "Main Lab", Status: "warning", Load: 94},
		{ID: "node-4", Name: "Node 4", Hospital: "University Medical", Location: "Research Wing", Status: "active", Load: 72},
		{ID: "node-5", Name: "Node 5", Hospital: "Regional Health", Location: "Pharmacy", Status: "offline", Load: 0},
		{ID: "node-6", Name: "Node 6", Hospital: "Community Hospital", Location: "Quality Control", Status: "active", Load: 58},
	}
}

// SeedMonthly returns six months of network test volume.
func SeedMonthly() []models.MonthlyMetric {
	return []models.MonthlyMetric{
		{Month: "Jan", Tests: 2847, Passed: 2804, Failed: 43, Compliance: 98.5},
		{Month: "Feb", Tests: 3124, Passed: 3086, Failed: 38, Compliance: 98.8},
		{Month: "Mar", Tests: 2956, Passed: 2904, Failed: 52, Compliance: 98.3},
		{Month: "Apr", Tests: 3287, Passed: 3258, Failed: 29, Compliance: 99.1},
		{Month: "May", Tests: 3456, Passed: 3422, Failed: 34, Compliance: 99.0},
		{Month: "Jun", Tests: 3621, Passed: 3580, Failed: 41, Compliance: 98.9},
	}
}

// SeedPerformance returns per-hospital performance for the period.
func SeedPerformance() []models.HospitalPerformance {
	return []models.HospitalPerformance{
		{Name: "Metro General", Tests: 1247, Compliance: 98.7, Efficiency: 94},
		{Name: "Central Medical", Tests: 892, Compliance: 99.2, Efficiency: 97},
		{Name: "University Medical", Tests: 1456, Compliance: 99.5, Efficiency: 89},
		{Name: "Regional Health", Tests: 634, Compliance: 97.8, Efficiency: 91},
		{Name: "Community Hospital", Tests: 392, Compliance: 98.1, Efficiency: 88},
	}
}

// SeedTestTypes returns the test method distribution.
func SeedTestTypes() []models.TestTypeShare {
	return []models.TestTypeShare{
		{Name: "Chemical Analysis", Percent: 45, Count: 1629},
		{Name: "Biological Testing", Percent: 30, Count: 1086},
		{Name: "Visual Inspection", Percent: 25, Count: 906},
	}
}
