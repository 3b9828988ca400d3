package catalog

import (
	"github.com/aidmqan/mqan-console/internal/models"
	"github.com/aidmqan/mqan-console/internal/query"
)

// Page names. These are the keys used by the CLI, the API routes and saved views.
const (
	PageAlerts     = "alerts"
	PageUsers      = "users"
	PageHospitals  = "hospitals"
	PageQuality    = "quality"
	PageCompliance = "compliance"
	PageAudits     = "audits"
	PageViolations = "violations"
	PageMonitor    = "monitor"
	PageNodes      = "nodes"
)

// text adapts a plain string getter. Empty strings count as missing so an
// unset optional field (e.g. AcknowledgedBy) never matches a search.
func text[R any](get func(R) string) query.Field[R] {
	return func(r R) (string, bool) {
		v := get(r)
		return v, v != ""
	}
}

// ---- alerts

var (
	alertTitle       = text(func(a models.Alert) string { return a.Title })
	alertDescription = text(func(a models.Alert) string { return a.Description })
	alertHospital    = text(func(a models.Alert) string { return a.Hospital })
	alertType        = text(func(a models.Alert) string { return a.Type })
	alertStatus      = text(func(a models.Alert) string { return a.Status })
	alertPriority    = text(func(a models.Alert) string { return a.Priority })
)

// AlertSchema searches title, description and hospital and counts over the
// filtered view, matching the alert page's summary cards.
var AlertSchema = query.Schema[models.Alert]{
	Name: PageAlerts,
	Search: []query.SearchField[models.Alert]{
		{Name: "title", Get: alertTitle},
		{Name: "description", Get: alertDescription},
		{Name: "hospital", Get: alertHospital},
	},
	Facets: []query.Facet[models.Alert]{
		{Name: "type", Label: "Type", Values: []string{"critical", "warning", "info", "success"}, Get: alertType},
		{Name: "status", Label: "Status", Values: []string{"active", "investigating", "resolved", "monitoring"}, Get: alertStatus},
		{Name: "priority", Label: "Priority", Values: []string{"high", "medium", "low"}, Get: alertPriority},
	},
	Aggregates: []query.Aggregate[models.Alert]{
		{Name: "active", Scope: query.ScopeFiltered, Pred: query.Eq(alertStatus, "active")},
		{Name: "critical", Scope: query.ScopeFiltered, Pred: query.Eq(alertType, "critical")},
		{Name: "unresolved", Scope: query.ScopeFiltered, Pred: query.Ne(alertStatus, "resolved")},
	},
}

// ---- users

var (
	userName     = text(func(u models.User) string { return u.Name })
	userEmail    = text(func(u models.User) string { return u.Email })
	userHospital = text(func(u models.User) string { return u.Hospital })
	userRole     = text(func(u models.User) string { return u.Role })
	userStatus   = text(func(u models.User) string { return u.Status })
)

// UserSchema totals are network-wide, so they ignore the current filter.
var UserSchema = query.Schema[models.User]{
	Name: PageUsers,
	Search: []query.SearchField[models.User]{
		{Name: "name", Get: userName},
		{Name: "email", Get: userEmail},
		{Name: "hospital", Get: userHospital},
	},
	Facets: []query.Facet[models.User]{
		{Name: "role", Label: "Role", Values: RoleNames(SeedRoles()), Get: userRole},
		{Name: "status", Label: "Status", Values: []string{"active", "inactive", "suspended"}, Get: userStatus},
	},
	Aggregates: []query.Aggregate[models.User]{
		{Name: "total", Scope: query.ScopeAll, Pred: query.Any[models.User]},
		{Name: "active", Scope: query.ScopeAll, Pred: query.Eq(userStatus, "active")},
		{Name: "inactive", Scope: query.ScopeAll, Pred: query.Eq(userStatus, "inactive")},
		{Name: "external", Scope: query.ScopeAll, Pred: func(u models.User) bool { return IsExternal(u.Email) }},
	},
}

// RoleNames lists role names in catalog order.
func RoleNames(roles []models.Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	return names
}

// ---- hospitals

var (
	hospitalName     = text(func(h models.Hospital) string { return h.Name })
	hospitalLocation = text(func(h models.Hospital) string { return h.Location })
	hospitalStatus   = text(func(h models.Hospital) string { return h.Status })
)

// HospitalSchema has no facets on the original page; status is offered as
// one since it is a closed enumeration.
var HospitalSchema = query.Schema[models.Hospital]{
	Name: PageHospitals,
	Search: []query.SearchField[models.Hospital]{
		{Name: "name", Get: hospitalName},
		{Name: "location", Get: hospitalLocation},
	},
	Facets: []query.Facet[models.Hospital]{
		{Name: "status", Label: "Status", Values: []string{"online", "warning", "offline"}, Get: hospitalStatus},
	},
	Aggregates: []query.Aggregate[models.Hospital]{
		{Name: "total", Scope: query.ScopeAll, Pred: query.Any[models.Hospital]},
		{Name: "online", Scope: query.ScopeAll, Pred: query.Eq(hospitalStatus, "online")},
		{Name: "warning", Scope: query.ScopeAll, Pred: query.Eq(hospitalStatus, "warning")},
	},
}

// ---- quality tests

var (
	resultName     = text(func(t models.TestResult) string { return t.Name })
	resultBatch    = text(func(t models.TestResult) string { return t.Batch })
	resultHospital = text(func(t models.TestResult) string { return t.Hospital })
	resultStatus   = text(func(t models.TestResult) string { return t.Status })
)

var QualitySchema = query.Schema[models.TestResult]{
	Name: PageQuality,
	Search: []query.SearchField[models.TestResult]{
		{Name: "name", Get: resultName},
		{Name: "batch", Get: resultBatch},
		{Name: "hospital", Get: resultHospital},
	},
	Facets: []query.Facet[models.TestResult]{
		{Name: "status", Label: "Status", Values: []string{"passed", "failed", "testing"}, Get: resultStatus},
	},
	Aggregates: []query.Aggregate[models.TestResult]{
		{Name: "passed", Scope: query.ScopeFiltered, Pred: query.Eq(resultStatus, "passed")},
		{Name: "failed", Scope: query.ScopeFiltered, Pred: query.Eq(resultStatus, "failed")},
		{Name: "testing", Scope: query.ScopeFiltered, Pred: query.Eq(resultStatus, "testing")},
	},
}

// ---- compliance

var (
	standardName        = text(func(s models.Standard) string { return s.Name })
	standardDescription = text(func(s models.Standard) string { return s.Description })
	standardStatus      = text(func(s models.Standard) string { return s.Status })
)

var StandardSchema = query.Schema[models.Standard]{
	Name: PageCompliance,
	Search: []query.SearchField[models.Standard]{
		{Name: "name", Get: standardName},
		{Name: "description", Get: standardDescription},
	},
	Facets: []query.Facet[models.Standard]{
		{Name: "status", Label: "Status", Values: []string{"compliant", "warning", "violation"}, Get: standardStatus},
	},
	Aggregates: []query.Aggregate[models.Standard]{
		{Name: "compliant", Scope: query.ScopeAll, Pred: query.Eq(standardStatus, "compliant")},
		{Name: "warning", Scope: query.ScopeAll, Pred: query.Eq(standardStatus, "warning")},
	},
}

var (
	auditHospital = text(func(a models.Audit) string { return a.Hospital })
	auditStandard = text(func(a models.Audit) string { return a.Standard })
	auditAuditor  = text(func(a models.Audit) string { return a.Auditor })
	auditResult   = text(func(a models.Audit) string { return a.Result })
)

var AuditSchema = query.Schema[models.Audit]{
	Name: PageAudits,
	Search: []query.SearchField[models.Audit]{
		{Name: "hospital", Get: auditHospital},
		{Name: "standard", Get: auditStandard},
		{Name: "auditor", Get: auditAuditor},
	},
	Facets: []query.Facet[models.Audit]{
		{Name: "result", Label: "Result", Values: []string{"Pass", "Conditional Pass"}, Get: auditResult},
	},
	Aggregates: []query.Aggregate[models.Audit]{
		{Name: "pass", Scope: query.ScopeFiltered, Pred: query.Eq(auditResult, "Pass")},
	},
}

var (
	violationHospital    = text(func(v models.Violation) string { return v.Hospital })
	violationStandard    = text(func(v models.Violation) string { return v.Standard })
	violationDescription = text(func(v models.Violation) string { return v.Description })
	violationSeverity    = text(func(v models.Violation) string { return v.Severity })
	violationStatus      = text(func(v models.Violation) string { return v.Status })
)

// OpenViolation reports whether a violation still needs remediation.
var OpenViolation = query.Ne(violationStatus, "resolved")

var ViolationSchema = query.Schema[models.Violation]{
	Name: PageViolations,
	Search: []query.SearchField[models.Violation]{
		{Name: "hospital", Get: violationHospital},
		{Name: "standard", Get: violationStandard},
		{Name: "description", Get: violationDescription},
	},
	Facets: []query.Facet[models.Violation]{
		{Name: "severity", Label: "Severity", Values: []string{"high", "medium", "low"}, Get: violationSeverity},
		{Name: "status", Label: "Status", Values: []string{"remediation", "resolved"}, Get: violationStatus},
	},
	Aggregates: []query.Aggregate[models.Violation]{
		{Name: "open", Scope: query.ScopeFiltered, Pred: OpenViolation},
	},
}

// ---- monitor

var (
	activityHospital = text(func(a models.Activity) string { return a.Hospital })
	activityNode     = text(func(a models.Activity) string { return a.Node })
	activityAction   = text(func(a models.Activity) string { return a.Action })
	activityBatch    = text(func(a models.Activity) string { return a.Batch })
	activityStatus   = text(func(a models.Activity) string { return a.Status })
)

var ActivitySchema = query.Schema[models.Activity]{
	Name: PageMonitor,
	Search: []query.SearchField[models.Activity]{
		{Name: "hospital", Get: activityHospital},
		{Name: "node", Get: activityNode},
		{Name: "action", Get: activityAction},
		{Name: "batch", Get: activityBatch},
	},
	Facets: []query.Facet[models.Activity]{
		{Name: "status", Label: "Status", Values: []string{"success", "warning", "info"}, Get: activityStatus},
	},
	Aggregates: []query.Aggregate[models.Activity]{
		{Name: "warning", Scope: query.ScopeFiltered, Pred: query.Eq(activityStatus, "warning")},
	},
}

var (
	nodeName     = text(func(n models.NodeStatus) string { return n.Name })
	nodeHospital = text(func(n models.NodeStatus) string { return n.Hospital })
	nodeLocation = text(func(n models.NodeStatus) string { return n.Location })
	nodeStatus   = text(func(n models.NodeStatus) string { return n.Status })
)

var NodeSchema = query.Schema[models.NodeStatus]{
	Name: PageNodes,
	Search: []query.SearchField[models.NodeStatus]{
		{Name: "name", Get: nodeName},
		{Name: "hospital", Get: nodeHospital},
		{Name: "location", Get: nodeLocation},
	},
	Facets: []query.Facet[models.NodeStatus]{
		{Name: "status", Label: "Status", Values: []string{"active", "warning", "offline"}, Get: nodeStatus},
		{Name: "load", Label: "Load", Values: []string{"normal", "high", "critical"}, Get: func(n models.NodeStatus) (string, bool) {
			return n.Level().String(), true
		}},
	},
	Aggregates: []query.Aggregate[models.NodeStatus]{
		{Name: "high_load", Scope: query.ScopeAll, Pred: func(n models.NodeStatus) bool { return n.Level() != models.LoadNormal }},
		{Name: "offline", Scope: query.ScopeAll, Pred: query.Eq(nodeStatus, "offline")},
	},
}
