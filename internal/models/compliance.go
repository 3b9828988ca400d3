package models

// Standard is a regulatory standard tracked for compliance.
type Standard struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"` // compliant, warning, violation
	LastAudit   string  `json:"lastAudit"`
	NextAudit   string  `json:"nextAudit"`
	Score       float64 `json:"score"`
	Violations  int     `json:"violations"`
}

// Audit is a completed compliance audit.
type Audit struct {
	ID       int64   `json:"id"`
	Hospital string  `json:"hospital"`
	Standard string  `json:"standard"`
	Date     string  `json:"date"`
	Auditor  string  `json:"auditor"`
	Result   string  `json:"result"` // Pass, Conditional Pass
	Score    float64 `json:"score"`
	Findings int     `json:"findings"`
}

// Violation is a compliance finding under remediation.
type Violation struct {
	ID           int64  `json:"id"`
	Hospital     string `json:"hospital"`
	Standard     string `json:"standard"`
	Severity     string `json:"severity"` // high, medium, low
	Description  string `json:"description"`
	DateReported string `json:"dateReported"`
	Status       string `json:"status"` // remediation, resolved
	DueDate      string `json:"dueDate"`
}
