package models

// SubTest kinds, in display order.
const (
	SubTestChemical   = "chemical"
	SubTestBiological = "biological"
	SubTestVisual     = "visual"
)

// SubTest is one analysis stage of a quality test.
// Score is nil while the stage is pending or still running.
type SubTest struct {
	Kind      string   `json:"kind"`
	Status    string   `json:"status"` // passed, failed, testing, pending
	Score     *float64 `json:"score"`
	Threshold float64  `json:"threshold"`
}

// TestResult is a medicine batch quality test.
type TestResult struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Batch      string    `json:"batch"`
	Hospital   string    `json:"hospital"`
	Timestamp  string    `json:"timestamp"`
	Status     string    `json:"status"` // passed, failed, testing
	Confidence *float64  `json:"confidence"`
	SubTests   []SubTest `json:"subtests"`
}

// BelowThreshold reports whether a scored stage fell under threshold.
func (s SubTest) BelowThreshold(threshold float64) bool {
	return s.Score != nil && *s.Score < threshold
}
