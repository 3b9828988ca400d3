package models

// MonthlyMetric is one month of network test volume.
type MonthlyMetric struct {
	Month      string  `json:"month"`
	Tests      int     `json:"tests"`
	Passed     int     `json:"passed"`
	Failed     int     `json:"failed"`
	Compliance float64 `json:"compliance"`
}

// HospitalPerformance compares hospitals over the reporting period.
type HospitalPerformance struct {
	Name       string  `json:"name"`
	Tests      int     `json:"tests"`
	Compliance float64 `json:"compliance"`
	Efficiency int     `json:"efficiency"`
}

// TestTypeShare is the share of tests by analysis method.
type TestTypeShare struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
	Count   int    `json:"count"`
}
