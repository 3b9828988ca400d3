package models

// Hospital is a member site of the network.
type Hospital struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Address     string  `json:"address"`
	Nodes       int     `json:"nodes"`
	Status      string  `json:"status"` // online, warning, offline
	LastTest    string  `json:"lastTest"`
	Compliance  float64 `json:"compliance"`
	TestsToday  int     `json:"testsToday"`
	Staff       int     `json:"staff"`
	Established string  `json:"established"`
}
