package models

import "time"

// Alert is a network alert raised by testing, monitoring or compliance.
type Alert struct {
	ID             int64     `json:"id"`
	Type           string    `json:"type"` // critical, warning, info, success
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Hospital       string    `json:"hospital"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`   // active, investigating, resolved, monitoring
	Priority       string    `json:"priority"` // high, medium, low
	Source         string    `json:"source"`
	AcknowledgedBy string    `json:"acknowledgedBy,omitempty"` // empty until someone picks it up
}

// SystemAlert is an entry in the overview's recent alerts list.
type SystemAlert struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Hospital    string `json:"hospital"`
	Age         string `json:"age"`
	Status      string `json:"status"`
}
