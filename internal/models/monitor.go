package models

import "time"

// Activity is one synthetic event in the real-time monitor feed.
type Activity struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	Hospital  string    `json:"hospital"`
	Node      string    `json:"node"`
	Action    string    `json:"action"`
	Batch     string    `json:"batch"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"` // success, warning, info
}

// NodeStatus is the current state of a testing node.
type NodeStatus struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Hospital string `json:"hospital"`
	Location string `json:"location"`
	Status   string `json:"status"` // active, warning, offline
	Load     int    `json:"load"`   // percent
}

// LoadLevel buckets node load for display.
type LoadLevel int

const (
	LoadNormal LoadLevel = iota
	LoadHigh
	LoadCritical
)

// Level classifies the node's load: >=90 critical, >=75 high.
func (n NodeStatus) Level() LoadLevel {
	switch {
	case n.Load >= 90:
		return LoadCritical
	case n.Load >= 75:
		return LoadHigh
	default:
		return LoadNormal
	}
}

func (l LoadLevel) String() string {
	switch l {
	case LoadCritical:
		return "critical"
	case LoadHigh:
		return "high"
	default:
		return "normal"
	}
}
