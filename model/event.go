package model

import "time"

// KindSpeedrun is the entry type the widget displays. Interviews and any other
// entry types are dropped when the schedule is filtered.
const KindSpeedrun = "speedrun"

// Run represents a single scheduled entry of a marathon.
// StartTime keeps the fixed offset it was published with.
type Run struct {
	DisplayName string    `json:"displayName"`
	Category    string    `json:"category"`
	Kind        string    `json:"type"`
	Order       int       `json:"order"`
	StartTime   time.Time `json:"startTime"`
}

// Marathon holds the event name and its speedrun schedule, ascending by start time.
type Marathon struct {
	EventName string `json:"eventName"`
	Schedule  []Run  `json:"schedule"`
}
