package project

import "strings"

// Status is the canonical work-item status shared by projects, tasks
// and daily updates. Legacy records and client payloads carry several
// spellings ("Not Started", "pending", "in-progress", "in_progress");
// ParseStatus collapses them once at the boundary so only the canonical
// values flow through the data model.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

var statusSynonyms = map[string]Status{
	"not_started": StatusNotStarted,
	"not started": StatusNotStarted,
	"notstarted":  StatusNotStarted,
	"pending":     StatusNotStarted,
	"in_progress": StatusInProgress,
	"in-progress": StatusInProgress,
	"in progress": StatusInProgress,
	"inprogress":  StatusInProgress,
	"completed":   StatusCompleted,
	"complete":    StatusCompleted,
	"done":        StatusCompleted,
	"on_hold":     StatusOnHold,
	"on-hold":     StatusOnHold,
	"on hold":     StatusOnHold,
	"onhold":      StatusOnHold,
}

// ParseStatus normalizes a raw status string. The second return value
// is false for unrecognized input.
func ParseStatus(raw string) (Status, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	status, ok := statusSynonyms[key]
	return status, ok
}

// IsValid reports whether the status is one of the canonical values.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}
