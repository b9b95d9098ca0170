// Package store owns the manual-application ledger: a CSV file listing
// every job that needs a human to finish the application, plus one sidecar
// directory per job holding its raw data and generated documents.
//
// Status graph:
//
//	pending ──► applied
//	    │
//	    └─────► skipped
//
// applied and skipped are terminal; updating a terminal row is a no-op.
package store

import "fmt"

// Status of a manual application. Values match the CSV status column.
type Status string

const (
	StatusPending Status = "pending"
	StatusApplied Status = "applied"
	StatusSkipped Status = "skipped"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusPending: {StatusApplied, StatusSkipped},
	// applied and skipped are terminal, no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusApplied, StatusSkipped:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTransitionAllowed reports whether moving from → to is permitted.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether status has no outgoing transitions.
func IsTerminal(s Status) bool {
	_, ok := validTransitions[s]
	return !ok
}
