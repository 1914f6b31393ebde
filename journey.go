package wikiloop

import (
	"context"
	"fmt"
)

// Status is the terminal state of a journey.
type Status string

// Journey statuses.
const (
	StatusSucceeded    Status = "succeeded"
	StatusLoopDetected Status = "loop_detected"
	StatusPageMissing  Status = "page_missing"
	StatusNoLinkFound  Status = "no_link_found"
)

// Result is the outcome of a journey.
type Result struct {
	Status Status

	// URL is the goal for a successful journey, otherwise the address
	// that stopped it.
	URL string

	// Journey holds the visited pages in visiting order.
	Journey []*PageSummary
}

// OK reports whether the journey reached its goal.
func (r *Result) OK() bool {
	return r.Status == StatusSucceeded
}

// Message returns a human-readable explanation of why the journey stopped.
// Returns an empty string for a successful journey.
func (r *Result) Message() string {
	switch r.Status {
	case StatusLoopDetected:
		return fmt.Sprintf("Cannot continue because we are looping towards %s.", r.URL)
	case StatusPageMissing:
		return fmt.Sprintf("Cannot continue because the page %s is missing.", r.URL)
	case StatusNoLinkFound:
		return fmt.Sprintf("Cannot continue because the page %s has no link.", r.URL)
	default:
		return ""
	}
}

// JourneyService follows links between two pages.
type JourneyService interface {
	// Follow walks from startURL towards goalURL, following the first valid
	// link of every page. Loops, missing pages, and dead ends are reported
	// through the Result; the error is reserved for unexpected failures.
	Follow(ctx context.Context, startURL, goalURL string) (*Result, error)
}
