package wikiloop

import (
	"fmt"
	"strings"
)

// FormatJourney formats a journey result for display.
// Each visited page is listed on its own line, numbered in visiting order,
// followed by a blank line and the outcome.
// Uses title if available, falls back to the page URL.
func FormatJourney(r *Result) string {
	if r == nil {
		return ""
	}

	parts := make([]string, 0, len(r.Journey)+2)
	for i, page := range r.Journey {
		header := page.Title
		if header == "" {
			header = page.URL
		}
		parts = append(parts, fmt.Sprintf("%d. %s <%s>", i+1, header, page.URL))
	}
	if len(parts) > 0 {
		parts = append(parts, "")
	}

	if r.OK() {
		parts = append(parts, fmt.Sprintf("Reached %s after %d pages.", r.URL, len(r.Journey)))
	} else {
		parts = append(parts, r.Message())
	}

	return strings.Join(parts, "\n")
}
