// Package wikiloop follows the first in-body link of encyclopedia articles,
// page after page, until a goal article is reached, a loop is detected, or
// the walk cannot continue.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, rod/) or their
// role (follow/).
package wikiloop
