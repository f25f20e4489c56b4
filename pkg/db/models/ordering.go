package models

import (
	"errors"
	"fmt"
	"strings"
)

// Ordering is the sort order of an issue listing.
// Every ordering sorts descending.
type Ordering int

const (
	// NoOrdering sorts by creation time.
	NoOrdering Ordering = iota

	// Latest sorts by creation time, newest first.
	Latest

	// Title sorts by title.
	Title

	// HighestPriority sorts by priority code, most urgent first.
	HighestPriority

	// RecentlyUpdated sorts by update time, most recent first.
	RecentlyUpdated
)

// ErrUnknownOrdering is returned when an ordering is not one of the known
// orderings.
var ErrUnknownOrdering = errors.New("unknown ordering")

// OrderColumn returns the column an ordering sorts by. The result is one of
// a fixed set of column names and is safe to place in query text.
func (o Ordering) OrderColumn() (string, error) {
	switch o {
	case NoOrdering, Latest:
		return "created_at", nil
	case Title:
		return "title", nil
	case HighestPriority:
		return "priority", nil
	case RecentlyUpdated:
		return "updated_at", nil
	default:
		return "", fmt.Errorf("%w %d", ErrUnknownOrdering, int(o))
	}
}

// String returns the string representation of the ordering.
func (o Ordering) String() string {
	switch o {
	case NoOrdering:
		return "none"
	case Latest:
		return "latest"
	case Title:
		return "title"
	case HighestPriority:
		return "priority"
	case RecentlyUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// ParseOrdering parses an ordering name, ignoring case.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return NoOrdering, nil
	case "latest":
		return Latest, nil
	case "title":
		return Title, nil
	case "priority":
		return HighestPriority, nil
	case "updated":
		return RecentlyUpdated, nil
	default:
		return NoOrdering, fmt.Errorf("%w %q", ErrUnknownOrdering, s)
	}
}
