package model

import (
	"errors"
	"fmt"
	"strings"
)

// Filter selects which items a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

var ErrUnknownFilter = errors.New("unknown filter")

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter accepts a bare name ("active") or a location fragment
// ("#/active", "/completed"). Empty input means FilterAll.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimLeft(s, "#/")
	switch s {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Match reports whether it passes the filter. Unknown filters keep everything.
func (f Filter) Match(it Item) bool {
	switch f {
	case FilterActive:
		return !it.Done
	case FilterCompleted:
		return it.Done
	default:
		return true
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	for i, g := range Filters {
		if g == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label is the capitalized display name.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Apply returns the items that pass f, in their original order.
func Apply(items []Item, f Filter) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
