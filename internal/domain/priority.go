package domain

import "strings"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities lists priorities in ascending weight order.
var ValidPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Weight returns the sort weight of a priority: high=3, medium=2, low=1.
// Unknown values weigh 0 so they sort after every valid priority.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p.Weight() > 0
}

// ParsePriority normalizes case and surrounding whitespace before matching.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", false
	}
	return p, true
}
