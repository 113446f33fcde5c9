package task

import (
	"fmt"
	"strings"
)

// Priority is the fixed three-tier urgency/importance classification used to
// bucket tasks.
type Priority string

const (
	// UrgentImportant holds the single most important task of the day.
	UrgentImportant Priority = "urgent-important"
	// UrgentLessImportant holds urgent work of secondary importance.
	UrgentLessImportant Priority = "urgent-less-important"
	// ManagementItems holds small administrative items.
	ManagementItems Priority = "management-items"
)

// Priorities returns every priority in board order.
func Priorities() []Priority {
	return []Priority{
		UrgentImportant,
		UrgentLessImportant,
		ManagementItems,
	}
}

// ParsePriority converts a string to a Priority. Short aliases (ui, uli, mi)
// are accepted for CLI convenience.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case "ui", "1":
		return UrgentImportant, nil
	case "uli", "2":
		return UrgentLessImportant, nil
	case "mi", "3":
		return ManagementItems, nil
	}
	for _, candidate := range Priorities() {
		if candidate == p {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("task: unknown priority %q", raw)
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	for _, candidate := range Priorities() {
		if candidate == p {
			return true
		}
	}
	return false
}

// Capacity is the maximum bucket size surfaces should allow. The store does
// not enforce it.
func (p Priority) Capacity() int {
	switch p {
	case UrgentImportant:
		return 1
	case UrgentLessImportant:
		return 2
	case ManagementItems:
		return 3
	default:
		return 0
	}
}

// Label returns a human-friendly heading for the priority.
func (p Priority) Label() string {
	switch p {
	case UrgentImportant:
		return "Urgent & Important"
	case UrgentLessImportant:
		return "Urgent, Less Important"
	case ManagementItems:
		return "Management Items"
	default:
		return string(p)
	}
}

func (p Priority) String() string {
	return string(p)
}
