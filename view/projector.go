// Package view derives display projections from the canonical task
// collection. Projections are pure: they never mutate their inputs and are
// cheap enough to recompute on every state change.
package view

import (
	"fmt"
	"iter"
	"strings"

	"github.com/taskpad/taskpad/models"
)

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps user input onto a Filter, defaulting empty input to all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("unknown filter %q (expected all, active or completed)", s)
	}
}

// Project returns the visible subsequence of tasks for the given filter and
// search text, in collection order. The result is a lazy, restartable
// sequence over the input slice. Search text is matched case-insensitively
// as a substring of the name or description; whitespace-only search applies
// no filtering. Filter and search compose by logical AND.
func Project(tasks []models.Task, f Filter, search string) iter.Seq[models.Task] {
	needle := strings.ToLower(strings.TrimSpace(search))
	return func(yield func(models.Task) bool) {
		for _, t := range tasks {
			if !matchesFilter(t, f) || !matchesSearch(t, needle) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Counts reduces the canonical collection (not a filtered view) to its
// total and completed task counts.
func Counts(tasks []models.Task) (total, completed int) {
	total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return total, completed
}

func matchesFilter(t models.Task, f Filter) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

func matchesSearch(t models.Task, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Name), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}
