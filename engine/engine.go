// Package engine implements the task state machine: a pure transition
// function over the ordered task collection, plus the session that owns the
// canonical value and keeps it write-through consistent with the store.
//
// Transitions are total. Structurally valid commands never fail except for
// the explicit validation contract on Add and Update; an unknown ID on
// Update, Toggle or Delete is a defined no-op, not an error, so callers can
// rely on idempotent semantics.
package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskpad/taskpad/models"
	"github.com/taskpad/taskpad/types"
)

// Clock and ID generation are package-level so tests can pin them.
// Timestamps are truncated to milliseconds to match the wire format, so a
// save/load round trip reproduces the collection exactly.
var (
	timeNow = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
	newID   = uuid.NewString
)

// Command is a single state transition over the task collection.
type Command interface {
	isCommand()
}

// Add creates a new task appended at the end of the collection.
type Add struct {
	Name        string
	Description string
}

// Update replaces the name and description of the task with the given ID.
// Completed, CreatedAt and ID are left untouched.
type Update struct {
	ID          string
	Name        string
	Description string
}

// Toggle flips the completion state of the task with the given ID.
type Toggle struct {
	ID string
}

// Delete removes the task with the given ID, preserving the relative order
// of the remainder.
type Delete struct {
	ID string
}

// Hydrate replaces the entire collection verbatim. It is the startup-only
// command that loads previously persisted (and therefore already validated)
// state; no validation is re-applied. A nil payload hydrates to empty.
type Hydrate struct {
	Tasks []models.Task
}

func (Add) isCommand()     {}
func (Update) isCommand()  {}
func (Toggle) isCommand()  {}
func (Delete) isCommand()  {}
func (Hydrate) isCommand() {}

// Apply maps one collection state to the next. It never mutates its input:
// mutating commands return a fresh slice, no-ops return the input unchanged.
// The only possible error is a *types.ValidationError from Add or Update, in
// which case the collection is returned unchanged.
func Apply(tasks []models.Task, cmd Command) ([]models.Task, error) {
	switch c := cmd.(type) {
	case Hydrate:
		if c.Tasks == nil {
			return []models.Task{}, nil
		}
		return c.Tasks, nil

	case Add:
		name := strings.TrimSpace(c.Name)
		description := strings.TrimSpace(c.Description)
		if err := validateInput(name, description); err != nil {
			return tasks, err
		}
		next := make([]models.Task, len(tasks), len(tasks)+1)
		copy(next, tasks)
		return append(next, models.NewTask(newID(), name, description, timeNow())), nil

	case Update:
		name := strings.TrimSpace(c.Name)
		description := strings.TrimSpace(c.Description)
		if err := validateInput(name, description); err != nil {
			return tasks, err
		}
		return replace(tasks, c.ID, func(t models.Task) models.Task {
			t.Name = name
			t.Description = description
			t.UpdatedAt = timeNow()
			return t
		}), nil

	case Toggle:
		return replace(tasks, c.ID, func(t models.Task) models.Task {
			t.Completed = !t.Completed
			t.UpdatedAt = timeNow()
			return t
		}), nil

	case Delete:
		idx := indexOf(tasks, c.ID)
		if idx < 0 {
			return tasks, nil
		}
		next := make([]models.Task, 0, len(tasks)-1)
		next = append(next, tasks[:idx]...)
		next = append(next, tasks[idx+1:]...)
		return next, nil
	}

	// Unknown command types are treated like a lookup miss: no-op.
	return tasks, nil
}

// validateInput enforces the pre-transition contract on user-supplied text.
// Inputs are expected to be trimmed already.
func validateInput(name, description string) error {
	if name == "" {
		return types.NewValidationError("name", "must not be empty")
	}
	if description == "" {
		return types.NewValidationError("description", "must not be empty")
	}
	return nil
}

// replace applies fn to the task with the given ID in a copy of tasks.
// If no task matches, the input slice is returned as-is.
func replace(tasks []models.Task, id string, fn func(models.Task) models.Task) []models.Task {
	idx := indexOf(tasks, id)
	if idx < 0 {
		return tasks
	}
	next := make([]models.Task, len(tasks))
	copy(next, tasks)
	next[idx] = fn(next[idx])
	return next
}

func indexOf(tasks []models.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
