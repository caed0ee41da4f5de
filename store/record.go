package store

import (
	"time"

	"github.com/taskpad/taskpad/models"
)

// StorageKey is the fixed, versioned key the collection is stored under.
// Bumping the version suffix abandons old payloads: they fail decoding and
// are dropped by Load's recovery path, which is the intended migration
// behavior for schema changes.
const StorageKey = "todo.tasks.v1"

// taskRecord is the wire form of a task: timestamps as integer epoch millis.
type taskRecord struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description" yaml:"description" toml:"description"`
	Completed   bool   `json:"completed" yaml:"completed" toml:"completed"`
	CreatedAt   int64  `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt"`
}

// taskDocument wraps the ordered record list. TOML cannot represent a
// top-level array, so all formats share the same envelope.
type taskDocument struct {
	Tasks []taskRecord `json:"tasks" yaml:"tasks" toml:"tasks"`
}

func encodeTasks(tasks []models.Task) taskDocument {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, taskRecord{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt.UnixMilli(),
			UpdatedAt:   t.UpdatedAt.UnixMilli(),
		})
	}
	return taskDocument{Tasks: records}
}

func decodeTasks(doc taskDocument) []models.Task {
	tasks := make([]models.Task, 0, len(doc.Tasks))
	for _, r := range doc.Tasks {
		tasks = append(tasks, models.Task{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Completed:   r.Completed,
			CreatedAt:   time.UnixMilli(r.CreatedAt).UTC(),
			UpdatedAt:   time.UnixMilli(r.UpdatedAt).UTC(),
		})
	}
	return tasks
}
