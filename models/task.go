package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Task is a single to-do item. Name and Description are stored trimmed and
// never empty; ID and CreatedAt are immutable after creation.
type Task struct {
	ID          string    `json:"id" validate:"required,uuid4"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt" validate:"required"`
	UpdatedAt   time.Time `json:"updatedAt" validate:"required,gtefield=CreatedAt"`
}

// TaskList is the persisted aggregate: an ordered sequence of tasks, unique
// by ID, insertion order preserved.
type TaskList struct {
	Tasks      []Task `json:"tasks" validate:"dive"`
	TotalCount int    `json:"totalCount"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewTask builds a task with trimmed text and both timestamps set to now.
// The caller supplies the ID and clock so transitions stay deterministic
// under test.
func NewTask(id, name, description string, now time.Time) Task {
	return Task{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
