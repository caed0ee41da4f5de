package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/taskpad/taskpad/models"
	"github.com/taskpad/taskpad/types"
)

// pinClock replaces the engine clock with a deterministic one that advances
// one millisecond per call, and restores it afterwards.
func pinClock(t *testing.T) func() time.Time {
	t.Helper()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	prev := timeNow
	timeNow = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}
	t.Cleanup(func() { timeNow = prev })
	return timeNow
}

func mustAdd(t *testing.T, tasks []models.Task, name, description string) []models.Task {
	t.Helper()
	next, err := Apply(tasks, Add{Name: name, Description: description})
	if err != nil {
		t.Fatalf("Add(%q, %q) failed: %v", name, description, err)
	}
	return next
}

func TestApply_AddAppendsTask(t *testing.T) {
	pinClock(t)

	tasks := mustAdd(t, nil, "Buy milk", "2%, 1 gallon")
	tasks = mustAdd(t, tasks, "Buy bread", "whole grain")

	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Name != "Buy milk" || tasks[1].Name != "Buy bread" {
		t.Errorf("insertion order not preserved: %q, %q", tasks[0].Name, tasks[1].Name)
	}

	created := tasks[1]
	if created.ID == "" {
		t.Error("new task should have an ID")
	}
	if created.Completed {
		t.Error("new task should not be completed")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v on creation", created.CreatedAt, created.UpdatedAt)
	}
	if err := models.ValidateStruct(created); err != nil {
		t.Errorf("created task fails model validation: %v", err)
	}
}

func TestApply_AddTrimsInput(t *testing.T) {
	pinClock(t)

	tasks := mustAdd(t, nil, "  Buy milk  ", "\t2%, 1 gallon\n")
	if tasks[0].Name != "Buy milk" {
		t.Errorf("name not trimmed: %q", tasks[0].Name)
	}
	if tasks[0].Description != "2%, 1 gallon" {
		t.Errorf("description not trimmed: %q", tasks[0].Description)
	}
}

func TestApply_ValidationFailureLeavesCollectionUnchanged(t *testing.T) {
	pinClock(t)
	tasks := mustAdd(t, nil, "Buy milk", "2%, 1 gallon")

	cases := []struct {
		name  string
		cmd   Command
		field string
	}{
		{"add empty name", Add{Name: "   ", Description: "x"}, "name"},
		{"add empty description", Add{Name: "x", Description: " \t "}, "description"},
		{"update empty name", Update{ID: tasks[0].ID, Name: "", Description: "x"}, "name"},
		{"update empty description", Update{ID: tasks[0].ID, Name: "x", Description: ""}, "description"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Apply(tasks, tc.cmd)
			var vErr *types.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *types.ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Errorf("expected failure on field %q, got %q", tc.field, vErr.Field)
			}
			if !reflect.DeepEqual(next, tasks) {
				t.Error("collection changed on validation failure")
			}
		})
	}
}

func TestApply_UpdateReplacesTextOnly(t *testing.T) {
	pinClock(t)
	tasks := mustAdd(t, nil, "Buy milk", "2%, 1 gallon")
	original := tasks[0]

	tasks, err := Apply(tasks, Update{ID: original.ID, Name: " Buy oat milk ", Description: " 1 carton "})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got := tasks[0]
	if got.Name != "Buy oat milk" || got.Description != "1 carton" {
		t.Errorf("text not updated/trimmed: %q / %q", got.Name, got.Description)
	}
	if got.ID != original.ID {
		t.Error("ID must be immutable")
	}
	if got.Completed != original.Completed {
		t.Error("completed must be untouched by update")
	}
	if !got.CreatedAt.Equal(original.CreatedAt) {
		t.Error("createdAt must be immutable")
	}
	if !got.UpdatedAt.After(original.UpdatedAt) {
		t.Error("updatedAt must advance on update")
	}
}

func TestApply_ToggleTwiceRestoresState(t *testing.T) {
	pinClock(t)
	tasks := mustAdd(t, nil, "Buy milk", "2%, 1 gallon")
	id := tasks[0].ID
	t0 := tasks[0].UpdatedAt

	tasks, err := Apply(tasks, Toggle{ID: id})
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !tasks[0].Completed {
		t.Error("first toggle should mark the task completed")
	}
	t1 := tasks[0].UpdatedAt
	if !t1.After(t0) {
		t.Error("updatedAt must strictly increase on first toggle")
	}

	tasks, err = Apply(tasks, Toggle{ID: id})
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if tasks[0].Completed {
		t.Error("second toggle should restore the original state")
	}
	if !tasks[0].UpdatedAt.After(t1) {
		t.Error("updatedAt must strictly increase on second toggle")
	}
}

func TestApply_DeletePreservesOrderAndIsIdempotent(t *testing.T) {
	pinClock(t)
	tasks := mustAdd(t, nil, "a", "a")
	tasks = mustAdd(t, tasks, "b", "b")
	tasks = mustAdd(t, tasks, "c", "c")
	id := tasks[1].ID

	tasks, err := Apply(tasks, Delete{ID: id})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Name != "a" || tasks[1].Name != "c" {
		t.Fatalf("relative order not preserved after delete: %+v", tasks)
	}

	// Second delete of the same ID is a no-op.
	again, err := Apply(tasks, Delete{ID: id})
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if !reflect.DeepEqual(again, tasks) {
		t.Error("second delete must leave the collection unchanged")
	}
}

func TestApply_UnknownIDIsSilentNoOp(t *testing.T) {
	pinClock(t)
	tasks := mustAdd(t, nil, "Buy milk", "2%, 1 gallon")

	for _, cmd := range []Command{
		Update{ID: "missing", Name: "x", Description: "y"},
		Toggle{ID: "missing"},
		Delete{ID: "missing"},
	} {
		next, err := Apply(tasks, cmd)
		if err != nil {
			t.Errorf("%T with unknown ID returned error: %v", cmd, err)
		}
		if !reflect.DeepEqual(next, tasks) {
			t.Errorf("%T with unknown ID changed the collection", cmd)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	pinClock(t)
	tasks := mustAdd(t, nil, "a", "a")
	tasks = mustAdd(t, tasks, "b", "b")

	snapshot := make([]models.Task, len(tasks))
	copy(snapshot, tasks)

	for _, cmd := range []Command{
		Add{Name: "c", Description: "c"},
		Update{ID: tasks[0].ID, Name: "z", Description: "z"},
		Toggle{ID: tasks[1].ID},
		Delete{ID: tasks[0].ID},
	} {
		if _, err := Apply(tasks, cmd); err != nil {
			t.Fatalf("%T: %v", cmd, err)
		}
		if !reflect.DeepEqual(tasks, snapshot) {
			t.Fatalf("%T mutated its input", cmd)
		}
	}
}

func TestApply_Hydrate(t *testing.T) {
	pinClock(t)
	persisted := mustAdd(t, nil, "Buy milk", "2%, 1 gallon")

	got, err := Apply(nil, Hydrate{Tasks: persisted})
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if !reflect.DeepEqual(got, persisted) {
		t.Error("hydrate must replace the collection verbatim")
	}

	// A nil payload is the recovery path: start empty, never fail.
	empty, err := Apply(persisted, Hydrate{Tasks: nil})
	if err != nil {
		t.Fatalf("hydrate nil: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(empty))
	}
}
