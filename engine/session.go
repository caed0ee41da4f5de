package engine

import (
	"github.com/taskpad/taskpad/models"
	"github.com/taskpad/taskpad/store"
)

// Session owns the canonical task collection for the lifetime of the
// process. It is single-threaded by contract: the presentation layer issues
// one command at a time, to completion, so no locking is needed here.
type Session struct {
	store       store.CollectionStore
	tasks       []models.Task
	lastSaveErr error
}

// Open hydrates a session from the store. This happens exactly once, before
// any command is accepted. A missing, corrupt or unreadable payload yields
// an empty collection; hydration never fails.
func Open(st store.CollectionStore) *Session {
	s := &Session{store: st}
	s.tasks, _ = Apply(nil, Hydrate{Tasks: st.Load()})
	return s
}

// Dispatch applies cmd to the canonical collection and synchronously saves
// the result. Persistence is best-effort: a failed save keeps the in-memory
// collection as the source of truth for the session and is not surfaced to
// the caller, but it stays observable via LastSaveErr.
func (s *Session) Dispatch(cmd Command) ([]models.Task, error) {
	next, err := Apply(s.tasks, cmd)
	if err != nil {
		return s.tasks, err
	}
	s.tasks = next
	s.lastSaveErr = s.store.Save(next)
	return next, nil
}

// Tasks returns the canonical collection.
func (s *Session) Tasks() []models.Task {
	return s.tasks
}

// LastSaveErr reports the outcome of the most recent write-through save,
// nil if it succeeded.
func (s *Session) LastSaveErr() error {
	return s.lastSaveErr
}
