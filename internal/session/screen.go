// Package session models screen-level list state: refresh on every focus,
// with a generation guard so a stale response never overwrites the result
// of a newer fetch.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/medpro/clinicapp/pkg/logging"
)

// ListScreen owns one screen's raw entity list. Each screen owns its own
// state; nothing is shared across screens.
type ListScreen[T any] struct {
	mu       sync.Mutex
	navID    uuid.UUID
	fetch    func(context.Context) ([]T, error)
	items    []T
	gen      uint64
	inflight int
	logger   *logging.Logger
}

// NewListScreen wires a screen to its fetch function (normally
// Repository.List).
func NewListScreen[T any](fetch func(context.Context) ([]T, error), logger *logging.Logger) *ListScreen[T] {
	if logger == nil {
		logger = logging.Default()
	}
	return &ListScreen[T]{
		navID:  uuid.New(),
		fetch:  fetch,
		logger: logger.Component("session"),
	}
}

// NavID identifies this screen instance across navigations.
func (s *ListScreen[T]) NavID() uuid.UUID { return s.navID }

// OnFocus re-fetches the list. Every navigation back into the screen calls
// this; it is the system's only consistency mechanism. Overlapping calls
// race and the newest fetch wins: an older response arriving late is
// discarded, never applied over newer data.
func (s *ListScreen[T]) OnFocus(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.inflight++
	s.mu.Unlock()

	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		return err
	}
	if gen != s.gen {
		s.logger.Debug("stale fetch discarded", "nav_id", s.navID, "gen", gen)
		return nil
	}
	s.items = items
	return nil
}

// Unmount invalidates any pending fetch so its eventual result is
// discarded.
func (s *ListScreen[T]) Unmount() {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()
}

// Loading reports whether any fetch is still in flight. It goes false on
// every exit path, success or failure.
func (s *ListScreen[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Items returns a copy of the current raw list.
func (s *ListScreen[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
