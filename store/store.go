// Package store pairs a history tree with caller payloads.
//
// The tree itself never inspects payloads; this package keeps one payload per
// appended record so hosts can map the indices the tree hands out back to
// their own data. Payloads are append-only, matching the tree's log.
package store

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PistonDevelopers/history-tree/tree"
)

// ErrDeleted indicates a node whose active version is a deletion.
var ErrDeleted = errors.New("node is deleted")

// Store owns a history tree and one payload per record.
type Store[V any] struct {
	mu       sync.RWMutex
	t        tree.Tree
	payloads []V
}

// New builds a store around a fresh tree, with the given root payload.
func New[V any](root V) *Store[V] {
	return &Store[V]{
		t:        tree.New(),
		payloads: []V{root},
	}
}

// Tree exposes the underlying history tree for read queries.
func (s *Store[V]) Tree() tree.Tree { return s.t }

// Root returns the root record index.
func (s *Store[V]) Root() int { return s.t.Root() }

// Add attaches a node with payload v under parent and returns its index.
func (s *Store[V]) Add(parent int, v V) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.t.Add(parent)
	if err != nil {
		return 0, err
	}
	s.payloads = append(s.payloads, v)
	return id, nil
}

// Change supersedes node with a new version carrying payload v.
func (s *Store[V]) Change(node int, v V) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.t.Change(node)
	if err != nil {
		return 0, err
	}
	s.payloads = append(s.payloads, v)
	return id, nil
}

// Delete marks node's active version as removed.
// The deletion record carries the zero payload.
func (s *Store[V]) Delete(node int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.t.Delete(node)
	if err != nil {
		return 0, err
	}
	var zero V
	s.payloads = append(s.payloads, zero)
	return id, nil
}

// Undo steps the tree's cursor back.
func (s *Store[V]) Undo() bool { return s.t.Undo() }

// Redo steps the tree's cursor forward.
func (s *Store[V]) Redo() bool { return s.t.Redo() }

// Children returns the active child versions of parent.
func (s *Store[V]) Children(parent int) ([]int, error) {
	return s.t.Children(parent)
}

// Payload returns the payload stored alongside record id.
func (s *Store[V]) Payload(id int) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	if id < 0 || id >= len(s.payloads) {
		return zero, fmt.Errorf("%w: %d", tree.ErrOutOfRange, id)
	}
	return s.payloads[id], nil
}

// Resolve returns the payload of id's active version.
// Returns ErrDeleted if the node is absent at the current cursor.
func (s *Store[V]) Resolve(id int) (V, error) {
	var zero V

	active, err := s.t.ActiveVersion(id)
	if err != nil {
		return zero, err
	}

	r, err := s.t.Get(active)
	if err != nil {
		return zero, err
	}
	if r.Kind == tree.KindDelete {
		return zero, fmt.Errorf("%w: %d", ErrDeleted, id)
	}
	return s.Payload(active)
}

// Walk visits parent and its active descendants depth-first.
// The callback receives each record index and its depth below parent.
func (s *Store[V]) Walk(parent int, fn func(id, depth int) error) error {
	return s.walk(parent, 0, fn)
}

func (s *Store[V]) walk(id, depth int, fn func(id, depth int) error) error {
	if err := fn(id, depth); err != nil {
		return err
	}
	children, err := s.t.Children(id)
	if err != nil {
		return err
	}
	for _, ch := range children {
		if err := s.walk(ch, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Print writes the subtree under parent to w, one payload per line.
// This mirrors the tree's relations and is meant for debugging.
func (s *Store[V]) Print(w io.Writer, parent int) error {
	return s.Walk(parent, func(id, depth int) error {
		v, err := s.Payload(id)
		if err != nil {
			return err
		}

		var prefix string
		if depth > 0 {
			prefix = strings.Repeat("  ", depth-1) + "|-"
		}
		_, err = fmt.Fprintf(w, "%s%v\n", prefix, v)
		return err
	})
}
