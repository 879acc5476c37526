// Package feed broadcasts history-tree mutations to any number of listeners.
//
// A hosting editor publishes one Event per mutating call on its tree; each
// listener observes every event published after it joined, in order. Slow
// listeners buffer; events nobody is waiting for are dropped immediately.
package feed

import (
	"context"
	"iter"
)

// Op names the tree operation an Event describes.
type Op int

const (
	OpAdd Op = iota
	OpChange
	OpDelete
	OpUndo
	OpRedo
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpChange:
		return "change"
	case OpDelete:
		return "delete"
	case OpUndo:
		return "undo"
	case OpRedo:
		return "redo"
	}
	return "invalid"
}

// Event describes one mutation of a history tree.
type Event struct {
	Op Op `json:"op"`

	// Index is the record appended by the operation, or -1 when the
	// operation only moved the cursor (undo/redo).
	Index int `json:"index"`

	// Cursor is the history position after the operation.
	Cursor int `json:"cursor"`
}

type Feed interface {
	// Publish adds events to the feed, waking blocked listeners.
	// Reports whether the events were retained for at least one listener.
	Publish(events ...Event) bool

	// Join returns a listener receiving all events published after this
	// call. Cancelling the context invalidates the listener.
	Join(ctx context.Context) Listener
}

type Listener interface {
	// Next blocks for and returns the next event.
	// Returns the zero Event and false once the listener is invalid.
	Next() (Event, bool)

	// Batch blocks for and returns all currently buffered events.
	// A nil result means the listener is invalid.
	Batch() []Event

	// Iter iterates events until the listener becomes invalid.
	Iter() iter.Seq[Event]
}
