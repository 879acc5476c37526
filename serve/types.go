// Package serve shares one history tree between editor clients over WebSocket.
//
// Clients speak a small JSON protocol: a hello handshake, then op requests
// (add/change/delete/undo/redo/children/get) answered in order. When a feed is
// attached, every mutation is also pushed to every connected client, so hosts
// can mirror each other's undo state.
package serve

import (
	"sync"

	"github.com/PistonDevelopers/history-tree/feed"
	"github.com/PistonDevelopers/history-tree/tree"
)

// Handler serves one shared tree over WebSocket.
type Handler struct {
	// Tree is the shared history tree. Required.
	Tree tree.Tree

	// Feed, when set, receives an event per mutation and is pushed to every
	// connected client.
	Feed feed.Feed

	// SkipOriginVerify allows any hostname to connect here, not just our own.
	SkipOriginVerify bool

	// OpLimit optionally limits the rate of ops per session.
	// A session exceeding it is killed; the client learns the limit at hello.
	OpLimit *LimitConfig

	// unexported fields

	once      sync.Once
	writerMu  sync.Mutex // serializes mutations across sessions
	sessionCh <-chan int
}

type helloMessage struct {
	Protocol string `json:"p"`
}

type helloResponse struct {
	Ok      bool         `json:"ok"`
	Session int          `json:"s"`
	Root    int          `json:"root"`
	Cursor  int          `json:"cursor"`
	Limit   *LimitConfig `json:"l,omitzero"`
}

type opRequest struct {
	// ID correlates the response; clients should use increasing values.
	ID int `json:"id"`

	// Op is one of add/change/delete/undo/redo/children/get.
	Op string `json:"op"`

	// Target is the parent for add, the target for change/delete, and the
	// queried record for children/get.
	Target int `json:"t"`

	// Cursor optionally pins a children query to an explicit position.
	Cursor *int `json:"c,omitempty"`
}

type recordMessage struct {
	Kind   string `json:"kind"`
	Parent *int   `json:"parent,omitempty"`
	Prev   *int   `json:"prev,omitempty"`
}

// serverMessage is every frame the server writes after hello: either a
// response (ID echoes the request) or a pushed feed event (Event set).
type serverMessage struct {
	ID       int            `json:"id,omitempty"`
	Index    *int           `json:"index,omitempty"`
	Moved    *bool          `json:"moved,omitempty"`
	Children []int          `json:"children,omitempty"`
	Record   *recordMessage `json:"record,omitempty"`
	Cursor   int            `json:"cursor"`
	Err      string         `json:"err,omitempty"`

	Event *feed.Event `json:"ev,omitempty"`
}
