// Package tree provides a persistent history tree for undo/redo.
//
// The tree stores immutable records that reference a previous version and a
// parent by plain index. The visible tree is a function of those records plus
// a cursor: moving the cursor back and forth implements undo/redo without ever
// mutating or discarding a stored record. Callers keep their actual payloads
// elsewhere, keyed by the indices this package hands out.
package tree

// Kind describes what a record does to the tree.
type Kind int

const (
	// KindAdd attaches a new node under a parent.
	KindAdd Kind = iota

	// KindChange supersedes a previous record as the active version of its node.
	KindChange

	// KindDelete supersedes a previous record and marks the node absent.
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindChange:
		return "change"
	case KindDelete:
		return "delete"
	}
	return "invalid"
}

// None marks an absent Parent or Prev reference.
const None = -1

// Record is one immutable entry in the history log.
// Its index is its position in the log; indices start at zero and are never
// reused. Parent is set only for KindAdd, Prev only for KindChange/KindDelete.
type Record struct {
	Kind   Kind
	Parent int // parent node for KindAdd, otherwise None
	Prev   int // superseded record for KindChange/KindDelete, otherwise None
}

// Tree is a persistent history tree.
//
// All mutating calls append exactly one record and move the cursor to it; they
// either fully succeed or reject their arguments before any state change.
// Read queries are pure functions of the log and the cursor.
type Tree interface {
	// Root returns the index of the root record, which always exists.
	Root() int

	// Cursor returns the current history position.
	Cursor() int

	// Len returns the number of records ever appended, including the root.
	Len() int

	// Get returns the stored record at the given index.
	Get(id int) (Record, error)

	// Add appends a node under parent and returns its index.
	Add(parent int) (int, error)

	// Change appends a new version of target and returns its index.
	Change(target int) (int, error)

	// Delete appends a deletion of target and returns its index.
	Delete(target int) (int, error)

	// Undo moves the cursor one step back, returning whether it moved.
	Undo() bool

	// Redo moves the cursor one step forward, returning whether it moved.
	Redo() bool

	// ActiveVersion resolves the record currently representing id's node.
	ActiveVersion(id int) (int, error)

	// Children returns the active child versions of parent at the cursor,
	// ascending.
	Children(parent int) ([]int, error)

	// ChildrenAt is Children evaluated at an explicit cursor position.
	ChildrenAt(parent, cursor int) ([]int, error)

	// Snapshot returns an immutable view of the log and cursor as of now.
	Snapshot() Snapshot
}

// Snapshot is a point-in-time read-only view of a Tree.
// Its queries never block and may be used concurrently with further mutation
// of the originating tree.
type Snapshot interface {
	Cursor() int
	Len() int
	Get(id int) (Record, error)
	ActiveVersion(id int) (int, error)
	Children(parent int) ([]int, error)
}
