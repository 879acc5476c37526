package tree

import "errors"

var (
	// ErrOutOfRange indicates an index that has never been assigned.
	ErrOutOfRange = errors.New("index out of range")

	// ErrUnknownParent indicates an Add referencing a nonexistent parent.
	ErrUnknownParent = errors.New("unknown parent")

	// ErrUnknownTarget indicates a Change/Delete referencing a nonexistent record.
	ErrUnknownTarget = errors.New("unknown target")
)
