package tree

import (
	"errors"
	"slices"
	"testing"
)

func mustAdd(t *testing.T, tr Tree, parent int) int {
	t.Helper()
	id, err := tr.Add(parent)
	if err != nil {
		t.Fatalf("Add(%d) failed: %v", parent, err)
	}
	return id
}

func mustChange(t *testing.T, tr Tree, target int) int {
	t.Helper()
	id, err := tr.Change(target)
	if err != nil {
		t.Fatalf("Change(%d) failed: %v", target, err)
	}
	return id
}

func mustDelete(t *testing.T, tr Tree, target int) int {
	t.Helper()
	id, err := tr.Delete(target)
	if err != nil {
		t.Fatalf("Delete(%d) failed: %v", target, err)
	}
	return id
}

func wantChildren(t *testing.T, tr Tree, parent int, want ...int) {
	t.Helper()
	out, err := tr.Children(parent)
	if err != nil {
		t.Fatalf("Children(%d) failed: %v", parent, err)
	}
	if !slices.Equal(out, want) {
		t.Errorf("Children(%d): got %v, want %v", parent, out, want)
	}
}

func TestLogAppendOrder(t *testing.T) {
	tr := New()

	if tr.Root() != 0 {
		t.Errorf("root should be 0, was=%v", tr.Root())
	}
	if tr.Len() != 1 {
		t.Errorf("fresh tree should hold just the root, len=%v", tr.Len())
	}

	a := mustAdd(t, tr, tr.Root())
	b := mustChange(t, tr, a)
	c := mustDelete(t, tr, b)
	d := mustAdd(t, tr, tr.Root())

	if a != 1 || b != 2 || c != 3 || d != 4 {
		t.Errorf("indices not sequential: %v %v %v %v", a, b, c, d)
	}
	if tr.Len() != 5 {
		t.Errorf("expected 5 records, len=%v", tr.Len())
	}
	if tr.Cursor() != d {
		t.Errorf("cursor should follow last op, was=%v", tr.Cursor())
	}

	for id, want := range []Record{
		{Kind: KindAdd, Parent: None, Prev: None},
		{Kind: KindAdd, Parent: 0, Prev: None},
		{Kind: KindChange, Parent: None, Prev: 1},
		{Kind: KindDelete, Parent: None, Prev: 2},
		{Kind: KindAdd, Parent: 0, Prev: None},
	} {
		got, err := tr.Get(id)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", id, err)
		}
		if got != want {
			t.Errorf("Get(%d): got %+v, want %+v", id, got, want)
		}
	}
}

func TestGetOutOfRange(t *testing.T) {
	tr := New()

	for _, id := range []int{-1, 1, 100} {
		_, err := tr.Get(id)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Get(%d): expected ErrOutOfRange, got %v", id, err)
		}
	}
}

func TestPreconditions(t *testing.T) {
	tr := New()
	mustAdd(t, tr, tr.Root())

	if _, err := tr.Add(99); !errors.Is(err, ErrUnknownParent) {
		t.Errorf("Add(99): expected ErrUnknownParent, got %v", err)
	}
	if _, err := tr.Add(-1); !errors.Is(err, ErrUnknownParent) {
		t.Errorf("Add(-1): expected ErrUnknownParent, got %v", err)
	}
	if _, err := tr.Change(99); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Change(99): expected ErrUnknownTarget, got %v", err)
	}
	if _, err := tr.Delete(-2); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Delete(-2): expected ErrUnknownTarget, got %v", err)
	}

	// a rejected op must leave no trace
	if tr.Len() != 2 {
		t.Errorf("rejected ops appended records, len=%v", tr.Len())
	}
	if tr.Cursor() != 1 {
		t.Errorf("rejected ops moved the cursor, was=%v", tr.Cursor())
	}
}

func TestUndoRedoBounds(t *testing.T) {
	tr := New()

	if tr.Undo() {
		t.Errorf("undo on fresh tree should not move")
	}
	if tr.Redo() {
		t.Errorf("redo on fresh tree should not move")
	}

	mustAdd(t, tr, tr.Root())
	mustAdd(t, tr, tr.Root())

	if tr.Redo() {
		t.Errorf("redo at tip should not move")
	}
	if !tr.Undo() || !tr.Undo() {
		t.Errorf("undo should move twice")
	}
	if tr.Cursor() != 0 {
		t.Errorf("cursor should be back at root, was=%v", tr.Cursor())
	}
	if tr.Undo() {
		t.Errorf("undo at root should not move")
	}
	if !tr.Redo() || !tr.Redo() {
		t.Errorf("redo should move twice")
	}
	if tr.Redo() {
		t.Errorf("redo past tip should not move")
	}
	if tr.Cursor() != 2 {
		t.Errorf("cursor should be back at tip, was=%v", tr.Cursor())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	tr := New()
	root := tr.Root()

	a := mustAdd(t, tr, root)
	b := mustAdd(t, tr, a)
	mustChange(t, tr, b)

	before := tr.Cursor()
	beforeRoot, _ := tr.Children(root)
	beforeA, _ := tr.Children(a)

	if !tr.Undo() {
		t.Fatalf("undo should move")
	}
	if !tr.Redo() {
		t.Fatalf("redo should move")
	}

	if tr.Cursor() != before {
		t.Errorf("cursor not restored: got %v, want %v", tr.Cursor(), before)
	}
	afterRoot, _ := tr.Children(root)
	afterA, _ := tr.Children(a)
	if !slices.Equal(beforeRoot, afterRoot) || !slices.Equal(beforeA, afterA) {
		t.Errorf("children changed over undo/redo pair: %v/%v vs %v/%v",
			beforeRoot, beforeA, afterRoot, afterA)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{
		KindAdd:    "add",
		KindChange: "change",
		KindDelete: "delete",
		Kind(99):   "invalid",
	} {
		if k.String() != want {
			t.Errorf("Kind(%d).String(): got %v, want %v", int(k), k.String(), want)
		}
	}
}
