package tree

import (
	"fmt"
	"sync"
)

type treeImpl struct {
	mu      sync.RWMutex
	records []Record
	cursor  int
}

func (t *treeImpl) Root() int { return 0 }

func (t *treeImpl) Cursor() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor
}

func (t *treeImpl) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

func (t *treeImpl) Get(id int) (Record, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if id < 0 || id >= len(t.records) {
		return Record{}, fmt.Errorf("%w: %d", ErrOutOfRange, id)
	}
	return t.records[id], nil
}

func (t *treeImpl) Add(parent int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if parent < 0 || parent >= len(t.records) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownParent, parent)
	}

	id := len(t.records)
	t.records = append(t.records, Record{Kind: KindAdd, Parent: parent, Prev: None})
	t.cursor = id
	return id, nil
}

func (t *treeImpl) Change(target int) (int, error) {
	return t.supersede(KindChange, target)
}

func (t *treeImpl) Delete(target int) (int, error) {
	return t.supersede(KindDelete, target)
}

func (t *treeImpl) supersede(kind Kind, target int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if target < 0 || target >= len(t.records) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTarget, target)
	}

	id := len(t.records)
	t.records = append(t.records, Record{Kind: kind, Parent: None, Prev: target})
	t.cursor = id
	return id, nil
}

func (t *treeImpl) Undo() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cursor == 0 {
		return false
	}
	t.cursor--
	return true
}

func (t *treeImpl) Redo() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cursor >= len(t.records)-1 {
		return false
	}
	t.cursor++
	return true
}

func (t *treeImpl) ActiveVersion(id int) (int, error) {
	return t.Snapshot().ActiveVersion(id)
}

func (t *treeImpl) Children(parent int) ([]int, error) {
	return t.Snapshot().Children(parent)
}

func (t *treeImpl) ChildrenAt(parent, cursor int) ([]int, error) {
	t.mu.RLock()
	records := t.records
	t.mu.RUnlock()

	if cursor < 0 || cursor >= len(records) {
		return nil, fmt.Errorf("%w: cursor %d", ErrOutOfRange, cursor)
	}
	return view{records: records, cursor: cursor}.childrenOf(parent)
}

func (t *treeImpl) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	// Records are immutable once appended, so sharing the backing array with
	// future appends is safe; the slice length pins this view.
	return view{records: t.records, cursor: t.cursor}
}
