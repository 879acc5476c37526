package tree

import (
	"fmt"
	"sort"
)

// view is an immutable slice of the log plus a fixed cursor.
// It backs Snapshot and the per-cursor queries; it holds no locks because
// records never change once appended.
type view struct {
	records []Record
	cursor  int
}

func (v view) Cursor() int { return v.cursor }

func (v view) Len() int { return len(v.records) }

func (v view) Get(id int) (Record, error) {
	if id < 0 || id >= len(v.records) {
		return Record{}, fmt.Errorf("%w: %d", ErrOutOfRange, id)
	}
	return v.records[id], nil
}

func (v view) ActiveVersion(id int) (int, error) {
	if id < 0 || id >= len(v.records) {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, id)
	}
	return v.activeOf(id), nil
}

func (v view) Children(parent int) ([]int, error) {
	return v.childrenOf(parent)
}

// activeOf follows override links forward, bounded by the cursor.
// When several records supersede the same one (a mutation after undo leaves
// the abandoned branch in the log), the greatest qualifying index wins.
func (v view) activeOf(id int) int {
	cur := id
	for {
		next := None
		for i := v.cursor; i > cur; i-- {
			if v.records[i].Prev == cur {
				next = i
				break
			}
		}
		if next == None {
			return cur
		}
		cur = next
	}
}

// versionsOf collects every version of parent's node visible at the cursor:
// the override chain walked back to its originating add, then forward through
// every superseding record at or before the cursor. Starting from the origin
// makes the result independent of which handle on the chain the caller holds.
func (v view) versionsOf(parent int) []bool {
	base := parent
	for v.records[base].Prev != None {
		base = v.records[base].Prev
	}

	in := make([]bool, v.cursor+1)
	in[base] = true
	for i := base + 1; i <= v.cursor; i++ {
		if p := v.records[i].Prev; p != None && in[p] {
			in[i] = true
		}
	}
	return in
}

func (v view) childrenOf(parent int) ([]int, error) {
	if parent < 0 || parent >= len(v.records) {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, parent)
	}
	if parent > v.cursor {
		return nil, nil
	}

	in := v.versionsOf(parent)

	var out []int
	for i := 1; i <= v.cursor; i++ {
		r := v.records[i]
		if r.Kind != KindAdd || !in[r.Parent] {
			continue
		}
		active := v.activeOf(i)
		if v.records[active].Kind == KindDelete {
			continue
		}
		out = append(out, active)
	}

	sort.Ints(out)
	return out, nil
}
