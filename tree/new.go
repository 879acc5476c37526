package tree

// New builds an empty history tree.
// The log is seeded with a root record at index zero so there is always
// something to attach under; the cursor starts there.
func New() Tree {
	return &treeImpl{
		records: []Record{{Kind: KindAdd, Parent: None, Prev: None}},
	}
}
