package model

// ChangeSet captures the pending changes recorded in the staging index.
//
// Added binds paths to the hash of their new content, Removed binds paths to the hash they were tracked with.
type ChangeSet struct {
	Added   Manifest `json:"added" yaml:"added"`
	Removed Manifest `json:"removed" yaml:"removed"`
}

// IsEmpty is true when there is nothing to commit
func (c ChangeSet) IsEmpty() bool {
	return c.Added.IsEmpty() && c.Removed.IsEmpty()
}

// Fold the change set into a parent manifest.
//
// Removed paths are dropped first, then added paths are inserted or overwritten.
func (c ChangeSet) Fold(parent Manifest) Manifest {
	txn := parent.root().Txn()
	c.Removed.Walk(func(path, _ string) bool {
		txn.Delete([]byte(path))
		return true
	})
	c.Added.Walk(func(path, hash string) bool {
		txn.Insert([]byte(path), hash)
		return true
	})
	return Manifest{tree: txn.Commit()}
}
