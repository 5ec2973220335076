package model

import (
	iradix "github.com/hashicorp/go-immutable-radix"
	jsoniter "github.com/json-iterator/go"
)

// Entry binds a path to the hash of a blob
type Entry struct {
	Path string `json:"path" yaml:"path"`
	Hash string `json:"hash" yaml:"hash"`
}

// Entries represent a collection of entries
type Entries []Entry

// Manifest is an ordered mapping of repository relative paths to blob hashes.
//
// A manifest is immutable: With and Without return a new manifest, sharing its structure with the receiver.
// Iteration always happens in lexicographic order of the paths.
// The zero value is an empty manifest.
type Manifest struct {
	tree *iradix.Tree
}

// NewManifest builds a manifest from a collection of entries.
//
// When a path appears several times, the last entry wins.
func NewManifest(entries ...Entry) Manifest {
	txn := iradix.New().Txn()
	for _, e := range entries {
		txn.Insert([]byte(e.Path), e.Hash)
	}
	return Manifest{tree: txn.Commit()}
}

func (m Manifest) root() *iradix.Tree {
	if m.tree == nil {
		return iradix.New()
	}
	return m.tree
}

// Len is the number of paths tracked by this manifest
func (m Manifest) Len() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// IsEmpty is true when the manifest tracks no path
func (m Manifest) IsEmpty() bool {
	return m.Len() == 0
}

// Get the blob hash for a path
func (m Manifest) Get(path string) (string, bool) {
	if m.tree == nil {
		return "", false
	}
	v, ok := m.tree.Get([]byte(path))
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Has is true when the path is tracked by this manifest
func (m Manifest) Has(path string) bool {
	_, ok := m.Get(path)
	return ok
}

// With returns a manifest binding path to hash
func (m Manifest) With(path, hash string) Manifest {
	tree, _, _ := m.root().Insert([]byte(path), hash)
	return Manifest{tree: tree}
}

// Walk the manifest in path order, until fn returns false
func (m Manifest) Walk(fn func(path, hash string) bool) {
	if m.tree == nil {
		return
	}
	m.tree.Root().Walk(func(k []byte, v interface{}) bool {
		return !fn(string(k), v.(string))
	})
}

// Paths tracked by this manifest, in order
func (m Manifest) Paths() []string {
	result := make([]string, 0, m.Len())
	m.Walk(func(path, _ string) bool {
		result = append(result, path)
		return true
	})
	return result
}

// Entries of this manifest, in path order
func (m Manifest) Entries() Entries {
	result := make(Entries, 0, m.Len())
	m.Walk(func(path, hash string) bool {
		result = append(result, Entry{Path: path, Hash: hash})
		return true
	})
	return result
}

// Equal is true when both manifests bind the same paths to the same hashes
func (m Manifest) Equal(other Manifest) bool {
	if m.Len() != other.Len() {
		return false
	}
	equal := true
	m.Walk(func(path, hash string) bool {
		h, ok := other.Get(path)
		equal = ok && h == hash
		return equal
	})
	return equal
}

// MarshalJSON encodes the manifest as an ordered list of entries
func (m Manifest) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(m.Entries())
}

// UnmarshalJSON decodes an ordered list of entries
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var entries Entries
	if err := jsoniter.Unmarshal(data, &entries); err != nil {
		return err
	}
	*m = NewManifest(entries...)
	return nil
}

// MarshalYAML renders the manifest as a list of entries
func (m Manifest) MarshalYAML() (interface{}, error) {
	return m.Entries(), nil
}
