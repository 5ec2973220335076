package model

import (
	"sort"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestManifestZeroValue(t *testing.T) {
	var m Manifest
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Paths())
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.True(t, ChangeSet{Removed: NewManifest(Entry{Path: "a", Hash: "1"})}.Fold(m).IsEmpty())

	m2 := m.With("a", "h1")
	assert.Equal(t, 1, m2.Len())
	assert.True(t, m.IsEmpty(), "the receiver must not change")
}

func TestManifestOrder(t *testing.T) {
	m := NewManifest(
		Entry{Path: "zeta.txt", Hash: "z"},
		Entry{Path: "alpha/b.txt", Hash: "b"},
		Entry{Path: "alpha.txt", Hash: "a"},
		Entry{Path: "alpha/a.txt", Hash: "x"},
		Entry{Path: "alpha/a.txt", Hash: "a2"},
	)

	require.Equal(t, 4, m.Len())
	assert.Equal(t, []string{"alpha.txt", "alpha/a.txt", "alpha/b.txt", "zeta.txt"}, m.Paths())
	h, ok := m.Get("alpha/a.txt")
	require.True(t, ok)
	assert.Equal(t, "a2", h)
}

func TestManifestJSON(t *testing.T) {
	m := NewManifest(Entry{Path: "b", Hash: "2"}, Entry{Path: "a", Hash: "1"})

	data, err := jsoniter.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"path":"a","hash":"1"},{"path":"b","hash":"2"}]`, string(data))

	var back Manifest
	require.NoError(t, jsoniter.Unmarshal(data, &back))
	assert.True(t, m.Equal(back))
}

func TestFold(t *testing.T) {
	parent := NewManifest(Entry{Path: "a", Hash: "1"}, Entry{Path: "b", Hash: "2"}, Entry{Path: "c", Hash: "3"})
	cs := ChangeSet{
		Added:   NewManifest(Entry{Path: "b", Hash: "22"}, Entry{Path: "d", Hash: "4"}),
		Removed: NewManifest(Entry{Path: "c", Hash: "3"}),
	}
	require.False(t, cs.IsEmpty())

	folded := cs.Fold(parent)
	assert.Equal(t, Entries{
		{Path: "a", Hash: "1"},
		{Path: "b", Hash: "22"},
		{Path: "d", Hash: "4"},
	}, folded.Entries())
	assert.Equal(t, 3, parent.Len(), "the parent manifest must not change")

	assert.True(t, ChangeSet{}.IsEmpty())
	assert.True(t, ChangeSet{}.Fold(parent).Equal(parent))
}

func genManifest(t *rapid.T, label string) map[string]string {
	return rapid.MapOf(
		rapid.StringMatching(`[a-c]{1,3}(/[a-c]{1,2})?`),
		rapid.StringMatching(`[0-9a-f]{4}`),
	).Draw(t, label)
}

func fromMap(m map[string]string) Manifest {
	entries := make(Entries, 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry{Path: k, Hash: v})
	}
	return NewManifest(entries...)
}

func TestFoldLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := genManifest(t, "base")
		added := genManifest(t, "added")
		removed := genManifest(t, "removed")

		folded := ChangeSet{Added: fromMap(added), Removed: fromMap(removed)}.Fold(fromMap(base))

		expected := make(map[string]string, len(base))
		for k, v := range base {
			if _, gone := removed[k]; !gone {
				expected[k] = v
			}
		}
		for k, v := range added {
			expected[k] = v
		}

		if folded.Len() != len(expected) {
			t.Fatalf("expected %d paths, got %d", len(expected), folded.Len())
		}
		for k, v := range expected {
			if h, ok := folded.Get(k); !ok || h != v {
				t.Fatalf("path %q: expected %q, got %q", k, v, h)
			}
		}

		paths := folded.Paths()
		if !sort.StringsAreSorted(paths) {
			t.Fatalf("paths are not sorted: %v", paths)
		}
	})
}
