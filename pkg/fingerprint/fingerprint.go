// Package fingerprint computes blake2b tree-mode digests for file contents.
//
// The content is cut in leaves of a fixed size. Every leaf is hashed as a node of depth 0,
// then the concatenated leaf digests are hashed into the root node.
// The same content and leaf size always yield the same digest.
package fingerprint

import (
	"bytes"
	"encoding/hex"
	"io"

	units "github.com/docker/go-units"
	blake2b "github.com/minio/blake2b-simd"
)

const (
	// DefaultLeafSize is the leaf size used when none is specified
	DefaultLeafSize = 5 * units.MiB

	// DefaultSize is the size in bytes of the digest
	DefaultSize = 32
)

// Option to configure a Maker
type Option func(*Maker)

// LeafSize sets the size of the leaves in tree mode
func LeafSize(sz int64) Option {
	return func(m *Maker) {
		if sz > 0 {
			m.leafSize = uint32(sz)
		}
	}
}

// New fingerprint maker
func New(opts ...Option) *Maker {
	m := &Maker{
		leafSize: uint32(DefaultLeafSize),
		size:     DefaultSize,
	}

	for _, apply := range opts {
		apply(m)
	}
	return m
}

// Maker computes digests
type Maker struct {
	size     uint8
	leafSize uint32
}

// LeafSize used by this maker
func (m *Maker) LeafSize() uint32 {
	return m.leafSize
}

// Process the content of a reader into a digest.
//
// Memory use is bounded by the smallest of the leaf size and the content size.
func (m *Maker) Process(r io.Reader) ([]byte, error) {
	var (
		leaves []byte
		part   bytes.Buffer
		next   [1]byte
		carry  bool
	)

	for idx := uint64(0); ; idx++ {
		part.Reset()
		if carry {
			_ = part.WriteByte(next[0])
		}
		if _, err := io.CopyN(&part, r, int64(m.leafSize)-int64(part.Len())); err != nil && err != io.EOF {
			return nil, err
		}

		last := uint32(part.Len()) < m.leafSize
		if !last {
			// a full leaf is the last one only when nothing follows
			n, err := io.ReadFull(r, next[:])
			if err != nil && err != io.EOF {
				return nil, err
			}
			last = n == 0
			carry = n == 1
		}

		digest, err := m.leaf(idx, part.Bytes(), last)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, digest...)
		if last {
			break
		}
	}
	return m.root(leaves)
}

// Hash returns the hex encoded digest for some content
func (m *Maker) Hash(data []byte) (string, error) {
	var leaves []byte
	for idx := uint64(0); ; idx++ {
		end := len(data)
		if end > int(m.leafSize) {
			end = int(m.leafSize)
		}
		last := end == len(data)

		digest, err := m.leaf(idx, data[:end], last)
		if err != nil {
			return "", err
		}
		leaves = append(leaves, digest...)
		data = data[end:]
		if last {
			break
		}
	}

	digest, err := m.root(leaves)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest), nil
}

func (m *Maker) leaf(part uint64, content []byte, lastChunk bool) ([]byte, error) {
	blake, err := blake2b.New(&blake2b.Config{
		Size: m.size,
		Tree: &blake2b.Tree{
			Fanout:        0,
			MaxDepth:      2,
			LeafSize:      m.leafSize,
			NodeOffset:    part,
			NodeDepth:     0,
			InnerHashSize: m.size,
			IsLastNode:    lastChunk,
		},
	})
	if err != nil {
		return nil, err
	}
	if _, err = blake.Write(content); err != nil {
		return nil, err
	}
	return blake.Sum(nil), nil
}

// root hashes the concatenated leaf digests into the top level digest
func (m *Maker) root(leaves []byte) ([]byte, error) {
	blake, err := blake2b.New(&blake2b.Config{
		Size: m.size,
		Tree: &blake2b.Tree{
			Fanout:        0,
			MaxDepth:      2,
			LeafSize:      m.leafSize,
			NodeOffset:    0,
			NodeDepth:     1,
			InnerHashSize: m.size,
			IsLastNode:    true,
		},
	})
	if err != nil {
		return nil, err
	}
	if _, err = blake.Write(leaves); err != nil {
		return nil, err
	}
	return blake.Sum(nil), nil
}
