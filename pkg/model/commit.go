package model

import (
	"encoding/hex"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	blake2b "github.com/minio/blake2b-simd"
)

const (
	// RootMessage is the message of the commit every repository starts from
	RootMessage = "initial commit"

	// ShortIDLength is the length of abbreviated commit ids
	ShortIDLength = 7

	commitTag = "commit "
)

var canonical = jsoniter.ConfigCompatibleWithStandardLibrary

// Commit is an immutable snapshot of the tracked files
type Commit struct {
	ID        string    `json:"id" yaml:"id"`
	Message   string    `json:"message" yaml:"message"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Parents   []string  `json:"parents,omitempty" yaml:"parents,omitempty"`
	Manifest  Manifest  `json:"manifest" yaml:"manifest"`
}

// NewCommit builds a commit and computes its id
func NewCommit(message string, timestamp time.Time, parents []string, manifest Manifest) (*Commit, error) {
	id, err := CommitID(message, parents, manifest)
	if err != nil {
		return nil, err
	}
	return &Commit{
		ID:        id,
		Message:   message,
		Timestamp: timestamp,
		Parents:   parents,
		Manifest:  manifest,
	}, nil
}

// RootCommit is the synthetic commit every repository starts from.
//
// It carries no file, no parent and the epoch as timestamp, so all repositories share the same root id.
func RootCommit() (*Commit, error) {
	return NewCommit(RootMessage, time.Unix(0, 0).UTC(), nil, Manifest{})
}

type canonicalCommit struct {
	Message  string      `json:"message"`
	Parents  []string    `json:"parents"`
	Manifest [][2]string `json:"manifest"`
}

// CanonicalBytes is the encoding of the identity of a commit.
//
// Parents keep their order, the manifest is encoded as a list of [path, hash] pairs sorted by path.
// The timestamp is not part of the identity.
func CanonicalBytes(message string, parents []string, manifest Manifest) ([]byte, error) {
	c := canonicalCommit{
		Message:  message,
		Parents:  make([]string, len(parents)),
		Manifest: make([][2]string, 0, manifest.Len()),
	}
	copy(c.Parents, parents)
	manifest.Walk(func(path, hash string) bool {
		c.Manifest = append(c.Manifest, [2]string{path, hash})
		return true
	})
	return canonical.Marshal(c)
}

// CommitID computes the id of a commit: the hex blake2b-256 digest of its canonical encoding
func CommitID(message string, parents []string, manifest Manifest) (string, error) {
	data, err := CanonicalBytes(message, parents, manifest)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(append([]byte(commitTag), data...))
	return hex.EncodeToString(sum[:]), nil
}

// Verify the id of the commit matches its content
func (c *Commit) Verify() bool {
	id, err := CommitID(c.Message, c.Parents, c.Manifest)
	return err == nil && id == c.ID
}

// Parent is the first parent of the commit, or an empty string for the root commit
func (c *Commit) Parent() string {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

// IsMerge is true for commits with two parents
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// ShortID abbreviates the commit id
func (c *Commit) ShortID() string {
	return ShortID(c.ID)
}

// ShortID abbreviates an id
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// MergeMessage is the message of the commit created when merging branch given into branch current
func MergeMessage(given, current string) string {
	return "Merged " + given + " into " + current + "."
}

// MergedBranch extracts the name of the merged branch from a merge commit message
func MergedBranch(message string) (string, bool) {
	const (
		prefix = "Merged "
		infix  = " into "
		suffix = "."
	)
	if !strings.HasPrefix(message, prefix) || !strings.HasSuffix(message, suffix) {
		return "", false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(message, prefix), suffix)
	idx := strings.Index(body, infix)
	if idx <= 0 || idx+len(infix) >= len(body) {
		return "", false
	}
	return body[:idx], true
}
