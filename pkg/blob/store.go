// Package blob defines the flat key/value store backing every object of a repository.
package blob

import (
	"context"
	"io"
)

type errString string

func (e errString) Error() string { return string(e) }

// ErrNotFound is returned when a key is not present in the store
const ErrNotFound errString = "blob not found"

// Store keeps opaque payloads under string keys.
//
// Keys are content hashes, so a payload stored under a key is never rewritten
// with different bytes. Put on an existing key is allowed and must leave the store unchanged.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader) error
	Keys(context.Context) ([]string, error)
	Clear(context.Context) error
}
