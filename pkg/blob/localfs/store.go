package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oneconcern/gitlet/pkg/blob"
	"github.com/spf13/afero"
)

const (
	root      = "."
	fanout    = 2
	tmpSuffix = ".tmp"
)

// New creates a new local file system backed blob store.
//
// Keys are laid out in a 2 characters fan-out directory: key "abcdef" lives in "ab/cdef".
func New(fs afero.Fs) blob.Store {
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), filepath.Join(".gitlet", "objects"))
	}
	return &localFS{
		fs: fs,
	}
}

type localFS struct {
	fs afero.Fs
}

func keyPath(key string) string {
	if len(key) <= fanout {
		return key
	}
	return filepath.Join(key[:fanout], key[fanout:])
}

func (l *localFS) Has(ctx context.Context, key string) (bool, error) {
	fi, err := l.fs.Stat(keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return !fi.IsDir(), nil
}

func (l *localFS) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := l.fs.Open(keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, blob.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (l *localFS) Put(ctx context.Context, key string, rdr io.Reader) error {
	pth := keyPath(key)
	if dir := filepath.Dir(pth); dir != root {
		if err := l.fs.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("ensuring directories for %q: %v", key, err)
		}
	}

	tmp := pth + tmpSuffix
	if err := afero.WriteReader(l.fs, tmp, rdr); err != nil {
		_ = l.fs.Remove(tmp)
		return fmt.Errorf("write record for %q: %v", key, err)
	}

	return l.fs.Rename(tmp, pth)
}

func (l *localFS) Keys(ctx context.Context) ([]string, error) {
	exists, err := afero.DirExists(l.fs, root)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	var res []string
	e := afero.Walk(l.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root || info.IsDir() || strings.HasSuffix(path, tmpSuffix) {
			return nil
		}
		res = append(res, strings.Join(strings.Split(filepath.ToSlash(path), "/"), ""))
		return nil
	})
	if e != nil {
		return nil, e
	}
	return res, nil
}

func (l *localFS) Clear(ctx context.Context) error {
	entries, err := afero.ReadDir(l.fs, root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if err := l.fs.RemoveAll(entry.Name()); err != nil {
			return fmt.Errorf("clearing %q: %v", entry.Name(), err)
		}
	}
	return nil
}

func (l *localFS) String() string {
	const localfs = "localfs"
	switch fs := l.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("")
		if err != nil {
			return localfs
		}
		return localfs + "@" + pp
	default:
		return localfs
	}
}
