package localfs

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger"
	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/oneconcern/gitlet/pkg/store"
)

// NewStageMeta creates a badger based store for the staging index
func NewStageMeta(baseDir string, opts ...Option) store.StageMeta {
	return &stageMetaStore{
		baseDir: baseDir,
		options: defaultOptions(opts),
	}
}

type stageMetaStore struct {
	options
	baseDir string
	db      *badger.DB
	init    sync.Once
	close   sync.Once
}

func (o *stageMetaStore) dir() string {
	return filepath.Join(o.baseDir, indexDb)
}

func (o *stageMetaStore) Initialize() error {
	var err error

	o.init.Do(func() {
		var db *badger.DB
		db, err = makeBadgerDb(o.dir(), o.valueLogSize)
		if err != nil {
			return
		}
		o.db = db
	})

	return err
}

func (o *stageMetaStore) Close() error {
	var err error

	o.close.Do(func() {
		if o.db != nil {
			err = closeBadgerDb(o.dir(), o.db)
			if err == nil {
				o.db = nil
			}
		}
	})

	return err
}

// Add binds a path to a hash in the add set, replacing any previous binding
func (o *stageMetaStore) Add(ctx context.Context, entry model.Entry) error {
	if entry.Path == "" {
		return store.NameIsRequired
	}
	return o.db.Update(func(txn *badger.Txn) error {
		return txn.Set(addKey(entry.Path), []byte(entry.Hash))
	})
}

func (o *stageMetaStore) Unadd(ctx context.Context, path string) error {
	return o.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(addKey(path))
	})
}

// MarkRemove binds a path to its tracked hash in the remove set
func (o *stageMetaStore) MarkRemove(ctx context.Context, entry model.Entry) error {
	if entry.Path == "" {
		return store.NameIsRequired
	}
	return o.db.Update(func(txn *badger.Txn) error {
		return txn.Set(removeKey(entry.Path), []byte(entry.Hash))
	})
}

func (o *stageMetaStore) Unremove(ctx context.Context, path string) error {
	return o.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(removeKey(path))
	})
}

func (o *stageMetaStore) lookup(key []byte) (string, bool, error) {
	var (
		hash  string
		found bool
	)
	berr := o.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		hash, err = mapStringItemError(item, err, mapObjectError)
		found = err == nil
		return err
	})
	if berr != nil {
		return "", false, berr
	}
	return hash, found, nil
}

func (o *stageMetaStore) Added(ctx context.Context, path string) (string, bool, error) {
	return o.lookup(addKey(path))
}

func (o *stageMetaStore) Removed(ctx context.Context, path string) (string, bool, error) {
	return o.lookup(removeKey(path))
}

func (o *stageMetaStore) List(ctx context.Context) (model.ChangeSet, error) {
	added, err := o.findByPrefix(addPref[:])
	if err != nil {
		return model.ChangeSet{}, err
	}

	removed, err := o.findByPrefix(removePref[:])
	if err != nil {
		return model.ChangeSet{}, err
	}
	return model.ChangeSet{
		Added:   added,
		Removed: removed,
	}, nil
}

func (o *stageMetaStore) IsClean(ctx context.Context) (bool, error) {
	cs, err := o.List(ctx)
	if err != nil {
		return false, err
	}
	return cs.IsEmpty(), nil
}

func (o *stageMetaStore) Clear(ctx context.Context) error {
	if err := deleteByPrefix(o.db, addPref[:]); err != nil {
		return err
	}
	return deleteByPrefix(o.db, removePref[:])
}

func (o *stageMetaStore) findByPrefix(prefix []byte) (model.Manifest, error) {
	kvs, err := findByPrefix(o.db, prefix, false)
	if err != nil {
		return model.Manifest{}, err
	}
	entries := make(model.Entries, len(kvs))
	for i, kv := range kvs {
		entries[i] = model.Entry{Path: kv.Key, Hash: kv.Value}
	}
	return model.NewManifest(entries...), nil
}
