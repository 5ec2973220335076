package localfs

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dgraph-io/badger"
	"github.com/oneconcern/gitlet/pkg/store"
)

// NewRefs creates a badger based store for branches and HEAD
func NewRefs(baseDir string, opts ...Option) store.RefStore {
	if baseDir == "" {
		baseDir = ".gitlet"
	}
	return &refStore{
		baseDir: baseDir,
		options: defaultOptions(opts),
	}
}

type refStore struct {
	options
	baseDir string
	db      *badger.DB
	init    sync.Once
	close   sync.Once
}

func (r *refStore) dir() string {
	return filepath.Join(r.baseDir, refsDb)
}

func (r *refStore) Initialize() error {
	var err error
	r.init.Do(func() {
		var db *badger.DB
		db, err = makeBadgerDb(r.dir(), r.valueLogSize)
		if err != nil {
			return
		}
		r.db = db
	})

	return err
}

func (r *refStore) Close() error {
	var err error
	r.close.Do(func() {
		if r.db != nil {
			err = closeBadgerDb(r.dir(), r.db)
			if err == nil {
				r.db = nil
			}
		}
	})
	return err
}

func (r *refStore) SetBranch(ctx context.Context, name, commitID string) error {
	if strings.TrimSpace(name) == "" {
		return store.NameIsRequired
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(branchKey(name), []byte(commitID))
	})
}

func (r *refStore) GetBranch(ctx context.Context, name string) (string, error) {
	var value string
	verr := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(branchKey(name))
		value, err = mapStringItemError(item, err, mapBranchError)
		return err
	})
	return value, verr
}

func (r *refStore) DeleteBranch(ctx context.Context, name string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := branchKey(name)
		if _, err := txn.Get(key); err != nil {
			return mapBranchError(err)
		}
		return mapBranchError(txn.Delete(key))
	})
}

func (r *refStore) ListBranches(ctx context.Context) ([]string, error) {
	res, err := findByPrefix(r.db, branchPref[:], true)
	if err != nil {
		return nil, err
	}
	result := make([]string, len(res))
	for i := range res {
		result[i] = res[i].Key
	}
	sort.Strings(result)
	return result, nil
}

func (r *refStore) Head(ctx context.Context) (string, error) {
	var value string
	verr := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(headKey)
		value, err = mapStringItemError(item, err, func(e error) error {
			if e == badger.ErrKeyNotFound {
				return store.HeadNotFound
			}
			return e
		})
		return err
	})
	return value, verr
}

// SetHead only accepts existing branches
func (r *refStore) SetHead(ctx context.Context, branch string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(branchKey(branch)); err != nil {
			return mapBranchError(err)
		}
		return txn.Set(headKey, []byte(branch))
	})
}

func (r *refStore) Setting(ctx context.Context, key string) (string, error) {
	var value string
	verr := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(settingKey(key))
		value, err = mapStringItemError(item, err, func(e error) error {
			if e == badger.ErrKeyNotFound {
				return store.SettingNotFound
			}
			return e
		})
		return err
	})
	return value, verr
}

func (r *refStore) SetSetting(ctx context.Context, key, value string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(settingKey(key), []byte(value))
	})
}
