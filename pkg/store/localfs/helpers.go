package localfs

import (
	"sync"

	"github.com/dgraph-io/badger"
	"github.com/oneconcern/gitlet/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var dbs sync.Map

// makeBadgerDb opens the badger database in dir, or returns the one already opened for that dir
func makeBadgerDb(dir string, valueLogSize int64) (*badger.DB, error) {
	if v, ok := dbs.Load(dir); ok {
		return v.(*badger.DB), nil
	}
	if err := afero.NewOsFs().MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrapf(err, "mkdir -p %s", dir)
	}
	bopts := badger.DefaultOptions
	bopts.Dir = dir
	bopts.ValueDir = dir
	if valueLogSize > 0 {
		bopts.ValueLogFileSize = valueLogSize
	}

	v, err := badger.Open(bopts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger db in %s", dir)
	}
	dbs.Store(dir, v)
	return v, nil
}

func closeBadgerDb(dir string, db *badger.DB) error {
	dbs.Delete(dir)
	return db.Close()
}

func mapBranchError(err error) error {
	switch err {
	case nil:
		return nil
	case badger.ErrKeyNotFound:
		return store.BranchNotFound
	case badger.ErrEmptyKey:
		return store.NameIsRequired
	default:
		return err
	}
}

func mapObjectError(err error) error {
	switch err {
	case nil:
		return nil
	case badger.ErrKeyNotFound:
		return store.ObjectNotFound
	case badger.ErrEmptyKey:
		return store.NameIsRequired
	default:
		return err
	}
}

// mapStringItemError copies the value of an item out of the transaction
func mapStringItemError(value *badger.Item, err error, mapErr func(error) error) (string, error) {
	if err != nil {
		return "", mapErr(err)
	}
	data, err := value.Value()
	if err != nil {
		return "", mapErr(err)
	}
	return string(data), nil
}

type keyValue struct {
	Key   string
	Value string
}

// findByPrefix lists the keys and values under a prefix, with the prefix stripped from the keys
func findByPrefix(db *badger.DB, prefix []byte, keysOnly bool) ([]keyValue, error) {
	var result []keyValue
	verr := db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = !keysOnly

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			k := string(item.Key()[len(prefix):])
			if keysOnly {
				result = append(result, keyValue{Key: k})
				continue
			}

			v, err := item.Value()
			if err != nil {
				return mapObjectError(err)
			}
			result = append(result, keyValue{Key: k, Value: string(v)})
		}
		return nil
	})

	if verr != nil {
		return nil, verr
	}
	return result, nil
}

// deleteByPrefix removes all keys under a prefix
func deleteByPrefix(db *badger.DB, prefix []byte) error {
	kvs, err := findByPrefix(db, prefix, true)
	if err != nil {
		return err
	}
	if len(kvs) == 0 {
		return nil
	}
	return db.Update(func(tx *badger.Txn) error {
		for _, kv := range kvs {
			if err := tx.Delete(prefixed(prefix, kv.Key)); err != nil {
				return err
			}
		}
		return nil
	})
}
