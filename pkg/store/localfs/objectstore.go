package localfs

import (
	"bytes"
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/gitlet/pkg/blob"
	bloblocalfs "github.com/oneconcern/gitlet/pkg/blob/localfs"
	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/oneconcern/gitlet/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	objectsDir = "objects"
	blobsDir   = "blobs"
	commitsDir = "commits"
)

// NewObjectStore creates an afero based content addressed store.
//
// Blobs live under <baseDir>/objects/blobs and commits under <baseDir>/objects/commits,
// both keyed by their hash.
func NewObjectStore(baseDir string, opts ...Option) store.ObjectStore {
	if baseDir == "" {
		baseDir = ".gitlet"
	}
	o := defaultOptions(opts)
	return &objectStore{
		options: o,
		blobs:   blob.Instrument(o.tracer, bloblocalfs.New(afero.NewBasePathFs(o.fs, filepath.Join(baseDir, objectsDir, blobsDir)))),
		commits: blob.Instrument(o.tracer, bloblocalfs.New(afero.NewBasePathFs(o.fs, filepath.Join(baseDir, objectsDir, commitsDir)))),
	}
}

type objectStore struct {
	options
	blobs   blob.Store
	commits blob.Store
}

func (o *objectStore) Initialize() error { return nil }
func (o *objectStore) Close() error      { return nil }

func (o *objectStore) HashBlob(data []byte) (string, error) {
	return o.hasher.Hash(data)
}

func (o *objectStore) PutBlob(ctx context.Context, data []byte) (string, error) {
	hash, err := o.HashBlob(data)
	if err != nil {
		return "", errors.Wrap(err, "hashing blob")
	}
	if err := o.put(ctx, o.blobs, hash, data); err != nil {
		return "", errors.Wrapf(err, "writing blob %s", hash)
	}
	return hash, nil
}

func (o *objectStore) GetBlob(ctx context.Context, hash string) ([]byte, error) {
	data, err := o.get(ctx, o.blobs, hash)
	if err != nil {
		return nil, err
	}

	actual, err := o.HashBlob(data)
	if err != nil {
		return nil, errors.Wrapf(err, "hashing blob %s", hash)
	}
	if actual != hash {
		return nil, errors.Wrapf(store.Corrupted, "blob %s has hash %s", hash, actual)
	}
	return data, nil
}

func (o *objectStore) HasBlob(ctx context.Context, hash string) (bool, error) {
	return o.blobs.Has(ctx, hash)
}

func (o *objectStore) PutCommit(ctx context.Context, commit *model.Commit) (string, error) {
	id, err := model.CommitID(commit.Message, commit.Parents, commit.Manifest)
	if err != nil {
		return "", errors.Wrap(err, "computing commit id")
	}
	if commit.ID != "" && commit.ID != id {
		return "", errors.Wrapf(store.Corrupted, "commit %s has id %s", commit.ID, id)
	}
	commit.ID = id

	data, err := jsoniter.Marshal(commit)
	if err != nil {
		return "", errors.Wrapf(err, "encoding commit %s", id)
	}
	if err := o.put(ctx, o.commits, id, data); err != nil {
		return "", errors.Wrapf(err, "writing commit %s", id)
	}
	return id, nil
}

func (o *objectStore) GetCommit(ctx context.Context, id string) (*model.Commit, error) {
	data, err := o.get(ctx, o.commits, id)
	if err != nil {
		return nil, err
	}

	var commit model.Commit
	if err := jsoniter.Unmarshal(data, &commit); err != nil {
		return nil, errors.Wrapf(store.Corrupted, "decoding commit %s: %v", id, err)
	}
	if commit.ID != id || !commit.Verify() {
		return nil, errors.Wrapf(store.Corrupted, "commit %s does not match its content", id)
	}
	return &commit, nil
}

func (o *objectStore) HasCommit(ctx context.Context, id string) (bool, error) {
	return o.commits.Has(ctx, id)
}

func (o *objectStore) CommitIDs(ctx context.Context) ([]string, error) {
	return o.commits.Keys(ctx)
}

// ResolveShortID finds the only commit id starting with prefix, whatever its length.
func (o *objectStore) ResolveShortID(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", store.ObjectNotFound
	}
	if has, err := o.HasCommit(ctx, prefix); err != nil {
		return "", err
	} else if has {
		return prefix, nil
	}

	ids, err := o.CommitIDs(ctx)
	if err != nil {
		return "", err
	}

	var match string
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if match != "" {
			return "", errors.Wrapf(store.AmbiguousID, "%s matches %s and %s", prefix, match, id)
		}
		match = id
	}
	if match == "" {
		return "", store.ObjectNotFound
	}
	return match, nil
}

func (o *objectStore) put(ctx context.Context, bs blob.Store, key string, data []byte) error {
	has, err := bs.Has(ctx, key)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	return bs.Put(ctx, key, bytes.NewReader(data))
}

func (o *objectStore) get(ctx context.Context, bs blob.Store, key string) ([]byte, error) {
	rdr, err := bs.Get(ctx, key)
	if err != nil {
		if err == blob.ErrNotFound {
			return nil, store.ObjectNotFound
		}
		return nil, errors.Wrapf(err, "opening object %s", key)
	}
	defer rdr.Close()

	data, err := ioutil.ReadAll(rdr)
	if err != nil {
		return nil, errors.Wrapf(err, "reading object %s", key)
	}
	return data, nil
}
