package engine

import (
	"bytes"
	"context"
	"io/ioutil"

	"github.com/oneconcern/gitlet/pkg/blob"
	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/oneconcern/gitlet/pkg/store"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Stage contains the information to manage staged changes.
//
// The content of files staged for addition is captured in a staging blob area when they are added,
// so that later edits of the working directory do not leak into the next commit.
type Stage struct {
	l     *zap.Logger
	meta  store.StageMeta
	blobs blob.Store
}

// Status of the stage, returns a changeset
func (s *Stage) Status(ctx context.Context) (model.ChangeSet, error) {
	return s.meta.List(ctx)
}

// IsClean is true when nothing is staged
func (s *Stage) IsClean(ctx context.Context) (bool, error) {
	return s.meta.IsClean(ctx)
}

// Clear the stage
func (s *Stage) Clear(ctx context.Context) error {
	if err := s.meta.Clear(ctx); err != nil {
		return err
	}
	return s.blobs.Clear(ctx)
}

// Close the stage
func (s *Stage) Close() error {
	return s.meta.Close()
}

func (s *Stage) add(ctx context.Context, pth, hash string, data []byte) error {
	has, err := s.blobs.Has(ctx, hash)
	if err != nil {
		return err
	}
	if !has && data != nil {
		if err := s.blobs.Put(ctx, hash, bytes.NewReader(data)); err != nil {
			return err
		}
	}
	s.l.Debug("staged for addition", zap.String("path", pth), zap.String("hash", hash))
	return s.meta.Add(ctx, model.Entry{Path: pth, Hash: hash})
}

func (s *Stage) content(ctx context.Context, hash string) ([]byte, bool, error) {
	rdr, err := s.blobs.Get(ctx, hash)
	if err != nil {
		if err == blob.ErrNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	data, err := ioutil.ReadAll(rdr)
	err = multierr.Append(err, rdr.Close())
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Add a file to the stage.
//
// A file staged for removal is unstaged. A file whose content is the one tracked by the
// current commit is unstaged for addition, otherwise its content is staged for addition.
func (r *Repo) Add(ctx context.Context, pth string) (string, error) {
	p, ok := r.ws.Clean(pth)
	if !ok {
		return "", status.ErrFileNotFound
	}
	data, err := r.ws.Read(p)
	if err != nil {
		exists, xerr := r.ws.Exists(p)
		if xerr == nil && !exists {
			return "", status.ErrFileNotFound
		}
		return "", r.corrupted(err)
	}
	hash, err := r.objects.HashBlob(data)
	if err != nil {
		return "", r.corrupted(err)
	}

	head, err := r.HeadCommit(ctx)
	if err != nil {
		return "", err
	}

	if _, removed, err := r.stage.meta.Removed(ctx, p); err != nil {
		return "", r.corrupted(err)
	} else if removed {
		if err := r.stage.meta.Unremove(ctx, p); err != nil {
			return "", r.corrupted(err)
		}
		r.l.Debug("removal unstaged", zap.String("path", p))
	}

	if tracked, ok := head.Manifest.Get(p); ok && tracked == hash {
		if err := r.stage.meta.Unadd(ctx, p); err != nil {
			return "", r.corrupted(err)
		}
		r.l.Debug("file reverted to its committed content", zap.String("path", p))
		return hash, nil
	}

	if err := r.stage.add(ctx, p, hash, data); err != nil {
		return "", r.corrupted(err)
	}
	return hash, nil
}

// Remove a file.
//
// A file staged for addition is unstaged. A file tracked by the current commit is staged for removal
// and deleted from the working directory.
func (r *Repo) Remove(ctx context.Context, pth string) error {
	p, ok := r.ws.Clean(pth)
	if !ok {
		return status.ErrNothingToRemove
	}

	head, err := r.HeadCommit(ctx)
	if err != nil {
		return err
	}
	_, staged, err := r.stage.meta.Added(ctx, p)
	if err != nil {
		return r.corrupted(err)
	}
	tracked, isTracked := head.Manifest.Get(p)

	if !staged && !isTracked {
		return status.ErrNothingToRemove
	}

	if staged {
		if err := r.stage.meta.Unadd(ctx, p); err != nil {
			return r.corrupted(err)
		}
	}

	if isTracked {
		if err := r.stage.meta.MarkRemove(ctx, model.Entry{Path: p, Hash: tracked}); err != nil {
			return r.corrupted(err)
		}
		if err := r.ws.Delete(p); err != nil {
			return r.corrupted(err)
		}
		r.l.Debug("staged for removal", zap.String("path", p))
	}
	return nil
}
