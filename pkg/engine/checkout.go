package engine

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/oneconcern/gitlet/pkg/store"
	"go.uber.org/zap"
)

// CheckoutFile restores a file as tracked by a commit, without staging it.
//
// An empty commit id stands for the current commit. Abbreviated ids are accepted.
func (r *Repo) CheckoutFile(ctx context.Context, commitID, pth string) error {
	var (
		c   *model.Commit
		err error
	)
	if commitID == "" {
		c, err = r.HeadCommit(ctx)
	} else {
		c, err = r.ResolveCommit(ctx, commitID)
	}
	if err != nil {
		return err
	}

	p, ok := r.ws.Clean(pth)
	if !ok {
		return status.ErrFileNotInCommit
	}
	hash, ok := c.Manifest.Get(p)
	if !ok {
		return status.ErrFileNotInCommit
	}
	return r.restore(ctx, p, hash)
}

// CheckoutBranch replaces the working files with the ones of a branch, and makes it the current branch
func (r *Repo) CheckoutBranch(ctx context.Context, branch string) error {
	if _, err := r.refs.GetBranch(ctx, branch); err != nil {
		return r.branchError(err, status.ErrNoSuchBranch)
	}
	current, err := r.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current == branch {
		return status.ErrCheckoutCurrentBranch
	}

	head, err := r.BranchCommit(ctx, current)
	if err != nil {
		return err
	}
	target, err := r.BranchCommit(ctx, branch)
	if err != nil {
		return err
	}
	if err := r.checkoutCommit(ctx, head, target); err != nil {
		return err
	}
	return r.SwitchHead(ctx, branch)
}

// Reset replaces the working files with the ones of a commit, and moves the current branch to it
func (r *Repo) Reset(ctx context.Context, commitID string) (*model.Commit, error) {
	target, err := r.ResolveCommit(ctx, commitID)
	if err != nil {
		return nil, err
	}
	current, err := r.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	head, err := r.BranchCommit(ctx, current)
	if err != nil {
		return nil, err
	}

	if err := r.checkoutCommit(ctx, head, target); err != nil {
		return nil, err
	}
	if err := r.refs.SetBranch(ctx, current, target.ID); err != nil {
		return nil, r.corrupted(err)
	}
	r.l.Debug("branch reset", zap.String("branch", current), zap.String("commit", target.ID))
	return target, nil
}

// untrackedInTheWay checks that writing paths would not overwrite files
// that are neither tracked by the current commit nor staged for addition
func (r *Repo) untrackedInTheWay(ctx context.Context, head *model.Commit, staged model.Manifest, paths []string) error {
	for _, p := range paths {
		if head.Manifest.Has(p) || staged.Has(p) {
			continue
		}
		exists, err := r.ws.Exists(p)
		if err != nil {
			return r.corrupted(err)
		}
		if exists {
			r.l.Debug("untracked file in the way", zap.String("path", p))
			return status.ErrUntrackedInTheWay
		}
	}
	return nil
}

// checkoutCommit moves the working directory from the head commit to the target commit.
//
// Files tracked or staged but absent from the target are deleted, files of the target are written,
// and the stage is cleared. Untracked files that would be overwritten abort before any change.
func (r *Repo) checkoutCommit(ctx context.Context, head, target *model.Commit) error {
	cs, err := r.stage.Status(ctx)
	if err != nil {
		return r.corrupted(err)
	}
	if err := r.untrackedInTheWay(ctx, head, cs.Added, target.Manifest.Paths()); err != nil {
		return err
	}

	var stale []string
	for _, m := range []model.Manifest{head.Manifest, cs.Added} {
		m.Walk(func(p, _ string) bool {
			if !target.Manifest.Has(p) {
				stale = append(stale, p)
			}
			return true
		})
	}
	for _, p := range stale {
		if err := r.ws.Delete(p); err != nil {
			return r.corrupted(err)
		}
	}

	var werr error
	target.Manifest.Walk(func(p, hash string) bool {
		werr = r.restore(ctx, p, hash)
		return werr == nil
	})
	if werr != nil {
		return werr
	}

	if err := r.stage.Clear(ctx); err != nil {
		return r.corrupted(err)
	}
	r.l.Debug("checked out commit", zap.String("from", head.ID), zap.String("to", target.ID))
	return nil
}

// restore writes the content of a blob to a working file
func (r *Repo) restore(ctx context.Context, pth, hash string) error {
	data, err := r.objects.GetBlob(ctx, hash)
	if err != nil {
		return r.corrupted(err)
	}
	if err := r.ws.Write(pth, data); err != nil {
		return r.corrupted(err)
	}
	return nil
}

func (r *Repo) branchError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if err == store.BranchNotFound {
		return notFound
	}
	return r.corrupted(err)
}
