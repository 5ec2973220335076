package engine

import (
	"context"
	"strings"

	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/oneconcern/gitlet/pkg/store"
	"go.uber.org/zap"
)

// CurrentBranch is the branch HEAD points to
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := r.refs.Head(ctx)
	if err != nil {
		return "", r.corrupted(err)
	}
	return branch, nil
}

// SwitchHead makes an existing branch the current one
func (r *Repo) SwitchHead(ctx context.Context, branch string) error {
	if err := r.refs.SetHead(ctx, branch); err != nil {
		if err == store.BranchNotFound {
			return status.ErrNoSuchBranch
		}
		return r.corrupted(err)
	}
	r.l.Debug("head moved", zap.String("branch", branch))
	return nil
}

// Branches known to the repository, sorted
func (r *Repo) Branches(ctx context.Context) ([]string, error) {
	branches, err := r.refs.ListBranches(ctx)
	if err != nil {
		return nil, r.corrupted(err)
	}
	return branches, nil
}

// CreateBranch points a new branch at the current commit, without switching to it
func (r *Repo) CreateBranch(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return status.ErrIncorrectOperands
	}
	_, err := r.refs.GetBranch(ctx, name)
	switch err {
	case nil:
		return status.ErrBranchExists
	case store.BranchNotFound:
	default:
		return r.corrupted(err)
	}

	head, err := r.HeadCommit(ctx)
	if err != nil {
		return err
	}
	if err := r.refs.SetBranch(ctx, name, head.ID); err != nil {
		return r.corrupted(err)
	}
	r.l.Debug("branch created", zap.String("branch", name), zap.String("commit", head.ID))
	return nil
}

// RemoveBranch deletes a branch, the commits it points to are left untouched
func (r *Repo) RemoveBranch(ctx context.Context, name string) error {
	if _, err := r.refs.GetBranch(ctx, name); err != nil {
		if err == store.BranchNotFound {
			return status.ErrBranchNotFound
		}
		return r.corrupted(err)
	}
	current, err := r.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current == name {
		return status.ErrRemoveCurrentBranch
	}
	if err := r.refs.DeleteBranch(ctx, name); err != nil {
		return r.corrupted(err)
	}
	r.l.Debug("branch removed", zap.String("branch", name))
	return nil
}
