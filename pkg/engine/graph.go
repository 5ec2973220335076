package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/oneconcern/gitlet/pkg/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CreateCommit stores a new commit
func (r *Repo) CreateCommit(ctx context.Context, message string, parents []string, manifest model.Manifest) (*model.Commit, error) {
	if strings.TrimSpace(message) == "" {
		return nil, status.ErrEmptyMessage
	}
	c, err := model.NewCommit(message, r.now(), parents, manifest)
	if err != nil {
		return nil, r.corrupted(err)
	}
	if _, err := r.objects.PutCommit(ctx, c); err != nil {
		return nil, r.corrupted(err)
	}
	return c, nil
}

// GetCommit by its full id
func (r *Repo) GetCommit(ctx context.Context, id string) (*model.Commit, error) {
	c, err := r.objects.GetCommit(ctx, id)
	if err != nil {
		if err == store.ObjectNotFound {
			return nil, status.ErrNoSuchCommit
		}
		return nil, r.corrupted(err)
	}
	return c, nil
}

// ResolveCommit finds a commit from its id or an abbreviation of it
func (r *Repo) ResolveCommit(ctx context.Context, id string) (*model.Commit, error) {
	full, err := r.objects.ResolveShortID(ctx, strings.ToLower(strings.TrimSpace(id)))
	if err != nil {
		if err == store.ObjectNotFound {
			return nil, status.ErrNoSuchCommit
		}
		return nil, r.corrupted(err)
	}
	return r.GetCommit(ctx, full)
}

// HeadCommit is the commit the current branch points to
func (r *Repo) HeadCommit(ctx context.Context) (*model.Commit, error) {
	branch, err := r.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	return r.BranchCommit(ctx, branch)
}

// BranchCommit is the commit a branch points to
func (r *Repo) BranchCommit(ctx context.Context, branch string) (*model.Commit, error) {
	id, err := r.refs.GetBranch(ctx, branch)
	if err != nil {
		if err == store.BranchNotFound {
			return nil, status.ErrNoSuchBranch
		}
		return nil, r.corrupted(err)
	}
	c, err := r.objects.GetCommit(ctx, id)
	if err != nil {
		// a branch pointing to a missing commit is a broken reference table
		return nil, r.corrupted(errors.Wrapf(err, "branch %s points to %s", branch, id))
	}
	return c, nil
}

// CommitIter iterates lazily over commits.
//
//	it := repo.Log(ctx)
//	for it.Next() {
//	  c := it.Commit()
//	}
//	err := it.Err()
type CommitIter struct {
	next    func() (*model.Commit, bool, error)
	current *model.Commit
	err     error
}

// Next advances to the next commit, it returns false when done or on error
func (it *CommitIter) Next() bool {
	if it.err != nil || it.next == nil {
		return false
	}
	c, ok, err := it.next()
	if err != nil {
		it.err = err
		it.current = nil
		return false
	}
	if !ok {
		it.next = nil
		it.current = nil
		return false
	}
	it.current = c
	return true
}

// Commit the iterator currently points to
func (it *CommitIter) Commit() *model.Commit {
	return it.current
}

// Err is the error that stopped the iteration, if any
func (it *CommitIter) Err() error {
	return it.err
}

// All drains the iterator
func (it *CommitIter) All() ([]*model.Commit, error) {
	var result []*model.Commit
	for it.Next() {
		result = append(result, it.Commit())
	}
	return result, it.Err()
}

// FirstParentHistory follows the first parent links from a commit back to the root commit
func (r *Repo) FirstParentHistory(ctx context.Context, tip string) *CommitIter {
	cursor := tip
	return &CommitIter{
		next: func() (*model.Commit, bool, error) {
			if cursor == "" {
				return nil, false, nil
			}
			c, err := r.objects.GetCommit(ctx, cursor)
			if err != nil {
				return nil, false, r.corrupted(errors.Wrapf(err, "reading commit %s", cursor))
			}
			cursor = c.Parent()
			return c, true, nil
		},
	}
}

// Log is the first parent history of the current branch
func (r *Repo) Log(ctx context.Context) *CommitIter {
	head, err := r.HeadCommit(ctx)
	if err != nil {
		return &CommitIter{err: err}
	}
	return r.FirstParentHistory(ctx, head.ID)
}

// AllCommits iterates over every stored commit, in no particular order
func (r *Repo) AllCommits(ctx context.Context) *CommitIter {
	var (
		ids    []string
		loaded bool
	)
	return &CommitIter{
		next: func() (*model.Commit, bool, error) {
			if !loaded {
				var err error
				ids, err = r.objects.CommitIDs(ctx)
				if err != nil {
					return nil, false, r.corrupted(err)
				}
				loaded = true
			}
			if len(ids) == 0 {
				return nil, false, nil
			}
			id := ids[0]
			ids = ids[1:]
			c, err := r.objects.GetCommit(ctx, id)
			if err != nil {
				return nil, false, r.corrupted(errors.Wrapf(err, "reading commit %s", id))
			}
			return c, true, nil
		},
	}
}

// Find the ids of all commits with a given message, sorted
func (r *Repo) Find(ctx context.Context, message string) ([]string, error) {
	var ids []string
	it := r.AllCommits(ctx)
	for it.Next() {
		if c := it.Commit(); c.Message == message {
			ids = append(ids, c.ID)
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, status.ErrNoCommitWithMessage
	}
	sort.Strings(ids)
	return ids, nil
}

// Commit the staged changes on the current branch.
//
// A message following the "Merged <given> into <current>." convention records the tip of the given
// branch as a second parent, when that branch exists.
func (r *Repo) Commit(ctx context.Context, message string) (*model.Commit, error) {
	if strings.TrimSpace(message) == "" {
		return nil, status.ErrEmptyMessage
	}
	cs, err := r.stage.Status(ctx)
	if err != nil {
		return nil, r.corrupted(err)
	}
	if cs.IsEmpty() {
		return nil, status.ErrNothingToCommit
	}

	branch, err := r.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	head, err := r.BranchCommit(ctx, branch)
	if err != nil {
		return nil, err
	}

	parents := []string{head.ID}
	if merged, ok := model.MergedBranch(message); ok {
		tip, gerr := r.refs.GetBranch(ctx, merged)
		switch gerr {
		case nil:
			parents = append(parents, tip)
		case store.BranchNotFound:
		default:
			return nil, r.corrupted(gerr)
		}
	}
	return r.commit(ctx, branch, message, parents, head.Manifest, cs)
}

// commit folds a change set into the manifest of the first parent, then moves branch to the new commit
func (r *Repo) commit(ctx context.Context, branch, message string, parents []string, base model.Manifest, cs model.ChangeSet) (*model.Commit, error) {
	manifest := cs.Fold(base)

	var perr error
	cs.Added.Walk(func(pth, hash string) bool {
		perr = r.promote(ctx, pth, hash)
		return perr == nil
	})
	if perr != nil {
		return nil, r.corrupted(perr)
	}

	c, err := r.CreateCommit(ctx, message, parents, manifest)
	if err != nil {
		return nil, err
	}
	if err := r.refs.SetBranch(ctx, branch, c.ID); err != nil {
		return nil, r.corrupted(err)
	}
	if err := r.stage.Clear(ctx); err != nil {
		return nil, r.corrupted(err)
	}

	r.l.Debug("commit created",
		zap.String("id", c.ID),
		zap.String("branch", branch),
		zap.Strings("parents", c.Parents),
		zap.Int("files", c.Manifest.Len()),
	)
	return c, nil
}

// promote a staged blob to the object store.
//
// Staged content is preferred, the working file is the fallback and must still hash to the staged hash.
func (r *Repo) promote(ctx context.Context, pth, hash string) error {
	has, err := r.objects.HasBlob(ctx, hash)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	data, found, err := r.stage.content(ctx, hash)
	if err != nil {
		return err
	}
	if !found {
		if data, err = r.ws.Read(pth); err != nil {
			return errors.Wrapf(err, "reading staged file %s", pth)
		}
	}

	stored, err := r.objects.PutBlob(ctx, data)
	if err != nil {
		return err
	}
	if stored != hash {
		return errors.Wrapf(store.Corrupted, "staged file %s was hashed %s but has content hashing to %s", pth, hash, stored)
	}
	return nil
}
