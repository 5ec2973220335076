package engine

import (
	"bytes"
	"context"
	"sort"

	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/oneconcern/gitlet/pkg/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MergeOutcome tells how a merge was resolved
type MergeOutcome string

const (
	// UpToDate when the given branch is an ancestor of the current branch: nothing changes
	UpToDate MergeOutcome = "up-to-date"

	// FastForward when the current branch is an ancestor of the given branch: the current branch moves to the given tip
	FastForward MergeOutcome = "fast-forward"

	// Merged when both branches diverged: a merge commit is created
	Merged MergeOutcome = "merged"
)

const (
	conflictHead      = "<<<<<<< HEAD\n"
	conflictSeparator = "=======\n"
	conflictTrailer   = ">>>>>>>\n"
)

// MergeResult describes the outcome of a merge
type MergeResult struct {
	Outcome    MergeOutcome  `json:"outcome" yaml:"outcome"`
	SplitPoint string        `json:"split_point" yaml:"split_point"`
	Commit     *model.Commit `json:"commit,omitempty" yaml:"commit,omitempty"`
	Conflict   bool          `json:"conflict" yaml:"conflict"`
	Conflicts  []string      `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// distances from a commit to all its ancestors, following every parent link
func (r *Repo) distances(ctx context.Context, from string) (map[string]int, error) {
	dist := map[string]int{from: 0}
	queue := []string{from}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		c, err := r.objects.GetCommit(ctx, id)
		if err != nil {
			return nil, errors.Wrapf(err, "reading ancestor %s", id)
		}
		for _, p := range c.Parents {
			if _, seen := dist[p]; seen {
				continue
			}
			dist[p] = dist[id] + 1
			queue = append(queue, p)
		}
	}
	return dist, nil
}

// SplitPoint finds the common ancestor of two commits closest to the current one.
//
// Ties are broken by the distance to the given commit, then by the smallest id.
func (r *Repo) SplitPoint(ctx context.Context, current, given string) (string, error) {
	fromCurrent, err := r.distances(ctx, current)
	if err != nil {
		return "", r.corrupted(err)
	}
	fromGiven, err := r.distances(ctx, given)
	if err != nil {
		return "", r.corrupted(err)
	}

	var (
		split string
		bestC int
		bestG int
	)
	for id, dc := range fromCurrent {
		dg, common := fromGiven[id]
		if !common {
			continue
		}
		if split == "" || dc < bestC || (dc == bestC && (dg < bestG || (dg == bestG && id < split))) {
			split, bestC, bestG = id, dc, dg
		}
	}
	if split == "" {
		return "", r.corrupted(errors.Wrapf(store.Corrupted, "commits %s and %s share no ancestor", current, given))
	}
	return split, nil
}

type mergeAction int

const (
	keepCurrent mergeAction = iota
	takeGiven
	removeFile
	conflictFile
)

// reconcile decides the outcome for a path from its hashes in the split, current and given commits.
// An empty hash stands for an absent file.
func reconcile(s, c, g string) mergeAction {
	switch {
	case c == g, g == s:
		return keepCurrent
	case c == s && g == "":
		return removeFile
	case c == s:
		return takeGiven
	default:
		return conflictFile
	}
}

// Merge the given branch into the current branch
func (r *Repo) Merge(ctx context.Context, given string) (MergeResult, error) {
	givenID, err := r.refs.GetBranch(ctx, given)
	if err != nil {
		return MergeResult{}, r.branchError(err, status.ErrBranchNotFound)
	}
	clean, err := r.stage.IsClean(ctx)
	if err != nil {
		return MergeResult{}, r.corrupted(err)
	}
	if !clean {
		return MergeResult{}, status.ErrUncommittedChanges
	}
	current, err := r.CurrentBranch(ctx)
	if err != nil {
		return MergeResult{}, err
	}
	if current == given {
		return MergeResult{}, status.ErrMergeWithSelf
	}

	head, err := r.BranchCommit(ctx, current)
	if err != nil {
		return MergeResult{}, err
	}
	other, err := r.BranchCommit(ctx, given)
	if err != nil {
		return MergeResult{}, err
	}

	split, err := r.SplitPoint(ctx, head.ID, givenID)
	if err != nil {
		return MergeResult{}, err
	}
	r.l.Debug("merge split point", zap.String("current", head.ID), zap.String("given", givenID), zap.String("split", split))

	switch split {
	case givenID:
		return MergeResult{Outcome: UpToDate, SplitPoint: split}, nil
	case head.ID:
		if err := r.checkoutCommit(ctx, head, other); err != nil {
			return MergeResult{}, err
		}
		if err := r.refs.SetBranch(ctx, current, other.ID); err != nil {
			return MergeResult{}, r.corrupted(err)
		}
		r.l.Debug("fast-forwarded", zap.String("branch", current), zap.String("commit", other.ID))
		return MergeResult{Outcome: FastForward, SplitPoint: split, Commit: other}, nil
	}

	base, err := r.objects.GetCommit(ctx, split)
	if err != nil {
		return MergeResult{}, r.corrupted(errors.Wrapf(err, "reading split point %s", split))
	}
	return r.threeWay(ctx, current, given, base, head, other)
}

func (r *Repo) threeWay(ctx context.Context, current, given string, base, head, other *model.Commit) (MergeResult, error) {
	result := MergeResult{Outcome: Merged, SplitPoint: base.ID}

	paths := make(map[string]struct{})
	for _, m := range []model.Manifest{base.Manifest, head.Manifest, other.Manifest} {
		m.Walk(func(p, _ string) bool {
			paths[p] = struct{}{}
			return true
		})
	}
	sorted := make([]string, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	actions := make(map[string]mergeAction, len(sorted))
	var written []string
	for _, p := range sorted {
		s, _ := base.Manifest.Get(p)
		c, _ := head.Manifest.Get(p)
		g, _ := other.Manifest.Get(p)
		a := reconcile(s, c, g)
		actions[p] = a
		if a == takeGiven || a == conflictFile {
			written = append(written, p)
		}
	}
	if err := r.untrackedInTheWay(ctx, head, model.Manifest{}, written); err != nil {
		return MergeResult{}, err
	}

	for _, p := range sorted {
		c, _ := head.Manifest.Get(p)
		g, _ := other.Manifest.Get(p)

		switch actions[p] {
		case takeGiven:
			if err := r.restore(ctx, p, g); err != nil {
				return MergeResult{}, err
			}
			if err := r.stage.add(ctx, p, g, nil); err != nil {
				return MergeResult{}, r.corrupted(err)
			}
		case removeFile:
			if err := r.ws.Delete(p); err != nil {
				return MergeResult{}, r.corrupted(err)
			}
			if err := r.stage.meta.MarkRemove(ctx, model.Entry{Path: p, Hash: c}); err != nil {
				return MergeResult{}, r.corrupted(err)
			}
		case conflictFile:
			if err := r.writeConflict(ctx, p, c, g); err != nil {
				return MergeResult{}, err
			}
			result.Conflict = true
			result.Conflicts = append(result.Conflicts, p)
			r.l.Warn("merge conflict", zap.String("path", p))
		}
	}

	cs, err := r.stage.Status(ctx)
	if err != nil {
		return MergeResult{}, r.corrupted(err)
	}
	commit, err := r.commit(ctx, current, model.MergeMessage(given, current), []string{head.ID, other.ID}, head.Manifest, cs)
	if err != nil {
		return MergeResult{}, err
	}
	result.Commit = commit
	r.l.Debug("merged", zap.String("given", given), zap.String("current", current), zap.Bool("conflict", result.Conflict))
	return result, nil
}

// writeConflict writes both versions of a file delimited by markers, and stages the result
func (r *Repo) writeConflict(ctx context.Context, pth, current, given string) error {
	var buf bytes.Buffer
	buf.WriteString(conflictHead)
	if current != "" {
		data, err := r.objects.GetBlob(ctx, current)
		if err != nil {
			return r.corrupted(err)
		}
		buf.Write(data)
	}
	buf.WriteString(conflictSeparator)
	if given != "" {
		data, err := r.objects.GetBlob(ctx, given)
		if err != nil {
			return r.corrupted(err)
		}
		buf.Write(data)
	}
	buf.WriteString(conflictTrailer)

	content := buf.Bytes()
	if err := r.ws.Write(pth, content); err != nil {
		return r.corrupted(err)
	}
	hash, err := r.objects.HashBlob(content)
	if err != nil {
		return r.corrupted(err)
	}
	if err := r.stage.add(ctx, pth, hash, content); err != nil {
		return r.corrupted(err)
	}
	return nil
}
