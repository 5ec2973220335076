package engine

import (
	"testing"

	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestReconcile(t *testing.T) {
	for _, tc := range []struct {
		name     string
		s, c, g  string
		expected mergeAction
	}{
		{name: "untouched", s: "h1", c: "h1", g: "h1", expected: keepCurrent},
		{name: "changed in current", s: "h1", c: "h2", g: "h1", expected: keepCurrent},
		{name: "changed identically", s: "h1", c: "h2", g: "h2", expected: keepCurrent},
		{name: "deleted in both", s: "h1", c: "", g: "", expected: keepCurrent},
		{name: "added identically", s: "", c: "h2", g: "h2", expected: keepCurrent},
		{name: "added in current", s: "", c: "h2", g: "", expected: keepCurrent},
		{name: "deleted in current", s: "h1", c: "", g: "h1", expected: keepCurrent},
		{name: "changed in given", s: "h1", c: "h1", g: "h2", expected: takeGiven},
		{name: "added in given", s: "", c: "", g: "h2", expected: takeGiven},
		{name: "deleted in given", s: "h1", c: "h1", g: "", expected: removeFile},
		{name: "diverging changes", s: "h1", c: "h2", g: "h3", expected: conflictFile},
		{name: "changed in current, deleted in given", s: "h1", c: "h2", g: "", expected: conflictFile},
		{name: "deleted in current, changed in given", s: "h1", c: "", g: "h3", expected: conflictFile},
		{name: "added differently", s: "", c: "h2", g: "h3", expected: conflictFile},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, reconcile(tc.s, tc.c, tc.g))
		})
	}
}

func TestReconcileSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hash := rapid.SampledFrom([]string{"", "h1", "h2", "h3"})
		s := hash.Draw(t, "s")
		c := hash.Draw(t, "c")
		g := hash.Draw(t, "g")

		// a conflict one way is a conflict the other way
		if (reconcile(s, c, g) == conflictFile) != (reconcile(s, g, c) == conflictFile) {
			t.Fatalf("asymmetric conflict for s=%q c=%q g=%q", s, c, g)
		}
		// the current side is never touched when the given side did not change
		if g == s && reconcile(s, c, g) != keepCurrent {
			t.Fatalf("given unchanged but current not kept for s=%q c=%q", s, c)
		}
	})
}

func TestMergePreconditions(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("base", map[string]string{"a.txt": "1\n"})
	require.NoError(t, f.repo.CreateBranch(f.ctx, "feature"))

	_, err := f.repo.Merge(f.ctx, "ghost")
	assert.Equal(t, status.ErrBranchNotFound, errors.Cause(err))

	_, err = f.repo.Merge(f.ctx, DefaultBranch)
	assert.Equal(t, status.ErrMergeWithSelf, errors.Cause(err))

	// uncommitted changes are checked before merging with self
	f.write("b.txt", "b\n")
	f.add("b.txt")
	_, err = f.repo.Merge(f.ctx, DefaultBranch)
	assert.Equal(t, status.ErrUncommittedChanges, errors.Cause(err))
	_, err = f.repo.Merge(f.ctx, "feature")
	assert.Equal(t, status.ErrUncommittedChanges, errors.Cause(err))
}

func TestMergeUpToDate(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("base", map[string]string{"a.txt": "1\n"})
	require.NoError(t, f.repo.CreateBranch(f.ctx, "old"))
	tip := f.commitFiles("ahead", map[string]string{"a.txt": "2\n"})

	res, err := f.repo.Merge(f.ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, UpToDate, res.Outcome)
	assert.Nil(t, res.Commit)
	assert.Equal(t, tip.ID, f.head().ID)
	assert.Equal(t, "2\n", f.read("a.txt"))
}

func TestMergeFastForward(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	base := f.commitFiles("base", map[string]string{"a.txt": "1\n"})
	require.NoError(t, f.repo.CreateBranch(f.ctx, "feature"))
	f.checkout("feature")
	tip := f.commitFiles("feature work", map[string]string{"a.txt": "2\n", "b.txt": "b\n"})
	f.checkout(DefaultBranch)

	split, err := f.repo.SplitPoint(f.ctx, base.ID, tip.ID)
	require.NoError(t, err)
	assert.Equal(t, base.ID, split)

	res, err := f.repo.Merge(f.ctx, "feature")
	require.NoError(t, err)
	assert.Equal(t, FastForward, res.Outcome)
	assert.Equal(t, tip.ID, res.Commit.ID)

	// no merge commit: the current branch now points to the given tip
	assert.Equal(t, tip.ID, f.head().ID)
	branch, err := f.repo.CurrentBranch(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultBranch, branch)
	assert.Equal(t, "2\n", f.read("a.txt"))
	assert.Equal(t, "b\n", f.read("b.txt"))

	all, err := f.repo.AllCommits(f.ctx).All()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMergeConflict(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	r := f.commitFiles("R", map[string]string{"a": "1\n"})
	require.NoError(t, f.repo.CreateBranch(f.ctx, "feature"))

	f.checkout("feature")
	ft := f.commitFiles("F", map[string]string{"a": "2\n"})
	f.checkout(DefaultBranch)
	m := f.commitFiles("M", map[string]string{"a": "3\n"})

	res, err := f.repo.Merge(f.ctx, "feature")
	require.NoError(t, err)
	assert.Equal(t, Merged, res.Outcome)
	assert.Equal(t, r.ID, res.SplitPoint)
	assert.True(t, res.Conflict)
	assert.Equal(t, []string{"a"}, res.Conflicts)

	expected := "<<<<<<< HEAD\n3\n=======\n2\n>>>>>>>\n"
	assert.Equal(t, expected, f.read("a"))

	require.NotNil(t, res.Commit)
	assert.Equal(t, []string{m.ID, ft.ID}, res.Commit.Parents)
	assert.Equal(t, model.MergeMessage("feature", DefaultBranch), res.Commit.Message)
	assert.Equal(t, res.Commit.ID, f.head().ID)

	// the conflicted content is what got committed
	hash, ok := res.Commit.Manifest.Get("a")
	require.True(t, ok)
	data, err := f.repo.objects.GetBlob(f.ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, expected, string(data))

	clean, err := f.repo.Stage().IsClean(f.ctx)
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestMergeConflictWithDeletion(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("R", map[string]string{"a": "1\n"})
	require.NoError(t, f.repo.CreateBranch(f.ctx, "feature"))

	f.checkout("feature")
	require.NoError(t, f.repo.Remove(f.ctx, "a"))
	_, err := f.repo.Commit(f.ctx, "drop a")
	require.NoError(t, err)
	f.checkout(DefaultBranch)
	f.commitFiles("M", map[string]string{"a": "3\n"})

	res, err := f.repo.Merge(f.ctx, "feature")
	require.NoError(t, err)
	assert.True(t, res.Conflict)
	assert.Equal(t, "<<<<<<< HEAD\n3\n=======\n>>>>>>>\n", f.read("a"))
}

func TestMergeClean(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("R", map[string]string{"a": "1\n", "gone": "bye\n"})
	require.NoError(t, f.repo.CreateBranch(f.ctx, "feature"))

	f.checkout("feature")
	f.commitFiles("F1", map[string]string{"a": "2\n", "new": "from feature\n"})
	require.NoError(t, f.repo.Remove(f.ctx, "gone"))
	ft, err := f.repo.Commit(f.ctx, "F2")
	require.NoError(t, err)

	f.checkout(DefaultBranch)
	m := f.commitFiles("M", map[string]string{"mine": "from master\n"})

	res, err := f.repo.Merge(f.ctx, "feature")
	require.NoError(t, err)
	assert.Equal(t, Merged, res.Outcome)
	assert.False(t, res.Conflict)
	assert.Empty(t, res.Conflicts)
	require.NotNil(t, res.Commit)
	assert.Equal(t, []string{m.ID, ft.ID}, res.Commit.Parents)

	assert.Equal(t, "2\n", f.read("a"))
	assert.Equal(t, "from feature\n", f.read("new"))
	assert.Equal(t, "from master\n", f.read("mine"))
	assert.False(t, f.exists("gone"))

	assert.Equal(t, []string{"a", "mine", "new"}, res.Commit.Manifest.Paths())

	// the merge commit is logged with its first parent
	commits, err := f.repo.Log(f.ctx).All()
	require.NoError(t, err)
	require.True(t, len(commits) >= 2)
	assert.Equal(t, res.Commit.ID, commits[0].ID)
	assert.Equal(t, m.ID, commits[1].ID)
}

func TestMergeUntrackedInTheWay(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("R", map[string]string{"a": "1\n"})
	require.NoError(t, f.repo.CreateBranch(f.ctx, "feature"))
	f.checkout("feature")
	f.commitFiles("F", map[string]string{"new": "from feature\n"})
	f.checkout(DefaultBranch)
	m := f.commitFiles("M", map[string]string{"a": "3\n"})

	f.write("new", "untracked\n")
	_, err := f.repo.Merge(f.ctx, "feature")
	assert.Equal(t, status.ErrUntrackedInTheWay, errors.Cause(err))

	assert.Equal(t, m.ID, f.head().ID)
	assert.Equal(t, "untracked\n", f.read("new"))
	clean, err := f.repo.Stage().IsClean(f.ctx)
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestSplitPointCrissCross(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("R", map[string]string{"a": "1\n"})
	require.NoError(t, f.repo.CreateBranch(f.ctx, "feature"))

	f.checkout("feature")
	f1 := f.commitFiles("F1", map[string]string{"f": "1\n"})
	f.checkout(DefaultBranch)
	f.commitFiles("M1", map[string]string{"m": "1\n"})

	// merge feature into master, then continue on both sides
	res, err := f.repo.Merge(f.ctx, "feature")
	require.NoError(t, err)
	require.Equal(t, Merged, res.Outcome)
	m2 := f.commitFiles("M2", map[string]string{"m": "2\n"})

	f.checkout("feature")
	f3 := f.commitFiles("F3", map[string]string{"f": "3\n"})

	// the closest common ancestor of master is the feature commit merged in
	split, err := f.repo.SplitPoint(f.ctx, m2.ID, f3.ID)
	require.NoError(t, err)
	assert.Equal(t, f1.ID, split)

	f.checkout(DefaultBranch)
	res, err = f.repo.Merge(f.ctx, "feature")
	require.NoError(t, err)
	assert.Equal(t, Merged, res.Outcome)
	assert.False(t, res.Conflict)
	assert.Equal(t, f1.ID, res.SplitPoint)
	assert.Equal(t, "3\n", f.read("f"))
	assert.Equal(t, "2\n", f.read("m"))
}

func TestMergeThenRemoveBranch(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("R", map[string]string{"a": "1\n"})
	require.NoError(t, f.repo.CreateBranch(f.ctx, "feature"))
	f.checkout("feature")
	tip := f.commitFiles("F", map[string]string{"a": "2\n"})
	f.checkout(DefaultBranch)
	f.commitFiles("M", map[string]string{"b": "b\n"})

	res, err := f.repo.Merge(f.ctx, "feature")
	require.NoError(t, err)
	require.NoError(t, f.repo.RemoveBranch(f.ctx, "feature"))

	// the merged commits stay reachable through the merge commit
	got, err := f.repo.GetCommit(f.ctx, tip.ID)
	require.NoError(t, err)
	assert.Equal(t, tip.ID, got.ID)
	assert.Equal(t, tip.ID, res.Commit.Parents[1])
}
