package engine

import (
	"strings"
	"testing"

	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit(t *testing.T) {
	f, done := setupRepo(t)
	defer done()
	root := f.head()

	f.write("a.txt", "hello\n")
	f.write("dir/b.txt", "world\n")
	ha, err := f.repo.Add(f.ctx, "a.txt")
	require.NoError(t, err)
	hb, err := f.repo.Add(f.ctx, "dir/b.txt")
	require.NoError(t, err)

	c, err := f.repo.Commit(f.ctx, "two files")
	require.NoError(t, err)
	assert.Equal(t, []string{root.ID}, c.Parents)
	assert.Equal(t, "two files", c.Message)
	assert.True(t, c.Manifest.Equal(model.NewManifest(
		model.Entry{Path: "a.txt", Hash: ha},
		model.Entry{Path: "dir/b.txt", Hash: hb},
	)))
	assert.Equal(t, c.ID, f.head().ID)
	assert.True(t, c.Verify())

	// both blobs were promoted to the object store
	for _, h := range []string{ha, hb} {
		has, err := f.repo.objects.HasBlob(f.ctx, h)
		require.NoError(t, err)
		assert.True(t, has)
	}

	clean, err := f.repo.Stage().IsClean(f.ctx)
	require.NoError(t, err)
	assert.True(t, clean)

	// a child commit carries the files of its parent
	c2 := f.commitFiles("third", map[string]string{"a.txt": "changed\n"})
	assert.Equal(t, []string{c.ID}, c2.Parents)
	got, _ := c2.Manifest.Get("dir/b.txt")
	assert.Equal(t, hb, got)
	got, _ = c2.Manifest.Get("a.txt")
	assert.NotEqual(t, ha, got)
}

func TestCommitErrors(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	_, err := f.repo.Commit(f.ctx, "nothing staged")
	assert.Equal(t, status.ErrNothingToCommit, errors.Cause(err))

	f.write("a.txt", "hello\n")
	f.add("a.txt")
	for _, msg := range []string{"", "   "} {
		_, err = f.repo.Commit(f.ctx, msg)
		assert.Equal(t, status.ErrEmptyMessage, errors.Cause(err))
	}

	// the stage is left untouched by a failed commit
	clean, err := f.repo.Stage().IsClean(f.ctx)
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestCommitWithMergeMessage(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("base", map[string]string{"a.txt": "a\n"})
	require.NoError(t, f.repo.CreateBranch(f.ctx, "other"))
	f.checkout("other")
	tip := f.commitFiles("other work", map[string]string{"b.txt": "b\n"})
	f.checkout(DefaultBranch)

	head := f.head()
	f.write("c.txt", "c\n")
	f.add("c.txt")
	c, err := f.repo.Commit(f.ctx, model.MergeMessage("other", DefaultBranch))
	require.NoError(t, err)
	assert.Equal(t, []string{head.ID, tip.ID}, c.Parents)
	assert.True(t, c.IsMerge())

	// an unknown branch leaves a single parent
	f.write("d.txt", "d\n")
	f.add("d.txt")
	c2, err := f.repo.Commit(f.ctx, model.MergeMessage("ghost", DefaultBranch))
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, c2.Parents)
}

func TestLog(t *testing.T) {
	f, done := setupRepo(t)
	defer done()
	root := f.head()

	c1 := f.commitFiles("one", map[string]string{"a.txt": "1\n"})
	c2 := f.commitFiles("two", map[string]string{"a.txt": "2\n"})

	commits, err := f.repo.Log(f.ctx).All()
	require.NoError(t, err)
	require.Len(t, commits, 3)
	assert.Equal(t, c2.ID, commits[0].ID)
	assert.Equal(t, c1.ID, commits[1].ID)
	assert.Equal(t, root.ID, commits[2].ID)
	assert.True(t, commits[0].Timestamp.After(commits[1].Timestamp))

	// the history of a branch does not include commits of other branches
	require.NoError(t, f.repo.CreateBranch(f.ctx, "other"))
	f.checkout("other")
	f.commitFiles("on other", map[string]string{"b.txt": "b\n"})
	f.checkout(DefaultBranch)

	commits, err = f.repo.Log(f.ctx).All()
	require.NoError(t, err)
	assert.Len(t, commits, 3)

	all, err := f.repo.AllCommits(f.ctx).All()
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestFind(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	c1 := f.commitFiles("same message", map[string]string{"a.txt": "1\n"})
	f.commitFiles("other message", map[string]string{"a.txt": "2\n"})
	c3 := f.commitFiles("same message", map[string]string{"a.txt": "3\n"})

	ids, err := f.repo.Find(f.ctx, "same message")
	require.NoError(t, err)
	expected := []string{c1.ID, c3.ID}
	if expected[0] > expected[1] {
		expected[0], expected[1] = expected[1], expected[0]
	}
	assert.Equal(t, expected, ids)

	ids, err = f.repo.Find(f.ctx, model.RootMessage)
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	_, err = f.repo.Find(f.ctx, "same")
	assert.Equal(t, status.ErrNoCommitWithMessage, errors.Cause(err))
}

func TestResolveCommit(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	c := f.commitFiles("one", map[string]string{"a.txt": "1\n"})

	for _, id := range []string{c.ID, c.ShortID(), c.ID[:4], strings.ToUpper(c.ID[:10]), " " + c.ID[:8] + " "} {
		got, err := f.repo.ResolveCommit(f.ctx, id)
		require.NoErrorf(t, err, "resolving %q", id)
		assert.Equal(t, c.ID, got.ID)
	}

	// the shortest prefix telling the commit apart from the root commit
	root, err := model.RootCommit()
	require.NoError(t, err)
	n := 1
	for strings.HasPrefix(root.ID, c.ID[:n]) {
		n++
	}
	got, err := f.repo.ResolveCommit(f.ctx, c.ID[:n])
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = f.repo.ResolveCommit(f.ctx, root.ID[:n])
	require.NoError(t, err)

	for _, id := range []string{"", "zzzzzzzz", c.ID + "00"} {
		_, err := f.repo.ResolveCommit(f.ctx, id)
		assert.Equalf(t, status.ErrNoSuchCommit, errors.Cause(err), "resolving %q", id)
	}

	_, err = f.repo.GetCommit(f.ctx, strings.Repeat("0", len(c.ID)))
	assert.Equal(t, status.ErrNoSuchCommit, errors.Cause(err))
}

func TestCreateCommit(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	_, err := f.repo.CreateCommit(f.ctx, " ", nil, model.Manifest{})
	assert.Equal(t, status.ErrEmptyMessage, errors.Cause(err))

	root := f.head()
	c, err := f.repo.CreateCommit(f.ctx, "detached", []string{root.ID}, root.Manifest)
	require.NoError(t, err)

	got, err := f.repo.GetCommit(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	// creating a commit does not move any branch
	assert.Equal(t, root.ID, f.head().ID)
}
