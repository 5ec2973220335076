package engine

import (
	"testing"

	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.write("a.txt", "hello\n")
	hash, err := f.repo.Add(f.ctx, "a.txt")
	require.NoError(t, err)

	cs, err := f.repo.Stage().Status(f.ctx)
	require.NoError(t, err)
	staged, ok := cs.Added.Get("a.txt")
	require.True(t, ok)
	assert.Equal(t, hash, staged)
	assert.True(t, cs.Removed.IsEmpty())

	// adding twice is idempotent
	again, err := f.repo.Add(f.ctx, "./a.txt")
	require.NoError(t, err)
	assert.Equal(t, hash, again)
	cs, err = f.repo.Stage().Status(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.Added.Len())
}

func TestAddErrors(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	for _, pth := range []string{"missing.txt", "", "../outside.txt", "/etc/passwd", DefaultRepoDir + "/objects"} {
		_, err := f.repo.Add(f.ctx, pth)
		assert.Equalf(t, status.ErrFileNotFound, errors.Cause(err), "adding %q", pth)
	}
	clean, err := f.repo.Stage().IsClean(f.ctx)
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestAddRevertedFile(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("first", map[string]string{"a.txt": "v1\n"})

	f.write("a.txt", "v2\n")
	f.add("a.txt")
	clean, err := f.repo.Stage().IsClean(f.ctx)
	require.NoError(t, err)
	require.False(t, clean)

	// restoring the committed content and adding again unstages the file
	f.write("a.txt", "v1\n")
	f.add("a.txt")
	clean, err = f.repo.Stage().IsClean(f.ctx)
	require.NoError(t, err)
	assert.True(t, clean)

	_, err = f.repo.Commit(f.ctx, "nothing")
	assert.Equal(t, status.ErrNothingToCommit, errors.Cause(err))
}

func TestAddCapturesContent(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.write("a.txt", "staged\n")
	hash, err := f.repo.Add(f.ctx, "a.txt")
	require.NoError(t, err)

	// edits after staging do not leak into the commit
	f.write("a.txt", "edited after add\n")
	c, err := f.repo.Commit(f.ctx, "captured")
	require.NoError(t, err)

	committed, ok := c.Manifest.Get("a.txt")
	require.True(t, ok)
	assert.Equal(t, hash, committed)
	data, err := f.repo.objects.GetBlob(f.ctx, committed)
	require.NoError(t, err)
	assert.Equal(t, "staged\n", string(data))
	assert.Equal(t, "edited after add\n", f.read("a.txt"))
}

func TestAddUnstagesRemoval(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("first", map[string]string{"a.txt": "v1\n"})
	require.NoError(t, f.repo.Remove(f.ctx, "a.txt"))
	assert.False(t, f.exists("a.txt"))

	f.write("a.txt", "v1\n")
	f.add("a.txt")

	clean, err := f.repo.Stage().IsClean(f.ctx)
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestRemove(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("first", map[string]string{"tracked.txt": "tracked\n"})

	t.Run("staged file is unstaged and kept", func(t *testing.T) {
		f.write("new.txt", "new\n")
		f.add("new.txt")
		require.NoError(t, f.repo.Remove(f.ctx, "new.txt"))

		cs, err := f.repo.Stage().Status(f.ctx)
		require.NoError(t, err)
		assert.False(t, cs.Added.Has("new.txt"))
		assert.False(t, cs.Removed.Has("new.txt"))
		assert.True(t, f.exists("new.txt"))
	})

	t.Run("untracked file", func(t *testing.T) {
		err := f.repo.Remove(f.ctx, "new.txt")
		assert.Equal(t, status.ErrNothingToRemove, errors.Cause(err))
		assert.True(t, f.exists("new.txt"))
	})

	t.Run("tracked file is staged for removal and deleted", func(t *testing.T) {
		require.NoError(t, f.repo.Remove(f.ctx, "tracked.txt"))
		assert.False(t, f.exists("tracked.txt"))

		cs, err := f.repo.Stage().Status(f.ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"tracked.txt"}, cs.Removed.Paths())

		c, err := f.repo.Commit(f.ctx, "remove tracked")
		require.NoError(t, err)
		assert.False(t, c.Manifest.Has("tracked.txt"))
	})

	t.Run("no longer tracked", func(t *testing.T) {
		err := f.repo.Remove(f.ctx, "tracked.txt")
		assert.Equal(t, status.ErrNothingToRemove, errors.Cause(err))
	})
}

func TestRemoveAlreadyDeletedFile(t *testing.T) {
	f, done := setupRepo(t)
	defer done()

	f.commitFiles("first", map[string]string{"a.txt": "v1\n"})
	require.NoError(t, f.fs.Remove("a.txt"))

	require.NoError(t, f.repo.Remove(f.ctx, "a.txt"))
	cs, err := f.repo.Stage().Status(f.ctx)
	require.NoError(t, err)
	assert.True(t, cs.Removed.Has("a.txt"))
}
