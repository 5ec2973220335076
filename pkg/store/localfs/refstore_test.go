package localfs

import (
	"context"
	"io/ioutil"
	"os"
	"testing"

	"github.com/oneconcern/gitlet/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRefs(t testing.TB) (store.RefStore, func()) {
	td, err := ioutil.TempDir("", "gitlet-tst")
	require.NoError(t, err)

	st := NewRefs(td, ValueLogSize(1<<20))
	require.NoError(t, st.Initialize())
	return st, func() {
		_ = st.Close()
		_ = os.RemoveAll(td)
	}
}

func TestBranches(t *testing.T) {
	st, done := setupRefs(t)
	defer done()
	ctx := context.Background()

	_, err := st.GetBranch(ctx, "master")
	require.Equal(t, store.BranchNotFound, err)

	require.NoError(t, st.SetBranch(ctx, "master", "c1"))
	require.NoError(t, st.SetBranch(ctx, "feature", "c1"))
	require.NoError(t, st.SetBranch(ctx, "bugfix", "c2"))
	require.Equal(t, store.NameIsRequired, st.SetBranch(ctx, " ", "c2"))

	id, err := st.GetBranch(ctx, "bugfix")
	require.NoError(t, err)
	assert.Equal(t, "c2", id)

	require.NoError(t, st.SetBranch(ctx, "bugfix", "c3"))
	id, err = st.GetBranch(ctx, "bugfix")
	require.NoError(t, err)
	assert.Equal(t, "c3", id)

	branches, err := st.ListBranches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bugfix", "feature", "master"}, branches)

	require.NoError(t, st.DeleteBranch(ctx, "feature"))
	require.Equal(t, store.BranchNotFound, st.DeleteBranch(ctx, "feature"))

	branches, err = st.ListBranches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bugfix", "master"}, branches)

	// the commit a deleted branch pointed to is not affected
	id, err = st.GetBranch(ctx, "master")
	require.NoError(t, err)
	assert.Equal(t, "c1", id)
}

func TestHead(t *testing.T) {
	st, done := setupRefs(t)
	defer done()
	ctx := context.Background()

	_, err := st.Head(ctx)
	require.Equal(t, store.HeadNotFound, err)

	require.Equal(t, store.BranchNotFound, st.SetHead(ctx, "master"))

	require.NoError(t, st.SetBranch(ctx, "master", "c1"))
	require.NoError(t, st.SetHead(ctx, "master"))

	head, err := st.Head(ctx)
	require.NoError(t, err)
	assert.Equal(t, "master", head)

	// head is not listed as a branch
	branches, err := st.ListBranches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"master"}, branches)
}

func TestSettings(t *testing.T) {
	st, done := setupRefs(t)
	defer done()
	ctx := context.Background()

	_, err := st.Setting(ctx, "hash.leaf_size")
	require.Equal(t, store.SettingNotFound, err)

	require.NoError(t, st.SetSetting(ctx, "hash.leaf_size", "5242880"))
	v, err := st.Setting(ctx, "hash.leaf_size")
	require.NoError(t, err)
	assert.Equal(t, "5242880", v)
}

func TestReopenRefs(t *testing.T) {
	td, err := ioutil.TempDir("", "gitlet-tst")
	require.NoError(t, err)
	defer os.RemoveAll(td)
	ctx := context.Background()

	st := NewRefs(td)
	require.NoError(t, st.Initialize())
	require.NoError(t, st.SetBranch(ctx, "master", "c1"))
	require.NoError(t, st.SetHead(ctx, "master"))
	require.NoError(t, st.Close())

	st = NewRefs(td)
	require.NoError(t, st.Initialize())
	defer st.Close()

	head, err := st.Head(ctx)
	require.NoError(t, err)
	assert.Equal(t, "master", head)
}
