package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportr/reportr-go/internal/gittest"
)

func TestOpenNotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestOpenMissingPath(t *testing.T) {
	_, err := Open("/nonexistent/path/to/repo")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestOpenValidRepository(t *testing.T) {
	f := gittest.Init(t)
	repo, err := Open(f.Path)
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestRepoName(t *testing.T) {
	assert.Equal(t, "myrepo", RepoName("/tmp/work/myrepo"))
	assert.Equal(t, "myrepo", RepoName("/tmp/work/myrepo/"))
}

func TestResolveRef(t *testing.T) {
	f := gittest.Init(t)
	f.WriteFile("a.txt", "x\n")
	hash := f.Commit("initial", "alice", "alice@example.com", time.Now())

	resolved, err := ResolveRef(f.Repo, "master")
	require.NoError(t, err)
	assert.Equal(t, hash, resolved)

	_, err = ResolveRef(f.Repo, "no-such-branch")
	assert.Error(t, err)
}

func TestHead(t *testing.T) {
	f := gittest.Init(t)
	f.WriteFile("a.txt", "x\n")
	hash := f.Commit("initial", "alice", "alice@example.com", time.Now())

	head, err := Head(f.Repo)
	require.NoError(t, err)
	assert.Equal(t, hash, head)
}
