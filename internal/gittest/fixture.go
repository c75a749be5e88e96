// Package gittest builds throwaway git repositories for tests using go-git,
// so the suite does not depend on a git binary being installed.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Fixture is a temporary on-disk repository.
type Fixture struct {
	t    *testing.T
	Path string
	Repo *gogit.Repository
}

// Init creates a repository whose default branch is "master".
func Init(t *testing.T) *Fixture {
	t.Helper()
	return InitBranch(t, "master")
}

// InitBranch creates a repository with the given default branch.
func InitBranch(t *testing.T, branch string) *Fixture {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(branch),
		},
	})
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	return &Fixture{t: t, Path: dir, Repo: repo}
}

// WriteFile writes content to a path relative to the repository root,
// creating parent directories as needed.
func (f *Fixture) WriteFile(name, content string) {
	f.t.Helper()
	full := filepath.Join(f.Path, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		f.t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		f.t.Fatalf("write %s: %v", name, err)
	}
}

// RemoveFile deletes a file from the worktree.
func (f *Fixture) RemoveFile(name string) {
	f.t.Helper()
	if err := os.Remove(filepath.Join(f.Path, name)); err != nil {
		f.t.Fatalf("remove %s: %v", name, err)
	}
}

// Commit stages everything and commits as the given author at the given
// time. Committer time is set to the same instant, which is what the date
// window in the miner filters on.
func (f *Fixture) Commit(message, author, email string, when time.Time) plumbing.Hash {
	f.t.Helper()
	return f.commit(message, author, email, when, nil)
}

// MergeCommit records a commit with explicit parents, which is how the
// tests synthesize merge commits without a full merge machinery.
func (f *Fixture) MergeCommit(message, author, email string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	f.t.Helper()
	return f.commit(message, author, email, when, parents)
}

func (f *Fixture) commit(message, author, email string, when time.Time, parents []plumbing.Hash) plumbing.Hash {
	f.t.Helper()
	wt, err := f.Repo.Worktree()
	if err != nil {
		f.t.Fatalf("worktree: %v", err)
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		f.t.Fatalf("stage changes: %v", err)
	}
	sig := &object.Signature{Name: author, Email: email, When: when}
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:            sig,
		Committer:         sig,
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	if err != nil {
		f.t.Fatalf("commit %q: %v", message, err)
	}
	return hash
}

// CheckoutNew creates and checks out a new branch at the current HEAD.
func (f *Fixture) CheckoutNew(branch string) {
	f.t.Helper()
	wt, err := f.Repo.Worktree()
	if err != nil {
		f.t.Fatalf("worktree: %v", err)
	}
	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	})
	if err != nil {
		f.t.Fatalf("checkout %s: %v", branch, err)
	}
}
