package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned when a path does not resolve to a git
// repository. This is the only fatal condition in a mining pass; callers
// should test for it with errors.Is.
var ErrNotRepository = errors.New("not a git repository")

// Open opens the repository rooted at path.
func Open(path string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return repo, nil
}

// RepoName derives a display name for the repository from its root
// directory name.
func RepoName(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "Unknown"
	}
	return filepath.Base(abs)
}

// ResolveRef resolves a branch name, tag, or other revision expression to a
// commit hash.
func ResolveRef(repo *gogit.Repository, ref string) (plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve ref %q: %w", ref, err)
	}
	return *hash, nil
}

// Head resolves the current HEAD commit hash.
func Head(repo *gogit.Repository) (plumbing.Hash, error) {
	ref, err := repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve HEAD: %w", err)
	}
	return ref.Hash(), nil
}
