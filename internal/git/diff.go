package git

import (
	"context"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"
)

// NoDiffContent is the sentinel stored in place of patch text when a file's
// diff cannot be rendered (binary content, unreadable blobs).
const NoDiffContent = "No diff content available"

// Extractor computes per-file unified diffs for single commits.
type Extractor struct {
	repo *gogit.Repository
	log  *logrus.Entry
}

// NewExtractor creates an Extractor over an already opened repository.
func NewExtractor(repo *gogit.Repository, logger *logrus.Logger) *Extractor {
	return &Extractor{
		repo: repo,
		log:  logger.WithField("component", "diff"),
	}
}

// Diffs returns the per-file patch text for a commit, keyed by file path.
//
// The commit is diffed against its first parent; a root commit is diffed
// against the empty tree. File identity prefers the post-change path and
// falls back to the pre-change path for deletions. Any failure to resolve
// the commit or its trees degrades to an empty map with a warning; callers
// cannot distinguish that from a commit that touched no files, which is the
// intended contract.
func (e *Extractor) Diffs(ctx context.Context, hash plumbing.Hash) map[string]string {
	diffs := make(map[string]string)

	commit, err := e.repo.CommitObject(hash)
	if err != nil {
		e.log.WithError(err).WithField("commit", hash.String()).Warn("could not resolve commit")
		return diffs
	}

	tree, err := commit.Tree()
	if err != nil {
		e.log.WithError(err).WithField("commit", hash.String()).Warn("could not load commit tree")
		return diffs
	}

	// nil parent tree makes DiffTree treat the commit as a diff from the
	// empty tree, which is exactly the root-commit contract.
	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			e.log.WithError(err).WithField("commit", hash.String()).Warn("could not resolve first parent")
			return diffs
		}
		parentTree, err = parent.Tree()
		if err != nil {
			e.log.WithError(err).WithField("commit", hash.String()).Warn("could not load parent tree")
			return diffs
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		e.log.WithError(err).WithField("commit", hash.String()).Warn("diff computation failed")
		return diffs
	}

	for _, change := range changes {
		path := change.To.Name
		if path == "" {
			path = change.From.Name
		}
		if path == "" {
			continue
		}

		patch, err := change.PatchContext(ctx)
		if err != nil || patch == nil {
			diffs[path] = NoDiffContent
			continue
		}

		binary := false
		for _, fp := range patch.FilePatches() {
			if fp.IsBinary() {
				binary = true
				break
			}
		}
		if binary {
			diffs[path] = NoDiffContent
			continue
		}

		text := patch.String()
		if text == "" {
			text = NoDiffContent
		}
		diffs[path] = text
	}

	return diffs
}

// CountDiffLines counts the added and deleted lines in a unified diff.
// Returns (linesAdded, linesDeleted).
func CountDiffLines(diff string) (int, int) {
	if diff == "" {
		return 0, 0
	}

	lines := strings.Split(diff, "\n")
	linesAdded := 0
	linesDeleted := 0

	for _, line := range lines {
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case '+':
			// Ignore +++ header lines
			if !strings.HasPrefix(line, "+++") {
				linesAdded++
			}
		case '-':
			// Ignore --- header lines
			if !strings.HasPrefix(line, "---") {
				linesDeleted++
			}
		}
	}

	return linesAdded, linesDeleted
}
