// Package miner walks a repository's commit history and aggregates it into
// per-commit records, per-contributor rollups, and a repository overview.
package miner

import (
	"context"
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/reportr/reportr-go/internal/git"
)

// DefaultDaysBack is the date window applied when the caller does not
// choose one.
const DefaultDaysBack = 30

// diffWorkers bounds parallel diff extraction. Extraction is independent
// per commit; rollup accumulation stays a single sequential pass.
const diffWorkers = 4

// Options selects the commit range for one mining pass.
type Options struct {
	// DaysBack limits the pass to commits whose committer time falls
	// within the last N days. Zero disables the window entirely.
	DaysBack int

	// Branch pins the pass to a single ref. When empty the miner tries
	// "main", then "master", then falls back to the full history of the
	// current HEAD with no date window.
	Branch string

	// Contributors restricts the pass to commits authored under these
	// display names. Empty means all contributors.
	Contributors []string
}

// Miner mines one repository. A Miner is cheap and carries no state across
// Mine calls; every call builds a fresh Result.
type Miner struct {
	repoPath string
	logger   *logrus.Logger
	log      *logrus.Entry
}

// New creates a Miner for the repository rooted at repoPath.
func New(repoPath string, logger *logrus.Logger) *Miner {
	return &Miner{
		repoPath: repoPath,
		logger:   logger,
		log:      logger.WithField("component", "miner"),
	}
}

// Mine walks the selected commit range and returns the aggregated result.
//
// The only fatal condition is a path that is not a git repository, reported
// as git.ErrNotRepository. Everything else (missing branch, unreadable
// diffs, binary files) degrades to defaults with a warning.
func (m *Miner) Mine(ctx context.Context, opts Options) (*Result, error) {
	repo, err := git.Open(m.repoPath)
	if err != nil {
		return nil, err
	}

	var since *time.Time
	if opts.DaysBack > 0 {
		cutoff := time.Now().AddDate(0, 0, -opts.DaysBack)
		since = &cutoff
	}

	commits := m.resolveCommits(repo, opts.Branch, since)
	records := m.extractRecords(ctx, repo, m.filterCommits(commits, opts.Contributors))

	result := &Result{
		RepoName:     git.RepoName(m.repoPath),
		Period:       periodLabel(opts.DaysBack),
		FilteredBy:   filterLabel(opts.Contributors),
		Commits:      records,
		Contributors: make(map[string]*ContributorStats),
		Structure:    Structure(m.repoPath),
	}

	// Single accumulation pass; the rollup invariants hold by construction.
	for _, record := range records {
		stats, ok := result.Contributors[record.Author]
		if !ok {
			stats = &ContributorStats{}
			result.Contributors[record.Author] = stats
		}
		stats.Commits++
		stats.LinesAdded += record.LinesAdded
		stats.LinesDeleted += record.LinesDeleted
		stats.FilesChanged += record.FilesChanged
	}
	result.TotalCommits = len(records)

	m.log.WithFields(logrus.Fields{
		"repo":         result.RepoName,
		"commits":      result.TotalCommits,
		"contributors": len(result.Contributors),
	}).Debug("mining pass complete")

	return result, nil
}

// resolveCommits applies the branch policy and returns the commit walk in
// reverse-chronological order.
func (m *Miner) resolveCommits(repo *gogit.Repository, branch string, since *time.Time) []*object.Commit {
	if branch != "" {
		hash, err := git.ResolveRef(repo, branch)
		if err != nil {
			m.log.WithError(err).WithField("branch", branch).Warn("could not access branch")
			return nil
		}
		commits := m.listCommits(repo, hash, since)
		if len(commits) == 0 {
			m.log.WithField("branch", branch).Warn("no commits found in branch for the specified time period")
		}
		return commits
	}

	for _, candidate := range []string{"main", "master"} {
		hash, err := git.ResolveRef(repo, candidate)
		if err != nil {
			continue
		}
		if commits := m.listCommits(repo, hash, since); len(commits) > 0 {
			return commits
		}
	}

	// Last resort: the full history of the current head, no date window.
	head, err := git.Head(repo)
	if err != nil {
		m.log.WithError(err).Warn("could not resolve HEAD")
		return nil
	}
	return m.listCommits(repo, head, nil)
}

func (m *Miner) listCommits(repo *gogit.Repository, from plumbing.Hash, since *time.Time) []*object.Commit {
	iter, err := repo.Log(&gogit.LogOptions{
		From:  from,
		Order: gogit.LogOrderCommitterTime,
		Since: since,
	})
	if err != nil {
		m.log.WithError(err).Warn("history walk failed")
		return nil
	}
	defer iter.Close()

	var commits []*object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		m.log.WithError(err).Warn("history walk aborted")
	}
	return commits
}

// filterCommits drops merge commits and, when a contributor filter is set,
// commits authored by anyone outside it. Both are silent skips.
func (m *Miner) filterCommits(commits []*object.Commit, contributors []string) []*object.Commit {
	var filter map[string]struct{}
	if len(contributors) > 0 {
		filter = make(map[string]struct{}, len(contributors))
		for _, name := range contributors {
			filter[name] = struct{}{}
		}
	}

	kept := make([]*object.Commit, 0, len(commits))
	for _, c := range commits {
		if c.NumParents() > 1 {
			continue
		}
		if filter != nil {
			if _, ok := filter[c.Author.Name]; !ok {
				continue
			}
		}
		kept = append(kept, c)
	}
	return kept
}

// extractRecords builds one CommitRecord per commit. Diff extraction runs
// on a bounded worker pool; records land in an indexed slice so the output
// preserves the walk order regardless of completion order.
func (m *Miner) extractRecords(ctx context.Context, repo *gogit.Repository, commits []*object.Commit) []CommitRecord {
	records := make([]CommitRecord, len(commits))
	extractor := git.NewExtractor(repo, m.logger)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(diffWorkers)
	for i, c := range commits {
		g.Go(func() error {
			diffs := extractor.Diffs(ctx, c.Hash)

			linesAdded, linesDeleted := 0, 0
			for _, diff := range diffs {
				added, deleted := git.CountDiffLines(diff)
				linesAdded += added
				linesDeleted += deleted
			}

			message := strings.TrimSpace(c.Message)
			records[i] = CommitRecord{
				Hash:         c.Hash.String(),
				Author:       c.Author.Name,
				AuthorEmail:  c.Author.Email,
				Date:         c.Committer.When,
				Message:      message,
				Category:     Classify(message),
				Diffs:        diffs,
				LinesAdded:   linesAdded,
				LinesDeleted: linesDeleted,
				FilesChanged: len(diffs),
			}
			return nil
		})
	}
	g.Wait()

	return records
}

func periodLabel(daysBack int) string {
	if daysBack > 0 {
		return fmt.Sprintf("Last %d days", daysBack)
	}
	return "All time"
}

func filterLabel(contributors []string) string {
	if len(contributors) == 0 {
		return "All contributors"
	}
	return strings.Join(contributors, ", ")
}
