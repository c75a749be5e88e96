// Package report renders mining results for the terminal and drives the
// AI-written progress report. It consumes the miner's output and never
// feeds anything back into it.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/reportr/reportr-go/internal/llm"
	"github.com/reportr/reportr-go/internal/miner"
)

var (
	headerColor  = color.New(color.FgHiYellow, color.Bold)
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
)

// Reporter renders mining results and requests AI summaries.
type Reporter struct {
	out    io.Writer
	client *llm.Client
	log    *logrus.Entry
}

// New creates a Reporter writing to out. client may be disabled; rendering
// still works, only Generate refuses.
func New(out io.Writer, client *llm.Client, logger *logrus.Logger) *Reporter {
	return &Reporter{
		out:    out,
		client: client,
		log:    logger.WithField("component", "report"),
	}
}

// Render prints the repository overview, contributor summary, and recent
// commits tables.
func (r *Reporter) Render(result *miner.Result, branch string, maxCommits int) {
	r.renderOverview(result, branch)
	r.renderContributors(result)
	r.renderCommits(result, maxCommits)
}

func (r *Reporter) renderOverview(result *miner.Result, branch string) {
	headerColor.Fprintln(r.out, "Repository Overview")
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Repository:\t%s\n", result.RepoName)
	if branch != "" {
		fmt.Fprintf(w, "Branch:\t%s\n", branch)
	}
	fmt.Fprintf(w, "Analysis Period:\t%s\n", result.Period)
	fmt.Fprintf(w, "Filter:\t%s\n", result.FilteredBy)
	fmt.Fprintf(w, "Total Commits:\t%d\n", result.TotalCommits)
	w.Flush()
	fmt.Fprintln(r.out)
}

func (r *Reporter) renderContributors(result *miner.Result) {
	if len(result.Contributors) == 0 {
		return
	}

	headerColor.Fprintln(r.out, "Contributors Summary")
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Contributor\tCommits\tLines Added\tLines Deleted\tFiles Changed\tNet Lines")
	for _, name := range sortedContributors(result) {
		stats := result.Contributors[name]
		net := stats.LinesAdded - stats.LinesDeleted
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%+d\n",
			name, stats.Commits,
			addedColor.Sprintf("+%d", stats.LinesAdded),
			removedColor.Sprintf("-%d", stats.LinesDeleted),
			stats.FilesChanged, net)
	}
	w.Flush()
	fmt.Fprintln(r.out)
}

func (r *Reporter) renderCommits(result *miner.Result, maxCommits int) {
	if len(result.Commits) == 0 {
		return
	}

	commits := result.Commits
	if maxCommits > 0 && len(commits) > maxCommits {
		commits = commits[:maxCommits]
	}

	headerColor.Fprintf(r.out, "Recent Commits (Last %d)\n", len(commits))
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tAuthor\tHash\tCategory\tMessage\tChanges")
	for _, c := range commits {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t+%d -%d (%d files)\n",
			c.Date.Format("2006-01-02"), c.Author, shortHash(c.Hash),
			c.Category, truncate(c.Message, 50),
			c.LinesAdded, c.LinesDeleted, c.FilesChanged)
	}
	w.Flush()
	fmt.Fprintln(r.out)
}

// Generate asks the text-generation collaborator for a prose progress
// report over the mining result.
func (r *Reporter) Generate(ctx context.Context, result *miner.Result, branch string, commitLimit int) (string, error) {
	if !r.client.Enabled() {
		return "", llm.ErrDisabled
	}

	reportContext := BuildContext(result, branch, commitLimit)
	r.log.WithField("context_bytes", len(reportContext)).Debug("requesting progress report")

	text, err := r.client.Complete(ctx, Messages(reportContext))
	if err != nil {
		return "", fmt.Errorf("generate progress report: %w", err)
	}
	return text, nil
}

// WriteJSON serializes the result with the fixed interchange field names.
func (r *Reporter) WriteJSON(result *miner.Result) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func sortedContributors(result *miner.Result) []string {
	names := make([]string, 0, len(result.Contributors))
	for name := range result.Contributors {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := result.Contributors[names[i]], result.Contributors[names[j]]
		if a.Commits != b.Commits {
			return a.Commits > b.Commits
		}
		return names[i] < names[j]
	})
	return names
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
