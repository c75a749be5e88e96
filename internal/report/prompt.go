package report

import (
	"fmt"
	"strings"

	"github.com/reportr/reportr-go/internal/llm"
	"github.com/reportr/reportr-go/internal/miner"
)

const systemPrompt = `You are a senior engineering manager writing a progress report
from git repository activity. Summarize what was accomplished in the period,
grouped by theme rather than by commit. Call out notable contributors, large or
risky changes, and the overall balance of fixes, features, refactoring, and
documentation. Be concrete, cite numbers from the data, and keep the report
under 500 words. Use markdown headings and bullet lists.`

// BuildContext flattens a mining result into the textual context handed to
// the text-generation collaborator. At most commitLimit commits are
// included, newest first.
func BuildContext(result *miner.Result, branch string, commitLimit int) string {
	var b strings.Builder

	branchInfo := ""
	if branch != "" {
		branchInfo = fmt.Sprintf(" (Branch: %s)", branch)
	}
	fmt.Fprintf(&b, "Repository: %s%s\n", result.RepoName, branchInfo)
	fmt.Fprintf(&b, "Analysis Period: %s\n", result.Period)
	fmt.Fprintf(&b, "Filter: %s\n", result.FilteredBy)
	fmt.Fprintf(&b, "Total Commits: %d\n", result.TotalCommits)

	b.WriteString("\nContributors:\n")
	for _, name := range sortedContributors(result) {
		stats := result.Contributors[name]
		fmt.Fprintf(&b, "- %s: %d commits, +%d -%d lines, %d files\n",
			name, stats.Commits, stats.LinesAdded, stats.LinesDeleted, stats.FilesChanged)
	}

	b.WriteString("\nRecent Commits:\n")
	commits := result.Commits
	if commitLimit > 0 && len(commits) > commitLimit {
		commits = commits[:commitLimit]
	}
	for _, c := range commits {
		fmt.Fprintf(&b, "- %s - %s (%s) [%s]\n  %s\n  +%d -%d lines, %d files\n",
			c.Date.Format("2006-01-02 15:04:05"), c.Author, shortHash(c.Hash),
			c.Category, c.Message, c.LinesAdded, c.LinesDeleted, c.FilesChanged)
		for path := range c.Diffs {
			fmt.Fprintf(&b, "  changed: %s\n", path)
		}
	}

	if len(result.Structure) > 0 {
		b.WriteString("\nRepository Structure:\n")
		for _, dir := range result.Structure {
			fmt.Fprintf(&b, "- %s: %d files\n", dir.Path, dir.FileCount)
		}
	}

	return b.String()
}

// Messages wraps the report context into the role-tagged sequence the
// collaborator interface expects.
func Messages(reportContext string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: reportContext},
	}
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
