package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportr/reportr-go/internal/config"
	"github.com/reportr/reportr-go/internal/llm"
	"github.com/reportr/reportr-go/internal/miner"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func disabledClient(t *testing.T) *llm.Client {
	t.Helper()
	cfg := config.Default()
	cfg.LLM.Provider = "none"
	client, err := llm.NewClient(context.Background(), cfg, "", testLogger())
	require.NoError(t, err)
	return client
}

func sampleResult() *miner.Result {
	return &miner.Result{
		RepoName:     "demo",
		Period:       "Last 30 days",
		FilteredBy:   "All contributors",
		TotalCommits: 2,
		Commits: []miner.CommitRecord{
			{
				Hash:         "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
				Author:       "alice",
				AuthorEmail:  "alice@example.com",
				Date:         time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
				Message:      "fix parser",
				Category:     miner.CategoryFix,
				Diffs:        map[string]string{"parser.go": "+a\n-b\n"},
				LinesAdded:   1,
				LinesDeleted: 1,
				FilesChanged: 1,
			},
			{
				Hash:         "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
				Author:       "bob",
				AuthorEmail:  "bob@example.com",
				Date:         time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
				Message:      "add exporter",
				Category:     miner.CategoryFeature,
				Diffs:        map[string]string{"export.go": "+c\n"},
				LinesAdded:   1,
				LinesDeleted: 0,
				FilesChanged: 1,
			},
		},
		Contributors: map[string]*miner.ContributorStats{
			"alice": {Commits: 1, LinesAdded: 1, LinesDeleted: 1, FilesChanged: 1},
			"bob":   {Commits: 1, LinesAdded: 1, LinesDeleted: 0, FilesChanged: 1},
		},
		Structure: []miner.DirSummary{{Path: ".", FileCount: 3}},
	}
}

func TestBuildContext(t *testing.T) {
	ctx := BuildContext(sampleResult(), "main", 20)

	assert.Contains(t, ctx, "Repository: demo (Branch: main)")
	assert.Contains(t, ctx, "Analysis Period: Last 30 days")
	assert.Contains(t, ctx, "Filter: All contributors")
	assert.Contains(t, ctx, "Total Commits: 2")
	assert.Contains(t, ctx, "fix parser")
	assert.Contains(t, ctx, "aaaaaaaa")
	assert.Contains(t, ctx, "changed: parser.go")
	assert.Contains(t, ctx, "- .: 3 files")
}

func TestBuildContextCommitLimit(t *testing.T) {
	ctx := BuildContext(sampleResult(), "", 1)
	assert.Contains(t, ctx, "fix parser")
	assert.NotContains(t, ctx, "add exporter")
}

func TestMessagesShape(t *testing.T) {
	messages := Messages("some context")
	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, llm.RoleUser, messages[1].Role)
	assert.Equal(t, "some context", messages[1].Content)
}

func TestRenderTables(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, disabledClient(t), testLogger()).Render(sampleResult(), "main", 20)

	out := buf.String()
	assert.Contains(t, out, "Repository Overview")
	assert.Contains(t, out, "Contributors Summary")
	assert.Contains(t, out, "Recent Commits")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "2026-08-25")
}

func TestGenerateDisabled(t *testing.T) {
	var buf bytes.Buffer
	reporter := New(&buf, disabledClient(t), testLogger())
	_, err := reporter.Generate(context.Background(), sampleResult(), "", 20)
	assert.ErrorIs(t, err, llm.ErrDisabled)
}

// The JSON dump is the interchange boundary; its field names are fixed.
func TestWriteJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	reporter := New(&buf, disabledClient(t), testLogger())
	require.NoError(t, reporter.WriteJSON(sampleResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, key := range []string{
		"repo_name", "period", "filtered_by", "total_commits",
		"commits", "contributors", "repository_structure",
	} {
		assert.Contains(t, decoded, key)
	}

	commits, ok := decoded["commits"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, commits)
	first, ok := commits[0].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{
		"hash", "author", "author_email", "date", "message", "category",
		"diffs", "lines_added", "lines_deleted", "files_changed",
	} {
		assert.Contains(t, first, key)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	long := truncate("this message is definitely longer than ten characters", 10)
	assert.Equal(t, "this messa...", long)
}
