package miner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func viewResult() *Result {
	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	return &Result{
		Commits: []CommitRecord{
			{
				Message:  "fix crash",
				Category: CategoryFix,
				Date:     monday,
				Diffs:    map[string]string{"main.go": "+x\n", "util.go": "+y\n"},
			},
			{
				Message:  "add feature",
				Category: CategoryFeature,
				Date:     monday.AddDate(0, 0, 1),
				Diffs:    map[string]string{"main.go": "+z\n", "Makefile": "+w\n"},
			},
			{
				Message:  "fix typo",
				Category: CategoryFix,
				Date:     monday.AddDate(0, 0, 7),
				Diffs:    map[string]string{"docs.md": "+d\n"},
			},
		},
	}
}

func TestCommitTypeCounts(t *testing.T) {
	counts := viewResult().CommitTypeCounts()
	assert.Equal(t, 2, counts[CategoryFix])
	assert.Equal(t, 1, counts[CategoryFeature])
	assert.Zero(t, counts[CategoryDocs])
}

func TestDayActivity(t *testing.T) {
	activity := viewResult().DayActivity()
	assert.Equal(t, 2, activity["Monday"])
	assert.Equal(t, 1, activity["Tuesday"])
}

func TestFileTypeCounts(t *testing.T) {
	counts := viewResult().FileTypeCounts()
	assert.Equal(t, 3, counts[".go"])
	assert.Equal(t, 1, counts[".md"])
	// Files without an extension are not counted.
	assert.Zero(t, counts[""])
}
