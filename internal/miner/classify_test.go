package miner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    Category
	}{
		{"Fix login crash", CategoryFix},
		{"resolve issue with parser", CategoryFix},
		{"error handling for timeouts", CategoryFix},
		{"Add user profile page", CategoryFeature},
		{"implement search endpoint", CategoryFeature},
		{"feat: new dashboard", CategoryFeature},
		{"refactor session handling", CategoryRefactor},
		{"general cleanup", CategoryRefactor},
		{"restructure package layout", CategoryRefactor},
		{"update docs", CategoryDocs},
		{"README tweaks", CategoryDocs},
		{"comment the parser states", CategoryDocs},
		{"bump version", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

// A message matching several categories takes the highest-priority one:
// fix beats feature beats refactor beats docs.
func TestClassifyPriorityOrder(t *testing.T) {
	assert.Equal(t, CategoryFix, Classify("fix and add new feature"))
	assert.Equal(t, CategoryFeature, Classify("add docs for the cleaner"))
	assert.Equal(t, CategoryRefactor, Classify("clean up README generator"))
}
