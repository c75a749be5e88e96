package miner

import "strings"

// Category is the coarse commit classification used in rollups and reports.
type Category string

const (
	CategoryFix      Category = "fix"
	CategoryFeature  Category = "feature"
	CategoryRefactor Category = "refactor"
	CategoryDocs     Category = "docs"
	CategoryOther    Category = "other"
)

// categoryKeywords is checked in order; the first category with a matching
// keyword wins, so a message containing both "fix" and "add" is a fix.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryFix, []string{"fix", "bug", "issue", "error"}},
	{CategoryFeature, []string{"feat", "add", "implement", "new"}},
	{CategoryRefactor, []string{"refactor", "clean", "restructure"}},
	{CategoryDocs, []string{"doc", "readme", "comment"}},
}

// Classify assigns a category to a commit message with keyword heuristics.
func Classify(message string) Category {
	lower := strings.ToLower(message)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}
	return CategoryOther
}
