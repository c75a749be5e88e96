package miner

import "path/filepath"

// Derived views over the commit sequence. These are computed on demand and
// never stored in the Result, so they cannot drift from the canonical data.

// CommitTypeCounts returns how many commits fell into each category.
func (r *Result) CommitTypeCounts() map[Category]int {
	counts := make(map[Category]int)
	for _, c := range r.Commits {
		counts[c.Category]++
	}
	return counts
}

// DayActivity returns commit counts keyed by weekday name.
func (r *Result) DayActivity() map[string]int {
	activity := make(map[string]int)
	for _, c := range r.Commits {
		activity[c.Date.Weekday().String()]++
	}
	return activity
}

// FileTypeCounts returns how many changed files carried each extension,
// summed across all commits. Files without an extension are not counted.
func (r *Result) FileTypeCounts() map[string]int {
	counts := make(map[string]int)
	for _, c := range r.Commits {
		for path := range c.Diffs {
			if ext := filepath.Ext(path); ext != "" {
				counts[ext]++
			}
		}
	}
	return counts
}
