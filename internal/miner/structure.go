package miner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	structureMaxDepth   = 2
	structureMaxEntries = 10
)

// Structure walks the repository root and returns a shallow overview of its
// layout: one entry per directory with its immediate file count, no deeper
// than two path segments, capped at ten entries. The .git directory is
// excluded. Unreadable paths are skipped rather than reported.
func Structure(root string) []DirSummary {
	summaries := make([]DirSummary, 0, structureMaxEntries)

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return filepath.SkipDir
		}
		depth := 0
		if rel != "." {
			depth = len(strings.Split(rel, string(filepath.Separator)))
		}
		if depth > structureMaxDepth {
			return filepath.SkipDir
		}
		if len(summaries) >= structureMaxEntries {
			return filepath.SkipAll
		}

		summaries = append(summaries, DirSummary{
			Path:      filepath.ToSlash(rel),
			FileCount: countFiles(path),
		})
		return nil
	})

	return summaries
}

func countFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			count++
		}
	}
	return count
}
