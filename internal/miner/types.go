package miner

import "time"

// CommitRecord is the immutable per-commit fact extracted during a mining
// pass. Records are built once and never mutated afterwards; the JSON field
// names are the interchange contract consumed by the reporting layer.
type CommitRecord struct {
	Hash         string            `json:"hash"`
	Author       string            `json:"author"`
	AuthorEmail  string            `json:"author_email"`
	Date         time.Time         `json:"date"`
	Message      string            `json:"message"`
	Category     Category          `json:"category"`
	Diffs        map[string]string `json:"diffs"`
	LinesAdded   int               `json:"lines_added"`
	LinesDeleted int               `json:"lines_deleted"`
	FilesChanged int               `json:"files_changed"`
}

// ContributorStats accumulates one author's activity over a mining pass.
type ContributorStats struct {
	Commits      int `json:"commits"`
	LinesAdded   int `json:"lines_added"`
	LinesDeleted int `json:"lines_deleted"`
	FilesChanged int `json:"files_changed"`
}

// DirSummary is one entry of the shallow repository structure snapshot.
type DirSummary struct {
	Path      string `json:"relative_path"`
	FileCount int    `json:"file_count"`
}

// Result is the complete output of one mining invocation. Nothing in it is
// shared across invocations and nothing outlives the caller.
type Result struct {
	RepoName     string                       `json:"repo_name"`
	Period       string                       `json:"period"`
	FilteredBy   string                       `json:"filtered_by"`
	TotalCommits int                          `json:"total_commits"`
	Commits      []CommitRecord               `json:"commits"`
	Contributors map[string]*ContributorStats `json:"contributors"`
	Structure    []DirSummary                 `json:"repository_structure"`
}
