// Package schema has models, constants and wire types for all parts of gitrecap.
package schema

import "time"

// Commit is a single extracted commit for the filter author.
// It is created during extraction and never mutated afterwards.
type Commit struct {
	Hash        string    `json:"hash"`         // Full commit hash
	Timestamp   time.Time `json:"timestamp"`    // Author date with the original UTC offset retained
	Subject     string    `json:"subject"`      // First line of the commit message
	AuthorEmail string    `json:"author_email"` // Author email as recorded by the VCS
	Repo        string    `json:"repo"`         // Repository name the commit belongs to
	Additions   int       `json:"additions"`    // Lines added, 0 for commits without a stat line
	Deletions   int       `json:"deletions"`    // Lines deleted, 0 for commits without a stat line
}

// RepoActivity is the extraction result for one repository: the author's
// commits in the requested year plus the file-touch histogram keyed by
// lowercased extension.
type RepoActivity struct {
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	Commits   []Commit       `json:"commits"`
	FileTypes map[string]int `json:"file_types"`
}

// RepoSummary is the per-repository rollup included in the report.
// Only repositories with at least one matching commit get a summary.
type RepoSummary struct {
	Name      string `json:"name"`
	Commits   int    `json:"commits"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// ReportCommit is the trimmed commit record included in the report payload.
type ReportCommit struct {
	Hash      string    `json:"hash"`
	Date      time.Time `json:"date"`
	Message   string    `json:"message"`
	Repo      string    `json:"repo"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
}

// Report is the final aggregate for one author and one calendar year.
//
// Invariants: TotalCommits, TotalAdditions and TotalDeletions equal the sums
// over Repositories; HourlyDistribution and DailyDistribution each sum to
// TotalCommits; FileTypes counts file-touch events, not distinct files.
type Report struct {
	TotalCommits       int            `json:"total_commits"`
	TotalAdditions     int            `json:"total_additions"`
	TotalDeletions     int            `json:"total_deletions"`
	Repositories       []RepoSummary  `json:"repositories"`
	Commits            []ReportCommit `json:"commits"`
	HourlyDistribution []int          `json:"hourly_distribution"`
	DailyDistribution  []int          `json:"daily_distribution"`
	FileTypes          map[string]int `json:"file_types"`
	AuthorEmail        string         `json:"author_email"`
	AuthorName         string         `json:"author_name"`
}

// ScanResult bundles a finished report with scan-level context that the
// report itself does not carry.
type ScanResult struct {
	Report       *Report
	ReposFound   int           // Repositories discovered under the scan root
	ReposScanned int           // Repositories whose extraction succeeded
	Duration     time.Duration // Wall-clock time for discovery plus extraction
	RunID        int64         // History run row for this scan, 0 when tracking is off
}
