package schema

import "time"

// CacheStatus represents the status of the scan cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalCommits  int              `json:"total_commits"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the recap_runs table.
type RunRecord struct {
	RunID          int64      `json:"run_id"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	RunDurationMs  *int32     `json:"run_duration_ms,omitempty"`
	Year           int32      `json:"year"`
	AuthorEmail    string     `json:"author_email"`
	ScanDir        string     `json:"scan_dir"`
	RepoCount      int32      `json:"repo_count"`
	TotalCommits   int32      `json:"total_commits"`
	TotalAdditions int32      `json:"total_additions"`
	TotalDeletions int32      `json:"total_deletions"`
	Uploaded       bool       `json:"uploaded"`
	PreviewURL     *string    `json:"preview_url,omitempty"`
	ConfigParams   *string    `json:"config_params,omitempty"`
}

// RepoStatRecord represents a row from the recap_repo_stats table.
type RepoStatRecord struct {
	RunID     int64  `json:"run_id"`
	RepoName  string `json:"repo_name"`
	Commits   int32  `json:"commits"`
	Additions int32  `json:"additions"`
	Deletions int32  `json:"deletions"`
}
