// Package parquet provides data structures and functions for exporting recap
// run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/gitrecap/gitrecap/schema"
	"github.com/parquet-go/parquet-go"
)

// RecapRun represents a single recap run with metadata.
// This struct maps to the recap_runs database table.
type RecapRun struct {
	// RunID is the unique identifier for this recap run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the scan began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the scan completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the scan in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// Year is the calendar year the recap covers
	Year int32 `parquet:"recap_year,snappy"`

	// AuthorEmail is the filter author for this run
	AuthorEmail string `parquet:"author_email,snappy"`

	// ScanDir is the root directory that was scanned
	ScanDir string `parquet:"scan_dir,snappy"`

	// RepoCount is the number of repositories that were scanned successfully
	RepoCount int32 `parquet:"repo_count,snappy"`

	// TotalCommits is the number of commits aggregated in this run
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// TotalAdditions is the number of added lines aggregated in this run
	TotalAdditions int32 `parquet:"total_additions,snappy"`

	// TotalDeletions is the number of deleted lines aggregated in this run
	TotalDeletions int32 `parquet:"total_deletions,snappy"`

	// Uploaded reports whether the run was sent to the recap service
	Uploaded bool `parquet:"uploaded,snappy"`

	// PreviewURL is the shareable link returned by the recap service (nullable)
	PreviewURL *string `parquet:"preview_url,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RepoStat represents the per-repository totals for a single run.
// This struct maps to the recap_repo_stats database table.
type RepoStat struct {
	// RunID references the parent recap run
	RunID int64 `parquet:"run_id,snappy"`

	// RepoName is the base name of the repository directory
	RepoName string `parquet:"repo_name,snappy"`

	// Commits is the number of matching commits in this repository
	Commits int32 `parquet:"commits,snappy"`

	// Additions is the number of added lines in this repository
	Additions int32 `parquet:"additions,snappy"`

	// Deletions is the number of deleted lines in this repository
	Deletions int32 `parquet:"deletions,snappy"`
}

// RecapCommit represents one commit from a report's capped commit list.
// This struct maps to the commits array of the report payload.
type RecapCommit struct {
	// Hash is the full commit hash
	Hash string `parquet:"hash,snappy"`

	// Date is the author date with the original UTC offset retained
	Date time.Time `parquet:"date,snappy"`

	// Message is the first line of the commit message
	Message string `parquet:"message,snappy"`

	// Repo is the repository name the commit belongs to
	Repo string `parquet:"repo,snappy"`

	// Additions is the number of added lines
	Additions int32 `parquet:"additions,snappy"`

	// Deletions is the number of deleted lines
	Deletions int32 `parquet:"deletions,snappy"`
}

// WriteRunsParquet writes a slice of RecapRun structs to a Parquet file.
func WriteRunsParquet(data []RecapRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RecapRun struct tags
	writer := parquet.NewGenericWriter[RecapRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRepoStatsParquet writes a slice of RepoStat structs to a Parquet file.
func WriteRepoStatsParquet(data []RepoStat, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RepoStat struct tags
	writer := parquet.NewGenericWriter[RepoStat](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCommitsParquet writes a slice of RecapCommit structs to a Parquet file.
func WriteCommitsParquet(data []RecapCommit, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RecapCommit struct tags
	writer := parquet.NewGenericWriter[RecapCommit](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchRecapRuns generates sample RecapRun data for demonstration.
func MockFetchRecapRuns() []RecapRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(45 * time.Second)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	previewURL1 := "https://gitrecap.dev/r/a1b2c3"
	configParams1 := `{"depth":2,"workers":8,"no_cache":false}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(2 * time.Minute)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"depth":3,"workers":4,"no_cache":true}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []RecapRun{
		{
			RunID:          1,
			StartTime:      startTime1,
			EndTime:        &endTime1,
			RunDurationMs:  &durationMs1,
			Year:           2024,
			AuthorEmail:    "alice@example.com",
			ScanDir:        "/home/alice/code",
			RepoCount:      12,
			TotalCommits:   842,
			TotalAdditions: 35120,
			TotalDeletions: 11877,
			Uploaded:       true,
			PreviewURL:     &previewURL1,
			ConfigParams:   &configParams1,
		},
		{
			RunID:          2,
			StartTime:      startTime2,
			EndTime:        &endTime2,
			RunDurationMs:  &durationMs2,
			Year:           2023,
			AuthorEmail:    "bob@example.com",
			ScanDir:        "/home/bob/projects",
			RepoCount:      5,
			TotalCommits:   190,
			TotalAdditions: 6034,
			TotalDeletions: 2210,
			Uploaded:       false,
			PreviewURL:     nil,
			ConfigParams:   &configParams2,
		},
		{
			RunID:          3,
			StartTime:      startTime3,
			EndTime:        nil, // Still running - nullable field
			RunDurationMs:  nil, // Not yet calculated - nullable field
			Year:           2024,
			AuthorEmail:    "alice@example.com",
			ScanDir:        "/home/alice/code",
			RepoCount:      0,
			TotalCommits:   0,
			TotalAdditions: 0,
			TotalDeletions: 0,
			Uploaded:       false,
			PreviewURL:     nil, // Never uploaded - nullable field
			ConfigParams:   nil, // No config stored - nullable field
		},
	}
}

// MockFetchRepoStats generates sample RepoStat data for demonstration.
func MockFetchRepoStats() []RepoStat {
	return []RepoStat{
		{
			RunID:     1,
			RepoName:  "api-server",
			Commits:   412,
			Additions: 18450,
			Deletions: 7211,
		},
		{
			RunID:     1,
			RepoName:  "web-client",
			Commits:   430,
			Additions: 16670,
			Deletions: 4666,
		},
		{
			RunID:     2,
			RepoName:  "dotfiles",
			Commits:   190,
			Additions: 6034,
			Deletions: 2210,
		},
	}
}

// ConvertRunRecords converts schema.RunRecord to RecapRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RecapRun {
	result := make([]RecapRun, len(records))
	for i, record := range records {
		result[i] = RecapRun{
			RunID:          record.RunID,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			Year:           record.Year,
			AuthorEmail:    record.AuthorEmail,
			ScanDir:        record.ScanDir,
			RepoCount:      record.RepoCount,
			TotalCommits:   record.TotalCommits,
			TotalAdditions: record.TotalAdditions,
			TotalDeletions: record.TotalDeletions,
			Uploaded:       record.Uploaded,
			PreviewURL:     record.PreviewURL,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertRepoStatRecords converts schema.RepoStatRecord to RepoStat for Parquet export.
func ConvertRepoStatRecords(records []schema.RepoStatRecord) []RepoStat {
	result := make([]RepoStat, len(records))
	for i, record := range records {
		result[i] = RepoStat{
			RunID:     record.RunID,
			RepoName:  record.RepoName,
			Commits:   record.Commits,
			Additions: record.Additions,
			Deletions: record.Deletions,
		}
	}
	return result
}

// ConvertReportCommits converts schema.ReportCommit to RecapCommit for Parquet export.
func ConvertReportCommits(commits []schema.ReportCommit) []RecapCommit {
	result := make([]RecapCommit, len(commits))
	for i, c := range commits {
		result[i] = RecapCommit{
			Hash:      c.Hash,
			Date:      c.Date,
			Message:   c.Message,
			Repo:      c.Repo,
			Additions: int32(c.Additions),
			Deletions: int32(c.Deletions),
		}
	}
	return result
}
