//go:build basic

// Package integration contains end-to-end tests for the gitrecap CLI.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offlineArgs disables persistence and decoration so assertions stay stable.
var offlineArgs = []string{
	"--author", "recap@example.com",
	"--year", "2024",
	"--emoji", "no",
	"--color", "no",
	"--cache-backend", "none",
	"--history-backend", "none",
}

// TestScanSummaryText runs a full scan against the fixture tree and checks the
// human-readable summary.
func TestScanSummaryText(t *testing.T) {
	tree := makeFixtureTree(t)
	home := t.TempDir()

	args := append([]string{"scan", tree}, offlineArgs...)
	out, err := runGitrecap(t, home, args...)
	require.NoError(t, err, out)

	assert.Contains(t, out, "2024 recap for")
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "cli")
	assert.Contains(t, out, "Showing top 2 of 2 repositories (commits: 4, additions: 6, deletions: 0)")
	assert.Contains(t, out, "Peak day: Tuesday (3 commits)")
	assert.Contains(t, out, "Top file types: go (3), md (1)")
}

// TestScanJSONAggregates verifies the JSON aggregate written by --output json.
func TestScanJSONAggregates(t *testing.T) {
	tree := makeFixtureTree(t)
	home := t.TempDir()
	outputFile := filepath.Join(home, "recap.json")

	args := append([]string{"scan", tree}, offlineArgs...)
	args = append(args, "--output", "json", "--output-file", outputFile)
	out, err := runGitrecap(t, home, args...)
	require.NoError(t, err, out)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var report struct {
		TotalCommits   int    `json:"total_commits"`
		TotalAdditions int    `json:"total_additions"`
		TotalDeletions int    `json:"total_deletions"`
		Repositories   []struct {
			Name    string `json:"name"`
			Commits int    `json:"commits"`
		} `json:"repositories"`
		HourlyDistribution []int          `json:"hourly_distribution"`
		DailyDistribution  []int          `json:"daily_distribution"`
		FileTypes          map[string]int `json:"file_types"`
		AuthorEmail        string         `json:"author_email"`
		AuthorName         string         `json:"author_name"`
	}
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, 4, report.TotalCommits)
	assert.Equal(t, 6, report.TotalAdditions)
	assert.Equal(t, 0, report.TotalDeletions)

	require.Len(t, report.Repositories, 2)
	assert.Equal(t, "api", report.Repositories[0].Name, "busiest repository ranks first")
	assert.Equal(t, 3, report.Repositories[0].Commits)
	assert.Equal(t, "cli", report.Repositories[1].Name)
	assert.Equal(t, 1, report.Repositories[1].Commits)

	require.Len(t, report.HourlyDistribution, 24)
	require.Len(t, report.DailyDistribution, 7)
	hourSum, daySum := 0, 0
	for _, n := range report.HourlyDistribution {
		hourSum += n
	}
	for _, n := range report.DailyDistribution {
		daySum += n
	}
	assert.Equal(t, report.TotalCommits, hourSum, "hourly histogram accounts for every commit")
	assert.Equal(t, report.TotalCommits, daySum, "daily histogram accounts for every commit")

	assert.Equal(t, map[string]int{"go": 3, "md": 1}, report.FileTypes)
	assert.Equal(t, "recap@example.com", report.AuthorEmail)
	assert.Equal(t, "Developer", report.AuthorName, "no ambient user.name resolves to the default")
}

// TestScanMatchesGitLog cross-checks per-repository commit counts against the
// git binary itself.
func TestScanMatchesGitLog(t *testing.T) {
	tree := makeFixtureTree(t)
	home := t.TempDir()
	outputFile := filepath.Join(home, "recap.json")

	args := append([]string{"scan", tree}, offlineArgs...)
	args = append(args, "--output", "json", "--output-file", outputFile)
	out, err := runGitrecap(t, home, args...)
	require.NoError(t, err, out)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	var report struct {
		Repositories []struct {
			Name    string `json:"name"`
			Commits int    `json:"commits"`
		} `json:"repositories"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	require.NotEmpty(t, report.Repositories)

	for _, repo := range report.Repositories {
		t.Run(repo.Name, func(t *testing.T) {
			gitCmd := exec.Command("git", "-C", filepath.Join(tree, repo.Name),
				"log", "--oneline", "--author=recap@example.com",
				"--since=2024-01-01T00:00:00", "--until=2024-12-31T23:59:59")
			gitOutput, err := gitCmd.Output()
			require.NoError(t, err)
			gitLines := strings.Split(strings.TrimSpace(string(gitOutput)), "\n")
			if gitLines[0] == "" {
				gitLines = []string{}
			}
			assert.Equal(t, repo.Commits, len(gitLines), "commit count mismatch for %s", repo.Name)
		})
	}
}

// TestScanCSVBreakdown verifies the CSV rows written by --output csv.
func TestScanCSVBreakdown(t *testing.T) {
	tree := makeFixtureTree(t)
	home := t.TempDir()
	outputFile := filepath.Join(home, "recap.csv")

	args := append([]string{"scan", tree}, offlineArgs...)
	args = append(args, "--output", "csv", "--output-file", outputFile)
	out, err := runGitrecap(t, home, args...)
	require.NoError(t, err, out)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,repository,commits,additions,deletions,share,label", lines[0])
	assert.Equal(t, "1,api,3,5,0,75.0,Heavy", lines[1])
	assert.Equal(t, "2,cli,1,1,0,25.0,Active", lines[2])
}

// TestScanFailsWithoutRepositories expects exit code 1 when the tree holds no
// repositories at all.
func TestScanFailsWithoutRepositories(t *testing.T) {
	tree := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "docs"), 0o755))
	home := t.TempDir()

	args := append([]string{"scan", tree}, offlineArgs...)
	out, err := runGitrecap(t, home, args...)
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, out, "no git repositories found")
}

// TestScanNoCommitsIsCleanExit expects exit code 0 when repositories exist but
// the recap year has no matching commits.
func TestScanNoCommitsIsCleanExit(t *testing.T) {
	tree := makeFixtureTree(t)
	home := t.TempDir()

	args := []string{"scan", tree,
		"--author", "recap@example.com",
		"--year", "2023",
		"--emoji", "no",
		"--color", "no",
		"--cache-backend", "none",
		"--history-backend", "none",
	}
	out, err := runGitrecap(t, home, args...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "No commits found for recap@example.com in 2023")
}

// TestReportDryRunWritesPayload checks that --dry-run produces the exact wire
// payload without contacting any server.
func TestReportDryRunWritesPayload(t *testing.T) {
	tree := makeFixtureTree(t)
	home := t.TempDir()
	outputFile := filepath.Join(home, "payload.json")

	args := append([]string{"report", tree}, offlineArgs...)
	args = append(args, "--dry-run", "--output-file", outputFile)
	out, err := runGitrecap(t, home, args...)
	require.NoError(t, err, out)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var payload struct {
		Key  string `json:"key"`
		Year int    `json:"year"`
		Data struct {
			TotalCommits int `json:"total_commits"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Empty(t, payload.Key, "dry runs never resolve a key")
	assert.Equal(t, 2024, payload.Year)
	assert.Equal(t, 4, payload.Data.TotalCommits)
}

// TestScanCacheAndHistoryRoundTrip runs two scans with the default SQLite
// stores and checks that the cached second run agrees with the first and that
// both runs were recorded.
func TestScanCacheAndHistoryRoundTrip(t *testing.T) {
	tree := makeFixtureTree(t)
	home := t.TempDir()

	baseArgs := []string{"scan", tree,
		"--author", "recap@example.com",
		"--year", "2024",
		"--emoji", "no",
		"--color", "no",
	}

	firstFile := filepath.Join(home, "first.json")
	args := append(append([]string{}, baseArgs...), "--output", "json", "--output-file", firstFile)
	out, err := runGitrecap(t, home, args...)
	require.NoError(t, err, out)

	secondFile := filepath.Join(home, "second.json")
	args = append(append([]string{}, baseArgs...), "--output", "json", "--output-file", secondFile)
	out, err = runGitrecap(t, home, args...)
	require.NoError(t, err, out)

	first, err := os.ReadFile(firstFile)
	require.NoError(t, err)
	second, err := os.ReadFile(secondFile)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "cached run must reproduce the fresh aggregate")

	out, err = runGitrecap(t, home, "cache", "status")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Cache Backend: sqlite")
	assert.Contains(t, out, "Total Entries: 2")

	out, err = runGitrecap(t, home, "history", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Showing 2 runs, newest first")

	out, err = runGitrecap(t, home, "history", "status")
	require.NoError(t, err, out)
	assert.Contains(t, out, "History Backend: sqlite")
	assert.Contains(t, out, "Total Runs: 2")
}
