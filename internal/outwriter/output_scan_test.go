package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScanResult() *schema.ScanResult {
	hourly := make([]int, schema.HourBuckets)
	daily := make([]int, schema.DayBuckets)
	hourly[9] = 30
	hourly[22] = 12
	daily[2] = 25
	daily[5] = 17

	return &schema.ScanResult{
		Report: &schema.Report{
			TotalCommits:   42,
			TotalAdditions: 1200,
			TotalDeletions: 340,
			Repositories: []schema.RepoSummary{
				{Name: "cli-tools", Commits: 30, Additions: 900, Deletions: 200},
				{Name: "dotfiles", Commits: 12, Additions: 300, Deletions: 140},
			},
			Commits: []schema.ReportCommit{
				{
					Hash:      "a1b2c3d4",
					Date:      time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
					Message:   "Add retry to uploader",
					Repo:      "cli-tools",
					Additions: 10,
					Deletions: 2,
				},
			},
			HourlyDistribution: hourly,
			DailyDistribution:  daily,
			FileTypes:          map[string]int{"go": 50, "md": 8, "yaml": 3},
			AuthorEmail:        "dev@example.com",
			AuthorName:         "Dev Example",
		},
		ReposFound:   5,
		ReposScanned: 5,
		Duration:     1500 * time.Millisecond,
		RunID:        1,
	}
}

func TestWriteScanTable(t *testing.T) {
	result := sampleScanResult()
	cfg := &contract.Config{
		Year:         2024,
		Workers:      4,
		Output:       schema.TextOut,
		Width:        120,
		UseColors:    false,
		ResultLimit:  25,
		CacheBackend: schema.SQLiteBackend,
	}

	var buf bytes.Buffer
	err := writeScanTable(&buf, result, cfg)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "2024 recap for Dev Example <dev@example.com>")
	assert.Contains(t, output, "cli-tools")
	assert.Contains(t, output, "dotfiles")
	assert.Contains(t, output, "71.4%")
	assert.Contains(t, output, "28.6%")
	assert.Contains(t, output, "Heavy")
	assert.Contains(t, output, "Active")
	assert.Contains(t, output, "Showing top 2 of 2 repositories (commits: 42, additions: 1200, deletions: 340)")
	assert.Contains(t, output, "Peak hour: 09:00-10:00 (30 commits), Peak day: Tuesday (25 commits)")
	assert.Contains(t, output, "Top file types: go (50), md (8), yaml (3)")
	assert.Contains(t, output, "Scanned 5 of 5 repositories in 1.5s with 4 workers. Cache backend: sqlite")
}

func TestWriteScanTableResultLimit(t *testing.T) {
	result := sampleScanResult()
	cfg := &contract.Config{
		Year:         2024,
		Workers:      4,
		Output:       schema.TextOut,
		Width:        120,
		ResultLimit:  1,
		CacheBackend: schema.SQLiteBackend,
	}

	var buf bytes.Buffer
	err := writeScanTable(&buf, result, cfg)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "cli-tools")
	assert.NotContains(t, output, "dotfiles")
	assert.Contains(t, output, "Showing top 1 of 2 repositories")
}

func TestWriteScanTableEmptyReport(t *testing.T) {
	result := &schema.ScanResult{
		Report: &schema.Report{
			Repositories:       []schema.RepoSummary{},
			HourlyDistribution: make([]int, schema.HourBuckets),
			DailyDistribution:  make([]int, schema.DayBuckets),
			FileTypes:          map[string]int{},
			AuthorEmail:        "dev@example.com",
			AuthorName:         "Dev Example",
		},
		ReposFound: 3,
	}
	cfg := &contract.Config{
		Year:         2024,
		Workers:      2,
		Output:       schema.TextOut,
		Width:        120,
		ResultLimit:  25,
		CacheBackend: schema.NoneBackend,
	}

	var buf bytes.Buffer
	err := writeScanTable(&buf, result, cfg)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Showing top 0 of 0 repositories (commits: 0, additions: 0, deletions: 0)")
	assert.NotContains(t, output, "Peak hour")
	assert.NotContains(t, output, "Top file types")
}

func TestWriteScanJSON(t *testing.T) {
	result := sampleScanResult()

	var buf bytes.Buffer
	err := writeScanJSON(&buf, result.Report)
	require.NoError(t, err)

	// Parse the JSON to verify the wire field names
	var decoded map[string]any
	err = json.Unmarshal(buf.Bytes(), &decoded)
	require.NoError(t, err)

	assert.Equal(t, float64(42), decoded["total_commits"])
	assert.Equal(t, float64(1200), decoded["total_additions"])
	assert.Equal(t, "dev@example.com", decoded["author_email"])
	assert.Equal(t, "Dev Example", decoded["author_name"])
	assert.Len(t, decoded["hourly_distribution"], schema.HourBuckets)
	assert.Len(t, decoded["daily_distribution"], schema.DayBuckets)
	assert.Len(t, decoded["commits"], 1)

	repos, ok := decoded["repositories"].([]any)
	require.True(t, ok)
	require.Len(t, repos, 2)
	first, ok := repos[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cli-tools", first["name"])
	assert.Equal(t, float64(30), first["commits"])
}

func TestWriteScanCSV(t *testing.T) {
	result := sampleScanResult()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeScanCSV(w, result.Report)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Equal(t, "rank,repository,commits,additions,deletions,share,label", lines[0])
	assert.Equal(t, "1,cli-tools,30,900,200,71.4,Heavy", lines[1])
	assert.Equal(t, "2,dotfiles,12,300,140,28.6,Active", lines[2])
}

func TestWriteScanCSVEmptyReport(t *testing.T) {
	report := &schema.Report{}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeScanCSV(w, report)
	require.NoError(t, err)
	w.Flush()

	// Should only have header
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "rank")
}

func TestPrintScanResultParquet(t *testing.T) {
	result := sampleScanResult()
	tmpFile := filepath.Join(t.TempDir(), "commits.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: tmpFile}

	err := PrintScanResult(result, cfg)
	require.NoError(t, err)

	info, err := os.Stat(tmpFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPrintScanResultParquetRequiresFile(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut}

	err := PrintScanResult(sampleScanResult(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file")
}

func TestWritePayload(t *testing.T) {
	payload := &schema.UploadPayload{
		Key:  "secret-key",
		Year: 2024,
		Data: sampleScanResult().Report,
	}
	tmpFile := filepath.Join(t.TempDir(), "payload.json")
	cfg := &contract.Config{OutputFile: tmpFile}

	err := WritePayload(payload, cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var decoded map[string]any
	err = json.Unmarshal(content, &decoded)
	require.NoError(t, err)

	assert.Equal(t, "secret-key", decoded["key"])
	assert.Equal(t, float64(2024), decoded["year"])
	data, ok := decoded["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), data["total_commits"])
}
