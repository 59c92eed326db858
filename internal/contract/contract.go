// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/gitrecap/gitrecap/schema"
)

// GitClient defines the necessary operations for commit history extraction.
// This allows the core scan logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its stdout.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Activity Logs ---

	// GetYearLog returns the raw shortstat commit log for the author across
	// all refs within the given calendar year.
	GetYearLog(ctx context.Context, repoPath string, authorEmail string, year int) ([]byte, error)

	// GetYearFileLog returns the raw name-only file listing for the author's
	// commits within the given calendar year.
	GetYearFileLog(ctx context.Context, repoPath string, authorEmail string, year int) ([]byte, error)

	// --- Environment / Reference Resolution ---

	// GetConfigValue returns a value from the ambient git configuration,
	// or an empty string when the key is unset.
	GetConfigValue(ctx context.Context, key string) (string, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)
}

// StoreManager defines the interface for managing local stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetScanStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for scan cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking recap runs and storing
// per-repository stats.
type HistoryStore interface {
	// BeginRun creates a new recap run and returns its unique ID
	BeginRun(startTime time.Time, year int, authorEmail string, scanDir string, configParams map[string]any) (int64, error)

	// EndRun updates the recap run with completion data
	EndRun(runID int64, endTime time.Time, result *schema.ScanResult) error

	// RecordRepoStats stores per-repository totals for a run
	RecordRepoStats(runID int64, summaries []schema.RepoSummary) error

	// RecordUpload marks a run as uploaded and stores its preview URL
	RecordUpload(runID int64, previewURL string) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run, newest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllRepoStats returns every recorded per-repository stat row
	GetAllRepoStats() ([]schema.RepoStatRecord, error)

	// Close closes the underlying connection
	Close() error
}

// Uploader sends a finished report to the recap service.
type Uploader interface {
	Send(ctx context.Context, payload *schema.UploadPayload) (*schema.UploadResponse, error)
}

// ConfirmFunc asks the user to approve the upload after the summary has been
// shown. A nil ConfirmFunc means approval is implied.
type ConfirmFunc func() bool
