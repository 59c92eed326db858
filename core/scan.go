package core

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/internal/outwriter"
	"github.com/gitrecap/gitrecap/schema"
)

// runScanCore performs the common Discovery, Extraction, and Aggregation steps.
func runScanCore(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager) (*schema.ScanResult, error) {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		outwriter.LogScanHeader(cfg)
	}

	// --- 0. Begin Run Tracking (if configured) ---
	var runID int64
	historyStore := mgr.GetHistoryStore()
	if historyStore != nil {
		configParams := map[string]any{
			"scan_dir": cfg.ScanDir,
			"depth":    cfg.Depth,
			"workers":  cfg.Workers,
			"no_cache": cfg.NoCache,
		}
		var err error
		runID, err = historyStore.BeginRun(start, cfg.Year, cfg.AuthorEmail, cfg.ScanDir, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		}
	}

	// --- 1. Discovery Phase ---
	repos := DiscoverRepos(cfg)
	if len(repos) == 0 {
		return nil, ErrNoRepositories
	}
	if !shouldSuppressHeader(ctx) {
		outwriter.LogDiscoveryStatus(cfg, len(repos))
	}

	// --- 2. Extraction Phase (parallel, with caching) ---
	activities := collectRepos(ctx, cfg, client, mgr, repos)

	// --- 3. Aggregation Phase ---
	authorName := resolveAuthorName(ctx, client)
	report := BuildReport(activities, cfg.AuthorEmail, authorName)

	result := &schema.ScanResult{
		Report:       report,
		ReposFound:   len(repos),
		ReposScanned: len(activities),
		Duration:     time.Since(start),
		RunID:        runID,
	}

	// --- 4. End Run Tracking ---
	if historyStore != nil && runID > 0 {
		if err := historyStore.EndRun(runID, time.Now(), result); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
		if err := historyStore.RecordRepoStats(runID, report.Repositories); err != nil {
			contract.LogWarn("Failed to record repository stats", err)
		}
	}

	return result, nil
}

// collectRepos extracts all repositories in parallel using a worker pool.
// It spawns cfg.Workers goroutines and reassembles the results in discovery
// order so the report stays deterministic. Repositories that fail to extract
// are logged and skipped.
func collectRepos(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager, repos []string) []*schema.RepoActivity {
	repoCh := make(chan string, len(repos))
	resultCh := make(chan *schema.RepoActivity, len(repos))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for repoPath := range repoCh {
				activity, err := collectOneRepo(ctx, cfg, client, mgr, repoPath)
				if err != nil {
					contract.LogWarn(fmt.Sprintf("Skipping %s", filepath.Base(repoPath)), err)
					continue
				}
				resultCh <- activity
			}
		})
	}

	// Send repositories to worker channel
	for _, r := range repos {
		repoCh <- r
	}
	close(repoCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(resultCh)

	// Reassemble in discovery order; workers finish in arbitrary order.
	byPath := make(map[string]*schema.RepoActivity, len(repos))
	for a := range resultCh {
		byPath[a.Path] = a
	}
	activities := make([]*schema.RepoActivity, 0, len(byPath))
	for _, r := range repos {
		if a, ok := byPath[r]; ok {
			activities = append(activities, a)
		}
	}
	return activities
}

// collectOneRepo extracts a single repository under the per-repo timeout.
func collectOneRepo(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager, repoPath string) (*schema.RepoActivity, error) {
	repoCtx := ctx
	if cfg.RepoTimeout > 0 {
		var cancel context.CancelFunc
		repoCtx, cancel = context.WithTimeout(ctx, cfg.RepoTimeout)
		defer cancel()
	}
	return cachedCollectActivity(repoCtx, cfg, client, mgr, repoPath)
}

// resolveAuthorName reads the display name from the ambient git configuration.
func resolveAuthorName(ctx context.Context, client contract.GitClient) string {
	name, err := client.GetConfigValue(ctx, "user.name")
	if err != nil || name == "" {
		return schema.DefaultAuthorName
	}
	return name
}
