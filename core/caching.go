package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gitrecap/gitrecap/core/gitlog"
	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/schema"
)

// cachedCollectActivity serves a repository scan from the cache store when a
// fresh entry exists, and extracts from git otherwise.
func cachedCollectActivity(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager, repoPath string) (*schema.RepoActivity, error) {
	repoName := filepath.Base(repoPath)

	scanStore := mgr.GetScanStore()
	if scanStore == nil || cfg.NoCache {
		// Fallback to direct extraction
		return gitlog.CollectActivity(ctx, client, repoPath, repoName, cfg.AuthorEmail, cfg.Year)
	}

	key := generateCacheKey(ctx, cfg, client, repoPath)

	// Check for cache hit
	if result := checkCacheHit(scanStore, key); result != nil {
		return result, nil
	}

	// Cache miss: extract and store
	return collectAndStore(ctx, cfg, client, scanStore, key, repoPath, repoName)
}

// checkCacheHit attempts to retrieve and validate a cached repository scan
func checkCacheHit(scanStore contract.CacheStore, key string) *schema.RepoActivity {
	data, version, ts, err := scanStore.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == contract.CacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= contract.CacheMaxAge {
			var result schema.RepoActivity
			if err := json.Unmarshal(data, &result); err == nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// collectAndStore extracts the repository and stores the result in cache
func collectAndStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, scanStore contract.CacheStore, key, repoPath, repoName string) (*schema.RepoActivity, error) {
	result, err := gitlog.CollectActivity(ctx, client, repoPath, repoName, cfg.AuthorEmail, cfg.Year)
	if err != nil {
		return nil, err
	}

	// Store in cache
	if data, err := json.Marshal(result); err == nil {
		_ = scanStore.Set(key, data, contract.CacheVersion, time.Now().Unix())
	}

	return result, nil
}

// generateCacheKey creates a unique key based on scan parameters.
// The HEAD hash invalidates the entry as soon as the repository moves.
func generateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient, repoPath string) string {
	repoHash, err := client.GetRepoHash(ctx, repoPath)
	if err != nil {
		repoHash = ""
	}

	key := fmt.Sprintf("%s:%d:%s:%s",
		repoPath,
		cfg.Year,
		strings.ToLower(cfg.AuthorEmail),
		repoHash,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
