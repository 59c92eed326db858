package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gitrecap/gitrecap/internal/contract"
)

// DiscoverRepos walks the tree under cfg.ScanDir and returns every directory
// carrying a .git marker, up to cfg.Depth levels below the root. Parents come
// before their children and siblings keep directory-listing order, so the
// result is deterministic for a given tree.
func DiscoverRepos(cfg *contract.Config) []string {
	var repos []string
	walkForRepos(cfg.ScanDir, 0, cfg, &repos)
	return repos
}

// walkForRepos collects repositories depth-first. A repository does not stop
// the descent: nested repositories below it are still discovered.
func walkForRepos(dir string, depth int, cfg *contract.Config, repos *[]string) {
	if isGitRepo(dir) {
		*repos = append(*repos, dir)
	}

	// The current level is always inspected; only the descent is bounded.
	if depth >= cfg.Depth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return // Unreadable directories are silently skipped
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == "node_modules" {
			continue
		}
		if contract.ShouldIgnore(name, cfg.Excludes) {
			continue
		}
		walkForRepos(filepath.Join(dir, name), depth+1, cfg, repos)
	}
}

// isGitRepo reports whether dir holds a .git marker at its own level.
// A plain file counts too: worktrees and submodules use a .git file.
func isGitRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
