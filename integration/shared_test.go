//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedBinaryPath holds the path to a shared gitrecap binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getGitrecapBinary returns the path to the gitrecap binary, building it once if needed.
func getGitrecapBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "gitrecap-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "gitrecap")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build gitrecap: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// runGitrecap runs the gitrecap binary with HOME and the working directory
// pointed at a throwaway directory, so tests never touch the user's config or
// SQLite databases and never pick up an ambient repository or .gitrecap.yaml.
// It returns combined stdout+stderr and the command error.
func runGitrecap(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getGitrecapBinary(), args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(), "HOME="+home, "USERPROFILE="+home)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// gitFixture runs a git command inside dir and fails the test on error.
func gitFixture(t *testing.T, dir string, env []string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Env = append(os.Environ(), env...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// commitFixtureFile writes a file and commits it with a fixed author date.
func commitFixtureFile(t *testing.T, repoDir, name, content, date string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(repoDir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	gitFixture(t, repoDir, nil, "add", ".")
	env := []string{
		"GIT_AUTHOR_DATE=" + date,
		"GIT_COMMITTER_DATE=" + date,
	}
	gitFixture(t, repoDir, env, "commit", "-q", "--no-gpg-sign", "-m", "update "+name)
}

// makeFixtureTree creates a directory tree with two repositories holding
// commits by recap@example.com in 2024. It returns the tree root.
//
// Layout:
//
//	root/
//	  api/   3 commits (one .go, one .go, one .md)
//	  cli/   1 commit  (one .go)
//	  docs/  plain directory, no repository
func makeFixtureTree(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}

	root := t.TempDir()

	for _, repo := range []string{"api", "cli"} {
		dir := filepath.Join(root, repo)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		gitFixture(t, dir, nil, "init", "-q")
		gitFixture(t, dir, nil, "config", "user.name", "Recap Dev")
		gitFixture(t, dir, nil, "config", "user.email", "recap@example.com")
	}

	apiDir := filepath.Join(root, "api")
	commitFixtureFile(t, apiDir, "main.go", "package main\n", "2024-03-05T09:15:00+00:00")
	commitFixtureFile(t, apiDir, "server.go", "package main\n\nfunc serve() {}\n", "2024-06-11T14:40:00+00:00")
	commitFixtureFile(t, apiDir, "README.md", "# api\n", "2024-09-20T21:05:00+00:00")

	cliDir := filepath.Join(root, "cli")
	commitFixtureFile(t, cliDir, "cli.go", "package cli\n", "2024-01-02T08:00:00+00:00")

	if err := os.MkdirAll(filepath.Join(root, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}

	return root
}
