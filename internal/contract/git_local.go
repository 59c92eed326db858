package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetYearLog implements the GitClient interface.
//
// The --author filter is a coarse VCS-side cut; committers whose name or
// email merely contains the value still slip through, so callers must
// match the email in each record exactly.
func (c *LocalGitClient) GetYearLog(ctx context.Context, repoPath string, authorEmail string, year int) ([]byte, error) {
	start, end := YearRange(year)
	args := []string{
		"log", "--all",
		"--author=" + authorEmail,
		"--shortstat",
		"--date=iso-strict",
		"--pretty=format:--%H|%ad|%ae|%s",
		"--since=" + start.Format(DateTimeFormat),
		"--until=" + end.Format(DateTimeFormat),
	}
	return c.Run(ctx, repoPath, args...)
}

// GetYearFileLog implements the GitClient interface.
func (c *LocalGitClient) GetYearFileLog(ctx context.Context, repoPath string, authorEmail string, year int) ([]byte, error) {
	start, end := YearRange(year)
	args := []string{
		"log", "--all",
		"--author=" + authorEmail,
		"--name-only",
		"--pretty=format:",
		"--since=" + start.Format(DateTimeFormat),
		"--until=" + end.Format(DateTimeFormat),
	}
	return c.Run(ctx, repoPath, args...)
}

// GetConfigValue implements the GitClient interface. It intentionally
// skips the -C flag so that it reads the ambient configuration for the
// working directory the process runs in.
func (c *LocalGitClient) GetConfigValue(ctx context.Context, key string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "config", "--get", key)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Exit status 1 means the key is not set in any scope.
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
