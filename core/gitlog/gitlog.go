// Package gitlog has parsing logic for raw Git activity output.
package gitlog

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/schema"
)

// CollectActivity runs both history queries for a repository and parses their
// output into a RepoActivity. The log query feeds the commit records, the
// name-only query feeds the file-type histogram.
func CollectActivity(ctx context.Context, client contract.GitClient, repoPath, repoName, authorEmail string, year int) (*schema.RepoActivity, error) {
	logOut, err := client.GetYearLog(ctx, repoPath, authorEmail, year)
	if err != nil {
		return nil, err
	}

	fileOut, err := client.GetYearFileLog(ctx, repoPath, authorEmail, year)
	if err != nil {
		return nil, err
	}

	return &schema.RepoActivity{
		Name:      repoName,
		Path:      repoPath,
		Commits:   ParseYearLog(logOut, repoName, authorEmail),
		FileTypes: ParseFileLog(fileOut),
	}, nil
}

// ParseYearLog parses shortstat log output into commit records.
//
// The upstream --author filter is a substring match, so records whose email
// does not equal authorEmail (ignoring case) are dropped here, together with
// their stat lines. Commits without a stat line, such as merges, are kept
// as zero-stat records.
func ParseYearLog(out []byte, repoName, authorEmail string) []schema.Commit {
	lines := strings.Split(string(out), "\n")
	commits := make([]schema.Commit, 0)
	openIdx := -1 // index of the last kept commit still awaiting its stat line

	for _, l := range lines {
		l = strings.Trim(l, " \t\r\n")

		if strings.HasPrefix(l, "--") {
			// Commit header line
			openIdx = -1
			commit, ok := parseCommitHeader(l, repoName)
			if !ok {
				continue
			}
			if !strings.EqualFold(commit.AuthorEmail, authorEmail) {
				continue
			}
			commits = append(commits, commit)
			openIdx = len(commits) - 1
			continue
		}
		if l == "" {
			continue // Skip blank lines
		}

		// Shortstat line for the most recent kept commit
		if openIdx >= 0 && strings.Contains(l, "changed") {
			commits[openIdx].Additions, commits[openIdx].Deletions = parseShortstatLine(l)
			openIdx = -1
		}
	}

	return commits
}

// parseCommitHeader extracts one commit record from a header line shaped
// like "--hash|date|email|subject". The subject may contain further pipes.
func parseCommitHeader(line string, repoName string) (schema.Commit, bool) {
	if !strings.HasPrefix(line, "--") || len(line) < 7 { // --h|d|e minimum
		return schema.Commit{}, false
	}
	parts := strings.SplitN(line[2:], "|", 4) // hash|date|email|subject
	if len(parts) < 3 {
		return schema.Commit{}, false
	}

	date, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return schema.Commit{}, false
	}

	commit := schema.Commit{
		Hash:        parts[0],
		Timestamp:   date,
		AuthorEmail: parts[2],
		Repo:        repoName,
	}
	if len(parts) == 4 {
		commit.Subject = parts[3]
	}
	return commit, true
}

// parseShortstatLine sniffs additions and deletions out of a shortstat
// summary such as "3 files changed, 10 insertions(+), 2 deletions(-)".
// Segments are matched by substring since git omits zero-valued parts.
func parseShortstatLine(line string) (int, int) {
	var additions, deletions int
	for seg := range strings.SplitSeq(line, ",") {
		seg = strings.TrimSpace(seg)
		switch {
		case strings.Contains(seg, "insertion"):
			additions = parseStatValue(seg)
		case strings.Contains(seg, "deletion"):
			deletions = parseStatValue(seg)
		}
	}
	return additions, deletions
}

// parseStatValue converts the leading integer of a stat segment, handling
// malformed values as 0.
func parseStatValue(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	if val, err := strconv.Atoi(fields[0]); err == nil && val >= 0 {
		return val
	}
	return 0
}

// ParseFileLog folds a name-only file listing into a histogram keyed by
// lowercased file extension.
func ParseFileLog(out []byte) map[string]int {
	fileTypes := make(map[string]int)
	for _, l := range strings.Split(string(out), "\n") {
		l = strings.Trim(l, " \t\r\n")
		if l == "" {
			continue
		}
		fileTypes[ExtensionOf(l)]++
	}
	return fileTypes
}

// ExtensionOf buckets a path by its final extension. Dotfiles, trailing
// dots and extension-less names all land in the "other" bucket.
func ExtensionOf(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndex(base, ".")
	if idx <= 0 || idx == len(base)-1 {
		return schema.OtherFileType
	}
	return strings.ToLower(base[idx+1:])
}
