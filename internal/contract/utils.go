package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Activity label constants.
const (
	HeavyValue  = "Heavy"  // Heavy activity
	ActiveValue = "Active" // Active activity
	SteadyValue = "Steady" // Steady activity
	LightValue  = "Light"  // Light activity
)

// Color variables for console output.
var (
	HeavyColor  = color.New(color.FgGreen, color.Bold) // heavyColor marks the repositories that carried the year.
	ActiveColor = color.New(color.FgCyan, color.Bold)  // activeColor marks consistently busy repositories.
	SteadyColor = color.New(color.FgYellow)            // steadyColor marks regular but minor contributions.
	LightColor  = color.New(color.FgHiBlack)           // lightColor marks occasional touches.
)

// GetPlainLabel returns a plain text label indicating the activity level
// based on the repository's share of the year's commits, in percent.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(share float64) string {
	switch {
	case share >= 40:
		return HeavyValue
	case share >= 15:
		return ActiveValue
	case share >= 5:
		return SteadyValue
	default:
		return LightValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(share float64) string {
	text := GetPlainLabel(share)

	switch text {
	case HeavyValue:
		return HeavyColor.Sprint(text)
	case ActiveValue:
		return ActiveColor.Sprint(text)
	case SteadyValue:
		return SteadyColor.Sprint(text)
	default: // "Light"
		return LightColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given directory name or path matches any of
// the exclude patterns. It supports simple glob patterns (using filepath.Match)
// when the pattern contains wildcard characters (*, ?, [ ]). Patterns ending
// with '/' are treated as prefixes. Patterns starting with '.' are treated as
// suffix matches. A user can provide patterns like "archived/", "*-fork".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(ex, "*?[") || strings.Contains(ex, "**") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			// Also try matching against the base name (e.g. *-fork)
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		// Handle prefix, suffix, or substring matches
		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for scan cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitrecap_cache.db"
	}
	return filepath.Join(homeDir, ".gitrecap_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitrecap_history.db"
	}
	return filepath.Join(homeDir, ".gitrecap_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
