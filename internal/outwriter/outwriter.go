// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"path/filepath"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/schema"
)

// LogScanHeader prints a concise, 2-line header for a recap scan.
func LogScanHeader(cfg *contract.Config) {
	scanName := filepath.Base(cfg.ScanDir)
	if scanName == "" || scanName == "." {
		scanName = "current"
	}

	// Line 1: The scan summary (root and author)
	if cfg.UseEmojis {
		fmt.Printf("🔎 Scanning: %s (author: %s)\n", scanName, cfg.AuthorEmail)
	} else {
		fmt.Printf("Scanning: %s (author: %s)\n", scanName, cfg.AuthorEmail)
	}

	// Line 2: The actual date range being recapped
	if cfg.UseEmojis {
		fmt.Printf("📅 Range: %s → %s\n", cfg.StartTime.Format(contract.DateTimeFormat), cfg.EndTime.Format(contract.DateTimeFormat))
	} else {
		fmt.Printf("Range: %s → %s\n", cfg.StartTime.Format(contract.DateTimeFormat), cfg.EndTime.Format(contract.DateTimeFormat))
	}
}

// LogDiscoveryStatus reports how many repositories discovery found before
// extraction starts.
func LogDiscoveryStatus(cfg *contract.Config, count int) {
	if cfg.UseEmojis {
		fmt.Printf("📦 Found %d repositories, extracting with %d workers...\n", count, cfg.Workers)
	} else {
		fmt.Printf("Found %d repositories, extracting with %d workers...\n", count, cfg.Workers)
	}
}

// PrintNoCommits reports a scan that matched no commits at all.
// This is a clean outcome, not an error.
func PrintNoCommits(cfg *contract.Config) {
	if cfg.UseEmojis {
		fmt.Printf("⚠️  No commits found for %s in %d. Nothing to recap.\n", cfg.AuthorEmail, cfg.Year)
	} else {
		fmt.Printf("No commits found for %s in %d. Nothing to recap.\n", cfg.AuthorEmail, cfg.Year)
	}
}

// LogUploadStart reports that the recap upload is about to begin.
func LogUploadStart(cfg *contract.Config) {
	if cfg.UseEmojis {
		fmt.Printf("📤 Uploading recap for %d...\n", cfg.Year)
	} else {
		fmt.Printf("Uploading recap for %d...\n", cfg.Year)
	}
}

// PrintUploadCancelled reports a declined upload confirmation.
func PrintUploadCancelled(cfg *contract.Config) {
	if cfg.UseEmojis {
		fmt.Println("🚫 Upload cancelled. Nothing was sent.")
	} else {
		fmt.Println("Upload cancelled. Nothing was sent.")
	}
}

// PrintUploadResult confirms a successful upload and shows the preview URL
// the recap service handed back.
func PrintUploadResult(resp *schema.UploadResponse, cfg *contract.Config) {
	if cfg.UseEmojis {
		fmt.Println("✅ Recap uploaded!")
	} else {
		fmt.Println("Recap uploaded!")
	}
	if resp.PreviewURL != "" {
		fmt.Printf("View it at: %s\n", resp.PreviewURL)
	}
}
