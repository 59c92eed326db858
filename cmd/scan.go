package cmd

import (
	"github.com/gitrecap/gitrecap/core"
	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/spf13/cobra"
)

// scanCmd builds the recap locally without uploading it.
var scanCmd = &cobra.Command{
	Use:   "scan [scan-dir]",
	Short: "Build a recap of your commits without uploading it.",
	Long: `Scan a directory tree for Git repositories and aggregate one year of commits.

Walks the tree below the scan root (current directory by default), finds every
Git repository down to --depth levels, and extracts your commit history for the
recap year. The result stays on your machine:
- Totals for commits, additions and deletions
- Per-repository breakdown with activity labels
- Peak coding hour and weekday
- Most-touched file types

Nothing is sent anywhere. Use 'gitrecap report' when you want a shareable page.

Examples:
  # Recap last year across everything under ~/src
  gitrecap scan ~/src

  # Recap a specific year for a specific address
  gitrecap scan --year 2023 --author work@example.com

  # Search deeper trees and skip vendored checkouts
  gitrecap scan --depth 4 --exclude vendor,archive

  # Archive the full aggregate as JSON
  gitrecap scan --output json --output-file recap-2024.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := ensureAuthorEmail(); err != nil {
			contract.LogFatal("Cannot resolve author email", err)
		}
		if err := core.ExecuteScan(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run recap scan", err)
		}
	},
}
