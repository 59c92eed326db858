package cmd

import (
	"os"

	"github.com/gitrecap/gitrecap/core"
	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/internal/upload"
	"github.com/spf13/cobra"
)

// reportCmd builds the recap and uploads it to the recap service.
var reportCmd = &cobra.Command{
	Use:   "report [scan-dir]",
	Short: "Build a recap and upload it for a shareable preview page.",
	Long: `Build a recap of your commits and upload it to the recap service.

Runs the same scan as 'gitrecap scan', prints the summary, and then uploads the
aggregate so you get a shareable preview URL. The upload carries only the
aggregate: totals, per-repository counts, histograms and file types. No diffs,
file contents or repository paths leave your machine.

Before anything is sent you are shown the summary and asked to confirm; --yes
skips the prompt for scripted runs. Declining the upload is a clean exit.

The upload key is taken from --key, then from the saved per-user config, and is
prompted for (without echo) on first use. A key entered at the prompt is saved
for subsequent runs.

Examples:
  # Recap last year and upload it
  gitrecap report ~/src

  # Non-interactive run for CI or cron
  gitrecap report --key "$RECAP_KEY" --yes

  # Point at a self-hosted service
  gitrecap report --server https://recap.internal.example.com

  # Inspect the exact payload without uploading
  gitrecap report --dry-run --output-file payload.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := ensureAuthorEmail(); err != nil {
			contract.LogFatal("Cannot resolve author email", err)
		}
		if err := resolveUploadKey(); err != nil {
			contract.LogFatal("Cannot resolve upload key", err)
		}
		uploader, err := upload.NewClient(cfg)
		if err != nil {
			contract.LogFatal("Cannot reach the recap service", err)
		}
		confirm := func() bool { return upload.ConfirmUpload(os.Stdin) }
		if err := core.ExecuteReport(rootCtx, cfg, storeManager, uploader, confirm); err != nil {
			contract.LogFatal("Cannot run recap report", err)
		}
	},
}

// resolveUploadKey fills in the upload key from the saved per-user config or an
// interactive no-echo prompt. A key entered at the prompt is saved for next time.
// Dry runs never upload, so they skip key resolution entirely.
func resolveUploadKey() error {
	if cfg.DryRun || cfg.APIKey != "" {
		return nil
	}
	if key := upload.LoadSavedKey(); key != "" {
		cfg.APIKey = key
		return nil
	}
	key, err := upload.PromptUploadKey()
	if err != nil {
		return err
	}
	cfg.APIKey = key
	upload.SaveKey(key)
	return nil
}
