// Package core has core logic for discovery, extraction and aggregation.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/internal/outwriter"
	"github.com/gitrecap/gitrecap/schema"
)

// ErrNoRepositories reports a scan root with no repositories anywhere under it.
var ErrNoRepositories = errors.New("no git repositories found under the scan root")

// GetScanResults runs discovery plus extraction and returns the aggregate
// without printing it. It serves programmatic callers such as the MCP server.
func GetScanResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.ScanResult, error) {
	client := contract.NewLocalGitClient()
	return runScanCore(ctx, cfg, client, mgr)
}

// ExecuteScan runs the recap scan and prints the aggregate to the selected
// output. It serves as the main entry point for the 'scan' mode.
func ExecuteScan(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	result, err := GetScanResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if result.Report.TotalCommits == 0 {
		outwriter.PrintNoCommits(cfg)
		return nil
	}
	return outwriter.PrintScanResult(result, cfg)
}

// ExecuteReport runs the recap scan and uploads the aggregate to the recap
// service. It serves as the main entry point for the 'report' mode.
// A declined confirmation is a clean outcome, not an error.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, uploader contract.Uploader, confirm contract.ConfirmFunc) error {
	result, err := GetScanResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if result.Report.TotalCommits == 0 {
		outwriter.PrintNoCommits(cfg)
		return nil
	}
	if err := outwriter.PrintScanResult(result, cfg); err != nil {
		return err
	}

	payload := &schema.UploadPayload{
		Key:  cfg.APIKey,
		Year: cfg.Year,
		Data: result.Report,
	}

	if cfg.DryRun {
		return outwriter.WritePayload(payload, cfg)
	}

	if !cfg.AssumeYes && confirm != nil && !confirm() {
		outwriter.PrintUploadCancelled(cfg)
		return nil
	}

	outwriter.LogUploadStart(cfg)
	resp, err := uploader.Send(ctx, payload)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	if !resp.Success {
		if resp.Error != "" {
			return fmt.Errorf("upload rejected: %s", resp.Error)
		}
		return errors.New("upload rejected by the recap service")
	}

	outwriter.PrintUploadResult(resp, cfg)

	if history := mgr.GetHistoryStore(); history != nil && result.RunID > 0 {
		if err := history.RecordUpload(result.RunID, resp.PreviewURL); err != nil {
			contract.LogWarn("Failed to record upload", err)
		}
	}
	return nil
}
