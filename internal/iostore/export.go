package iostore

import (
	"errors"
	"fmt"

	"github.com/gitrecap/gitrecap/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of run history data to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total recap runs: %d\n", status.TotalRuns)
	fmt.Printf("Total repo stat rows: %d\n", status.TableSizes[repoStatsTable])

	// Retrieve all recap runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve recap runs: %w", err)
	}

	// Retrieve all per-repository stats
	repoStats, err := store.GetAllRepoStats()
	if err != nil {
		return fmt.Errorf("failed to retrieve repo stats: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetRepoStats := parquet.ConvertRepoStatRecords(repoStats)

	// Write recap runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write recap runs: %w", err)
	}
	fmt.Printf("Exported %d recap runs to: %s\n", len(parquetRuns), runsFile)

	// Write per-repository stats to Parquet
	repoStatsFile := outputFile + ".repo_stats.parquet"
	if err := parquet.WriteRepoStatsParquet(parquetRepoStats, repoStatsFile); err != nil {
		return fmt.Errorf("failed to write repo stats: %w", err)
	}
	fmt.Printf("Exported %d repo stat rows to: %s\n", len(parquetRepoStats), repoStatsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
