package cmd

import (
	"fmt"
	"strings"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/internal/iostore"
	"github.com/gitrecap/gitrecap/internal/outwriter"
	"github.com/gitrecap/gitrecap/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.StoreBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.StoreBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by list and export commands)
	outputStr := viper.GetString("output")
	if outputStr == "" {
		outputStr = string(schema.TextOut)
	}
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no scan caching for history commands)
	if err := iostore.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = schema.OutputMode(strings.ToLower(outputStr))
	cfg.OutputFile = outputFile

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.StoreBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.StoreBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on recap run history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by recap commands. This avoids scan-root validation
// and complex config processing for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded recap runs and exports",
	Long: `Manage the run history that gitrecap records for every recap.

When enabled, gitrecap tracks every scan and report run, storing:
- Run metadata (timestamp, configuration, duration)
- Aggregate totals (repositories, commits, additions, deletions)
- Upload outcome and preview URL

This lets you compare recaps across years, audit what was uploaded, and export
the data for your own analysis.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show recorded runs, newest first
  status  - Show run history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # See what has been recorded
  gitrecap history list

  # Export for analysis in pandas/DuckDB
  gitrecap history export --output-file recap-history.parquet`,
}

// historyListCmd lists recorded runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recorded recap runs, newest first",
	Long: `List every recorded recap run with its totals and upload outcome.

Each row shows when the run started, the recap year and author, how many
repositories contributed, the aggregate totals, and whether the recap was
uploaded.

Supports --output json and --output csv for scripted consumption; the CSV
includes duration and preview URL columns that the table omits.

Examples:
  # Table of all runs
  gitrecap history list

  # Feed runs into jq
  gitrecap history list --output json | jq '.[0]'`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := iostore.Manager.GetHistoryStore().GetAllRuns()
		if err != nil {
			contract.LogFatal("Failed to load run history", err)
		}
		if err := outwriter.PrintRunHistory(runs, cfg); err != nil {
			contract.LogFatal("Failed to print run history", err)
		}
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded recap runs",
	Long: `Delete every stored recap run and its per-repository stats.

This removes:
- All run metadata
- Aggregate totals per run
- Per-repository stat rows

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  gitrecap history export --output-file backup.parquet
  gitrecap history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show detailed information about the recorded recap runs.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Total commits recorded across all runs
- Database table sizes

Examples:
  # Check run history status
  gitrecap history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iostore.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all recorded recap runs to Parquet format for use with analytics tools.

Exports two datasets:
- Runs - metadata and totals for each recap execution
- Repo stats - per-repository counts for each run

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  gitrecap history export --output-file recap-history.parquet

  # Use with DuckDB for analysis
  gitrecap history export --output-file data
  duckdb -c "SELECT * FROM read_parquet('data.runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

Migrations allow:
- Upgrading to new schema versions when gitrecap is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

MySQL connection strings must include multiStatements=true; migration steps can
hold more than one statement.

Examples:
  # Migrate to latest version (default)
  gitrecap history migrate

  # Migrate to specific version
  gitrecap history migrate --target-version 1

  # Rollback to previous version
  gitrecap history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
