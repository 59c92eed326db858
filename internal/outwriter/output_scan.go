package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/internal/parquet"
	"github.com/gitrecap/gitrecap/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// topFileTypeCount caps the file-type histogram entries shown in the summary.
const topFileTypeCount = 5

// PrintScanResult outputs the finished recap, dispatching based on the output format configured.
func PrintScanResult(result *schema.ScanResult, cfg *contract.Config) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printScanJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printScanCSV(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printScanParquet(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanTable(w, result, cfg)
		}, "Wrote recap summary")
	}
	return nil
}

// printScanJSON handles opening the file and calling the JSON writer.
func printScanJSON(result *schema.ScanResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeScanJSON(w, result.Report)
	}, "Wrote JSON report")
}

// printScanCSV handles opening the file and calling the CSV writer.
func printScanCSV(result *schema.ScanResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeScanCSV(csvWriter, result.Report)
	}, "Wrote CSV report")
}

// printScanParquet writes the report's commit list as a Parquet file.
// Parquet is a binary columnar format, so a file target is mandatory.
func printScanParquet(result *schema.ScanResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	records := parquet.ConvertReportCommits(result.Report.Commits)
	if err := parquet.WriteCommitsParquet(records, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet commits to %s\n", cfg.OutputFile)
	return nil
}

// writeScanTable generates and writes the human-readable recap summary.
func writeScanTable(w io.Writer, result *schema.ScanResult, cfg *contract.Config) error {
	report := result.Report

	// 1. Heading: whose year this recap covers
	if _, err := fmt.Fprintf(w, "%d recap for %s <%s>\n", cfg.Year, report.AuthorName, report.AuthorEmail); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)

	// 2. Define Headers
	headers := []string{"Rank", "Repository", "Commits", "Share", "Additions", "Deletions", "Activity"}
	table.Header(headers)

	// 3. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 4. Populate Rows
	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}
	shown := min(len(report.Repositories), cfg.ResultLimit)
	var data [][]string
	for i, r := range report.Repositories[:shown] {
		share := repoShare(r.Commits, report.TotalCommits)
		name := contract.TruncatePath(r.Name, getMaxTableNameWidth(cfg))
		// Prepare the row data as a slice of strings
		row := []string{
			strconv.Itoa(i + 1),       // Rank
			name,                      // Repository
			strconv.Itoa(r.Commits),   // Commits
			formatShare(share),        // Share of the year's commits
			strconv.Itoa(r.Additions), // Additions
			strconv.Itoa(r.Deletions), // Deletions
			label(share),              // Activity
		}
		data = append(data, row)
	}

	// 5. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	if _, err := fmt.Fprintf(w, "Showing top %d of %d repositories (commits: %d, additions: %d, deletions: %d)\n", shown, len(report.Repositories), report.TotalCommits, report.TotalAdditions, report.TotalDeletions); err != nil {
		return err
	}
	if hour := schema.PeakBucket(report.HourlyDistribution); hour >= 0 {
		day := schema.PeakBucket(report.DailyDistribution)
		if _, err := fmt.Fprintf(w, "Peak hour: %s (%d commits), Peak day: %s (%d commits)\n", schema.HourLabel(hour), report.HourlyDistribution[hour], schema.WeekdayNames[day], report.DailyDistribution[day]); err != nil {
			return err
		}
	}
	if types := schema.TopFileTypes(report.FileTypes, topFileTypeCount); len(types) > 0 {
		parts := make([]string, len(types))
		for i, ft := range types {
			parts[i] = fmt.Sprintf("%s (%d)", ft.Ext, ft.Count)
		}
		if _, err := fmt.Fprintf(w, "Top file types: %s\n", strings.Join(parts, ", ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Scanned %d of %d repositories in %v with %d workers. Cache backend: %s\n", result.ReposScanned, result.ReposFound, result.Duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeScanCSV writes the per-repository breakdown in CSV format.
func writeScanCSV(w *csv.Writer, report *schema.Report) error {
	// CSV header
	header := []string{
		"rank",
		"repository",
		"commits",
		"additions",
		"deletions",
		"share",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, r := range report.Repositories {
		share := repoShare(r.Commits, report.TotalCommits)
		rec := []string{
			strconv.Itoa(i + 1),           // Rank
			r.Name,                        // Repository
			strconv.Itoa(r.Commits),       // Commits
			strconv.Itoa(r.Additions),     // Additions
			strconv.Itoa(r.Deletions),     // Deletions
			fmt.Sprintf("%.1f", share),    // Share as a plain number
			contract.GetPlainLabel(share), // Label
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeScanJSON writes the full report in JSON format. The output matches the
// wire payload's data object byte for byte, so it can be archived or diffed.
func writeScanJSON(w io.Writer, report *schema.Report) error {
	return writeJSON(w, report)
}

// WritePayload writes the exact JSON body that report mode would POST to the
// recap service. It backs the --dry-run flag.
func WritePayload(payload *schema.UploadPayload, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, payload)
	}, "Wrote upload payload")
}
