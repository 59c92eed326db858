package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRunHistory outputs recorded scan runs, dispatching based on the output
// format configured. Runs are expected newest first.
func PrintRunHistory(runs []schema.RunRecord, cfg *contract.Config) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printHistoryJSON(runs, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printHistoryCSV(runs, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errors.New("parquet history output is handled by the 'history export' command")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, runs)
		}, "Wrote history table")
	}
	return nil
}

// printHistoryJSON handles opening the file and calling the JSON writer.
func printHistoryJSON(runs []schema.RunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, runs)
	}, "Wrote JSON history")
}

// printHistoryCSV handles opening the file and calling the CSV writer.
func printHistoryCSV(runs []schema.RunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeHistoryCSV(w, runs)
	}, "Wrote CSV history")
}

// writeHistoryTable generates and writes the run history as a table.
func writeHistoryTable(w io.Writer, runs []schema.RunRecord) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Run", "Started", "Year", "Author", "Repos", "Commits", "Additions", "Deletions", "Uploaded"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	for _, r := range runs {
		uploaded := "no"
		if r.Uploaded {
			uploaded = "yes"
		}
		row := []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartTime.Format(contract.DateTimeFormat),
			strconv.Itoa(int(r.Year)),
			r.AuthorEmail,
			strconv.Itoa(int(r.RepoCount)),
			strconv.Itoa(int(r.TotalCommits)),
			strconv.Itoa(int(r.TotalAdditions)),
			strconv.Itoa(int(r.TotalDeletions)),
			uploaded,
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d runs, newest first\n", len(runs))
	return err
}

// writeHistoryCSV writes the run history in CSV format. Nullable columns from
// runs that never finished come out as empty strings.
func writeHistoryCSV(w io.Writer, runs []schema.RunRecord) error {
	header := []string{
		"run_id",
		"start_time",
		"end_time",
		"duration_ms",
		"year",
		"author_email",
		"scan_dir",
		"repo_count",
		"total_commits",
		"total_additions",
		"total_deletions",
		"uploaded",
		"preview_url",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range runs {
			endTime := ""
			if r.EndTime != nil {
				endTime = r.EndTime.Format(contract.DateTimeFormat)
			}
			durationMs := ""
			if r.RunDurationMs != nil {
				durationMs = strconv.Itoa(int(*r.RunDurationMs))
			}
			previewURL := ""
			if r.PreviewURL != nil {
				previewURL = *r.PreviewURL
			}
			rec := []string{
				strconv.FormatInt(r.RunID, 10),
				r.StartTime.Format(contract.DateTimeFormat),
				endTime,
				durationMs,
				strconv.Itoa(int(r.Year)),
				r.AuthorEmail,
				r.ScanDir,
				strconv.Itoa(int(r.RepoCount)),
				strconv.Itoa(int(r.TotalCommits)),
				strconv.Itoa(int(r.TotalAdditions)),
				strconv.Itoa(int(r.TotalDeletions)),
				strconv.FormatBool(r.Uploaded),
				previewURL,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
