// Package main provides a performance benchmarking tool for the gitrecap CLI.
// It measures scan times over a directory tree of repositories, running each
// variant multiple times, treating the first successful cached run as cold and
// averaging the rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - gitrecap binary installed and available in PATH
// - git configured with user.email (the recap author)
// - Repositories checked out under the specified base directory
//
// Usage: go run benchmark/main.go [scan-base-dir] [year]
//
//	scan-base-dir: Directory tree containing the repositories to scan
//	year:          Recap year (defaults to the previous calendar year)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Variant     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ScanBase    string
	Year        int
	Author      string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
}

// scanVariants are the flag combinations measured against the scan base.
// The single-worker variant is the sequential baseline the pool is judged by.
var scanVariants = map[string][]string{
	"parallel":   nil,
	"sequential": {"--workers", "1"},
	"deep":       {"--depth", "4"},
}

// variantOrder fixes the CSV and summary ordering.
var variantOrder = []string{"parallel", "sequential", "deep"}

func main() {
	// Parse command line arguments
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Printf("Usage: %s [scan-base-dir] [year]\n", os.Args[0])
		os.Exit(1)
	}
	scanBase := os.Args[1]

	year := time.Now().Year() - 1
	if len(os.Args) == 3 {
		parsed, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid year %q: %v\n", os.Args[2], err)
			os.Exit(1)
		}
		year = parsed
	}

	config := BenchmarkConfig{
		ScanBase:    scanBase,
		Year:        year,
		Timeout:     5 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
	}

	if err := checkPrerequisites(&config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies the gitrecap binary, the scan base and the
// benchmark author, and fills the author into the config.
func checkPrerequisites(config *BenchmarkConfig) error {
	// Check if gitrecap is available
	if _, err := exec.LookPath("gitrecap"); err != nil {
		return fmt.Errorf("gitrecap binary not found in PATH")
	}

	// Check that the scan base exists
	info, err := os.Stat(config.ScanBase)
	if err != nil {
		return fmt.Errorf("scan base %s not found", config.ScanBase)
	}
	if !info.IsDir() {
		return fmt.Errorf("scan base %s is not a directory", config.ScanBase)
	}

	// Resolve the author once; an interactive prompt would hang the harness
	out, err := exec.Command("git", "config", "user.email").Output()
	if err != nil || strings.TrimSpace(string(out)) == "" {
		return fmt.Errorf("git config user.email is not set; the benchmark needs a recap author")
	}
	config.Author = strings.TrimSpace(string(out))

	return nil
}

// runBenchmarks executes all scan variants against the scan base.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %s, year %d, author %s, %v timeout, no-cache: %d runs, cache: %d runs\n",
		config.ScanBase, config.Year, config.Author, config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, variant := range variantOrder {
		result := runBenchmarkSuite(config, variant, scanVariants[variant])
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a scan variant.
func runBenchmarkSuite(config BenchmarkConfig, variant string, extraArgs []string) BenchmarkResult {
	fmt.Printf("Running %s scan on %s\n", variant, config.ScanBase)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs. Clear first so the cold run is actually cold even
	// when an earlier variant already filled the cache.
	clearCmd := exec.Command("gitrecap", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	}
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Variant:     variant,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a gitrecap scan multiple times with the specified cache
// backend and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, extraArgs []string, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{"scan", config.ScanBase,
		"--year", strconv.Itoa(config.Year),
		"--author", config.Author,
		"--cache-backend", cacheBackend,
		"--history-backend", "none",
		"--emoji", "no",
		"--color", "no",
	}
	args = append(args, extraArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("gitrecap", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if scan output indicates successful completion. A year with
// no matching commits still measures the full extraction, so it counts.
func isSuccess(output []byte) bool {
	outputStr := string(output)

	if strings.Contains(outputStr, "No commits found") {
		return true
	}
	return strings.Contains(outputStr, "Scanned") &&
		strings.Contains(outputStr, "repositories in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/gitrecap_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"variant", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Variant, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, result := range results {
		fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Variant, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
