// Package main provides a performance benchmarking tool for the uatpulse CLI.
// It generates synthetic feeds of increasing size, runs each command several times
// with and without run history, and writes the averages to CSV for documentation.
//
// Prerequisites:
// - uatpulse binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the generated feeds and history databases
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark suite (no-history and history averages).
type BenchmarkResult struct {
	Feed          string
	Command       string
	NoHistoryTime string
	HistoryTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Commands []string
	// FeedSizes maps a feed name to its number of calendar days and issues.
	FeedSizes map[string][2]int
	FeedOrder []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:  os.Args[1],
		Timeout:  time.Minute,
		Runs:     5,
		Commands: []string{"dashboard", "series", "calendar", "report"},
		FeedSizes: map[string][2]int{
			"small":  {14, 20},
			"medium": {90, 500},
			"large":  {365, 10000},
		},
		FeedOrder: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the uatpulse binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("uatpulse"); err != nil {
		return fmt.Errorf("uatpulse binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// generateFeed writes a synthetic feed spanning the given calendar days with the given issues.
func generateFeed(path string, days, issues int) error {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days-1)

	progress := make([]map[string]any, 0, days)
	defects := make([]map[string]any, 0, days)
	for i := range days {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		executed := min(100, float64(i+1)*100/float64(days))
		progress = append(progress, map[string]any{"date": date, "inScope": 1000, "executedPct": executed, "passPct": executed * 0.9})
		defects = append(defects, map[string]any{"date": date, "openDefects": (i * 7) % 40})
	}

	priorities := []string{"Blocker", "Critical", "Major", "Minor"}
	platforms := []string{"Web", "App", "BOSS"}
	issueList := make([]map[string]any, 0, issues)
	for i := range issues {
		status := "Open"
		if i%3 == 0 {
			status = "Closed"
		}
		issueList = append(issueList, map[string]any{
			"id":       i + 1,
			"title":    fmt.Sprintf("Issue %d", i+1),
			"platform": platforms[i%len(platforms)],
			"priority": priorities[i%len(priorities)],
			"status":   status,
		})
	}

	feed := map[string]any{
		"overview":      map[string]any{"lastUpdate": end.Format("2006-01-02") + " 08:00", "inScope": 1000},
		"schedule":      map[string]any{"start": start.Format("2006-01-02"), "end": end.Format("2006-01-02"), "timezone": "Europe/Berlin"},
		"plan":          map[string]any{"exec_days": days / 2, "pass_days": days * 3 / 4},
		"progressDaily": progress,
		"defectsDaily":  defects,
		"issues":        issueList,
	}

	data, err := json.Marshal(feed)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// runBenchmarks executes all benchmark suites across the generated feeds
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d feeds, %d commands, %v timeout, %d runs\n",
		len(config.FeedOrder), len(config.Commands), config.Timeout, config.Runs)

	for _, name := range config.FeedOrder {
		size := config.FeedSizes[name]
		feedPath := filepath.Join(config.WorkDir, name+".json")
		if err := generateFeed(feedPath, size[0], size[1]); err != nil {
			return nil, fmt.Errorf("failed to generate %s feed: %w", name, err)
		}
		fmt.Printf("Benchmarking %s feed (%d days, %d issues)\n", name, size[0], size[1])

		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, name, feedPath, command))
		}
	}

	return results, nil
}

// runBenchmarkSuite runs a command without and with run history
func runBenchmarkSuite(config BenchmarkConfig, name, feedPath, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, name)

	historyDB := filepath.Join(config.WorkDir, name+"-history.db")
	_ = os.Remove(historyDB)

	noHistory := average(runBenchmark(config, command, feedPath, "--history-backend", "none"))
	withHistory := average(runBenchmark(config, command, feedPath, "--history-backend", "sqlite", "--history-db-connect", historyDB))

	fmt.Printf("  No-history average: %s, History average: %s\n", noHistory, withHistory)

	return BenchmarkResult{
		Feed:          name,
		Command:       command,
		NoHistoryTime: noHistory,
		HistoryTime:   withHistory,
	}
}

// runBenchmark executes a uatpulse command multiple times and returns the successful run times
func runBenchmark(config BenchmarkConfig, command, feedPath string, extraArgs ...string) []float64 {
	args := append([]string{command, feedPath, "--cache-backend", "none", "--output", "json"}, extraArgs...)

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		cmd := exec.CommandContext(ctx, "uatpulse", args...)
		cmd.Dir = config.WorkDir
		if _, err := cmd.Output(); err == nil {
			times = append(times, time.Since(start).Seconds())
		}
		cancel()
	}
	return times
}

// average formats the mean of the run times
func average(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/uatpulse_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"feed", "cmd", "no_history_avg", "history_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Feed, result.Command, result.NoHistoryTime, result.HistoryTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: No-history: %s, History: %s\n", result.Feed, result.NoHistoryTime, result.HistoryTime)
			}
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
