package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/danielpatrickdp/homunculus/internal/archive"
	"github.com/danielpatrickdp/homunculus/internal/replay"
	"github.com/danielpatrickdp/homunculus/internal/sim"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the run archive (DB mode)")
	runID := flag.String("run", "", "archived run to re-simulate (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	tol := flag.Float64("tol", replay.DefaultTolerance, "absolute tolerance for series comparison")
	flag.Parse()

	dbMode := *dbPath != "" && *runID != ""
	if dbMode == (*fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/archive.db --run id")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	opts := sim.Options{Logger: log.New(io.Discard, "", 0)}
	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath, opts)
	} else {
		exitCode = runDBMode(*dbPath, *runID, *tol, opts)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region db-mode

func runDBMode(dbPath, runID string, tol float64, opts sim.Options) int {
	store, err := archive.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	rec, err := store.GetRun(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get run: %v\n", err)
		return 2
	}
	cfg, err := replay.ParseConfig([]byte(rec.ConfigJSON))
	if err != nil {
		fmt.Fprintf(os.Stderr, "archived config: %v\n", err)
		return 2
	}
	expected, err := store.LoadSeries(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load series: %v\n", err)
		return 2
	}
	events, err := store.Events(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load events: %v\n", err)
		return 2
	}

	results, res, err := replay.Replay(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 1
	}

	// Archived actions come from the escape events; every other step continued.
	expectedActions := make([]string, len(results))
	for i, a := range replay.ActionsFromEvents(len(results), events) {
		expectedActions[i] = a.Action
	}

	code := printComparison(results, expectedActions)
	return worst(code, printSeriesCheck(replay.Compare(expected, res.Series, tol)))
}

// #endregion db-mode

// #region fixture-mode

func runFixtureMode(path string, opts sim.Options) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	if f.Description != "" {
		fmt.Printf("Fixture: %s\n\n", f.Description)
	}

	report, err := replay.Run(f, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	expected := make([]string, len(report.Results))
	for i, r := range report.Results {
		expected[i] = r.Action
	}
	for _, a := range f.Expected.Actions {
		if a.Step >= 0 && a.Step < len(expected) {
			expected[a.Step] = a.Action
		}
	}

	code := printComparison(report.Results, expected)
	for _, m := range report.ActionMismatches {
		fmt.Fprintln(os.Stderr, m)
	}
	if len(report.ActionMismatches) > 0 {
		code = 1
	}
	if seriesExpected, _ := f.ExpectedSeries(); seriesExpected != nil {
		code = worst(code, printSeriesCheck(report.SeriesMismatches))
	}
	return code
}

// #endregion fixture-mode

// #region output

// printComparison outputs a per-step action table and returns the exit code.
func printComparison(results []replay.ReplayResult, expected []string) int {
	fmt.Printf("%-6s| %-17s| %-17s| %s\n", "Step", "Expected", "Replayed", "Match")
	fmt.Printf("%-6s+%-17s+%-17s+%s\n", "------", "------------------", "------------------", "------")

	matches := 0
	for i, r := range results {
		match := "DIFF"
		if expected[i] == r.Action {
			match = "OK"
			matches++
		}
		fmt.Printf("%-6d| %-17s| %-17s| %s\n", r.Step, expected[i], r.Action, match)
	}

	diverge := len(results) - matches
	summary := replay.Summarize(results)
	fmt.Printf("\nSummary: %d total, %d match, %d diverge (%d retained, %d escapes, %d olfactory escapes)\n",
		len(results), matches, diverge, summary.Retained, summary.Escapes, summary.OlfactoryEscapes)

	if diverge > 0 {
		return 1
	}
	return 0
}

func printSeriesCheck(mismatches []replay.Mismatch) int {
	if len(mismatches) == 0 {
		fmt.Println("Series: identical within tolerance")
		return 0
	}
	fmt.Printf("Series: %d mismatches\n", len(mismatches))
	for _, m := range mismatches {
		fmt.Printf("  %s\n", m)
	}
	return 1
}

func worst(a, b int) int {
	if b > a {
		return b
	}
	return a
}

// #endregion output
