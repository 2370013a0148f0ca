package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/homunculus/internal/archive"
	"github.com/danielpatrickdp/homunculus/internal/chart"
	"github.com/danielpatrickdp/homunculus/internal/feedback"
	"github.com/danielpatrickdp/homunculus/internal/logging"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the run archive")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	exportPath := flag.String("export", "", "with --run: write the run's feedback log to this path")
	chartPath := flag.String("chart", "", "with --run: render the run's chart to this path")
	flag.Parse()

	if *dbPath == "" || (*runID == "" && (*exportPath != "" || *chartPath != "")) {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/archive.db [--last N] [--run id] [--json] [--export file] [--chart file]")
		os.Exit(2)
	}

	store, err := archive.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *runID != "" {
		err = runDetailMode(store, *runID, *jsonOut, *exportPath, *chartPath)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID     string `json:"run_id"`
	Steps     int    `json:"steps"`
	Retained  int    `json:"retained"`
	Escapes   int    `json:"escapes"`
	CreatedAt string `json:"created_at"`
}

func runListMode(store *archive.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	// Store returns newest first, reverse for chronological
	rows := make([]listRow, len(runs))
	for i, r := range runs {
		events, err := store.Events(r.RunID)
		if err != nil {
			return err
		}
		rows[len(runs)-1-i] = listRow{
			RunID:     r.RunID,
			Steps:     r.Steps,
			Retained:  r.Retained,
			Escapes:   countEscapes(events),
			CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-12s  %6s  %8s  %7s  %s\n", "Run", "Steps", "Retained", "Escapes", "Time")
	fmt.Printf("%-12s+-%6s+-%8s+-%7s+-%s\n", "------------", "------", "--------", "-------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-12s  %6d  %8d  %7d  %s\n", shortID(r.RunID), r.Steps, r.Retained, r.Escapes, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type columnStats struct {
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
}

type detailOutput struct {
	RunID     string                 `json:"run_id"`
	CreatedAt string                 `json:"created_at"`
	Steps     int                    `json:"steps"`
	Retained  int                    `json:"retained"`
	Columns   map[string]columnStats `json:"columns"`
	Events    []logging.Event        `json:"events"`
	Config    json.RawMessage        `json:"config"`
}

func runDetailMode(store *archive.Store, runID string, jsonOut bool, exportPath, chartPath string) error {
	rec, err := store.GetRun(runID)
	if err != nil {
		return err
	}
	series, err := store.LoadSeries(runID)
	if err != nil {
		return err
	}
	events, err := store.Events(runID)
	if err != nil {
		return err
	}

	out := detailOutput{
		RunID:     rec.RunID,
		CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Steps:     rec.Steps,
		Retained:  rec.Retained,
		Columns:   summarize(series),
		Events:    events,
		Config:    json.RawMessage(rec.ConfigJSON),
	}

	if exportPath != "" {
		if err := feedback.Write(exportPath, series); err != nil {
			return err
		}
	}
	if chartPath != "" {
		if err := chart.Render(chartPath, series); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Run:       %s\n", out.RunID)
	fmt.Printf("Created:   %s\n", out.CreatedAt)
	fmt.Printf("Steps:     %d\n", out.Steps)
	fmt.Printf("Retained:  %d\n", out.Retained)

	fmt.Printf("\nColumns (mean / max):\n")
	for _, key := range feedback.Keys {
		cs, ok := out.Columns[key]
		if !ok {
			continue
		}
		fmt.Printf("  %-30s %.4f / %.4f\n", key, cs.Mean, cs.Max)
	}

	if len(events) > 0 {
		fmt.Printf("\nEvents:\n")
		for _, ev := range events {
			fmt.Printf("  step %-4d t=%-6.2f %-22s %s\n", ev.Step, ev.Time, ev.Kind, ev.Detail)
		}
	}
	if exportPath != "" {
		fmt.Printf("\nExported log to %s\n", exportPath)
	}
	if chartPath != "" {
		fmt.Printf("Rendered chart to %s\n", chartPath)
	}
	return nil
}

// #endregion detail-mode

// #region metrics

func summarize(s *feedback.Series) map[string]columnStats {
	out := map[string]columnStats{}
	if s.Len() == 0 {
		return out
	}
	for _, key := range feedback.Keys {
		col := s.Column(key)
		if col == nil || key == "time" {
			continue
		}
		out[key] = columnStats{Mean: stat.Mean(col, nil), Max: floats.Max(col)}
	}
	return out
}

func countEscapes(events []logging.Event) int {
	var n int
	for _, ev := range events {
		if ev.Kind == logging.KindEscape || ev.Kind == logging.KindOlfactoryEscape {
			n++
		}
	}
	return n
}

// #endregion metrics

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
