package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/homunculus/internal/archive"
	"github.com/danielpatrickdp/homunculus/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the run archive")
	runID := flag.String("run", "", "archived run to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	description := flag.String("description", "", "fixture description (default: derived from the run)")
	flag.Parse()

	if *dbPath == "" || *runID == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/archive.db --run id --out path/to/fixture.json [--description text]")
		os.Exit(2)
	}

	if err := run(*dbPath, *runID, *outPath, *description); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath, runID, outPath, description string) error {
	store, err := archive.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

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

	if description == "" {
		description = fmt.Sprintf("archived run %s (%d steps, %d retained)", rec.RunID, rec.Steps, rec.Retained)
	}
	fixture, err := replay.BuildFixture(description, rec.ConfigJSON, rec.Steps, series, events)
	if err != nil {
		return err
	}
	if err := replay.WriteFixture(outPath, fixture); err != nil {
		return err
	}

	fmt.Printf("Exported %d steps (%d retained, %d events) to %s\n",
		rec.Steps, rec.Retained, len(events), outPath)
	return nil
}

// #endregion extract
