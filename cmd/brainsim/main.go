package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/danielpatrickdp/homunculus/internal/archive"
	"github.com/danielpatrickdp/homunculus/internal/chart"
	"github.com/danielpatrickdp/homunculus/internal/config"
	"github.com/danielpatrickdp/homunculus/internal/feedback"
	"github.com/danielpatrickdp/homunculus/internal/logging"
	"github.com/danielpatrickdp/homunculus/internal/region"
	"github.com/danielpatrickdp/homunculus/internal/sim"
)

// #region main
func main() {
	configPath := flag.String("config", "config.json", "config file (.json, .yaml, .yml or .toml); empty for defaults")
	outPath := flag.String("out", "homunculus_feedback.json", "feedback log output path")
	chartPath := flag.String("chart", "cognitive_discrepancies.png", "chart output path; empty to skip")
	dbPath := flag.String("db", envOr("BRAINSIM_DB", ""), "archive database path; empty to skip")
	steps := flag.Int("steps", 0, "override simulation.steps")
	dt := flag.Float64("dt", 0, "override simulation.dt")
	threshold := flag.Float64("threshold", 0, "override simulation.discrepancy_threshold")
	escape := flag.Int("escape", 0, "override simulation.escape_duration")
	quiet := flag.Bool("quiet", false, "suppress per-step diagnostics")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Only flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "steps":
			cfg.Simulation.Steps = *steps
		case "dt":
			cfg.Simulation.Dt = *dt
		case "threshold":
			cfg.Simulation.DiscrepancyThreshold = *threshold
		case "escape":
			cfg.Simulation.EscapeDuration = *escape
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	opts := sim.Options{}
	if *quiet {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	res, runErr := sim.Run(cfg, opts)
	if runErr != nil && res == nil {
		log.Fatalf("simulation failed: %v", runErr)
	}
	if runErr != nil {
		log.Printf("simulation stopped early: %v", runErr)
	}

	// Write what we have even after a numeric fault.
	if err := feedback.Write(*outPath, res.Series); err != nil {
		log.Fatalf("failed to write feedback log: %v", err)
	}
	if *chartPath != "" {
		if err := chart.Render(*chartPath, res.Series); err != nil {
			log.Fatalf("failed to render chart: %v", err)
		}
	}

	runID := ""
	if *dbPath != "" {
		runID = archiveRun(*dbPath, cfg, res)
	}

	if !*quiet {
		printSummary(cfg, res, *outPath, *chartPath, runID)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
// #endregion main

// #region archive
func archiveRun(dbPath string, cfg *config.Config, res *sim.Result) string {
	store, err := archive.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open archive: %v", err)
	}
	defer store.Close()

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		log.Fatalf("failed to encode config: %v", err)
	}
	rec, err := store.SaveRun(string(cfgJSON), cfg.Simulation.Steps, res.Series, res.Events)
	if err != nil {
		log.Fatalf("failed to archive run: %v", err)
	}
	return rec.RunID
}
// #endregion archive

// #region output
func printSummary(cfg *config.Config, res *sim.Result, outPath, chartPath, runID string) {
	counts := map[string]int{}
	for _, ev := range res.Events {
		counts[ev.Kind]++
	}

	fmt.Printf("Simulated %d/%d steps (dt=%.3f), %d retained\n",
		res.Steps, cfg.Simulation.Steps, cfg.Simulation.Dt, res.Series.Len())
	fmt.Printf("  escapes=%d olfactory_escapes=%d consumption_suppressed=%d\n",
		counts[logging.KindEscape], counts[logging.KindOlfactoryEscape], counts[logging.KindConsumptionSuppressed])
	fmt.Printf("  final dopamine=%.4f serotonin=%.4f\n",
		res.Levels.Get(region.Dopamine, 0), res.Levels.Get(region.Serotonin, 0))
	fmt.Printf("  log: %s\n", outPath)
	if chartPath != "" {
		fmt.Printf("  chart: %s\n", chartPath)
	}
	if runID != "" {
		fmt.Printf("  archived run: %s\n", runID)
	}
}
// #endregion output

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
// #endregion helpers
