package replay

import (
	"fmt"
	"math"
	"sort"

	"github.com/danielpatrickdp/homunculus/internal/config"
	"github.com/danielpatrickdp/homunculus/internal/feedback"
	"github.com/danielpatrickdp/homunculus/internal/gate"
	"github.com/danielpatrickdp/homunculus/internal/sim"
)

// DefaultTolerance is used when a fixture does not set one.
const DefaultTolerance = 1e-9

// #region types
// ReplayResult captures the outcome of replaying one step.
type ReplayResult struct {
	Step     int
	Action   string // "continue" | "escape" | "olfactory_escape"
	Reason   string
	Retained bool
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalSteps       int
	Retained         int
	Escapes          int
	OlfactoryEscapes int
}

// Mismatch is one value that differs between two series.
type Mismatch struct {
	Index    int // record index, -1 for a length mismatch
	Key      string
	Expected float64
	Actual   float64
}

func (m Mismatch) String() string {
	if m.Index < 0 {
		return fmt.Sprintf("%s: expected %v, got %v", m.Key, m.Expected, m.Actual)
	}
	return fmt.Sprintf("record %d %s: expected %v, got %v", m.Index, m.Key, m.Expected, m.Actual)
}

// Report is the outcome of checking a fixture.
type Report struct {
	Results          []ReplayResult
	Summary          ReplaySummary
	ActionMismatches []string
	SeriesMismatches []Mismatch
}

// Passed reports whether the replay matched every expectation.
func (r Report) Passed() bool {
	return len(r.ActionMismatches) == 0 && len(r.SeriesMismatches) == 0
}

// #endregion types

// #region replay
// Replay runs cfg step by step and records the gate action of every step.
// On a numeric fault the results so far are returned with the error.
func Replay(cfg *config.Config, opts sim.Options) ([]ReplayResult, *sim.Result, error) {
	s, err := sim.New(cfg, opts)
	if err != nil {
		return nil, nil, err
	}
	results := make([]ReplayResult, 0, cfg.Simulation.Steps)
	for !s.Done() {
		r, err := s.Step()
		if err != nil {
			return results, s.Result(), err
		}
		results = append(results, ReplayResult{
			Step:     r.Step,
			Action:   r.Decision.Action,
			Reason:   r.Decision.Reason,
			Retained: !r.Skipped(),
		})
	}
	return results, s.Result(), nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{TotalSteps: len(results)}
	for _, r := range results {
		if r.Retained {
			s.Retained++
		}
		switch r.Action {
		case gate.ActionEscape:
			s.Escapes++
		case gate.ActionOlfactoryEscape:
			s.OlfactoryEscapes++
		}
	}
	return s
}

// #endregion replay

// #region compare
// Compare checks two series record by record. Every scalar field, including
// the emotion snapshot, must agree within tol.
func Compare(expected, actual *feedback.Series, tol float64) []Mismatch {
	var out []Mismatch
	if expected.Len() != actual.Len() {
		out = append(out, Mismatch{Index: -1, Key: "length", Expected: float64(expected.Len()), Actual: float64(actual.Len())})
	}
	n := expected.Len()
	if actual.Len() < n {
		n = actual.Len()
	}
	for i := 0; i < n; i++ {
		ef := expected.Records[i].Fields()
		af := actual.Records[i].Fields()
		keys := make([]string, 0, len(ef))
		for k := range ef {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if math.Abs(ef[k]-af[k]) > tol || math.IsNaN(ef[k]) != math.IsNaN(af[k]) {
				out = append(out, Mismatch{Index: i, Key: k, Expected: ef[k], Actual: af[k]})
			}
		}
	}
	return out
}

// #endregion compare

// #region run
// Run replays a fixture and checks its expectations.
func Run(f *Fixture, opts sim.Options) (Report, error) {
	cfg, err := f.ToConfig()
	if err != nil {
		return Report{}, err
	}
	results, res, err := Replay(cfg, opts)
	if err != nil {
		return Report{}, fmt.Errorf("replay: %w", err)
	}
	report := Report{Results: results, Summary: Summarize(results)}

	for _, want := range f.Expected.Actions {
		if want.Step < 0 || want.Step >= len(results) {
			report.ActionMismatches = append(report.ActionMismatches,
				fmt.Sprintf("step %d: out of range (%d steps replayed)", want.Step, len(results)))
			continue
		}
		if got := results[want.Step].Action; got != want.Action {
			report.ActionMismatches = append(report.ActionMismatches,
				fmt.Sprintf("step %d: expected action=%s, got action=%s (reason: %s)",
					want.Step, want.Action, got, results[want.Step].Reason))
		}
	}

	expected, err := f.ExpectedSeries()
	if err != nil {
		return Report{}, err
	}
	if expected != nil {
		tol := f.Expected.Tolerance
		if tol <= 0 {
			tol = DefaultTolerance
		}
		report.SeriesMismatches = Compare(expected, res.Series, tol)
	}
	return report, nil
}

// #endregion run
