package sim

import (
	"errors"
	"log"

	"github.com/danielpatrickdp/homunculus/internal/eval"
	"github.com/danielpatrickdp/homunculus/internal/feedback"
	"github.com/danielpatrickdp/homunculus/internal/gate"
	"github.com/danielpatrickdp/homunculus/internal/logging"
	"github.com/danielpatrickdp/homunculus/internal/region"
	"github.com/danielpatrickdp/homunculus/internal/signals"
)

var (
	// ErrNumericFault is returned when a committed step produces a non-finite value.
	ErrNumericFault = errors.New("numeric fault")
	// ErrFinished is returned by Step once every configured step has run.
	ErrFinished = errors.New("simulation finished")
)

// #region options
// Options tune a run without touching its configuration.
type Options struct {
	Logger *log.Logger     // nil means log.Default()
	Eval   eval.EvalConfig // extra post-step bounds
}
// #endregion options

// #region step-report
// StepReport describes what happened during one step.
type StepReport struct {
	Step     int
	Time     float64
	Signals  signals.Signals
	Decision gate.GateDecision
	Record   *feedback.Record // nil when the step was skipped by an escape
}

// Skipped reports whether the step ended in an escape.
func (r StepReport) Skipped() bool {
	return r.Record == nil
}
// #endregion step-report

// #region result
// Result is the outcome of a run.
type Result struct {
	Series   *feedback.Series
	Events   []logging.Event
	Levels   region.Levels        // neurotransmitter levels after the last step
	Internal region.InternalState // internal state after the last step
	Signal   []float64            // running signal after the last step
	Steps    int                  // steps executed
}
// #endregion result
