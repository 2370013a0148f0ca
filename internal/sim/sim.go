// Package sim drives the brain regions through a fixed number of time steps.
package sim

import (
	"fmt"
	"log"

	"github.com/danielpatrickdp/homunculus/internal/config"
	"github.com/danielpatrickdp/homunculus/internal/eval"
	"github.com/danielpatrickdp/homunculus/internal/feedback"
	"github.com/danielpatrickdp/homunculus/internal/gate"
	"github.com/danielpatrickdp/homunculus/internal/kalman"
	"github.com/danielpatrickdp/homunculus/internal/logging"
	"github.com/danielpatrickdp/homunculus/internal/region"
	"github.com/danielpatrickdp/homunculus/internal/signals"
	"github.com/danielpatrickdp/homunculus/internal/update"
	"gonum.org/v1/gonum/floats"
)

// #region simulator-struct
// Simulator owns every piece of mutable run state: the running signal, the
// modulator context, the stateful regions, the gate streak and the dopamine
// filter.
type Simulator struct {
	cfg       *config.Config
	logger    *log.Logger
	ctx       *region.Context
	brain     *region.Brain
	producer  *signals.Producer
	gate      *gate.Gate
	filter    *kalman.Filter
	harness   *eval.EvalHarness
	updateCfg update.UpdateConfig

	signal []float64
	step   int
	series *feedback.Series
	events []logging.Event
}
// #endregion simulator-struct

// #region constructor
// New validates cfg and prepares a simulator. cfg is not modified.
func New(cfg *config.Config, opts Options) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	ctx := region.NewContext(cfg.Neurotransmitters.Clone(), cfg.InternalState.Clone())
	k := cfg.Simulation.Kalman

	producerCfg := signals.DefaultProducerConfig()
	producerCfg.BaseThreshold = cfg.Simulation.DiscrepancyThreshold

	gateCfg := gate.DefaultGateConfig()
	gateCfg.EscapeDuration = cfg.Simulation.EscapeDuration

	updateCfg := update.DefaultUpdateConfig()
	updateCfg.Dt = cfg.Simulation.Dt

	return &Simulator{
		cfg:       cfg,
		logger:    logger,
		ctx:       ctx,
		brain:     region.NewBrain(),
		producer:  signals.NewProducer(producerCfg),
		gate:      gate.NewGate(gateCfg),
		filter:    kalman.New(ctx.Levels[region.Dopamine], k.InitialUncertainty, k.ProcessVariance, k.ObservationVariance),
		harness:   eval.NewEvalHarness(opts.Eval),
		updateCfg: updateCfg,
		signal:    cfg.InitialInput.Clone(),
		series:    &feedback.Series{},
	}, nil
}
// #endregion constructor

// #region accessors

// Done reports whether every configured step has run.
func (s *Simulator) Done() bool {
	return s.step >= s.cfg.Simulation.Steps
}

// Signal returns a copy of the running signal.
func (s *Simulator) Signal() []float64 {
	out := make([]float64, len(s.signal))
	copy(out, s.signal)
	return out
}

// Levels returns the live neurotransmitter levels.
func (s *Simulator) Levels() region.Levels {
	return s.ctx.Levels
}

// Streak is the gate's current over-threshold streak.
func (s *Simulator) Streak() int {
	return s.gate.Streak()
}

// Brain exposes the regions for inspection.
func (s *Simulator) Brain() *region.Brain {
	return s.brain
}

// Result snapshots the run so far.
func (s *Simulator) Result() *Result {
	return &Result{
		Series:   s.series,
		Events:   s.events,
		Levels:   s.ctx.Levels.Clone(),
		Internal: s.ctx.Internal.Clone(),
		Signal:   s.Signal(),
		Steps:    s.step,
	}
}

// #endregion accessors

// #region step
// Step advances the simulation by one time step.
func (s *Simulator) Step() (StepReport, error) {
	if s.Done() {
		return StepReport{}, ErrFinished
	}
	cfg := s.cfg
	t := s.step
	s.step++
	now := float64(t) * cfg.Simulation.Dt

	// 1. External stimulus
	s.signal = addStimulus(s.signal, cfg.ExternalStimuli[t%len(cfg.ExternalStimuli)])

	// 2. Every region sees the same pre-step state
	outs := s.brain.Evaluate(region.Stimuli{
		Signal:     s.signal,
		Image:      config.Pick(cfg.ImageSignals, t, config.DefaultImage),
		Linguistic: config.Pick(cfg.LinguisticInputs, t, config.DefaultLinguistic),
		Auditory:   config.Pick(cfg.AuditoryInputs, t, config.DefaultAuditory),
		Olfactory:  config.Pick(cfg.OlfactoryInputs, t, config.DefaultOlfactory),
		Observed:   cfg.ObservedPain,
	}, s.ctx)

	// 3. Discrepancies and threshold
	sig := s.producer.Produce(signals.ProduceInput{
		Outputs: outs,
		Levels:  s.ctx.Levels,
		Streak:  s.gate.Streak(),
	})
	report := StepReport{Step: t, Time: now, Signals: sig}

	// 4. Escape gate
	decision := s.gate.Evaluate(sig)
	report.Decision = decision
	if decision.Vetoed {
		s.signal = update.Escape(decision, s.signal, s.ctx.Levels, s.updateCfg)
		kind := logging.KindEscape
		if decision.Action == gate.ActionOlfactoryEscape {
			kind = logging.KindOlfactoryEscape
		}
		s.emit(t, now, kind, decision.Reason)
		s.logger.Printf("[SIM] step %d t=%.2f: %s (%s)", t, now, decision.Action, decision.Reason)
		return report, nil
	}

	// 5. Commit
	res := update.Update(update.UpdateInput{
		Time:        now,
		Signal:      s.signal,
		Outputs:     outs,
		Consumption: cfg.ConsumptionHistory,
	}, s.ctx.Levels, s.filter, s.updateCfg)
	s.signal = res.Signal
	for _, c := range res.Metrics.Suppressed {
		s.emit(t, now, logging.KindConsumptionSuppressed, fmt.Sprintf("%s (%s)", c.Item, c.Symptom))
	}

	empathy := outs.Insula.Value()
	s.brain.Insula.AdjustTrust(s.ctx.Internal, empathy)

	rec := feedback.Record{
		Step:                t,
		Time:                now,
		VisualLanguage:      sig.VisualLanguage,
		AuditoryLanguage:    sig.AuditoryLanguage,
		OlfactoryDiscomfort: sig.OlfactoryDiscomfort,
		FeedbackIntensity:   sig.FeedbackIntensity,
		Emotion: feedback.EmotionSnapshot{
			Fear:     outs.Amygdala.Value(),
			Pleasure: res.Dopamine,
			Disgust:  sig.OlfactoryDiscomfort,
			Anger:    s.producer.Anger(sig.VisualLanguage),
			Empathy:  empathy,
		},
	}

	// 6. Numeric check
	check := s.harness.Run(eval.Snapshot{
		Signal: s.signal,
		Levels: s.ctx.Levels,
		Fields: rec.Fields(),
	})
	if !check.Passed {
		return report, fmt.Errorf("step %d: %w: %s", t, ErrNumericFault, check.Reason)
	}

	s.series.Append(rec)
	report.Record = &rec
	return report, nil
}
// #endregion step

// #region run
// Run executes every configured step. On a numeric fault the partial result
// is returned together with the error.
func Run(cfg *config.Config, opts Options) (*Result, error) {
	s, err := New(cfg, opts)
	if err != nil {
		return nil, err
	}
	for !s.Done() {
		if _, err := s.Step(); err != nil {
			return s.Result(), err
		}
	}
	return s.Result(), nil
}
// #endregion run

// #region helpers
func (s *Simulator) emit(step int, now float64, kind, detail string) {
	s.events = append(s.events, logging.Event{Step: step, Time: now, Kind: kind, Detail: detail})
}

// addStimulus returns signal + stim. A one-element stimulus broadcasts.
func addStimulus(signal, stim []float64) []float64 {
	out := make([]float64, len(signal))
	copy(out, signal)
	if len(stim) == 1 {
		floats.AddConst(stim[0], out)
		return out
	}
	floats.Add(out, stim)
	return out
}
// #endregion helpers
