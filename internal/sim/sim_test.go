package sim

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/danielpatrickdp/homunculus/internal/config"
	"github.com/danielpatrickdp/homunculus/internal/gate"
	"github.com/danielpatrickdp/homunculus/internal/logging"
	"github.com/danielpatrickdp/homunculus/internal/region"
	"github.com/danielpatrickdp/homunculus/internal/update"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func quiet() Options {
	return Options{Logger: log.New(io.Discard, "", 0)}
}

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.ConsumptionHistory = nil
	cfg.ExternalStimuli = []config.Vec{{0.05}}
	return cfg
}

// gapConfig makes the visual-language discrepancy exceed any threshold on every step.
func gapConfig() *config.Config {
	cfg := baseConfig()
	cfg.ImageSignals = []config.Vec{{10}}
	cfg.LinguisticInputs = []config.Vec{{0}}
	cfg.AuditoryInputs = []config.Vec{{0}}
	cfg.Simulation.EscapeDuration = 3
	return cfg
}

func mustNew(t *testing.T, cfg *config.Config, opts Options) *Simulator {
	t.Helper()
	s, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func mustStep(t *testing.T, s *Simulator) StepReport {
	t.Helper()
	r, err := s.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	return r
}

// #region escape-tests

func TestEscapeAfterDuration(t *testing.T) {
	s := mustNew(t, gapConfig(), quiet())

	for i := 0; i < 2; i++ {
		r := mustStep(t, s)
		if r.Skipped() {
			t.Fatalf("step %d: unexpected escape", i)
		}
		if s.Streak() != i+1 {
			t.Fatalf("step %d: expected streak %d, got %d", i, i+1, s.Streak())
		}
	}

	dopamineBefore := s.Levels()[region.Dopamine]
	r := mustStep(t, s)
	if r.Decision.Action != gate.ActionEscape || !r.Skipped() {
		t.Fatalf("expected escape on step 2, got %s", r.Decision.Action)
	}
	for i, v := range s.Signal() {
		if v != 0 {
			t.Fatalf("expected zeroed signal, element %d = %v", i, v)
		}
	}
	if got := s.Levels()[region.Dopamine]; got != dopamineBefore*0.5 {
		t.Fatalf("expected dopamine halved to %v, got %v", dopamineBefore*0.5, got)
	}
	if s.Streak() != 0 {
		t.Fatalf("expected streak reset, got %d", s.Streak())
	}

	// Next step resumes normally and the counter starts over.
	r = mustStep(t, s)
	if r.Skipped() {
		t.Fatal("expected step 3 to be retained")
	}
	if s.Streak() != 1 {
		t.Fatalf("expected streak 1 after reset, got %d", s.Streak())
	}
}

func TestEscapeRecurs(t *testing.T) {
	cfg := gapConfig()
	cfg.Simulation.Steps = 6
	res, err := Run(cfg, quiet())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Series.Len() != 4 {
		t.Fatalf("expected 4 retained steps, got %d", res.Series.Len())
	}
	var steps []int
	for _, ev := range res.Events {
		if ev.Kind == logging.KindEscape {
			steps = append(steps, ev.Step)
		}
	}
	if !reflect.DeepEqual(steps, []int{2, 5}) {
		t.Fatalf("expected escapes at steps [2 5], got %v", steps)
	}
	for _, r := range res.Series.Records {
		if r.Step == 2 || r.Step == 5 {
			t.Fatalf("escaped step %d was logged", r.Step)
		}
	}
}

func TestEscapeIsLogged(t *testing.T) {
	var buf bytes.Buffer
	cfg := gapConfig()
	cfg.Simulation.Steps = 3
	if _, err := Run(cfg, Options{Logger: log.New(&buf, "", 0)}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "[SIM] step 2") {
		t.Fatalf("expected escape log line, got %q", buf.String())
	}
}

func TestOlfactoryEscape(t *testing.T) {
	cfg := baseConfig()
	cfg.Neurotransmitters[region.Serotonin] = 0.1
	cfg.OlfactoryInputs = []config.Vec{{1.0}}
	cfg.Simulation.EscapeDuration = 100

	s := mustNew(t, cfg, quiet())
	r := mustStep(t, s)
	if r.Decision.Action != gate.ActionOlfactoryEscape {
		t.Fatalf("expected olfactory escape, got %s (%s)", r.Decision.Action, r.Decision.Reason)
	}
	if !approx(r.Signals.OlfactoryDiscomfort, 0.9) {
		t.Fatalf("expected discomfort 0.9, got %v", r.Signals.OlfactoryDiscomfort)
	}
	if !approx(s.Levels()[region.Serotonin], 0.07) {
		t.Fatalf("expected serotonin 0.07, got %v", s.Levels()[region.Serotonin])
	}
	for _, v := range s.Signal() {
		if v != 0 {
			t.Fatal("expected zeroed signal")
		}
	}
	res := s.Result()
	if res.Series.Len() != 0 {
		t.Fatalf("expected no records, got %d", res.Series.Len())
	}
	if len(res.Events) != 1 || res.Events[0].Kind != logging.KindOlfactoryEscape {
		t.Fatalf("unexpected events %+v", res.Events)
	}
}

// #endregion escape-tests

// #region commit-tests

func TestConsumptionSuppressesSerotonin(t *testing.T) {
	cfg := baseConfig()
	cfg.ImageSignals = []config.Vec{{0.5}}
	cfg.LinguisticInputs = []config.Vec{{0.5}}
	cfg.AuditoryInputs = []config.Vec{{0.5}}
	cfg.ConsumptionHistory = []update.Consumption{
		{Item: "milk", OnsetTime: 0, DigestTime: 2, Symptom: "abdominal pain"},
	}
	cfg.Simulation.Dt = 1
	cfg.Simulation.Steps = 3

	res, err := Run(cfg, quiet())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Series.Len() != 3 {
		t.Fatalf("expected 3 retained steps, got %d", res.Series.Len())
	}
	if !approx(res.Levels[region.Serotonin], 0.64) {
		t.Fatalf("expected serotonin 0.64, got %v", res.Levels[region.Serotonin])
	}
	var suppressed int
	for _, ev := range res.Events {
		if ev.Kind == logging.KindConsumptionSuppressed {
			suppressed++
			if ev.Detail != "milk (abdominal pain)" {
				t.Errorf("unexpected detail %q", ev.Detail)
			}
		}
	}
	if suppressed != 2 {
		t.Fatalf("expected 2 suppression events, got %d", suppressed)
	}
}

func TestRecordFields(t *testing.T) {
	cfg := baseConfig()
	cfg.Simulation.Steps = 1
	s := mustNew(t, cfg, quiet())
	r := mustStep(t, s)
	if r.Skipped() {
		t.Fatalf("unexpected escape: %s", r.Decision.Reason)
	}
	rec := r.Record
	if rec.Time != 0 || rec.Step != 0 {
		t.Fatalf("unexpected step/time %d/%v", rec.Step, rec.Time)
	}
	want := math.Max(rec.VisualLanguage, math.Max(rec.AuditoryLanguage, rec.OlfactoryDiscomfort))
	if rec.FeedbackIntensity != want {
		t.Errorf("feedback intensity %v, want %v", rec.FeedbackIntensity, want)
	}
	if rec.Emotion.Pleasure != s.Levels()[region.Dopamine] {
		t.Errorf("pleasure %v should equal filtered dopamine %v", rec.Emotion.Pleasure, s.Levels()[region.Dopamine])
	}
	if rec.Emotion.Disgust != rec.OlfactoryDiscomfort {
		t.Errorf("disgust %v should equal olfactory discomfort %v", rec.Emotion.Disgust, rec.OlfactoryDiscomfort)
	}
	if want := math.Tanh(0.6 + 0.4); !approx(rec.Emotion.Empathy, want) {
		t.Errorf("empathy %v, want %v", rec.Emotion.Empathy, want)
	}
}

func TestTrustScoreMovesTowardEmpathy(t *testing.T) {
	cfg := baseConfig()
	cfg.InternalState = region.InternalState{region.TrustScore: 0}
	cfg.Simulation.Steps = 2
	res, err := Run(cfg, quiet())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := res.Internal[region.TrustScore]; got <= 0 {
		t.Fatalf("expected trust score above 0, got %v", got)
	}
	if cfg.InternalState[region.TrustScore] != 0 {
		t.Fatal("config internal state must not be mutated")
	}
}

// #endregion commit-tests

// #region run-tests

func TestRunDeterministic(t *testing.T) {
	cfg := baseConfig()
	cfg.ExternalStimuli = []config.Vec{{0.1}}
	cfg.Simulation.Steps = 5
	cfg.Simulation.Dt = 0.1

	a, err := Run(cfg, quiet())
	if err != nil {
		t.Fatalf("Run a: %v", err)
	}
	b, err := Run(cfg, quiet())
	if err != nil {
		t.Fatalf("Run b: %v", err)
	}
	if !reflect.DeepEqual(a.Series, b.Series) {
		t.Fatal("expected identical series for identical config")
	}

	var escapes int
	for _, ev := range a.Events {
		if ev.Kind == logging.KindEscape || ev.Kind == logging.KindOlfactoryEscape {
			escapes++
		}
	}
	if a.Series.Len()+escapes != 5 {
		t.Fatalf("retained %d + escaped %d != 5", a.Series.Len(), escapes)
	}
	for _, r := range a.Series.Records {
		if !approx(r.Time, float64(r.Step)*0.1) {
			t.Fatalf("step %d has time %v", r.Step, r.Time)
		}
	}
	if a.Steps != 5 {
		t.Fatalf("expected 5 executed steps, got %d", a.Steps)
	}
}

func TestRunDefaultConfig(t *testing.T) {
	res, err := Run(config.DefaultConfig(), quiet())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Series.Len() == 0 {
		t.Fatal("expected retained steps")
	}
	for _, r := range res.Series.Records {
		for k, v := range r.Fields() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("step %d field %s is %v", r.Step, k, v)
			}
		}
	}
}

func TestRunDoesNotMutateConfig(t *testing.T) {
	cfg := gapConfig()
	cfg.Simulation.Steps = 3
	if _, err := Run(cfg, quiet()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cfg.Neurotransmitters[region.Dopamine] != 1.0 {
		t.Fatalf("config dopamine changed to %v", cfg.Neurotransmitters[region.Dopamine])
	}
	if !reflect.DeepEqual([]float64(cfg.InitialInput), []float64{0.1, 0.2, 0.3}) {
		t.Fatalf("config initial input changed to %v", cfg.InitialInput)
	}
}

func TestNumericFault(t *testing.T) {
	cfg := baseConfig()
	cfg.InitialInput = config.Vec{1e308}
	cfg.ExternalStimuli = []config.Vec{{1e308}}

	res, err := Run(cfg, quiet())
	if !errors.Is(err, ErrNumericFault) {
		t.Fatalf("expected ErrNumericFault, got %v", err)
	}
	if res == nil || res.Series.Len() != 0 {
		t.Fatal("expected partial result without the faulty step")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.Simulation.Steps = 0
	if _, err := New(cfg, quiet()); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestStepAfterFinish(t *testing.T) {
	cfg := baseConfig()
	cfg.Simulation.Steps = 1
	s := mustNew(t, cfg, quiet())
	mustStep(t, s)
	if _, err := s.Step(); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
}

func TestAddStimulusBroadcast(t *testing.T) {
	sig := []float64{1, 2, 3}
	got := addStimulus(sig, []float64{0.5})
	if !reflect.DeepEqual(got, []float64{1.5, 2.5, 3.5}) {
		t.Fatalf("unexpected broadcast %v", got)
	}
	got = addStimulus(sig, []float64{1, 1, 1})
	if !reflect.DeepEqual(got, []float64{2, 3, 4}) {
		t.Fatalf("unexpected elementwise add %v", got)
	}
	if sig[0] != 1 {
		t.Fatal("addStimulus must not modify its input")
	}
}

// #endregion run-tests
