package signals

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/homunculus/internal/region"
)

// #region helpers

func outputs(visual, language, auditory, olfactory float64, pfc []float64) region.Outputs {
	return region.Outputs{
		Visual:     region.Scalar(visual),
		Language:   region.Scalar(language),
		Auditory:   region.Scalar(auditory),
		Olfactory:  region.Vector([]float64{olfactory}),
		Prefrontal: region.Vector(pfc),
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

// #endregion helpers

// #region produce-tests

func TestProduce_Discrepancies(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())
	s := p.Produce(ProduceInput{
		Outputs: outputs(0.5, 0.2, 0.9, 0.1, []float64{0.3, 0.7}),
		Levels:  region.Levels{region.Serotonin: 0.5},
	})

	if !near(s.VisualLanguage, 0.3) {
		t.Errorf("expected visual-language 0.3, got %f", s.VisualLanguage)
	}
	if !near(s.AuditoryLanguage, 0.7) {
		t.Errorf("expected auditory-language 0.7, got %f", s.AuditoryLanguage)
	}
	if !near(s.Discrepancy, 0.7) {
		t.Errorf("expected discrepancy 0.7, got %f", s.Discrepancy)
	}
	if !near(s.OlfactoryDiscomfort, 0.1) {
		t.Errorf("expected discomfort 0.1, got %f", s.OlfactoryDiscomfort)
	}
	if !near(s.Prefrontal, 0.3) {
		t.Errorf("expected prefrontal 0.3, got %f", s.Prefrontal)
	}
}

func TestProduce_FeedbackIncludesDiscomfort(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())
	s := p.Produce(ProduceInput{
		Outputs: outputs(0.5, 0.5, 0.5, 0.9, []float64{1}),
		Levels:  region.Levels{region.Serotonin: 0.5},
	})
	if !near(s.FeedbackIntensity, 0.9) {
		t.Errorf("expected feedback intensity 0.9, got %f", s.FeedbackIntensity)
	}
	if s.Discrepancy != 0 {
		t.Errorf("expected zero discrepancy, got %f", s.Discrepancy)
	}
}

// #endregion produce-tests

// #region threshold-tests

func TestThreshold_Formula(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())
	got := p.Threshold(0.4, 0.8, 0)
	want := 0.5 + 0.2*0.4 + 0.3*(0.8-0.5) - 0.1
	if !near(got, want) {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestThreshold_RisesWithStreak(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())
	prev := p.Threshold(0.3, 0.5, 0)
	for streak := 1; streak < 5; streak++ {
		cur := p.Threshold(0.3, 0.5, streak)
		if cur <= prev {
			t.Fatalf("streak %d: expected threshold above %f, got %f", streak, prev, cur)
		}
		prev = cur
	}
}

func TestThreshold_MissingSerotoninUsesDefault(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())
	s := p.Produce(ProduceInput{
		Outputs: outputs(0, 0, 0, 0, []float64{0}),
		Levels:  region.Levels{},
	})
	want := 0.5 + 0.3*(1.0-0.5) - 0.1
	if !near(s.Threshold, want) {
		t.Errorf("expected %f, got %f", want, s.Threshold)
	}
}

func TestExceeded(t *testing.T) {
	if (Signals{Discrepancy: 0.5, Threshold: 0.5}).Exceeded() {
		t.Error("equal discrepancy must not exceed the threshold")
	}
	if !(Signals{Discrepancy: 0.51, Threshold: 0.5}).Exceeded() {
		t.Error("expected discrepancy above threshold to exceed")
	}
}

// #endregion threshold-tests

// #region anger-tests

func TestAnger(t *testing.T) {
	p := NewProducer(DefaultProducerConfig())
	if got := p.Anger(0.2); got != 0 {
		t.Errorf("expected 0 below offset, got %f", got)
	}
	if got := p.Anger(0.75); !near(got, 0.25) {
		t.Errorf("expected 0.25, got %f", got)
	}
}

// #endregion anger-tests
