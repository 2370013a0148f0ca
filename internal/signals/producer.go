package signals

import (
	"math"

	"github.com/danielpatrickdp/homunculus/internal/region"
	"gonum.org/v1/gonum/floats"
)

// #region producer

// Producer computes cross-modal discrepancy signals from region outputs.
type Producer struct {
	config ProducerConfig
}

// NewProducer creates a Producer.
func NewProducer(config ProducerConfig) *Producer {
	return &Producer{config: config}
}

// #endregion producer

// #region produce

// Produce computes all signals for one step.
func (p *Producer) Produce(input ProduceInput) Signals {
	out := input.Outputs
	vl := region.Distance(out.Visual, out.Language)
	al := region.Distance(out.Auditory, out.Language)
	olf := out.Olfactory.Value()
	pfc := out.Prefrontal.Value()

	serotonin := input.Levels.Get(region.Serotonin, p.config.DefaultSerotonin)

	return Signals{
		VisualLanguage:      vl,
		AuditoryLanguage:    al,
		OlfactoryDiscomfort: olf,
		Discrepancy:         math.Max(vl, al),
		FeedbackIntensity:   floats.Max([]float64{vl, al, olf}),
		Threshold:           p.Threshold(pfc, serotonin, input.Streak),
		Prefrontal:          pfc,
	}
}

// #endregion produce

// #region threshold

// Threshold is the adaptive discrepancy threshold. A long streak removes the
// small streak bonus, so the threshold rises slightly as the streak grows.
func (p *Producer) Threshold(prefrontal, serotonin float64, streak int) float64 {
	return p.config.BaseThreshold +
		p.config.PrefrontalWeight*prefrontal +
		p.config.SerotoninWeight*(serotonin-p.config.SerotoninBaseline) -
		p.config.StreakBonus*math.Exp(-float64(streak))
}

// #endregion threshold

// #region anger

// Anger maps the visual-language discrepancy to an anger level.
func (p *Producer) Anger(visualLanguage float64) float64 {
	return math.Max(0, visualLanguage-p.config.AngerOffset)
}

// #endregion anger
