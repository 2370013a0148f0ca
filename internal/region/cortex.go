package region

import "math"

// #region prefrontal
// PrefrontalCortex normalizes the dopamine/glutamate-weighted signal into a
// probability-like distribution.
type PrefrontalCortex struct{}

func (PrefrontalCortex) Name() string { return "Prefrontal Cortex" }

func (PrefrontalCortex) Process(in Input, ctx *Context) Output {
	da := ctx.Levels.Get(Dopamine, 1.0)
	glu := ctx.Levels.Get(Glutamate, 1.0)
	return Vector(softmax(scaled(in.Signal, da*glu)))
}

// #endregion prefrontal

// #region sensory
// VisualCortex averages the image signal, gated by glutamate.
type VisualCortex struct{}

func (VisualCortex) Name() string { return "Visual Cortex" }

func (VisualCortex) Process(in Input, ctx *Context) Output {
	return Scalar(mean(in.Signal) * ctx.Levels.Get(Glutamate, 1.0))
}

// LanguageArea sums the linguistic signal, gated by acetylcholine.
type LanguageArea struct{}

func (LanguageArea) Name() string { return "Language Area" }

func (LanguageArea) Process(in Input, ctx *Context) Output {
	return Scalar(sum(in.Signal) * ctx.Levels.Get(Acetylcholine, 1.0))
}

// AuditoryCortex averages the auditory signal, gated by serotonin.
type AuditoryCortex struct{}

func (AuditoryCortex) Name() string { return "Auditory Cortex" }

func (AuditoryCortex) Process(in Input, ctx *Context) Output {
	return Scalar(mean(in.Signal) * ctx.Levels.Get(Serotonin, 1.0))
}

// #endregion sensory

// #region olfactory
const (
	DefaultDesensitizationRate = 0.1
	desensitizationWindow      = 0.05
)

// OlfactoryCortex turns odor intensity into discomfort. A stimulus that barely
// changes between calls is attenuated by the desensitization rate.
type OlfactoryCortex struct {
	DesensitizationRate float64
	previous            float64
}

// NewOlfactoryCortex returns a cortex with the default desensitization rate.
func NewOlfactoryCortex() *OlfactoryCortex {
	return &OlfactoryCortex{DesensitizationRate: DefaultDesensitizationRate}
}

func (o *OlfactoryCortex) Name() string { return "Olfactory Cortex" }

// Process returns a one-element vector holding the discomfort.
func (o *OlfactoryCortex) Process(in Input, ctx *Context) Output {
	var intensity float64
	if len(in.Signal) > 0 {
		intensity = in.Signal[0]
	}
	if math.Abs(intensity-o.previous) < desensitizationWindow {
		intensity *= 1 - o.DesensitizationRate
	}
	o.previous = intensity

	serotonin := ctx.Levels.Get(Serotonin, 0.5)
	return Vector([]float64{intensity * (1 - serotonin)})
}

// Previous is the last (post-desensitization) intensity seen.
func (o *OlfactoryCortex) Previous() float64 {
	return o.previous
}

// #endregion olfactory
