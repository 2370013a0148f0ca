package region

import "math"

// #region striatum
// Striatum maps the signal to an exponentially decaying reward trace.
type Striatum struct{}

func (Striatum) Name() string { return "Striatum" }

func (Striatum) Process(in Input, ctx *Context) Output {
	lambda := ctx.Levels.Get(DopamineDecay, 0.5)
	out := make([]float64, len(in.Signal))
	for i, v := range in.Signal {
		out[i] = math.Exp(-lambda * v)
	}
	return Vector(out)
}

// #endregion striatum

// #region hippocampus
// Hippocampus encodes the signal as a memory trace and keeps every trace it produced.
type Hippocampus struct {
	traces [][]float64
}

func (h *Hippocampus) Name() string { return "Hippocampus" }

func (h *Hippocampus) Process(in Input, ctx *Context) Output {
	glu := ctx.Levels.Get(Glutamate, 1.0)
	ach := ctx.Levels.Get(Acetylcholine, 1.0)
	trace := scaled(in.Signal, glu*ach)
	h.traces = append(h.traces, scaled(trace, 1))
	return Vector(trace)
}

// Traces returns the stored memory traces, oldest first.
func (h *Hippocampus) Traces() [][]float64 {
	return h.traces
}

// #endregion hippocampus

// #region amygdala
const amygdalaFloor = 0.3

// Amygdala responds to the strongest component of the signal and stays silent
// below a fixed floor.
type Amygdala struct {
	Memory *Memory
}

// NewAmygdala returns an amygdala with default emotion memory.
func NewAmygdala() *Amygdala {
	return &Amygdala{Memory: NewMemory()}
}

func (a *Amygdala) Name() string { return "Amygdala" }

func (a *Amygdala) Process(in Input, ctx *Context) Output {
	ne := ctx.Levels.Get(Norepinephrine, 1.0)
	ser := ctx.Levels.Get(Serotonin, 1.0)
	strength := maxOf(in.Signal) * ne * ser
	if strength > amygdalaFloor {
		return Scalar(strength)
	}
	return Scalar(0)
}

// Remember records an emotion-labeled response in short- and long-term memory.
func (a *Amygdala) Remember(emotion string, strength float64) {
	a.Memory.Update(emotion, strength)
}

// Decay fades short-term emotion memory.
func (a *Amygdala) Decay() {
	a.Memory.Decay()
}

// #endregion amygdala

// #region homeostatic
// Hypothalamus scales the mean signal by neuropeptides and body temperature.
type Hypothalamus struct{}

func (Hypothalamus) Name() string { return "Hypothalamus" }

func (Hypothalamus) Process(in Input, ctx *Context) Output {
	oxt := ctx.Levels.Get(Oxytocin, 1.0)
	avp := ctx.Levels.Get(Vasopressin, 1.0)
	temp := ctx.Internal.Get(BodyTemperature, 36.5)
	return Scalar(mean(in.Signal) * oxt * avp * (temp / 37.0))
}

// Cerebellum gates the signal elementwise by GABA and glutamate.
type Cerebellum struct{}

func (Cerebellum) Name() string { return "Cerebellum" }

func (Cerebellum) Process(in Input, ctx *Context) Output {
	gaba := ctx.Levels.Get(GABA, 1.0)
	glu := ctx.Levels.Get(Glutamate, 1.0)
	return Vector(scaled(in.Signal, gaba*glu))
}

// Midbrain scales the mean signal by acetylcholine and dopamine.
type Midbrain struct{}

func (Midbrain) Name() string { return "Midbrain" }

func (Midbrain) Process(in Input, ctx *Context) Output {
	ach := ctx.Levels.Get(Acetylcholine, 1.0)
	da := ctx.Levels.Get(Dopamine, 1.0)
	return Scalar(mean(in.Signal) * ach * da)
}

// Brainstem scales the mean signal by serotonin, norepinephrine and heart rate.
type Brainstem struct{}

func (Brainstem) Name() string { return "Brainstem" }

func (Brainstem) Process(in Input, ctx *Context) Output {
	ser := ctx.Levels.Get(Serotonin, 1.0)
	ne := ctx.Levels.Get(Norepinephrine, 1.0)
	hr := ctx.Internal.Get(HeartRate, 70)
	return Scalar(mean(in.Signal) * ser * ne * (hr / 70))
}

// #endregion homeostatic
