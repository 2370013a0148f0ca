package region

// #region stimuli
// Stimuli bundles every input presented during one step.
type Stimuli struct {
	Signal     []float64 // running input signal shared by most regions
	Image      []float64
	Linguistic []float64
	Auditory   []float64
	Olfactory  []float64
	Observed   map[string]float64 // observed distress for the insula
}

// #endregion stimuli

// #region outputs
// Outputs holds one step's region outputs. All fields are filled before any
// caller reads them.
type Outputs struct {
	Prefrontal   Output
	Striatum     Output
	Hippocampus  Output
	Amygdala     Output
	Hypothalamus Output
	Cerebellum   Output
	Midbrain     Output
	Brainstem    Output
	Visual       Output
	Language     Output
	Auditory     Output
	Olfactory    Output
	Insula       Output
}

// #endregion outputs

// #region brain
// Brain is the fixed set of regions. Stateful regions (hippocampus, olfactory
// cortex, amygdala, insula) keep their state across steps.
type Brain struct {
	Prefrontal   PrefrontalCortex
	Striatum     Striatum
	Hippocampus  *Hippocampus
	Amygdala     *Amygdala
	Hypothalamus Hypothalamus
	Cerebellum   Cerebellum
	Midbrain     Midbrain
	Brainstem    Brainstem
	Visual       VisualCortex
	Language     LanguageArea
	Auditory     AuditoryCortex
	Olfactory    *OlfactoryCortex
	Insula       *Insula
}

// NewBrain returns a brain with fresh region state.
func NewBrain() *Brain {
	return &Brain{
		Hippocampus: &Hippocampus{},
		Amygdala:    NewAmygdala(),
		Olfactory:   NewOlfactoryCortex(),
		Insula:      NewInsula(),
	}
}

// Evaluate runs every region once. Sensory regions see their own modality,
// the insula sees the observed distress, the rest see the running signal.
func (b *Brain) Evaluate(st Stimuli, ctx *Context) Outputs {
	shared := SignalInput(st.Signal)
	return Outputs{
		Prefrontal:   b.Prefrontal.Process(shared, ctx),
		Striatum:     b.Striatum.Process(shared, ctx),
		Hippocampus:  b.Hippocampus.Process(shared, ctx),
		Amygdala:     b.Amygdala.Process(shared, ctx),
		Hypothalamus: b.Hypothalamus.Process(shared, ctx),
		Cerebellum:   b.Cerebellum.Process(shared, ctx),
		Midbrain:     b.Midbrain.Process(shared, ctx),
		Brainstem:    b.Brainstem.Process(shared, ctx),
		Visual:       b.Visual.Process(SignalInput(st.Image), ctx),
		Language:     b.Language.Process(SignalInput(st.Linguistic), ctx),
		Auditory:     b.Auditory.Process(SignalInput(st.Auditory), ctx),
		Olfactory:    b.Olfactory.Process(SignalInput(st.Olfactory), ctx),
		Insula:       b.Insula.Process(Input{Observed: st.Observed}, ctx),
	}
}

// #endregion brain
