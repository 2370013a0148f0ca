package region

// #region chemical-names
// Neurotransmitter keys read by the region formulas.
const (
	Dopamine       = "dopamine"
	DopamineDecay  = "dopamine_decay"
	Serotonin      = "serotonin"
	Norepinephrine = "norepinephrine"
	Glutamate      = "glutamate"
	GABA           = "gaba"
	Acetylcholine  = "acetylcholine"
	Oxytocin       = "oxytocin"
	Vasopressin    = "vasopressin"
)

// Internal state keys.
const (
	BodyTemperature = "body_temperature"
	HeartRate       = "heart_rate"
	TrustScore      = "trust_score"
)

// #endregion chemical-names

// #region levels
// Levels maps a neurotransmitter name to its current level.
type Levels map[string]float64

// Get returns the level for name, or def when the key is absent.
func (l Levels) Get(name string, def float64) float64 {
	if v, ok := l[name]; ok {
		return v
	}
	return def
}

// Scale multiplies an existing level by factor. Absent keys are left absent.
func (l Levels) Scale(name string, factor float64) {
	if v, ok := l[name]; ok {
		l[name] = v * factor
	}
}

// Clone returns an independent copy.
func (l Levels) Clone() Levels {
	out := make(Levels, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// InternalState maps a bodily/internal quantity (heart rate, trust score, ...) to a value.
type InternalState map[string]float64

// Get returns the value for name, or def when the key is absent.
func (s InternalState) Get(name string, def float64) float64 {
	if v, ok := s[name]; ok {
		return v
	}
	return def
}

// Clone returns an independent copy.
func (s InternalState) Clone() InternalState {
	out := make(InternalState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// #endregion levels

// #region context
// Context is the explicit modulator state handed to every region evaluation.
// The driver owns it and mutates it only between evaluations.
type Context struct {
	Levels   Levels
	Internal InternalState
}

// NewContext returns a Context with non-nil maps.
func NewContext(levels Levels, internal InternalState) *Context {
	if levels == nil {
		levels = Levels{}
	}
	if internal == nil {
		internal = InternalState{}
	}
	return &Context{Levels: levels, Internal: internal}
}

// #endregion context

// #region input
// Input is what a region receives for one evaluation.
type Input struct {
	Signal []float64
	// Observed carries labeled observations (e.g. {"pain": 0.6}) for regions
	// that work on named signals rather than a numeric vector.
	Observed map[string]float64
}

// SignalInput wraps a numeric signal.
func SignalInput(sig []float64) Input {
	return Input{Signal: sig}
}

// #endregion input

// #region region-interface
// Region is one anatomical area's input-to-output transform.
type Region interface {
	Name() string
	Process(in Input, ctx *Context) Output
}

// #endregion region-interface
