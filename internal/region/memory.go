package region

// #region memory-config
const (
	DefaultShortTermDecay   = 0.9
	DefaultLongTermRate     = 0.01
	longTermInitialStrength = 1.0
)

// #endregion memory-config

// #region memory
// Memory holds label-keyed short-term (decaying) and long-term (moving average)
// response strengths.
type Memory struct {
	ShortTermDecay float64
	LongTermRate   float64

	shortTerm map[string]float64
	longTerm  map[string]float64
}

// NewMemory returns an empty memory with default rates.
func NewMemory() *Memory {
	return &Memory{
		ShortTermDecay: DefaultShortTermDecay,
		LongTermRate:   DefaultLongTermRate,
		shortTerm:      map[string]float64{},
		longTerm:       map[string]float64{},
	}
}

// Update overwrites the short-term strength for label and moves the long-term
// strength toward it. Long-term entries start at 1.0.
func (m *Memory) Update(label string, strength float64) {
	m.shortTerm[label] = strength
	prev, ok := m.longTerm[label]
	if !ok {
		prev = longTermInitialStrength
	}
	m.longTerm[label] = prev + m.LongTermRate*(strength-prev)
}

// Decay multiplies every short-term strength by the decay rate.
func (m *Memory) Decay() {
	for k, v := range m.shortTerm {
		m.shortTerm[k] = v * m.ShortTermDecay
	}
}

// ShortTerm returns the short-term strength for label.
func (m *Memory) ShortTerm(label string) (float64, bool) {
	v, ok := m.shortTerm[label]
	return v, ok
}

// LongTerm returns the long-term strength for label.
func (m *Memory) LongTerm(label string) (float64, bool) {
	v, ok := m.longTerm[label]
	return v, ok
}

// #endregion memory
