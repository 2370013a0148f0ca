// Package feedback holds the per-step time series produced by a simulation
// run and its column-oriented JSON form.
package feedback

// #region keys
// Keys is the documented column order of the serialized log.
var Keys = []string{
	"time",
	"visual_language_discrepancy",
	"auditory_language_discrepancy",
	"olfactory_discomfort",
	"feedback_intensity",
	"emotion_states",
}

// #endregion keys

// #region types

// EmotionSnapshot is the derived emotional reading of one step.
type EmotionSnapshot struct {
	Fear     float64 `json:"fear"`
	Pleasure float64 `json:"pleasure"`
	Disgust  float64 `json:"disgust"`
	Anger    float64 `json:"anger"`
	Empathy  float64 `json:"empathy"`
}

// Record is one retained step.
type Record struct {
	Step                int
	Time                float64
	VisualLanguage      float64
	AuditoryLanguage    float64
	OlfactoryDiscomfort float64
	FeedbackIntensity   float64
	Emotion             EmotionSnapshot
}

// Fields returns the scalar fields keyed by their column name.
func (r Record) Fields() map[string]float64 {
	return map[string]float64{
		"time":                          r.Time,
		"visual_language_discrepancy":   r.VisualLanguage,
		"auditory_language_discrepancy": r.AuditoryLanguage,
		"olfactory_discomfort":          r.OlfactoryDiscomfort,
		"feedback_intensity":            r.FeedbackIntensity,
		"fear":                          r.Emotion.Fear,
		"pleasure":                      r.Emotion.Pleasure,
		"disgust":                       r.Emotion.Disgust,
		"anger":                         r.Emotion.Anger,
		"empathy":                       r.Emotion.Empathy,
	}
}

// Series is the ordered log of retained steps.
type Series struct {
	Records []Record
}

// Append adds a record.
func (s *Series) Append(r Record) {
	s.Records = append(s.Records, r)
}

// Len is the number of retained steps.
func (s *Series) Len() int {
	return len(s.Records)
}

// Column extracts one scalar column by key. Unknown keys return nil.
func (s *Series) Column(key string) []float64 {
	if s.Len() == 0 {
		return nil
	}
	if _, ok := s.Records[0].Fields()[key]; !ok {
		return nil
	}
	out := make([]float64, s.Len())
	for i, r := range s.Records {
		out[i] = r.Fields()[key]
	}
	return out
}

// #endregion types
