package feedback

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrRagged is returned when the columns of a log file differ in length.
var ErrRagged = errors.New("feedback columns have different lengths")

// #region columns

// columns is the on-disk layout. Field order is the documented key order.
type columns struct {
	Time                []float64         `json:"time"`
	VisualLanguage      []float64         `json:"visual_language_discrepancy"`
	AuditoryLanguage    []float64         `json:"auditory_language_discrepancy"`
	OlfactoryDiscomfort []float64         `json:"olfactory_discomfort"`
	FeedbackIntensity   []float64         `json:"feedback_intensity"`
	EmotionStates       []EmotionSnapshot `json:"emotion_states"`
}

func toColumns(s *Series) columns {
	n := s.Len()
	c := columns{
		Time:                make([]float64, n),
		VisualLanguage:      make([]float64, n),
		AuditoryLanguage:    make([]float64, n),
		OlfactoryDiscomfort: make([]float64, n),
		FeedbackIntensity:   make([]float64, n),
		EmotionStates:       make([]EmotionSnapshot, n),
	}
	for i, r := range s.Records {
		c.Time[i] = r.Time
		c.VisualLanguage[i] = r.VisualLanguage
		c.AuditoryLanguage[i] = r.AuditoryLanguage
		c.OlfactoryDiscomfort[i] = r.OlfactoryDiscomfort
		c.FeedbackIntensity[i] = r.FeedbackIntensity
		c.EmotionStates[i] = r.Emotion
	}
	return c
}

func (c columns) toSeries() (*Series, error) {
	n := len(c.Time)
	for _, l := range []int{
		len(c.VisualLanguage), len(c.AuditoryLanguage), len(c.OlfactoryDiscomfort),
		len(c.FeedbackIntensity), len(c.EmotionStates),
	} {
		if l != n {
			return nil, fmt.Errorf("%w: time has %d, found %d", ErrRagged, n, l)
		}
	}
	s := &Series{Records: make([]Record, n)}
	for i := 0; i < n; i++ {
		s.Records[i] = Record{
			Step:                i,
			Time:                c.Time[i],
			VisualLanguage:      c.VisualLanguage[i],
			AuditoryLanguage:    c.AuditoryLanguage[i],
			OlfactoryDiscomfort: c.OlfactoryDiscomfort[i],
			FeedbackIntensity:   c.FeedbackIntensity[i],
			Emotion:             c.EmotionStates[i],
		}
	}
	return s, nil
}

// #endregion columns

// #region encode

// Marshal renders the series as indented column-oriented JSON.
func Marshal(s *Series) ([]byte, error) {
	data, err := json.MarshalIndent(toColumns(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feedback: %w", err)
	}
	return data, nil
}

// Unmarshal parses column-oriented JSON. Step indices are not stored in the
// file, so records are numbered by position.
func Unmarshal(data []byte) (*Series, error) {
	var c columns
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse feedback: %w", err)
	}
	return c.toSeries()
}

// Write saves the series to path.
func Write(path string, s *Series) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write feedback %s: %w", path, err)
	}
	return nil
}

// Read loads a series from path.
func Read(path string) (*Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feedback %s: %w", path, err)
	}
	s, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// #endregion encode

// #region key-order

// TopLevelKeys returns the object keys of a log document in file order.
func TopLevelKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected key, got %v", tok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, fmt.Errorf("skip %s: %w", key, err)
		}
	}
	return keys, nil
}

// #endregion key-order
