package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// #region vec

// Vec is a numeric signal. In config files it may be written as a single
// number or as a list.
type Vec []float64

// UnmarshalJSON accepts a number or an array of numbers.
func (v *Vec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var xs []float64
		if err := json.Unmarshal(data, &xs); err != nil {
			return fmt.Errorf("vector: %w", err)
		}
		*v = xs
		return nil
	}
	var x float64
	if err := json.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("vector: %w", err)
	}
	*v = Vec{x}
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence node.
func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var xs []float64
		if err := node.Decode(&xs); err != nil {
			return fmt.Errorf("vector: %w", err)
		}
		*v = xs
	case yaml.ScalarNode:
		var x float64
		if err := node.Decode(&x); err != nil {
			return fmt.Errorf("vector: %w", err)
		}
		*v = Vec{x}
	default:
		return fmt.Errorf("vector: unexpected yaml node at line %d", node.Line)
	}
	return nil
}

// UnmarshalTOML accepts a number or an array of numbers.
func (v *Vec) UnmarshalTOML(data interface{}) error {
	switch d := data.(type) {
	case []interface{}:
		xs := make(Vec, len(d))
		for i, e := range d {
			x, err := tomlNumber(e)
			if err != nil {
				return fmt.Errorf("vector element %d: %w", i, err)
			}
			xs[i] = x
		}
		*v = xs
	default:
		x, err := tomlNumber(d)
		if err != nil {
			return fmt.Errorf("vector: %w", err)
		}
		*v = Vec{x}
	}
	return nil
}

func tomlNumber(e interface{}) (float64, error) {
	switch n := e.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("not a number: %v", e)
	}
}

// Clone returns an independent copy as a plain slice.
func (v Vec) Clone() []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// #endregion vec
