package store

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/roach88/tacs/internal/scalar"
)

// marshalVector converts a scalar vector to a JSON array of real parts.
// NaN and infinite entries are rejected; encoding/json cannot represent them.
func marshalVector(v []scalar.Scalar) (string, error) {
	re := scalar.RealParts(v)
	for i, x := range re {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", fmt.Errorf("marshal vector: entry %d is %v", i, x)
		}
	}
	data, err := json.Marshal(re)
	if err != nil {
		return "", fmt.Errorf("marshal vector: %w", err)
	}
	return string(data), nil
}

// unmarshalVector parses a JSON array stored by marshalVector.
func unmarshalVector(data string) ([]float64, error) {
	if data == "" {
		return []float64{}, nil
	}
	var v []float64
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("unmarshal vector: %w", err)
	}
	if v == nil {
		v = []float64{}
	}
	return v, nil
}
