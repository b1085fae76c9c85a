package storage

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// ExportData is the JSON form of a run with its expanded features.
type ExportData struct {
	ID           string      `json:"id"`
	Model        string      `json:"model"`
	Integrator   string      `json:"integrator"`
	Dt           float64     `json:"dt"`
	Duration     float64     `json:"duration"`
	InputNames   []string    `json:"input_names"`
	FeatureNames []string    `json:"feature_names"`
	Features     [][]Value   `json:"features"`
}

// ExportJSON writes the run's metadata and feature matrix to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	names, theta, err := s.LoadFeatures(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:           meta.ID,
		Model:        meta.Model,
		Integrator:   meta.Integrator,
		Dt:           meta.Dt,
		Duration:     meta.Duration,
		InputNames:   meta.InputNames,
		FeatureNames: names,
		Features:     rows(theta),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Value is a feature entry that encodes NaN and ±Inf as JSON null. Null
// decodes back to NaN.
type Value float64

func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Value(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*v = Value(f)
	return nil
}

func rows(m *mat.Dense) [][]Value {
	r, c := m.Dims()
	out := make([][]Value, r)
	for i := range out {
		out[i] = make([]Value, c)
		for j := range out[i] {
			out[i][j] = Value(m.At(i, j))
		}
	}
	return out
}
