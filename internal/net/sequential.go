package net

import (
	"fmt"
	"io"

	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/layer"
)

// Sequential is a high-level wrapper around Network to provide a Keras-like API.
type Sequential struct {
	*Network
}

// NewSequential creates a new Sequential model.
func NewSequential(layers ...layer.Layer) (*Sequential, error) {
	n, err := New(layers...)
	if err != nil {
		return nil, err
	}
	return &Sequential{Network: n}, nil
}

// Predict performs a forward pass and returns a copy of the output.
func (s *Sequential) Predict(x []float64) ([]float64, error) {
	out, err := s.Forward(x)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), out...), nil
}

// PredictSequence feeds each row of xs as one timestep and returns every
// output. Recurrent state carries across rows; call Reset to start over.
func (s *Sequential) PredictSequence(xs [][]float64) ([][]float64, error) {
	outs := make([][]float64, 0, len(xs))
	for t, x := range xs {
		out, err := s.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("timestep %d: %w", t, err)
		}
		outs = append(outs, out)
	}
	return outs, nil
}

// Summary writes a summary of the network architecture to w.
func (s *Sequential) Summary(w io.Writer) {
	fmt.Fprintln(w, "Model: Sequential")
	fmt.Fprintln(w, "_________________________________________________________________")
	fmt.Fprintf(w, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	fmt.Fprintln(w, "=================================================================")

	totalParams := 0
	for i, l := range s.layers {
		lType := fmt.Sprintf("%T", l)
		// Extract simple type name
		for j := len(lType) - 1; j >= 0; j-- {
			if lType[j] == '.' {
				lType = lType[j+1:]
				break
			}
		}
		name := l.Name()
		if name == "" {
			name = fmt.Sprintf("%s_%d", lType, i)
		}

		params := 0
		if p, ok := l.(layer.Parameterized); ok {
			params = len(p.Params())
		}
		totalParams += params

		fmt.Fprintf(w, "%-25s %-20s %-10d\n", fmt.Sprintf("%s (%s)", name, lType),
			fmt.Sprintf("(%d)", l.OutputLength()), params)
	}
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "Total params: %d\n", totalParams)
}
