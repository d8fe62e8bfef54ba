package layer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Normal rescales every element with y = gain*((x-mean)/std) + bias.
type Normal struct {
	named

	inputs int
	mean   float64
	std    float64
	gain   float64
	bias   float64

	outputBuf []float64
}

// NewNormal creates an identity Normal layer (mean 0, std 1, gain 1, bias 0).
func NewNormal(inputs int) (*Normal, error) {
	if inputs < 1 {
		return nil, fmt.Errorf("normal: %w: %d inputs", ErrInvalidShape, inputs)
	}
	return &Normal{
		inputs:    inputs,
		std:       1,
		gain:      1,
		outputBuf: make([]float64, inputs),
	}, nil
}

// Run applies the affine map. It fails with ErrDomain when std is 0.
func (n *Normal) Run(x []float64) (int, error) {
	if err := checkInput("normal", x, n.inputs); err != nil {
		return 0, err
	}
	if n.std == 0 {
		return 0, fmt.Errorf("normal: %w: standard deviation is zero", ErrDomain)
	}
	copy(n.outputBuf, x)
	floats.AddConst(-n.mean, n.outputBuf)
	floats.Scale(n.gain/n.std, n.outputBuf)
	floats.AddConst(n.bias, n.outputBuf)
	return n.inputs, nil
}

func (n *Normal) Output() []float64 { return n.outputBuf }
func (n *Normal) OutputLength() int { return n.inputs }
func (n *Normal) InputLength() int  { return n.inputs }

func (n *Normal) SetMean(v float64) { n.mean = v }
func (n *Normal) SetStd(v float64)  { n.std = v }
func (n *Normal) SetGain(v float64) { n.gain = v }
func (n *Normal) SetBias(v float64) { n.bias = v }

func (n *Normal) Mean() float64 { return n.mean }
func (n *Normal) Std() float64  { return n.std }
func (n *Normal) Gain() float64 { return n.gain }
func (n *Normal) Bias() float64 { return n.bias }

// Params returns mean, std, gain and bias.
func (n *Normal) Params() []float64 {
	return []float64{n.mean, n.std, n.gain, n.bias}
}

// SetParams sets mean, std, gain and bias from a 4-element slice.
func (n *Normal) SetParams(params []float64) {
	if len(params) != 4 {
		return
	}
	n.mean, n.std, n.gain, n.bias = params[0], params[1], params[2], params[3]
}
