// Package net chains layers into a network evaluated one input at a time.
package net

import (
	"errors"
	"fmt"

	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/layer"
)

// ErrShapeMismatch is returned when a layer's input length differs from the
// previous layer's output length.
var ErrShapeMismatch = errors.New("net: layer shape mismatch")

// Network is an ordered chain of layers. Each layer reads the previous
// layer's output buffer directly.
type Network struct {
	layers []layer.Layer
}

// New creates a network from layers, checking that adjacent shapes agree.
func New(layers ...layer.Layer) (*Network, error) {
	n := &Network{}
	for _, l := range layers {
		if err := n.Add(l); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Add appends l to the end of the chain.
func (n *Network) Add(l layer.Layer) error {
	if len(n.layers) > 0 {
		prev := n.layers[len(n.layers)-1]
		if prev.OutputLength() != l.InputLength() {
			return fmt.Errorf("%w: layer %d (%q) outputs %d values, layer %d (%q) takes %d",
				ErrShapeMismatch, len(n.layers)-1, prev.Name(), prev.OutputLength(),
				len(n.layers), l.Name(), l.InputLength())
		}
	}
	n.layers = append(n.layers, l)
	return nil
}

// Forward runs x through every layer and returns the last layer's output
// buffer. The slice is owned by that layer and overwritten by the next call.
func (n *Network) Forward(x []float64) ([]float64, error) {
	curr := x
	for i, l := range n.layers {
		if _, err := l.Run(curr); err != nil {
			return nil, fmt.Errorf("net: layer %d (%q): %w", i, l.Name(), err)
		}
		curr = l.Output()
	}
	return curr, nil
}

// Reset resets every recurrent layer in the chain.
func (n *Network) Reset() {
	for _, l := range n.layers {
		if r, ok := l.(layer.Recurrent); ok {
			r.Reset()
		}
	}
}

// Layers returns the layers in chain order.
func (n *Network) Layers() []layer.Layer {
	return n.layers
}

// Layer returns the first layer named name, or nil.
func (n *Network) Layer(name string) layer.Layer {
	for _, l := range n.layers {
		if l.Name() == name {
			return l
		}
	}
	return nil
}

// Params concatenates the parameters of every parameterized layer in chain
// order.
func (n *Network) Params() []float64 {
	var params []float64
	for _, l := range n.layers {
		if p, ok := l.(layer.Parameterized); ok {
			params = append(params, p.Params()...)
		}
	}
	return params
}

// SetParams distributes a slice laid out like Params back over the layers.
func (n *Network) SetParams(params []float64) error {
	if want := len(n.Params()); len(params) != want {
		return fmt.Errorf("net: %w: got %d params, want %d", layer.ErrInvalidInput, len(params), want)
	}
	off := 0
	for _, l := range n.layers {
		if p, ok := l.(layer.Parameterized); ok {
			size := len(p.Params())
			p.SetParams(params[off : off+size])
			off += size
		}
	}
	return nil
}
