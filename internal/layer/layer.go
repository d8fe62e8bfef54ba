// Package layer provides inference-only neural network layer implementations.
//
// Every layer owns its output buffer and borrows its input for the duration of
// a single Run call. Layers are not safe for concurrent use; distinct layer
// instances share no state.
package layer

import (
	"fmt"

	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/activations"
)

// MaxNameLen is the longest name a layer keeps, in runes.
const MaxNameLen = 32

// Layer is a neural network layer evaluated one input vector at a time.
type Layer interface {
	// Run evaluates the forward pass over x and returns the output length.
	// The result is available from Output until the next Run or shape change.
	Run(x []float64) (int, error)
	Output() []float64
	OutputLength() int
	InputLength() int
	Name() string
	SetName(name string)
}

// Recurrent is a layer that keeps state between Run calls.
type Recurrent interface {
	Layer
	// Reset zeroes all retained state and the timestep counter.
	Reset()
	Timestep() int
}

// Parameterized exposes a layer's learned values as one flat slice so that
// external loaders can get and set them in bulk.
type Parameterized interface {
	Params() []float64
	// SetParams ignores a slice whose length differs from len(Params()).
	SetParams(params []float64)
}

// named stores the opaque layer label.
type named struct {
	name string
}

// Name returns the layer label.
func (n *named) Name() string {
	return n.name
}

// SetName sets the layer label, truncated to MaxNameLen runes.
func (n *named) SetName(name string) {
	r := []rune(name)
	if len(r) > MaxNameLen {
		r = r[:MaxNameLen]
	}
	n.name = string(r)
}

// checkInput returns ErrInvalidInput when x does not have want values.
func checkInput(kind string, x []float64, want int) error {
	if len(x) != want {
		return fmt.Errorf("%s: %w: got %d values, want %d", kind, ErrInvalidInput, len(x), want)
	}
	return nil
}

var (
	gateSigmoid = activations.Default(activations.Sigmoid)
	gateTanh    = activations.Default(activations.Tanh)
)
