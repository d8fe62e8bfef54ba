package layer

import "fmt"

// Accum passes its input through unchanged. Graph builders use it as a named
// junction where several branches meet.
type Accum struct {
	named

	inputs    int
	outputBuf []float64
}

// NewAccum creates a pass-through layer of the given width.
func NewAccum(inputs int) (*Accum, error) {
	if inputs < 1 {
		return nil, fmt.Errorf("accum: %w: %d inputs", ErrInvalidShape, inputs)
	}
	return &Accum{inputs: inputs, outputBuf: make([]float64, inputs)}, nil
}

// Run copies x into the output buffer.
func (a *Accum) Run(x []float64) (int, error) {
	if err := checkInput("accum", x, a.inputs); err != nil {
		return 0, err
	}
	copy(a.outputBuf, x)
	return a.inputs, nil
}

func (a *Accum) Output() []float64 { return a.outputBuf }
func (a *Accum) OutputLength() int { return a.inputs }
func (a *Accum) InputLength() int  { return a.inputs }
