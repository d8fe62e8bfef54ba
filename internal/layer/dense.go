package layer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/activations"
)

// Dense is a fully connected layer over an augmented input.
//
// Weights are stored row-major with shape (inputs+1)×nodes: the weight from
// input i to node j is at weights[i*nodes+j] and row `inputs` holds the
// biases. The mask has the same shape; a 0 entry disables that connection for
// every Run without touching the stored weight.
type Dense struct {
	named

	inputs int
	nodes  int

	weights []float64
	masks   []float64
	funcs   []activations.Function

	// Reusable buffers
	augBuf    []float64 // input with a trailing 1
	maskedBuf []float64 // weights ⊙ masks for the current call
	outputBuf []float64
}

// NewDense creates a dense layer with zero weights, an all-ones mask and ReLU
// on every node.
func NewDense(inputs, nodes int) (*Dense, error) {
	if inputs < 1 || nodes < 1 {
		return nil, fmt.Errorf("dense: %w: %d inputs, %d nodes", ErrInvalidShape, inputs, nodes)
	}
	size := (inputs + 1) * nodes
	d := &Dense{
		inputs:    inputs,
		nodes:     nodes,
		weights:   make([]float64, size),
		masks:     make([]float64, size),
		funcs:     make([]activations.Function, nodes),
		augBuf:    make([]float64, inputs+1),
		maskedBuf: make([]float64, size),
		outputBuf: make([]float64, nodes),
	}
	for i := range d.masks {
		d.masks[i] = 1
	}
	for j := range d.funcs {
		d.funcs[j] = activations.Default(activations.ReLU)
	}
	return d, nil
}

// Run computes act((W ⊙ M)ᵀ · [x, 1]).
func (d *Dense) Run(x []float64) (int, error) {
	if err := checkInput("dense", x, d.inputs); err != nil {
		return 0, err
	}
	copy(d.augBuf, x)
	d.augBuf[d.inputs] = 1

	floats.MulTo(d.maskedBuf, d.weights, d.masks)
	matTVec(d.inputs+1, d.nodes, d.maskedBuf, d.augBuf, d.outputBuf)

	// Softmax nodes share one denominator, so every raw value must exist first.
	norm := activations.SoftmaxNormWhere(d.outputBuf, d.funcs)
	for j, v := range d.outputBuf {
		d.outputBuf[j] = d.funcs[j].Apply(v, norm)
	}
	return d.nodes, nil
}

func (d *Dense) Output() []float64 { return d.outputBuf }
func (d *Dense) OutputLength() int { return d.nodes }
func (d *Dense) InputLength() int  { return d.inputs }

// inRange reports whether (i, j) addresses the augmented weight matrix.
func (d *Dense) inRange(i, j int) bool {
	return i >= 0 && i <= d.inputs && j >= 0 && j < d.nodes
}

// SetWeight sets the weight from input i to node j. i == InputLength()
// addresses the bias row.
func (d *Dense) SetWeight(i, j int, v float64) {
	if d.inRange(i, j) {
		d.weights[i*d.nodes+j] = v
	}
}

// Weight returns the weight from input i to node j, or 0 out of range.
func (d *Dense) Weight(i, j int) float64 {
	if !d.inRange(i, j) {
		return 0
	}
	return d.weights[i*d.nodes+j]
}

// SetBias sets the bias of node j.
func (d *Dense) SetBias(j int, v float64) {
	d.SetWeight(d.inputs, j, v)
}

// SetWeights replaces the whole (inputs+1)×nodes matrix, row-major.
func (d *Dense) SetWeights(ws []float64) {
	if len(ws) == len(d.weights) {
		copy(d.weights, ws)
	}
}

// SetMask enables (1) or prunes (0) the connection from input i to node j.
// Values other than 0 and 1 are ignored.
func (d *Dense) SetMask(i, j int, v float64) {
	if d.inRange(i, j) && (v == 0 || v == 1) {
		d.masks[i*d.nodes+j] = v
	}
}

// Mask returns the mask entry from input i to node j, or 0 out of range.
func (d *Dense) Mask(i, j int) float64 {
	if !d.inRange(i, j) {
		return 0
	}
	return d.masks[i*d.nodes+j]
}

// SetMasks replaces the whole mask. It is ignored unless every entry is 0 or 1.
func (d *Dense) SetMasks(ms []float64) {
	if len(ms) != len(d.masks) {
		return
	}
	for _, v := range ms {
		if v != 0 && v != 1 {
			return
		}
	}
	copy(d.masks, ms)
}

// SetFunc sets the activation kind of node j and resets its alpha to the
// kind's default.
func (d *Dense) SetFunc(j int, kind activations.Kind) {
	if j >= 0 && j < d.nodes && kind.Valid() {
		d.funcs[j] = activations.Default(kind)
	}
}

// SetAlpha sets the activation parameter of node j.
func (d *Dense) SetAlpha(j int, alpha float64) {
	if j >= 0 && j < d.nodes {
		d.funcs[j].Alpha = alpha
	}
}

// Func returns the activation of node j.
func (d *Dense) Func(j int) activations.Function {
	if j < 0 || j >= d.nodes {
		return activations.Function{}
	}
	return d.funcs[j]
}

// Params returns the weights followed by the mask.
func (d *Dense) Params() []float64 {
	params := make([]float64, 0, len(d.weights)+len(d.masks))
	params = append(params, d.weights...)
	params = append(params, d.masks...)
	return params
}

// SetParams updates weights and mask from a slice laid out like Params.
func (d *Dense) SetParams(params []float64) {
	if len(params) != len(d.weights)+len(d.masks) {
		return
	}
	copy(d.weights, params[:len(d.weights)])
	d.SetMasks(params[len(d.weights):])
}
