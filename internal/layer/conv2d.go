package layer

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/activations"
)

// filter is one independent convolution kernel of a Conv2D layer.
type filter struct {
	window
	fn      activations.Function
	weights []float64 // w*h, row-major
	bias    float64
}

// Conv2D implements a bank of valid-mode 2D filters over a single-channel
// input. Each filter's outputs are appended to the output buffer in the order
// the filters were added.
type Conv2D struct {
	named

	inputW int
	inputH int

	filters   []*filter
	outputBuf []float64
}

// NewConv2D creates a convolution layer over an inputW×inputH plane with no
// filters.
func NewConv2D(inputW, inputH int) (*Conv2D, error) {
	if err := checkPlane("conv2d", inputW, inputH); err != nil {
		return nil, err
	}
	return &Conv2D{inputW: inputW, inputH: inputH}, nil
}

// AddFilter appends a w×h filter with stride 1 and ReLU activation and
// returns its index. A non-nil rng draws He-uniform weights and a small bias;
// a nil rng leaves them at zero for a later SetWeights.
func (c *Conv2D) AddFilter(w, h int, rng *rand.Rand) (int, error) {
	win := window{w: w, h: h, strideH: 1, strideV: 1}
	if err := win.validate(c.inputW, c.inputH); err != nil {
		return -1, fmt.Errorf("conv2d: %w", err)
	}

	f := &filter{
		window:  win,
		fn:      activations.Default(activations.ReLU),
		weights: make([]float64, w*h),
	}
	if rng != nil {
		scale := math.Sqrt(2.0 / float64(w*h))
		for i := range f.weights {
			f.weights[i] = rng.Float64()*2*scale - scale
		}
		f.bias = rng.Float64()*0.2 - 0.1
	}

	c.filters = append(c.filters, f)
	c.resize()
	return len(c.filters) - 1, nil
}

// resize reallocates the output buffer for the current filter shapes.
func (c *Conv2D) resize() {
	c.outputBuf = make([]float64, c.OutputLength())
}

// Run convolves every filter over x in raster order.
func (c *Conv2D) Run(x []float64) (int, error) {
	if err := checkInput("conv2d", x, c.inputW*c.inputH); err != nil {
		return 0, err
	}

	off := 0
	for _, f := range c.filters {
		ow, oh := f.outDims(c.inputW, c.inputH)
		raw := c.outputBuf[off : off+ow*oh]

		// First pass: window dot products plus bias.
		k := 0
		for oy := 0; oy < oh; oy++ {
			y0 := oy * f.strideV
			for ox := 0; ox < ow; ox++ {
				x0 := ox * f.strideH
				sum := f.bias
				for ky := 0; ky < f.h; ky++ {
					row := (y0+ky)*c.inputW + x0
					sum += floats.Dot(f.weights[ky*f.w:(ky+1)*f.w], x[row:row+f.w])
				}
				raw[k] = sum
				k++
			}
		}

		// Second pass: activation, with softmax normalised over this filter.
		var norm activations.Norm
		if f.fn.Kind == activations.Softmax {
			norm = activations.SoftmaxNorm(raw)
		}
		for i, v := range raw {
			raw[i] = f.fn.Apply(v, norm)
		}
		off += ow * oh
	}
	return off, nil
}

func (c *Conv2D) Output() []float64 { return c.outputBuf }
func (c *Conv2D) InputLength() int  { return c.inputW * c.inputH }

// OutputLength returns the sum of every filter's output grid size.
func (c *Conv2D) OutputLength() int {
	total := 0
	for _, f := range c.filters {
		total += f.outLen(c.inputW, c.inputH)
	}
	return total
}

// InputShape returns the width and height of the input plane.
func (c *Conv2D) InputShape() (int, int) { return c.inputW, c.inputH }

// Filters returns the number of filters.
func (c *Conv2D) Filters() int { return len(c.filters) }

func (c *Conv2D) filterAt(i int) *filter {
	if i < 0 || i >= len(c.filters) {
		return nil
	}
	return c.filters[i]
}

// FilterOutputShape returns the output grid of filter i, or 0, 0 when i is
// out of range.
func (c *Conv2D) FilterOutputShape(i int) (int, int) {
	f := c.filterAt(i)
	if f == nil {
		return 0, 0
	}
	return f.outDims(c.inputW, c.inputH)
}

// SetStride sets the horizontal and vertical stride of filter i.
func (c *Conv2D) SetStride(i, strideH, strideV int) error {
	f := c.filterAt(i)
	if f == nil {
		return nil
	}
	win := f.window
	win.strideH, win.strideV = strideH, strideV
	if err := win.validate(c.inputW, c.inputH); err != nil {
		return fmt.Errorf("conv2d: filter %d: %w", i, err)
	}
	f.window = win
	c.resize()
	return nil
}

// SetFunc sets the activation kind of filter i, with the kind's default alpha.
func (c *Conv2D) SetFunc(i int, kind activations.Kind) {
	if f := c.filterAt(i); f != nil && kind.Valid() {
		f.fn = activations.Default(kind)
	}
}

// SetAlpha sets the activation parameter of filter i.
func (c *Conv2D) SetAlpha(i int, alpha float64) {
	if f := c.filterAt(i); f != nil {
		f.fn.Alpha = alpha
	}
}

// SetWeights replaces the w×h kernel of filter i, row-major.
func (c *Conv2D) SetWeights(i int, ws []float64) {
	if f := c.filterAt(i); f != nil && len(ws) == len(f.weights) {
		copy(f.weights, ws)
	}
}

// SetWeight sets the kernel entry at column x, row y of filter i.
func (c *Conv2D) SetWeight(i, x, y int, v float64) {
	f := c.filterAt(i)
	if f == nil || x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	f.weights[y*f.w+x] = v
}

// SetBias sets the bias of filter i.
func (c *Conv2D) SetBias(i int, v float64) {
	if f := c.filterAt(i); f != nil {
		f.bias = v
	}
}

// Weights returns a copy of the kernel of filter i.
func (c *Conv2D) Weights(i int) []float64 {
	f := c.filterAt(i)
	if f == nil {
		return nil
	}
	return append([]float64(nil), f.weights...)
}

// Bias returns the bias of filter i.
func (c *Conv2D) Bias(i int) float64 {
	if f := c.filterAt(i); f != nil {
		return f.bias
	}
	return 0
}

// Params returns each filter's kernel followed by its bias, in filter order.
func (c *Conv2D) Params() []float64 {
	var params []float64
	for _, f := range c.filters {
		params = append(params, f.weights...)
		params = append(params, f.bias)
	}
	return params
}

// SetParams updates every kernel and bias from a slice laid out like Params.
func (c *Conv2D) SetParams(params []float64) {
	total := 0
	for _, f := range c.filters {
		total += len(f.weights) + 1
	}
	if len(params) != total {
		return
	}
	off := 0
	for _, f := range c.filters {
		copy(f.weights, params[off:off+len(f.weights)])
		off += len(f.weights)
		f.bias = params[off]
		off++
	}
}
