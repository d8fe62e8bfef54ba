package layer

import (
	"fmt"

	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/activations"
)

// pool is one pooling window of a Pool2D layer.
type pool struct {
	window
	agg activations.Aggregator
}

// Pool2D implements a bank of valid-mode pooling windows over a
// single-channel input. It has no learned parameters and applies no
// activation.
type Pool2D struct {
	named

	inputW int
	inputH int

	pools     []*pool
	outputBuf []float64
	windowBuf []float64 // scratch copy of the current window
}

// NewPool2D creates a pooling layer over an inputW×inputH plane with no
// windows.
func NewPool2D(inputW, inputH int) (*Pool2D, error) {
	if err := checkPlane("pool2d", inputW, inputH); err != nil {
		return nil, err
	}
	return &Pool2D{inputW: inputW, inputH: inputH}, nil
}

// AddPool appends a w×h MAX window with stride 1 and returns its index.
func (p *Pool2D) AddPool(w, h int) (int, error) {
	win := window{w: w, h: h, strideH: 1, strideV: 1}
	if err := win.validate(p.inputW, p.inputH); err != nil {
		return -1, fmt.Errorf("pool2d: %w", err)
	}
	p.pools = append(p.pools, &pool{window: win, agg: activations.Max})
	if n := w * h; n > len(p.windowBuf) {
		p.windowBuf = make([]float64, n)
	}
	p.resize()
	return len(p.pools) - 1, nil
}

func (p *Pool2D) resize() {
	p.outputBuf = make([]float64, p.OutputLength())
}

// Run reduces every window position of every pool in raster order.
func (p *Pool2D) Run(x []float64) (int, error) {
	if err := checkInput("pool2d", x, p.inputW*p.inputH); err != nil {
		return 0, err
	}

	off := 0
	for _, pl := range p.pools {
		ow, oh := pl.outDims(p.inputW, p.inputH)
		scratch := p.windowBuf[:pl.w*pl.h]
		for oy := 0; oy < oh; oy++ {
			y0 := oy * pl.strideV
			for ox := 0; ox < ow; ox++ {
				x0 := ox * pl.strideH
				// Refill the scratch window; Median sorts it in place.
				for ky := 0; ky < pl.h; ky++ {
					row := (y0+ky)*p.inputW + x0
					copy(scratch[ky*pl.w:(ky+1)*pl.w], x[row:row+pl.w])
				}
				p.outputBuf[off] = pl.agg.Reduce(scratch)
				off++
			}
		}
	}
	return off, nil
}

func (p *Pool2D) Output() []float64 { return p.outputBuf }
func (p *Pool2D) InputLength() int  { return p.inputW * p.inputH }

// OutputLength returns the sum of every pool's output grid size.
func (p *Pool2D) OutputLength() int {
	total := 0
	for _, pl := range p.pools {
		total += pl.outLen(p.inputW, p.inputH)
	}
	return total
}

// InputShape returns the width and height of the input plane.
func (p *Pool2D) InputShape() (int, int) { return p.inputW, p.inputH }

// Pools returns the number of pooling windows.
func (p *Pool2D) Pools() int { return len(p.pools) }

func (p *Pool2D) poolAt(i int) *pool {
	if i < 0 || i >= len(p.pools) {
		return nil
	}
	return p.pools[i]
}

// PoolOutputShape returns the output grid of pool i, or 0, 0 when i is out
// of range.
func (p *Pool2D) PoolOutputShape(i int) (int, int) {
	pl := p.poolAt(i)
	if pl == nil {
		return 0, 0
	}
	return pl.outDims(p.inputW, p.inputH)
}

// SetStride sets the horizontal and vertical stride of pool i.
func (p *Pool2D) SetStride(i, strideH, strideV int) error {
	pl := p.poolAt(i)
	if pl == nil {
		return nil
	}
	win := pl.window
	win.strideH, win.strideV = strideH, strideV
	if err := win.validate(p.inputW, p.inputH); err != nil {
		return fmt.Errorf("pool2d: pool %d: %w", i, err)
	}
	pl.window = win
	p.resize()
	return nil
}

// SetFunc sets the reduction of pool i.
func (p *Pool2D) SetFunc(i int, agg activations.Aggregator) {
	if pl := p.poolAt(i); pl != nil && agg.Valid() {
		pl.agg = agg
	}
}

// Func returns the reduction of pool i.
func (p *Pool2D) Func(i int) activations.Aggregator {
	if pl := p.poolAt(i); pl != nil {
		return pl.agg
	}
	return activations.Max
}
