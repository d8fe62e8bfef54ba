package layer

import (
	"fmt"
)

// Fill selects how an Upres unit fills positions that have no source sample.
type Fill int

const (
	// FillZero writes 0.
	FillZero Fill = iota
	// FillSame copies the nearest source sample.
	FillSame
	// FillInterp interpolates bilinearly between the four nearest samples.
	FillInterp
)

var fillNames = [...]string{FillZero: "zero", FillSame: "same", FillInterp: "interp"}

func (f Fill) String() string {
	if f < 0 || int(f) >= len(fillNames) {
		return fmt.Sprintf("Fill(%d)", int(f))
	}
	return fillNames[f]
}

// Valid reports whether f is one of the defined fills.
func (f Fill) Valid() bool {
	return f >= 0 && int(f) < len(fillNames)
}

// upresUnit inserts strideH columns and strideV rows between source samples,
// then surrounds the result with padH columns and padV rows on each side.
type upresUnit struct {
	strideH, strideV int
	padH, padV       int
	strideFill       Fill
	padFill          Fill
}

// innerDims is the size of the stride-expanded rectangle.
func (u *upresUnit) innerDims(inW, inH int) (int, int) {
	return inW*(u.strideH+1) - u.strideH, inH*(u.strideV+1) - u.strideV
}

// outDims is the size of the padded output.
func (u *upresUnit) outDims(inW, inH int) (int, int) {
	iw, ih := u.innerDims(inW, inH)
	return iw + 2*u.padH, ih + 2*u.padV
}

func (u *upresUnit) validate() error {
	if u.strideH < 0 || u.strideV < 0 || u.padH < 0 || u.padV < 0 {
		return fmt.Errorf("%w: stride %dx%d, padding %dx%d",
			ErrInvalidShape, u.strideH, u.strideV, u.padH, u.padV)
	}
	return nil
}

// Upres implements a bank of up-resolution transforms, the preparation step
// of a transposed convolution. Each unit expands the input independently and
// its result is appended to the output buffer in unit order.
type Upres struct {
	named

	inputW int
	inputH int

	units     []*upresUnit
	outputBuf []float64
}

// NewUpres creates an up-resolution layer over an inputW×inputH plane with no
// units.
func NewUpres(inputW, inputH int) (*Upres, error) {
	if err := checkPlane("upres", inputW, inputH); err != nil {
		return nil, err
	}
	return &Upres{inputW: inputW, inputH: inputH}, nil
}

// AddUnit appends a unit with stride 1, no padding and zero fill, and
// returns its index.
func (u *Upres) AddUnit() (int, error) {
	u.units = append(u.units, &upresUnit{strideH: 1, strideV: 1})
	u.resize()
	return len(u.units) - 1, nil
}

func (u *Upres) resize() {
	u.outputBuf = make([]float64, u.OutputLength())
}

func (u *Upres) Output() []float64 { return u.outputBuf }
func (u *Upres) InputLength() int  { return u.inputW * u.inputH }

// OutputLength returns the sum of every unit's padded output size.
func (u *Upres) OutputLength() int {
	total := 0
	for _, unit := range u.units {
		ow, oh := unit.outDims(u.inputW, u.inputH)
		total += ow * oh
	}
	return total
}

// InputShape returns the width and height of the input plane.
func (u *Upres) InputShape() (int, int) { return u.inputW, u.inputH }

// Units returns the number of units.
func (u *Upres) Units() int { return len(u.units) }

func (u *Upres) unitAt(i int) *upresUnit {
	if i < 0 || i >= len(u.units) {
		return nil
	}
	return u.units[i]
}

// UnitOutputShape returns the output grid of unit i, or 0, 0 when i is out
// of range.
func (u *Upres) UnitOutputShape(i int) (int, int) {
	unit := u.unitAt(i)
	if unit == nil {
		return 0, 0
	}
	return unit.outDims(u.inputW, u.inputH)
}

// SetStride sets how many columns and rows unit i inserts between samples.
func (u *Upres) SetStride(i, strideH, strideV int) error {
	unit := u.unitAt(i)
	if unit == nil {
		return nil
	}
	next := *unit
	next.strideH, next.strideV = strideH, strideV
	if err := next.validate(); err != nil {
		return fmt.Errorf("upres: unit %d: %w", i, err)
	}
	*unit = next
	u.resize()
	return nil
}

// SetPadding sets the border width and height of unit i.
func (u *Upres) SetPadding(i, padH, padV int) error {
	unit := u.unitAt(i)
	if unit == nil {
		return nil
	}
	next := *unit
	next.padH, next.padV = padH, padV
	if err := next.validate(); err != nil {
		return fmt.Errorf("upres: unit %d: %w", i, err)
	}
	*unit = next
	u.resize()
	return nil
}

// SetStrideFill sets how unit i fills the inserted gaps.
func (u *Upres) SetStrideFill(i int, fill Fill) {
	if unit := u.unitAt(i); unit != nil && fill.Valid() {
		unit.strideFill = fill
	}
}

// SetPaddingFill sets how unit i fills its border.
func (u *Upres) SetPaddingFill(i int, fill Fill) {
	if unit := u.unitAt(i); unit != nil && fill.Valid() {
		unit.padFill = fill
	}
}

// Run expands x through every unit.
func (u *Upres) Run(x []float64) (int, error) {
	if err := checkInput("upres", x, u.inputW*u.inputH); err != nil {
		return 0, err
	}
	off := 0
	for _, unit := range u.units {
		ow, oh := unit.outDims(u.inputW, u.inputH)
		dst := u.outputBuf[off : off+ow*oh]
		unit.expand(x, u.inputW, u.inputH, dst)
		off += ow * oh
	}
	return off, nil
}

// expand writes the unit's output for the inW×inH source into dst.
func (unit *upresUnit) expand(src []float64, inW, inH int, dst []float64) {
	clear(dst)
	iw, ih := unit.innerDims(inW, inH)
	ow, _ := unit.outDims(inW, inH)
	sx, sy := unit.strideH+1, unit.strideV+1

	for y := 0; y < ih; y++ {
		row := dst[(y+unit.padV)*ow+unit.padH:]
		for x := 0; x < iw; x++ {
			if x%sx == 0 && y%sy == 0 {
				row[x] = src[(y/sy)*inW+x/sx]
				continue
			}
			switch unit.strideFill {
			case FillSame:
				row[x] = nearest(src, inW, inH, x, y, sx, sy)
			case FillInterp:
				row[x] = bilinear(src, inW, inH, x, y, sx, sy)
			}
		}
	}

	if unit.padFill == FillZero || (unit.padH == 0 && unit.padV == 0) {
		return
	}

	// Sides of every inner row first, then whole rows outward.
	for y := unit.padV; y < unit.padV+ih; y++ {
		row := dst[y*ow : (y+1)*ow]
		left, right := row[unit.padH], row[unit.padH+iw-1]
		for x := 0; x < unit.padH; x++ {
			row[x] = left
			row[ow-1-x] = right
		}
	}
	top := dst[unit.padV*ow : (unit.padV+1)*ow]
	bottom := dst[(unit.padV+ih-1)*ow : (unit.padV+ih)*ow]
	for y := 0; y < unit.padV; y++ {
		copy(dst[y*ow:(y+1)*ow], top)
		copy(dst[(unit.padV+ih+y)*ow:(unit.padV+ih+y+1)*ow], bottom)
	}
}

// corners maps inner coordinate (x, y) back into source space and returns the
// four neighbouring samples with their bilinear weights, in the order
// own, below, right, below-right.
func corners(src []float64, inW, inH, x, y, sx, sy int) (vals, weights [4]float64) {
	x0, y0 := x/sx, y/sy
	dx := float64(x)/float64(sx) - float64(x0)
	dy := float64(y)/float64(sy) - float64(y0)
	x1, y1 := min(x0+1, inW-1), min(y0+1, inH-1)

	vals = [4]float64{
		src[y0*inW+x0],
		src[y1*inW+x0],
		src[y0*inW+x1],
		src[y1*inW+x1],
	}
	weights = [4]float64{
		(1 - dx) * (1 - dy),
		(1 - dx) * dy,
		dx * (1 - dy),
		dx * dy,
	}
	return vals, weights
}

// nearest returns the neighbour with the largest weight; the first candidate
// wins a tie.
func nearest(src []float64, inW, inH, x, y, sx, sy int) float64 {
	vals, weights := corners(src, inW, inH, x, y, sx, sy)
	best := 0
	for k := 1; k < len(weights); k++ {
		if weights[k] > weights[best] {
			best = k
		}
	}
	return vals[best]
}

func bilinear(src []float64, inW, inH, x, y, sx, sy int) float64 {
	vals, weights := corners(src, inW, inH, x, y, sx, sy)
	sum := 0.0
	for k := range vals {
		sum += vals[k] * weights[k]
	}
	return sum
}
