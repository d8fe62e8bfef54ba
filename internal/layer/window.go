package layer

import "fmt"

// window is the footprint of a sliding 2D unit: its size and the distance
// between consecutive origins along each axis.
type window struct {
	w, h             int
	strideH, strideV int
}

// outDims returns how many valid-mode origins fit across and down an
// inW×inH input when walking in raster order.
func (win window) outDims(inW, inH int) (int, int) {
	if win.w < 1 || win.h < 1 || win.strideH < 1 || win.strideV < 1 {
		return 0, 0
	}
	if win.w > inW || win.h > inH {
		return 0, 0
	}
	return (inW-win.w)/win.strideH + 1, (inH-win.h)/win.strideV + 1
}

func (win window) outLen(inW, inH int) int {
	ow, oh := win.outDims(inW, inH)
	return ow * oh
}

// validate rejects windows that produce no output on an inW×inH input.
func (win window) validate(inW, inH int) error {
	if win.outLen(inW, inH) <= 0 {
		return fmt.Errorf("%w: %dx%d window with stride %dx%d on %dx%d input",
			ErrInvalidShape, win.w, win.h, win.strideH, win.strideV, inW, inH)
	}
	return nil
}

// checkPlane rejects 2D input shapes with a non-positive side.
func checkPlane(kind string, inW, inH int) error {
	if inW < 1 || inH < 1 {
		return fmt.Errorf("%s: %w: input %dx%d", kind, ErrInvalidShape, inW, inH)
	}
	return nil
}
