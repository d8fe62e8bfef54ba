package layer

import "errors"

var (
	// ErrInvalidInput reports an input buffer whose length differs from the
	// length the layer was built for.
	ErrInvalidInput = errors.New("invalid input length")

	// ErrDomain reports arithmetic outside the function's domain, such as a
	// zero standard deviation in a Normal layer.
	ErrDomain = errors.New("domain error")

	// ErrInvalidShape reports a shape, window, stride or padding that would
	// leave a unit with an empty or negative output.
	ErrInvalidShape = errors.New("invalid shape")
)
