// Package activations provides the activation and window-aggregation functions
// applied by the inference layers.
package activations

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Kind selects an activation function.
type Kind int

const (
	ReLU Kind = iota
	LeakyReLU
	Sigmoid
	Tanh
	Softmax
	SymmetricSigmoid
	Threshold
	Linear
)

var kindNames = [...]string{
	ReLU:             "relu",
	LeakyReLU:        "leaky_relu",
	Sigmoid:          "sigmoid",
	Tanh:             "tanh",
	Softmax:          "softmax",
	SymmetricSigmoid: "symmetric_sigmoid",
	Threshold:        "threshold",
	Linear:           "linear",
}

// String returns the export name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// ParseKind maps an export name such as "leaky_relu" back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("activations: unknown function %q", name)
}

// Function is an activation kind together with its scalar parameter.
type Function struct {
	Kind  Kind
	Alpha float64
}

// Default returns the function of the given kind with its usual parameter.
// LeakyReLU uses a slope of 0.01, Threshold a cut-off of 0 and every other
// kind a scale of 1.
func Default(kind Kind) Function {
	switch kind {
	case LeakyReLU:
		return Function{Kind: kind, Alpha: 0.01}
	case Threshold:
		return Function{Kind: kind, Alpha: 0}
	default:
		return Function{Kind: kind, Alpha: 1}
	}
}

// Norm is the softmax normaliser of one layer call: the largest raw value
// among the softmax units and the sum of exp(v - Max) over them.
type Norm struct {
	Max float64
	Sum float64
}

// SoftmaxNorm computes the normaliser over every value in raw.
func SoftmaxNorm(raw []float64) Norm {
	if len(raw) == 0 {
		return Norm{Sum: 1}
	}
	n := Norm{Max: floats.Max(raw)}
	for _, v := range raw {
		n.Sum += math.Exp(v - n.Max)
	}
	return n
}

// SoftmaxNormWhere computes the normaliser over the raw values whose unit
// uses the Softmax kind. fns[i] is the function of raw[i].
func SoftmaxNormWhere(raw []float64, fns []Function) Norm {
	n := Norm{Max: math.Inf(-1)}
	found := false
	for i, v := range raw {
		if fns[i].Kind == Softmax && v > n.Max {
			n.Max = v
			found = true
		}
	}
	if !found {
		return Norm{Sum: 1}
	}
	for i, v := range raw {
		if fns[i].Kind == Softmax {
			n.Sum += math.Exp(v - n.Max)
		}
	}
	return n
}

// Apply evaluates the function at v. The normaliser is only read by Softmax.
func (f Function) Apply(v float64, norm Norm) float64 {
	a := f.Alpha
	switch f.Kind {
	case ReLU:
		if v > 0 {
			return v
		}
		return 0
	case LeakyReLU:
		if v >= 0 {
			return v
		}
		return a * v
	case Sigmoid:
		return 1 / (1 + math.Exp(-a*v))
	case Tanh:
		// 2/(1+exp(-2av)) - 1, which saturates cleanly through math.Tanh.
		return math.Tanh(a * v)
	case Softmax:
		return math.Exp(v-norm.Max) / norm.Sum
	case SymmetricSigmoid:
		// (1-exp(-av))/(1+exp(-av)) == tanh(av/2); the quotient form is NaN at ±Inf.
		return math.Tanh(a * v / 2)
	case Threshold:
		if v > a {
			return 1
		}
		return 0
	case Linear:
		return a * v
	}
	return v
}

// Activate evaluates the function at v on its own. Softmax over a single
// value is always 1.
func (f Function) Activate(v float64) float64 {
	return f.Apply(v, Norm{Max: v, Sum: 1})
}
