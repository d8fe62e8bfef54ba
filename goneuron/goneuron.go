package goneuron

import (
	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/activations"
	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/layer"
	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/net"
)

// Re-export common types and functions for easier access
type (
	Model         = net.Sequential
	Network       = net.Network
	Dataset       = net.Dataset
	Layer         = layer.Layer
	Recurrent     = layer.Recurrent
	Parameterized = layer.Parameterized

	Kind       = activations.Kind
	Function   = activations.Function
	Aggregator = activations.Aggregator
	Fill       = layer.Fill

	DenseLayer  = layer.Dense
	Conv2DLayer = layer.Conv2D
	Pool2DLayer = layer.Pool2D
	UpresLayer  = layer.Upres
	LSTMLayer   = layer.LSTM
	GRULayer    = layer.GRU
	NormalLayer = layer.Normal
	AccumLayer  = layer.Accum

	LSTMGate = layer.LSTMGate
	GRUGate  = layer.GRUGate
)

// Errors
var (
	ErrInvalidInput  = layer.ErrInvalidInput
	ErrDomain        = layer.ErrDomain
	ErrInvalidShape  = layer.ErrInvalidShape
	ErrShapeMismatch = net.ErrShapeMismatch
)

// Model creation
func NewSequential(layers ...Layer) (*Model, error) {
	return net.NewSequential(layers...)
}

func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	return net.LoadCSV(filename, labelCols, hasHeader)
}

// Activations
const (
	ReLU             = activations.ReLU
	LeakyReLU        = activations.LeakyReLU
	Sigmoid          = activations.Sigmoid
	Tanh             = activations.Tanh
	Softmax          = activations.Softmax
	SymmetricSigmoid = activations.SymmetricSigmoid
	Threshold        = activations.Threshold
	Linear           = activations.Linear
)

// Pooling reductions
const (
	Max     = activations.Max
	Min     = activations.Min
	Average = activations.Average
	Median  = activations.Median
)

// Upres fills
const (
	FillZero   = layer.FillZero
	FillSame   = layer.FillSame
	FillInterp = layer.FillInterp
)

// Recurrent gates
const (
	GateInput  = layer.GateInput
	GateForget = layer.GateForget
	GateOutput = layer.GateOutput
	GateCell   = layer.GateCell

	GateUpdate = layer.GateUpdate
	GateReset  = layer.GateReset
	GateHidden = layer.GateHidden
)

func ParseKind(name string) (Kind, error) {
	return activations.ParseKind(name)
}

func ParseAggregator(name string) (Aggregator, error) {
	return activations.ParseAggregator(name)
}

// Layers
func Dense(inputs, nodes int) (*DenseLayer, error) {
	return layer.NewDense(inputs, nodes)
}

func Conv2D(inputW, inputH int) (*Conv2DLayer, error) {
	return layer.NewConv2D(inputW, inputH)
}

func Pool2D(inputW, inputH int) (*Pool2DLayer, error) {
	return layer.NewPool2D(inputW, inputH)
}

func Upres(inputW, inputH int) (*UpresLayer, error) {
	return layer.NewUpres(inputW, inputH)
}

func LSTM(inputs, state, cache int) (*LSTMLayer, error) {
	return layer.NewLSTM(inputs, state, cache)
}

func GRU(inputs, state, cache int) (*GRULayer, error) {
	return layer.NewGRU(inputs, state, cache)
}

func Normal(inputs int) (*NormalLayer, error) {
	return layer.NewNormal(inputs)
}

func Accum(inputs int) (*AccumLayer, error) {
	return layer.NewAccum(inputs)
}
