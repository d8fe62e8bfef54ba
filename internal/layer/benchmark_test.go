// Package layer provides benchmarks for neural network layer implementations.
package layer

import (
	"math/rand"
	"testing"

	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/activations"
)

// fillRandom fills a slice with random values.
func fillRandom(rng *rand.Rand, slice []float64) {
	for i := range slice {
		slice[i] = rng.Float64()
	}
}

// BenchmarkDenseRun benchmarks the forward pass of a dense layer.
func BenchmarkDenseRun(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	layer, _ := NewDense(784, 256)
	ws := make([]float64, 785*256)
	fillRandom(rng, ws)
	layer.SetWeights(ws)
	input := make([]float64, 784)
	fillRandom(rng, input)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Run(input)
	}
}

// BenchmarkDenseSoftmax benchmarks a dense layer with softmax on every node.
func BenchmarkDenseSoftmax(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	layer, _ := NewDense(128, 10)
	for j := 0; j < 10; j++ {
		layer.SetFunc(j, activations.Softmax)
	}
	input := make([]float64, 128)
	fillRandom(rng, input)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Run(input)
	}
}

// BenchmarkConv2DRun benchmarks a bank of 3×3 filters over a 28×28 plane.
func BenchmarkConv2DRun(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	layer, _ := NewConv2D(28, 28)
	for f := 0; f < 8; f++ {
		layer.AddFilter(3, 3, rng)
	}
	input := make([]float64, 28*28)
	fillRandom(rng, input)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Run(input)
	}
}

// BenchmarkPool2DMedian benchmarks median pooling, the only sorting reduction.
func BenchmarkPool2DMedian(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	layer, _ := NewPool2D(28, 28)
	layer.AddPool(3, 3)
	layer.SetFunc(0, activations.Median)
	input := make([]float64, 28*28)
	fillRandom(rng, input)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Run(input)
	}
}

// BenchmarkUpresInterp benchmarks bilinear up-resolution with padding.
func BenchmarkUpresInterp(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	layer, _ := NewUpres(16, 16)
	layer.AddUnit()
	layer.SetPadding(0, 1, 1)
	layer.SetStrideFill(0, FillInterp)
	layer.SetPaddingFill(0, FillSame)
	input := make([]float64, 16*16)
	fillRandom(rng, input)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Run(input)
	}
}

// BenchmarkLSTMRun benchmarks one LSTM timestep.
func BenchmarkLSTMRun(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	layer, _ := NewLSTM(64, 128, 8)
	randomize(layer, rng)
	input := make([]float64, 64)
	fillRandom(rng, input)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Run(input)
	}
}

// BenchmarkGRURun benchmarks one GRU timestep.
func BenchmarkGRURun(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	layer, _ := NewGRU(64, 128, 8)
	randomize(layer, rng)
	input := make([]float64, 64)
	fillRandom(rng, input)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Run(input)
	}
}

// BenchmarkLSTMParams benchmarks flattening and restoring LSTM weights.
func BenchmarkLSTMParams(b *testing.B) {
	layer, _ := NewLSTM(64, 128, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.SetParams(layer.Params())
	}
}
