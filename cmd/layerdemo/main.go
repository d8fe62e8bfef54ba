// Package main runs seeded demo networks built from the inference layers.
//
//	go run ./cmd/layerdemo -seed 7 -cache 4 -csv series.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/activations"
	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/layer"
	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/net"
)

func main() {
	seed := flag.Int64("seed", 42, "seed for the generated weights")
	cache := flag.Int("cache", 4, "hidden states kept by each recurrent layer")
	csvPath := flag.String("csv", "", "optional CSV of numeric rows fed one row per timestep")
	header := flag.Bool("header", false, "skip the first CSV row")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	fmt.Println("=============================================================")
	fmt.Println("  GoNeuronInfer - Layer Demo")
	fmt.Println("=============================================================")
	fmt.Println()

	fmt.Println("--- Image chain: Conv2D -> Pool2D -> Upres -> Normal -> Dense ---")
	if err := imageChain(rng); err != nil {
		log.Fatal("Error running image chain:", err)
	}
	fmt.Println()

	fmt.Println("--- Sequence chain: LSTM -> GRU -> Dense ---")
	seq := sineSequence(12)
	if *csvPath != "" {
		dataset, err := net.LoadCSV(*csvPath, nil, *header)
		if err != nil {
			log.Fatal("Error loading CSV:", err)
		}
		dataset.Normalize()
		seq = dataset.Samples
	}
	if err := sequenceChain(rng, seq, *cache); err != nil {
		log.Fatal("Error running sequence chain:", err)
	}
}

// imageChain classifies an 8×8 diagonal stripe into three classes.
func imageChain(rng *rand.Rand) error {
	conv, err := layer.NewConv2D(8, 8)
	if err != nil {
		return err
	}
	conv.SetName("conv")
	if _, err := conv.AddFilter(3, 3, rng); err != nil {
		return err
	}

	pool, err := layer.NewPool2D(6, 6)
	if err != nil {
		return err
	}
	pool.SetName("pool")
	pool.AddPool(2, 2)
	if err := pool.SetStride(0, 2, 2); err != nil {
		return err
	}

	up, err := layer.NewUpres(3, 3)
	if err != nil {
		return err
	}
	up.SetName("upres")
	up.AddUnit()
	up.SetStrideFill(0, layer.FillInterp)

	norm, err := layer.NewNormal(up.OutputLength())
	if err != nil {
		return err
	}
	norm.SetName("normal")
	norm.SetStd(2)

	head, err := layer.NewDense(norm.OutputLength(), 3)
	if err != nil {
		return err
	}
	head.SetName("classes")
	ws := make([]float64, (norm.OutputLength()+1)*3)
	for i := range ws {
		ws[i] = rng.NormFloat64() * 0.3
	}
	head.SetWeights(ws)
	for j := 0; j < 3; j++ {
		head.SetFunc(j, activations.Softmax)
	}

	model, err := net.NewSequential(conv, pool, up, norm, head)
	if err != nil {
		return err
	}
	model.Summary(os.Stdout)

	img := make([]float64, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x == y || x == y+1 {
				img[y*8+x] = 1
			}
		}
	}
	probs, err := model.Predict(img)
	if err != nil {
		return err
	}
	log.Printf("class probabilities: %.4f", probs)
	return nil
}

// sequenceChain steps a stacked LSTM and GRU through seq.
func sequenceChain(rng *rand.Rand, seq [][]float64, cache int) error {
	if len(seq) == 0 {
		return fmt.Errorf("empty sequence")
	}
	lstm, err := layer.NewLSTM(len(seq[0]), 6, cache)
	if err != nil {
		return err
	}
	lstm.SetName("lstm")
	gru, err := layer.NewGRU(6, 4, cache)
	if err != nil {
		return err
	}
	gru.SetName("gru")
	head, err := layer.NewDense(4, 1)
	if err != nil {
		return err
	}
	head.SetName("forecast")
	head.SetFunc(0, activations.Linear)

	model, err := net.NewSequential(lstm, gru, head)
	if err != nil {
		return err
	}
	// Dense masks are part of Params, so keep them at 1.
	params := model.Params()
	maskStart := len(params) - 5
	for i := 0; i < maskStart; i++ {
		params[i] = rng.Float64() - 0.5
	}
	if err := model.SetParams(params); err != nil {
		return err
	}
	model.Summary(os.Stdout)

	outs, err := model.PredictSequence(seq)
	if err != nil {
		return err
	}
	for t, out := range outs {
		log.Printf("t=%-3d input=%.3f output=%.4f", t, seq[t], out[0])
	}
	log.Printf("lstm timestep %d, %d of %d states cached", lstm.Timestep(), len(lstm.States()), lstm.Cache())
	log.Printf("gru newest state %.4f", gru.Hidden())
	return nil
}

// sineSequence returns n one-feature samples of a sine wave in [0, 1].
func sineSequence(n int) [][]float64 {
	seq := make([][]float64, n)
	for t := range seq {
		seq[t] = []float64{0.5 + 0.5*math.Sin(float64(t)*math.Pi/6)}
	}
	return seq
}
