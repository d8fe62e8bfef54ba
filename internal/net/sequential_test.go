package net

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/activations"
	"github.com/FlavioCFOliveira/GoNeuronInfer/internal/layer"
)

// newLinearDense returns a dense layer with linear activations and the given
// (inputs+1)×nodes weights.
func newLinearDense(t *testing.T, inputs, nodes int, ws []float64) *layer.Dense {
	t.Helper()
	d, err := layer.NewDense(inputs, nodes)
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < nodes; j++ {
		d.SetFunc(j, activations.Linear)
	}
	d.SetWeights(ws)
	return d
}

func TestSequentialAPI(t *testing.T) {
	// x -> [x0+x1, x0-x1] -> (y0+y1)/2 = x0
	first := newLinearDense(t, 2, 2, []float64{1, 1, 1, -1, 0, 0})
	first.SetName("mix")
	second := newLinearDense(t, 2, 1, []float64{0.5, 0.5, 0})
	second.SetName("unmix")

	model, err := NewSequential(first, second)
	if err != nil {
		t.Fatalf("NewSequential failed: %v", err)
	}
	if len(model.Layers()) != 2 {
		t.Errorf("Expected 2 layers, got %d", len(model.Layers()))
	}

	pred, err := model.Predict([]float64{3, -1})
	if err != nil {
		t.Fatal(err)
	}
	if len(pred) != 1 || math.Abs(pred[0]-3) > 1e-12 {
		t.Errorf("Predict = %v, want [3]", pred)
	}

	// Predict returns a copy.
	pred[0] = 100
	if second.Output()[0] == 100 {
		t.Error("Predict returned the layer's own buffer")
	}

	if model.Layer("unmix") != second {
		t.Error("Layer(\"unmix\") did not return the second layer")
	}
	if model.Layer("absent") != nil {
		t.Error("Layer(\"absent\") should be nil")
	}

	if _, err := model.Predict([]float64{1}); !errors.Is(err, layer.ErrInvalidInput) {
		t.Errorf("Predict(short) err = %v, want ErrInvalidInput", err)
	}
}

func TestSequentialShapeMismatch(t *testing.T) {
	a, _ := layer.NewDense(3, 4)
	b, _ := layer.NewDense(5, 1)
	if _, err := NewSequential(a, b); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("NewSequential err = %v, want ErrShapeMismatch", err)
	}

	n, _ := New(a)
	if err := n.Add(b); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Add err = %v, want ErrShapeMismatch", err)
	}
	if len(n.Layers()) != 1 {
		t.Errorf("rejected layer was appended")
	}
}

func TestSequentialRecurrentReset(t *testing.T) {
	lstm, _ := layer.NewLSTM(1, 2, 3)
	params := lstm.Params()
	for i := range params {
		params[i] = 0.1 * float64(i%7-3)
	}
	lstm.SetParams(params)
	head := newLinearDense(t, 2, 1, []float64{1, 1, 0})

	model, err := NewSequential(lstm, head)
	if err != nil {
		t.Fatal(err)
	}

	seq := [][]float64{{1}, {0.5}, {-1}}
	first, err := model.PredictSequence(seq)
	if err != nil {
		t.Fatal(err)
	}
	if lstm.Timestep() != 3 {
		t.Errorf("Timestep = %d, want 3", lstm.Timestep())
	}

	model.Reset()
	if lstm.Timestep() != 0 {
		t.Errorf("Timestep after Reset = %d, want 0", lstm.Timestep())
	}
	second, _ := model.PredictSequence(seq)
	for i := range first {
		if first[i][0] != second[i][0] {
			t.Errorf("step %d: %v after Reset, want %v", i, second[i][0], first[i][0])
		}
	}
}

func TestNetworkParams(t *testing.T) {
	d1, _ := layer.NewDense(2, 3)
	norm, _ := layer.NewNormal(3)
	acc, _ := layer.NewAccum(3)
	n, err := New(d1, norm, acc)
	if err != nil {
		t.Fatal(err)
	}

	params := n.Params()
	if want := 2*3*3 + 4; len(params) != want {
		t.Fatalf("len(Params) = %d, want %d", len(params), want)
	}
	params[0] = 7
	params[len(params)-1] = 2 // Normal bias
	if err := n.SetParams(params); err != nil {
		t.Fatal(err)
	}
	if d1.Weight(0, 0) != 7 {
		t.Errorf("dense weight = %v, want 7", d1.Weight(0, 0))
	}
	if norm.Bias() != 2 {
		t.Errorf("normal bias = %v, want 2", norm.Bias())
	}

	if err := n.SetParams(params[:3]); !errors.Is(err, layer.ErrInvalidInput) {
		t.Errorf("SetParams(short) err = %v, want ErrInvalidInput", err)
	}
}

func TestSequentialSummary(t *testing.T) {
	d, _ := layer.NewDense(4, 2)
	d.SetName("head")
	acc, _ := layer.NewAccum(2)
	model, _ := NewSequential(d, acc)

	var buf bytes.Buffer
	model.Summary(&buf)
	out := buf.String()
	for _, want := range []string{"head (Dense)", "Accum_1 (Accum)", "Total params: 20"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q:\n%s", want, out)
		}
	}
}
