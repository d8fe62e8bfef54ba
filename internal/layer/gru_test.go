package layer

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestGRUScalarSteps(t *testing.T) {
	g, err := NewGRU(1, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	w := map[GRUGate][3]float64{ // W, U, b
		GateUpdate: {0.4, -0.2, 0.1},
		GateReset:  {-0.7, 0.5, 0.3},
		GateHidden: {1.1, 0.9, -0.2},
	}
	for gate, p := range w {
		g.SetW(gate, 0, 0, p[0])
		g.SetU(gate, 0, 0, p[1])
		g.SetB(gate, 0, p[2])
	}

	h := 0.0
	for step, x := range []float64{0.5, 1.5, -1.0, 0.25} {
		z := sigmoid(w[GateUpdate][0]*x + w[GateUpdate][1]*h + w[GateUpdate][2])
		r := sigmoid(w[GateReset][0]*x + w[GateReset][1]*h + w[GateReset][2])
		cand := math.Tanh(w[GateHidden][0]*x + w[GateHidden][1]*(r*h) + w[GateHidden][2])
		h = z*h + (1-z)*cand

		n, err := g.Run([]float64{x})
		if err != nil || n != 1 {
			t.Fatalf("step %d: Run = %d, %v", step, n, err)
		}
		assertClose(t, "hidden", g.Output(), []float64{h}, 1e-12)
	}
}

func TestGRURingRetention(t *testing.T) {
	const cache, k = 3, 5
	rng := rand.New(rand.NewSource(33))
	g, _ := NewGRU(3, 4, cache)
	randomize(g, rng)

	var outputs [][]float64
	for step := 0; step < cache+k; step++ {
		x := []float64{rng.Float64(), rng.Float64() - 1, rng.Float64()}
		if _, err := g.Run(x); err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, append([]float64(nil), g.Output()...))
	}

	states := g.States()
	if len(states) != cache {
		t.Fatalf("len(States) = %d, want %d", len(states), cache)
	}
	for i := range states {
		assertClose(t, "state", states[i], outputs[k+i], 0)
	}
}

// TestGRUSingleColumnCache covers the case where h(t-1) and the write target
// share one ring column.
func TestGRUSingleColumnCache(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	one, _ := NewGRU(2, 3, 1)
	randomize(one, rng)
	many, _ := NewGRU(2, 3, 8)
	many.SetParams(one.Params())

	for step := 0; step < 6; step++ {
		x := []float64{float64(step) * 0.1, 1 - float64(step)*0.2}
		one.Run(x)
		many.Run(x)
		assertClose(t, "output", one.Output(), many.Output(), 0)
	}
	if got := len(one.States()); got != 1 {
		t.Errorf("len(States) = %d, want 1", got)
	}
}

func TestGRUResetMatchesFresh(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	used, _ := NewGRU(2, 2, 2)
	randomize(used, rng)
	fresh, _ := NewGRU(2, 2, 2)
	fresh.SetParams(used.Params())

	seq := [][]float64{{1, -1}, {0.2, 0.4}, {3, 0}}
	for _, x := range seq {
		used.Run(x)
	}
	used.Reset()
	assertClose(t, "hidden", used.Hidden(), []float64{0, 0}, 0)

	for _, x := range seq {
		used.Run(x)
		fresh.Run(x)
		assertClose(t, "output", used.Output(), fresh.Output(), 0)
	}
}

func TestGRUParams(t *testing.T) {
	g, _ := NewGRU(4, 8, 2)
	// W: 3*8*4, U: 3*8*8, b: 3*8
	expectedLen := 3*8*4 + 3*8*8 + 3*8
	params := g.Params()
	if len(params) != expectedLen {
		t.Fatalf("len(Params) = %d, want %d", len(params), expectedLen)
	}
	for i := range params {
		params[i] = float64(i + 10)
	}
	g.SetParams(params)
	assertClose(t, "params", g.Params(), params, 0)
	if got := g.Bs(GateHidden)[7]; got != float64(expectedLen-1+10) {
		t.Errorf("last hidden bias = %v, want %v", got, expectedLen-1+10)
	}
}

func TestGRUInvalidInput(t *testing.T) {
	g, _ := NewGRU(3, 2, 2)
	if _, err := g.Run([]float64{1, 2, 3, 4}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Run(long) err = %v, want ErrInvalidInput", err)
	}
	if _, err := NewGRU(0, 2, 2); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("NewGRU(0, 2, 2) err = %v, want ErrInvalidShape", err)
	}
}
