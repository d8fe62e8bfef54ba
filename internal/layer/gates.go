package layer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// gateBank holds the weights of a recurrent layer's gates. For gate g,
// w[g] is state×inputs and u[g] is state×state, both row-major, and b[g] has
// state entries.
type gateBank struct {
	inputs int
	state  int

	w [][]float64
	u [][]float64
	b [][]float64

	pre [][]float64 // per-gate pre-activations of the current step
}

func newGateBank(gates, inputs, state int) gateBank {
	g := gateBank{
		inputs: inputs,
		state:  state,
		w:      make([][]float64, gates),
		u:      make([][]float64, gates),
		b:      make([][]float64, gates),
		pre:    make([][]float64, gates),
	}
	for k := 0; k < gates; k++ {
		g.w[k] = make([]float64, state*inputs)
		g.u[k] = make([]float64, state*state)
		g.b[k] = make([]float64, state)
		g.pre[k] = make([]float64, state)
	}
	return g
}

// checkRecurrent validates recurrent layer dimensions.
func checkRecurrent(kind string, inputs, state, cache int) error {
	if inputs < 1 || state < 1 || cache < 1 {
		return fmt.Errorf("%s: %w: %d inputs, %d state, cache %d", kind, ErrInvalidShape, inputs, state, cache)
	}
	return nil
}

// preact computes pre[gate] = W·x + U·h + b. A nil h is the zero state.
func (g *gateBank) preact(gate int, x, h []float64) []float64 {
	pre := g.pre[gate]
	copy(pre, g.b[gate])
	if g.inputs == 1 {
		floats.AddScaled(pre, x[0], g.w[gate])
	} else {
		matVecAdd(g.state, g.inputs, g.w[gate], x, pre)
	}
	if h != nil {
		matVecAdd(g.state, g.state, g.u[gate], h, pre)
	}
	return pre
}

func (g *gateBank) valid(gate int) bool {
	return gate >= 0 && gate < len(g.w)
}

func (g *gateBank) setW(gate, i, j int, v float64) {
	if g.valid(gate) && i >= 0 && i < g.state && j >= 0 && j < g.inputs {
		g.w[gate][i*g.inputs+j] = v
	}
}

func (g *gateBank) setU(gate, i, j int, v float64) {
	if g.valid(gate) && i >= 0 && i < g.state && j >= 0 && j < g.state {
		g.u[gate][i*g.state+j] = v
	}
}

func (g *gateBank) setB(gate, i int, v float64) {
	if g.valid(gate) && i >= 0 && i < g.state {
		g.b[gate][i] = v
	}
}

// setAll copies vals into dst[gate] when the lengths agree.
func (g *gateBank) setAll(dst [][]float64, gate int, vals []float64) {
	if g.valid(gate) && len(vals) == len(dst[gate]) {
		copy(dst[gate], vals)
	}
}

func (g *gateBank) get(src [][]float64, gate int) []float64 {
	if !g.valid(gate) {
		return nil
	}
	return append([]float64(nil), src[gate]...)
}

func (g *gateBank) size() int {
	n := len(g.w)
	return n * (g.state*g.inputs + g.state*g.state + g.state)
}

// params flattens every W in gate order, then every U, then every b.
func (g *gateBank) params() []float64 {
	params := make([]float64, 0, g.size())
	for _, group := range [][][]float64{g.w, g.u, g.b} {
		for _, m := range group {
			params = append(params, m...)
		}
	}
	return params
}

func (g *gateBank) setParams(params []float64) {
	if len(params) != g.size() {
		return
	}
	off := 0
	for _, group := range [][][]float64{g.w, g.u, g.b} {
		for _, m := range group {
			copy(m, params[off:off+len(m)])
			off += len(m)
		}
	}
}
