package layer

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LSTMGate names one of the four LSTM weight sets.
type LSTMGate int

const (
	GateInput LSTMGate = iota
	GateForget
	GateOutput
	GateCell
	lstmGates
)

// LSTM is a Long Short-Term Memory layer advanced one timestep per Run.
//
// It keeps the last `cache` hidden states in a ring and a single cell state.
// The hidden state used as h(t-1) is always the newest column in the ring,
// or zeros before the first step.
type LSTM struct {
	named

	gates gateBank
	cell  []float64
	ring  *stateRing

	timestep  int
	outputBuf []float64
}

// NewLSTM creates an LSTM over `inputs` features with `state` units that
// retains the last `cache` hidden states. All weights start at zero.
func NewLSTM(inputs, state, cache int) (*LSTM, error) {
	if err := checkRecurrent("lstm", inputs, state, cache); err != nil {
		return nil, err
	}
	return &LSTM{
		gates:     newGateBank(int(lstmGates), inputs, state),
		cell:      make([]float64, state),
		ring:      newStateRing(state, cache),
		outputBuf: make([]float64, state),
	}, nil
}

// Run performs one timestep and returns the state length.
func (l *LSTM) Run(x []float64) (int, error) {
	if err := checkInput("lstm", x, l.gates.inputs); err != nil {
		return 0, err
	}
	prev, _ := l.ring.latest()

	ig := l.gates.preact(int(GateInput), x, prev)
	fg := l.gates.preact(int(GateForget), x, prev)
	og := l.gates.preact(int(GateOutput), x, prev)
	cg := l.gates.preact(int(GateCell), x, prev)
	for j := range ig {
		ig[j] = gateSigmoid.Activate(ig[j])
		fg[j] = gateSigmoid.Activate(fg[j])
		og[j] = gateSigmoid.Activate(og[j])
		cg[j] = gateTanh.Activate(cg[j])
	}

	// c = f⊙c + i⊙c̃
	floats.Mul(l.cell, fg)
	floats.Mul(ig, cg)
	floats.Add(l.cell, ig)

	for j, c := range l.cell {
		l.outputBuf[j] = og[j] * math.Tanh(c)
	}
	l.ring.push(l.outputBuf)
	l.timestep++
	return l.gates.state, nil
}

// Reset zeroes the cell state, every retained hidden state and the timestep.
func (l *LSTM) Reset() {
	clear(l.cell)
	clear(l.outputBuf)
	l.ring.reset()
	l.timestep = 0
}

func (l *LSTM) Output() []float64 { return l.outputBuf }
func (l *LSTM) OutputLength() int { return l.gates.state }
func (l *LSTM) InputLength() int  { return l.gates.inputs }

// Timestep returns how many steps have run since construction or Reset.
func (l *LSTM) Timestep() int { return l.timestep }

// Cache returns the ring capacity.
func (l *LSTM) Cache() int { return l.ring.capacity }

// Cell returns a copy of the current cell state.
func (l *LSTM) Cell() []float64 { return append([]float64(nil), l.cell...) }

// Hidden returns a copy of the newest hidden state, zeros before the first step.
func (l *LSTM) Hidden() []float64 {
	h := make([]float64, l.gates.state)
	if last, ok := l.ring.latest(); ok {
		copy(h, last)
	}
	return h
}

// States returns copies of the retained hidden states, oldest first.
func (l *LSTM) States() [][]float64 { return l.ring.snapshot() }

// State returns a copy of the k-th retained hidden state, oldest first, or
// nil when k is out of range.
func (l *LSTM) State(k int) []float64 {
	if col := l.ring.at(k); col != nil {
		return append([]float64(nil), col...)
	}
	return nil
}

// SetW sets input weight (i, j) of gate g; W is state×inputs.
func (l *LSTM) SetW(g LSTMGate, i, j int, v float64) { l.gates.setW(int(g), i, j, v) }

// SetU sets recurrent weight (i, j) of gate g; U is state×state.
func (l *LSTM) SetU(g LSTMGate, i, j int, v float64) { l.gates.setU(int(g), i, j, v) }

// SetB sets bias i of gate g.
func (l *LSTM) SetB(g LSTMGate, i int, v float64) { l.gates.setB(int(g), i, v) }

// SetWs replaces the input weights of gate g, row-major.
func (l *LSTM) SetWs(g LSTMGate, ws []float64) { l.gates.setAll(l.gates.w, int(g), ws) }

// SetUs replaces the recurrent weights of gate g, row-major.
func (l *LSTM) SetUs(g LSTMGate, us []float64) { l.gates.setAll(l.gates.u, int(g), us) }

// SetBs replaces the biases of gate g.
func (l *LSTM) SetBs(g LSTMGate, bs []float64) { l.gates.setAll(l.gates.b, int(g), bs) }

// Ws returns a copy of the input weights of gate g.
func (l *LSTM) Ws(g LSTMGate) []float64 { return l.gates.get(l.gates.w, int(g)) }

// Us returns a copy of the recurrent weights of gate g.
func (l *LSTM) Us(g LSTMGate) []float64 { return l.gates.get(l.gates.u, int(g)) }

// Bs returns a copy of the biases of gate g.
func (l *LSTM) Bs(g LSTMGate) []float64 { return l.gates.get(l.gates.b, int(g)) }

// Params returns every gate's W, then every U, then every b, in gate order
// input, forget, output, cell.
func (l *LSTM) Params() []float64 { return l.gates.params() }

// SetParams updates all gate weights from a slice laid out like Params.
func (l *LSTM) SetParams(params []float64) { l.gates.setParams(params) }
