package layer

// GRUGate names one of the three GRU weight sets.
type GRUGate int

const (
	GateUpdate GRUGate = iota
	GateReset
	GateHidden
	gruGates
)

// GRU implements a Gated Recurrent Unit layer advanced one timestep per Run.
// Like LSTM it keeps the last `cache` hidden states in a ring, but it has no
// separate cell state.
type GRU struct {
	named

	gates gateBank
	ring  *stateRing

	resetBuf  []float64 // r ⊙ h(t-1)
	timestep  int
	outputBuf []float64
}

// NewGRU creates a GRU over `inputs` features with `state` units that retains
// the last `cache` hidden states. All weights start at zero.
func NewGRU(inputs, state, cache int) (*GRU, error) {
	if err := checkRecurrent("gru", inputs, state, cache); err != nil {
		return nil, err
	}
	return &GRU{
		gates:     newGateBank(int(gruGates), inputs, state),
		ring:      newStateRing(state, cache),
		resetBuf:  make([]float64, state),
		outputBuf: make([]float64, state),
	}, nil
}

// Run performs one timestep and returns the state length.
func (g *GRU) Run(x []float64) (int, error) {
	if err := checkInput("gru", x, g.gates.inputs); err != nil {
		return 0, err
	}
	prev, ok := g.ring.latest()

	z := g.gates.preact(int(GateUpdate), x, prev)
	r := g.gates.preact(int(GateReset), x, prev)
	for j := range z {
		z[j] = gateSigmoid.Activate(z[j])
		r[j] = gateSigmoid.Activate(r[j])
	}

	var rh []float64
	if ok {
		rh = g.resetBuf
		for j := range rh {
			rh[j] = r[j] * prev[j]
		}
	}
	cand := g.gates.preact(int(GateHidden), x, rh)

	// h = z⊙h(t-1) + (1-z)⊙h̃; prev may alias the column about to be
	// overwritten, so the result goes to outputBuf before the push.
	for j := range cand {
		h := (1 - z[j]) * gateTanh.Activate(cand[j])
		if ok {
			h += z[j] * prev[j]
		}
		g.outputBuf[j] = h
	}
	g.ring.push(g.outputBuf)
	g.timestep++
	return g.gates.state, nil
}

// Reset zeroes every retained hidden state and the timestep.
func (g *GRU) Reset() {
	clear(g.outputBuf)
	g.ring.reset()
	g.timestep = 0
}

func (g *GRU) Output() []float64 { return g.outputBuf }
func (g *GRU) OutputLength() int { return g.gates.state }
func (g *GRU) InputLength() int  { return g.gates.inputs }

// Timestep returns how many steps have run since construction or Reset.
func (g *GRU) Timestep() int { return g.timestep }

// Cache returns the ring capacity.
func (g *GRU) Cache() int { return g.ring.capacity }

// Hidden returns a copy of the newest hidden state, zeros before the first step.
func (g *GRU) Hidden() []float64 {
	h := make([]float64, g.gates.state)
	if last, ok := g.ring.latest(); ok {
		copy(h, last)
	}
	return h
}

// States returns copies of the retained hidden states, oldest first.
func (g *GRU) States() [][]float64 { return g.ring.snapshot() }

// State returns a copy of the k-th retained hidden state, oldest first.
func (g *GRU) State(k int) []float64 {
	if col := g.ring.at(k); col != nil {
		return append([]float64(nil), col...)
	}
	return nil
}

func (g *GRU) SetW(gate GRUGate, i, j int, v float64) { g.gates.setW(int(gate), i, j, v) }
func (g *GRU) SetU(gate GRUGate, i, j int, v float64) { g.gates.setU(int(gate), i, j, v) }
func (g *GRU) SetB(gate GRUGate, i int, v float64)    { g.gates.setB(int(gate), i, v) }

func (g *GRU) SetWs(gate GRUGate, ws []float64) { g.gates.setAll(g.gates.w, int(gate), ws) }
func (g *GRU) SetUs(gate GRUGate, us []float64) { g.gates.setAll(g.gates.u, int(gate), us) }
func (g *GRU) SetBs(gate GRUGate, bs []float64) { g.gates.setAll(g.gates.b, int(gate), bs) }

func (g *GRU) Ws(gate GRUGate) []float64 { return g.gates.get(g.gates.w, int(gate)) }
func (g *GRU) Us(gate GRUGate) []float64 { return g.gates.get(g.gates.u, int(gate)) }
func (g *GRU) Bs(gate GRUGate) []float64 { return g.gates.get(g.gates.b, int(gate)) }

// Params returns every gate's W, then every U, then every b, in gate order
// update, reset, hidden.
func (g *GRU) Params() []float64 { return g.gates.params() }

// SetParams updates all gate weights from a slice laid out like Params.
func (g *GRU) SetParams(params []float64) { g.gates.setParams(params) }
