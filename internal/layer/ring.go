package layer

// stateRing keeps the last `capacity` state vectors of a recurrent layer.
// Column k lives at data[k*rows:(k+1)*rows]. Writes go to column
// head, which advances modulo capacity; once count reaches capacity each
// write evicts the oldest column.
type stateRing struct {
	rows     int
	capacity int
	data     []float64
	head     int
	count    int
}

func newStateRing(rows, capacity int) *stateRing {
	return &stateRing{
		rows:     rows,
		capacity: capacity,
		data:     make([]float64, rows*capacity),
	}
}

func (r *stateRing) col(k int) []float64 {
	return r.data[k*r.rows : (k+1)*r.rows]
}

// push stores v as the newest column.
func (r *stateRing) push(v []float64) {
	copy(r.col(r.head), v)
	r.head = (r.head + 1) % r.capacity
	if r.count < r.capacity {
		r.count++
	}
}

// latest returns the most recently pushed column.
func (r *stateRing) latest() ([]float64, bool) {
	if r.count == 0 {
		return nil, false
	}
	return r.col((r.head - 1 + r.capacity) % r.capacity), true
}

// at returns the k-th retained column, oldest first.
func (r *stateRing) at(k int) []float64 {
	if k < 0 || k >= r.count {
		return nil
	}
	oldest := (r.head - r.count + r.capacity) % r.capacity
	return r.col((oldest + k) % r.capacity)
}

func (r *stateRing) len() int { return r.count }

func (r *stateRing) reset() {
	clear(r.data)
	r.head = 0
	r.count = 0
}

// snapshot copies the retained columns, oldest first.
func (r *stateRing) snapshot() [][]float64 {
	out := make([][]float64, r.count)
	for k := range out {
		out[k] = append([]float64(nil), r.at(k)...)
	}
	return out
}
