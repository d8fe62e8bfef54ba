package layer

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// general wraps a row-major rows×cols buffer for BLAS.
func general(rows, cols int, a []float64) blas64.General {
	return blas64.General{Rows: rows, Cols: cols, Stride: cols, Data: a}
}

func vector(v []float64) blas64.Vector {
	return blas64.Vector{N: len(v), Inc: 1, Data: v}
}

// matVecAdd computes y += A·x for a row-major rows×cols matrix A.
func matVecAdd(rows, cols int, a, x, y []float64) {
	blas64.Gemv(blas.NoTrans, 1, general(rows, cols, a), vector(x[:cols]), 1, vector(y[:rows]))
}

// matTVec computes y = Aᵀ·x for a row-major rows×cols matrix A.
func matTVec(rows, cols int, a, x, y []float64) {
	blas64.Gemv(blas.Trans, 1, general(rows, cols, a), vector(x[:rows]), 0, vector(y[:cols]))
}
