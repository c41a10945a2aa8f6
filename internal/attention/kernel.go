// Package attention implements block-tiled scaled dot-product attention with
// an online softmax normalizer, bounding auxiliary memory to O(N) instead of
// the O(N^2) score matrix of the standard algorithm.
package attention

import (
	"math"

	"github.com/liyuan24/fastAttention/internal/softmax"
	"github.com/liyuan24/fastAttention/internal/tensor"
)

// blockScores computes one tile of the score matrix: for query rows
// [qStart, qStart+rows) against key rows [kStart, kStart+cols) it produces
// the exponentiated scores P = exp(S - rowMax) together with the per-row
// local max and per-row sum of P, where S = Q_tile @ K_tile^T * scale.
//
// p (rows*cols, row-major), rowMax and rowSum are caller-owned scratch.
// The raw scores are staged in p and exponentiated in place once the row
// max is known, so the exponent argument is always <= 0. Pure with respect
// to q and k.
func blockScores(p, rowMax, rowSum []float64, q, k *tensor.Matrix, qStart, kStart, rows, cols int, scale float64) {
	d := q.Cols()

	for i := 0; i < rows; i++ {
		qRow := q.Row(qStart + i)
		scores := p[i*cols : (i+1)*cols]

		m := softmax.MaxIdentity
		for j := 0; j < cols; j++ {
			kRow := k.Row(kStart + j)
			var s float64
			for dd := 0; dd < d; dd++ {
				s += qRow[dd] * kRow[dd]
			}
			s *= scale
			scores[j] = s
			if s > m {
				m = s
			}
		}

		var l float64
		for j := 0; j < cols; j++ {
			scores[j] = math.Exp(scores[j] - m)
			l += scores[j]
		}

		rowMax[i] = m
		rowSum[i] = l
	}
}
