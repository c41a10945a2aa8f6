package attention

import (
	"math"

	"github.com/liyuan24/fastAttention/internal/softmax"
	"github.com/liyuan24/fastAttention/internal/tensor"
)

// rowTileState owns the running state for one row tile: the per-row softmax
// state (max, normalizer) and the normalized output tile accumulated so far.
//
// Tiles are addressed by integer id and never alias the full matrices. Each
// tile also owns the scratch buffers for the score kernel, so disjoint row
// tiles can be processed concurrently within one column-tile step.
type rowTileState struct {
	m   []float64 // Running max per row.
	l   []float64 // Running normalizer per row.
	out []float64 // Normalized output tile, rows*d row-major.

	p      []float64 // Exponentiated score scratch, rows*cols.
	rowMax []float64 // Local max scratch per row.
	rowSum []float64 // Local sum scratch per row.
}

func newRowTileState(rows, cols, d int) *rowTileState {
	st := &rowTileState{
		m:      make([]float64, rows),
		l:      make([]float64, rows),
		out:    make([]float64, rows*d),
		p:      make([]float64, rows*cols),
		rowMax: make([]float64, rows),
		rowSum: make([]float64, rows),
	}
	for i := range st.m {
		st.m[i] = softmax.MaxIdentity
	}
	return st
}

// accumulate folds the current column tile into the running state: it merges
// the kernel's local (max, sum) into each row's softmax state and updates the
// output tile against value rows [vStart, vStart+cols).
//
// The previously accumulated output was normalized by the old running sum, so
// it is first de-normalized and rescaled onto the merged max baseline; the
// new contribution P @ V_tile is rescaled from its own local baseline the
// same way; the combined row is then re-normalized by the merged sum. Both
// rescale factors use the merged state produced by a single Merge, never a
// stale max. On a row's first visit the old sum is zero and the identity-max
// rescale underflows to zero, so the stale term contributes nothing.
func (st *rowTileState) accumulate(v *tensor.Matrix, vStart, rows, cols int) {
	d := v.Cols()

	for i := 0; i < rows; i++ {
		prev := softmax.State{Max: st.m[i], Sum: st.l[i]}
		local := softmax.State{Max: st.rowMax[i], Sum: st.rowSum[i]}
		merged := prev.Merge(local)

		alphaPrev := prev.Sum * math.Exp(prev.Max-merged.Max)
		alphaLocal := math.Exp(local.Max - merged.Max)

		out := st.out[i*d : (i+1)*d]
		for dd := range out {
			out[dd] *= alphaPrev
		}

		weights := st.p[i*cols : (i+1)*cols]
		for j := 0; j < cols; j++ {
			w := weights[j] * alphaLocal
			vRow := v.Row(vStart + j)
			for dd := range out {
				out[dd] += w * vRow[dd]
			}
		}

		for dd := range out {
			out[dd] /= merged.Sum
		}

		st.m[i] = merged.Max
		st.l[i] = merged.Sum
	}
}
