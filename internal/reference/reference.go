// Package reference holds the full-matrix attention oracle used to validate
// the tiled implementation. It materializes the complete score matrix and is
// kept intentionally simple and independent of the core packages so that its
// output is verifiable on its own.
package reference

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/liyuan24/fastAttention/internal/tensor"
)

// Attention computes softmax(Q K^T * scale) V the traditional way, with the
// full N x N score matrix in memory and a two-pass max-subtracted softmax
// per row.
func Attention(q, k, v *tensor.Matrix, scale float64) (*tensor.Matrix, error) {
	if q.Cols() != k.Cols() || v.Cols() != q.Cols() {
		return nil, fmt.Errorf("reference: column counts disagree: Q %d, K %d, V %d", q.Cols(), k.Cols(), v.Cols())
	}
	if k.Rows() != v.Rows() {
		return nil, fmt.Errorf("reference: K has %d rows, V has %d", k.Rows(), v.Rows())
	}

	n := q.Rows()
	kvLen := k.Rows()
	d := q.Cols()

	qd := mat.NewDense(n, d, q.Data())
	kd := mat.NewDense(kvLen, d, k.Data())
	vd := mat.NewDense(kvLen, d, v.Data())

	var scores mat.Dense
	scores.Mul(qd, kd.T())
	scores.Scale(scale, &scores)

	for i := 0; i < n; i++ {
		rowSoftmax(scores.RawRowView(i))
	}

	var out mat.Dense
	out.Mul(&scores, vd)

	result := make([]float64, n*d)
	copy(result, out.RawMatrix().Data)
	return tensor.FromSlice(result, n, d)
}

// rowSoftmax applies a max-subtracted softmax to one row in place.
func rowSoftmax(row []float64) {
	maxVal := row[0]
	for _, x := range row[1:] {
		if x > maxVal {
			maxVal = x
		}
	}

	var sum float64
	for j, x := range row {
		row[j] = math.Exp(x - maxVal)
		sum += row[j]
	}
	for j := range row {
		row[j] /= sum
	}
}
