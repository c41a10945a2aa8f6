package reference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liyuan24/fastAttention/internal/tensor"
)

func TestAttentionUniform(t *testing.T) {
	q, err := tensor.FromSlice([]float64{0, 0}, 2, 1)
	require.NoError(t, err)
	k, err := tensor.FromSlice([]float64{0, 0}, 2, 1)
	require.NoError(t, err)
	v, err := tensor.FromSlice([]float64{1, 2}, 2, 1)
	require.NoError(t, err)

	out, err := Attention(q, k, v, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, out.At(0, 0), 1e-12)
	assert.InDelta(t, 1.5, out.At(1, 0), 1e-12)
}

func TestAttentionHandComputed(t *testing.T) {
	// Single query against two keys with raw scores [1, 0].
	q, err := tensor.FromSlice([]float64{1}, 1, 1)
	require.NoError(t, err)
	k, err := tensor.FromSlice([]float64{1, 0}, 2, 1)
	require.NoError(t, err)
	v, err := tensor.FromSlice([]float64{10, 20}, 2, 1)
	require.NoError(t, err)

	out, err := Attention(q, k, v, 1)
	require.NoError(t, err)

	w0 := math.Exp(1) / (math.Exp(1) + 1)
	want := w0*10 + (1-w0)*20
	assert.InDelta(t, want, out.At(0, 0), 1e-12)
}

func TestAttentionScale(t *testing.T) {
	q, err := tensor.FromSlice([]float64{2}, 1, 1)
	require.NoError(t, err)
	k, err := tensor.FromSlice([]float64{2, 0}, 2, 1)
	require.NoError(t, err)
	v, err := tensor.FromSlice([]float64{1, 0}, 2, 1)
	require.NoError(t, err)

	// Scale 0.25 turns raw scores [4, 0] into [1, 0].
	out, err := Attention(q, k, v, 0.25)
	require.NoError(t, err)

	want := math.Exp(1) / (math.Exp(1) + 1)
	assert.InDelta(t, want, out.At(0, 0), 1e-12)
}

func TestAttentionShapeErrors(t *testing.T) {
	q, err := tensor.New(4, 4)
	require.NoError(t, err)
	k3, err := tensor.New(4, 3)
	require.NoError(t, err)
	v, err := tensor.New(4, 4)
	require.NoError(t, err)

	_, err = Attention(q, k3, v, 1)
	assert.Error(t, err)

	k, err := tensor.New(4, 4)
	require.NoError(t, err)
	v6, err := tensor.New(6, 4)
	require.NoError(t, err)

	_, err = Attention(q, k, v6, 1)
	assert.Error(t, err)
}

func TestAttentionDoesNotMutateInputs(t *testing.T) {
	q, err := tensor.FromSlice([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	k := q.Clone()
	v := q.Clone()

	qBefore := append([]float64(nil), q.Data()...)
	kBefore := append([]float64(nil), k.Data()...)
	vBefore := append([]float64(nil), v.Data()...)

	_, err = Attention(q, k, v, 1)
	require.NoError(t, err)

	assert.Equal(t, qBefore, q.Data())
	assert.Equal(t, kBefore, k.Data())
	assert.Equal(t, vBefore, v.Data())
}
