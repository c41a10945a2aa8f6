package tensor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}, {2, -4}} {
		_, err := New(dims[0], dims[1])
		assert.Error(t, err, "dims %v", dims)
	}

	m, err := New(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Len(t, m.Data(), 6)
}

func TestFromSlice(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}

	m, err := FromSlice(data, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 6.0, m.At(1, 2))

	// Backed by a copy, not the caller's slice.
	data[0] = 99
	assert.Equal(t, 1.0, m.At(0, 0))

	_, err = FromSlice(data, 2, 2)
	assert.Error(t, err)
}

func TestSetAndRow(t *testing.T) {
	m := Zeros(3, 2)
	m.Set(1, 1, 7)
	assert.Equal(t, 7.0, m.At(1, 1))

	row := m.Row(1)
	assert.Equal(t, []float64{0, 7}, row)

	// Row is a view: writes through it land in the matrix.
	row[0] = 5
	assert.Equal(t, 5.0, m.At(1, 0))
}

func TestClone(t *testing.T) {
	m, err := FromSlice([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)

	clone := m.Clone()
	clone.Set(0, 0, -1)

	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, -1.0, clone.At(0, 0))
}

func TestFull(t *testing.T) {
	m := Full(2, 2, 3.14)
	for _, v := range m.Data() {
		assert.Equal(t, 3.14, v)
	}
}

func TestRandn(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := Randn(8, 7, rng)

	require.Len(t, m.Data(), 56)
	var sum float64
	for _, v := range m.Data() {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		sum += v
	}

	// Loose sanity check on the sample mean of 56 standard normals.
	assert.InDelta(t, 0, sum/56, 1.0)
}

func TestRandnDeterministic(t *testing.T) {
	a := Randn(4, 4, rand.New(rand.NewSource(9)))
	b := Randn(4, 4, rand.New(rand.NewSource(9)))
	assert.Equal(t, a.Data(), b.Data())
}
