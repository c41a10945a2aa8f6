package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a matrix filled with zeros.
// It panics on invalid dimensions; use New when the shape is untrusted.
func Zeros(rows, cols int) *Matrix {
	m, err := New(rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}

// Randn creates a matrix with values drawn from a standard normal
// distribution using the Box-Muller transform.
// Note: uses math/rand (not crypto/rand) - appropriate for numerical testing.
func Randn(rows, cols int, rng *rand.Rand) *Matrix {
	m := Zeros(rows, cols)
	for i := 0; i < len(m.data); i += 2 {
		u1 := rng.Float64()
		u2 := rng.Float64()

		// Avoid log(0).
		for u1 == 0 {
			u1 = rng.Float64()
		}

		r := math.Sqrt(-2 * math.Log(u1))
		theta := 2 * math.Pi * u2

		m.data[i] = r * math.Cos(theta)
		if i+1 < len(m.data) {
			m.data[i+1] = r * math.Sin(theta)
		}
	}
	return m
}

// Full creates a matrix with every element set to value.
func Full(rows, cols int, value float64) *Matrix {
	m := Zeros(rows, cols)
	for i := range m.data {
		m.data[i] = value
	}
	return m
}
