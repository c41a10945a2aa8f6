// Copyright 2025 fastAttention Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense matrices consumed by
// the attention routines.
//
// Example:
//
//	q, _ := tensor.FromSlice([]float64{0, 0}, 2, 1)
//	z := tensor.Zeros(2, 1)
package tensor

import (
	"math/rand"

	"github.com/liyuan24/fastAttention/internal/tensor"
)

// Matrix is a dense, row-major float64 matrix.
type Matrix = tensor.Matrix

// New creates a zero-initialized matrix with the given dimensions.
func New(rows, cols int) (*Matrix, error) {
	return tensor.New(rows, cols)
}

// FromSlice creates a matrix backed by a copy of data, interpreted row-major.
func FromSlice(data []float64, rows, cols int) (*Matrix, error) {
	return tensor.FromSlice(data, rows, cols)
}

// Zeros creates a matrix filled with zeros. It panics on invalid dimensions.
func Zeros(rows, cols int) *Matrix {
	return tensor.Zeros(rows, cols)
}

// Full creates a matrix with every element set to value.
func Full(rows, cols int, value float64) *Matrix {
	return tensor.Full(rows, cols, value)
}

// Randn creates a matrix with values drawn from a standard normal
// distribution.
func Randn(rows, cols int, rng *rand.Rand) *Matrix {
	return tensor.Randn(rows, cols, rng)
}
