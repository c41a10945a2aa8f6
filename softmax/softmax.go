// Copyright 2025 fastAttention Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package softmax provides the public API for the softmax routines and the
// online softmax state used by the tiled attention driver.
//
// Example:
//
//	y := softmax.Online([]float64{1, 2, 3})
//
//	state := softmax.NewState()
//	state = state.Observe(firstBlock)
//	state = state.Observe(secondBlock)
package softmax

import (
	"github.com/liyuan24/fastAttention/internal/softmax"
)

// MaxIdentity is the identity element for the running maximum.
const MaxIdentity = softmax.MaxIdentity

// State is the running softmax state: a (max, normalizer) pair.
type State = softmax.State

// NewState returns the identity state: no scores observed, zero mass.
func NewState() State {
	return softmax.NewState()
}

// Naive computes softmax without max subtraction. It overflows for inputs
// with large magnitude and exists as a correctness oracle only.
func Naive(x []float64) []float64 {
	return softmax.Naive(x)
}

// Safe computes softmax with the standard two-pass max subtraction.
func Safe(x []float64) []float64 {
	return softmax.Safe(x)
}

// Online computes softmax in a single forward pass maintaining only a
// running (max, normalizer) state.
func Online(x []float64) []float64 {
	return softmax.Online(x)
}
