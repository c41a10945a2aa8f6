// Copyright 2025 fastAttention Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package attention provides the public API for block-tiled scaled
// dot-product attention with an online softmax normalizer.
//
// Example:
//
//	out, err := attention.Compute(q, k, v, attention.Config{
//		RowTileSize: 32,
//		ColTileSize: 32,
//	})
package attention

import (
	"github.com/liyuan24/fastAttention/internal/attention"
	"github.com/liyuan24/fastAttention/internal/parallel"
	"github.com/liyuan24/fastAttention/internal/tensor"
)

// Config controls the tiled attention computation.
type Config = attention.Config

// ParallelConfig controls concurrent processing of row tiles.
type ParallelConfig = parallel.Config

// Errors returned by Compute before any tile work happens.
var (
	ErrShape      = attention.ErrShape
	ErrTileConfig = attention.ErrTileConfig
)

// DefaultParallelConfig returns row-tile parallelism defaults based on CPU
// count.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// Compute evaluates softmax(Q K^T * scale) V in fixed-size tiles without
// materializing the full score matrix. The result is identical to the
// full-matrix algorithm up to floating-point rounding for any valid tile
// configuration.
func Compute(q, k, v *tensor.Matrix, cfg Config) (*tensor.Matrix, error) {
	return attention.Compute(q, k, v, cfg)
}
