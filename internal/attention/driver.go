package attention

import (
	"errors"
	"fmt"

	"github.com/liyuan24/fastAttention/internal/parallel"
	"github.com/liyuan24/fastAttention/internal/tensor"
)

// Errors returned by Compute before any tile work happens.
var (
	// ErrShape reports disagreeing Q/K/V dimensions.
	ErrShape = errors.New("attention: shape mismatch")
	// ErrTileConfig reports tile sizes that do not evenly divide the
	// corresponding row counts. Ragged tail tiles are unsupported.
	ErrTileConfig = errors.New("attention: invalid tile configuration")
)

// Config controls the tiled attention computation.
type Config struct {
	RowTileSize int // Rows of Q (and O) per tile.
	ColTileSize int // Rows of K and V per tile.

	// Scale multiplies raw scores before the softmax. Zero means 1
	// (plain QK^T); pass 1/sqrt(d) for conventional scaled attention.
	Scale float64

	// Parallel controls concurrent processing of row tiles within one
	// column-tile step. Row tiles are data-parallel there: each owns its
	// state and scratch, and the key/value tile is read-only. The zero
	// value runs sequentially.
	Parallel parallel.Config
}

// Compute evaluates softmax(Q K^T * scale) V without materializing the full
// score matrix. Q, K and V are dense row-major matrices sharing column count
// d; K and V share row count. The result is mathematically identical to the
// full-matrix algorithm, up to floating-point rounding, for any valid tile
// configuration.
//
// The outer loop walks column tiles of K/V so each key/value tile is visited
// once and reused by every row tile before being replaced; the inner loop
// walks row tiles of Q. Per (row tile, column tile) pair the driver invokes
// the score kernel, merges the local (max, sum) into the row tile's running
// softmax state, and folds the partial output in against the same merged
// state. After the last column tile every row's state holds the global max
// and total normalizer, and the row tiles concatenate into the final matrix.
func Compute(q, k, v *tensor.Matrix, cfg Config) (*tensor.Matrix, error) {
	if err := validate(q, k, v, cfg); err != nil {
		return nil, err
	}
	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}

	br := cfg.RowTileSize
	bc := cfg.ColTileSize
	numRowTiles := q.Rows() / br
	numColTiles := k.Rows() / bc
	d := q.Cols()

	// Tile arena: one owned state per row-tile id, boundaries derived once.
	states := make([]*rowTileState, numRowTiles)
	for i := range states {
		states[i] = newRowTileState(br, bc, d)
	}

	for j := 0; j < numColTiles; j++ {
		kvStart := j * bc
		parallel.For(numRowTiles, func(i int) {
			st := states[i]
			blockScores(st.p, st.rowMax, st.rowSum, q, k, i*br, kvStart, br, bc, scale)
			st.accumulate(v, kvStart, br, bc)
		}, cfg.Parallel)
	}

	out := tensor.Zeros(q.Rows(), d)
	data := out.Data()
	for i, st := range states {
		copy(data[i*br*d:(i+1)*br*d], st.out)
	}
	return out, nil
}

// validate fails fast on the Compute preconditions; no partial output is
// ever produced.
func validate(q, k, v *tensor.Matrix, cfg Config) error {
	if q.Cols() != k.Cols() {
		return fmt.Errorf("%w: Q has %d columns, K has %d", ErrShape, q.Cols(), k.Cols())
	}
	if v.Cols() != q.Cols() {
		return fmt.Errorf("%w: Q has %d columns, V has %d", ErrShape, q.Cols(), v.Cols())
	}
	if k.Rows() != v.Rows() {
		return fmt.Errorf("%w: K has %d rows, V has %d", ErrShape, k.Rows(), v.Rows())
	}
	if cfg.RowTileSize < 1 || cfg.ColTileSize < 1 {
		return fmt.Errorf("%w: tile sizes must be >= 1, got %dx%d", ErrTileConfig, cfg.RowTileSize, cfg.ColTileSize)
	}
	if q.Rows()%cfg.RowTileSize != 0 {
		return fmt.Errorf("%w: row tile size %d does not divide %d query rows", ErrTileConfig, cfg.RowTileSize, q.Rows())
	}
	if k.Rows()%cfg.ColTileSize != 0 {
		return fmt.Errorf("%w: column tile size %d does not divide %d key rows", ErrTileConfig, cfg.ColTileSize, k.Rows())
	}
	return nil
}
