package main

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/liyuan24/fastAttention/attention"
	"github.com/liyuan24/fastAttention/internal/reference"
	"github.com/liyuan24/fastAttention/tensor"
)

type benchResult struct {
	tileSize int
	elapsed  time.Duration
	maxErr   float64
}

func newBenchCmd() *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare tiled attention against the full-matrix reference across tile sizes",
		RunE:  runBench,
	}

	benchCmd.Flags().Int("rows", 512, "Number of rows N of Q, K and V")
	benchCmd.Flags().Int("dim", 64, "Number of columns d")
	benchCmd.Flags().Int64("seed", 42, "Seed for the random inputs")
	benchCmd.Flags().Bool("scaled", false, "Scale scores by 1/sqrt(d)")
	benchCmd.Flags().Bool("parallel", false, "Process row tiles concurrently")

	return benchCmd
}

func runBench(cmd *cobra.Command, _ []string) error {
	rows, _ := cmd.Flags().GetInt("rows")
	dim, _ := cmd.Flags().GetInt("dim")
	seed, _ := cmd.Flags().GetInt64("seed")
	scaled, _ := cmd.Flags().GetBool("scaled")
	par, _ := cmd.Flags().GetBool("parallel")

	if rows < 1 || dim < 1 {
		return fmt.Errorf("rows and dim must be >= 1, got %d and %d", rows, dim)
	}

	rng := rand.New(rand.NewSource(seed))
	q := tensor.Randn(rows, dim, rng)
	k := tensor.Randn(rows, dim, rng)
	v := tensor.Randn(rows, dim, rng)

	scale := 1.0
	if scaled {
		scale = 1.0 / math.Sqrt(float64(dim))
	}

	refStart := time.Now()
	want, err := reference.Attention(q, k, v, scale)
	if err != nil {
		return err
	}
	refElapsed := time.Since(refStart)

	tileSizes := divisors(rows)
	results := make([]benchResult, len(tileSizes))

	bar := progressbar.NewOptions(len(tileSizes),
		progressbar.OptionSetDescription("Sweeping tile sizes"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, size := range tileSizes {
		i, size := i, size
		g.Go(func() error {
			cfg := attention.Config{
				RowTileSize: size,
				ColTileSize: size,
				Scale:       scale,
			}
			if par {
				cfg.Parallel = attention.DefaultParallelConfig()
			}

			start := time.Now()
			got, err := attention.Compute(q, k, v, cfg)
			if err != nil {
				return err
			}
			results[i] = benchResult{
				tileSize: size,
				elapsed:  time.Since(start),
				maxErr:   maxAbsDiff(got.Data(), want.Data()),
			}
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "N=%d d=%d scale=%g reference=%v\n", rows, dim, scale, refElapsed)
	fmt.Fprintf(out, "%10s %14s %14s\n", "tile", "elapsed", "max|err|")
	for _, r := range results {
		fmt.Fprintf(out, "%10d %14v %14.3e\n", r.tileSize, r.elapsed, r.maxErr)
	}
	return nil
}

// divisors returns the divisors of n in increasing order. Only tile sizes
// that evenly divide N are valid configurations.
func divisors(n int) []int {
	var ds []int
	for s := 1; s <= n; s++ {
		if n%s == 0 {
			ds = append(ds, s)
		}
	}
	return ds
}

func maxAbsDiff(a, b []float64) float64 {
	var maxErr float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxErr {
			maxErr = d
		}
	}
	return maxErr
}
