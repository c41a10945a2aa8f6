// Package softmax provides numerically stable softmax routines and the
// online (running) softmax state used by the block-tiled attention kernels.
package softmax

import "math"

// MaxIdentity is the identity element for the running maximum: the smallest
// representable float64, meaning "no score observed yet". It is deliberately
// not -Inf; subtracting it from any finite value still underflows exp to
// exactly zero, so a fresh state contributes zero mass on its first merge.
const MaxIdentity = -math.MaxFloat64

// State is the running softmax state for one row: the maximum score observed
// so far and the sum of exponentials taken relative to that maximum.
//
// Together (Max, Sum) are sufficient to reconstruct a numerically stable
// softmax incrementally. Merging two states rescales both sums onto a common
// maximum baseline before adding, which is exactly the identity that lets
// partial softmax results computed with different max-subtraction baselines
// be combined without ever un-normalizing:
//
//	m' = max(mA, mB)
//	l' = lA*exp(mA - m') + lB*exp(mB - m')
//
// Merge is associative and commutative over the order of merges, so disjoint
// score ranges may be reduced independently and combined with one extra merge.
type State struct {
	Max float64 // Running maximum across all scores observed so far.
	Sum float64 // Running sum of exp(score - Max).
}

// NewState returns the identity state: no scores observed, zero mass.
func NewState() State {
	return State{Max: MaxIdentity, Sum: 0}
}

// Merge combines s with other into a single equivalent state.
//
// Both exponent arguments are <= 0 because each term's max is rescaled to the
// larger of the two, so the rescale factors never overflow. A merge against
// the identity state contributes zero mass: its Sum is zero and its rescale
// factor underflows to zero.
func (s State) Merge(other State) State {
	m := math.Max(s.Max, other.Max)
	return State{
		Max: m,
		Sum: s.Sum*math.Exp(s.Max-m) + other.Sum*math.Exp(other.Max-m),
	}
}

// Observe folds a block of raw scores into the state.
// It reduces the block to a local (max, sum) pair and merges it in.
func (s State) Observe(scores []float64) State {
	if len(scores) == 0 {
		return s
	}
	local := State{Max: MaxIdentity}
	for _, x := range scores {
		if x > local.Max {
			local.Max = x
		}
	}
	for _, x := range scores {
		local.Sum += math.Exp(x - local.Max)
	}
	return s.Merge(local)
}
