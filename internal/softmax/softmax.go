package softmax

import "math"

// Naive computes softmax without max subtraction.
//
// It overflows for inputs with large magnitude and exists only as a
// correctness oracle for the stable routines. Do not use it on untrusted
// input ranges.
func Naive(x []float64) []float64 {
	result := make([]float64, len(x))
	var sum float64
	for i, v := range x {
		result[i] = math.Exp(v)
		sum += result[i]
	}
	for i := range result {
		result[i] /= sum
	}
	return result
}

// Safe computes softmax with the standard two-pass max subtraction.
// Every exponent argument is <= 0, so the result is finite for any finite
// input.
func Safe(x []float64) []float64 {
	maxVal := x[0]
	for _, v := range x[1:] {
		if v > maxVal {
			maxVal = v
		}
	}

	result := make([]float64, len(x))
	var sum float64
	for i, v := range x {
		result[i] = math.Exp(v - maxVal)
		sum += result[i]
	}
	for i := range result {
		result[i] /= sum
	}
	return result
}

// Online computes softmax in a single forward pass over the input,
// maintaining only a running (max, sum) state, followed by one
// normalization pass.
//
// It produces the same result as Safe up to floating-point rounding and is
// the per-element form of the merge rule used by the tiled attention driver.
func Online(x []float64) []float64 {
	state := NewState()
	for _, v := range x {
		state = state.Merge(State{Max: v, Sum: 1})
	}

	result := make([]float64, len(x))
	for i, v := range x {
		result[i] = math.Exp(v-state.Max) / state.Sum
	}
	return result
}
