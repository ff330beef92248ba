// Package numbers holds the stateless integer operations exposed behind the
// access guard. None of them touch shared state.
package numbers

import (
	"errors"
	"math"
)

var (
	// ErrEmptyInput is returned by operations that need at least one element.
	ErrEmptyInput = errors.New("numbers must not be empty")
	// ErrOverflow is returned when a result does not fit in an int.
	ErrOverflow = errors.New("result overflows integer range")
)

// BubbleSort returns an ascending copy of in. in is left untouched.
func BubbleSort(in []int) []int {
	out := append(make([]int, 0, len(in)), in...)
	for i := 0; i < len(out); i++ {
		swapped := false
		for j := 0; j < len(out)-i-1; j++ {
			if out[j] > out[j+1] {
				out[j], out[j+1] = out[j+1], out[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return out
}

// FilterEven returns the even values of in, preserving order. Never nil.
func FilterEven(in []int) []int {
	out := make([]int, 0, len(in)/2)
	for _, n := range in {
		if n%2 == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Sum adds all elements; 0 for empty input. It fails with ErrOverflow
// instead of wrapping around.
func Sum(in []int) (int, error) {
	total := 0
	for _, n := range in {
		if (n > 0 && total > math.MaxInt-n) || (n < 0 && total < math.MinInt-n) {
			return 0, ErrOverflow
		}
		total += n
	}
	return total, nil
}

// Max returns the largest element.
func Max(in []int) (int, error) {
	if len(in) == 0 {
		return 0, ErrEmptyInput
	}
	best := in[0]
	for _, n := range in[1:] {
		if n > best {
			best = n
		}
	}
	return best, nil
}

// BinarySearch looks for target in the ascending slice in. It returns the
// index and true when found, -1 and false otherwise. Results on unsorted
// input are unspecified.
func BinarySearch(in []int, target int) (int, bool) {
	left, right := 0, len(in)-1
	for left <= right {
		mid := left + (right-left)/2
		switch {
		case in[mid] == target:
			return mid, true
		case in[mid] < target:
			left = mid + 1
		default:
			right = mid - 1
		}
	}
	return -1, false
}
