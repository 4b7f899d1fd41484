// Package fitter selects the best-fitting subset of candidate charges for a
// statement amount.
//
// Given a row with a target amount and up to 12 candidate charges, FitRow
// returns the sub-multiset of candidates whose sum is the largest value not
// exceeding the target. Duplicate charge amounts are distinct items: a row
// with two $3.00 charges can use both.
//
// The search is meet-in-the-middle: the candidate list is split into two
// contiguous halves, every subset sum of each half is enumerated, one half is
// sorted, and each sum from the other half is completed with a binary
// nearest-predecessor lookup. Total work is O(2^(n/2)·n) regardless of how
// large the target is, which is why the package caps n at MaxCandidates
// instead of using target-indexed dynamic programming.
//
// Example usage:
//
//	row := fitter.Row{Target: 15, Candidates: []float64{5, 10, 3, 7}}
//	result, err := fitter.FitRow(row)
//	// result.Sum == 15, result.Selected == []float64{5, 10}
package fitter

import (
	"errors"
	"fmt"
	"sort"
)

// MaxCandidates is the largest candidate list FitRow accepts. The complexity
// bound of the meet-in-the-middle search is predicated on this limit.
const MaxCandidates = 12

var (
	// ErrTooManyCandidates is returned when a row carries more than
	// MaxCandidates candidates.
	ErrTooManyCandidates = errors.New("too many candidates")

	// ErrInvalidInput is returned when a row carries a non-positive target
	// or candidate amount.
	ErrInvalidInput = errors.New("invalid input")
)

// Row is one reconciliation row: a statement amount to hit and the charges
// that may have contributed to it. Rows are treated as immutable; FitRow
// never modifies Candidates.
type Row struct {
	Target     float64
	Candidates []float64
}

// Result is the outcome of fitting one row. Selected is sorted ascending and
// is a sub-multiset of Row.Candidates; Sum is its total and never exceeds
// Row.Target.
type Result struct {
	Row      Row
	Selected []float64
	Sum      float64
}

// ExactFit reports whether the selection hits the target exactly.
func (r Result) ExactFit() bool {
	return r.Sum == r.Row.Target
}

// Gap returns how far the selection falls short of the target.
func (r Result) Gap() float64 {
	return r.Row.Target - r.Sum
}

// IsValidRow reports whether a row satisfies the core's input contract:
// positive target, at most MaxCandidates candidates, every candidate
// positive. It never modifies the row; callers decide what to do with rows
// that fail (reject, log, skip).
func IsValidRow(row Row) bool {
	return checkRow(row) == nil
}

func checkRow(row Row) error {
	if len(row.Candidates) > MaxCandidates {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyCandidates, len(row.Candidates), MaxCandidates)
	}
	if row.Target <= 0 {
		return fmt.Errorf("%w: target must be positive, got %v", ErrInvalidInput, row.Target)
	}
	for i, c := range row.Candidates {
		if c <= 0 {
			return fmt.Errorf("%w: candidate %d must be positive, got %v", ErrInvalidInput, i, c)
		}
	}
	return nil
}

// FitRow finds the sub-multiset of row.Candidates with the largest sum that
// does not exceed row.Target. It fails fast on rows violating the input
// contract rather than running a slower or incorrect computation.
//
// Among multiple selections achieving the optimal sum, the one returned is
// determined by enumeration order and has no semantic significance; callers
// should rely on Sum being optimal, not on which optimal selection comes
// back. Repeated calls on the same row return identical results.
func FitRow(row Row) (Result, error) {
	if err := checkRow(row); err != nil {
		return Result{}, err
	}

	switch len(row.Candidates) {
	case 0:
		return Result{Row: row, Selected: []float64{}}, nil
	case 1:
		// Single candidate: take it iff it fits.
		if c := row.Candidates[0]; c <= row.Target {
			return Result{Row: row, Selected: []float64{c}, Sum: c}, nil
		}
		return Result{Row: row, Selected: []float64{}}, nil
	}

	// Split into contiguous halves. The split point is structural; values
	// play no part in it.
	mid := len(row.Candidates) / 2
	left := row.Candidates[:mid]
	right := row.Candidates[mid:]

	leftSums := enumerateSubsets(left)
	rightSums := enumerateSubsets(right)
	sort.Slice(rightSums, func(i, j int) bool {
		return rightSums[i].sum < rightSums[j].sum
	})

	// Fold over the left enumeration, completing each left sum with the
	// best right-half complement. Only a strictly greater total replaces
	// the running best, so the first optimal combination wins.
	bestSum := -1.0
	var bestLeft, bestRight []int
	for _, ls := range leftSums {
		if ls.sum > row.Target {
			continue
		}
		match := nearestPredecessor(rightSums, row.Target-ls.sum)
		if total := ls.sum + match.sum; total > bestSum {
			bestSum = total
			bestLeft = ls.members
			bestRight = match.members
		}
	}

	selected := make([]float64, 0, len(bestLeft)+len(bestRight))
	for _, i := range bestLeft {
		selected = append(selected, left[i])
	}
	for _, i := range bestRight {
		selected = append(selected, right[i])
	}
	sort.Float64s(selected)

	return Result{Row: row, Selected: selected, Sum: bestSum}, nil
}
