package fitter

import "sort"

// nearestPredecessor returns the entry with the largest sum not exceeding
// ceiling. sums must be sorted ascending by sum. When nothing qualifies
// (every sum exceeds the ceiling, or the slice is empty) it returns the
// empty selection, since choosing nothing from a half is always achievable.
//
// The lookup is a binary search; a linear scan here would turn the whole
// fit back into O(2^n).
func nearestPredecessor(sums []subsetSum, ceiling float64) subsetSum {
	// First index whose sum exceeds the ceiling.
	idx := sort.Search(len(sums), func(i int) bool {
		return sums[i].sum > ceiling
	})
	if idx == 0 {
		return subsetSum{}
	}
	return sums[idx-1]
}
