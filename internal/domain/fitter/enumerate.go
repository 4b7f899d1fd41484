package fitter

// subsetSum pairs an achievable sum with the positional indices (into one
// half of a row's candidates) that produce it.
type subsetSum struct {
	sum     float64
	members []int
}

// enumerateSubsets produces every one of the 2^k selections of values,
// including the empty selection (sum 0). Enumeration is by index, never by
// value, so two equal amounts at different positions are distinct items and
// each include/exclude choice is generated independently. The order is the
// lexicographic order of the inclusion masks, which keeps the overall fit
// deterministic.
func enumerateSubsets(values []float64) []subsetSum {
	k := len(values)
	out := make([]subsetSum, 0, 1<<k)
	for mask := 0; mask < 1<<k; mask++ {
		var sum float64
		var members []int
		for i := 0; i < k; i++ {
			if mask&(1<<i) != 0 {
				sum += values[i]
				members = append(members, i)
			}
		}
		out = append(out, subsetSum{sum: sum, members: members})
	}
	return out
}
