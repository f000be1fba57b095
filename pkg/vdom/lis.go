package vdom

// LIS returns the indices of a longest strictly increasing subsequence of
// seq, in increasing order. Entries equal to -1 mark slots without a source
// and are never part of the result.
func LIS(seq []int) []int {
	// tails[k] is the index of the smallest tail of an increasing run of
	// length k+1; prev links each index to its predecessor in that run.
	prev := make([]int, len(seq))
	tails := make([]int, 0, len(seq))

	for i, v := range seq {
		if v == -1 {
			continue
		}
		if n := len(tails); n == 0 || seq[tails[n-1]] < v {
			if n > 0 {
				prev[i] = tails[n-1]
			}
			tails = append(tails, i)
			continue
		}

		lo, hi := 0, len(tails)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if v < seq[tails[lo]] {
			if lo > 0 {
				prev[i] = tails[lo-1]
			}
			tails[lo] = i
		}
	}

	result := make([]int, len(tails))
	if len(tails) == 0 {
		return result
	}
	k := tails[len(tails)-1]
	for j := len(tails) - 1; j >= 0; j-- {
		result[j] = k
		k = prev[k]
	}
	return result
}
