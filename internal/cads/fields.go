package cads

import "sort"

// subsets yields every k-element subset of {0..n-1}, each as an ascending
// []int, in ascending bitmask order. Subsets with popcount !=
// k are skipped as the mask sweeps 1..2^n-1.
func subsets(n, k int) [][]int {
	if n <= 0 || k <= 0 || k > n {
		return nil
	}
	var out [][]int
	limit := 1 << uint(n)
	for m := 1; m < limit; m++ {
		if popcount(m) != k {
			continue
		}
		subset := make([]int, 0, k)
		for bit := 0; bit < n; bit++ {
			if m&(1<<uint(bit)) != 0 {
				subset = append(subset, bit)
			}
		}
		out = append(out, subset)
	}
	return out
}

func popcount(m int) int {
	c := 0
	for m != 0 {
		m &= m - 1
		c++
	}
	return c
}

// permutations returns every permutation of subset (which must already be
// in ascending order), generated by an iterative Heap's algorithm derived
// fresh from scratch for this call (no shared generator state carried
// between calls), then sorted lexicographically before being returned so
// the output order never depends on Heap's internal traversal order.
func permutations(subset []int) [][]int {
	n := len(subset)
	if n == 0 {
		return nil
	}
	work := make([]int, n)
	copy(work, subset)

	var perms [][]int
	emit := func() {
		cp := make([]int, n)
		copy(cp, work)
		perms = append(perms, cp)
	}

	c := make([]int, n)
	emit()
	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				work[0], work[i] = work[i], work[0]
			} else {
				work[c[i]], work[i] = work[i], work[c[i]]
			}
			emit()
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}

	sort.Slice(perms, func(a, b int) bool {
		pa, pb := perms[a], perms[b]
		for idx := range pa {
			if pa[idx] != pb[idx] {
				return pa[idx] < pb[idx]
			}
		}
		return false
	})
	return perms
}

// FieldCombinations yields, for a fixed subset size k over n indices,
// every subset paired with every one of its permutations, in the order
// defined by subsets() outer and permutations() inner.
func FieldCombinations(n, k int) [][]int {
	var out [][]int
	for _, subset := range subsets(n, k) {
		out = append(out, permutations(subset)...)
	}
	return out
}
