package cads

import "sort"

// permCount returns P(n, k), the number of length-k permutations of n
// distinct items, or 0 if k > n.
func permCount(n, k int) uint64 {
	if k <= 0 || k > n {
		return 0
	}
	result := uint64(1)
	for i := 0; i < k; i++ {
		result *= uint64(n - i)
	}
	return result
}

// workload computes cost_weight(o) * constants * Σ_{k=1..maxFields}
// [P(n,k) * m^k] for a single operator.
func workload(op Operator, n, maxFields, constants int, m uint64) uint64 {
	var sum uint64
	for k := 1; k <= maxFields; k++ {
		p := permCount(n, k)
		term := p
		for i := 0; i < k; i++ {
			term *= m
		}
		sum += term
	}
	return uint64(op.CostWeight()) * uint64(constants) * sum
}

// Partition splits the active operator list A into W' disjoint,
// non-empty partitions via descending-workload first-fit-decreasing
// bin-packing onto W' bins, W' = min(W, len(A)). The result is a pure
// function of its inputs (determinism requirement).
func Partition(A []Operator, W, n, maxFields, maxConstants int) [][]Operator {
	m := len(A)
	if m == 0 {
		return nil
	}
	wPrime := W
	if wPrime > m {
		wPrime = m
	}
	if wPrime < 1 {
		wPrime = 1
	}

	type weighted struct {
		op Operator
		w  uint64
	}
	items := make([]weighted, m)
	for i, op := range A {
		items[i] = weighted{op: op, w: workload(op, n, maxFields, maxConstants, uint64(m))}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].w > items[j].w
	})

	bins := make([][]Operator, wPrime)
	totals := make([]uint64, wPrime)

	for _, it := range items {
		best := 0
		for b := 1; b < wPrime; b++ {
			if totals[b] < totals[best] {
				best = b
			}
		}
		bins[best] = append(bins[best], it.op)
		totals[best] += it.w
	}

	return bins
}
