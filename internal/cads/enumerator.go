package cads

// Enumerate walks every sequence [startOp, x_1, ..., x_{D-1}] with each
// x_i drawn from A, D = len(perm)+1, invoking the evaluator on each and
// recording any that succeed into store. onTest is called
// once per leaf sequence tested, before evaluation, so the caller can
// maintain its local test counter. shouldStop is polled between
// top-level branches and at each leaf so a worker can bail out promptly
// once the shared interrupted flag is set. Enumerate returns true iff at
// least one solution was recorded during this call.
func Enumerate(perm []int, constant uint64, A []Operator, startOp Operator, dataset *Dataset, checksumSize int, cache *FieldCache, store *ResultsStore, onTest func(), shouldStop func() bool) bool {
	depth := len(perm) + 1
	seq := make([]Operator, depth)
	seq[0] = startOp

	foundSolution := false

	var rec func(pos int) bool
	rec = func(pos int) bool {
		if shouldStop() {
			return true
		}
		if pos == depth {
			onTest()
			if Evaluate(perm, seq, constant, dataset, checksumSize, cache) {
				fieldIndices := make([]uint8, len(perm))
				for i, idx := range perm {
					fieldIndices[i] = uint8(idx)
				}
				ops := make([]Operator, depth)
				copy(ops, seq)
				store.Add(Solution{
					FieldIndices: fieldIndices,
					Operations:   ops,
					Constant:     constant,
					ChecksumSize: checksumSize,
				})
				foundSolution = true
			}
			return false
		}
		for _, op := range A {
			seq[pos] = op
			if rec(pos + 1) {
				return true
			}
		}
		return false
	}

	rec(1)

	return foundSolution
}
