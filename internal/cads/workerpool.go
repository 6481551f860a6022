package cads

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// resolveThreadCount turns the configured thread count into a concrete
// worker count: 0 means auto, resolved to the number of logical CPUs.
func resolveThreadCount(configured int) int {
	if configured == 0 {
		return runtime.NumCPU()
	}
	if configured < 0 {
		return 1
	}
	return configured
}

// RunWorkerPool executes the nested field/permutation/constant/operator
// iteration across W' goroutines, one per partition produced by
// Partition, plus the caller's
// own progress-monitor loop (driven separately via tracker.Tick /
// tracker.ShouldDisplay). It blocks until every worker has either
// finished its assigned work or observed the shared interrupted flag,
// then returns the final sorted, deduplicated, re-validated solution
// set.
func RunWorkerPool(cfg Config, dataset *Dataset, activeOps []Operator, tracker *ProgressTracker) []Solution {
	n := dataset.MinPacketLen()
	store := NewResultsStore()
	cache := BuildFieldCache(dataset, cfg.ChecksumSize)
	defer cache.Clear()

	threads := resolveThreadCount(cfg.Threads)
	partitions := Partition(activeOps, threads, n, cfg.MaxFields, cfg.MaxConstants)

	var interrupted atomic.Bool
	var globalTests atomic.Uint64
	totalEstimate := TotalEstimate(n, cfg.MaxFields, cfg.MaxConstants, uint64(len(activeOps)))

	var wg sync.WaitGroup
	for workerID, assigned := range partitions {
		if len(assigned) == 0 {
			continue
		}
		wg.Add(1)
		go func(id int, ops []Operator) {
			defer wg.Done()
			runWorker(id, ops, activeOps, cfg, dataset, n, cache, store, tracker, &interrupted, &globalTests, totalEstimate)
		}(workerID, assigned)
	}
	wg.Wait()

	return store.Finish(dataset)
}

// runWorker executes the field/permutation/constant/operator loop nest
// for one partition's assigned operators.
func runWorker(id int, assignedOps, activeOps []Operator, cfg Config, dataset *Dataset, n int, cache *FieldCache, store *ResultsStore, tracker *ProgressTracker, interrupted *atomic.Bool, globalTests *atomic.Uint64, totalEstimate uint64) {
	start := time.Now()
	var localTests uint64
	lastPublish := start

	publish := func(final bool) {
		globalTests.Add(localTests)
		if tracker != nil {
			tracker.AddCompleted(localTests)
			tracker.UpdateWorker(WorkerSnapshot{
				ID:             id,
				LocalCompleted: localTests,
				StartTime:      start,
				LastUpdate:     time.Now(),
				Completed:      final,
			})
		}
		localTests = 0
		lastPublish = time.Now()
	}

	onTest := func() {
		localTests++
		if time.Since(lastPublish) >= time.Duration(cfg.ProgressIntervalMs)*time.Millisecond {
			publish(false)
		}
	}

	shouldStop := func() bool {
		if interrupted.Load() {
			return true
		}
		if globalTests.Load() >= totalEstimate {
			interrupted.Store(true)
			return true
		}
		if cfg.MaxSolutions > 0 && uint32(store.Len()) >= cfg.MaxSolutions {
			interrupted.Store(true)
			return true
		}
		return false
	}

outer:
	for k := 1; k <= cfg.MaxFields; k++ {
		for _, subset := range subsets(n, k) {
			for _, perm := range permutations(subset) {
				for constant := 0; constant < cfg.MaxConstants; constant++ {
					for _, startOp := range assignedOps {
						found := Enumerate(perm, uint64(constant), activeOps, startOp, dataset, cfg.ChecksumSize, cache, store, onTest, shouldStop)
						if found {
							if tracker != nil {
								tracker.AddSolution()
							}
							if cfg.EarlyExit {
								interrupted.Store(true)
							}
						}
						if shouldStop() {
							break outer
						}
					}
					if shouldStop() {
						break outer
					}
				}
				if shouldStop() {
					break outer
				}
			}
			if shouldStop() {
				break outer
			}
		}
		if shouldStop() {
			break outer
		}
	}

	publish(true)
}
