package cads

import "fmt"

// SolutionSet is the final output of a completed search: the sorted,
// deduplicated, re-validated solutions plus the bookkeeping needed to
// report a summary.
type SolutionSet struct {
	Solutions      []Solution
	TestsPerformed uint64
	ThreadsUsed    int
}

// RunSearch is the top-level entry point: resolve the active operator
// set, clamp config to the dataset, partition work across threads, run
// the worker pool to completion, and return the final solution set.
func RunSearch(cfg Config, dataset *Dataset, tracker *ProgressTracker) (*SolutionSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.ClampToDataset(dataset)

	activeOps, err := ActiveOperators(cfg.Complexity, cfg.CustomOperations)
	if err != nil {
		return nil, fmt.Errorf("resolving active operators: %w", err)
	}

	threads := resolveThreadCount(cfg.Threads)
	if threads > len(activeOps) {
		threads = len(activeOps)
	}

	solutions := RunWorkerPool(cfg, dataset, activeOps, tracker)

	var tests uint64
	if tracker != nil {
		tests = tracker.Snapshot().Completed
	}

	return &SolutionSet{
		Solutions:      solutions,
		TestsPerformed: tests,
		ThreadsUsed:    threads,
	}, nil
}
