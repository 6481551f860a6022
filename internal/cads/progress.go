package cads

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// TotalEstimate computes the aggregate test-count estimate used to seed
// the progress tracker and to gate early exit:
// constants * Σ_{k=1..maxFields} [P(n,k) * m^(k+1)].
func TotalEstimate(n, maxFields, constants int, m uint64) uint64 {
	var sum uint64
	for k := 1; k <= maxFields; k++ {
		p := permCount(n, k)
		term := p
		for i := 0; i < k+1; i++ {
			term *= m
		}
		sum += term
	}
	return uint64(constants) * sum
}

// WorkerSnapshot is a read-only view of one worker's progress, as
// surfaced to the renderer; it is never mutated once returned.
type WorkerSnapshot struct {
	ID             int       `json:"id"`
	LocalCompleted uint64    `json:"local_completed"`
	LocalRate      float64   `json:"local_rate"`
	StartTime      time.Time `json:"start_time"`
	LastUpdate     time.Time `json:"last_update"`
	Completed      bool      `json:"completed"`
	SolutionsFound int       `json:"solutions_found"`
}

// Stalled reports whether this worker has not reported progress in over
// three seconds and has not yet completed.
func (w WorkerSnapshot) Stalled(now time.Time) bool {
	if w.Completed {
		return false
	}
	return now.Sub(w.LastUpdate) > 3*time.Second
}

// Snapshot is the immutable state the renderer reads on each tick.
type Snapshot struct {
	TotalEstimate uint64           `json:"total_estimate"`
	Completed     uint64           `json:"completed"`
	SmoothedRate  float64          `json:"smoothed_rate"`
	SmoothedETA   time.Duration    `json:"smoothed_eta_ns"`
	SolutionCount int              `json:"solution_count"`
	Workers       []WorkerSnapshot `json:"workers"`
	Elapsed       time.Duration    `json:"elapsed_ns"`
}

// ProgressTracker aggregates per-worker progress into a single smoothed
// rate/ETA estimate. All public methods are safe for
// concurrent use; workers call AddCompleted and UpdateWorker, the
// renderer calls Snapshot and ShouldDisplay.
type ProgressTracker struct {
	totalEstimate uint64
	completed     atomic.Uint64
	solutionCount atomic.Int64
	startTime     time.Time

	mu               sync.Mutex
	lastObservedTime time.Time
	lastObservedDone uint64
	smoothedRate     float64
	smoothedETA      time.Duration
	haveRateSample   bool

	lastDisplayMu   sync.Mutex
	lastDisplayTime time.Time

	workersMu sync.Mutex
	workers   map[int]WorkerSnapshot

	progressIntervalMs int
}

// NewProgressTracker seeds a tracker for the given total estimate.
func NewProgressTracker(totalEstimate uint64, progressIntervalMs int) *ProgressTracker {
	now := time.Now()
	return &ProgressTracker{
		totalEstimate:      totalEstimate,
		startTime:          now,
		lastObservedTime:   now,
		workers:            make(map[int]WorkerSnapshot),
		progressIntervalMs: progressIntervalMs,
	}
}

// AddCompleted adds n to the global completed-test counter. Workers call
// this periodically, not per-test, to keep the mutex off the hot path.
func (t *ProgressTracker) AddCompleted(n uint64) {
	t.completed.Add(n)
}

// AddSolution records that a solution was found.
func (t *ProgressTracker) AddSolution() {
	t.solutionCount.Add(1)
}

// UpdateWorker replaces a worker's snapshot.
func (t *ProgressTracker) UpdateWorker(ws WorkerSnapshot) {
	t.workersMu.Lock()
	t.workers[ws.ID] = ws
	t.workersMu.Unlock()
}

// Tick recomputes smoothed rate and ETA from the current completed
// count. Called by the monitor goroutine on its own interval.
func (t *ProgressTracker) Tick() {
	now := time.Now()
	completed := t.completed.Load()

	t.mu.Lock()
	defer t.mu.Unlock()

	dt := now.Sub(t.lastObservedTime).Seconds()
	if dt <= 0 {
		return
	}
	dCompleted := completed - t.lastObservedDone
	instRate := float64(dCompleted) / dt

	if !t.haveRateSample && instRate > 0 {
		t.smoothedRate = instRate
		t.haveRateSample = true
	} else if t.haveRateSample {
		const alphaRate = 0.2
		t.smoothedRate = alphaRate*instRate + (1-alphaRate)*t.smoothedRate
	}

	var eta time.Duration
	if completed >= t.totalEstimate {
		eta = 0
	} else if t.smoothedRate > 1e-9 {
		remaining := float64(t.totalEstimate - completed)
		etaSeconds := remaining / t.smoothedRate
		eta = time.Duration(etaSeconds * float64(time.Second))
	} else {
		eta = t.smoothedETA
	}

	const alphaETA = 0.5
	if t.smoothedETA == 0 && eta != 0 {
		t.smoothedETA = eta
	} else {
		t.smoothedETA = time.Duration(alphaETA*float64(eta) + (1-alphaETA)*float64(t.smoothedETA))
	}
	if completed >= t.totalEstimate {
		t.smoothedETA = 0
	}

	t.lastObservedTime = now
	t.lastObservedDone = completed
}

// ShouldDisplay returns true iff at least progress_interval_ms have
// elapsed since the last true return. Stateful: call once
// per candidate render tick.
func (t *ProgressTracker) ShouldDisplay() bool {
	t.lastDisplayMu.Lock()
	defer t.lastDisplayMu.Unlock()
	now := time.Now()
	if now.Sub(t.lastDisplayTime) >= time.Duration(t.progressIntervalMs)*time.Millisecond {
		t.lastDisplayTime = now
		return true
	}
	return false
}

// Snapshot returns an immutable view of current progress for the
// renderer.
func (t *ProgressTracker) Snapshot() Snapshot {
	t.mu.Lock()
	rate := t.smoothedRate
	eta := t.smoothedETA
	t.mu.Unlock()

	t.workersMu.Lock()
	workers := make([]WorkerSnapshot, 0, len(t.workers))
	for _, w := range t.workers {
		workers = append(workers, w)
	}
	t.workersMu.Unlock()

	sort.Slice(workers, func(i, j int) bool { return workers[i].ID < workers[j].ID })

	return Snapshot{
		TotalEstimate: t.totalEstimate,
		Completed:     t.completed.Load(),
		SmoothedRate:  rate,
		SmoothedETA:   eta,
		SolutionCount: int(t.solutionCount.Load()),
		Workers:       workers,
		Elapsed:       time.Since(t.startTime),
	}
}
