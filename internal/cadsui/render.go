// Package cadsui renders search progress and results to a plain
// terminal: no color, no ANSI cursor movement, no animation. It only
// ever reads immutable cads.Snapshot/cads.Solution values; it never
// mutates search state.
package cadsui

import (
	"fmt"
	"io"
	"time"

	"github.com/twilightcoders/cads/internal/cads"
)

// RenderProgress writes one line summarizing the current snapshot. It
// is meant to be called only when tracker.ShouldDisplay() has already
// returned true.
func RenderProgress(w io.Writer, s cads.Snapshot) {
	pct := 0.0
	if s.TotalEstimate > 0 {
		pct = 100 * float64(s.Completed) / float64(s.TotalEstimate)
	}
	fmt.Fprintf(w, "progress: %d/%d (%.1f%%) rate=%.0f/s eta=%s solutions=%d elapsed=%s\n",
		s.Completed, s.TotalEstimate, pct, s.SmoothedRate, s.SmoothedETA.Round(1e9), s.SolutionCount, s.Elapsed.Round(1e9))

	now := time.Now()
	for _, ws := range s.Workers {
		status := "running"
		switch {
		case ws.Completed:
			status = "done"
		case ws.Stalled(now):
			status = "stalled"
		}
		fmt.Fprintf(w, "  worker %d: %s tests=%d solutions=%d\n", ws.ID, status, ws.LocalCompleted, ws.SolutionsFound)
	}
}

// RenderSolutions prints the final solution set, one line per solution,
// only after the search has fully returned (never interleaved with
// progress output).
func RenderSolutions(w io.Writer, solutions []cads.Solution) {
	if len(solutions) == 0 {
		fmt.Fprintln(w, "no solutions found")
		return
	}
	fmt.Fprintf(w, "%d solution(s):\n", len(solutions))
	for _, s := range solutions {
		fmt.Fprintf(w, "  fields=%v ops=%s constant=%d checksum_size=%d validated=%t\n",
			s.FieldIndices, formatOps(s.Operations), s.Constant, s.ChecksumSize, s.Validated)
	}
}

func formatOps(ops []cads.Operator) string {
	out := "["
	for i, op := range ops {
		if i > 0 {
			out += ", "
		}
		out += op.Name()
	}
	return out + "]"
}
