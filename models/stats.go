package models

import "time"

// PhaseTally counts reconciliation outcomes for one phase bucket.
type PhaseTally struct {
	Total      int
	Changed    int
	Suppressed int
}

// RunStats aggregates the outcome of a full run over a space.
type RunStats struct {
	Space     string
	StartedAt time.Time
	Duration  time.Duration
	ReadOnly  bool
	Fresh     PhaseTally
	Stale     PhaseTally
	Rotten    PhaseTally
	Errors    int
}

// Tally returns the tally bucket for a phase.
func (r *RunStats) Tally(p Phase) *PhaseTally {
	switch p {
	case PhaseStale:
		return &r.Stale
	case PhaseRotten:
		return &r.Rotten
	default:
		return &r.Fresh
	}
}

// TotalPages is the number of pages that were classified this run.
func (r *RunStats) TotalPages() int {
	return r.Fresh.Total + r.Stale.Total + r.Rotten.Total
}
