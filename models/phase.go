// Package models defines data structures shared across commands.
package models

import "fmt"

// Phase is the lifecycle classification of a page, ordered from most
// recently edited to least.
type Phase int

const (
	PhaseFresh Phase = iota
	PhaseStale
	PhaseRotten
)

// Phases lists every phase in reporting order.
var Phases = []Phase{PhaseFresh, PhaseStale, PhaseRotten}

func (p Phase) String() string {
	switch p {
	case PhaseFresh:
		return "fresh"
	case PhaseStale:
		return "stale"
	case PhaseRotten:
		return "rotten"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}
