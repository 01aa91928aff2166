package models

// Label constants for the lifecycle labelling scheme.
const (
	// IgnoreLabel suppresses automated relabelling of a page. It comes in
	// two flavours: bare "lifecycle_ignore" ignores the page forever, and
	// "lifecycle_ignore=<date>" ignores the page until after <date>.
	IgnoreLabel = "lifecycle_ignore"

	DefaultFreshLabel  = "lifecycle_phase=fresh"
	DefaultStaleLabel  = "lifecycle_phase=stale"
	DefaultRottenLabel = "lifecycle_phase=rotten"
)

// DeprecatedLabels are legacy lifecycle tags removed on sight. They predate
// the lifecycle_phase= scheme and are being retired.
var DeprecatedLabels = []string{
	"fresh",
	"stale",
	"rotten",
}

// LabelSet maps each lifecycle phase to the label applied to pages in that
// phase. It replaces the old order-significant three-element label list.
type LabelSet struct {
	Fresh  string `yaml:"fresh"`
	Stale  string `yaml:"stale"`
	Rotten string `yaml:"rotten"`
}

// DefaultLabelSet returns the standard lifecycle_phase= labels.
func DefaultLabelSet() LabelSet {
	return LabelSet{
		Fresh:  DefaultFreshLabel,
		Stale:  DefaultStaleLabel,
		Rotten: DefaultRottenLabel,
	}
}

// For returns the label for a phase.
func (s LabelSet) For(p Phase) string {
	switch p {
	case PhaseStale:
		return s.Stale
	case PhaseRotten:
		return s.Rotten
	default:
		return s.Fresh
	}
}

// All returns every phase label in phase order.
func (s LabelSet) All() []string {
	return []string{s.Fresh, s.Stale, s.Rotten}
}

// Undesirable returns the phase labels that should not remain on a page
// once desired has been chosen for it.
func (s LabelSet) Undesirable(desired string) []string {
	var out []string
	for _, l := range s.All() {
		if l != desired {
			out = append(out, l)
		}
	}
	return out
}
