package lifecycle

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/nwillems/confluence-lifecycle/models"
)

// IgnoreState classifies a lifecycle_ignore directive.
type IgnoreState int

const (
	// IgnoreNone marks a label that is not an ignore directive, carries an
	// expired window, or carries a date that could not be parsed. None of
	// these suppress relabelling.
	IgnoreNone IgnoreState = iota

	// IgnoreForever marks a bare directive, or one with an empty value.
	IgnoreForever

	// IgnoreUntil marks a directive whose window is still open.
	IgnoreUntil
)

// Directive is a parsed lifecycle_ignore label.
type Directive struct {
	State IgnoreState
	// Until is the window end when State is IgnoreUntil.
	Until time.Time
}

// Active reports whether the directive suppresses relabelling.
func (d Directive) Active() bool {
	return d.State != IgnoreNone
}

// IsIgnoreDirective reports whether a label is a lifecycle_ignore tag.
func IsIgnoreDirective(label string) bool {
	return strings.HasPrefix(label, models.IgnoreLabel)
}

// ParseDirective evaluates an ignore directive as of now. A bare
// "lifecycle_ignore" (or one with an empty value) ignores the page forever.
// "lifecycle_ignore=<date>" ignores the page until after <date>; once the
// date has passed, or if it cannot be parsed, the directive has no effect
// and the page is labelled as normal.
func ParseDirective(label string, now time.Time) Directive {
	if !IsIgnoreDirective(label) {
		return Directive{}
	}

	if !strings.Contains(label, "=") {
		return Directive{State: IgnoreForever}
	}

	value := strings.Split(label, "=")[1]
	if value == "" {
		// Assume they meant a bare lifecycle_ignore.
		return Directive{State: IgnoreForever}
	}

	until, err := dateparse.ParseAny(value)
	if err != nil {
		return Directive{}
	}

	if now.After(until) {
		// The exclusion window has ended.
		return Directive{}
	}

	return Directive{State: IgnoreUntil, Until: until}
}
