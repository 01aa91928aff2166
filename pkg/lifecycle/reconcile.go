package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/nwillems/confluence-lifecycle/models"
)

// LabelStore is the subset of the Confluence client the reconciler uses.
type LabelStore interface {
	GetLabels(ctx context.Context, pageID string) ([]string, error)
	AddLabel(ctx context.Context, pageID, label string) error
	RemoveLabel(ctx context.Context, pageID, label string) error
}

// Outcome is the terminal result of reconciling one page.
type Outcome struct {
	// Changed reports that the desired label was applied.
	Changed bool
	// Suppressed reports that an active ignore directive blocked
	// reconciliation.
	Suppressed bool
	// Until is the directive's window end when suppression is time-bounded.
	Until time.Time
}

// Reconciler drives a page's labels toward the label of its computed phase.
type Reconciler struct {
	Store  LabelStore
	Labels models.LabelSet
	Logger *slog.Logger
	// Now allows tests to pin the clock; defaults to time.Now.
	Now func() time.Time
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Reconciler) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Reconcile makes a page's labels match the desired phase label. Deprecated
// labels are removed first, before any ignore directive is consulted. An
// active directive then suppresses everything else. Label mutation failures
// are logged and swallowed; only the initial label fetch can fail the page.
func (r *Reconciler) Reconcile(ctx context.Context, pageID, desired string) (Outcome, error) {
	current, err := r.Store.GetLabels(ctx, pageID)
	if err != nil {
		return Outcome{}, fmt.Errorf("reconcile page %s: %w", pageID, err)
	}

	// Deprecated labels are being retired, so they go unconditionally.
	for _, label := range current {
		if slices.Contains(models.DeprecatedLabels, label) {
			r.logger().Debug("removing deprecated label", "page_id", pageID, "label", label)
			if err := r.Store.RemoveLabel(ctx, pageID, label); err != nil {
				r.logger().Debug("failed to remove deprecated label", "page_id", pageID, "label", label, "error", err)
			}
		}
	}

	// Undesirable labels are the two phase labels we don't want out of the
	// three we manage.
	undesirable := r.Labels.Undesirable(desired)

	required := true
	suppressed := false
	var until time.Time

	for _, label := range current {
		if IsIgnoreDirective(label) {
			directive := ParseDirective(label, r.now())
			if directive.Active() {
				required = false
				suppressed = true
				until = directive.Until
				break
			}
			// Expired or unparsable directives don't block labelling.
			continue
		}

		if required && slices.Contains(undesirable, label) {
			if err := r.Store.RemoveLabel(ctx, pageID, label); err != nil {
				r.logger().Debug("failed to remove undesirable label", "page_id", pageID, "label", label, "error", err)
				continue
			}
		}

		if required && label == desired {
			// The page already carries the label we would apply.
			required = false
			break
		}
	}

	if required {
		r.logger().Debug("applying label", "page_id", pageID, "label", desired)
		if err := r.Store.AddLabel(ctx, pageID, desired); err != nil {
			r.logger().Debug("failed to apply label", "page_id", pageID, "label", desired, "error", err)
			return Outcome{}, nil
		}
		return Outcome{Changed: true}, nil
	}

	return Outcome{Suppressed: suppressed, Until: until}, nil
}
