// Package lifecycle implements page discovery, lifecycle-phase
// classification, and label reconciliation.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nwillems/confluence-lifecycle/models"
	"github.com/nwillems/confluence-lifecycle/pkg/confluence"
)

// timeLayout is the fixed-precision format the content API uses for
// lastUpdated.when, e.g. "2023-04-01T10:32:05.130Z".
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// ParseTimestamp parses the content API's last-modified serialization.
func ParseTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}

// HistoryStore is the subset of the Confluence client the classifier reads.
type HistoryStore interface {
	GetHistory(ctx context.Context, pageID string) (*confluence.PageHistory, error)
}

// Classifier computes a page's lifecycle phase from its last-modified
// timestamp against the stale/rotten day thresholds.
type Classifier struct {
	Store      HistoryStore
	StaleDays  int
	RottenDays int
	// Now allows tests to pin the clock; defaults to time.Now.
	Now func() time.Time
}

func (c *Classifier) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Classify fetches last-modification metadata for a page and derives its
// phase.
func (c *Classifier) Classify(ctx context.Context, page models.PageSummary) (*models.PageState, error) {
	history, err := c.Store.GetHistory(ctx, page.ID)
	if err != nil {
		return nil, fmt.Errorf("classify page %s: %w", page.ID, err)
	}

	lastEdited, err := ParseTimestamp(history.When)
	if err != nil {
		return nil, fmt.Errorf("classify page %s: %w", page.ID, err)
	}

	return &models.PageState{
		PageID:       page.ID,
		Title:        page.Title,
		CreatedBy:    cleanIdentity(history.CreatedBy),
		LastEditedBy: cleanIdentity(history.LastEditedBy),
		WhenRaw:      history.When,
		When:         lastEdited,
		Phase:        PhaseForAge(c.now().Sub(lastEdited), c.StaleDays, c.RottenDays),
	}, nil
}

// PhaseForAge buckets an age against the two day thresholds. Boundary ages
// fall into the longer bucket: an age of exactly staleDays is stale, and
// exactly rottenDays is rotten.
func PhaseForAge(age time.Duration, staleDays, rottenDays int) models.Phase {
	switch {
	case age >= days(rottenDays):
		return models.PhaseRotten
	case age >= days(staleDays):
		return models.PhaseStale
	default:
		return models.PhaseFresh
	}
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// cleanIdentity strips the "(Deactivated)" marker Confluence appends to the
// names of removed accounts.
func cleanIdentity(id models.Identity) models.Identity {
	id.Name = strings.ReplaceAll(id.Name, " (Deactivated)", "")
	return id
}
