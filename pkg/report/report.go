// Package report publishes the lifecycle dashboard: a pie chart of the
// phase distribution attached to a fixed report page, plus a
// storage-format summary body.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nwillems/confluence-lifecycle/models"
)

// ChartFilename is the attachment name the report body references.
const ChartFilename = "pie.png"

// Store is the subset of the Confluence client the publisher writes through.
type Store interface {
	AttachFile(ctx context.Context, pageID, filename string, data []byte) error
	UpdatePage(ctx context.Context, pageID, title, body string) error
	AddLabel(ctx context.Context, pageID, label string) error
}

// Publisher renders and uploads the lifecycle report.
type Publisher struct {
	Store  Store
	Logger *slog.Logger
	// Now allows tests to pin the run date; defaults to time.Now.
	Now func() time.Time
}

func (p *Publisher) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Publish renders the chart and body for a run, writes both to the report
// page, and re-tags the page with a permanent ignore directive so the next
// run never reclassifies it.
func (p *Publisher) Publish(ctx context.Context, pageID, title string, stats *models.RunStats) error {
	png, err := RenderChart(stats)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	if err := p.Store.AttachFile(ctx, pageID, ChartFilename, png); err != nil {
		return fmt.Errorf("attach chart: %w", err)
	}

	body, err := RenderBody(stats, p.now())
	if err != nil {
		return fmt.Errorf("render report body: %w", err)
	}

	if err := p.Store.UpdatePage(ctx, pageID, title, body); err != nil {
		return fmt.Errorf("update report page: %w", err)
	}

	if err := p.Store.AddLabel(ctx, pageID, models.IgnoreLabel); err != nil {
		return fmt.Errorf("tag report page: %w", err)
	}

	return nil
}
